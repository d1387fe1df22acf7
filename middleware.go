package realip

import (
	"context"
	"net"
	"net/http"
)

type resolutionContextKey struct{}

// Handler returns middleware that resolves every request and applies the
// outcome before calling next.
//
// When the resolver is constructed with Enabled(false) the middleware is a
// pure passthrough and resolution happens only via explicit Resolve calls.
//
// On a rewrite the request's RemoteAddr is replaced with the resolved client
// address (keeping the transport port when one was present) and Host is
// replaced when the Forwarded host parameter supplied one. The full
// Resolution is stored in the request context for FromRequest and Scheme.
func (r *Resolver) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.config.enabled {
			next.ServeHTTP(w, req)
			return
		}

		res := r.Resolve(req)
		next.ServeHTTP(w, applyResolution(req, res))
	})
}

func applyResolution(req *http.Request, res Resolution) *http.Request {
	req = req.WithContext(context.WithValue(req.Context(), resolutionContextKey{}, res))

	if res.ClientAddr.IsValid() {
		client := res.ClientAddr.String()
		if _, port, err := net.SplitHostPort(req.RemoteAddr); err == nil {
			req.RemoteAddr = net.JoinHostPort(client, port)
		} else {
			req.RemoteAddr = client
		}
	}

	if res.Host != "" {
		req.Host = res.Host
	}

	return req
}

// FromRequest returns the Resolution recorded by Handler for this request.
// ok is false when the request did not pass through the middleware.
func FromRequest(req *http.Request) (res Resolution, ok bool) {
	if req == nil {
		return Resolution{}, false
	}

	res, ok = req.Context().Value(resolutionContextKey{}).(Resolution)
	return res, ok
}

// Scheme returns the effective connection scheme for a request that passed
// through Handler: the resolved scheme when one was assigned, otherwise
// "https" for TLS connections and "http" for plain ones.
func Scheme(req *http.Request) string {
	if res, ok := FromRequest(req); ok && res.Scheme != "" {
		return res.Scheme
	}

	if req != nil && req.TLS != nil {
		return "https"
	}

	return "http"
}
