// Package realip rewrites the perceived client address, scheme, and host of
// HTTP requests that arrive through trusted reverse proxies.
//
// For every request the immediate network peer is checked against a set of
// trusted sources (IP, CIDR, or address-range literals). Only when the peer is
// trusted are proxy-supplied headers honored: configurable vendor IP and
// scheme headers (X-Forwarded-For, X-Real-IP, X-Forwarded-Proto, X-SSL, or
// any custom names), and the RFC 7239 Forwarded header, which takes
// precedence for the fields it supplies. Requests from untrusted peers pass
// through completely unchanged.
//
// # Basic Usage
//
//	resolver, err := realip.New(
//	    realip.TrustedSources("127.0.0.0/8", "10.0.0.0/8"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := resolver.Resolve(req)
//	if res.ClientAddr.IsValid() {
//	    fmt.Println("client:", res.ClientAddr)
//	}
//
// # Middleware
//
// Handler wraps an http.Handler and applies the resolution to each request,
// rewriting RemoteAddr and Host and recording the outcome in the request
// context:
//
//	handler := resolver.Handler(mux)
//
//	// later, in application code:
//	if res, ok := realip.FromRequest(req); ok && res.TrustedPeer {
//	    ...
//	}
//
// # Security Model
//
// Trust is default-deny: an empty trusted-source list trusts no peer, so
// forwarding headers from unknown networks are never honored. Malformed
// header values never fail a request; the worst case is that nothing is
// rewritten. With HideHeaders enabled, all configured forwarding headers are
// stripped once trust is established so downstream handlers cannot re-read
// spoofed-looking values.
//
// # Observability
//
// The Logger interface mirrors slog's WarnContext signature, so *slog.Logger
// can be used directly. Metrics are pluggable; a Prometheus adapter lives in
// the prometheus subpackage.
//
//	resolver, err := realip.New(
//	    realip.PresetPrivateNetworkProxy(),
//	    realip.WithLogger(slog.Default()),
//	)
//
// # Thread Safety
//
// Resolver instances are immutable after construction and safe for concurrent
// use. They are typically created once at application startup.
package realip
