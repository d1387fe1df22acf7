package realip

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
)

func serveThrough(t *testing.T, resolver *Resolver, req *http.Request) *http.Request {
	t.Helper()

	var seen *http.Request
	handler := resolver.Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r
	}))

	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen == nil {
		t.Fatal("next handler was not called")
	}

	return seen
}

func TestHandler_RewritesRemoteAddr(t *testing.T) {
	resolver := mustResolver(t)

	req := newRequest("127.0.0.1:54321", "X-Forwarded-For", "203.0.113.5, 10.0.0.2")
	seen := serveThrough(t, resolver, req)

	if seen.RemoteAddr != "203.0.113.5:54321" {
		t.Fatalf("RemoteAddr = %q, want 203.0.113.5:54321", seen.RemoteAddr)
	}

	res, ok := FromRequest(seen)
	if !ok {
		t.Fatal("resolution missing from request context")
	}
	if want := netip.MustParseAddr("127.0.0.1"); res.ProxyAddr != want {
		t.Fatalf("ProxyAddr = %v, want %v", res.ProxyAddr, want)
	}
}

func TestHandler_PortlessPeer(t *testing.T) {
	resolver := mustResolver(t)

	req := newRequest("127.0.0.1", "X-Real-IP", "203.0.113.5")
	seen := serveThrough(t, resolver, req)

	if seen.RemoteAddr != "203.0.113.5" {
		t.Fatalf("RemoteAddr = %q, want bare 203.0.113.5", seen.RemoteAddr)
	}
}

func TestHandler_UntrustedPassthrough(t *testing.T) {
	resolver := mustResolver(t)

	req := newRequest("8.8.8.8:1234", "X-Forwarded-For", "1.2.3.4")
	seen := serveThrough(t, resolver, req)

	if seen.RemoteAddr != "8.8.8.8:1234" {
		t.Fatalf("RemoteAddr = %q, want untouched 8.8.8.8:1234", seen.RemoteAddr)
	}

	res, ok := FromRequest(seen)
	if !ok {
		t.Fatal("resolution must still be recorded for untrusted peers")
	}
	if res.TrustedPeer {
		t.Fatal("peer must not be trusted")
	}
}

func TestHandler_HostOverride(t *testing.T) {
	resolver := mustResolver(t)

	req := newRequest("127.0.0.1:1", "Forwarded", "host=internal.example.com")
	req.Host = "public.example.com"
	seen := serveThrough(t, resolver, req)

	if seen.Host != "internal.example.com" {
		t.Fatalf("Host = %q, want internal.example.com", seen.Host)
	}
}

func TestHandler_Disabled(t *testing.T) {
	resolver := mustResolver(t, Enabled(false))

	req := newRequest("127.0.0.1:1", "X-Forwarded-For", "203.0.113.5")
	seen := serveThrough(t, resolver, req)

	if seen.RemoteAddr != "127.0.0.1:1" {
		t.Fatalf("RemoteAddr = %q, want untouched with middleware disabled", seen.RemoteAddr)
	}
	if _, ok := FromRequest(seen); ok {
		t.Fatal("disabled middleware must not record a resolution")
	}

	// Explicit resolution still works.
	res := resolver.Resolve(newRequest("127.0.0.1:1", "X-Forwarded-For", "203.0.113.5"))
	if want := netip.MustParseAddr("203.0.113.5"); res.ClientAddr != want {
		t.Fatalf("explicit Resolve ClientAddr = %v, want %v", res.ClientAddr, want)
	}
}

func TestScheme(t *testing.T) {
	resolver := mustResolver(t)

	t.Run("resolved scheme wins", func(t *testing.T) {
		req := newRequest("127.0.0.1:1", "X-Forwarded-Proto", "https")
		if got := Scheme(serveThrough(t, resolver, req)); got != "https" {
			t.Fatalf("Scheme = %q, want https", got)
		}
	})

	t.Run("falls back to TLS state", func(t *testing.T) {
		req := newRequest("8.8.8.8:1")
		req.TLS = &tls.ConnectionState{}
		if got := Scheme(serveThrough(t, resolver, req)); got != "https" {
			t.Fatalf("Scheme = %q, want https from TLS", got)
		}
	})

	t.Run("plain request", func(t *testing.T) {
		req := newRequest("8.8.8.8:1")
		if got := Scheme(serveThrough(t, resolver, req)); got != "http" {
			t.Fatalf("Scheme = %q, want http", got)
		}
	})

	t.Run("request without middleware", func(t *testing.T) {
		if got := Scheme(newRequest("8.8.8.8:1")); got != "http" {
			t.Fatalf("Scheme = %q, want http", got)
		}
	})
}

func TestFromRequest_NoMiddleware(t *testing.T) {
	if _, ok := FromRequest(newRequest("127.0.0.1:1")); ok {
		t.Fatal("FromRequest must report absence without middleware")
	}
	if _, ok := FromRequest(nil); ok {
		t.Fatal("FromRequest(nil) must report absence")
	}
}
