package realip

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
)

// Resolver decides, per request, whether the immediate peer is a trusted
// proxy and which forwarded client address, scheme, and host to honor.
//
// Resolver instances are safe for concurrent use.
type Resolver struct {
	config *config
}

// New creates a Resolver from zero or more Option builders.
//
// Configuration errors (unparseable trusted sources, empty or duplicate
// header names, nil logger or metrics) surface here and never at request
// time.
func New(opts ...Option) (*Resolver, error) {
	cfg := defaultConfig()

	if err := applyOptions(cfg, opts...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Resolver{config: cfg}, nil
}

// TrustSet returns the compiled trusted-source set, usable as an independent
// membership oracle.
func (r *Resolver) TrustSet() *TrustSet {
	return r.config.trust
}

// PeerTrusted reports whether the request's immediate network peer is inside
// the trusted sources. A peer address that is not a valid IP is never
// trusted.
func (r *Resolver) PeerTrusted(req *http.Request) bool {
	if req == nil {
		return false
	}

	return r.config.trust.Contains(parseIP(req.RemoteAddr))
}

// Resolve runs one resolution pass over the request and returns the outcome.
//
// The pass never fails: untrusted peers, invalid header values, and
// malformed Forwarded headers all degrade to leaving the corresponding field
// unassigned. When header hiding is configured and the peer is trusted, the
// configured forwarding headers are removed from req.
func (r *Resolver) Resolve(req *http.Request) Resolution {
	if req == nil {
		return Resolution{}
	}

	cfg := r.config
	ctx := req.Context()

	peer := parseIP(req.RemoteAddr)
	if !peer.IsValid() {
		cfg.metrics.RecordSecurityEvent(securityEventInvalidPeer)
		r.warn(ctx, req, securityEventInvalidPeer, "peer address is not a valid IP")
		cfg.metrics.RecordResolution(outcomePassthrough)
		return Resolution{}
	}

	if !cfg.trust.Contains(peer) {
		if _, _, present := firstHeaderValue(req.Header, cfg.ipHeaderKeys); present {
			cfg.metrics.RecordSecurityEvent(securityEventUntrustedPeer)
			r.warn(ctx, req, securityEventUntrustedPeer, "untrusted peer sent forwarding headers")
		}
		cfg.metrics.RecordResolution(outcomePassthrough)
		return Resolution{}
	}

	res := Resolution{TrustedPeer: true}

	if key, value, ok := firstHeaderValue(req.Header, cfg.ipHeaderKeys); ok {
		candidate := value
		if key == headerXForwardedFor {
			candidate = firstForwardedFor(value)
		}

		if ip := parseIP(candidate); ip.IsValid() {
			res.ClientAddr = ip
			res.ProxyAddr = peer
		} else {
			cfg.metrics.RecordSecurityEvent(securityEventInvalidHeaderIP)
			r.warn(ctx, req, securityEventInvalidHeaderIP, "vendor IP header value is not a valid IP",
				"header", key,
				"value", value,
			)
		}
	}

	if _, value, ok := firstHeaderValue(req.Header, cfg.schemeHeaderKeys); ok {
		if _, secure := cfg.httpsValueSet[strings.ToLower(value)]; secure {
			res.Scheme = "https"
		}
	}

	if cfg.parseForwarded {
		r.applyForwarded(ctx, req, peer, &res)
	}

	if cfg.hideHeaders {
		for _, key := range cfg.stripKeys {
			req.Header.Del(key)
		}
	}

	if res.Rewritten() {
		cfg.metrics.RecordResolution(outcomeRewritten)
	} else {
		cfg.metrics.RecordResolution(outcomePassthrough)
	}

	return res
}

// applyForwarded overlays the first Forwarded element onto the vendor-header
// results. A malformed value degrades to keeping those results.
func (r *Resolver) applyForwarded(ctx context.Context, req *http.Request, peer netip.Addr, res *Resolution) {
	value := strings.TrimSpace(req.Header.Get(headerForwarded))
	if value == "" {
		return
	}

	rec, err := parseForwarded(value)
	if err != nil {
		r.config.metrics.RecordSecurityEvent(securityEventMalformedForwarded)
		r.warn(ctx, req, securityEventMalformedForwarded, "malformed Forwarded header received",
			"parse_error", err.Error(),
		)
		return
	}

	if rec.forValue != "" {
		if ip := parseIP(rec.forValue); ip.IsValid() {
			res.ClientAddr = ip
			if !res.ProxyAddr.IsValid() {
				res.ProxyAddr = peer
			}
		}
	}

	if rec.byValue != "" {
		if ip := parseIP(rec.byValue); ip.IsValid() {
			res.ProxyAddr = ip
		}
	}

	if rec.proto != "" {
		res.Scheme = rec.proto
	}
	if rec.host != "" {
		res.Host = rec.host
	}
}

func (r *Resolver) warn(ctx context.Context, req *http.Request, event, msg string, attrs ...any) {
	baseAttrs := []any{
		"event", event,
		"path", requestPath(req),
		"remote_addr", req.RemoteAddr,
	}

	r.config.logger.WarnContext(ctx, msg, append(baseAttrs, attrs...)...)
}

func requestPath(req *http.Request) string {
	if req.URL == nil {
		return ""
	}

	return req.URL.Path
}
