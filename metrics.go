package realip

// Metrics records resolution outcomes and security events.
//
// Implementations must be safe for concurrent use, as a single Resolver
// instance is typically shared across all requests.
type Metrics interface {
	// RecordResolution is called once per Resolve call with the outcome:
	// "rewritten" when any request field was assigned, "passthrough"
	// otherwise (untrusted peer, invalid peer address, or no usable headers).
	RecordResolution(outcome string)

	// RecordSecurityEvent is called when the resolver observes a
	// security-relevant condition such as an untrusted peer sending
	// forwarding headers or a malformed Forwarded value.
	RecordSecurityEvent(event string)
}

// noopMetrics is the default when no metrics sink is configured.
type noopMetrics struct{}

func (noopMetrics) RecordResolution(string) {}

func (noopMetrics) RecordSecurityEvent(string) {}
