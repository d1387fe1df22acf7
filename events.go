package realip

// Security event names reported to Metrics.RecordSecurityEvent.
const (
	securityEventUntrustedPeer      = "untrusted_peer"
	securityEventInvalidPeer        = "invalid_peer_address"
	securityEventInvalidHeaderIP    = "invalid_header_ip"
	securityEventMalformedForwarded = "malformed_forwarded"
)

// Resolution outcome names reported to Metrics.RecordResolution.
const (
	outcomeRewritten   = "rewritten"
	outcomePassthrough = "passthrough"
)
