package realip

import (
	"errors"
	"net/netip"
)

var (
	// ErrInvalidSource reports a trusted-source spec that is not a valid IP
	// address, CIDR block, or address range.
	ErrInvalidSource = errors.New("invalid trusted source")

	// ErrInvalidAddress reports a candidate address that is not a
	// syntactically valid IP.
	ErrInvalidAddress = errors.New("invalid IP address")

	// ErrMalformedForwarded reports a Forwarded header value that could not
	// be parsed. It never reaches Resolve callers; resolution degrades to the
	// vendor-header results instead.
	ErrMalformedForwarded = errors.New("malformed Forwarded header")
)

// Resolution is the outcome of resolving one request.
//
// Zero-valued fields were not assigned by the resolver and the request's
// pre-resolution state remains authoritative for them. The resolver never
// clears a field it did not assign.
type Resolution struct {
	// TrustedPeer reports whether the immediate network peer was inside the
	// configured trusted sources. When false no other field is ever set.
	TrustedPeer bool

	// ClientAddr is the resolved client address, taken from the first
	// matching vendor IP header or the Forwarded for parameter.
	ClientAddr netip.Addr

	// ProxyAddr is the address of the proxy that forwarded the request:
	// the immediate peer when a vendor header matched, or the Forwarded by
	// parameter when supplied.
	ProxyAddr netip.Addr

	// Scheme is the resolved connection scheme ("https" from a matching
	// scheme header, or the Forwarded proto parameter verbatim).
	Scheme string

	// Host is the authority from the Forwarded host parameter.
	Host string
}

// Rewritten reports whether the resolver assigned any field.
//
// A trusted peer that supplied no usable forwarding headers yields a
// resolution with TrustedPeer set and Rewritten false.
func (r Resolution) Rewritten() bool {
	return r.ClientAddr.IsValid() || r.ProxyAddr.IsValid() || r.Scheme != "" || r.Host != ""
}
