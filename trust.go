package realip

import (
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// TrustSet is a compiled, immutable set of trusted network sources.
//
// It is built once from IP, CIDR, and address-range literals and is safe for
// concurrent queries without locking. Overlapping sources collapse into a
// normalized representation, so membership results do not depend on the order
// the sources were given in.
//
// An empty TrustSet matches nothing. This is deliberate: trusting everything
// when no sources are configured would let any peer spoof forwarding headers.
type TrustSet struct {
	set *netipx.IPSet
}

// NewTrustSet compiles trusted-source specs into a TrustSet.
//
// Each spec may be a single address ("10.0.0.1"), a CIDR block
// ("10.0.0.0/8"), or a dashed range ("10.0.0.1-10.0.0.9"), IPv4 or IPv6.
// Any spec that parses as none of these fails construction with
// ErrInvalidSource.
func NewTrustSet(sources ...string) (*TrustSet, error) {
	var b netipx.IPSetBuilder

	for _, source := range sources {
		if err := addSource(&b, source); err != nil {
			return nil, err
		}
	}

	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("compile trusted sources: %w", err)
	}

	return &TrustSet{set: set}, nil
}

func addSource(b *netipx.IPSetBuilder, source string) error {
	spec := strings.TrimSpace(source)
	if spec == "" {
		return fmt.Errorf("%w: empty spec", ErrInvalidSource)
	}

	if strings.ContainsRune(spec, '/') {
		prefix, err := netip.ParsePrefix(spec)
		if err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidSource, spec, err)
		}

		b.AddPrefix(prefix.Masked())
		return nil
	}

	// IP literals never contain a dash, so this cannot shadow a plain address.
	if strings.ContainsRune(spec, '-') {
		ipRange, err := netipx.ParseIPRange(spec)
		if err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidSource, spec, err)
		}

		b.AddRange(ipRange)
		return nil
	}

	addr, err := netip.ParseAddr(spec)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSource, spec, err)
	}

	b.Add(addr.Unmap())
	return nil
}

// Contains reports whether ip is inside the trusted set.
//
// IPv4-mapped IPv6 addresses are unmapped first, so a dual-stack listener
// reporting "::ffff:10.0.0.1" matches an IPv4-only range like "10.0.0.0/8".
// Invalid addresses are never trusted.
func (t *TrustSet) Contains(ip netip.Addr) bool {
	if t == nil || t.set == nil || !ip.IsValid() {
		return false
	}

	return t.set.Contains(ip.Unmap())
}

// ContainsAddr reports whether the address string is inside the trusted set.
//
// A string that is not a syntactically valid IP yields false together with an
// error wrapping ErrInvalidAddress, so callers can distinguish "not trusted"
// from "not an address" when logging.
func (t *TrustSet) ContainsAddr(addr string) (bool, error) {
	ip, err := netip.ParseAddr(strings.TrimSpace(addr))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	return t.Contains(ip), nil
}
