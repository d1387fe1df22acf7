package realip

import (
	"net"
	"net/netip"
	"strings"
)

// parseIP extracts an IP address from the loose formats seen in peer
// addresses and proxy headers: surrounding whitespace, an optional port
// ("192.0.2.1:8080", "[::1]:8080"), optional quotes, and IPv6 brackets
// ("[::1]"). IPv4-mapped IPv6 addresses are unmapped.
//
// Returns an invalid netip.Addr (IsValid() == false) if nothing parses.
func parseIP(s string) netip.Addr {
	s = strings.TrimSpace(s)
	s = trimWrapped(s, '"', '"')
	s = trimWrapped(s, '\'', '\'')
	if s == "" {
		return netip.Addr{}
	}

	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}

	s = trimWrapped(s, '[', ']')

	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}
	}

	return ip.Unmap()
}

// trimWrapped removes one leading and one trailing delimiter byte when both
// are present.
func trimWrapped(s string, first, last byte) string {
	if len(s) >= 2 && s[0] == first && s[len(s)-1] == last {
		return s[1 : len(s)-1]
	}

	return s
}
