package realip

import (
	"strings"
	"testing"
)

func FuzzParseForwarded(f *testing.F) {
	for _, seed := range []string{
		"for=192.0.2.60;proto=https;by=203.0.113.43",
		`for="[2001:db8::1]:4711"`,
		"For=192.0.2.60, for=198.51.100.1",
		"for=_hidden;secret=x",
		"for=;;;",
		`for="unterminated`,
		";;;",
		"",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, value string) {
		rec, err := parseForwarded(value)
		if err != nil {
			if rec != (forwardedRecord{}) {
				t.Fatalf("non-zero record %+v returned with error for %q", rec, value)
			}
			return
		}

		// Recognized values are never empty and never contain an unquoted
		// delimiter that would have ended the parameter.
		for _, v := range []string{rec.forValue, rec.byValue, rec.proto, rec.host} {
			if v == "" {
				continue
			}
			if strings.ContainsAny(v, ";,") && !strings.Contains(value, `"`) {
				t.Fatalf("delimiter leaked into value %q parsed from %q", v, value)
			}
		}
	})
}

func FuzzParseIP(f *testing.F) {
	for _, seed := range []string{
		"192.0.2.1",
		"  192.0.2.1  ",
		"192.0.2.1:8080",
		"[2001:db8::1]:443",
		`"192.0.2.1"`,
		"::ffff:192.0.2.1",
		"not-an-ip",
		"",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		parsed := parseIP(raw)
		if !parsed.IsValid() {
			return
		}

		if parsed.Is4In6() {
			t.Fatalf("parseIP(%q) returned mapped address %v", raw, parsed)
		}

		roundTrip := parseIP(parsed.String())
		if roundTrip != parsed {
			t.Fatalf("round-trip mismatch for %q: %v != %v", raw, roundTrip, parsed)
		}
	})
}

func FuzzResolveNeverPanics(f *testing.F) {
	f.Add("127.0.0.1:1", "1.2.3.4, 5.6.7.8", "for=1.2.3.4;proto=https", "on")
	f.Add("8.8.8.8:1", "", `for="`, "off")
	f.Add("garbage", "\x00", ";;;", "\xff")

	resolver, err := New(HideHeaders(true))
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, remoteAddr, xff, forwarded, proto string) {
		req := newRequest(remoteAddr,
			"X-Forwarded-For", xff,
			"Forwarded", forwarded,
			"X-Forwarded-Proto", proto,
		)

		res := resolver.Resolve(req)
		if !res.TrustedPeer && res.Rewritten() {
			t.Fatalf("rewrite without trusted peer: %+v", res)
		}
	})
}
