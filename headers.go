package realip

import (
	"net/http"
	"strings"
)

const (
	headerForwarded     = "Forwarded"
	headerXForwardedFor = "X-Forwarded-For"
)

// firstHeaderValue returns the first configured header present on h with a
// non-empty value, scanning keys in configured order.
//
// Keys must already be in canonical MIME form. The explicit no-match return
// keeps callers from coupling control flow to the header map.
func firstHeaderValue(h http.Header, keys []string) (key, value string, ok bool) {
	for _, k := range keys {
		v := strings.TrimSpace(h.Get(k))
		if v != "" {
			return k, v, true
		}
	}

	return "", "", false
}

// firstForwardedFor returns the leftmost token of a comma-separated
// X-Forwarded-For value. By convention the original client is listed first;
// later tokens are proxies appended along the way.
func firstForwardedFor(value string) string {
	if i := strings.IndexByte(value, ','); i >= 0 {
		value = value[:i]
	}

	return strings.TrimSpace(value)
}
