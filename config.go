package realip

import (
	"fmt"
	"net/textproto"
	"reflect"
	"strings"
)

// Default configuration values, matching the conventional reverse-proxy
// header surface.
var (
	// DefaultIPHeaders are the vendor IP headers consulted in order.
	DefaultIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

	// DefaultSchemeHeaders are the vendor scheme headers consulted in order.
	DefaultSchemeHeaders = []string{"X-Forwarded-Proto", "X-SSL"}

	// DefaultHTTPSValues are the scheme-header values that count as secure.
	DefaultHTTPSValues = []string{"https", "on", "1", "true", "enable", "enabled"}

	// DefaultTrustedSources are the peer networks trusted by default:
	// loopback and the 24-bit private block, the two networks reverse
	// proxies most commonly connect from.
	DefaultTrustedSources = []string{"127.0.0.0/8", "10.0.0.0/8"}
)

// config holds resolver configuration state.
//
// It is mutated by Option functions during construction and frozen by
// finalize before the Resolver is returned.
type config struct {
	ipHeaders      []string
	schemeHeaders  []string
	httpsValues    []string
	parseForwarded bool
	trustedSources []string
	hideHeaders    bool
	enabled        bool

	logger         Logger
	metrics        Metrics
	metricsFactory func() (Metrics, error)

	// Derived once at construction.
	ipHeaderKeys     []string
	schemeHeaderKeys []string
	httpsValueSet    map[string]struct{}
	stripKeys        []string
	trust            *TrustSet
}

func defaultConfig() *config {
	return &config{
		ipHeaders:      cloneStrings(DefaultIPHeaders),
		schemeHeaders:  cloneStrings(DefaultSchemeHeaders),
		httpsValues:    cloneStrings(DefaultHTTPSValues),
		parseForwarded: true,
		trustedSources: cloneStrings(DefaultTrustedSources),
		hideHeaders:    false,
		enabled:        true,
		logger:         noopLogger{},
		metrics:        noopMetrics{},
	}
}

func applyOptions(c *config, opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}

	return nil
}

// finalize validates the configured values and computes the derived state:
// canonical header keys, the lowercase https-value set, the strip list, and
// the compiled TrustSet.
func (c *config) finalize() error {
	if c.metricsFactory != nil {
		metrics, err := c.metricsFactory()
		if err != nil {
			return err
		}
		c.metrics = metrics
	}

	if isNilInterface(c.logger) {
		return fmt.Errorf("logger cannot be nil")
	}
	if isNilInterface(c.metrics) {
		return fmt.Errorf("metrics cannot be nil")
	}

	var err error
	if c.ipHeaderKeys, err = canonicalHeaderKeys(c.ipHeaders, "ip header"); err != nil {
		return err
	}
	if c.schemeHeaderKeys, err = canonicalHeaderKeys(c.schemeHeaders, "scheme header"); err != nil {
		return err
	}

	c.httpsValueSet = make(map[string]struct{}, len(c.httpsValues))
	for _, value := range c.httpsValues {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			return fmt.Errorf("https values cannot be empty")
		}
		c.httpsValueSet[value] = struct{}{}
	}

	c.stripKeys = stripList(c.ipHeaderKeys, c.schemeHeaderKeys)

	if c.trust, err = NewTrustSet(c.trustedSources...); err != nil {
		return err
	}

	return nil
}

// canonicalHeaderKeys converts configured header names to canonical MIME form
// while preserving order. Requests match case-insensitively as a result.
func canonicalHeaderKeys(names []string, kind string) ([]string, error) {
	keys := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%s names cannot be empty", kind)
		}

		key := textproto.CanonicalMIMEHeaderKey(name)
		if _, duplicate := seen[key]; duplicate {
			return nil, fmt.Errorf("duplicate %s %q", kind, name)
		}

		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys, nil
}

// stripList is the deduplicated union of all configured header keys plus
// Forwarded, removed from requests when header hiding is enabled.
func stripList(keyLists ...[]string) []string {
	var keys []string
	seen := make(map[string]struct{})

	add := func(key string) {
		if _, duplicate := seen[key]; duplicate {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	for _, list := range keyLists {
		for _, key := range list {
			add(key)
		}
	}
	add(headerForwarded)

	return keys
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}

	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
