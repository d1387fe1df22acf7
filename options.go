package realip

import "fmt"

// Option configures a Resolver.
//
// Construct options using the package-provided builder functions.
type Option func(*config) error

// IPHeaders replaces the ordered vendor IP header list. The first header
// present with a non-empty value wins; X-Forwarded-For values are reduced to
// their leftmost token. Calling with no names disables vendor IP resolution.
func IPHeaders(names ...string) Option {
	names = cloneStrings(names)

	return func(c *config) error {
		c.ipHeaders = names
		return nil
	}
}

// SchemeHeaders replaces the ordered vendor scheme header list. Calling with
// no names disables vendor scheme resolution.
func SchemeHeaders(names ...string) Option {
	names = cloneStrings(names)

	return func(c *config) error {
		c.schemeHeaders = names
		return nil
	}
}

// HTTPSValues replaces the set of scheme-header values that count as secure.
// Matching is case-insensitive.
func HTTPSValues(values ...string) Option {
	values = cloneStrings(values)

	return func(c *config) error {
		if len(values) == 0 {
			return fmt.Errorf("at least one https value required")
		}

		c.httpsValues = values
		return nil
	}
}

// ParseForwarded controls whether a present RFC 7239 Forwarded header
// overrides the vendor-header results for the fields it supplies.
func ParseForwarded(enable bool) Option {
	return func(c *config) error {
		c.parseForwarded = enable
		return nil
	}
}

// TrustedSources replaces the trusted peer networks. Specs may be single
// addresses, CIDR blocks, or dashed ranges. Calling with no specs trusts no
// peer, disabling all header-based rewriting.
func TrustedSources(specs ...string) Option {
	specs = cloneStrings(specs)

	return func(c *config) error {
		c.trustedSources = specs
		return nil
	}
}

// HideHeaders controls whether all configured IP and scheme headers plus
// Forwarded are stripped from the request once the peer is trusted,
// regardless of whether they matched. This keeps downstream handlers from
// independently re-reading spoofed-looking values.
func HideHeaders(enable bool) Option {
	return func(c *config) error {
		c.hideHeaders = enable
		return nil
	}
}

// Enabled controls whether Handler resolves requests automatically. When
// disabled the middleware passes requests through and resolution happens only
// via explicit Resolve calls.
func Enabled(enable bool) Option {
	return func(c *config) error {
		c.enabled = enable
		return nil
	}
}

// WithLogger sets the logger used for security warnings.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets a concrete metrics implementation.
//
// A previously configured metrics factory is discarded.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		c.metrics = metrics
		c.metricsFactory = nil
		return nil
	}
}

// WithMetricsFactory configures a lazy metrics constructor, invoked once
// during New after all options are applied.
func WithMetricsFactory(factory func() (Metrics, error)) Option {
	return func(c *config) error {
		if factory == nil {
			return fmt.Errorf("metrics factory cannot be nil")
		}

		c.metricsFactory = factory
		return nil
	}
}
