package realip

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Settings is the declarative configuration shape, suitable for embedding in
// YAML or JSON deployment config.
//
// Nil pointer and nil slice fields mean "not set, keep the default". A
// present-but-empty list is an explicit opt-out: an empty trusted_sources
// trusts no peer, an empty ip_headers disables vendor IP resolution.
type Settings struct {
	Enabled        *bool    `json:"enabled" yaml:"enabled"`
	IPHeaders      []string `json:"ip_headers" yaml:"ip_headers"`
	SchemeHeaders  []string `json:"scheme_headers" yaml:"scheme_headers"`
	HTTPSValues    []string `json:"https_values" yaml:"https_values"`
	ParseForwarded *bool    `json:"parse_rfc7239" yaml:"parse_rfc7239"`
	TrustedSources []string `json:"trusted_sources" yaml:"trusted_sources"`
	HideHeaders    *bool    `json:"hide_headers" yaml:"hide_headers"`
}

// LoadSettings parses Settings from YAML (and therefore from JSON, which
// YAML accepts as a subset).
func LoadSettings(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	return s, nil
}

// Options converts the set fields into resolver options.
func (s Settings) Options() []Option {
	var opts []Option

	if s.Enabled != nil {
		opts = append(opts, Enabled(*s.Enabled))
	}
	if s.IPHeaders != nil {
		opts = append(opts, IPHeaders(s.IPHeaders...))
	}
	if s.SchemeHeaders != nil {
		opts = append(opts, SchemeHeaders(s.SchemeHeaders...))
	}
	if s.HTTPSValues != nil {
		opts = append(opts, HTTPSValues(s.HTTPSValues...))
	}
	if s.ParseForwarded != nil {
		opts = append(opts, ParseForwarded(*s.ParseForwarded))
	}
	if s.TrustedSources != nil {
		opts = append(opts, TrustedSources(s.TrustedSources...))
	}
	if s.HideHeaders != nil {
		opts = append(opts, HideHeaders(*s.HideHeaders))
	}

	return opts
}

// NewFromSettings creates a Resolver from declarative settings plus any
// programmatic extras (logger, metrics). Extras are applied after the
// settings, so they win on conflict.
func NewFromSettings(s Settings, extra ...Option) (*Resolver, error) {
	return New(append(s.Options(), extra...)...)
}
