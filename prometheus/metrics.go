package prometheus

import (
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/kage/realip"
)

// Metrics is a Prometheus-backed implementation of realip.Metrics.
type Metrics struct {
	resolutions    *prom.CounterVec
	securityEvents *prom.CounterVec
}

// WithMetrics returns a realip option that installs Prometheus-backed metrics
// using prom.DefaultRegisterer.
func WithMetrics() realip.Option {
	return realip.WithMetricsFactory(func() (realip.Metrics, error) {
		return New()
	})
}

// WithRegisterer returns a realip option that installs Prometheus-backed
// metrics using the provided registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used.
func WithRegisterer(registerer prom.Registerer) realip.Option {
	return realip.WithMetricsFactory(func() (realip.Metrics, error) {
		return NewWithRegisterer(registerer)
	})
}

// New creates Metrics and registers its collectors on prom.DefaultRegisterer.
func New() (*Metrics, error) {
	return NewWithRegisterer(prom.DefaultRegisterer)
}

// NewWithRegisterer creates Metrics and registers its collectors on the given
// registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used. If the metrics are
// already registered, existing compatible collectors are reused.
func NewWithRegisterer(registerer prom.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	resolutionsCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "realip_resolutions_total",
			Help: "Total number of resolution passes by outcome (rewritten, passthrough).",
		},
		[]string{"outcome"},
	)
	securityEventsCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "realip_security_events_total",
			Help: "Security-related events during address resolution, labeled by event.",
		},
		[]string{"event"},
	)

	resolutions, err := registerCounterVec(registerer, resolutionsCollector, "realip_resolutions_total")
	if err != nil {
		return nil, err
	}

	securityEvents, err := registerCounterVec(registerer, securityEventsCollector, "realip_security_events_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		resolutions:    resolutions,
		securityEvents: securityEvents,
	}, nil
}

func registerCounterVec(registerer prom.Registerer, collector *prom.CounterVec, metricName string) (*prom.CounterVec, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prom.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prom.CounterVec)
			if ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metric %q already registered with incompatible collector type %T", metricName, alreadyRegistered.ExistingCollector)
		}

		return nil, fmt.Errorf("register metric %q: %w", metricName, err)
	}

	return collector, nil
}

// RecordResolution increments realip_resolutions_total for the provided
// outcome label.
func (m *Metrics) RecordResolution(outcome string) {
	m.resolutions.WithLabelValues(outcome).Inc()
}

// RecordSecurityEvent increments realip_security_events_total for the
// provided event label.
func (m *Metrics) RecordSecurityEvent(event string) {
	m.securityEvents.WithLabelValues(event).Inc()
}
