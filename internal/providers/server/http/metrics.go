package http

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type gatewayMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newGatewayMetrics(registry prometheus.Registerer) (*gatewayMetrics, error) {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitgo",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests sent to the custody API by resource, method and status.",
		},
		[]string{"resource", "method", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bitgo",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of requests to the custody API.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)

	var err error
	if requests, err = register(registry, requests); err != nil {
		return nil, err
	}
	if duration, err = register(registry, duration); err != nil {
		return nil, err
	}

	return &gatewayMetrics{requests: requests, duration: duration}, nil
}

// register returns the already registered collector when another gateway
// on the same registry got there first.
func register[C prometheus.Collector](registry prometheus.Registerer, collector C) (C, error) {
	if err := registry.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, internalError("failed to register gateway metrics", err)
	}
	return collector, nil
}

func (m *gatewayMetrics) observe(resourceName string, method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(resourceName, method, statusLabel(statusCode)).Inc()
	m.duration.WithLabelValues(resourceName, method).Observe(elapsed.Seconds())
}
