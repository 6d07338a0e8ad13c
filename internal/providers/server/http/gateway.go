package http

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/internal/providers/shared/tlsconfig"
	"github.com/crmarques/bitgo/server"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMediaType   = "application/json"
	tracerName         = "github.com/crmarques/bitgo"
)

var _ server.Dispatcher = (*Gateway)(nil)

// Gateway turns resource calls into requests against the custody API. It is
// read-only after construction and safe for concurrent use.
type Gateway struct {
	cfg      config.Config
	client   *http.Client
	tlsDebug tlsDebugInfo
	logger   logr.Logger
	limiter  *rate.Limiter
	tracer   trace.Tracer
	metrics  *gatewayMetrics
}

type GatewayOption func(*Gateway) error

// WithHTTPClient replaces the whole client, including its timeout and TLS
// settings.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *Gateway) error {
		if client != nil {
			g.client = client
		}
		return nil
	}
}

// WithTransport keeps the default client and swaps its round tripper.
func WithTransport(transport http.RoundTripper) GatewayOption {
	return func(g *Gateway) error {
		if transport == nil {
			return nil
		}
		client := *g.client
		client.Transport = transport
		g.client = &client
		return nil
	}
}

func WithTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) error {
		client := *g.client
		client.Timeout = timeout
		g.client = &client
		return nil
	}
}

func WithLogger(logger logr.Logger) GatewayOption {
	return func(g *Gateway) error {
		g.logger = logger
		return nil
	}
}

// WithRateLimiter makes every dispatch wait for a token before sending.
func WithRateLimiter(limiter *rate.Limiter) GatewayOption {
	return func(g *Gateway) error {
		g.limiter = limiter
		return nil
	}
}

// WithMetrics registers request counters and latency histograms on registry.
func WithMetrics(registry prometheus.Registerer) GatewayOption {
	return func(g *Gateway) error {
		metrics, err := newGatewayMetrics(registry)
		if err != nil {
			return err
		}
		g.metrics = metrics
		return nil
	}
}

func WithTracerProvider(provider trace.TracerProvider) GatewayOption {
	return func(g *Gateway) error {
		if provider != nil {
			g.tracer = provider.Tracer(tracerName)
		}
		return nil
	}
}

func NewGateway(cfg config.Config, opts ...GatewayOption) (*Gateway, error) {
	if cfg.IsZero() {
		return nil, validationError("configuration is required", nil)
	}

	tlsConfig, err := buildTLSConfig(cfg.TLS())
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	gateway := &Gateway{
		cfg: cfg,
		client: &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		},
		tlsDebug: newTLSDebugInfo(cfg.TLS()),
		logger:   logr.Discard(),
		tracer:   noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(gateway); err != nil {
			return nil, err
		}
	}
	return gateway, nil
}

func (g *Gateway) Config() config.Config {
	return g.cfg
}

// Dispatch composes call into one request, sends it and decodes the JSON
// response. Numbers in the response are json.Number.
func (g *Gateway) Dispatch(ctx context.Context, call server.Call) (any, error) {
	spec, err := composeRequest(call)
	if err != nil {
		return nil, err
	}

	body, err := g.execute(ctx, spec)
	if err != nil {
		return nil, err
	}

	return decodeJSONResponse(body)
}

func buildTLSConfig(tlsSettings *config.TLS) (*tls.Config, error) {
	return tlsconfig.BuildTLSConfig(tlsSettings, "context")
}
