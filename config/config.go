package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/crmarques/bitgo/faults"
)

const (
	ClientName = "crmarques/bitgo"
	Version    = "0.3.0"
	APIPrefix  = "/api/v2"
)

// Config holds everything needed to address and authenticate against the
// custody API. It is a value type: once built by New it is never mutated and
// can be shared by every resource created in one session.
type Config struct {
	token          string
	secure         bool
	host           string
	client         string
	version        string
	defaultHeaders map[string]string
	tls            *TLS
}

type Option func(*Config)

// WithClient overrides the client identification sent as User-Agent.
func WithClient(name string, version string) Option {
	return func(c *Config) {
		if strings.TrimSpace(name) != "" {
			c.client = strings.TrimSpace(name)
		}
		if strings.TrimSpace(version) != "" {
			c.version = strings.TrimSpace(version)
		}
	}
}

func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Config) {
		c.defaultHeaders = cloneStringMap(headers)
	}
}

func WithTLS(settings *TLS) Option {
	return func(c *Config) {
		if settings == nil {
			c.tls = nil
			return
		}
		cloned := *settings
		c.tls = &cloned
	}
}

type configInput struct {
	Token string `validate:"required"`
	Host  string `validate:"required,hostname|hostname_port"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func New(token string, secure bool, host string, opts ...Option) (Config, error) {
	input := configInput{
		Token: strings.TrimSpace(token),
		Host:  normalizeHost(host),
	}
	if err := inputValidator().Struct(input); err != nil {
		return Config{}, validationError(describeValidation(err), err)
	}

	cfg := Config{
		token:   input.Token,
		secure:  secure,
		host:    input.Host,
		client:  ClientName,
		version: Version,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg, nil
}

// ValidateHost applies the host rules of New on their own, for settings that
// are stored before a token is known.
func ValidateHost(host string) error {
	if err := inputValidator().Var(normalizeHost(host), "required,hostname|hostname_port"); err != nil {
		return validationError(fmt.Sprintf("host %q is not a valid hostname", host), err)
	}
	return nil
}

func (c Config) Token() string { return c.token }

func (c Config) Secure() bool { return c.secure }

func (c Config) Host() string { return c.host }

func (c Config) Scheme() string {
	if c.secure {
		return "https"
	}
	return "http"
}

// BaseURL is the scheme, host and API prefix every request path is joined to.
func (c Config) BaseURL() string {
	return c.Scheme() + "://" + c.host + APIPrefix
}

func (c Config) UserAgent() string {
	return c.client + " v" + c.version
}

func (c Config) DefaultHeaders() map[string]string {
	return cloneStringMap(c.defaultHeaders)
}

func (c Config) TLS() *TLS {
	if c.tls == nil {
		return nil
	}
	cloned := *c.tls
	return &cloned
}

func (c Config) IsZero() bool {
	return c.token == "" && c.host == ""
}

func (c Config) String() string {
	return fmt.Sprintf("Config{host=%s secure=%t token=<redacted>}", c.host, c.secure)
}

func normalizeHost(host string) string {
	trimmed := strings.TrimSpace(host)
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	return strings.TrimSuffix(trimmed, "/")
}

func describeValidation(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid configuration"
	}

	fieldErr := validationErrors[0]
	switch fieldErr.Field() {
	case "Token":
		return "access token is required"
	case "Host":
		if fieldErr.Tag() == "required" {
			return "host is required"
		}
		return fmt.Sprintf("host %q is not a valid hostname", fieldErr.Value())
	default:
		return "invalid configuration"
	}
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func cloneStringMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}

	cloned := make(map[string]string, len(values))
	for key, value := range values {
		cloned[key] = value
	}
	return cloned
}
