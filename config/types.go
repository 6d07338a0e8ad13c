package config

type ContextSelection struct {
	Name      string
	Overrides map[string]string
}

const (
	ContextFileEnvVar         = "BITGO_CONTEXTS_FILE"
	DefaultContextCatalogPath = "~/.bitgo/contexts.yaml"
	DefaultHost               = "test.bitgo.com"
)

type ContextCatalog struct {
	Contexts   []Context `yaml:"contexts"`
	CurrentCtx string    `yaml:"current-ctx"`
}

// Context is one named, persisted set of connection settings. It is turned
// into an immutable Config with Context.Config.
type Context struct {
	Name           string            `yaml:"name"`
	Token          string            `yaml:"token"`
	Host           string            `yaml:"host,omitempty"`
	Secure         *bool             `yaml:"secure,omitempty"`
	Coin           string            `yaml:"coin,omitempty"`
	DefaultHeaders map[string]string `yaml:"default-headers,omitempty"`
	TLS            *TLS              `yaml:"tls,omitempty"`
}

func (c Context) SecureEnabled() bool {
	if c.Secure == nil {
		return true
	}
	return *c.Secure
}

// Redacted returns a copy safe to print.
func (c Context) Redacted() Context {
	if c.Token != "" {
		c.Token = "<redacted>"
	}
	return c
}

func (c Context) Config() (Config, error) {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	return New(c.Token, c.SecureEnabled(), host, WithDefaultHeaders(c.DefaultHeaders), WithTLS(c.TLS))
}

type TLS struct {
	CACertFile         string `yaml:"ca-cert-file,omitempty"`
	ClientCertFile     string `yaml:"client-cert-file,omitempty"`
	ClientKeyFile      string `yaml:"client-key-file,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure-skip-verify,omitempty"`
}
