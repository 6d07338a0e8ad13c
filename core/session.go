package core

import (
	"context"
	"fmt"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
	configfile "github.com/crmarques/bitgo/internal/providers/config/file"
)

type BootstrapConfig struct {
	ContextCatalogPath string
	// LookupEnv replaces os.LookupEnv when resolving BITGO_* overrides.
	LookupEnv func(string) (string, bool)
}

// Session is a client bound to a resolved context.
type Session struct {
	Contexts config.ContextService
	Context  config.Context
	Client   *Bitgo
	// DefaultCoin is the context's coin, empty when it has none.
	DefaultCoin coin.Type
}

func NewContextService(opts BootstrapConfig) config.ContextService {
	var serviceOpts []configfile.Option
	if opts.LookupEnv != nil {
		serviceOpts = append(serviceOpts, configfile.WithEnvLookup(opts.LookupEnv))
	}
	return configfile.NewFileContextService(opts.ContextCatalogPath, serviceOpts...)
}

// OverrideKeys lists the keys ContextSelection.Overrides accepts.
func OverrideKeys() []string {
	return configfile.OverrideKeys()
}

// OverrideEnvVars maps each override key to the variable that sets it.
func OverrideEnvVars() map[string]string {
	return configfile.EnvVarNames()
}

func NewSession(
	ctx context.Context,
	opts BootstrapConfig,
	selection config.ContextSelection,
	clientOpts ...Option,
) (Session, error) {
	contexts := NewContextService(opts)

	resolved, err := contexts.ResolveContext(ctx, selection)
	if err != nil {
		return Session{}, err
	}

	cfg, err := resolved.Config()
	if err != nil {
		return Session{}, err
	}

	client, err := New(cfg, clientOpts...)
	if err != nil {
		return Session{}, err
	}

	var defaultCoin coin.Type
	if resolved.Coin != "" {
		defaultCoin, err = coin.Parse(resolved.Coin)
		if err != nil {
			return Session{}, validationError(
				fmt.Sprintf("context %q: coin %q is not supported", resolved.Name, resolved.Coin),
				err,
			)
		}
	}

	return Session{
		Contexts:    contexts,
		Context:     resolved,
		Client:      client,
		DefaultCoin: defaultCoin,
	}, nil
}
