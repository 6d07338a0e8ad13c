package file

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
)

func validateCatalog(contextCatalog config.ContextCatalog) error {
	if len(contextCatalog.Contexts) == 0 {
		if contextCatalog.CurrentCtx != "" {
			return validationError("current-ctx must be empty when contexts list is empty", nil)
		}
		return nil
	}

	seen := map[string]struct{}{}
	for _, item := range contextCatalog.Contexts {
		if item.Name == "" {
			return validationError("context name must not be empty", nil)
		}
		if _, exists := seen[item.Name]; exists {
			return validationError(fmt.Sprintf("duplicate context name %q", item.Name), nil)
		}
		seen[item.Name] = struct{}{}

		if err := validateConfig(item); err != nil {
			return err
		}
	}

	if contextCatalog.CurrentCtx == "" {
		return validationError("current-ctx must be set when contexts are defined", nil)
	}

	if _, exists := seen[contextCatalog.CurrentCtx]; !exists {
		return validationError(fmt.Sprintf("current-ctx %q does not match any context", contextCatalog.CurrentCtx), nil)
	}

	return nil
}

// validateConfig checks a stored context. The token may be left out and
// supplied at resolve time.
func validateConfig(cfg config.Context) error {
	cfg = normalizeConfig(cfg)

	if cfg.Name == "" {
		return validationError("context name must not be empty", nil)
	}
	if cfg.Coin != "" {
		if _, err := coin.Parse(cfg.Coin); err != nil {
			return validationError(fmt.Sprintf("context %q: coin %q is not supported", cfg.Name, cfg.Coin), err)
		}
	}
	if cfg.TLS != nil {
		if (cfg.TLS.ClientCertFile == "") != (cfg.TLS.ClientKeyFile == "") {
			return validationError(
				fmt.Sprintf("context %q: tls requires both client-cert-file and client-key-file", cfg.Name),
				nil,
			)
		}
	}
	if cfg.Host != "" {
		if err := config.ValidateHost(cfg.Host); err != nil {
			return validationError(fmt.Sprintf("context %q: host is invalid", cfg.Name), err)
		}
	}

	return nil
}

// validateResolved checks a context the same way the client will when it is
// turned into a Config.
func validateResolved(cfg config.Context) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if _, err := cfg.Config(); err != nil {
		return validationError(fmt.Sprintf("context %q cannot be used", cfg.Name), err)
	}
	return nil
}

func normalizeConfig(cfg config.Context) config.Context {
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Coin = strings.ToLower(strings.TrimSpace(cfg.Coin))
	return cfg
}

func applyConfigDefaults(cfg config.Context) config.Context {
	cfg = normalizeConfig(cfg)
	if cfg.Host == "" {
		cfg.Host = config.DefaultHost
	}
	return cfg
}

// compactConfigForPersistence drops values equal to their defaults so the
// catalog only records what the user chose.
func compactConfigForPersistence(cfg config.Context) config.Context {
	cfg = normalizeConfig(cfg)
	if cfg.Host == config.DefaultHost {
		cfg.Host = ""
	}
	if cfg.Secure != nil && *cfg.Secure {
		cfg.Secure = nil
	}
	if cfg.TLS != nil && *cfg.TLS == (config.TLS{}) {
		cfg.TLS = nil
	}
	return cfg
}

type overrideSetter func(*config.Context, string) error

// overrideSetters are keyed by the dotted catalog path of the setting. The
// same keys back --set style selection overrides and BITGO_* variables.
var overrideSetters = map[string]overrideSetter{
	"token": func(cfg *config.Context, value string) error {
		cfg.Token = value
		return nil
	},
	"host": func(cfg *config.Context, value string) error {
		cfg.Host = value
		return nil
	},
	"secure": func(cfg *config.Context, value string) error {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return validationError(fmt.Sprintf("override secure must be a boolean, got %q", value), err)
		}
		cfg.Secure = &parsed
		return nil
	},
	"coin": func(cfg *config.Context, value string) error {
		cfg.Coin = value
		return nil
	},
	"tls.ca-cert-file": func(cfg *config.Context, value string) error {
		ensureTLS(cfg).CACertFile = value
		return nil
	},
	"tls.client-cert-file": func(cfg *config.Context, value string) error {
		ensureTLS(cfg).ClientCertFile = value
		return nil
	},
	"tls.client-key-file": func(cfg *config.Context, value string) error {
		ensureTLS(cfg).ClientKeyFile = value
		return nil
	},
	"tls.insecure-skip-verify": func(cfg *config.Context, value string) error {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return validationError(fmt.Sprintf("override tls.insecure-skip-verify must be a boolean, got %q", value), err)
		}
		ensureTLS(cfg).InsecureSkipVerify = parsed
		return nil
	},
}

func ensureTLS(cfg *config.Context) *config.TLS {
	if cfg.TLS == nil {
		cfg.TLS = &config.TLS{}
	} else {
		cloned := *cfg.TLS
		cfg.TLS = &cloned
	}
	return cfg.TLS
}

func applyOverrides(cfg config.Context, overrides map[string]string) (config.Context, error) {
	for _, key := range sortedOverrideKeys(overrides) {
		setter, ok := overrideSetters[key]
		if !ok {
			return config.Context{}, unknownOverrideError(key)
		}
		if err := setter(&cfg, overrides[key]); err != nil {
			return config.Context{}, err
		}
	}

	return cfg, nil
}

func sortedOverrideKeys(overrides map[string]string) []string {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// OverrideKeys lists the settings that can be overridden at resolve time.
func OverrideKeys() []string {
	keys := make([]string, 0, len(overrideSetters))
	for key := range overrideSetters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
