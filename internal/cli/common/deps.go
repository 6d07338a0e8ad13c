package common

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/core"
	debugctx "github.com/crmarques/bitgo/debugctx"
)

// Connector opens a client session for the selected context.
type Connector func(ctx context.Context, selection config.ContextSelection, opts ...core.Option) (core.Session, error)

type CommandDependencies struct {
	Contexts config.ContextService
	Connect  Connector
}

func RequireContexts(deps CommandDependencies) (config.ContextService, error) {
	if deps.Contexts == nil {
		return nil, ValidationError("context service is not configured", nil)
	}
	return deps.Contexts, nil
}

// OpenSession resolves the selected context, applying a single --coin as the
// coin override, and builds a client for it.
func OpenSession(command *cobra.Command, deps CommandDependencies, globalFlags *GlobalFlags) (core.Session, error) {
	if deps.Connect == nil {
		return core.Session{}, ValidationError("client connector is not configured", nil)
	}

	selection := config.ContextSelection{Name: selectedContext(globalFlags)}
	if coins := selectedCoins(globalFlags); len(coins) == 1 {
		selection.Overrides = map[string]string{"coin": coins[0]}
	}

	var opts []core.Option
	if globalFlags != nil && globalFlags.Debug {
		opts = append(opts, core.WithLogger(DebugLogger(command)))
	}

	session, err := deps.Connect(command.Context(), selection, opts...)
	if err != nil {
		return core.Session{}, err
	}
	debugctx.Printf(command.Context(), "session context=%q host=%q coin=%q", session.Context.Name, session.Context.Host, session.DefaultCoin)
	return session, nil
}

// OpenCoin opens a session and scopes its client to the one coin selected
// by --coin or by the context.
func OpenCoin(command *cobra.Command, deps CommandDependencies, globalFlags *GlobalFlags) (*core.Coin, error) {
	if len(selectedCoins(globalFlags)) > 1 {
		return nil, ValidationError("command accepts a single --coin", nil)
	}

	session, err := OpenSession(command, deps, globalFlags)
	if err != nil {
		return nil, err
	}
	if session.DefaultCoin == "" {
		return nil, ValidationError("coin is required: pass --coin or set coin on the context", nil)
	}
	return session.Client.For(session.DefaultCoin), nil
}

// SelectedCoinTypes parses every --coin value, keeping order and dropping
// duplicates.
func SelectedCoinTypes(globalFlags *GlobalFlags) ([]coin.Type, error) {
	values := selectedCoins(globalFlags)
	seen := make(map[coin.Type]struct{}, len(values))
	coins := make([]coin.Type, 0, len(values))
	for _, value := range values {
		parsed, err := coin.Parse(value)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[parsed]; ok {
			continue
		}
		seen[parsed] = struct{}{}
		coins = append(coins, parsed)
	}
	return coins, nil
}

// DebugLogger writes client logs to stderr, including V(1) request lines.
func DebugLogger(command *cobra.Command) logr.Logger {
	writer := command.ErrOrStderr()
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			_, _ = writer.Write([]byte("debug: " + prefix + ": " + args + "\n"))
			return
		}
		_, _ = writer.Write([]byte("debug: " + args + "\n"))
	}, funcr.Options{Verbosity: 1})
}

func selectedContext(globalFlags *GlobalFlags) string {
	if globalFlags == nil {
		return ""
	}
	return strings.TrimSpace(globalFlags.Context)
}

func selectedCoins(globalFlags *GlobalFlags) []string {
	if globalFlags == nil {
		return nil
	}
	values := make([]string, 0, len(globalFlags.Coins))
	for _, value := range globalFlags.Coins {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
