package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/core"
	"github.com/crmarques/bitgo/internal/cli"
)

const dotEnvPath = ".env"

func main() {
	if err := loadDotEnv(dotEnvPath); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := cli.Execute(newDependencies(core.BootstrapConfig{})); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newDependencies(bootstrap core.BootstrapConfig) cli.Dependencies {
	return cli.Dependencies{
		Contexts: core.NewContextService(bootstrap),
		Connect: func(ctx context.Context, selection config.ContextSelection, opts ...core.Option) (core.Session, error) {
			return core.NewSession(ctx, bootstrap, selection, opts...)
		},
	}
}

// loadDotEnv exports the variables of an optional dotenv file. Variables
// already set in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func exitCodeForError(err error) int {
	return cli.ExitCodeForError(err)
}
