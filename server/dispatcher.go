package server

import (
	"context"

	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/params"
)

// Call is one fully collected resource action, ready to be composed into an
// HTTP request.
type Call struct {
	// Resource names the action for errors, logs and metrics.
	Resource string
	Method   string
	// Path is relative to the API prefix and may contain {name} placeholders
	// that are filled from Params.
	Path   string
	Params params.Values
}

// Dispatcher composes a Call into a request, performs exactly one round trip
// and returns the decoded JSON response.
type Dispatcher interface {
	Dispatch(ctx context.Context, call Call) (any, error)
	Config() config.Config
}

// DispatcherFunc adapts a function to Dispatcher with a fixed configuration.
type DispatcherFunc struct {
	Cfg config.Config
	Fn  func(ctx context.Context, call Call) (any, error)
}

func (d DispatcherFunc) Dispatch(ctx context.Context, call Call) (any, error) {
	return d.Fn(ctx, call)
}

func (d DispatcherFunc) Config() config.Config {
	return d.Cfg
}
