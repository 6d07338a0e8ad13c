package resource

import (
	"context"
	"strings"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/faults"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/server"
)

const coinPlaceholder = "{coin}"

// Base carries the state every resource action shares: its static Spec, the
// dispatcher (and through it the configuration), the coin context and the
// fields set so far. Resource types embed it and add typed fluent setters.
//
// An instance is meant for one call and one goroutine.
type Base struct {
	spec       Spec
	dispatcher server.Dispatcher
	coin       coin.Type
	state      params.Bag
	err        error
}

func NewBase(spec Spec, dispatcher server.Dispatcher, coinType coin.Type) Base {
	return Base{
		spec:       spec,
		dispatcher: dispatcher,
		coin:       coinType,
	}
}

// Init mass-assigns data onto target and keeps any failure for Run, so
// constructors stay chainable.
func Init[R any](target R, base *Base, table params.Table[R], data any) R {
	base.Fail(params.Assign(target, table, base.spec.Contract.Primary(), data))
	return target
}

// Set records a declared field. Names the contract does not declare are
// ignored.
func (b *Base) Set(name string, value any) {
	if !b.spec.Contract.Declares(name) {
		return
	}
	b.state.Set(name, value)
}

func (b *Base) State() *params.Bag {
	return &b.state
}

func (b *Base) IsSet(name string) bool {
	return b.state.Has(name)
}

// Params returns the explicitly set fields.
func (b *Base) Params() params.Values {
	return b.state.Collect()
}

// Fail keeps the first non-nil error; Run reports it before anything else.
func (b *Base) Fail(err error) {
	if err == nil || b.err != nil {
		return
	}
	b.err = err
}

func (b *Base) Err() error {
	return b.err
}

func (b *Base) Coin() coin.Type {
	return b.coin
}

func (b *Base) Dispatcher() server.Dispatcher {
	return b.dispatcher
}

func (b *Base) Config() config.Config {
	if b.dispatcher == nil {
		return config.Config{}
	}
	return b.dispatcher.Config()
}

func (b *Base) Spec() Spec {
	return b.spec
}

// Run validates the required fields, collects the set ones and performs the
// action's single request. Builder-only actions return the collected fields
// instead.
func (b *Base) Run(ctx context.Context) (Value, error) {
	if b.err != nil {
		return nil, b.err
	}

	values := b.state.Collect()
	if err := b.spec.Contract.Validate(values); err != nil {
		return nil, err
	}

	if !b.spec.Dispatches {
		return map[string]any(values), nil
	}
	if b.dispatcher == nil {
		return nil, faults.NewTypedError(faults.ValidationError, b.spec.Name+": no dispatcher configured", nil)
	}

	if strings.Contains(b.spec.Path, coinPlaceholder) && b.coin != "" {
		values["coin"] = b.coin.String()
	}

	return b.dispatcher.Dispatch(ctx, server.Call{
		Resource: b.spec.Name,
		Method:   b.spec.Method,
		Path:     b.spec.Path,
		Params:   values,
	})
}
