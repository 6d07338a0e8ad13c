package resource

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/faults"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/server"
)

type probe struct {
	Base
}

func (p *probe) WalletID(value string) *probe {
	p.Set("walletId", value)
	return p
}

func (p *probe) Label(value string) *probe {
	p.Set("label", value)
	return p
}

var probeSpec = Spec{
	Name:       "probe.update",
	Method:     http.MethodPut,
	Path:       "/{coin}/wallet/{walletId}",
	Contract:   params.NewContract("probe.update", "walletId", []string{"walletId"}, []string{"label"}),
	Dispatches: true,
}

var probeTable = params.Table[*probe]{
	"walletId": params.String((*probe).WalletID),
	"label":    params.String((*probe).Label),
}

func newProbe(dispatcher server.Dispatcher, data any) *probe {
	p := &probe{Base: NewBase(probeSpec, dispatcher, coin.TBTC)}
	return Init(p, &p.Base, probeTable, data)
}

type recordingDispatcher struct {
	calls []server.Call
}

func (d *recordingDispatcher) Dispatch(_ context.Context, call server.Call) (any, error) {
	d.calls = append(d.calls, call)
	return map[string]any{"ok": true}, nil
}

func (d *recordingDispatcher) Config() config.Config {
	return config.Config{}
}

func TestRunDispatchesOnce(t *testing.T) {
	t.Parallel()

	dispatcher := &recordingDispatcher{}
	value, err := newProbe(dispatcher, "w1").Label("My Wallet").Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !reflect.DeepEqual(value, map[string]any{"ok": true}) {
		t.Fatalf("unexpected response %#v", value)
	}
	if len(dispatcher.calls) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(dispatcher.calls))
	}

	call := dispatcher.calls[0]
	if call.Method != http.MethodPut || call.Path != probeSpec.Path || call.Resource != "probe.update" {
		t.Fatalf("unexpected call %#v", call)
	}
	want := params.Values{"coin": "tbtc", "walletId": "w1", "label": "My Wallet"}
	if !reflect.DeepEqual(call.Params, want) {
		t.Fatalf("expected params %#v, got %#v", want, call.Params)
	}
}

func TestRunValidatesBeforeDispatch(t *testing.T) {
	t.Parallel()

	dispatcher := &recordingDispatcher{}
	_, err := newProbe(dispatcher, map[string]any{"label": "x"}).Run(context.Background())
	if !faults.IsCategory(err, faults.MissingParameterError) {
		t.Fatalf("expected missing parameter error, got %v", err)
	}
	if !reflect.DeepEqual(faults.MissingParameters(err), []string{"walletId"}) {
		t.Fatalf("unexpected missing fields %v", faults.MissingParameters(err))
	}
	if len(dispatcher.calls) != 0 {
		t.Fatalf("expected no dispatch, got %d", len(dispatcher.calls))
	}
}

func TestRunReportsAssignmentFailureFirst(t *testing.T) {
	t.Parallel()

	dispatcher := &recordingDispatcher{}
	p := newProbe(dispatcher, map[string]any{"label": true})
	p.WalletID("w1")

	_, err := p.Run(context.Background())
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(dispatcher.calls) != 0 {
		t.Fatalf("expected no dispatch")
	}

	p.Fail(errors.New("later"))
	if p.Err() != err {
		t.Fatalf("Fail must keep the first error")
	}
}

func TestBuilderOnlyReturnsParams(t *testing.T) {
	t.Parallel()

	spec := probeSpec
	spec.Dispatches = false

	dispatcher := &recordingDispatcher{}
	p := &probe{Base: NewBase(spec, dispatcher, coin.TBTC)}
	value, err := p.WalletID("w1").Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !reflect.DeepEqual(value, map[string]any{"walletId": "w1"}) {
		t.Fatalf("unexpected builder output %#v", value)
	}
	if len(dispatcher.calls) != 0 {
		t.Fatalf("builder-only action must not dispatch")
	}
}

func TestSetIgnoresUndeclaredFields(t *testing.T) {
	t.Parallel()

	p := newProbe(nil, nil)
	p.Set("undeclared", "x")
	if p.IsSet("undeclared") {
		t.Fatalf("undeclared field must be ignored")
	}
	if len(p.Params()) != 0 {
		t.Fatalf("expected no params, got %#v", p.Params())
	}
}

func TestRunWithoutDispatcher(t *testing.T) {
	t.Parallel()

	_, err := newProbe(nil, "w1").Run(context.Background())
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !newProbe(nil, nil).Config().IsZero() {
		t.Fatalf("expected zero config without dispatcher")
	}
}
