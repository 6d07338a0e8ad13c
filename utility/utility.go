// Package utility holds the actions that are not scoped to a wallet:
// symmetric encryption through the signing agent, address verification and
// the health check.
package utility

import (
	"context"
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const (
	fieldInput    = "input"
	fieldPassword = "password"
	fieldAdata    = "adata"
	fieldAddress  = "address"
)

var encryptSpec = resource.Spec{
	Name:       "utility.encrypt",
	Method:     http.MethodPost,
	Path:       "/encrypt",
	Contract:   params.NewContract("utility.encrypt", fieldInput, []string{fieldInput, fieldPassword}, []string{fieldAdata}),
	Dispatches: true,
}

var encryptTable = params.Table[*Encrypt]{
	fieldInput:    params.String((*Encrypt).Input),
	fieldPassword: params.String((*Encrypt).Password),
	fieldAdata:    params.String((*Encrypt).Adata),
}

// Encrypt seals input with password. The result is the ciphertext envelope
// Decrypt accepts.
type Encrypt struct {
	resource.Base
}

// NewEncrypt accepts a mapping of fields or the plaintext.
func NewEncrypt(dispatcher server.Dispatcher, data any) *Encrypt {
	e := &Encrypt{Base: resource.NewBase(encryptSpec, dispatcher, "")}
	return resource.Init(e, &e.Base, encryptTable, data)
}

func (e *Encrypt) Input(value string) *Encrypt {
	e.Set(fieldInput, value)
	return e
}

func (e *Encrypt) GetInput() string {
	return params.Lookup[string](e.State(), fieldInput)
}

func (e *Encrypt) Password(value string) *Encrypt {
	e.Set(fieldPassword, value)
	return e
}

func (e *Encrypt) GetPassword() string {
	return params.Lookup[string](e.State(), fieldPassword)
}

// Adata is authenticated data bound to the ciphertext.
func (e *Encrypt) Adata(value string) *Encrypt {
	e.Set(fieldAdata, value)
	return e
}

func (e *Encrypt) GetAdata() string {
	return params.Lookup[string](e.State(), fieldAdata)
}

var decryptSpec = resource.Spec{
	Name:       "utility.decrypt",
	Method:     http.MethodPost,
	Path:       "/decrypt",
	Contract:   params.NewContract("utility.decrypt", fieldInput, []string{fieldInput, fieldPassword}, nil),
	Dispatches: true,
}

var decryptTable = params.Table[*Decrypt]{
	fieldInput:    params.String((*Decrypt).Input),
	fieldPassword: params.String((*Decrypt).Password),
}

type Decrypt struct {
	resource.Base
}

// NewDecrypt accepts a mapping of fields or the ciphertext.
func NewDecrypt(dispatcher server.Dispatcher, data any) *Decrypt {
	d := &Decrypt{Base: resource.NewBase(decryptSpec, dispatcher, "")}
	return resource.Init(d, &d.Base, decryptTable, data)
}

func (d *Decrypt) Input(value string) *Decrypt {
	d.Set(fieldInput, value)
	return d
}

func (d *Decrypt) GetInput() string {
	return params.Lookup[string](d.State(), fieldInput)
}

func (d *Decrypt) Password(value string) *Decrypt {
	d.Set(fieldPassword, value)
	return d
}

func (d *Decrypt) GetPassword() string {
	return params.Lookup[string](d.State(), fieldPassword)
}

var verifyAddressSpec = resource.Spec{
	Name:       "utility.verifyaddress",
	Method:     http.MethodPost,
	Path:       "/{coin}/verifyaddress",
	Contract:   params.NewContract("utility.verifyaddress", fieldAddress, []string{fieldAddress}, nil),
	Dispatches: true,
}

var verifyAddressTable = params.Table[*VerifyAddress]{
	fieldAddress: params.String((*VerifyAddress).Address),
}

// VerifyAddress asks whether address is well formed for the coin. It does
// not check ownership.
type VerifyAddress struct {
	resource.Base
}

func NewVerifyAddress(dispatcher server.Dispatcher, coinType coin.Type, data any) *VerifyAddress {
	v := &VerifyAddress{Base: resource.NewBase(verifyAddressSpec, dispatcher, coinType)}
	return resource.Init(v, &v.Base, verifyAddressTable, data)
}

func (v *VerifyAddress) Address(value string) *VerifyAddress {
	v.Set(fieldAddress, value)
	return v
}

func (v *VerifyAddress) GetAddress() string {
	return params.Lookup[string](v.State(), fieldAddress)
}

var pingSpec = resource.Spec{
	Name:       "utility.ping",
	Method:     http.MethodGet,
	Path:       "/ping",
	Contract:   params.NewContract("utility.ping", "", nil, nil),
	Dispatches: true,
}

type Ping struct {
	resource.Base
}

func NewPing(dispatcher server.Dispatcher) *Ping {
	return &Ping{Base: resource.NewBase(pingSpec, dispatcher, "")}
}

func (p *Ping) Get(ctx context.Context) (resource.Value, error) {
	return p.Run(ctx)
}
