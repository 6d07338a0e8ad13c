package wallet

import (
	"context"
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const (
	fieldAddress       = "address"
	fieldSortOrder     = "sortOrder"
	fieldLabelContains = "labelContains"
	fieldSegwit        = "segwit"
	fieldChain         = "chain"
	fieldLowPriority   = "lowPriority"
)

var walletByAddressSpec = resource.Spec{
	Name:       "wallet.by-address",
	Method:     http.MethodGet,
	Path:       "/{coin}/wallet/address/{address}",
	Contract:   params.NewContract("wallet.by-address", fieldAddress, []string{fieldAddress}, nil),
	Dispatches: true,
}

var walletByAddressTable = params.Table[*WalletByAddress]{
	fieldAddress: params.String((*WalletByAddress).Address),
}

// WalletByAddress finds the wallet that owns a receive address.
type WalletByAddress struct {
	resource.Base
}

func NewWalletByAddress(dispatcher server.Dispatcher, coinType coin.Type, data any) *WalletByAddress {
	w := &WalletByAddress{Base: resource.NewBase(walletByAddressSpec, dispatcher, coinType)}
	return resource.Init(w, &w.Base, walletByAddressTable, data)
}

func (w *WalletByAddress) Address(value string) *WalletByAddress {
	w.Set(fieldAddress, value)
	return w
}

func (w *WalletByAddress) GetAddress() string {
	return params.Lookup[string](w.State(), fieldAddress)
}

func (w *WalletByAddress) Get(ctx context.Context) (resource.Value, error) {
	return w.Run(ctx)
}

var addressesSpec = resource.Spec{
	Name:   "wallet.addresses",
	Method: http.MethodGet,
	Path:   "/{coin}/wallet/{walletId}/address/{address}",
	Contract: params.NewContract(
		"wallet.addresses",
		fieldAddress,
		[]string{fieldWalletID},
		[]string{fieldAddress, fieldLimit, fieldPrevID, fieldSortOrder, fieldLabelContains, fieldSegwit},
	),
	Dispatches: true,
}

var addressesTable = params.Table[*Addresses]{
	fieldWalletID:      params.String((*Addresses).WalletID),
	fieldAddress:       params.String((*Addresses).Address),
	fieldLimit:         params.Int((*Addresses).Limit),
	fieldPrevID:        params.String((*Addresses).PrevID),
	fieldSortOrder:     params.Int((*Addresses).SortOrder),
	fieldLabelContains: params.String((*Addresses).LabelContains),
	fieldSegwit:        params.Bool((*Addresses).Segwit),
}

// Addresses lists the receive addresses of a wallet, or fetches one when an
// address is set.
type Addresses struct {
	resource.Base
}

// NewAddresses accepts a mapping of fields or the address to fetch.
func NewAddresses(dispatcher server.Dispatcher, coinType coin.Type, data any) *Addresses {
	a := &Addresses{Base: resource.NewBase(addressesSpec, dispatcher, coinType)}
	return resource.Init(a, &a.Base, addressesTable, data)
}

func (a *Addresses) WalletID(value string) *Addresses {
	a.Set(fieldWalletID, value)
	return a
}

func (a *Addresses) GetWalletID() string {
	return params.Lookup[string](a.State(), fieldWalletID)
}

func (a *Addresses) Address(value string) *Addresses {
	a.Set(fieldAddress, value)
	return a
}

func (a *Addresses) GetAddress() string {
	return params.Lookup[string](a.State(), fieldAddress)
}

// Find is Address under the name used for lookups.
func (a *Addresses) Find(address string) *Addresses {
	return a.Address(address)
}

func (a *Addresses) Limit(value int) *Addresses {
	a.Set(fieldLimit, value)
	return a
}

func (a *Addresses) GetLimit() int {
	return params.Lookup[int](a.State(), fieldLimit)
}

func (a *Addresses) PrevID(value string) *Addresses {
	a.Set(fieldPrevID, value)
	return a
}

func (a *Addresses) GetPrevID() string {
	return params.Lookup[string](a.State(), fieldPrevID)
}

// SortOrder is 1 for ascending and -1 for descending creation time.
func (a *Addresses) SortOrder(value int) *Addresses {
	a.Set(fieldSortOrder, value)
	return a
}

func (a *Addresses) GetSortOrder() int {
	return params.Lookup[int](a.State(), fieldSortOrder)
}

func (a *Addresses) LabelContains(value string) *Addresses {
	a.Set(fieldLabelContains, value)
	return a
}

func (a *Addresses) GetLabelContains() string {
	return params.Lookup[string](a.State(), fieldLabelContains)
}

func (a *Addresses) Segwit(value bool) *Addresses {
	a.Set(fieldSegwit, value)
	return a
}

func (a *Addresses) GetSegwit() bool {
	return params.Lookup[bool](a.State(), fieldSegwit)
}

func (a *Addresses) Get(ctx context.Context) (resource.Value, error) {
	return a.Run(ctx)
}

// Create starts a CreateAddress on the same wallet.
func (a *Addresses) Create(data any) *CreateAddress {
	child := &CreateAddress{Base: inherit(&a.Base, createAddressSpec)}
	return resource.Init(child, &child.Base, createAddressTable, data)
}

var createAddressSpec = resource.Spec{
	Name:   "wallet.address.create",
	Method: http.MethodPost,
	Path:   "/{coin}/wallet/{walletId}/address",
	Contract: params.NewContract(
		"wallet.address.create",
		fieldLabel,
		[]string{fieldWalletID},
		[]string{fieldLabel, fieldChain, fieldLowPriority, fieldGasPrice},
	),
	Dispatches: true,
}

var createAddressTable = params.Table[*CreateAddress]{
	fieldWalletID:    params.String((*CreateAddress).WalletID),
	fieldLabel:       params.String((*CreateAddress).Label),
	fieldChain:       params.Int((*CreateAddress).Chain),
	fieldLowPriority: params.Bool((*CreateAddress).LowPriority),
	fieldGasPrice:    params.Amount((*CreateAddress).GasPrice),
}

// CreateAddress derives a new receive address on a wallet.
type CreateAddress struct {
	resource.Base
}

// NewCreateAddress accepts a mapping of fields or the address label.
func NewCreateAddress(dispatcher server.Dispatcher, coinType coin.Type, data any) *CreateAddress {
	a := &CreateAddress{Base: resource.NewBase(createAddressSpec, dispatcher, coinType)}
	return resource.Init(a, &a.Base, createAddressTable, data)
}

func (a *CreateAddress) WalletID(value string) *CreateAddress {
	a.Set(fieldWalletID, value)
	return a
}

func (a *CreateAddress) GetWalletID() string {
	return params.Lookup[string](a.State(), fieldWalletID)
}

func (a *CreateAddress) Label(value string) *CreateAddress {
	a.Set(fieldLabel, value)
	return a
}

func (a *CreateAddress) GetLabel() string {
	return params.Lookup[string](a.State(), fieldLabel)
}

// Chain selects the derivation chain: 0/1 legacy, 10/11 segwit, 20/21 native
// segwit (even for receive, odd for change).
func (a *CreateAddress) Chain(value int) *CreateAddress {
	a.Set(fieldChain, value)
	return a
}

func (a *CreateAddress) GetChain() int {
	return params.Lookup[int](a.State(), fieldChain)
}

func (a *CreateAddress) LowPriority(value bool) *CreateAddress {
	a.Set(fieldLowPriority, value)
	return a
}

func (a *CreateAddress) GetLowPriority() bool {
	return params.Lookup[bool](a.State(), fieldLowPriority)
}

func (a *CreateAddress) GasPrice(value string) *CreateAddress {
	a.Set(fieldGasPrice, value)
	return a
}

func (a *CreateAddress) GetGasPrice() string {
	return params.Lookup[string](a.State(), fieldGasPrice)
}
