package wallet

import (
	"context"
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const fieldMinHeight = "minHeight"

var unspentsSpec = resource.Spec{
	Name:   "wallet.unspents",
	Method: http.MethodGet,
	Path:   "/{coin}/wallet/{walletId}/unspents",
	Contract: params.NewContract(
		"wallet.unspents",
		"",
		[]string{fieldWalletID},
		[]string{fieldPrevID, fieldMinValue, fieldMaxValue, fieldMinHeight, fieldMinConfirms, fieldLimit},
	),
	Dispatches: true,
}

var unspentsTable = params.Table[*Unspents]{
	fieldWalletID:    params.String((*Unspents).WalletID),
	fieldPrevID:      params.String((*Unspents).PrevID),
	fieldMinValue:    params.Amount((*Unspents).MinValue),
	fieldMaxValue:    params.Amount((*Unspents).MaxValue),
	fieldMinHeight:   params.Int64((*Unspents).MinHeight),
	fieldMinConfirms: params.Int((*Unspents).MinConfirms),
	fieldLimit:       params.Int((*Unspents).Limit),
}

// Unspents lists the unspent outputs of a UTXO wallet.
type Unspents struct {
	resource.Base
}

func NewUnspents(dispatcher server.Dispatcher, coinType coin.Type, data any) *Unspents {
	u := &Unspents{Base: resource.NewBase(unspentsSpec, dispatcher, coinType)}
	return resource.Init(u, &u.Base, unspentsTable, data)
}

func (u *Unspents) WalletID(value string) *Unspents {
	u.Set(fieldWalletID, value)
	return u
}

func (u *Unspents) GetWalletID() string {
	return params.Lookup[string](u.State(), fieldWalletID)
}

func (u *Unspents) PrevID(value string) *Unspents {
	u.Set(fieldPrevID, value)
	return u
}

func (u *Unspents) GetPrevID() string {
	return params.Lookup[string](u.State(), fieldPrevID)
}

func (u *Unspents) MinValue(value string) *Unspents {
	u.Set(fieldMinValue, value)
	return u
}

func (u *Unspents) GetMinValue() string {
	return params.Lookup[string](u.State(), fieldMinValue)
}

func (u *Unspents) MaxValue(value string) *Unspents {
	u.Set(fieldMaxValue, value)
	return u
}

func (u *Unspents) GetMaxValue() string {
	return params.Lookup[string](u.State(), fieldMaxValue)
}

func (u *Unspents) MinHeight(value int64) *Unspents {
	u.Set(fieldMinHeight, value)
	return u
}

func (u *Unspents) GetMinHeight() int64 {
	return params.Lookup[int64](u.State(), fieldMinHeight)
}

func (u *Unspents) MinConfirms(value int) *Unspents {
	u.Set(fieldMinConfirms, value)
	return u
}

func (u *Unspents) GetMinConfirms() int {
	return params.Lookup[int](u.State(), fieldMinConfirms)
}

func (u *Unspents) Limit(value int) *Unspents {
	u.Set(fieldLimit, value)
	return u
}

func (u *Unspents) GetLimit() int {
	return params.Lookup[int](u.State(), fieldLimit)
}

func (u *Unspents) Get(ctx context.Context) (resource.Value, error) {
	return u.Run(ctx)
}

var maximumSpendableSpec = resource.Spec{
	Name:   "wallet.maximum-spendable",
	Method: http.MethodGet,
	Path:   "/{coin}/wallet/{walletId}/maximumSpendable",
	Contract: params.NewContract(
		"wallet.maximum-spendable",
		"",
		[]string{fieldWalletID},
		[]string{
			fieldLimit,
			fieldMinValue,
			fieldMaxValue,
			fieldMinHeight,
			fieldFeeRate,
			fieldMinConfirms,
			fieldEnforceMinConfirmsForChange,
		},
	),
	Dispatches: true,
}

var maximumSpendableTable = params.Table[*MaximumSpendable]{
	fieldWalletID:                    params.String((*MaximumSpendable).WalletID),
	fieldLimit:                       params.Int((*MaximumSpendable).Limit),
	fieldMinValue:                    params.Amount((*MaximumSpendable).MinValue),
	fieldMaxValue:                    params.Amount((*MaximumSpendable).MaxValue),
	fieldMinHeight:                   params.Int64((*MaximumSpendable).MinHeight),
	fieldFeeRate:                     params.Amount((*MaximumSpendable).FeeRate),
	fieldMinConfirms:                 params.Int((*MaximumSpendable).MinConfirms),
	fieldEnforceMinConfirmsForChange: params.Bool((*MaximumSpendable).EnforceMinConfirmsForChange),
}

// MaximumSpendable reports the largest amount one transaction from the
// wallet can send after fees.
type MaximumSpendable struct {
	resource.Base
}

func NewMaximumSpendable(dispatcher server.Dispatcher, coinType coin.Type, data any) *MaximumSpendable {
	m := &MaximumSpendable{Base: resource.NewBase(maximumSpendableSpec, dispatcher, coinType)}
	return resource.Init(m, &m.Base, maximumSpendableTable, data)
}

func (m *MaximumSpendable) WalletID(value string) *MaximumSpendable {
	m.Set(fieldWalletID, value)
	return m
}

func (m *MaximumSpendable) GetWalletID() string {
	return params.Lookup[string](m.State(), fieldWalletID)
}

func (m *MaximumSpendable) Limit(value int) *MaximumSpendable {
	m.Set(fieldLimit, value)
	return m
}

func (m *MaximumSpendable) GetLimit() int {
	return params.Lookup[int](m.State(), fieldLimit)
}

func (m *MaximumSpendable) MinValue(value string) *MaximumSpendable {
	m.Set(fieldMinValue, value)
	return m
}

func (m *MaximumSpendable) GetMinValue() string {
	return params.Lookup[string](m.State(), fieldMinValue)
}

func (m *MaximumSpendable) MaxValue(value string) *MaximumSpendable {
	m.Set(fieldMaxValue, value)
	return m
}

func (m *MaximumSpendable) GetMaxValue() string {
	return params.Lookup[string](m.State(), fieldMaxValue)
}

func (m *MaximumSpendable) MinHeight(value int64) *MaximumSpendable {
	m.Set(fieldMinHeight, value)
	return m
}

func (m *MaximumSpendable) GetMinHeight() int64 {
	return params.Lookup[int64](m.State(), fieldMinHeight)
}

func (m *MaximumSpendable) FeeRate(value string) *MaximumSpendable {
	m.Set(fieldFeeRate, value)
	return m
}

func (m *MaximumSpendable) GetFeeRate() string {
	return params.Lookup[string](m.State(), fieldFeeRate)
}

func (m *MaximumSpendable) MinConfirms(value int) *MaximumSpendable {
	m.Set(fieldMinConfirms, value)
	return m
}

func (m *MaximumSpendable) GetMinConfirms() int {
	return params.Lookup[int](m.State(), fieldMinConfirms)
}

func (m *MaximumSpendable) EnforceMinConfirmsForChange(value bool) *MaximumSpendable {
	m.Set(fieldEnforceMinConfirmsForChange, value)
	return m
}

func (m *MaximumSpendable) GetEnforceMinConfirmsForChange() bool {
	return params.Lookup[bool](m.State(), fieldEnforceMinConfirmsForChange)
}

func (m *MaximumSpendable) Get(ctx context.Context) (resource.Value, error) {
	return m.Run(ctx)
}
