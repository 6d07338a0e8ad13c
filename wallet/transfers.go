package wallet

import (
	"context"
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const fieldTransferID = "transferId"

var transfersSpec = resource.Spec{
	Name:   "wallet.transfers",
	Method: http.MethodGet,
	Path:   "/{coin}/wallet/{walletId}/transfer/{transferId}",
	Contract: params.NewContract(
		"wallet.transfers",
		fieldTransferID,
		[]string{fieldWalletID},
		[]string{fieldTransferID, fieldPrevID, fieldAllTokens, fieldLimit},
	),
	Dispatches: true,
}

var transfersTable = params.Table[*Transfers]{
	fieldWalletID:   params.String((*Transfers).WalletID),
	fieldTransferID: params.String((*Transfers).TransferID),
	fieldPrevID:     params.String((*Transfers).PrevID),
	fieldAllTokens:  params.Bool((*Transfers).AllTokens),
	fieldLimit:      params.Int((*Transfers).Limit),
}

// Transfers lists the value movements of a wallet, or fetches one when a
// transfer id is set.
type Transfers struct {
	resource.Base
}

// NewTransfers accepts a mapping of fields or the transfer id.
func NewTransfers(dispatcher server.Dispatcher, coinType coin.Type, data any) *Transfers {
	t := &Transfers{Base: resource.NewBase(transfersSpec, dispatcher, coinType)}
	return resource.Init(t, &t.Base, transfersTable, data)
}

func (t *Transfers) WalletID(value string) *Transfers {
	t.Set(fieldWalletID, value)
	return t
}

func (t *Transfers) GetWalletID() string {
	return params.Lookup[string](t.State(), fieldWalletID)
}

func (t *Transfers) TransferID(value string) *Transfers {
	t.Set(fieldTransferID, value)
	return t
}

func (t *Transfers) GetTransferID() string {
	return params.Lookup[string](t.State(), fieldTransferID)
}

func (t *Transfers) Find(transferID string) *Transfers {
	return t.TransferID(transferID)
}

func (t *Transfers) PrevID(value string) *Transfers {
	t.Set(fieldPrevID, value)
	return t
}

func (t *Transfers) GetPrevID() string {
	return params.Lookup[string](t.State(), fieldPrevID)
}

func (t *Transfers) AllTokens(value bool) *Transfers {
	t.Set(fieldAllTokens, value)
	return t
}

func (t *Transfers) GetAllTokens() bool {
	return params.Lookup[bool](t.State(), fieldAllTokens)
}

func (t *Transfers) Limit(value int) *Transfers {
	t.Set(fieldLimit, value)
	return t
}

func (t *Transfers) GetLimit() int {
	return params.Lookup[int](t.State(), fieldLimit)
}

func (t *Transfers) Get(ctx context.Context) (resource.Value, error) {
	return t.Run(ctx)
}
