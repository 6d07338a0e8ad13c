package wallet

import (
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const (
	fieldLabel                           = "label"
	fieldApprovalsRequired               = "approvalsRequired"
	fieldDisableTransactionNotifications = "disableTransactionNotifications"
	fieldTokenFlushThresholds            = "tokenFlushThresholds"
)

var updateWalletSpec = resource.Spec{
	Name:   "wallet.update",
	Method: http.MethodPut,
	Path:   "/{coin}/wallet/{walletId}",
	Contract: params.NewContract(
		"wallet.update",
		fieldWalletID,
		[]string{fieldWalletID},
		[]string{fieldLabel, fieldApprovalsRequired, fieldDisableTransactionNotifications, fieldTokenFlushThresholds},
	),
	Dispatches: true,
}

var updateWalletTable = params.Table[*UpdateWallet]{
	fieldWalletID:                        params.String((*UpdateWallet).WalletID),
	fieldLabel:                           params.String((*UpdateWallet).Label),
	fieldApprovalsRequired:               params.Int((*UpdateWallet).ApprovalsRequired),
	fieldDisableTransactionNotifications: params.Bool((*UpdateWallet).DisableTransactionNotifications),
	fieldTokenFlushThresholds:            params.Any((*UpdateWallet).TokenFlushThresholds),
}

// UpdateWallet changes the mutable settings of a wallet.
type UpdateWallet struct {
	resource.Base
}

func NewUpdateWallet(dispatcher server.Dispatcher, coinType coin.Type, data any) *UpdateWallet {
	w := &UpdateWallet{Base: resource.NewBase(updateWalletSpec, dispatcher, coinType)}
	return resource.Init(w, &w.Base, updateWalletTable, data)
}

func (w *UpdateWallet) WalletID(value string) *UpdateWallet {
	w.Set(fieldWalletID, value)
	return w
}

func (w *UpdateWallet) GetWalletID() string {
	return params.Lookup[string](w.State(), fieldWalletID)
}

func (w *UpdateWallet) Label(value string) *UpdateWallet {
	w.Set(fieldLabel, value)
	return w
}

func (w *UpdateWallet) GetLabel() string {
	return params.Lookup[string](w.State(), fieldLabel)
}

func (w *UpdateWallet) ApprovalsRequired(value int) *UpdateWallet {
	w.Set(fieldApprovalsRequired, value)
	return w
}

func (w *UpdateWallet) GetApprovalsRequired() int {
	return params.Lookup[int](w.State(), fieldApprovalsRequired)
}

func (w *UpdateWallet) DisableTransactionNotifications(value bool) *UpdateWallet {
	w.Set(fieldDisableTransactionNotifications, value)
	return w
}

func (w *UpdateWallet) GetDisableTransactionNotifications() bool {
	return params.Lookup[bool](w.State(), fieldDisableTransactionNotifications)
}

// TokenFlushThresholds is sent as given: a per-token map on account coins or
// a single threshold.
func (w *UpdateWallet) TokenFlushThresholds(value any) *UpdateWallet {
	w.Set(fieldTokenFlushThresholds, value)
	return w
}

func (w *UpdateWallet) GetTokenFlushThresholds() any {
	return params.Lookup[any](w.State(), fieldTokenFlushThresholds)
}
