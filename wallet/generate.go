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
	fieldPassphrase             = "passphrase"
	fieldUserKey                = "userKey"
	fieldBackupXpub             = "backupXpub"
	fieldBackupXpubProvider     = "backupXpubProvider"
	fieldEnterprise             = "enterprise"
	fieldPasscodeEncryptionCode = "passcodeEncryptionCode"
	fieldColdDerivationSeed     = "coldDerivationSeed"
	fieldGasPrice               = "gasPrice"
	fieldDisableKRSEmail        = "disableKRSEmail"
)

var generateWalletSpec = resource.Spec{
	Name:   "wallet.generate",
	Method: http.MethodPost,
	Path:   "/{coin}/wallet/generate",
	Contract: params.NewContract(
		"wallet.generate",
		fieldLabel,
		[]string{fieldLabel, fieldPassphrase},
		[]string{
			fieldUserKey,
			fieldBackupXpub,
			fieldBackupXpubProvider,
			fieldEnterprise,
			fieldDisableTransactionNotifications,
			fieldPasscodeEncryptionCode,
			fieldColdDerivationSeed,
			fieldGasPrice,
			fieldDisableKRSEmail,
		},
	),
	Dispatches: true,
}

var generateWalletTable = params.Table[*GenerateWallet]{
	fieldLabel:                           params.String((*GenerateWallet).Label),
	fieldPassphrase:                      params.String((*GenerateWallet).Passphrase),
	fieldUserKey:                         params.String((*GenerateWallet).UserKey),
	fieldBackupXpub:                      params.String((*GenerateWallet).BackupXpub),
	fieldBackupXpubProvider:              params.String((*GenerateWallet).BackupXpubProvider),
	fieldEnterprise:                      params.String((*GenerateWallet).Enterprise),
	fieldDisableTransactionNotifications: params.Bool((*GenerateWallet).DisableTransactionNotifications),
	fieldPasscodeEncryptionCode:          params.String((*GenerateWallet).PasscodeEncryptionCode),
	fieldColdDerivationSeed:              params.String((*GenerateWallet).ColdDerivationSeed),
	fieldGasPrice:                        params.Amount((*GenerateWallet).GasPrice),
	fieldDisableKRSEmail:                 params.Bool((*GenerateWallet).DisableKRSEmail),
}

// GenerateWallet creates the user and backup keychains server-side and a new
// wallet from them. The passphrase encrypts the user key.
type GenerateWallet struct {
	resource.Base
}

// NewGenerateWallet accepts a mapping of fields or the wallet label.
func NewGenerateWallet(dispatcher server.Dispatcher, coinType coin.Type, data any) *GenerateWallet {
	w := &GenerateWallet{Base: resource.NewBase(generateWalletSpec, dispatcher, coinType)}
	return resource.Init(w, &w.Base, generateWalletTable, data)
}

func (w *GenerateWallet) Label(value string) *GenerateWallet {
	w.Set(fieldLabel, value)
	return w
}

func (w *GenerateWallet) GetLabel() string {
	return params.Lookup[string](w.State(), fieldLabel)
}

func (w *GenerateWallet) Passphrase(value string) *GenerateWallet {
	w.Set(fieldPassphrase, value)
	return w
}

func (w *GenerateWallet) GetPassphrase() string {
	return params.Lookup[string](w.State(), fieldPassphrase)
}

func (w *GenerateWallet) UserKey(value string) *GenerateWallet {
	w.Set(fieldUserKey, value)
	return w
}

func (w *GenerateWallet) GetUserKey() string {
	return params.Lookup[string](w.State(), fieldUserKey)
}

func (w *GenerateWallet) BackupXpub(value string) *GenerateWallet {
	w.Set(fieldBackupXpub, value)
	return w
}

func (w *GenerateWallet) GetBackupXpub() string {
	return params.Lookup[string](w.State(), fieldBackupXpub)
}

func (w *GenerateWallet) BackupXpubProvider(value string) *GenerateWallet {
	w.Set(fieldBackupXpubProvider, value)
	return w
}

func (w *GenerateWallet) GetBackupXpubProvider() string {
	return params.Lookup[string](w.State(), fieldBackupXpubProvider)
}

func (w *GenerateWallet) Enterprise(value string) *GenerateWallet {
	w.Set(fieldEnterprise, value)
	return w
}

func (w *GenerateWallet) GetEnterprise() string {
	return params.Lookup[string](w.State(), fieldEnterprise)
}

func (w *GenerateWallet) DisableTransactionNotifications(value bool) *GenerateWallet {
	w.Set(fieldDisableTransactionNotifications, value)
	return w
}

func (w *GenerateWallet) GetDisableTransactionNotifications() bool {
	return params.Lookup[bool](w.State(), fieldDisableTransactionNotifications)
}

func (w *GenerateWallet) PasscodeEncryptionCode(value string) *GenerateWallet {
	w.Set(fieldPasscodeEncryptionCode, value)
	return w
}

func (w *GenerateWallet) GetPasscodeEncryptionCode() string {
	return params.Lookup[string](w.State(), fieldPasscodeEncryptionCode)
}

func (w *GenerateWallet) ColdDerivationSeed(value string) *GenerateWallet {
	w.Set(fieldColdDerivationSeed, value)
	return w
}

func (w *GenerateWallet) GetColdDerivationSeed() string {
	return params.Lookup[string](w.State(), fieldColdDerivationSeed)
}

// GasPrice is in wei, eth/teth only.
func (w *GenerateWallet) GasPrice(value string) *GenerateWallet {
	w.Set(fieldGasPrice, value)
	return w
}

func (w *GenerateWallet) GetGasPrice() string {
	return params.Lookup[string](w.State(), fieldGasPrice)
}

func (w *GenerateWallet) DisableKRSEmail(value bool) *GenerateWallet {
	w.Set(fieldDisableKRSEmail, value)
	return w
}

func (w *GenerateWallet) GetDisableKRSEmail() bool {
	return params.Lookup[bool](w.State(), fieldDisableKRSEmail)
}

// Generate is an alias for Run.
func (w *GenerateWallet) Generate(ctx context.Context) (resource.Value, error) {
	return w.Run(ctx)
}
