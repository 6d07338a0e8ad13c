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
	fieldTxPrebuild       = "txPrebuild"
	fieldPrv              = "prv"
	fieldKeychain         = "keychain"
	fieldWalletPassphrase = "walletPassphrase"
	fieldTxHex            = "txHex"
	fieldOTP              = "otp"
	fieldHalfSigned       = "halfSigned"
	fieldComment          = "comment"
)

// Signing is local to the caller; this action never reaches the API.
var signTransactionSpec = resource.Spec{
	Name:   "wallet.tx.sign",
	Method: http.MethodPost,
	Path:   "/{coin}/wallet/{walletId}/signtx",
	Contract: params.NewContract(
		"wallet.tx.sign",
		"",
		[]string{fieldWalletID, fieldTxPrebuild},
		[]string{fieldPrv, fieldKeychain, fieldColdDerivationSeed, fieldWalletPassphrase},
	),
	Dispatches: false,
}

var signTransactionTable = params.Table[*SignTransaction]{
	fieldWalletID:           params.String((*SignTransaction).WalletID),
	fieldTxPrebuild:         params.Object((*SignTransaction).TxPrebuild),
	fieldPrv:                params.String((*SignTransaction).Prv),
	fieldKeychain:           params.Object((*SignTransaction).Keychain),
	fieldColdDerivationSeed: params.String((*SignTransaction).ColdDerivationSeed),
	fieldWalletPassphrase:   params.String((*SignTransaction).WalletPassphrase),
}

// SignTransaction collects what a signer needs for a prebuilt transaction.
// Run returns the collected parameters and performs no request.
type SignTransaction struct {
	resource.Base
}

func NewSignTransaction(dispatcher server.Dispatcher, coinType coin.Type, data any) *SignTransaction {
	s := &SignTransaction{Base: resource.NewBase(signTransactionSpec, dispatcher, coinType)}
	return resource.Init(s, &s.Base, signTransactionTable, data)
}

func (s *SignTransaction) WalletID(value string) *SignTransaction {
	s.Set(fieldWalletID, value)
	return s
}

func (s *SignTransaction) GetWalletID() string {
	return params.Lookup[string](s.State(), fieldWalletID)
}

// TxPrebuild is the response of BuildTransaction.
func (s *SignTransaction) TxPrebuild(value map[string]any) *SignTransaction {
	s.Set(fieldTxPrebuild, value)
	return s
}

func (s *SignTransaction) GetTxPrebuild() map[string]any {
	return params.Lookup[map[string]any](s.State(), fieldTxPrebuild)
}

func (s *SignTransaction) Prv(value string) *SignTransaction {
	s.Set(fieldPrv, value)
	return s
}

func (s *SignTransaction) GetPrv() string {
	return params.Lookup[string](s.State(), fieldPrv)
}

func (s *SignTransaction) Keychain(value map[string]any) *SignTransaction {
	s.Set(fieldKeychain, value)
	return s
}

func (s *SignTransaction) GetKeychain() map[string]any {
	return params.Lookup[map[string]any](s.State(), fieldKeychain)
}

func (s *SignTransaction) ColdDerivationSeed(value string) *SignTransaction {
	s.Set(fieldColdDerivationSeed, value)
	return s
}

func (s *SignTransaction) GetColdDerivationSeed() string {
	return params.Lookup[string](s.State(), fieldColdDerivationSeed)
}

func (s *SignTransaction) WalletPassphrase(value string) *SignTransaction {
	s.Set(fieldWalletPassphrase, value)
	return s
}

func (s *SignTransaction) GetWalletPassphrase() string {
	return params.Lookup[string](s.State(), fieldWalletPassphrase)
}

var sendTransactionSpec = resource.Spec{
	Name:   "wallet.tx.send",
	Method: http.MethodPost,
	Path:   "/{coin}/wallet/{walletId}/tx/send",
	Contract: params.NewContract(
		"wallet.tx.send",
		fieldTxHex,
		[]string{fieldWalletID, fieldTxHex},
		[]string{fieldOTP, fieldHalfSigned, fieldComment},
	),
	Dispatches: true,
}

var sendTransactionTable = params.Table[*SendTransaction]{
	fieldWalletID:   params.String((*SendTransaction).WalletID),
	fieldTxHex:      params.String((*SendTransaction).TxHex),
	fieldOTP:        params.String((*SendTransaction).OTP),
	fieldHalfSigned: params.Object((*SendTransaction).HalfSigned),
	fieldComment:    params.String((*SendTransaction).Comment),
}

// SendTransaction submits a half-signed transaction for cosigning and
// broadcast.
type SendTransaction struct {
	resource.Base
}

// NewSendTransaction accepts a mapping of fields or the transaction hex.
func NewSendTransaction(dispatcher server.Dispatcher, coinType coin.Type, data any) *SendTransaction {
	s := &SendTransaction{Base: resource.NewBase(sendTransactionSpec, dispatcher, coinType)}
	return resource.Init(s, &s.Base, sendTransactionTable, data)
}

func (s *SendTransaction) WalletID(value string) *SendTransaction {
	s.Set(fieldWalletID, value)
	return s
}

func (s *SendTransaction) GetWalletID() string {
	return params.Lookup[string](s.State(), fieldWalletID)
}

func (s *SendTransaction) TxHex(value string) *SendTransaction {
	s.Set(fieldTxHex, value)
	return s
}

func (s *SendTransaction) GetTxHex() string {
	return params.Lookup[string](s.State(), fieldTxHex)
}

func (s *SendTransaction) OTP(value string) *SendTransaction {
	s.Set(fieldOTP, value)
	return s
}

func (s *SendTransaction) GetOTP() string {
	return params.Lookup[string](s.State(), fieldOTP)
}

func (s *SendTransaction) HalfSigned(value map[string]any) *SendTransaction {
	s.Set(fieldHalfSigned, value)
	return s
}

func (s *SendTransaction) GetHalfSigned() map[string]any {
	return params.Lookup[map[string]any](s.State(), fieldHalfSigned)
}

func (s *SendTransaction) Comment(value string) *SendTransaction {
	s.Set(fieldComment, value)
	return s
}

func (s *SendTransaction) GetComment() string {
	return params.Lookup[string](s.State(), fieldComment)
}

// Send is an alias for Run.
func (s *SendTransaction) Send(ctx context.Context) (resource.Value, error) {
	return s.Run(ctx)
}
