package wallet

import (
	"context"
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const fieldAmount = "amount"

// options shared by sendcoins and sendmany
var sendOptions = []string{
	fieldPrv,
	fieldNumBlocks,
	fieldFeeRate,
	fieldMaxFeeRate,
	fieldComment,
	fieldMinConfirms,
	fieldEnforceMinConfirmsForChange,
	fieldSequenceID,
	fieldGasPrice,
	fieldNoSplitChange,
	fieldUnspents,
	fieldOTP,
	fieldMessage,
	fieldTargetWalletUnspents,
}

var sendCoinsSpec = resource.Spec{
	Name:   "wallet.sendcoins",
	Method: http.MethodPost,
	Path:   "/{coin}/wallet/{walletId}/sendcoins",
	Contract: params.NewContract(
		"wallet.sendcoins",
		"",
		[]string{fieldWalletID, fieldAddress, fieldAmount, fieldWalletPassphrase},
		append([]string{fieldInstant, fieldMemo}, sendOptions...),
	),
	Dispatches: true,
}

var sendCoinsTable = params.Table[*SendCoins]{
	fieldWalletID:                    params.String((*SendCoins).WalletID),
	fieldAddress:                     params.String((*SendCoins).Address),
	fieldAmount:                      params.Amount((*SendCoins).Amount),
	fieldWalletPassphrase:            params.String((*SendCoins).WalletPassphrase),
	fieldPrv:                         params.String((*SendCoins).Prv),
	fieldNumBlocks:                   params.Int((*SendCoins).NumBlocks),
	fieldFeeRate:                     params.Amount((*SendCoins).FeeRate),
	fieldMaxFeeRate:                  params.Amount((*SendCoins).MaxFeeRate),
	fieldComment:                     params.String((*SendCoins).Comment),
	fieldMinConfirms:                 params.Int((*SendCoins).MinConfirms),
	fieldEnforceMinConfirmsForChange: params.Bool((*SendCoins).EnforceMinConfirmsForChange),
	fieldSequenceID:                  params.String((*SendCoins).SequenceID),
	fieldGasPrice:                    params.Amount((*SendCoins).GasPrice),
	fieldNoSplitChange:               params.Bool((*SendCoins).NoSplitChange),
	fieldUnspents:                    params.Strings((*SendCoins).Unspents),
	fieldOTP:                         params.String((*SendCoins).OTP),
	fieldMessage:                     params.String((*SendCoins).Message),
	fieldTargetWalletUnspents:        params.Int((*SendCoins).TargetWalletUnspents),
	fieldInstant:                     params.Bool((*SendCoins).Instant),
	fieldMemo:                        params.Object((*SendCoins).Memo),
}

// SendCoins builds, signs and sends a payment to one address in a single
// call. Amounts are integral base units.
type SendCoins struct {
	resource.Base
}

func NewSendCoins(dispatcher server.Dispatcher, coinType coin.Type, data any) *SendCoins {
	s := &SendCoins{Base: resource.NewBase(sendCoinsSpec, dispatcher, coinType)}
	return resource.Init(s, &s.Base, sendCoinsTable, data)
}

func (s *SendCoins) WalletID(value string) *SendCoins {
	s.Set(fieldWalletID, value)
	return s
}

func (s *SendCoins) GetWalletID() string {
	return params.Lookup[string](s.State(), fieldWalletID)
}

func (s *SendCoins) Address(value string) *SendCoins {
	s.Set(fieldAddress, value)
	return s
}

func (s *SendCoins) GetAddress() string {
	return params.Lookup[string](s.State(), fieldAddress)
}

func (s *SendCoins) Amount(value string) *SendCoins {
	s.Set(fieldAmount, value)
	return s
}

func (s *SendCoins) GetAmount() string {
	return params.Lookup[string](s.State(), fieldAmount)
}

func (s *SendCoins) WalletPassphrase(value string) *SendCoins {
	s.Set(fieldWalletPassphrase, value)
	return s
}

func (s *SendCoins) GetWalletPassphrase() string {
	return params.Lookup[string](s.State(), fieldWalletPassphrase)
}

func (s *SendCoins) Prv(value string) *SendCoins {
	s.Set(fieldPrv, value)
	return s
}

func (s *SendCoins) GetPrv() string {
	return params.Lookup[string](s.State(), fieldPrv)
}

func (s *SendCoins) NumBlocks(value int) *SendCoins {
	s.Set(fieldNumBlocks, value)
	return s
}

func (s *SendCoins) GetNumBlocks() int {
	return params.Lookup[int](s.State(), fieldNumBlocks)
}

func (s *SendCoins) FeeRate(value string) *SendCoins {
	s.Set(fieldFeeRate, value)
	return s
}

func (s *SendCoins) GetFeeRate() string {
	return params.Lookup[string](s.State(), fieldFeeRate)
}

func (s *SendCoins) MaxFeeRate(value string) *SendCoins {
	s.Set(fieldMaxFeeRate, value)
	return s
}

func (s *SendCoins) GetMaxFeeRate() string {
	return params.Lookup[string](s.State(), fieldMaxFeeRate)
}

func (s *SendCoins) Comment(value string) *SendCoins {
	s.Set(fieldComment, value)
	return s
}

func (s *SendCoins) GetComment() string {
	return params.Lookup[string](s.State(), fieldComment)
}

func (s *SendCoins) MinConfirms(value int) *SendCoins {
	s.Set(fieldMinConfirms, value)
	return s
}

func (s *SendCoins) GetMinConfirms() int {
	return params.Lookup[int](s.State(), fieldMinConfirms)
}

func (s *SendCoins) EnforceMinConfirmsForChange(value bool) *SendCoins {
	s.Set(fieldEnforceMinConfirmsForChange, value)
	return s
}

func (s *SendCoins) GetEnforceMinConfirmsForChange() bool {
	return params.Lookup[bool](s.State(), fieldEnforceMinConfirmsForChange)
}

// SequenceID is a caller-chosen unique id the server uses to reject
// duplicate sends.
func (s *SendCoins) SequenceID(value string) *SendCoins {
	s.Set(fieldSequenceID, value)
	return s
}

func (s *SendCoins) GetSequenceID() string {
	return params.Lookup[string](s.State(), fieldSequenceID)
}

func (s *SendCoins) GasPrice(value string) *SendCoins {
	s.Set(fieldGasPrice, value)
	return s
}

func (s *SendCoins) GetGasPrice() string {
	return params.Lookup[string](s.State(), fieldGasPrice)
}

func (s *SendCoins) NoSplitChange(value bool) *SendCoins {
	s.Set(fieldNoSplitChange, value)
	return s
}

func (s *SendCoins) GetNoSplitChange() bool {
	return params.Lookup[bool](s.State(), fieldNoSplitChange)
}

func (s *SendCoins) Unspents(value []string) *SendCoins {
	s.Set(fieldUnspents, value)
	return s
}

func (s *SendCoins) GetUnspents() []string {
	return params.Lookup[[]string](s.State(), fieldUnspents)
}

func (s *SendCoins) OTP(value string) *SendCoins {
	s.Set(fieldOTP, value)
	return s
}

func (s *SendCoins) GetOTP() string {
	return params.Lookup[string](s.State(), fieldOTP)
}

func (s *SendCoins) Message(value string) *SendCoins {
	s.Set(fieldMessage, value)
	return s
}

func (s *SendCoins) GetMessage() string {
	return params.Lookup[string](s.State(), fieldMessage)
}

func (s *SendCoins) TargetWalletUnspents(value int) *SendCoins {
	s.Set(fieldTargetWalletUnspents, value)
	return s
}

func (s *SendCoins) GetTargetWalletUnspents() int {
	return params.Lookup[int](s.State(), fieldTargetWalletUnspents)
}

func (s *SendCoins) Instant(value bool) *SendCoins {
	s.Set(fieldInstant, value)
	return s
}

func (s *SendCoins) GetInstant() bool {
	return params.Lookup[bool](s.State(), fieldInstant)
}

func (s *SendCoins) Memo(value map[string]any) *SendCoins {
	s.Set(fieldMemo, value)
	return s
}

func (s *SendCoins) GetMemo() map[string]any {
	return params.Lookup[map[string]any](s.State(), fieldMemo)
}

func (s *SendCoins) Send(ctx context.Context) (resource.Value, error) {
	return s.Run(ctx)
}

var sendManySpec = resource.Spec{
	Name:   "wallet.sendmany",
	Method: http.MethodPost,
	Path:   "/{coin}/wallet/{walletId}/sendmany",
	Contract: params.NewContract(
		"wallet.sendmany",
		"",
		[]string{fieldWalletID, fieldRecipients, fieldWalletPassphrase},
		sendOptions,
	),
	Dispatches: true,
}

var sendManyTable = params.Table[*SendMany]{
	fieldWalletID:                    params.String((*SendMany).WalletID),
	fieldRecipients:                  params.List((*SendMany).Recipients),
	fieldWalletPassphrase:            params.String((*SendMany).WalletPassphrase),
	fieldPrv:                         params.String((*SendMany).Prv),
	fieldNumBlocks:                   params.Int((*SendMany).NumBlocks),
	fieldFeeRate:                     params.Amount((*SendMany).FeeRate),
	fieldMaxFeeRate:                  params.Amount((*SendMany).MaxFeeRate),
	fieldComment:                     params.String((*SendMany).Comment),
	fieldMinConfirms:                 params.Int((*SendMany).MinConfirms),
	fieldEnforceMinConfirmsForChange: params.Bool((*SendMany).EnforceMinConfirmsForChange),
	fieldSequenceID:                  params.String((*SendMany).SequenceID),
	fieldGasPrice:                    params.Amount((*SendMany).GasPrice),
	fieldNoSplitChange:               params.Bool((*SendMany).NoSplitChange),
	fieldUnspents:                    params.Strings((*SendMany).Unspents),
	fieldOTP:                         params.String((*SendMany).OTP),
	fieldMessage:                     params.String((*SendMany).Message),
	fieldTargetWalletUnspents:        params.Int((*SendMany).TargetWalletUnspents),
}

// SendMany pays several recipients in one transaction.
type SendMany struct {
	resource.Base
}

func NewSendMany(dispatcher server.Dispatcher, coinType coin.Type, data any) *SendMany {
	s := &SendMany{Base: resource.NewBase(sendManySpec, dispatcher, coinType)}
	return resource.Init(s, &s.Base, sendManyTable, data)
}

func (s *SendMany) WalletID(value string) *SendMany {
	s.Set(fieldWalletID, value)
	return s
}

func (s *SendMany) GetWalletID() string {
	return params.Lookup[string](s.State(), fieldWalletID)
}

func (s *SendMany) Recipients(value []any) *SendMany {
	s.Set(fieldRecipients, value)
	return s
}

func (s *SendMany) GetRecipients() []any {
	return params.Lookup[[]any](s.State(), fieldRecipients)
}

func (s *SendMany) AddRecipient(address string, amount string) *SendMany {
	return s.Recipients(appendRecipient(s.GetRecipients(), address, amount))
}

func (s *SendMany) WalletPassphrase(value string) *SendMany {
	s.Set(fieldWalletPassphrase, value)
	return s
}

func (s *SendMany) GetWalletPassphrase() string {
	return params.Lookup[string](s.State(), fieldWalletPassphrase)
}

func (s *SendMany) Prv(value string) *SendMany {
	s.Set(fieldPrv, value)
	return s
}

func (s *SendMany) GetPrv() string {
	return params.Lookup[string](s.State(), fieldPrv)
}

func (s *SendMany) NumBlocks(value int) *SendMany {
	s.Set(fieldNumBlocks, value)
	return s
}

func (s *SendMany) GetNumBlocks() int {
	return params.Lookup[int](s.State(), fieldNumBlocks)
}

func (s *SendMany) FeeRate(value string) *SendMany {
	s.Set(fieldFeeRate, value)
	return s
}

func (s *SendMany) GetFeeRate() string {
	return params.Lookup[string](s.State(), fieldFeeRate)
}

func (s *SendMany) MaxFeeRate(value string) *SendMany {
	s.Set(fieldMaxFeeRate, value)
	return s
}

func (s *SendMany) GetMaxFeeRate() string {
	return params.Lookup[string](s.State(), fieldMaxFeeRate)
}

func (s *SendMany) Comment(value string) *SendMany {
	s.Set(fieldComment, value)
	return s
}

func (s *SendMany) GetComment() string {
	return params.Lookup[string](s.State(), fieldComment)
}

func (s *SendMany) MinConfirms(value int) *SendMany {
	s.Set(fieldMinConfirms, value)
	return s
}

func (s *SendMany) GetMinConfirms() int {
	return params.Lookup[int](s.State(), fieldMinConfirms)
}

func (s *SendMany) EnforceMinConfirmsForChange(value bool) *SendMany {
	s.Set(fieldEnforceMinConfirmsForChange, value)
	return s
}

func (s *SendMany) GetEnforceMinConfirmsForChange() bool {
	return params.Lookup[bool](s.State(), fieldEnforceMinConfirmsForChange)
}

func (s *SendMany) SequenceID(value string) *SendMany {
	s.Set(fieldSequenceID, value)
	return s
}

func (s *SendMany) GetSequenceID() string {
	return params.Lookup[string](s.State(), fieldSequenceID)
}

func (s *SendMany) GasPrice(value string) *SendMany {
	s.Set(fieldGasPrice, value)
	return s
}

func (s *SendMany) GetGasPrice() string {
	return params.Lookup[string](s.State(), fieldGasPrice)
}

func (s *SendMany) NoSplitChange(value bool) *SendMany {
	s.Set(fieldNoSplitChange, value)
	return s
}

func (s *SendMany) GetNoSplitChange() bool {
	return params.Lookup[bool](s.State(), fieldNoSplitChange)
}

func (s *SendMany) Unspents(value []string) *SendMany {
	s.Set(fieldUnspents, value)
	return s
}

func (s *SendMany) GetUnspents() []string {
	return params.Lookup[[]string](s.State(), fieldUnspents)
}

func (s *SendMany) OTP(value string) *SendMany {
	s.Set(fieldOTP, value)
	return s
}

func (s *SendMany) GetOTP() string {
	return params.Lookup[string](s.State(), fieldOTP)
}

func (s *SendMany) Message(value string) *SendMany {
	s.Set(fieldMessage, value)
	return s
}

func (s *SendMany) GetMessage() string {
	return params.Lookup[string](s.State(), fieldMessage)
}

func (s *SendMany) TargetWalletUnspents(value int) *SendMany {
	s.Set(fieldTargetWalletUnspents, value)
	return s
}

func (s *SendMany) GetTargetWalletUnspents() int {
	return params.Lookup[int](s.State(), fieldTargetWalletUnspents)
}

func (s *SendMany) Send(ctx context.Context) (resource.Value, error) {
	return s.Run(ctx)
}
