package wallet

import (
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const (
	fieldRecipients                  = "recipients"
	fieldNumBlocks                   = "numBlocks"
	fieldFeeRate                     = "feeRate"
	fieldMaxFeeRate                  = "maxFeeRate"
	fieldMinConfirms                 = "minConfirms"
	fieldEnforceMinConfirmsForChange = "enforceMinConfirmsForChange"
	fieldTargetWalletUnspents        = "targetWalletUnspents"
	fieldMessage                     = "message"
	fieldMinValue                    = "minValue"
	fieldMaxValue                    = "maxValue"
	fieldSequenceID                  = "sequenceId"
	fieldLastLedgerSequence          = "lastLedgerSequence"
	fieldLedgerSequenceDelta         = "ledgerSequenceDelta"
	fieldNoSplitChange               = "noSplitChange"
	fieldUnspents                    = "unspents"
	fieldChangeAddress               = "changeAddress"
	fieldInstant                     = "instant"
	fieldMemo                        = "memo"
)

var buildTransactionSpec = resource.Spec{
	Name:   "wallet.tx.build",
	Method: http.MethodPost,
	Path:   "/{coin}/wallet/{walletId}/tx/build",
	Contract: params.NewContract(
		"wallet.tx.build",
		"",
		[]string{fieldWalletID, fieldRecipients},
		[]string{
			fieldNumBlocks,
			fieldFeeRate,
			fieldMaxFeeRate,
			fieldMinConfirms,
			fieldEnforceMinConfirmsForChange,
			fieldTargetWalletUnspents,
			fieldMessage,
			fieldMinValue,
			fieldMaxValue,
			fieldSequenceID,
			fieldLastLedgerSequence,
			fieldLedgerSequenceDelta,
			fieldGasPrice,
			fieldNoSplitChange,
			fieldUnspents,
			fieldChangeAddress,
			fieldInstant,
			fieldMemo,
		},
	),
	Dispatches: true,
}

var buildTransactionTable = params.Table[*BuildTransaction]{
	fieldWalletID:                    params.String((*BuildTransaction).WalletID),
	fieldRecipients:                  params.List((*BuildTransaction).Recipients),
	fieldNumBlocks:                   params.Int((*BuildTransaction).NumBlocks),
	fieldFeeRate:                     params.Amount((*BuildTransaction).FeeRate),
	fieldMaxFeeRate:                  params.Amount((*BuildTransaction).MaxFeeRate),
	fieldMinConfirms:                 params.Int((*BuildTransaction).MinConfirms),
	fieldEnforceMinConfirmsForChange: params.Bool((*BuildTransaction).EnforceMinConfirmsForChange),
	fieldTargetWalletUnspents:        params.Int((*BuildTransaction).TargetWalletUnspents),
	fieldMessage:                     params.String((*BuildTransaction).Message),
	fieldMinValue:                    params.Amount((*BuildTransaction).MinValue),
	fieldMaxValue:                    params.Amount((*BuildTransaction).MaxValue),
	fieldSequenceID:                  params.String((*BuildTransaction).SequenceID),
	fieldLastLedgerSequence:          params.Int64((*BuildTransaction).LastLedgerSequence),
	fieldLedgerSequenceDelta:         params.Int64((*BuildTransaction).LedgerSequenceDelta),
	fieldGasPrice:                    params.Amount((*BuildTransaction).GasPrice),
	fieldNoSplitChange:               params.Bool((*BuildTransaction).NoSplitChange),
	fieldUnspents:                    params.Strings((*BuildTransaction).Unspents),
	fieldChangeAddress:               params.String((*BuildTransaction).ChangeAddress),
	fieldInstant:                     params.Bool((*BuildTransaction).Instant),
	fieldMemo:                        params.Object((*BuildTransaction).Memo),
}

// BuildTransaction asks the server to select unspents and assemble an
// unsigned transaction paying recipients.
type BuildTransaction struct {
	resource.Base
}

func NewBuildTransaction(dispatcher server.Dispatcher, coinType coin.Type, data any) *BuildTransaction {
	b := &BuildTransaction{Base: resource.NewBase(buildTransactionSpec, dispatcher, coinType)}
	return resource.Init(b, &b.Base, buildTransactionTable, data)
}

func (b *BuildTransaction) WalletID(value string) *BuildTransaction {
	b.Set(fieldWalletID, value)
	return b
}

func (b *BuildTransaction) GetWalletID() string {
	return params.Lookup[string](b.State(), fieldWalletID)
}

// Recipients is a list of {"address": ..., "amount": ...} objects.
func (b *BuildTransaction) Recipients(value []any) *BuildTransaction {
	b.Set(fieldRecipients, value)
	return b
}

func (b *BuildTransaction) GetRecipients() []any {
	return params.Lookup[[]any](b.State(), fieldRecipients)
}

// AddRecipient appends one recipient, keeping the ones already set.
func (b *BuildTransaction) AddRecipient(address string, amount string) *BuildTransaction {
	return b.Recipients(appendRecipient(b.GetRecipients(), address, amount))
}

func (b *BuildTransaction) NumBlocks(value int) *BuildTransaction {
	b.Set(fieldNumBlocks, value)
	return b
}

func (b *BuildTransaction) GetNumBlocks() int {
	return params.Lookup[int](b.State(), fieldNumBlocks)
}

// FeeRate is in base units per kilobyte.
func (b *BuildTransaction) FeeRate(value string) *BuildTransaction {
	b.Set(fieldFeeRate, value)
	return b
}

func (b *BuildTransaction) GetFeeRate() string {
	return params.Lookup[string](b.State(), fieldFeeRate)
}

func (b *BuildTransaction) MaxFeeRate(value string) *BuildTransaction {
	b.Set(fieldMaxFeeRate, value)
	return b
}

func (b *BuildTransaction) GetMaxFeeRate() string {
	return params.Lookup[string](b.State(), fieldMaxFeeRate)
}

func (b *BuildTransaction) MinConfirms(value int) *BuildTransaction {
	b.Set(fieldMinConfirms, value)
	return b
}

func (b *BuildTransaction) GetMinConfirms() int {
	return params.Lookup[int](b.State(), fieldMinConfirms)
}

func (b *BuildTransaction) EnforceMinConfirmsForChange(value bool) *BuildTransaction {
	b.Set(fieldEnforceMinConfirmsForChange, value)
	return b
}

func (b *BuildTransaction) GetEnforceMinConfirmsForChange() bool {
	return params.Lookup[bool](b.State(), fieldEnforceMinConfirmsForChange)
}

func (b *BuildTransaction) TargetWalletUnspents(value int) *BuildTransaction {
	b.Set(fieldTargetWalletUnspents, value)
	return b
}

func (b *BuildTransaction) GetTargetWalletUnspents() int {
	return params.Lookup[int](b.State(), fieldTargetWalletUnspents)
}

func (b *BuildTransaction) Message(value string) *BuildTransaction {
	b.Set(fieldMessage, value)
	return b
}

func (b *BuildTransaction) GetMessage() string {
	return params.Lookup[string](b.State(), fieldMessage)
}

func (b *BuildTransaction) MinValue(value string) *BuildTransaction {
	b.Set(fieldMinValue, value)
	return b
}

func (b *BuildTransaction) GetMinValue() string {
	return params.Lookup[string](b.State(), fieldMinValue)
}

func (b *BuildTransaction) MaxValue(value string) *BuildTransaction {
	b.Set(fieldMaxValue, value)
	return b
}

func (b *BuildTransaction) GetMaxValue() string {
	return params.Lookup[string](b.State(), fieldMaxValue)
}

func (b *BuildTransaction) SequenceID(value string) *BuildTransaction {
	b.Set(fieldSequenceID, value)
	return b
}

func (b *BuildTransaction) GetSequenceID() string {
	return params.Lookup[string](b.State(), fieldSequenceID)
}

// LastLedgerSequence and LedgerSequenceDelta apply to xrp only.
func (b *BuildTransaction) LastLedgerSequence(value int64) *BuildTransaction {
	b.Set(fieldLastLedgerSequence, value)
	return b
}

func (b *BuildTransaction) GetLastLedgerSequence() int64 {
	return params.Lookup[int64](b.State(), fieldLastLedgerSequence)
}

func (b *BuildTransaction) LedgerSequenceDelta(value int64) *BuildTransaction {
	b.Set(fieldLedgerSequenceDelta, value)
	return b
}

func (b *BuildTransaction) GetLedgerSequenceDelta() int64 {
	return params.Lookup[int64](b.State(), fieldLedgerSequenceDelta)
}

func (b *BuildTransaction) GasPrice(value string) *BuildTransaction {
	b.Set(fieldGasPrice, value)
	return b
}

func (b *BuildTransaction) GetGasPrice() string {
	return params.Lookup[string](b.State(), fieldGasPrice)
}

func (b *BuildTransaction) NoSplitChange(value bool) *BuildTransaction {
	b.Set(fieldNoSplitChange, value)
	return b
}

func (b *BuildTransaction) GetNoSplitChange() bool {
	return params.Lookup[bool](b.State(), fieldNoSplitChange)
}

// Unspents restricts input selection to the given "txid:vout" outputs.
func (b *BuildTransaction) Unspents(value []string) *BuildTransaction {
	b.Set(fieldUnspents, value)
	return b
}

func (b *BuildTransaction) GetUnspents() []string {
	return params.Lookup[[]string](b.State(), fieldUnspents)
}

func (b *BuildTransaction) ChangeAddress(value string) *BuildTransaction {
	b.Set(fieldChangeAddress, value)
	return b
}

func (b *BuildTransaction) GetChangeAddress() string {
	return params.Lookup[string](b.State(), fieldChangeAddress)
}

// Instant requests an instant transaction; dash only.
func (b *BuildTransaction) Instant(value bool) *BuildTransaction {
	b.Set(fieldInstant, value)
	return b
}

func (b *BuildTransaction) GetInstant() bool {
	return params.Lookup[bool](b.State(), fieldInstant)
}

// Memo is an xlm memo object such as {"type": "id", "value": "1"}.
func (b *BuildTransaction) Memo(value map[string]any) *BuildTransaction {
	b.Set(fieldMemo, value)
	return b
}

func (b *BuildTransaction) GetMemo() map[string]any {
	return params.Lookup[map[string]any](b.State(), fieldMemo)
}

func appendRecipient(recipients []any, address string, amount string) []any {
	next := make([]any, 0, len(recipients)+1)
	next = append(next, recipients...)
	return append(next, map[string]any{"address": address, "amount": amount})
}
