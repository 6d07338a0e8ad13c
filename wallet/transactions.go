package wallet

import (
	"context"
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const fieldTransactionID = "transactionId"

var transactionsSpec = resource.Spec{
	Name:   "wallet.transactions",
	Method: http.MethodGet,
	Path:   "/{coin}/wallet/{walletId}/tx/{transactionId}",
	Contract: params.NewContract(
		"wallet.transactions",
		fieldTransactionID,
		[]string{fieldWalletID},
		[]string{fieldPrevID, fieldAllTokens, fieldTransactionID},
	),
	Dispatches: true,
}

var transactionsTable = params.Table[*Transactions]{
	fieldWalletID:      params.String((*Transactions).WalletID),
	fieldTransactionID: params.String((*Transactions).TransactionID),
	fieldPrevID:        params.String((*Transactions).PrevID),
	fieldAllTokens:     params.Bool((*Transactions).AllTokens),
}

// Transactions lists the transactions of a wallet, or fetches one when a
// transaction id is set. It also starts the build, sign and send actions on
// the same wallet.
type Transactions struct {
	resource.Base
}

// NewTransactions accepts a mapping of fields or the transaction id.
func NewTransactions(dispatcher server.Dispatcher, coinType coin.Type, data any) *Transactions {
	t := &Transactions{Base: resource.NewBase(transactionsSpec, dispatcher, coinType)}
	return resource.Init(t, &t.Base, transactionsTable, data)
}

func (t *Transactions) WalletID(value string) *Transactions {
	t.Set(fieldWalletID, value)
	return t
}

func (t *Transactions) GetWalletID() string {
	return params.Lookup[string](t.State(), fieldWalletID)
}

func (t *Transactions) TransactionID(value string) *Transactions {
	t.Set(fieldTransactionID, value)
	return t
}

func (t *Transactions) GetTransactionID() string {
	return params.Lookup[string](t.State(), fieldTransactionID)
}

func (t *Transactions) Find(transactionID string) *Transactions {
	return t.TransactionID(transactionID)
}

func (t *Transactions) PrevID(value string) *Transactions {
	t.Set(fieldPrevID, value)
	return t
}

func (t *Transactions) GetPrevID() string {
	return params.Lookup[string](t.State(), fieldPrevID)
}

// AllTokens includes token transactions; eth/teth only.
func (t *Transactions) AllTokens(value bool) *Transactions {
	t.Set(fieldAllTokens, value)
	return t
}

func (t *Transactions) GetAllTokens() bool {
	return params.Lookup[bool](t.State(), fieldAllTokens)
}

func (t *Transactions) Get(ctx context.Context) (resource.Value, error) {
	return t.Run(ctx)
}

func (t *Transactions) Build(data any) *BuildTransaction {
	child := &BuildTransaction{Base: inherit(&t.Base, buildTransactionSpec)}
	return resource.Init(child, &child.Base, buildTransactionTable, data)
}

func (t *Transactions) Sign(data any) *SignTransaction {
	child := &SignTransaction{Base: inherit(&t.Base, signTransactionSpec)}
	return resource.Init(child, &child.Base, signTransactionTable, data)
}

func (t *Transactions) Send(data any) *SendTransaction {
	child := &SendTransaction{Base: inherit(&t.Base, sendTransactionSpec)}
	return resource.Init(child, &child.Base, sendTransactionTable, data)
}
