// Package wallet holds the wallet-scoped resource actions: listing and
// fetching wallets, addresses, transactions, transfers and unspents, and
// building, signing and sending transactions.
//
// Every type embeds resource.Base. Setters return the receiver so calls
// chain, and Run performs the single request:
//
//	res, err := wallet.NewWallet(dispatcher, coin.TBTC, "w1").
//		Transactions("tx123").
//		Run(ctx)
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
	fieldWalletID  = "walletId"
	fieldAllTokens = "allTokens"
	fieldPrevID    = "prevId"
	fieldLimit     = "limit"
)

var walletsSpec = resource.Spec{
	Name:       "wallet.list",
	Method:     http.MethodGet,
	Path:       "/{coin}/wallet",
	Contract:   params.NewContract("wallet.list", "", nil, []string{fieldLimit, fieldPrevID, fieldAllTokens}),
	Dispatches: true,
}

var walletsTable = params.Table[*Wallets]{
	fieldLimit:     params.Int((*Wallets).Limit),
	fieldPrevID:    params.String((*Wallets).PrevID),
	fieldAllTokens: params.Bool((*Wallets).AllTokens),
}

// Wallets lists the wallets of a coin, one page per call.
type Wallets struct {
	resource.Base
}

func NewWallets(dispatcher server.Dispatcher, coinType coin.Type, data any) *Wallets {
	w := &Wallets{Base: resource.NewBase(walletsSpec, dispatcher, coinType)}
	return resource.Init(w, &w.Base, walletsTable, data)
}

func (w *Wallets) Limit(value int) *Wallets {
	w.Set(fieldLimit, value)
	return w
}

func (w *Wallets) GetLimit() int {
	return params.Lookup[int](w.State(), fieldLimit)
}

// PrevID continues a listing from the nextBatchPrevId of the previous page.
func (w *Wallets) PrevID(value string) *Wallets {
	w.Set(fieldPrevID, value)
	return w
}

func (w *Wallets) GetPrevID() string {
	return params.Lookup[string](w.State(), fieldPrevID)
}

func (w *Wallets) AllTokens(value bool) *Wallets {
	w.Set(fieldAllTokens, value)
	return w
}

func (w *Wallets) GetAllTokens() bool {
	return params.Lookup[bool](w.State(), fieldAllTokens)
}

func (w *Wallets) Get(ctx context.Context) (resource.Value, error) {
	return w.Run(ctx)
}

var walletSpec = resource.Spec{
	Name:       "wallet.get",
	Method:     http.MethodGet,
	Path:       "/{coin}/wallet/{walletId}",
	Contract:   params.NewContract("wallet.get", fieldWalletID, []string{fieldWalletID}, []string{fieldAllTokens}),
	Dispatches: true,
}

var walletTable = params.Table[*Wallet]{
	fieldWalletID:  params.String((*Wallet).WalletID),
	fieldAllTokens: params.Bool((*Wallet).AllTokens),
}

// Wallet fetches one wallet and is the entry point for every action scoped to
// it. The factories copy the coin, the dispatcher and the wallet id into a
// fresh child before applying the child's own data.
type Wallet struct {
	resource.Base
}

// NewWallet accepts a mapping of fields or the wallet id.
func NewWallet(dispatcher server.Dispatcher, coinType coin.Type, data any) *Wallet {
	w := &Wallet{Base: resource.NewBase(walletSpec, dispatcher, coinType)}
	return resource.Init(w, &w.Base, walletTable, data)
}

func (w *Wallet) WalletID(value string) *Wallet {
	w.Set(fieldWalletID, value)
	return w
}

func (w *Wallet) GetWalletID() string {
	return params.Lookup[string](w.State(), fieldWalletID)
}

func (w *Wallet) AllTokens(value bool) *Wallet {
	w.Set(fieldAllTokens, value)
	return w
}

func (w *Wallet) GetAllTokens() bool {
	return params.Lookup[bool](w.State(), fieldAllTokens)
}

func (w *Wallet) Get(ctx context.Context) (resource.Value, error) {
	return w.Run(ctx)
}

func (w *Wallet) Update(data any) *UpdateWallet {
	child := &UpdateWallet{Base: w.child(updateWalletSpec)}
	return resource.Init(child, &child.Base, updateWalletTable, data)
}

func (w *Wallet) Addresses(data any) *Addresses {
	child := &Addresses{Base: w.child(addressesSpec)}
	return resource.Init(child, &child.Base, addressesTable, data)
}

func (w *Wallet) CreateAddress(data any) *CreateAddress {
	child := &CreateAddress{Base: w.child(createAddressSpec)}
	return resource.Init(child, &child.Base, createAddressTable, data)
}

func (w *Wallet) Transactions(data any) *Transactions {
	child := &Transactions{Base: w.child(transactionsSpec)}
	return resource.Init(child, &child.Base, transactionsTable, data)
}

func (w *Wallet) Transfers(data any) *Transfers {
	child := &Transfers{Base: w.child(transfersSpec)}
	return resource.Init(child, &child.Base, transfersTable, data)
}

func (w *Wallet) Unspents(data any) *Unspents {
	child := &Unspents{Base: w.child(unspentsSpec)}
	return resource.Init(child, &child.Base, unspentsTable, data)
}

func (w *Wallet) MaximumSpendable(data any) *MaximumSpendable {
	child := &MaximumSpendable{Base: w.child(maximumSpendableSpec)}
	return resource.Init(child, &child.Base, maximumSpendableTable, data)
}

func (w *Wallet) SendCoins(data any) *SendCoins {
	child := &SendCoins{Base: w.child(sendCoinsSpec)}
	return resource.Init(child, &child.Base, sendCoinsTable, data)
}

func (w *Wallet) SendMany(data any) *SendMany {
	child := &SendMany{Base: w.child(sendManySpec)}
	return resource.Init(child, &child.Base, sendManyTable, data)
}

func (w *Wallet) child(spec resource.Spec) resource.Base {
	return inherit(&w.Base, spec)
}

// inherit starts a child action on the same dispatcher and coin as parent,
// carrying over the wallet id and any failure recorded on parent.
func inherit(parent *resource.Base, spec resource.Spec) resource.Base {
	child := resource.NewBase(spec, parent.Dispatcher(), parent.Coin())
	if value, ok := parent.State().Get(fieldWalletID); ok {
		child.Set(fieldWalletID, value)
	}
	child.Fail(parent.Err())
	return child
}
