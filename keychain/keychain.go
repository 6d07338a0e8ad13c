// Package keychain lists, fetches and registers the keys wallets are built
// from.
package keychain

import (
	"context"
	"net/http"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/params"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/server"
)

const (
	fieldID                  = "id"
	fieldLimit               = "limit"
	fieldPrevID              = "prevId"
	fieldPub                 = "pub"
	fieldEncryptedPrv        = "encryptedPrv"
	fieldReducedEncryptedPrv = "reducedEncryptedPrv"
	fieldSource              = "source"
	fieldOriginalPasscode    = "originalPasscodeEncryptionCode"
	fieldEnterprise          = "enterprise"
	fieldDerivedFromParent   = "derivedFromParentWithSeed"
	fieldCommonKeychain      = "commonKeychain"
	fieldDisableKRSEmail     = "disableKRSEmail"
	fieldSeed                = "seed"
	fieldIsBitGo             = "isBitGo"
	fieldProvider            = "provider"
	fieldKrsSpecific         = "krsSpecific"
)

var keychainsSpec = resource.Spec{
	Name:       "keychain.list",
	Method:     http.MethodGet,
	Path:       "/{coin}/key/{id}",
	Contract:   params.NewContract("keychain.list", fieldID, nil, []string{fieldID, fieldLimit, fieldPrevID}),
	Dispatches: true,
}

var keychainsTable = params.Table[*Keychains]{
	fieldID:     params.String((*Keychains).ID),
	fieldLimit:  params.Int((*Keychains).Limit),
	fieldPrevID: params.String((*Keychains).PrevID),
}

// Keychains lists the keychains of a coin, or fetches one when an id is set.
type Keychains struct {
	resource.Base
}

// NewKeychains accepts a mapping of fields or the keychain id.
func NewKeychains(dispatcher server.Dispatcher, coinType coin.Type, data any) *Keychains {
	k := &Keychains{Base: resource.NewBase(keychainsSpec, dispatcher, coinType)}
	return resource.Init(k, &k.Base, keychainsTable, data)
}

func (k *Keychains) ID(value string) *Keychains {
	k.Set(fieldID, value)
	return k
}

func (k *Keychains) GetID() string {
	return params.Lookup[string](k.State(), fieldID)
}

func (k *Keychains) Find(id string) *Keychains {
	return k.ID(id)
}

func (k *Keychains) Limit(value int) *Keychains {
	k.Set(fieldLimit, value)
	return k
}

func (k *Keychains) GetLimit() int {
	return params.Lookup[int](k.State(), fieldLimit)
}

func (k *Keychains) PrevID(value string) *Keychains {
	k.Set(fieldPrevID, value)
	return k
}

func (k *Keychains) GetPrevID() string {
	return params.Lookup[string](k.State(), fieldPrevID)
}

func (k *Keychains) Get(ctx context.Context) (resource.Value, error) {
	return k.Run(ctx)
}

// Create starts a CreateKeychain on the same coin.
func (k *Keychains) Create(data any) *CreateKeychain {
	return NewCreateKeychain(k.Dispatcher(), k.Coin(), data)
}

// Generate starts a GenerateKeychain on the same coin.
func (k *Keychains) Generate(data any) *GenerateKeychain {
	return NewGenerateKeychain(k.Dispatcher(), k.Coin(), data)
}

var createKeychainSpec = resource.Spec{
	Name:   "keychain.create",
	Method: http.MethodPost,
	Path:   "/{coin}/key",
	Contract: params.NewContract(
		"keychain.create",
		fieldPub,
		nil,
		[]string{
			fieldPub,
			fieldEncryptedPrv,
			fieldReducedEncryptedPrv,
			fieldSource,
			fieldOriginalPasscode,
			fieldEnterprise,
			fieldDerivedFromParent,
			fieldCommonKeychain,
			fieldDisableKRSEmail,
		},
	),
	Dispatches: true,
}

var createKeychainTable = params.Table[*CreateKeychain]{
	fieldPub:                 params.String((*CreateKeychain).Pub),
	fieldEncryptedPrv:        params.String((*CreateKeychain).EncryptedPrv),
	fieldReducedEncryptedPrv: params.String((*CreateKeychain).ReducedEncryptedPrv),
	fieldSource:              params.String((*CreateKeychain).Source),
	fieldOriginalPasscode:    params.String((*CreateKeychain).OriginalPasscodeEncryptionCode),
	fieldEnterprise:          params.String((*CreateKeychain).Enterprise),
	fieldDerivedFromParent:   params.String((*CreateKeychain).DerivedFromParentWithSeed),
	fieldCommonKeychain:      params.String((*CreateKeychain).CommonKeychain),
	fieldDisableKRSEmail:     params.Bool((*CreateKeychain).DisableKRSEmail),
}

// CreateKeychain stores a keychain generated elsewhere. With no pub the
// server creates a BitGo key.
type CreateKeychain struct {
	resource.Base
}

// NewCreateKeychain accepts a mapping of fields or the public key.
func NewCreateKeychain(dispatcher server.Dispatcher, coinType coin.Type, data any) *CreateKeychain {
	k := &CreateKeychain{Base: resource.NewBase(createKeychainSpec, dispatcher, coinType)}
	return resource.Init(k, &k.Base, createKeychainTable, data)
}

func (k *CreateKeychain) Pub(value string) *CreateKeychain {
	k.Set(fieldPub, value)
	return k
}

func (k *CreateKeychain) GetPub() string {
	return params.Lookup[string](k.State(), fieldPub)
}

func (k *CreateKeychain) EncryptedPrv(value string) *CreateKeychain {
	k.Set(fieldEncryptedPrv, value)
	return k
}

func (k *CreateKeychain) GetEncryptedPrv() string {
	return params.Lookup[string](k.State(), fieldEncryptedPrv)
}

func (k *CreateKeychain) ReducedEncryptedPrv(value string) *CreateKeychain {
	k.Set(fieldReducedEncryptedPrv, value)
	return k
}

func (k *CreateKeychain) GetReducedEncryptedPrv() string {
	return params.Lookup[string](k.State(), fieldReducedEncryptedPrv)
}

// Source is one of user, backup or bitgo.
func (k *CreateKeychain) Source(value string) *CreateKeychain {
	k.Set(fieldSource, value)
	return k
}

func (k *CreateKeychain) GetSource() string {
	return params.Lookup[string](k.State(), fieldSource)
}

func (k *CreateKeychain) OriginalPasscodeEncryptionCode(value string) *CreateKeychain {
	k.Set(fieldOriginalPasscode, value)
	return k
}

func (k *CreateKeychain) GetOriginalPasscodeEncryptionCode() string {
	return params.Lookup[string](k.State(), fieldOriginalPasscode)
}

func (k *CreateKeychain) Enterprise(value string) *CreateKeychain {
	k.Set(fieldEnterprise, value)
	return k
}

func (k *CreateKeychain) GetEnterprise() string {
	return params.Lookup[string](k.State(), fieldEnterprise)
}

func (k *CreateKeychain) DerivedFromParentWithSeed(value string) *CreateKeychain {
	k.Set(fieldDerivedFromParent, value)
	return k
}

func (k *CreateKeychain) GetDerivedFromParentWithSeed() string {
	return params.Lookup[string](k.State(), fieldDerivedFromParent)
}

func (k *CreateKeychain) CommonKeychain(value string) *CreateKeychain {
	k.Set(fieldCommonKeychain, value)
	return k
}

func (k *CreateKeychain) GetCommonKeychain() string {
	return params.Lookup[string](k.State(), fieldCommonKeychain)
}

func (k *CreateKeychain) DisableKRSEmail(value bool) *CreateKeychain {
	k.Set(fieldDisableKRSEmail, value)
	return k
}

func (k *CreateKeychain) GetDisableKRSEmail() bool {
	return params.Lookup[bool](k.State(), fieldDisableKRSEmail)
}

var generateKeychainSpec = resource.Spec{
	Name:   "keychain.generate",
	Method: http.MethodPost,
	Path:   "/{coin}/keychain/local",
	Contract: params.NewContract(
		"keychain.generate",
		fieldSeed,
		nil,
		[]string{fieldSeed, fieldIsBitGo, fieldProvider, fieldKrsSpecific, fieldEnterprise},
	),
	Dispatches: true,
}

var generateKeychainTable = params.Table[*GenerateKeychain]{
	fieldSeed:        params.String((*GenerateKeychain).Seed),
	fieldIsBitGo:     params.Bool((*GenerateKeychain).IsBitGo),
	fieldProvider:    params.String((*GenerateKeychain).Provider),
	fieldKrsSpecific: params.Object((*GenerateKeychain).KrsSpecific),
	fieldEnterprise:  params.String((*GenerateKeychain).Enterprise),
}

// GenerateKeychain asks the signing agent for a fresh key pair, optionally
// from a seed.
type GenerateKeychain struct {
	resource.Base
}

// NewGenerateKeychain accepts a mapping of fields or the seed.
func NewGenerateKeychain(dispatcher server.Dispatcher, coinType coin.Type, data any) *GenerateKeychain {
	k := &GenerateKeychain{Base: resource.NewBase(generateKeychainSpec, dispatcher, coinType)}
	return resource.Init(k, &k.Base, generateKeychainTable, data)
}

func (k *GenerateKeychain) Seed(value string) *GenerateKeychain {
	k.Set(fieldSeed, value)
	return k
}

func (k *GenerateKeychain) GetSeed() string {
	return params.Lookup[string](k.State(), fieldSeed)
}

func (k *GenerateKeychain) IsBitGo(value bool) *GenerateKeychain {
	k.Set(fieldIsBitGo, value)
	return k
}

func (k *GenerateKeychain) GetIsBitGo() bool {
	return params.Lookup[bool](k.State(), fieldIsBitGo)
}

// Provider names a key recovery service for backup keys.
func (k *GenerateKeychain) Provider(value string) *GenerateKeychain {
	k.Set(fieldProvider, value)
	return k
}

func (k *GenerateKeychain) GetProvider() string {
	return params.Lookup[string](k.State(), fieldProvider)
}

func (k *GenerateKeychain) KrsSpecific(value map[string]any) *GenerateKeychain {
	k.Set(fieldKrsSpecific, value)
	return k
}

func (k *GenerateKeychain) GetKrsSpecific() map[string]any {
	return params.Lookup[map[string]any](k.State(), fieldKrsSpecific)
}

func (k *GenerateKeychain) Enterprise(value string) *GenerateKeychain {
	k.Set(fieldEnterprise, value)
	return k
}

func (k *GenerateKeychain) GetEnterprise() string {
	return params.Lookup[string](k.State(), fieldEnterprise)
}
