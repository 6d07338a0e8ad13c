// Package coin enumerates the networks the custody API addresses in its URL
// prefix, e.g. /api/v2/tbtc/wallet.
package coin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crmarques/bitgo/faults"
)

type Type string

const (
	BTC   Type = "btc"
	TBTC  Type = "tbtc"
	BCH   Type = "bch"
	TBCH  Type = "tbch"
	BTG   Type = "btg"
	TBTG  Type = "tbtg"
	LTC   Type = "ltc"
	TLTC  Type = "tltc"
	DASH  Type = "dash"
	TDASH Type = "tdash"
	ZEC   Type = "zec"
	TZEC  Type = "tzec"
	ETH   Type = "eth"
	TETH  Type = "teth"
	XRP   Type = "xrp"
	TXRP  Type = "txrp"
	XLM   Type = "xlm"
	TXLM  Type = "txlm"
	RMG   Type = "rmg"
	TRMG  Type = "trmg"
)

// mainnet -> testnet
var networks = map[Type]Type{
	BTC:  TBTC,
	BCH:  TBCH,
	BTG:  TBTG,
	LTC:  TLTC,
	DASH: TDASH,
	ZEC:  TZEC,
	ETH:  TETH,
	XRP:  TXRP,
	XLM:  TXLM,
	RMG:  TRMG,
}

var supported = func() map[Type]Type {
	byName := make(map[Type]Type, len(networks)*2)
	for mainnet, testnet := range networks {
		byName[mainnet] = mainnet
		byName[testnet] = mainnet
	}
	return byName
}()

// Parse resolves a coin identifier case-insensitively. Unknown identifiers
// fail with a ValidationError.
func Parse(value string) (Type, error) {
	candidate := Type(strings.ToLower(strings.TrimSpace(value)))
	if candidate == "" {
		return "", faults.NewTypedError(faults.ValidationError, "coin type is required", nil)
	}
	if !candidate.Valid() {
		return "", faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("unsupported coin type %q", value),
			nil,
		)
	}
	return candidate, nil
}

func (t Type) String() string {
	return string(t)
}

// Valid reports whether t is a known mainnet or testnet identifier.
func (t Type) Valid() bool {
	_, ok := supported[t]
	return ok
}

// Supported lists every known coin type in lexical order.
func Supported() []Type {
	values := make([]Type, 0, len(supported))
	for value := range supported {
		values = append(values, value)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}
