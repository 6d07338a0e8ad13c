package core

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/faults"
	httpserver "github.com/crmarques/bitgo/internal/providers/server/http"
	"github.com/crmarques/bitgo/keychain"
	"github.com/crmarques/bitgo/server"
	"github.com/crmarques/bitgo/utility"
	"github.com/crmarques/bitgo/wallet"
)

type options struct {
	gateway    []httpserver.GatewayOption
	dispatcher server.Dispatcher
}

// Option configures the client built by New.
type Option func(*options)

func WithHTTPClient(client *http.Client) Option {
	return gatewayOption(httpserver.WithHTTPClient(client))
}

// WithTransport keeps the default client but sends requests through
// transport, which is how tests capture and mock traffic.
func WithTransport(transport http.RoundTripper) Option {
	return gatewayOption(httpserver.WithTransport(transport))
}

func WithTimeout(timeout time.Duration) Option {
	return gatewayOption(httpserver.WithTimeout(timeout))
}

func WithLogger(logger logr.Logger) Option {
	return gatewayOption(httpserver.WithLogger(logger))
}

func WithRateLimiter(limiter *rate.Limiter) Option {
	return gatewayOption(httpserver.WithRateLimiter(limiter))
}

func WithMetrics(registry prometheus.Registerer) Option {
	return gatewayOption(httpserver.WithMetrics(registry))
}

func WithTracerProvider(provider trace.TracerProvider) Option {
	return gatewayOption(httpserver.WithTracerProvider(provider))
}

// WithDispatcher bypasses the HTTP gateway entirely; transport options are
// ignored when it is set.
func WithDispatcher(dispatcher server.Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = dispatcher
	}
}

func gatewayOption(option httpserver.GatewayOption) Option {
	return func(o *options) {
		o.gateway = append(o.gateway, option)
	}
}

// Bitgo is the entry point of the client. It owns one dispatcher, built from
// cfg, that every resource it creates shares; it is safe for concurrent use.
type Bitgo struct {
	dispatcher server.Dispatcher
}

func New(cfg config.Config, opts ...Option) (*Bitgo, error) {
	var resolved options
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}

	if resolved.dispatcher != nil {
		return &Bitgo{dispatcher: resolved.dispatcher}, nil
	}

	gateway, err := httpserver.NewGateway(cfg, resolved.gateway...)
	if err != nil {
		return nil, err
	}
	return &Bitgo{dispatcher: gateway}, nil
}

func (b *Bitgo) Config() config.Config {
	return b.dispatcher.Config()
}

func (b *Bitgo) Dispatcher() server.Dispatcher {
	return b.dispatcher
}

// Coin scopes the client to a coin by identifier; unknown identifiers fail
// with a ValidationError.
func (b *Bitgo) Coin(name string) (*Coin, error) {
	coinType, err := coin.Parse(name)
	if err != nil {
		return nil, err
	}
	return b.For(coinType), nil
}

func (b *Bitgo) For(coinType coin.Type) *Coin {
	return &Coin{dispatcher: b.dispatcher, coin: coinType}
}

func (b *Bitgo) Utilities() *Utilities {
	return &Utilities{dispatcher: b.dispatcher}
}

// Coin creates the resources addressed under one coin prefix.
type Coin struct {
	dispatcher server.Dispatcher
	coin       coin.Type
}

func (c *Coin) Type() coin.Type {
	return c.coin
}

func (c *Coin) Wallets(data any) *wallet.Wallets {
	return wallet.NewWallets(c.dispatcher, c.coin, data)
}

func (c *Coin) Wallet(data any) *wallet.Wallet {
	return wallet.NewWallet(c.dispatcher, c.coin, data)
}

func (c *Coin) WalletByAddress(data any) *wallet.WalletByAddress {
	return wallet.NewWalletByAddress(c.dispatcher, c.coin, data)
}

func (c *Coin) GenerateWallet(data any) *wallet.GenerateWallet {
	return wallet.NewGenerateWallet(c.dispatcher, c.coin, data)
}

func (c *Coin) BuildTransaction(data any) *wallet.BuildTransaction {
	return wallet.NewBuildTransaction(c.dispatcher, c.coin, data)
}

// SignTransaction only validates and returns the signing parameters; it
// never calls the API.
func (c *Coin) SignTransaction(data any) *wallet.SignTransaction {
	return wallet.NewSignTransaction(c.dispatcher, c.coin, data)
}

func (c *Coin) SendTransaction(data any) *wallet.SendTransaction {
	return wallet.NewSendTransaction(c.dispatcher, c.coin, data)
}

func (c *Coin) Keychains(data any) *keychain.Keychains {
	return keychain.NewKeychains(c.dispatcher, c.coin, data)
}

func (c *Coin) CreateKeychain(data any) *keychain.CreateKeychain {
	return keychain.NewCreateKeychain(c.dispatcher, c.coin, data)
}

func (c *Coin) GenerateKeychain(data any) *keychain.GenerateKeychain {
	return keychain.NewGenerateKeychain(c.dispatcher, c.coin, data)
}

func (c *Coin) VerifyAddress(data any) *utility.VerifyAddress {
	return utility.NewVerifyAddress(c.dispatcher, c.coin, data)
}

// Utilities creates the resources that are not scoped to a coin.
type Utilities struct {
	dispatcher server.Dispatcher
}

func (u *Utilities) Encrypt(data any) *utility.Encrypt {
	return utility.NewEncrypt(u.dispatcher, data)
}

func (u *Utilities) Decrypt(data any) *utility.Decrypt {
	return utility.NewDecrypt(u.dispatcher, data)
}

func (u *Utilities) Ping() *utility.Ping {
	return utility.NewPing(u.dispatcher)
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}
