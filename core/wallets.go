package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/resource"
)

const maxConcurrentCoins = 4

// CoinWallets is one page of wallets for one coin.
type CoinWallets struct {
	Coin    coin.Type
	Wallets resource.Value
}

// ListWallets fetches the first page of wallets for every coin concurrently,
// applying data to each listing. Results keep the order of coins; the first
// failure cancels the rest and is returned.
func (b *Bitgo) ListWallets(ctx context.Context, coins []coin.Type, data any) ([]CoinWallets, error) {
	results := make([]CoinWallets, len(coins))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentCoins)
	for idx, coinType := range coins {
		group.Go(func() error {
			value, err := b.For(coinType).Wallets(data).Get(groupCtx)
			if err != nil {
				return err
			}
			results[idx] = CoinWallets{Coin: coinType, Wallets: value}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
