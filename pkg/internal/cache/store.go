package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoCache "github.com/eko/gocache/store/ristretto/v4"
	"github.com/spf13/viper"
)

var (
	S store.StoreInterface
	r *ristretto.Cache
)

const defaultMaxCost = 1 << 27

func NewStore() error {
	maxCost := viper.GetInt64("cache.max_cost")
	if maxCost <= 0 {
		maxCost = defaultMaxCost
	}

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	r = client
	S = ristrettoCache.NewRistretto(client)
	return nil
}

// Wait blocks until pending writes are visible to readers.
// Ristretto applies sets asynchronously.
func Wait() {
	if r != nil {
		r.Wait()
	}
}
