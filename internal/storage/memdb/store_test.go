package memdb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"demo_sales/internal/sales"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InsertAndGet(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	rec := sales.SaleRecord{
		Time:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CustomerID: "cu",
		SKU:        "sk",
		Amount:     3,
		PriceMinor: 1999,
	}
	key, err := store.Insert(context.Background(), rec)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestStore_GetMissing(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "nonexistent-key")
	assert.True(t, errors.Is(err, sales.ErrNotFound))
}

func TestStore_ConcurrentInserts(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	const n = 100
	var (
		mu   sync.Mutex
		keys = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := store.Insert(context.Background(), sales.SaleRecord{CustomerID: "cu", SKU: "sk", Amount: int64(i + 1), PriceMinor: 1})
			assert.NoError(t, err)
			mu.Lock()
			keys[key] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	assert.Len(t, keys, n)
}
