package sales

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no sale exists for the given key.
var ErrNotFound = errors.New("sale not found")

// ErrStorage marks failures of the storage backend itself.
var ErrStorage = errors.New("storage failure")

//go:generate mockgen -destination=mocks/mock_sales.go -package=mocks demo_sales/internal/sales Store,Publisher

// Store is the main interface for our sales storage layer. Keys are chosen
// by the store on Insert and must be unique under concurrent inserts.
type Store interface {
	Insert(ctx context.Context, rec SaleRecord) (string, error)
	// Get returns ErrNotFound if no record exists for key.
	Get(ctx context.Context, key string) (SaleRecord, error)
}

// LocalStorage provides an in-memory implementation for storing sales.
type LocalStorage struct {
	mu sync.RWMutex
	m  map[string]SaleRecord
}

// NewLocalStorage instantiates a new LocalStorage for sales with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]SaleRecord{},
	}
}

// Insert stores rec under a freshly generated UUID key.
func (l *LocalStorage) Insert(_ context.Context, rec SaleRecord) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := uuid.NewString()
	for _, taken := l.m[key]; taken; _, taken = l.m[key] {
		key = uuid.NewString()
	}
	l.m[key] = rec
	return key, nil
}

// Get retrieves a sale from the local storage by key.
// Returns ErrNotFound if the sale is not found.
func (l *LocalStorage) Get(_ context.Context, key string) (SaleRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.m[key]
	if !ok {
		return SaleRecord{}, ErrNotFound
	}
	return rec, nil
}

var _ Store = (*LocalStorage)(nil)
