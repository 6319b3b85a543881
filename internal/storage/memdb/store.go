package memdb

import (
	"context"
	"fmt"
	"time"

	"demo_sales/internal/sales"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

const saleTable = "sale"

// Store keeps sales in a go-memdb table indexed by key.
type Store struct {
	db *memdb.MemDB
}

// saleRow is the shape stored in memdb; the id index reads the Key field.
type saleRow struct {
	Key        string
	Time       time.Time
	CustomerID string
	SKU        string
	Amount     int64
	PriceMinor int64
}

func NewStore() (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			saleTable: {
				Name: saleTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Insert(_ context.Context, rec sales.SaleRecord) (string, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	key := uuid.NewString()
	for {
		existing, err := txn.First(saleTable, "id", key)
		if err != nil {
			return "", fmt.Errorf("storing sale on db: %w", err)
		}
		if existing == nil {
			break
		}
		key = uuid.NewString()
	}

	row := saleRow{
		Key:        key,
		Time:       rec.Time,
		CustomerID: rec.CustomerID,
		SKU:        rec.SKU,
		Amount:     rec.Amount,
		PriceMinor: rec.PriceMinor,
	}
	if err := txn.Insert(saleTable, row); err != nil {
		return "", fmt.Errorf("storing sale on db: %w", err)
	}
	txn.Commit()
	return key, nil
}

func (s *Store) Get(_ context.Context, key string) (sales.SaleRecord, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(saleTable, "id", key)
	if err != nil {
		return sales.SaleRecord{}, fmt.Errorf("searching by key: %w", err)
	}
	if raw == nil {
		return sales.SaleRecord{}, fmt.Errorf("searching by key: %w", sales.ErrNotFound)
	}

	row := raw.(saleRow)
	return sales.SaleRecord{
		Time:       row.Time,
		CustomerID: row.CustomerID,
		SKU:        row.SKU,
		Amount:     row.Amount,
		PriceMinor: row.PriceMinor,
	}, nil
}

var _ sales.Store = (*Store)(nil)
