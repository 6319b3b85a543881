package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"demo_sales/internal/sales"
	"demo_sales/internal/storage/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var store *postgres.Store
var sqlDB *sql.DB

// TestMain connects to DATABASE_URL when it is set; without it every test skips.
func TestMain(m *testing.M) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr != "" {
		var err error
		sqlDB, err = postgres.ConnectDb(context.Background(), connStr)
		if err != nil {
			log.Fatalln(err)
		}
		if err := postgres.MigrationUp(sqlDB); err != nil {
			log.Fatalln(err)
		}
		store = postgres.NewStore(sqlDB)
	}

	code := m.Run()
	if sqlDB != nil {
		sqlDB.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if store == nil {
		t.Skip("DATABASE_URL not set")
	}
	t.Cleanup(func() {
		if _, err := sqlDB.Exec("DELETE FROM sales"); err != nil {
			t.Errorf("cleaning sales table: %v", err)
		}
	})
}

func TestInsertAndGet(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	rec := sales.SaleRecord{
		Time:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CustomerID: "cu",
		SKU:        "sk",
		Amount:     3,
		PriceMinor: 1999,
	}
	key, err := store.Insert(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, rec.Time.Equal(got.Time))
	got.Time = rec.Time
	assert.Equal(t, rec, got)
}

func TestGetMissing(t *testing.T) {
	requireDB(t)

	_, err := store.Get(context.Background(), "nonexistent-key")
	assert.True(t, errors.Is(err, sales.ErrNotFound))
}

func TestMigrationUpIsIdempotent(t *testing.T) {
	requireDB(t)

	assert.NoError(t, postgres.MigrationUp(sqlDB))
}
