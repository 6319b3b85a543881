package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"demo_sales/internal/sales"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists sales in PostgreSQL. Keys come from the column default.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

/* Connects to the database through a connection string and returns a pointer to a valid DB object (*sql.DB). */
func ConnectDb(ctx context.Context, connStr string) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to db, opening: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to db, pinging: %w", err)
	}
	return sqlDB, nil
}

// MigrationUp applies the embedded migrations. An already current schema is not an error.
func MigrationUp(db *sql.DB) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

/* Stores the sale and returns the key generated by the database. */
func (s *Store) Insert(ctx context.Context, rec sales.SaleRecord) (string, error) {
	sqlStatement := `
	INSERT INTO sales (sold_at, customer_id, sku, amount, price_minor)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING key`
	var key string
	err := s.db.QueryRowContext(ctx, sqlStatement, rec.Time, rec.CustomerID, rec.SKU, rec.Amount, rec.PriceMinor).Scan(&key)
	if err != nil {
		return "", fmt.Errorf("storing sale on db: %w", err)
	}
	return key, nil
}

/* Searches a sale in database based on key. */
func (s *Store) Get(ctx context.Context, key string) (sales.SaleRecord, error) {
	sqlStatement := `SELECT sold_at, customer_id, sku, amount, price_minor
	FROM sales
	WHERE key = $1`
	var rec sales.SaleRecord
	err := s.db.QueryRowContext(ctx, sqlStatement, key).Scan(&rec.Time, &rec.CustomerID, &rec.SKU, &rec.Amount, &rec.PriceMinor)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return sales.SaleRecord{}, fmt.Errorf("searching by key: %w", sales.ErrNotFound)
		default:
			return sales.SaleRecord{}, fmt.Errorf("searching by key: %w", err)
		}
	}
	rec.Time = rec.Time.UTC()
	return rec, nil
}

var _ sales.Store = (*Store)(nil)
