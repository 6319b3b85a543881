package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"demo_sales/internal/sales"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SaleRow is the gorm model for a stored sale.
type SaleRow struct {
	Key        string    `gorm:"primaryKey;size:36"`
	SoldAt     time.Time `gorm:"not null"`
	CustomerID string    `gorm:"not null"`
	SKU        string    `gorm:"not null"`
	Amount     int64     `gorm:"not null"`
	PriceMinor int64     `gorm:"not null"`
	CreatedAt  time.Time
}

func (SaleRow) TableName() string {
	return "sales"
}

// BeforeCreate assigns the key; callers never choose it.
func (r *SaleRow) BeforeCreate(*gorm.DB) error {
	r.Key = uuid.NewString()
	return nil
}

// Store persists sales in a SQLite file through gorm.
type Store struct {
	db *gorm.DB
}

// Open opens the database and performs auto-migration.
// dbPath is where the sqlite file lives (e.g., "./sales.db").
func Open(dbPath string) (*Store, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), config)
	if err != nil {
		return nil, fmt.Errorf("connecting to sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&SaleRow{}); err != nil {
		return nil, fmt.Errorf("migrating sqlite schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Insert(ctx context.Context, rec sales.SaleRecord) (string, error) {
	row := SaleRow{
		SoldAt:     rec.Time,
		CustomerID: rec.CustomerID,
		SKU:        rec.SKU,
		Amount:     rec.Amount,
		PriceMinor: rec.PriceMinor,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("storing sale on db: %w", err)
	}
	return row.Key, nil
}

func (s *Store) Get(ctx context.Context, key string) (sales.SaleRecord, error) {
	var row SaleRow
	err := s.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sales.SaleRecord{}, fmt.Errorf("searching by key: %w", sales.ErrNotFound)
		}
		return sales.SaleRecord{}, fmt.Errorf("searching by key: %w", err)
	}
	return sales.SaleRecord{
		Time:       row.SoldAt.UTC(),
		CustomerID: row.CustomerID,
		SKU:        row.SKU,
		Amount:     row.Amount,
		PriceMinor: row.PriceMinor,
	}, nil
}

var _ sales.Store = (*Store)(nil)
