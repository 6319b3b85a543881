package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"demo_sales/internal/sales"
)

// SaleCreated is emitted once a sale has been stored.
type SaleCreated struct {
	Key        string    `json:"key"`
	CustomerID string    `json:"customer_id"`
	SKU        string    `json:"sku"`
	Amount     int64     `json:"amount"`
	PriceMinor int64     `json:"price_minor"`
	SoldAt     time.Time `json:"time"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher delivers events to one destination.
type Publisher interface {
	Publish(ctx context.Context, event SaleCreated) error
	Close() error
}

// Fanout delivers every event to all of its publishers.
type Fanout struct {
	publishers []Publisher
	now        func() time.Time
}

func NewFanout(publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers, now: time.Now}
}

// Len reports how many publishers are attached.
func (f *Fanout) Len() int {
	return len(f.publishers)
}

// PublishSaleCreated builds the event and hands it to every publisher.
// All publishers are tried; their failures are joined.
func (f *Fanout) PublishSaleCreated(ctx context.Context, key string, rec sales.SaleRecord) error {
	event := SaleCreated{
		Key:        key,
		CustomerID: rec.CustomerID,
		SKU:        rec.SKU,
		Amount:     rec.Amount,
		PriceMinor: rec.PriceMinor,
		SoldAt:     rec.Time,
		CreatedAt:  f.now().UTC(),
	}

	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every publisher.
func (f *Fanout) Close() error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ sales.Publisher = (*Fanout)(nil)
