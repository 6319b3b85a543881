package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"demo_sales/internal/sales"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []SaleCreated
	err    error
	closed bool
}

func (r *recordingPublisher) Publish(_ context.Context, event SaleCreated) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingPublisher) Close() error {
	r.closed = true
	return nil
}

func TestFanout_PublishSaleCreated(t *testing.T) {
	created := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	first, second := &recordingPublisher{}, &recordingPublisher{}
	f := NewFanout(first, second)
	f.now = func() time.Time { return created }

	rec := sales.SaleRecord{
		Time:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CustomerID: "cu",
		SKU:        "sk",
		Amount:     3,
		PriceMinor: 1999,
	}
	require.NoError(t, f.PublishSaleCreated(context.Background(), "k", rec))

	want := SaleCreated{Key: "k", CustomerID: "cu", SKU: "sk", Amount: 3, PriceMinor: 1999, SoldAt: rec.Time, CreatedAt: created}
	assert.Equal(t, []SaleCreated{want}, first.events)
	assert.Equal(t, []SaleCreated{want}, second.events)
}

func TestFanout_KeepsGoingAfterFailure(t *testing.T) {
	boom := errors.New("broker unavailable")
	failing, ok := &recordingPublisher{err: boom}, &recordingPublisher{}
	f := NewFanout(failing, ok)

	err := f.PublishSaleCreated(context.Background(), "k", sales.SaleRecord{})
	assert.True(t, errors.Is(err, boom))
	assert.Len(t, ok.events, 1)
}

func TestFanout_Close(t *testing.T) {
	p := &recordingPublisher{}
	f := NewFanout(p)

	assert.Equal(t, 1, f.Len())
	assert.NoError(t, f.Close())
	assert.True(t, p.closed)
}
