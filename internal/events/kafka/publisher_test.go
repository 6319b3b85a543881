package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"demo_sales/internal/events"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	event := events.SaleCreated{
		Key:        "k-1",
		CustomerID: "cu",
		SKU:        "sk",
		Amount:     3,
		PriceMinor: 1999,
		SoldAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "k-1", string(msg.Key))
	assert.Equal(t, event.CreatedAt, msg.Time)

	var decoded events.SaleCreated
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublish_WriterError(t *testing.T) {
	boom := errors.New("leader not available")
	p := &Publisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), events.SaleCreated{Key: "k"})
	assert.True(t, errors.Is(err, boom))
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "sale_created")

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "sale_created", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}
