package ntfy

import (
	"context"
	"fmt"
	"time"

	"demo_sales/internal/events"

	"resty.dev/v3"
)

// Ntfy posts a plain-text notification to an ntfy topic for every sale.
type Ntfy struct {
	topicURL string
	timeout  time.Duration
	client   *resty.Client
}

// ErrNotificationFailed reports a non-2xx answer from the ntfy server.
type ErrNotificationFailed struct {
	StatusCode int
}

func (e ErrNotificationFailed) Error() string {
	return fmt.Sprintf("ntfy wrong response - want: 2xx, got: %d", e.StatusCode)
}

// NewNtfy builds a notifier for topicURL, e.g. https://ntfy.sh/my_sales.
func NewNtfy(topicURL string, timeout time.Duration) *Ntfy {
	return &Ntfy{
		topicURL: topicURL,
		timeout:  timeout,
		client:   resty.New(),
	}
}

func message(event events.SaleCreated) string {
	return fmt.Sprintf("New sale created:\nKey: %s\nCustomer: %s\nSKU: %s\nAmount: %d\nPrice (minor units): %d",
		event.Key, event.CustomerID, event.SKU, event.Amount, event.PriceMinor)
}

func (n *Ntfy) Publish(ctx context.Context, event events.SaleCreated) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	res, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetHeader("Title", "Sale created").
		SetHeader("Tags", "moneybag").
		SetBody(message(event)).
		Post(n.topicURL)
	if err != nil {
		return fmt.Errorf("delivering sale %s to %s: %w", event.Key, n.topicURL, err)
	}
	if res.IsError() {
		return ErrNotificationFailed{StatusCode: res.StatusCode()}
	}
	return nil
}

func (n *Ntfy) Close() error {
	return n.client.Close()
}

var _ events.Publisher = (*Ntfy)(nil)
