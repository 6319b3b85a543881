package sales

import (
	"context"
	"errors"
	"fmt"

	"demo_sales/internal/utils"
	"demo_sales/internal/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Publisher is told about every sale once it has been stored.
type Publisher interface {
	PublishSaleCreated(ctx context.Context, key string, rec SaleRecord) error
}

// Service provides the create/get operations for sales on a Store backend.
type Service struct {
	storage   Store
	publisher Publisher
	validate  *validator.Validate
	logger    *zap.Logger
}

// Option configures optional collaborators of a Service.
type Option func(*Service)

// WithPublisher makes the service announce created sales through p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// NewService creates a new Service.
func NewService(storage Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		storage:  storage,
		validate: validation.NewValidator(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSale validates in, stores it and returns the key assigned by the store.
func (s *Service) CreateSale(ctx context.Context, in SaleInput) (string, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", validation.Translate(err)
	}

	t, err := utils.ParseTimestamp(in.Time)
	if err != nil {
		return "", &ValidationError{Field: "time", Message: "must be an ISO-8601 timestamp"}
	}
	rec, err := toRecord(t, in)
	if err != nil {
		return "", err
	}

	key, err := s.storage.Insert(ctx, rec)
	if err != nil {
		s.logger.Error("failed to save sale", zap.String("customer_id", rec.CustomerID), zap.Error(err))
		return "", fmt.Errorf("saving sale: %w: %w", ErrStorage, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSaleCreated(ctx, key, rec); err != nil {
			s.logger.Warn("failed to publish sale event", zap.String("key", key), zap.Error(err))
		}
	}

	s.logger.Info("sale created",
		zap.String("key", key),
		zap.String("sku", rec.SKU),
		zap.Int64("amount", rec.Amount),
		zap.Int64("price_minor", rec.PriceMinor),
	)
	return key, nil
}

// GetSale returns the sale stored under key, or ErrNotFound.
func (s *Service) GetSale(ctx context.Context, key string) (Sale, error) {
	rec, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Sale{}, fmt.Errorf("sale %q: %w", key, ErrNotFound)
		}
		s.logger.Error("failed to read sale", zap.String("key", key), zap.Error(err))
		return Sale{}, fmt.Errorf("reading sale %q: %w: %w", key, ErrStorage, err)
	}
	return toSale(rec), nil
}
