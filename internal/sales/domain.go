package sales

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// SaleInput is a candidate sale as received on the wire, before validation.
type SaleInput struct {
	Time       string  `json:"time" validate:"required,timestamp"`
	CustomerID string  `json:"customer_id" validate:"min=2"`
	SKU        string  `json:"sku" validate:"min=2"`
	Amount     int64   `json:"amount" validate:"gt=0"`
	Price      float64 `json:"price" validate:"finite,gt=0"`
}

// Sale represents a sales transaction with its price in major currency units.
type Sale struct {
	Time       time.Time `json:"time"`
	CustomerID string    `json:"customer_id"`
	SKU        string    `json:"sku"`
	Amount     int64     `json:"amount"`
	Price      float64   `json:"price"`
}

// SaleRecord is the storage representation of a sale. PriceMinor holds the
// price in minor currency units (cents).
type SaleRecord struct {
	Time       time.Time
	CustomerID string
	SKU        string
	Amount     int64
	PriceMinor int64
}

var (
	minorPerMajor = decimal.NewFromInt(100)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
)

// ToMinorUnits converts a major-unit price to minor units, rounding half away
// from zero on the shortest decimal representation of the float (19.005 -> 1901).
// ok is false when the result does not fit in an int64.
func ToMinorUnits(major float64) (minor int64, ok bool) {
	d := decimal.NewFromFloat(major).Mul(minorPerMajor).Round(0)
	if d.Abs().GreaterThan(maxMinorUnits) {
		return 0, false
	}
	return d.IntPart(), true
}

// ToMajorUnits converts minor units back to a major-unit price.
func ToMajorUnits(minor int64) float64 {
	f, _ := decimal.New(minor, -2).Float64()
	return f
}

// toRecord builds the storage record for an already validated sale. The price
// must still come out as at least one cent that fits in an int64.
func toRecord(t time.Time, in SaleInput) (SaleRecord, error) {
	minor, ok := ToMinorUnits(in.Price)
	if !ok {
		return SaleRecord{}, &ValidationError{Field: "price", Message: "is too large"}
	}
	if minor < 1 {
		return SaleRecord{}, &ValidationError{Field: "price", Message: "must be at least 0.01"}
	}

	return SaleRecord{
		Time:       t.UTC(),
		CustomerID: in.CustomerID,
		SKU:        in.SKU,
		Amount:     in.Amount,
		PriceMinor: minor,
	}, nil
}

// toSale is the inverse of toRecord.
func toSale(rec SaleRecord) Sale {
	return Sale{
		Time:       rec.Time.UTC(),
		CustomerID: rec.CustomerID,
		SKU:        rec.SKU,
		Amount:     rec.Amount,
		Price:      ToMajorUnits(rec.PriceMinor),
	}
}
