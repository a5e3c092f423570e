package models

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Price is a monetary amount stored as decimal(8,2) and always rendered
// with two fractional digits ("12.50", not "12.5").
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d.Round(2)}
}

func MustPrice(s string) Price {
	return NewPrice(decimal.RequireFromString(s))
}

func (p Price) String() string { return p.StringFixed(2) }

func (p Price) Value() (driver.Value, error) { return p.StringFixed(2), nil }

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.StringFixed(2) + `"`), nil
}
