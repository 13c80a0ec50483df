package domain

import (
	"github.com/shopspring/decimal"
)

// Product categories used by the seed catalog. The set is open: the
// product table accepts any category string.
const (
	CategoryRustic = "rustica"
	CategoryCut    = "corte"
	CategoryServe  = "servir"
)

// Product is a catalog item. Prices carry two fraction digits.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       Price  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Price is a decimal amount that encodes as a bare JSON number with two
// fraction digits, e.g. 299.90.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps d as a Price.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// MustPrice parses s and panics on malformed input. Intended for literals.
func MustPrice(s string) Price {
	return Price{Decimal: decimal.RequireFromString(s)}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.StringFixed(2)), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	return p.Decimal.UnmarshalJSON(b)
}
