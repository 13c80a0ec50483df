package ports

import (
	"context"

	"github.com/tabaum/storefront/internal/core/domain"
)

// Sort orders accepted by ProductFilter.Sort.
const (
	SortNone      = ""
	SortPriceLow  = "low"
	SortPriceHigh = "high"
)

// ProductFilter carries the product listing query.
type ProductFilter struct {
	Search   string // case-insensitive substring of the name; empty = all
	Category string // exact match; empty = all
	Sort     string // SortNone, SortPriceLow or SortPriceHigh
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

type ProductService interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}
