package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

// categoryAll is the catch-all value the storefront filter sends.
const categoryAll = "all"

// ProductService serves the product listing.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

// List normalises the filter and queries the repository. Unknown sort
// values are ignored rather than rejected.
func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	f := ports.ProductFilter{
		Search:   strings.TrimSpace(filter.Search),
		Category: strings.ToLower(strings.TrimSpace(filter.Category)),
		Sort:     strings.ToLower(strings.TrimSpace(filter.Sort)),
	}
	if f.Category == categoryAll {
		f.Category = ""
	}
	if f.Sort != ports.SortPriceLow && f.Sort != ports.SortPriceHigh {
		f.Sort = ports.SortNone
	}

	products, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list products")
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
