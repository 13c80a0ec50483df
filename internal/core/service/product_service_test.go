package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

type stubProductRepo struct {
	lastFilter ports.ProductFilter
	products   []domain.Product
	err        error
}

func (r *stubProductRepo) List(_ context.Context, f ports.ProductFilter) ([]domain.Product, error) {
	r.lastFilter = f
	return r.products, r.err
}

func TestProductService_List_NormalisesFilter(t *testing.T) {
	cases := []struct {
		in   ports.ProductFilter
		want ports.ProductFilter
	}{
		{ports.ProductFilter{Category: "all"}, ports.ProductFilter{}},
		{ports.ProductFilter{Search: "  tábua ", Category: " Corte "}, ports.ProductFilter{Search: "tábua", Category: "corte"}},
		{ports.ProductFilter{Sort: "HIGH"}, ports.ProductFilter{Sort: ports.SortPriceHigh}},
		{ports.ProductFilter{Sort: "random"}, ports.ProductFilter{}},
	}
	for _, tc := range cases {
		repo := &stubProductRepo{}
		svc := NewProductService(repo, zerolog.Nop())
		if _, err := svc.List(context.Background(), tc.in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastFilter != tc.want {
			t.Fatalf("filter %+v: expected %+v, got %+v", tc.in, tc.want, repo.lastFilter)
		}
	}
}

func TestProductService_List_EmptyIsNotNil(t *testing.T) {
	svc := NewProductService(&stubProductRepo{}, zerolog.Nop())

	products, err := svc.List(context.Background(), ports.ProductFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestProductService_List_Error(t *testing.T) {
	boom := errors.New("db down")
	svc := NewProductService(&stubProductRepo{err: boom}, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.ProductFilter{}); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
