// Package catalog holds the storefront's built-in product list and the
// search, category and price-sort filters applied to it.
package catalog

import (
	"slices"
	"strings"

	"github.com/tabaum/storefront/internal/core/domain"
)

const (
	CategoryAll = "all"

	SortLow  = "low"
	SortHigh = "high"
)

var defaultProducts = []domain.Product{
	{ID: 1, Name: "Tábua Rústica Premium", Price: domain.MustPrice("299.90"), Category: domain.CategoryRustic, Image: "images/board.jpeg", Description: "Madeira nobre com acabamento natural."},
	{ID: 2, Name: "Tábua Churrasco Pro", Price: domain.MustPrice("349.90"), Category: domain.CategoryCut, Image: "images/board2.jpeg", Description: "Canaleta profunda para líquidos."},
	{ID: 3, Name: "Tábua Elegance", Price: domain.MustPrice("189.90"), Category: domain.CategoryServe, Image: "images/board3.jpeg", Description: "Design fino para servir queijos e frios."},
	{ID: 4, Name: "Conjunto Petisqueira", Price: domain.MustPrice("129.90"), Category: domain.CategoryServe, Image: "images/board.jpeg", Description: "Ideal para reuniões e entradas."},
	{ID: 5, Name: "Bloco de Corte Master", Price: domain.MustPrice("499.00"), Category: domain.CategoryCut, Image: "images/board2.jpeg", Description: "Espessura dupla para uso intenso."},
	{ID: 6, Name: "Tábua Orgânica", Price: domain.MustPrice("259.90"), Category: domain.CategoryRustic, Image: "images/board3.jpeg", Description: "Formas naturais da árvore preservadas."},
}

// Query narrows a product list. Zero values mean no filtering.
type Query struct {
	Search   string
	Category string
	Sort     string
}

// Catalog is an immutable, ordered product list.
type Catalog struct {
	products []domain.Product
}

func New(products []domain.Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// Default returns the catalog with the six built-in products.
func Default() *Catalog {
	return New(defaultProducts)
}

// All returns a copy of every product in catalog order.
func (c *Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Find(id int) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Catalog) Filter(q Query) []domain.Product {
	return Filter(c.products, q)
}

// Filter applies q to products without modifying them. Search is a
// case-insensitive substring match on the name, category is exact and
// ignored when empty or "all". Sorting is stable so ties keep list order.
func Filter(products []domain.Product, q Query) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price.Decimal) })
	case SortHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price.Decimal) })
	}
	return out
}
