// Package render draws storefront state as plain text for the terminal
// client.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/storefront/cart"
	"github.com/tabaum/storefront/internal/storefront/session"
)

// CartView writes the cart panel to w. Closed panels show the badge only.
type CartView struct {
	w io.Writer
}

func NewCartView(w io.Writer) *CartView {
	return &CartView{w: w}
}

func (v *CartView) Render(p cart.Panel) {
	if !p.Open {
		fmt.Fprintf(v.w, "Carrinho (%s)\n", p.Badge())
		return
	}

	fmt.Fprintf(v.w, "── Carrinho (%s) ──\n", p.Badge())
	if p.Empty {
		fmt.Fprintln(v.w, p.EmptyMessage)
	}
	for _, r := range p.Rows {
		fmt.Fprintf(v.w, "#%d  %-28s %12s  x%d\n", r.ID, r.Name, r.Price, r.Qty)
	}
	fmt.Fprintf(v.w, "Total: %s\n", p.Total)
}

// Products writes one line per product.
func Products(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "Nenhum produto encontrado.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "#%d  %-28s %12s  [%s]\n", p.ID, p.Name, cart.FormatBRL(p.Price.Decimal), p.Category)
		if p.Description != "" {
			fmt.Fprintf(w, "    %s\n", p.Description)
		}
	}
}

// Account writes the login affordance.
func Account(w io.Writer, vm session.ViewModel) {
	if !vm.IsAuthenticated {
		fmt.Fprintln(w, "Entrar")
		return
	}
	fmt.Fprintf(w, "Olá, %s (sair)\n", strings.TrimSpace(vm.DisplayName))
}
