// Package cart implements the storefront shopping cart: an ordered list of
// product snapshots with quantities, persisted after every change and
// re-rendered through a View.
//
// A Store is not safe for concurrent use.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/storefront/storage"
)

const EmptyMessage = "Seu carrinho está vazio."

var ErrUnknownProduct = errors.New("cart: unknown product")

// Line is a product snapshot taken when the product was first added. Later
// catalog price changes do not affect it.
type Line struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Price domain.Price `json:"price"`
	Image string       `json:"image"`
	Qty   int          `json:"qty"`
}

// Catalog resolves product ids.
type Catalog interface {
	Find(id int) (domain.Product, bool)
}

// View receives a fresh Panel after every change.
type View interface {
	Render(p Panel)
}

type Store struct {
	catalog Catalog
	storage storage.Store
	view    View
	log     zerolog.Logger

	lines []Line
	open  bool
}

// New loads the cart from storage and renders it once. A missing or
// unreadable stored cart yields an empty cart.
func New(catalog Catalog, st storage.Store, view View, log zerolog.Logger) *Store {
	s := &Store{catalog: catalog, storage: st, view: view, log: log}
	s.lines = s.load()
	s.Render()
	return s
}

func (s *Store) load() []Line {
	raw, err := s.storage.Get(storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Debug().Err(err).Msg("cart storage unreadable, starting empty")
		}
		return nil
	}

	var stored []Line
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Debug().Err(err).Msg("stored cart unparseable, starting empty")
		return nil
	}

	lines := make([]Line, 0, len(stored))
	seen := make(map[int]bool, len(stored))
	for _, l := range stored {
		if l.Qty <= 0 || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		lines = append(lines, l)
	}
	return lines
}

// AddToCart increments the line for id, or appends a new line with qty 1.
// The panel is opened afterwards.
func (s *Store) AddToCart(id int) error {
	if i := s.index(id); i >= 0 {
		s.lines[i].Qty++
	} else {
		p, ok := s.catalog.Find(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownProduct, id)
		}
		s.lines = append(s.lines, Line{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, Qty: 1})
	}

	err := s.commit()
	s.open = true
	s.Render()
	return err
}

// RemoveFromCart deletes the line for id. Absent ids are not an error.
func (s *Store) RemoveFromCart(id int) error {
	i := s.index(id)
	if i >= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	}
	return s.commitAndRender()
}

// ChangeQty adds delta to the line's quantity and removes the line when the
// result is not positive. Absent ids are a no-op.
func (s *Store) ChangeQty(id, delta int) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.lines[i].Qty += delta
	if s.lines[i].Qty <= 0 {
		return s.RemoveFromCart(id)
	}
	return s.commitAndRender()
}

func (s *Store) Open() {
	s.open = true
	s.Render()
}

func (s *Store) Close() {
	s.open = false
	s.Render()
}

func (s *Store) Toggle() {
	s.open = !s.open
	s.Render()
}

func (s *Store) IsOpen() bool { return s.open }

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	return slices.Clone(s.lines)
}

func (s *Store) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Qty
	}
	return n
}

func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.ID == id })
}

func (s *Store) commitAndRender() error {
	err := s.commit()
	s.Render()
	return err
}

// commit writes the whole cart. On failure the in-memory cart is kept.
func (s *Store) commit() error {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.storage.Set(storage.KeyCart, string(data)); err != nil {
		s.log.Error().Err(err).Msg("failed to persist cart")
		return fmt.Errorf("cart: persist: %w", err)
	}
	return nil
}

// FormatBRL renders an amount as Brazilian reais with a comma decimal
// separator, e.g. "R$ 299,90".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}
