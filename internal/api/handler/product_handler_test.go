package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

type stubProductService struct {
	got      ports.ProductFilter
	products []domain.Product
	err      error
}

func (s *stubProductService) List(_ context.Context, f ports.ProductFilter) ([]domain.Product, error) {
	s.got = f
	return s.products, s.err
}

func TestProductHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubProductService{products: []domain.Product{
		{ID: 3, Name: "Tábua Elegance", Price: domain.MustPrice("189.90"), Category: "servir", Image: "images/board3.jpeg", Description: "d"},
	}}
	handler := NewProductHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products?search=eleg&category=servir&sort=low", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := `{"products":[{"id":3,"name":"Tábua Elegance","price":189.90,"category":"servir","image":"images/board3.jpeg","description":"d"}]}` + "\n"
	if rec.Code != http.StatusOK || rec.Body.String() != want {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if stub.got != (ports.ProductFilter{Search: "eleg", Category: "servir", Sort: "low"}) {
		t.Fatalf("unexpected filter: %+v", stub.got)
	}
}

func TestProductHandler_List_Error(t *testing.T) {
	e := newTestEcho()
	boom := errors.New("db down")
	handler := NewProductHandler(&stubProductService{err: boom})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if err := handler.List(c); !errors.Is(err, boom) {
		t.Fatalf("expected service error, got %v", err)
	}
}
