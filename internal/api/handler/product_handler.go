package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tabaum/storefront/internal/api/metrics"
	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns the catalog, optionally filtered and sorted.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive name substring"
// @Param        category  query     string  false  "Exact category; 'all' disables the filter"
// @Param        sort      query     string  false  "Price order"  Enums(low, high)
// @Success      200       {object}  productsResponse
// @Failure      500       {object}  map[string]string
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	var q productQuery
	if err := c.Bind(&q); err != nil {
		return domain.NewValidationError(msgInvalidPayload)
	}

	start := time.Now()
	products, err := h.productService.List(c.Request().Context(), ports.ProductFilter{
		Search:   q.Search,
		Category: q.Category,
		Sort:     q.Sort,
	})
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ProductQueryDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productsResponse{Products: products})
}
