package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tabaum/storefront/internal/api/metrics"
	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

type ContactHandler struct {
	contactService ports.ContactService
}

func NewContactHandler(contactService ports.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit stores a contact form message.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError(msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.contactService.Submit(c.Request().Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	metrics.ContactMessagesTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Mensagem enviada com sucesso!"})
}
