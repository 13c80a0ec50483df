package ports

import (
	"context"

	"github.com/tabaum/storefront/internal/core/domain"
)

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) error
}
