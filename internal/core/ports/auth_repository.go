package ports

import (
	"context"

	"github.com/tabaum/storefront/internal/core/domain"
)

// UserRepository defines credential record persistence.
type UserRepository interface {
	// Create stores a new user and returns it with its assigned ID.
	// A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
