package ports

import (
	"context"

	"github.com/tabaum/storefront/internal/core/domain"
)

// RegisterInput carries a registration request. IP is the caller origin,
// recorded in the audit trail only.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	IP       string
}

// LoginInput carries a login request.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// TokenVerifier validates a bearer token and returns the user ID it was
// issued for. Any failure is domain.ErrInvalidToken.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}
