package ports

import (
	"context"

	"github.com/tabaum/storefront/internal/core/domain"
)

// AuthEventRepository persists the authentication audit trail.
type AuthEventRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuthEventRecorder accepts audit events without blocking the request path.
type AuthEventRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditService processes a single audit event taken off the queue.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
