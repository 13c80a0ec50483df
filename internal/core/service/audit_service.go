package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

type auditService struct {
	repo ports.AuthEventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that writes events to repo.
func NewAuditService(repo ports.AuthEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single authentication event.
func (s *auditService) Process(ctx context.Context, ev domain.AuthEvent) error {
	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}

	s.log.Debug().
		Str("kind", string(ev.Kind)).
		Bool("success", ev.Success).
		Str("ip", ev.IP).
		Msg("auth event stored")

	return nil
}
