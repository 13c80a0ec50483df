package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

// ContactService stores contact form submissions.
type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log, now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, in ports.ContactInput) error {
	msg := &domain.ContactMessage{
		Name:      strings.TrimSpace(in.Name),
		Email:     normalizeEmail(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now().UTC(),
	}
	switch {
	case msg.Name == "":
		return domain.NewValidationError("O nome é obrigatório.")
	case msg.Email == "":
		return domain.NewValidationError("O e-mail é obrigatório.")
	case msg.Subject == "":
		return domain.NewValidationError("O assunto é obrigatório.")
	case msg.Message == "":
		return domain.NewValidationError("A mensagem é obrigatória.")
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.log.Error().Err(err).Msg("failed to store contact message")
		return err
	}

	s.log.Info().Str("contact_id", msg.ID).Str("subject", msg.Subject).Msg("contact message stored")
	return nil
}
