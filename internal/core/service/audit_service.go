package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists auth events to the
// audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single auth event. Events arrive from the dispatcher
// after the originating operation already completed, so a failure here is
// reported to the caller but can no longer affect the auth decision.
func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("kind", event.Kind).
		Str("identifier", event.Identifier).
		Str("outcome", event.Outcome).
		Msg("auth event recorded")

	return nil
}
