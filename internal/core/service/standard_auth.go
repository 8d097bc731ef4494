package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

// StandardAuthService authenticates against the current member store only.
// Active when the dual-store transition is over (or never began).
type StandardAuthService struct {
	members ports.MemberRepository
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewStandardAuthService(members ports.MemberRepository, audit ports.AuditSink, log zerolog.Logger) *StandardAuthService {
	return &StandardAuthService{members: members, audit: audit, log: log}
}

func (s *StandardAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
	return registerMember(ctx, s.members, in)
}

func (s *StandardAuthService) Attempt(ctx context.Context, identifier, password string) (*domain.Member, error) {
	member, err := attemptPrimary(ctx, s.members, identifier, password)
	if err != nil {
		s.record(identifier, domain.OutcomeDenied)
		return nil, err
	}

	s.record(identifier, domain.OutcomeSuccess)
	return member, nil
}

func (s *StandardAuthService) Mode() domain.AuthMode { return domain.ModeStandard }

func (s *StandardAuthService) SupportsMigration() bool { return false }

func (s *StandardAuthService) record(identifier, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{
		Kind:       domain.AuditLogin,
		Identifier: identifier,
		Mode:       domain.ModeStandard,
		Outcome:    outcome,
		Timestamp:  time.Now().UTC(),
	})
}
