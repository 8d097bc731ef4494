package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

// DualAuthService authenticates against the current member store first and
// falls back to the legacy store when the current store denies the attempt.
// A successful legacy verification authenticates that request only — it
// never migrates the account as a side effect; migration is an explicit,
// operator-triggered action (see MigrationCoordinator).
type DualAuthService struct {
	members  ports.MemberRepository
	legacy   ports.LegacyMemberRepository
	verifier LegacyVerifier
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewDualAuthService(
	members ports.MemberRepository,
	legacy ports.LegacyMemberRepository,
	audit ports.AuditSink,
	log zerolog.Logger,
) *DualAuthService {
	return &DualAuthService{members: members, legacy: legacy, audit: audit, log: log}
}

// Register creates a current-store account. Account creation is identical
// in both modes: new credentials always use the current algorithm.
func (s *DualAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Member, error) {
	return registerMember(ctx, s.members, in)
}

func (s *DualAuthService) Attempt(ctx context.Context, identifier, password string) (*domain.Member, error) {
	member, err := attemptPrimary(ctx, s.members, identifier, password)
	if err == nil {
		s.record(identifier, domain.OutcomeSuccess)
		return member, nil
	}
	if err != domain.ErrMemberNotFound && err != domain.ErrInvalidCredentials {
		return nil, err
	}

	legacyMember, lerr := s.legacy.FindByLoginID(ctx, identifier)
	if lerr == domain.ErrLegacyNotFound {
		s.record(identifier, domain.OutcomeDenied)
		// Preserve the primary store's denial reason for the caller.
		return nil, err
	}
	if lerr != nil {
		return nil, lerr
	}

	if !s.verifier.Verify(password, legacyMember.PasswordHash) {
		s.record(identifier, domain.OutcomeDenied)
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if terr := s.legacy.TouchLastLogin(ctx, legacyMember.LoginID, now); terr != nil {
		s.log.Warn().Err(terr).Str("login_id", legacyMember.LoginID).Msg("failed to touch legacy last login")
	}

	s.record(identifier, domain.OutcomeLegacySuccess)
	s.log.Info().Str("login_id", legacyMember.LoginID).Msg("authenticated against legacy store")

	// Transient member for this request's session. No current-store record
	// exists yet, so there is no ID until the account is migrated.
	return &domain.Member{
		Username:      legacyMember.LoginID,
		Email:         legacyMember.Email,
		PasswordHash:  legacyMember.PasswordHash,
		HashAlgorithm: domain.HashLegacy,
		Level:         domain.LevelMember,
	}, nil
}

func (s *DualAuthService) Mode() domain.AuthMode { return domain.ModeDual }

func (s *DualAuthService) SupportsMigration() bool { return true }

func (s *DualAuthService) record(identifier, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{
		Kind:       domain.AuditLogin,
		Identifier: identifier,
		Mode:       domain.ModeDual,
		Outcome:    outcome,
		Timestamp:  time.Now().UTC(),
	})
}
