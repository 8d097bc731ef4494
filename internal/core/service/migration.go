package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

// MigrationCoordinator converts legacy members into current members,
// idempotently. The legacy record is never mutated or deleted: it remains
// the operator's system of record until they decide otherwise.
type MigrationCoordinator struct {
	auth    ports.AuthService
	members ports.MemberRepository
	legacy  ports.LegacyMemberRepository
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewMigrationCoordinator(
	auth ports.AuthService,
	members ports.MemberRepository,
	legacy ports.LegacyMemberRepository,
	audit ports.AuditSink,
	log zerolog.Logger,
) *MigrationCoordinator {
	return &MigrationCoordinator{auth: auth, members: members, legacy: legacy, audit: audit, log: log}
}

// MigrateOne creates exactly one current member from the legacy member
// matching identifier. Retrying a call that already succeeded returns
// domain.ErrAlreadyMigrated rather than creating a duplicate.
func (c *MigrationCoordinator) MigrateOne(ctx context.Context, identifier, overridePassword string) (*domain.Member, error) {
	if !c.auth.SupportsMigration() {
		return nil, domain.ErrNotDualMode
	}

	legacyMember, err := c.legacy.FindByLoginID(ctx, identifier)
	if err != nil {
		c.record(identifier, migrationOutcome(err))
		return nil, err
	}

	// Idempotency guard: one current member per legacy member, ever.
	exists, err := c.members.Exists(ctx, legacyMember.LoginID, legacyMember.Email)
	if err != nil {
		return nil, fmt.Errorf("migrate %s: %w", identifier, err)
	}
	if exists {
		c.record(identifier, domain.OutcomeAlreadyMigrated)
		return nil, domain.ErrAlreadyMigrated
	}

	hash := legacyMember.PasswordHash
	algorithm := domain.HashLegacy
	if overridePassword != "" {
		if hash, err = hashPassword(overridePassword); err != nil {
			return nil, err
		}
		algorithm = domain.HashBcrypt
	}

	now := time.Now().UTC()
	member := &domain.Member{
		Username:      legacyMember.LoginID,
		Email:         legacyMember.Email,
		PasswordHash:  hash,
		HashAlgorithm: algorithm,
		Level:         domain.LevelMember,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := c.members.Create(ctx, member)
	if err == domain.ErrMemberExists {
		// A concurrent migration won the insert. The unique index turns
		// the race into a distinguishable conflict instead of a duplicate.
		c.record(identifier, domain.OutcomeAlreadyMigrated)
		return nil, domain.ErrAlreadyMigrated
	}
	if err != nil {
		return nil, fmt.Errorf("migrate %s: %w", identifier, err)
	}

	c.record(identifier, domain.OutcomeSuccess)
	c.log.Info().
		Str("login_id", legacyMember.LoginID).
		Str("hash_algorithm", algorithm).
		Msg("legacy member migrated")

	return created, nil
}

// MigrateMany migrates each identifier in order, accumulating per-item
// results. A bad row never aborts the batch, and entries that already
// succeeded are never rolled back.
func (c *MigrationCoordinator) MigrateMany(ctx context.Context, identifiers []string) (*ports.BatchResult, error) {
	result := &ports.BatchResult{
		Succeeded: make([]string, 0, len(identifiers)),
		Failed:    make([]ports.BatchFailure, 0),
	}

	for _, id := range identifiers {
		if _, err := c.MigrateOne(ctx, id, ""); err != nil {
			result.Failed = append(result.Failed, ports.BatchFailure{
				Identifier: id,
				Reason:     migrationReason(err),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	return result, nil
}

// ListMigratable returns legacy members that would not fail MigrateOne's
// idempotency guard, so operator previews never show rows that would
// immediately come back as already migrated.
func (c *MigrationCoordinator) ListMigratable(ctx context.Context) ([]*domain.LegacyMember, error) {
	if !c.auth.SupportsMigration() {
		return nil, domain.ErrNotDualMode
	}

	all, err := c.legacy.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list migratable: %w", err)
	}

	pending := make([]*domain.LegacyMember, 0, len(all))
	for _, lm := range all {
		exists, err := c.members.Exists(ctx, lm.LoginID, lm.Email)
		if err != nil {
			return nil, fmt.Errorf("list migratable: %w", err)
		}
		if !exists {
			pending = append(pending, lm)
		}
	}

	return pending, nil
}

func (c *MigrationCoordinator) record(identifier, outcome string) {
	if c.audit == nil {
		return
	}
	c.audit.Enqueue(domain.AuthEvent{
		Kind:       domain.AuditMigration,
		Identifier: identifier,
		Mode:       c.auth.Mode(),
		Outcome:    outcome,
		Timestamp:  time.Now().UTC(),
	})
}

// migrationReason maps a migration error to its reason string for batch
// accounting and the admin API. Operator-facing, so reasons stay specific.
func migrationReason(err error) string {
	switch err {
	case domain.ErrNotDualMode:
		return "NotDualMode"
	case domain.ErrLegacyNotFound:
		return "NotFound"
	case domain.ErrAlreadyMigrated:
		return "AlreadyMigrated"
	default:
		return "StorageFailure"
	}
}

func migrationOutcome(err error) string {
	switch err {
	case domain.ErrLegacyNotFound:
		return domain.OutcomeNotFound
	case domain.ErrAlreadyMigrated:
		return domain.OutcomeAlreadyMigrated
	default:
		return domain.OutcomeError
	}
}
