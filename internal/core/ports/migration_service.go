package ports

import (
	"context"

	"github.com/boardkit/member-system/internal/core/domain"
)

// BatchFailure records one identifier that could not be migrated and why.
type BatchFailure struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// BatchResult is the full accounting of a batch migration. Partial failure
// is a first-class return value: the batch never short-circuits and never
// rolls back entries that already succeeded.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// MigrationService converts legacy members into current members.
type MigrationService interface {
	// MigrateOne creates a current member from the legacy member matching
	// identifier. overridePassword, when non-empty, is hashed with the
	// current algorithm; otherwise the legacy hash is carried forward.
	// Fails with domain.ErrNotDualMode, domain.ErrLegacyNotFound, or
	// domain.ErrAlreadyMigrated.
	MigrateOne(ctx context.Context, identifier, overridePassword string) (*domain.Member, error)
	// MigrateMany migrates each identifier in order, continuing past
	// individual failures.
	MigrateMany(ctx context.Context, identifiers []string) (*BatchResult, error)
	// ListMigratable returns legacy members with no matching current
	// member, applying the same existence guard as MigrateOne.
	ListMigratable(ctx context.Context) ([]*domain.LegacyMember, error)
}
