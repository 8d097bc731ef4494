package ports

import (
	"context"
	"time"

	"github.com/boardkit/member-system/internal/core/domain"
)

// LegacyMemberRepository is the read-mostly surface over the superseded
// account table.
type LegacyMemberRepository interface {
	// FindByLoginID resolves a legacy member by its single identifier
	// column, which historically held either a username or an email.
	// Returns domain.ErrLegacyNotFound when no row matches.
	FindByLoginID(ctx context.Context, loginID string) (*domain.LegacyMember, error)
	// List returns up to limit legacy members. limit <= 0 means no cap.
	List(ctx context.Context, limit int) ([]*domain.LegacyMember, error)
	// TouchLastLogin records a successful legacy authentication. The only
	// write the core ever performs against the legacy store.
	TouchLastLogin(ctx context.Context, loginID string, at time.Time) error
}
