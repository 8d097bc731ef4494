package ports

import (
	"context"

	"github.com/boardkit/member-system/internal/core/domain"
)

// ListMembersFilter carries query parameters for listing members.
type ListMembersFilter struct {
	Search         string // optional: partial match on username or email
	IncludeDeleted bool   // include soft-deleted members
	Page           int    // 1-based
	Limit          int    // max rows per page (capped at 100 by the handler)
}

// MemberRepository is the read/write surface over the current account store.
// Lookups are field-specific, unlike the legacy store. A missing record is
// reported as domain.ErrMemberNotFound, never as a storage fault.
type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member) (*domain.Member, error)
	FindByUsername(ctx context.Context, username string) (*domain.Member, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	// Exists reports whether an active member with the given username or
	// email is present. This is the migration idempotency guard.
	Exists(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context, filter ListMembersFilter) ([]*domain.Member, int64, error)
	SoftDelete(ctx context.Context, username string) error
	Restore(ctx context.Context, username string) error
}
