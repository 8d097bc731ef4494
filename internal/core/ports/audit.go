package ports

import (
	"context"

	"github.com/boardkit/member-system/internal/core/domain"
)

// AuditSink accepts auth events for asynchronous recording. Enqueue never
// blocks the calling request beyond channel buffering and never returns an
// error: audit is best-effort bookkeeping, not part of the auth decision.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}

// AuditService persists a single auth event.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditRepository handles audit trail persistence.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.AuthEvent, error)
}
