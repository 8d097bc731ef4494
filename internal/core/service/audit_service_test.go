package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/boardkit/member-system/internal/core/domain"
)

type stubAuditRepo struct {
	inserted  []*domain.AuthEvent
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, event)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int) ([]*domain.AuthEvent, error) {
	if limit <= 0 || limit > len(r.inserted) {
		limit = len(r.inserted)
	}
	return r.inserted[:limit], nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuthEvent{
		Kind:       domain.AuditLogin,
		Identifier: "alice",
		Mode:       domain.ModeDual,
		Outcome:    domain.OutcomeSuccess,
		Timestamp:  time.Now().UTC(),
	}
	if err := svc.Record(context.Background(), event); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 inserted event, got %d", len(repo.inserted))
	}
	if repo.inserted[0].Identifier != "alice" {
		t.Fatalf("unexpected identifier: %s", repo.inserted[0].Identifier)
	}
}

func TestAuditService_Record_PropagatesFailure(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("write timeout")}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuthEvent{Kind: domain.AuditMigration})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, repo.insertErr) {
		t.Fatalf("storage failure not wrapped: %v", err)
	}
}
