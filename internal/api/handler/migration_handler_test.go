package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

type stubMigrationService struct {
	migrateOneFn     func(ctx context.Context, identifier, overridePassword string) (*domain.Member, error)
	migrateManyFn    func(ctx context.Context, identifiers []string) (*ports.BatchResult, error)
	listMigratableFn func(ctx context.Context) ([]*domain.LegacyMember, error)
}

func (s *stubMigrationService) MigrateOne(ctx context.Context, identifier, overridePassword string) (*domain.Member, error) {
	return s.migrateOneFn(ctx, identifier, overridePassword)
}

func (s *stubMigrationService) MigrateMany(ctx context.Context, identifiers []string) (*ports.BatchResult, error) {
	return s.migrateManyFn(ctx, identifiers)
}

func (s *stubMigrationService) ListMigratable(ctx context.Context) ([]*domain.LegacyMember, error) {
	return s.listMigratableFn(ctx)
}

func TestMigrationHandler_Migrate_Success(t *testing.T) {
	h := NewMigrationHandler(&stubMigrationService{
		migrateOneFn: func(_ context.Context, identifier, overridePassword string) (*domain.Member, error) {
			if identifier != "olduser" || overridePassword != "" {
				t.Fatalf("unexpected args: %q %q", identifier, overridePassword)
			}
			return &domain.Member{ID: "m1", Username: "olduser", Email: "olduser"}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/admin/migrations", `{"identifier":"olduser"}`)
	if err := h.Migrate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMigrationHandler_Migrate_Failures(t *testing.T) {
	cases := []struct {
		err    error
		status int
		reason string
	}{
		{domain.ErrNotDualMode, http.StatusBadRequest, "NotDualMode"},
		{domain.ErrLegacyNotFound, http.StatusNotFound, "NotFound"},
		{domain.ErrAlreadyMigrated, http.StatusConflict, "AlreadyMigrated"},
	}

	for _, tc := range cases {
		h := NewMigrationHandler(&stubMigrationService{
			migrateOneFn: func(_ context.Context, _, _ string) (*domain.Member, error) {
				return nil, tc.err
			},
		})

		c, rec := newTestContext(t, http.MethodPost, "/admin/migrations", `{"identifier":"olduser"}`)
		if err := h.Migrate(c); err != nil {
			t.Fatalf("handler error for %v: %v", tc.err, err)
		}
		if rec.Code != tc.status {
			t.Fatalf("expected %d for %v, got %d", tc.status, tc.err, rec.Code)
		}

		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Error != tc.reason {
			t.Fatalf("expected reason %q, got %q", tc.reason, resp.Error)
		}
	}
}

func TestMigrationHandler_MigrateBatch_PartialFailure(t *testing.T) {
	h := NewMigrationHandler(&stubMigrationService{
		migrateManyFn: func(_ context.Context, identifiers []string) (*ports.BatchResult, error) {
			if len(identifiers) != 3 {
				t.Fatalf("unexpected identifiers: %v", identifiers)
			}
			return &ports.BatchResult{
				Succeeded: []string{"a"},
				Failed: []ports.BatchFailure{
					{Identifier: "b", Reason: "AlreadyMigrated"},
					{Identifier: "c", Reason: "NotFound"},
				},
			}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/admin/migrations/batch",
		`{"identifiers":["a","b","c"]}`)
	if err := h.MigrateBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Partial failure is still a 200: the batch call itself did not error.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp migrateBatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SuccessCount != 1 || resp.FailureCount != 2 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
}

func TestMigrationHandler_MigrateBatch_EmptyList(t *testing.T) {
	h := NewMigrationHandler(&stubMigrationService{
		migrateManyFn: func(_ context.Context, _ []string) (*ports.BatchResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/admin/migrations/batch", `{"identifiers":[]}`)
	if err := h.MigrateBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMigrationHandler_Migratable(t *testing.T) {
	h := NewMigrationHandler(&stubMigrationService{
		listMigratableFn: func(_ context.Context) ([]*domain.LegacyMember, error) {
			return []*domain.LegacyMember{
				{LoginID: "a", Email: "a"},
				{LoginID: "b", Email: "b@example.com"},
			}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/admin/migrations/pending", "")
	if err := h.Migratable(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp migratableResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Members) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMigrationHandler_Migratable_NotDualMode(t *testing.T) {
	h := NewMigrationHandler(&stubMigrationService{
		listMigratableFn: func(_ context.Context) ([]*domain.LegacyMember, error) {
			return nil, domain.ErrNotDualMode
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/admin/migrations/pending", "")
	if err := h.Migratable(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
