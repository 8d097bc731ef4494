package session

import (
	"context"
	"testing"
	"time"

	"github.com/boardkit/member-system/internal/core/domain"
)

type memoryDenylist struct {
	revoked map[string]time.Duration
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: make(map[string]time.Duration)}
}

func (d *memoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.revoked[jti] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d.revoked[jti]
	return ok, nil
}

func testMember() *domain.Member {
	return &domain.Member{
		ID:       "m1",
		Username: "alice",
		Email:    "alice@example.com",
		Level:    domain.LevelMember,
	}
}

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour, 0, nil)

	token, err := m.Issue(testMember(), domain.ModeStandard, false)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := m.Parse(context.Background(), token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Username != "alice" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Mode != domain.ModeStandard {
		t.Fatalf("unexpected mode: %s", claims.Mode)
	}
	if claims.JTI == "" {
		t.Fatalf("expected a jti")
	}
}

func TestManager_RememberExtendsLifetime(t *testing.T) {
	m := NewManager("secret", time.Hour, 48*time.Hour, nil)

	short, err := m.Issue(testMember(), domain.ModeDual, false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	long, err := m.Issue(testMember(), domain.ModeDual, true)
	if err != nil {
		t.Fatalf("Issue remember: %v", err)
	}

	shortClaims, _ := m.Parse(context.Background(), short)
	longClaims, _ := m.Parse(context.Background(), long)
	if !longClaims.ExpiresAt.After(shortClaims.ExpiresAt) {
		t.Fatalf("remember token does not outlive the default token")
	}
}

func TestManager_RevokeDenylistsRemaining(t *testing.T) {
	denylist := newMemoryDenylist()
	m := NewManager("secret", time.Hour, 0, denylist)

	token, err := m.Issue(testMember(), domain.ModeStandard, false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := m.Revoke(context.Background(), token); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if len(denylist.revoked) != 1 {
		t.Fatalf("expected 1 denylisted jti, got %d", len(denylist.revoked))
	}
	for _, ttl := range denylist.revoked {
		if ttl <= 0 || ttl > time.Hour {
			t.Fatalf("unexpected denylist ttl: %v", ttl)
		}
	}

	if _, err := m.Parse(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after revoke, got %v", err)
	}
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour, 0, nil)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.Parse(context.Background(), token); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
	if err := m.Revoke(context.Background(), "not-a-jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken on revoke, got %v", err)
	}
}
