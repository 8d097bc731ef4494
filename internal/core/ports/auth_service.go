package ports

import (
	"context"

	"github.com/boardkit/member-system/internal/core/domain"
)

// AuthSelector yields the active AuthService. The choice is made once per
// process; every call returns the same instance.
type AuthSelector interface {
	Select() AuthService
}

// RegisterInput carries all data needed to create a new member account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Level    int
}

// AuthService encapsulates account creation and credential verification.
// Exactly two implementations exist: the standard service, which consults
// only the current member store, and the dual service, which falls back to
// the legacy store when the current store denies the attempt.
//
// Attempt returns domain.ErrMemberNotFound or domain.ErrInvalidCredentials
// on denial; the two are distinguishable internally but must be collapsed
// to a single generic message at the HTTP boundary.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Member, error)
	Attempt(ctx context.Context, identifier, password string) (*domain.Member, error)
	Mode() domain.AuthMode
	// SupportsMigration reports whether legacy-to-current migration is
	// available in the active mode. Callers use this capability query
	// instead of inspecting the concrete service type.
	SupportsMigration() bool
}
