package domain

import (
	"errors"
	"time"
)

// Permission levels. Higher means more privileged; LevelAdmin is the
// threshold for the admin surface (member administration, migrations).
const (
	LevelMember = 1
	LevelAdmin  = 10
)

// Hash algorithm tags stored per member record. Every member credential is
// verifiable by exactly one algorithm, recorded at creation time.
const (
	HashBcrypt = "bcrypt"
	HashLegacy = "legacy-sha256"
)

var ErrMemberNotFound = errors.New("member not found")
var ErrMemberExists = errors.New("member already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Member is the current, authoritative account record. Accounts created by
// migration from the legacy store may carry the legacy hash forward, in
// which case HashAlgorithm is HashLegacy.
type Member struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	HashAlgorithm string     `json:"-"`
	Level         int        `json:"level"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the member has been soft-deleted.
func (m *Member) IsDeleted() bool {
	return m.DeletedAt != nil
}
