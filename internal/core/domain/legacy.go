package domain

import (
	"errors"
	"time"
)

var ErrLegacyNotFound = errors.New("legacy member not found")
var ErrAlreadyMigrated = errors.New("member already migrated")
var ErrNotDualMode = errors.New("dual auth mode is not active")

// AuthMode identifies which authentication service is active for the
// lifetime of the process.
type AuthMode string

const (
	ModeStandard AuthMode = "standard"
	ModeDual     AuthMode = "dual"
)

// LegacyMember is a row from the superseded account table. The store is
// read-mostly: the core never creates or deletes legacy rows, and the only
// mutation is the last-login touch on a successful legacy authentication.
//
// LoginID is the single legacy column that historically held either a
// username or an email address; every legacy lookup goes through it. Email
// is the denormalized address used as the migration target — equal to
// LoginID when the legacy row stored only one value.
type LegacyMember struct {
	LoginID      string     `json:"login_id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
