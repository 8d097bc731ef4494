package domain

import "time"

// Audit event kinds.
const (
	AuditLogin     = "login"
	AuditMigration = "migration"
)

// Audit event outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeLegacySuccess   = "legacy_success"
	OutcomeDenied          = "denied"
	OutcomeAlreadyMigrated = "already_migrated"
	OutcomeNotFound        = "not_found"
	OutcomeError           = "error"
)

// AuthEvent is one entry in the authentication/migration audit trail.
// Events are recorded asynchronously; Timestamp is the moment the
// originating operation completed, not the moment of persistence.
type AuthEvent struct {
	Kind       string    `json:"kind"`
	Identifier string    `json:"identifier"`
	Mode       AuthMode  `json:"mode"`
	Outcome    string    `json:"outcome"`
	Timestamp  time.Time `json:"timestamp"`
}
