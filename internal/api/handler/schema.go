package handler

import (
	"time"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email"    validate:"required,email"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
	Remember   bool   `json:"remember"`
}

type memberResponse struct {
	ID        string     `json:"id,omitempty"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Level     int        `json:"level"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type loginResponse struct {
	Token  string         `json:"token"`
	Member memberResponse `json:"member"`
}

type modeResponse struct {
	Mode string `json:"mode"`
}

type migrateRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password,omitempty"`
}

type migrateBatchRequest struct {
	Identifiers []string `json:"identifiers" validate:"required,min=1,dive,required"`
}

type migrateBatchResponse struct {
	Succeeded    []string             `json:"succeeded"`
	Failed       []ports.BatchFailure `json:"failed"`
	SuccessCount int                  `json:"success_count"`
	FailureCount int                  `json:"failure_count"`
}

type legacyMemberResponse struct {
	LoginID     string     `json:"login_id"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type migratableResponse struct {
	Members []legacyMemberResponse `json:"members"`
	Count   int                    `json:"count"`
}

type listMembersResponse struct {
	Members []memberResponse `json:"members"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

type auditResponse struct {
	Events []*domain.AuthEvent `json:"events"`
	Count  int                 `json:"count"`
}

// --- Mappers ---

func toMemberResponse(m *domain.Member) memberResponse {
	return memberResponse{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Level:     m.Level,
		CreatedAt: m.CreatedAt,
		DeletedAt: m.DeletedAt,
	}
}

func toLegacyMemberResponse(lm *domain.LegacyMember) legacyMemberResponse {
	return legacyMemberResponse{
		LoginID:     lm.LoginID,
		Email:       lm.Email,
		LastLoginAt: lm.LastLoginAt,
	}
}
