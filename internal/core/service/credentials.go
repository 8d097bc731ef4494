package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
)

// hashPassword produces a current-algorithm credential.
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyMemberPassword dispatches on the member's recorded hash algorithm.
// A record is only ever verifiable by the algorithm it was created with:
// bcrypt for direct signups, the legacy scheme for migrated accounts that
// carried their hash forward.
func verifyMemberPassword(m *domain.Member, plaintext string) bool {
	switch m.HashAlgorithm {
	case domain.HashLegacy:
		return LegacyVerifier{}.Verify(plaintext, m.PasswordHash)
	default:
		return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(plaintext)) == nil
	}
}

// registerMember validates input, hashes the password with the current
// algorithm, and inserts the member. Shared by both auth services: account
// creation never involves the legacy store.
func registerMember(ctx context.Context, members ports.MemberRepository, in ports.RegisterInput) (*domain.Member, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	level := in.Level
	if level <= 0 {
		level = domain.LevelMember
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.Member{
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		HashAlgorithm: domain.HashBcrypt,
		Level:         level,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return members.Create(ctx, member)
}

// attemptPrimary resolves identifier against the current store, trying the
// username field first and the email field second, and verifies the
// credential. Soft-deleted members are treated as absent.
func attemptPrimary(ctx context.Context, members ports.MemberRepository, identifier, password string) (*domain.Member, error) {
	member, err := members.FindByUsername(ctx, identifier)
	if err == domain.ErrMemberNotFound {
		member, err = members.FindByEmail(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	if member.IsDeleted() {
		return nil, domain.ErrMemberNotFound
	}
	if !verifyMemberPassword(member, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return member, nil
}
