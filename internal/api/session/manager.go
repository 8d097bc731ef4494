package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/boardkit/member-system/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid session token")

// Denylist abstracts the revoked-token store (Redis).
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Claims is the decoded, validated content of a session token.
type Claims struct {
	Username  string
	Email     string
	Level     int
	Mode      domain.AuthMode
	JTI       string
	ExpiresAt time.Time
}

// Manager issues and revokes HS256 session tokens. The auth core only
// decides whether a member is who they claim to be; turning that decision
// into a transportable session lives here.
type Manager struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
	denylist    Denylist
}

func NewManager(secret string, ttl, rememberTTL time.Duration, denylist Denylist) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if rememberTTL <= 0 {
		rememberTTL = 30 * 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, rememberTTL: rememberTTL, denylist: denylist}
}

// Issue signs a token for an authenticated member. remember extends the
// lifetime to the remember-me TTL.
func (m *Manager) Issue(member *domain.Member, mode domain.AuthMode, remember bool) (string, error) {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   member.Username,
		"email": member.Email,
		"level": member.Level,
		"mode":  string(mode),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Parse validates a token's signature and expiry and checks the denylist.
func (m *Manager) Parse(ctx context.Context, token string) (*Claims, error) {
	claims, err := m.parseClaims(token)
	if err != nil {
		return nil, err
	}

	if m.denylist != nil {
		revoked, err := m.denylist.IsRevoked(ctx, claims.JTI)
		if err != nil {
			return nil, fmt.Errorf("session parse: %w", err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

// Revoke denylists the token's jti for its remaining lifetime. Revoking an
// already-expired or malformed token is a no-op error: there is no session
// left to end.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parseClaims(token)
	if err != nil {
		return ErrInvalidToken
	}
	if m.denylist == nil {
		return nil
	}
	return m.denylist.Revoke(ctx, claims.JTI, time.Until(claims.ExpiresAt))
}

func (m *Manager) parseClaims(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	claims.Username, _ = mc["sub"].(string)
	claims.Email, _ = mc["email"].(string)
	claims.JTI, _ = mc["jti"].(string)
	if mode, ok := mc["mode"].(string); ok {
		claims.Mode = domain.AuthMode(mode)
	}
	if level, ok := mc["level"].(float64); ok {
		claims.Level = int(level)
	}
	if exp, ok := mc["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	if claims.Username == "" || claims.JTI == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
