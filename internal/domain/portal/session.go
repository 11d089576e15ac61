package portal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Session is the single authority on portal access. It exists only in
// the session store for its TTL; there is no secondary copy to fall out
// of sync with.
type Session struct {
	Token         string
	FamilyID      uint
	AdminOverride bool
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

func NewSession(familyID uint, adminOverride bool, issuedAt time.Time, ttl time.Duration) (*Session, error) {
	if familyID == 0 {
		return nil, fmt.Errorf("family ID is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &Session{
		Token:         token,
		FamilyID:      familyID,
		AdminOverride: adminOverride,
		IssuedAt:      issuedAt,
		ExpiresAt:     issuedAt.Add(ttl),
	}, nil
}

// IsExpired reports whether the session has passed its expiry. A session
// is valid up to and including the expiry instant.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Renew extends the session from now, keeping the same token.
func (s *Session) Renew(now time.Time, ttl time.Duration) {
	s.ExpiresAt = now.Add(ttl)
}

// RemainingTTL returns how long the session has left, for store writes
// that expire the entry natively.
func (s *Session) RemainingTTL(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SessionStore keeps sessions for their lifetime and may return an
// already expired session for a while afterwards, so callers can tell a
// stale token from an unknown one. Get returns nil with no error when
// the token is unknown.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
