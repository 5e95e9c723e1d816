// Package session models the caller's credential as an explicit value:
// either anonymous or carrying a bearer token.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	token     string
	subject   string
	expiresAt time.Time
}

func Anonymous() Session {
	return Session{}
}

// FromToken builds a session from the raw credential found in client storage.
// A "Bearer " prefix is tolerated. Claims are read without verifying the
// signature; the backend remains the authority on validity.
func FromToken(raw string) Session {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return Anonymous()
	}

	s := Session{token: raw}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err == nil {
		s.subject = claims.Subject
		if claims.ExpiresAt != nil {
			s.expiresAt = claims.ExpiresAt.Time
		}
	}
	return s
}

// Token is the single accessor for the credential.
func (s Session) Token() (string, bool) {
	return s.token, s.token != ""
}

func (s Session) Subject() string { return s.subject }

func (s Session) ExpiresAt() time.Time { return s.expiresAt }

func (s Session) Expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

// Authenticated is false for anonymous sessions and for tokens past expiry.
func (s Session) Authenticated(now time.Time) bool {
	return s.token != "" && !s.Expired(now)
}
