// Package session holds the backend bearer token of each logged-in user.
//
// A Session is set on login, read on every authorized backend call and
// removed on logout. It is passed explicitly to the backend client as its
// credential provider.
package session

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	nuts "github.com/vaudience/go-nuts"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = stderrors.New("session not found")

// Session is one authenticated user.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BearerToken implements backend.Credentials.
func (s *Session) BearerToken() (string, error) {
	if s == nil || s.Token == "" {
		return "", errors.NewAuthError("no hay una sesión activa", nil)
	}
	return s.Token, nil
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager creates and resolves sessions on top of a Store.
type Manager struct {
	store      Store
	defaultTTL time.Duration
	now        func() time.Time
}

// NewManager returns a Manager. defaultTTL applies when the token carries no expiry.
func NewManager(store Store, defaultTTL time.Duration) *Manager {
	return &Manager{store: store, defaultTTL: defaultTTL, now: time.Now}
}

// Start stores a new session for token and returns it.
func (m *Manager) Start(ctx context.Context, token, email string) (*Session, error) {
	if token == "" {
		return nil, errors.NewAuthError("empty token", nil)
	}
	now := m.now()
	claims := readClaims(token)
	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(now) {
		return nil, errors.NewAuthError("la sesión ha expirado, inicie sesión de nuevo", nil)
	}
	if email == "" {
		email = claims.Email
	}
	s := &Session{
		ID:        nuts.NID("ses", 32),
		Token:     token,
		Email:     email,
		Admin:     claims.admin(),
		CreatedAt: now,
		ExpiresAt: m.expiry(claims, now),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, errors.NewUnavailableError("failed to save session", err)
	}
	nuts.L.Infof("[Session] Started session for %s until %s", email, s.ExpiresAt.Format(time.RFC3339))
	return s, nil
}

// Resolve returns the live session for id.
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errors.NewAuthError("no session", nil)
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, ErrNotFound) {
			return nil, errors.NewAuthError("session expired or unknown", err)
		}
		return nil, errors.NewUnavailableError("failed to load session", err)
	}
	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return nil, errors.NewAuthError("session expired", nil)
	}
	return s, nil
}

// End removes the session. Ending an unknown session is not an error.
func (m *Manager) End(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !stderrors.Is(err, ErrNotFound) {
		return errors.NewUnavailableError("failed to delete session", err)
	}
	return nil
}

// tokenClaims are the claims the dashboard reads from the backend token.
// The signature is not checked here; the backend verifies the token on every
// call and decides what each user may do.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	// EsAdmin is issued as the string "true"; a boolean is accepted too.
	EsAdmin any `json:"esadmin"`
}

func (c tokenClaims) admin() bool {
	switch v := c.EsAdmin.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return false
}

// readClaims decodes token when it is a JWT. Opaque tokens yield no claims.
func readClaims(token string) tokenClaims {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return tokenClaims{}
	}
	return claims
}

// expiry uses the token's exp claim when it comes sooner than the default TTL.
func (m *Manager) expiry(claims tokenClaims, now time.Time) time.Time {
	fallback := now.Add(m.defaultTTL)
	if claims.ExpiresAt == nil {
		return fallback
	}
	if exp := claims.ExpiresAt.Time; exp.Before(fallback) {
		return exp
	}
	return fallback
}
