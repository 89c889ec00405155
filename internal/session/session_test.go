package session

import (
	"context"
	"testing"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	return signClaims(t, jwt.MapClaims{"exp": exp.Unix()})
}

func signClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	s, err := m.Start(ctx, "opaque-token", "ana@agua.gt")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	got, err := m.Resolve(ctx, s.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	token, err := got.BearerToken()
	if err != nil || token != "opaque-token" {
		t.Fatalf("BearerToken()=%q,%v", token, err)
	}

	if err := m.End(ctx, s.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := m.Resolve(ctx, s.ID); !errors.IsAuth(err) {
		t.Fatalf("Resolve after End err=%v want auth error", err)
	}
}

func TestManagerRejectsEmptyToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	if _, err := m.Start(context.Background(), "", "ana@agua.gt"); err == nil {
		t.Fatalf("Start with empty token succeeded")
	}
}

func TestManagerUsesJWTExpiry(t *testing.T) {
	now := time.Date(2024, 10, 5, 12, 0, 0, 0, time.UTC)
	m := NewManager(NewMemoryStore(), 12*time.Hour)
	m.now = func() time.Time { return now }

	exp := now.Add(30 * time.Minute)
	s, err := m.Start(context.Background(), signedToken(t, exp), "ana@agua.gt")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.ExpiresAt.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("ExpiresAt=%v want %v", s.ExpiresAt, exp)
	}

	long, err := m.Start(context.Background(), signedToken(t, now.Add(48*time.Hour)), "ana@agua.gt")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !long.ExpiresAt.Equal(now.Add(12 * time.Hour)) {
		t.Fatalf("long token ExpiresAt=%v want capped at default ttl", long.ExpiresAt)
	}
}

func TestManagerExpiresSessions(t *testing.T) {
	now := time.Date(2024, 10, 5, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	m := NewManager(store, time.Minute)
	m.now = func() time.Time { return now }

	s, err := m.Start(context.Background(), "opaque", "ana@agua.gt")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := m.Resolve(context.Background(), s.ID); !errors.IsAuth(err) {
		t.Fatalf("Resolve expired err=%v want auth error", err)
	}
	if _, err := store.Get(context.Background(), s.ID); err != ErrNotFound {
		t.Fatalf("expired session still stored: %v", err)
	}
}

func TestNilSessionHasNoToken(t *testing.T) {
	var s *Session
	if _, err := s.BearerToken(); !errors.IsAuth(err) {
		t.Fatalf("nil session BearerToken err=%v want auth error", err)
	}
}

func TestManagerRejectsExpiredToken(t *testing.T) {
	now := time.Date(2024, 10, 5, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)
	m.now = func() time.Time { return now }

	for _, exp := range []time.Time{now.Add(-time.Minute), now} {
		s, err := m.Start(context.Background(), signedToken(t, exp), "ana@agua.gt")
		if !errors.IsAuth(err) || s != nil {
			t.Fatalf("Start(exp=%v)=%v,%v want auth error", exp, s, err)
		}
	}
	if n := len(store.sessions); n != 0 {
		t.Fatalf("expired token saved %d sessions", n)
	}
}

func TestManagerReadsAdminClaim(t *testing.T) {
	t.Parallel()
	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name      string
		token     string
		email     string
		wantAdmin bool
		wantEmail string
	}{
		{"string true", signClaims(t, jwt.MapClaims{"exp": exp, "esadmin": "true"}), "ana@agua.gt", true, "ana@agua.gt"},
		{"bool true", signClaims(t, jwt.MapClaims{"exp": exp, "esadmin": true}), "ana@agua.gt", true, "ana@agua.gt"},
		{"string false", signClaims(t, jwt.MapClaims{"exp": exp, "esadmin": "false"}), "ana@agua.gt", false, "ana@agua.gt"},
		{"missing claim", signClaims(t, jwt.MapClaims{"exp": exp}), "ana@agua.gt", false, "ana@agua.gt"},
		{"email from token", signClaims(t, jwt.MapClaims{"exp": exp, "email": "luis@agua.gt"}), "", false, "luis@agua.gt"},
		{"opaque token", "opaque", "ana@agua.gt", false, "ana@agua.gt"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := NewManager(NewMemoryStore(), time.Hour)
			s, err := m.Start(context.Background(), tc.token, tc.email)
			if err != nil {
				t.Fatalf("Start: %v", err)
			}
			if s.Admin != tc.wantAdmin || s.Email != tc.wantEmail {
				t.Fatalf("session admin=%t email=%q want %t %q", s.Admin, s.Email, tc.wantAdmin, tc.wantEmail)
			}
		})
	}
}
