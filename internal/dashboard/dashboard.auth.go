package dashboard

import (
	"context"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/session"
	nuts "github.com/vaudience/go-nuts"
)

// Login validates the form, authenticates against the backend and opens a
// session. Invalid forms never reach the backend and a failed login stores
// nothing.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*session.Session, error) {
	if fields := creds.Validate(); len(fields) > 0 {
		return nil, errors.NewFieldValidationError("Revisa los campos del formulario", fields)
	}
	email := strings.TrimSpace(creds.Email)

	token, err := s.backend.Authenticate(ctx, creds)
	if err != nil {
		nuts.L.Warnf("[Dashboard] Login failed for %s: %v", email, err)
		s.record("auth.login", map[string]string{"result": "failed"})
		return nil, err
	}
	sess, err := s.sessions.Start(ctx, token, email)
	if err != nil {
		s.record("auth.login", map[string]string{"result": "error"})
		return nil, err
	}
	nuts.L.Infof("[Dashboard] %s logged in, session expires %s", email, sess.ExpiresAt.Format("2006-01-02 15:04"))
	s.record("auth.login", map[string]string{"result": "ok"})
	return sess, nil
}

// Logout removes the session. Unknown ids are not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.End(ctx, sessionID); err != nil {
		return err
	}
	s.record("auth.logout", nil)
	return nil
}

// Session resolves a session id.
func (s *Service) Session(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.sessions.Resolve(ctx, sessionID)
}
