package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/session"
	nuts "github.com/vaudience/go-nuts"
)

// SessionResolver looks up a live session by id.
type SessionResolver interface {
	Session(ctx context.Context, id string) (*session.Session, error)
}

type contextKey string

const sessionKey contextKey = "session"

// SessionMiddleware guards routes behind a dashboard session. The session id
// travels in the session cookie or as "Authorization: Bearer <id>".
type SessionMiddleware struct {
	resolver   SessionResolver
	cookieName string
	secure     bool
	loginPath  string
}

func NewSessionMiddleware(resolver SessionResolver, cookieName string, secure bool, loginPath string) *SessionMiddleware {
	return &SessionMiddleware{
		resolver:   resolver,
		cookieName: cookieName,
		secure:     secure,
		loginPath:  loginPath,
	}
}

// Authenticate resolves the session and adds it to the request context.
// Failures answer with a JSON APIError.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.resolve(r)
		if err != nil {
			handleError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequirePage is Authenticate for HTML pages: failures redirect to the login
// page and drop a stale cookie.
func (m *SessionMiddleware) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.resolve(r)
		if err != nil {
			m.ClearCookie(w)
			target := m.loginPath
			if r.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

const msgAdminOnly = "Acceso denegado: se requiere rol de administrador"

// RequireAdmin lets only admin sessions through. It runs after Authenticate
// and answers 403 with a JSON APIError.
func (m *SessionMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r) {
			handleError(w, errors.NewAuthorizationError(msgAdminOnly, nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminPage is RequireAdmin for HTML pages.
func (m *SessionMiddleware) RequireAdminPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r) {
			http.Error(w, msgAdminOnly, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAdmin(r *http.Request) bool {
	sess, ok := SessionFrom(r.Context())
	if ok && sess.Admin {
		return true
	}
	email := "anonymous"
	if ok {
		email = sess.Email
	}
	nuts.L.Warnf("[Auth] Denied %s %s to non-admin %s", r.Method, r.URL.Path, email)
	return false
}

func (m *SessionMiddleware) resolve(r *http.Request) (*session.Session, error) {
	id := m.SessionID(r)
	if id == "" {
		return nil, errors.NewAuthError("no session provided", nil)
	}
	sess, err := m.resolver.Session(r.Context(), id)
	if err != nil {
		nuts.L.Warnf("[Auth] Rejected session for %s %s: %v", r.Method, r.URL.Path, err)
		return nil, err
	}
	return sess, nil
}

// SessionID returns the session id of r, preferring the Authorization header.
func (m *SessionMiddleware) SessionID(r *http.Request) string {
	if token := extractToken(r); token != "" {
		return token
	}
	if c, err := r.Cookie(m.cookieName); err == nil {
		return c.Value
	}
	return ""
}

// SetCookie stores the session id in the browser until the session expires.
func (m *SessionMiddleware) SetCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func (m *SessionMiddleware) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithSession returns ctx carrying sess.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFrom returns the session stored by the middleware.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok && sess != nil
}

func extractToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func handleError(w http.ResponseWriter, err error) {
	apiErr := errors.Wrap("session lookup failed", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	json.NewEncoder(w).Encode(apiErr)
}
