package resources

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/middleware"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers opens and closes dashboard sessions
type AuthHandlers struct {
	service *dashboard.Service
	auth    *middleware.SessionMiddleware
}

type loginResponse struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}

// @Summary Log in
// @Description Authenticate against the backend and open a session. The session id is returned and set as a cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Email and password"
// @Success 200 {object} loginResponse
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var creds models.Credentials
	if err := decodeBody(r, &creds); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	sess, err := h.service.Login(r.Context(), creds)
	if err != nil {
		respondWithError(w, asAPIError("login failed", err, requestID))
		return
	}

	h.auth.SetCookie(w, sess)
	respondWithJSON(w, http.StatusOK, loginResponse{
		SessionID: sess.ID,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// @Summary Log out
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
// @Security SessionAuth
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.service.Logout(r.Context(), h.auth.SessionID(r)); err != nil {
		respondWithError(w, asAPIError("logout failed", err, requestID))
		return
	}
	h.auth.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
