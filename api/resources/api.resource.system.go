package resources

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

// SystemHandlers serves health, metrics and the active thresholds
type SystemHandlers struct {
	service    *dashboard.Service
	monitoring *monitoring.Service
}

// HealthCheck reports liveness and the running version.
func (h *SystemHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": nuts.GetVersion()})
}

// Metrics serves the event counters.
func (h *SystemHandlers) Metrics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.monitoring.Snapshot())
}

// @Summary Active thresholds
// @Description Classification policy and normal bands per parameter
// @Tags system
// @Produce json
// @Success 200 {object} thresholds.Snapshot
// @Router /thresholds [get]
// @Security SessionAuth
func (h *SystemHandlers) Thresholds(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Thresholds())
}
