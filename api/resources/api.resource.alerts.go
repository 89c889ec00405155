package resources

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// AlertHandlers serves backend alerts. Alerts are read-only here.
type AlertHandlers struct {
	service *dashboard.Service
}

// @Summary List alerts
// @Tags alerts
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} dashboard.AlertView
// @Router /alerts [get]
// @Security SessionAuth
func (h *AlertHandlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	alerts, err := h.service.ListAlerts(r.Context(), sessionOf(r), r.URL.Query().Get("q"))
	if err != nil {
		respondWithError(w, asAPIError("failed to list alerts", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, alerts)
}

// @Summary Get alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} dashboard.AlertView
// @Router /alerts/{id} [get]
// @Security SessionAuth
func (h *AlertHandlers) GetAlert(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	alert, err := h.service.Alert(r.Context(), sessionOf(r), id)
	if err != nil {
		respondWithError(w, asAPIError("failed to get alert", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, alert)
}
