package resources

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// ReadingHandlers serves readings and the monitoring table
type ReadingHandlers struct {
	service *dashboard.Service
}

// @Summary List readings
// @Description Classified readings filtered by q and paginated (size 10, 20, 30, 40 or 50)
// @Tags readings
// @Produce json
// @Param q query string false "Search term"
// @Param page query int false "Page, starting at 1"
// @Param size query int false "Page size"
// @Success 200 {object} models.Page[dashboard.ClassifiedReading]
// @Router /readings [get]
// @Security SessionAuth
func (h *ReadingHandlers) ListReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var q models.ListQuery
	if err := DecodeQuery(r, &q); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query", err).WithRequestID(requestID))
		return
	}

	page, err := h.service.Monitoring(r.Context(), sessionOf(r), q)
	if err != nil {
		respondWithError(w, asAPIError("failed to list readings", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

// @Summary Get reading
// @Tags readings
// @Produce json
// @Param id path string true "Reading ID"
// @Success 200 {object} dashboard.ClassifiedReading
// @Router /readings/{id} [get]
// @Security SessionAuth
func (h *ReadingHandlers) GetReading(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	reading, err := h.service.Reading(r.Context(), sessionOf(r), id)
	if err != nil {
		respondWithError(w, asAPIError("failed to get reading", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, reading)
}

// @Summary Record a reading
// @Description Manually enter a reading; the backend assigns id and timestamp
// @Tags readings
// @Accept json
// @Produce json
// @Param reading body models.ReadingForm true "Reading values"
// @Success 201 {object} dashboard.ClassifiedReading
// @Success 202 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /readings [post]
// @Security SessionAuth
func (h *ReadingHandlers) CreateReading(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var form models.ReadingForm
	if err := decodeBody(r, &form); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	reading, err := h.service.CreateReading(r.Context(), sessionOf(r), form)
	if err != nil {
		respondWithError(w, asAPIError("failed to create reading", err, requestID))
		return
	}
	if reading == nil {
		respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
		return
	}

	respondWithJSON(w, http.StatusCreated, reading)
}
