package resources

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	service *dashboard.Service
}

// @Summary List sensors
// @Description List all sensors, optionally filtered by a search term
// @Tags sensors
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} models.Sensor
// @Failure 401 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /sensors [get]
// @Security SessionAuth
func (h *SensorHandlers) ListSensors(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	sensors, err := h.service.ListSensors(r.Context(), sessionOf(r), r.URL.Query().Get("q"))
	if err != nil {
		respondWithError(w, asAPIError("failed to list sensors", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, sensors)
}

// @Summary Get sensor
// @Description Get a sensor with its classified readings
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {object} dashboard.SensorDetail
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [get]
// @Security SessionAuth
func (h *SensorHandlers) GetSensor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	detail, err := h.service.SensorDetail(r.Context(), sessionOf(r), id)
	if err != nil {
		respondWithError(w, asAPIError("failed to get sensor", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// @Summary Create a new sensor
// @Tags sensors
// @Accept json
// @Produce json
// @Param sensor body models.SensorForm true "Sensor details"
// @Success 201 {object} models.Sensor
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /sensors [post]
// @Security SessionAuth
func (h *SensorHandlers) CreateSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var form models.SensorForm
	if err := decodeBody(r, &form); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	sensor, err := h.service.CreateSensor(r.Context(), sessionOf(r), form)
	if err != nil {
		respondWithError(w, asAPIError("failed to create sensor", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, sensor)
}

// @Summary Update a sensor
// @Tags sensors
// @Accept json
// @Produce json
// @Param id path string true "Sensor ID"
// @Param sensor body models.SensorForm true "Sensor details"
// @Success 200 {object} models.Sensor
// @Failure 400 {object} errors.APIError
// @Router /sensors/{id} [put]
// @Security SessionAuth
func (h *SensorHandlers) UpdateSensor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var form models.SensorForm
	if err := decodeBody(r, &form); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	sensor, err := h.service.UpdateSensor(r.Context(), sessionOf(r), id, form)
	if err != nil {
		respondWithError(w, asAPIError("failed to update sensor", err, requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, sensor)
}

// @Summary Delete a sensor
// @Tags sensors
// @Param id path string true "Sensor ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [delete]
// @Security SessionAuth
func (h *SensorHandlers) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.service.DeleteSensor(r.Context(), sessionOf(r), id); err != nil {
		respondWithError(w, asAPIError("failed to delete sensor", err, requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
