package resources

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/export"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// ReportHandlers serves report downloads and sensor charts
type ReportHandlers struct {
	service *dashboard.Service
}

// @Summary Export readings
// @Description The monitoring page selected by q, page and size as PDF or Excel
// @Tags reports
// @Produce application/pdf
// @Param format path string true "pdf or xlsx"
// @Router /reports/readings.{format} [get]
// @Security SessionAuth
func (h *ReportHandlers) ExportReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var q models.ListQuery
	if err := DecodeQuery(r, &q); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query", err).WithRequestID(requestID))
		return
	}
	table, err := h.service.ReadingsReport(r.Context(), sessionOf(r), q)
	h.send(w, r, requestID, table, err)
}

// @Summary Export alerts
// @Tags reports
// @Produce application/pdf
// @Param format path string true "pdf or xlsx"
// @Param q query string false "Search term"
// @Router /reports/alerts.{format} [get]
// @Security SessionAuth
func (h *ReportHandlers) ExportAlerts(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	table, err := h.service.AlertsReport(r.Context(), sessionOf(r), r.URL.Query().Get("q"))
	h.send(w, r, requestID, table, err)
}

// @Summary Export a sensor's readings
// @Tags reports
// @Produce application/pdf
// @Param id path string true "Sensor ID"
// @Param format path string true "pdf or xlsx"
// @Router /reports/sensors/{id}.{format} [get]
// @Security SessionAuth
func (h *ReportHandlers) ExportSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	table, err := h.service.SensorReport(r.Context(), sessionOf(r), mux.Vars(r)["id"])
	h.send(w, r, requestID, table, err)
}

func (h *ReportHandlers) send(w http.ResponseWriter, r *http.Request, requestID string, table export.Table, err error) {
	if err != nil {
		respondWithError(w, asAPIError("failed to build report", err, requestID))
		return
	}
	format, err := export.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		respondWithError(w, errors.NewValidationError("unsupported format", err).WithRequestID(requestID))
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, table); err != nil {
		respondWithError(w, errors.NewInternalError("failed to render report", err).WithRequestID(requestID))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": table.FileName(format)}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// @Summary Sensor chart
// @Description PNG line chart of one parameter over the sensor's readings
// @Tags reports
// @Produce image/png
// @Param id path string true "Sensor ID"
// @Param kind path string true "ph, turbidity or orp"
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id}/charts/{kind}.png [get]
// @Security SessionAuth
func (h *ReportHandlers) Chart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	kind, err := thresholds.ParseKind(vars["kind"])
	if err != nil {
		respondWithError(w, errors.NewValidationError("unknown parameter", err).WithRequestID(requestID))
		return
	}

	var buf bytes.Buffer
	if err := h.service.Chart(r.Context(), sessionOf(r), vars["id"], kind, &buf); err != nil {
		respondWithError(w, asAPIError("failed to draw chart", err, requestID))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
