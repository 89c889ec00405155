package pages

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/resources"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
)

type monitoringContent struct {
	Query      models.ListQuery
	Page       models.Page[dashboard.ClassifiedReading]
	Thresholds thresholds.Snapshot
}

type alertsContent struct {
	Search string
	Alerts []dashboard.AlertView
}

type readingFormContent struct {
	Form    models.ReadingForm
	Sensors []models.Sensor
}

// Monitoring is the readings table with search, pagination and exports.
func (p *Pages) Monitoring(w http.ResponseWriter, r *http.Request) {
	var q models.ListQuery
	_ = resources.DecodeQuery(r, &q)
	q = q.Normalize()

	content := monitoringContent{Query: q, Thresholds: p.service.Thresholds()}
	page, err := p.service.Monitoring(r.Context(), sessionOf(r), q)
	if err != nil {
		status, msg, _ := failure(err)
		p.render(w, r, status, "monitoring", view{Title: "Monitoreo", Error: msg, Content: content})
		return
	}
	content.Page = page
	content.Query.Page = page.Page
	p.render(w, r, http.StatusOK, "monitoring", view{Title: "Monitoreo", Content: content})
}

// Alerts lists alerts with their level colors.
func (p *Pages) Alerts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	alerts, err := p.service.ListAlerts(r.Context(), sessionOf(r), search)
	if err != nil {
		status, msg, _ := failure(err)
		p.render(w, r, status, "alerts", view{Title: "Alertas", Error: msg, Content: alertsContent{Search: search}})
		return
	}
	p.render(w, r, http.StatusOK, "alerts", view{Title: "Alertas", Content: alertsContent{Search: search, Alerts: alerts}})
}

// NewReading shows the manual reading form.
func (p *Pages) NewReading(w http.ResponseWriter, r *http.Request) {
	sensors, err := p.service.ListSensors(r.Context(), sessionOf(r), "")
	v := view{Title: "Registrar lectura", Content: readingFormContent{Form: models.ReadingForm{SensorID: r.URL.Query().Get("sensor")}, Sensors: sensors}}
	if err != nil {
		_, v.Error, _ = failure(err)
	}
	p.render(w, r, http.StatusOK, "reading_form", v)
}

// CreateReading posts a manual reading.
func (p *Pages) CreateReading(w http.ResponseWriter, r *http.Request) {
	var form models.ReadingForm
	if err := resources.DecodeForm(r, &form); err != nil {
		p.render(w, r, http.StatusBadRequest, "reading_form", view{Title: "Registrar lectura", Error: "Formulario no válido", Content: readingFormContent{}})
		return
	}
	if _, err := p.service.CreateReading(r.Context(), sessionOf(r), form); err != nil {
		status, msg, fields := failure(err)
		sensors, _ := p.service.ListSensors(r.Context(), sessionOf(r), "")
		p.render(w, r, status, "reading_form", view{
			Title:   "Registrar lectura",
			Error:   msg,
			Fields:  fields,
			Content: readingFormContent{Form: form, Sensors: sensors},
		})
		return
	}
	redirect(w, r, "/monitoring", "reading")
}
