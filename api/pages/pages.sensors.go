package pages

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/resources"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
	"github.com/gorilla/mux"
)

type sensorsContent struct {
	Search  string
	Sensors []models.Sensor
}

type sensorFormContent struct {
	ID       string
	Form     models.SensorForm
	Statuses []string
}

type sensorDetailContent struct {
	Detail     *dashboard.SensorDetail
	Thresholds thresholds.Snapshot
}

var statuses = []string{models.SensorActive.Label(), models.SensorInactive.Label()}

// Sensors lists sensors with an optional search.
func (p *Pages) Sensors(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	sensors, err := p.service.ListSensors(r.Context(), sessionOf(r), search)
	if err != nil {
		status, msg, _ := failure(err)
		p.render(w, r, status, "sensors", view{Title: "Sensores", Error: msg, Content: sensorsContent{Search: search}})
		return
	}
	p.render(w, r, http.StatusOK, "sensors", view{Title: "Sensores", Content: sensorsContent{Search: search, Sensors: sensors}})
}

// SensorDetail shows one sensor with its classified readings and charts.
func (p *Pages) SensorDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := p.service.SensorDetail(r.Context(), sessionOf(r), mux.Vars(r)["id"])
	if err != nil {
		status, msg, _ := failure(err)
		p.render(w, r, status, "sensor_detail", view{Title: "Sensor", Error: msg, Content: sensorDetailContent{}})
		return
	}
	p.render(w, r, http.StatusOK, "sensor_detail", view{
		Title:   "Sensor " + detail.Sensor.Name,
		Content: sensorDetailContent{Detail: detail, Thresholds: p.service.Thresholds()},
	})
}

// NewSensor shows the empty sensor form.
func (p *Pages) NewSensor(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "sensor_form", view{
		Title:   "Nuevo sensor",
		Content: sensorFormContent{Form: models.SensorForm{Status: models.SensorActive.Label()}, Statuses: statuses},
	})
}

// EditSensor shows the form pre-filled with the sensor.
func (p *Pages) EditSensor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sensor, err := p.service.Sensor(r.Context(), sessionOf(r), id)
	if err != nil {
		status, msg, _ := failure(err)
		p.render(w, r, status, "sensor_form", view{Title: "Editar sensor", Error: msg, Content: sensorFormContent{ID: id, Statuses: statuses}})
		return
	}
	p.render(w, r, http.StatusOK, "sensor_form", view{
		Title:   "Editar sensor",
		Content: sensorFormContent{ID: id, Form: models.SensorFormFrom(*sensor), Statuses: statuses},
	})
}

// SaveSensor creates a sensor, or updates it when the route has an id.
func (p *Pages) SaveSensor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	title := "Nuevo sensor"
	if id != "" {
		title = "Editar sensor"
	}

	var form models.SensorForm
	if err := resources.DecodeForm(r, &form); err != nil {
		p.render(w, r, http.StatusBadRequest, "sensor_form", view{Title: title, Error: "Formulario no válido", Content: sensorFormContent{ID: id, Statuses: statuses}})
		return
	}

	var err error
	notice := "created"
	if id == "" {
		_, err = p.service.CreateSensor(r.Context(), sessionOf(r), form)
	} else {
		notice = "updated"
		_, err = p.service.UpdateSensor(r.Context(), sessionOf(r), id, form)
	}
	if err != nil {
		status, msg, fields := failure(err)
		p.render(w, r, status, "sensor_form", view{
			Title:   title,
			Error:   msg,
			Fields:  fields,
			Content: sensorFormContent{ID: id, Form: form, Statuses: statuses},
		})
		return
	}
	redirect(w, r, "/sensors", notice)
}

// DeleteSensor removes a sensor and returns to the list.
func (p *Pages) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	if err := p.service.DeleteSensor(r.Context(), sessionOf(r), mux.Vars(r)["id"]); err != nil {
		status, msg, _ := failure(err)
		sensors, _ := p.service.ListSensors(r.Context(), sessionOf(r), "")
		p.render(w, r, status, "sensors", view{Title: "Sensores", Error: msg, Content: sensorsContent{Sensors: sensors}})
		return
	}
	redirect(w, r, "/sensors", "deleted")
}
