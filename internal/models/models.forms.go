// FilePath: internal/models/models.forms.go
package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" schema:"email"`
	Password string `json:"password" schema:"password"`
}

// Validate returns per-field messages; an empty map means the form is valid.
func (c Credentials) Validate() errors.FieldErrors {
	fields := errors.FieldErrors{}
	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		fields["email"] = "El Email es obligatorio"
	case !emailPattern.MatchString(email):
		fields["email"] = "E-mail no válido"
	}
	if c.Password == "" {
		fields["password"] = "El Password es obligatorio"
	}
	return fields
}

// LoginPayload is what the backend's authentication endpoint expects.
type LoginPayload struct {
	Email    string `json:"correoElectronico"`
	Password string `json:"password"`
}

// Payload converts the form to the backend shape.
func (c Credentials) Payload() LoginPayload {
	return LoginPayload{Email: strings.TrimSpace(c.Email), Password: c.Password}
}

// SensorForm is the create/edit sensor form.
type SensorForm struct {
	Name     string `json:"nombreSensor" schema:"nombreSensor"`
	Location string `json:"location" schema:"location"`
	Status   string `json:"status" schema:"status"`
}

// Validate checks the required fields and the status value.
func (f SensorForm) Validate() errors.FieldErrors {
	fields := errors.FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		fields["nombreSensor"] = "El nombre del sensor es obligatorio"
	}
	if strings.TrimSpace(f.Location) == "" {
		fields["location"] = "La localidad es obligatoria"
	}
	switch strings.TrimSpace(f.Status) {
	case "":
		fields["status"] = "Selecciona un estatus"
	case SensorActive.Label(), SensorInactive.Label():
	default:
		fields["status"] = "Estatus no válido"
	}
	return fields
}

// Payload converts the form to the backend shape.
func (f SensorForm) Payload() SensorPayload {
	return SensorPayload{
		Name:     strings.TrimSpace(f.Name),
		Location: strings.TrimSpace(f.Location),
		Status:   strings.TrimSpace(f.Status),
	}
}

// SensorFormFrom pre-fills the edit form.
func SensorFormFrom(s Sensor) SensorForm {
	return SensorForm{Name: s.Name, Location: s.Location, Status: s.Status.Label()}
}

// ReadingForm is the manual reading entry form. Values are kept as text so the
// form can be re-rendered exactly as typed.
type ReadingForm struct {
	SensorID    string `json:"sensorId" schema:"sensorId"`
	PH          string `json:"ph" schema:"ph"`
	Turbidity   string `json:"turbidity" schema:"turbidity"`
	ORP         string `json:"orp" schema:"orp"`
	Unit        string `json:"unit" schema:"unit"`
	Temperature string `json:"temperature" schema:"temperature"`
}

// Parse validates the form and returns the backend payload.
func (f ReadingForm) Parse() (ReadingPayload, errors.FieldErrors) {
	fields := errors.FieldErrors{}
	payload := ReadingPayload{
		SensorID: ID(strings.TrimSpace(f.SensorID)),
		Unit:     strings.TrimSpace(f.Unit),
	}
	if payload.SensorID == "" {
		fields["sensorId"] = "El sensor es obligatorio"
	}
	parse := func(name, raw string, required bool) Float {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			if required {
				fields[name] = "Valor obligatorio"
			}
			return Float{}
		}
		// ParseFloat accepts "NaN" and "Inf", which the backend cannot store.
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			fields[name] = "Debe ser un número"
			return Float{}
		}
		return NewFloat(v)
	}
	payload.PH = parse("ph", f.PH, true)
	payload.Turbidity = parse("turbidity", f.Turbidity, true)
	payload.ORP = parse("orp", f.ORP, true)
	payload.Temperature = parse("temperature", f.Temperature, false)
	return payload, fields
}
