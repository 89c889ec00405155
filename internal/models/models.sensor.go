// FilePath: internal/models/models.sensor.go
package models

import (
	"fmt"
	"strings"
)

type SensorStatus string

const (
	SensorActive   SensorStatus = "active"
	SensorInactive SensorStatus = "inactive"
)

// ParseSensorStatus maps the backend's "Activo"/"Inactivo" (or the English
// names) to a status. Anything else is inactive.
func ParseSensorStatus(s string) SensorStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activo", "active":
		return SensorActive
	}
	return SensorInactive
}

// Label is the backend's spelling of the status.
func (s SensorStatus) Label() string {
	if s == SensorActive {
		return "Activo"
	}
	return "Inactivo"
}

// Sensor is a monitoring station as the dashboard sees it.
type Sensor struct {
	ID       ID           `json:"id"`
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Status   SensorStatus `json:"status"`
	Readings []Reading    `json:"readings,omitempty"`
}

// SensorPayload is the backend's JSON shape of a sensor.
type SensorPayload struct {
	SensorID ID               `json:"sensorId,omitempty"`
	Name     string           `json:"nombreSensor"`
	Location string           `json:"location"`
	Status   string           `json:"status"`
	Readings []ReadingPayload `json:"lecturaEntidades,omitempty"`
}

// ToSensor validates the payload. Nested readings that fail validation are
// dropped and reported in skipped.
func (p SensorPayload) ToSensor() (sensor Sensor, skipped []error, err error) {
	if p.SensorID == "" {
		return Sensor{}, nil, fmt.Errorf("sensor without id")
	}
	sensor = Sensor{
		ID:       p.SensorID,
		Name:     strings.TrimSpace(p.Name),
		Location: strings.TrimSpace(p.Location),
		Status:   ParseSensorStatus(p.Status),
	}
	for _, rp := range p.Readings {
		if rp.SensorID == "" {
			rp.SensorID = p.SensorID
		}
		reading, err := rp.ToReading()
		if err != nil {
			skipped = append(skipped, fmt.Errorf("sensor %s: %w", p.SensorID, err))
			continue
		}
		sensor.Readings = append(sensor.Readings, reading)
	}
	return sensor, skipped, nil
}

// SensorsFromPayloads converts a listing, dropping invalid entries.
func SensorsFromPayloads(payloads []SensorPayload) ([]Sensor, []error) {
	sensors := make([]Sensor, 0, len(payloads))
	var skipped []error
	for i, p := range payloads {
		s, nested, err := p.ToSensor()
		skipped = append(skipped, nested...)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("sensor #%d: %w", i, err))
			continue
		}
		sensors = append(sensors, s)
	}
	return sensors, skipped
}
