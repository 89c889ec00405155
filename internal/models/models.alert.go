// FilePath: internal/models/models.alert.go
package models

import (
	"fmt"
	"strings"
	"time"
)

type AlertLevel string

const (
	AlertCritical AlertLevel = "critical"
	AlertWarning  AlertLevel = "warning"
	AlertPlain    AlertLevel = "alert"
)

// ParseAlertLevel maps "Crítico", "Advertencia" and "Alerta" (or the English
// names) to a level. Unknown levels are plain alerts.
func ParseAlertLevel(s string) AlertLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crítico", "critico", "critical":
		return AlertCritical
	case "advertencia", "warning":
		return AlertWarning
	}
	return AlertPlain
}

// Label is the backend's spelling of the level.
func (l AlertLevel) Label() string {
	switch l {
	case AlertCritical:
		return "Crítico"
	case AlertWarning:
		return "Advertencia"
	}
	return "Alerta"
}

// Alert is raised by the backend; the dashboard only reads alerts.
type Alert struct {
	ID          ID         `json:"id"`
	SensorID    ID         `json:"sensor_id"`
	Timestamp   time.Time  `json:"timestamp"`
	Type        string     `json:"type"`
	Level       AlertLevel `json:"level"`
	Description string     `json:"description"`
}

// AlertPayload is the backend's JSON shape of an alert.
type AlertPayload struct {
	AlertID      ID     `json:"alertId"`
	LegacyID     ID     `json:"id"`
	SensorID     ID     `json:"sensorId"`
	RegisterDate string `json:"registerDate"`
	Type         string `json:"type"`
	Level        string `json:"level"`
	Description  string `json:"description"`
}

// ToAlert validates the payload: an id and a timestamp are required.
func (p AlertPayload) ToAlert() (Alert, error) {
	id := p.AlertID
	if id == "" {
		id = p.LegacyID
	}
	if id == "" {
		return Alert{}, fmt.Errorf("alert without id")
	}
	ts, err := ParseTimestamp(p.RegisterDate)
	if err != nil {
		return Alert{}, fmt.Errorf("alert %s: %w", id, err)
	}
	return Alert{
		ID:          id,
		SensorID:    p.SensorID,
		Timestamp:   ts,
		Type:        strings.TrimSpace(p.Type),
		Level:       ParseAlertLevel(p.Level),
		Description: strings.TrimSpace(p.Description),
	}, nil
}

// AlertsFromPayloads converts a listing, dropping invalid entries.
func AlertsFromPayloads(payloads []AlertPayload) ([]Alert, []error) {
	alerts := make([]Alert, 0, len(payloads))
	var skipped []error
	for _, p := range payloads {
		a, err := p.ToAlert()
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, skipped
}
