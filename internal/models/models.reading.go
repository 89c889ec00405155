// FilePath: internal/models/models.reading.go
package models

import (
	"fmt"
	"time"
)

// Reading is one water-quality sample. Readings are immutable once created.
type Reading struct {
	ID          ID        `json:"id"`
	SensorID    ID        `json:"sensor_id"`
	Timestamp   time.Time `json:"timestamp"`
	PH          float64   `json:"ph"`
	Turbidity   float64   `json:"turbidity"`
	ORP         float64   `json:"orp"`
	Unit        string    `json:"unit,omitempty"`
	Temperature Float     `json:"temperature"`
}

// ReadingPayload is the backend's JSON shape of a reading.
type ReadingPayload struct {
	ReadID       ID     `json:"readId,omitempty"`
	SensorID     ID     `json:"sensorId"`
	RegisterDate string `json:"registerDate,omitempty"`
	PH           Float  `json:"ph_parameter"`
	Turbidity    Float  `json:"turbidez_parameter"`
	ORP          Float  `json:"orp_parameter"`
	Unit         string `json:"unity,omitempty"`
	Temperature  Float  `json:"temperature"`
}

// ToReading validates the payload: id, timestamp and the three parameters are required.
func (p ReadingPayload) ToReading() (Reading, error) {
	if p.ReadID == "" {
		return Reading{}, fmt.Errorf("reading without id")
	}
	ts, err := ParseTimestamp(p.RegisterDate)
	if err != nil {
		return Reading{}, fmt.Errorf("reading %s: %w", p.ReadID, err)
	}
	missing := []string{}
	if !p.PH.Valid {
		missing = append(missing, "ph_parameter")
	}
	if !p.Turbidity.Valid {
		missing = append(missing, "turbidez_parameter")
	}
	if !p.ORP.Valid {
		missing = append(missing, "orp_parameter")
	}
	if len(missing) > 0 {
		return Reading{}, fmt.Errorf("reading %s: missing %v", p.ReadID, missing)
	}
	return Reading{
		ID:          p.ReadID,
		SensorID:    p.SensorID,
		Timestamp:   ts,
		PH:          p.PH.Value,
		Turbidity:   p.Turbidity.Value,
		ORP:         p.ORP.Value,
		Unit:        p.Unit,
		Temperature: p.Temperature,
	}, nil
}

// ReadingsFromPayloads converts a listing, dropping invalid entries.
func ReadingsFromPayloads(payloads []ReadingPayload) ([]Reading, []error) {
	readings := make([]Reading, 0, len(payloads))
	var skipped []error
	for _, p := range payloads {
		r, err := p.ToReading()
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		readings = append(readings, r)
	}
	return readings, skipped
}
