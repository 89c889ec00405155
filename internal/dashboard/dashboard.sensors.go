package dashboard

import (
	"context"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/backend"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cache"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cleanup"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SensorDetail is a sensor with its readings classified.
type SensorDetail struct {
	Sensor   models.Sensor       `json:"sensor"`
	Readings []ClassifiedReading `json:"readings"`
}

// ListSensors returns all sensors, optionally filtered by a search term over
// id, name, location and status.
func (s *Service) ListSensors(ctx context.Context, creds backend.Credentials, search string) ([]models.Sensor, error) {
	sensors, err := cache.Fetch(ctx, s.cache, cache.KeySensors, s.ttl, func(ctx context.Context) ([]models.Sensor, error) {
		return s.backend.ListSensors(ctx, creds)
	})
	if err != nil {
		return nil, err
	}
	term := searchTerm(search)
	if term == "" {
		return sensors, nil
	}
	out := make([]models.Sensor, 0, len(sensors))
	for _, sn := range sensors {
		if matches(term, sn.ID.String(), sn.Name, sn.Location, sn.Status.Label()) {
			out = append(out, sn)
		}
	}
	return out, nil
}

// Sensor returns one sensor with its readings.
func (s *Service) Sensor(ctx context.Context, creds backend.Credentials, id string) (*models.Sensor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewValidationError("Id de sensor requerido", nil)
	}
	return cache.Fetch(ctx, s.cache, cache.SensorKey(id), s.ttl, func(ctx context.Context) (*models.Sensor, error) {
		return s.backend.GetSensor(ctx, creds, id)
	})
}

// SensorDetail returns a sensor and its classified readings.
func (s *Service) SensorDetail(ctx context.Context, creds backend.Credentials, id string) (*SensorDetail, error) {
	sensor, err := s.Sensor(ctx, creds, id)
	if err != nil {
		return nil, err
	}
	return &SensorDetail{Sensor: *sensor, Readings: s.classifyAll(sensor.Readings)}, nil
}

// CreateSensor validates the form and creates the sensor.
func (s *Service) CreateSensor(ctx context.Context, creds backend.Credentials, form models.SensorForm) (*models.Sensor, error) {
	if fields := form.Validate(); len(fields) > 0 {
		return nil, errors.NewFieldValidationError("Revisa los campos del formulario", fields)
	}
	sensor, err := s.backend.CreateSensor(ctx, creds, form)
	if err != nil {
		return nil, err
	}
	s.cleanup.SensorChanged(ctx, cleanup.EventSensorCreated, sensor.ID.String())
	nuts.L.Infof("[Dashboard] Sensor %s (%s) created", sensor.ID, sensor.Name)
	return sensor, nil
}

// UpdateSensor validates the form and replaces the sensor's fields.
func (s *Service) UpdateSensor(ctx context.Context, creds backend.Credentials, id string, form models.SensorForm) (*models.Sensor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewValidationError("Id de sensor requerido", nil)
	}
	if fields := form.Validate(); len(fields) > 0 {
		return nil, errors.NewFieldValidationError("Revisa los campos del formulario", fields)
	}
	sensor, err := s.backend.UpdateSensor(ctx, creds, id, form)
	if err != nil {
		return nil, err
	}
	s.cleanup.SensorChanged(ctx, cleanup.EventSensorUpdated, id)
	nuts.L.Infof("[Dashboard] Sensor %s updated", id)
	return sensor, nil
}

// DeleteSensor removes the sensor; the next listing no longer contains it.
func (s *Service) DeleteSensor(ctx context.Context, creds backend.Credentials, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.NewValidationError("Id de sensor requerido", nil)
	}
	if err := s.backend.DeleteSensor(ctx, creds, id); err != nil {
		return err
	}
	s.cleanup.SensorChanged(ctx, cleanup.EventSensorDeleted, id)
	nuts.L.Infof("[Dashboard] Sensor %s deleted", id)
	return nil
}
