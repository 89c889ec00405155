package backend

import (
	"context"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Fallback messages shown when the backend gives no error text.
const (
	msgListSensors  = "Error desconocido durante la obtención de sensores"
	msgGetSensor    = "Error desconocido durante la obtención del sensor"
	msgCreateSensor = "Error desconocido durante la creación del sensor"
	msgUpdateSensor = "Error desconocido durante la actualización del sensor"
	msgDeleteSensor = "Error desconocido durante la eliminación del sensor"
)

// ListSensors returns all sensors. Entries failing validation are dropped.
func (c *Client) ListSensors(ctx context.Context, creds Credentials) ([]models.Sensor, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var payloads []models.SensorPayload
	resp, err := req.SetResult(&payloads).Get(c.paths.SensorsPath)
	if err := check(resp, err, msgListSensors); err != nil {
		return nil, err
	}
	sensors, skipped := models.SensorsFromPayloads(payloads)
	logSkipped("sensors", skipped)
	return sensors, nil
}

// GetSensor returns one sensor with its nested readings.
func (c *Client) GetSensor(ctx context.Context, creds Credentials, id string) (*models.Sensor, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var payload models.SensorPayload
	resp, err := req.SetResult(&payload).Get(itemPath(c.paths.SensorsPath, id))
	if err := check(resp, err, msgGetSensor); err != nil {
		return nil, err
	}
	sensor, skipped, err := payload.ToSensor()
	if err != nil {
		return nil, errors.NewBackendError(msgGetSensor, 0, err)
	}
	logSkipped("readings of sensor "+id, skipped)
	return &sensor, nil
}

// CreateSensor creates a sensor and returns the backend's copy.
func (c *Client) CreateSensor(ctx context.Context, creds Credentials, form models.SensorForm) (*models.Sensor, error) {
	return c.writeSensor(ctx, creds, "", form)
}

// UpdateSensor replaces a sensor's fields. Last write wins.
func (c *Client) UpdateSensor(ctx context.Context, creds Credentials, id string, form models.SensorForm) (*models.Sensor, error) {
	return c.writeSensor(ctx, creds, id, form)
}

func (c *Client) writeSensor(ctx context.Context, creds Credentials, id string, form models.SensorForm) (*models.Sensor, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var payload models.SensorPayload
	req = req.SetBody(form.Payload()).SetResult(&payload)

	fallback := msgCreateSensor
	if id == "" {
		resp, err := req.Post(c.paths.SensorsPath)
		if err := check(resp, err, fallback); err != nil {
			return nil, err
		}
	} else {
		fallback = msgUpdateSensor
		resp, err := req.Put(itemPath(c.paths.SensorsPath, id))
		if err := check(resp, err, fallback); err != nil {
			return nil, err
		}
	}

	// Some backend versions answer with an empty body or a message; fall back
	// to what was sent.
	if payload.SensorID == "" {
		payload = form.Payload()
		payload.SensorID = models.ID(id)
	}
	sensor, _, err := payload.ToSensor()
	if err != nil {
		return &models.Sensor{
			Name:     payload.Name,
			Location: payload.Location,
			Status:   models.ParseSensorStatus(payload.Status),
		}, nil
	}
	return &sensor, nil
}

// DeleteSensor removes a sensor.
func (c *Client) DeleteSensor(ctx context.Context, creds Credentials, id string) error {
	req, err := c.request(ctx, creds)
	if err != nil {
		return err
	}
	resp, err := req.Delete(itemPath(c.paths.SensorsPath, id))
	return check(resp, err, msgDeleteSensor)
}

func logSkipped(what string, skipped []error) {
	for _, err := range skipped {
		nuts.L.Warnf("[Backend] Skipping invalid %s record: %v", what, err)
	}
}
