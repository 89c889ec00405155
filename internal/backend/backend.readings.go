package backend

import (
	"context"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
)

const (
	msgListReadings  = "Error desconocido durante la obtención de lecturas"
	msgGetReading    = "Error desconocido durante la obtención de la lectura"
	msgCreateReading = "Error desconocido durante la creación de la lectura"
)

// ListReadings returns every reading the backend knows about.
func (c *Client) ListReadings(ctx context.Context, creds Credentials) ([]models.Reading, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var payloads []models.ReadingPayload
	resp, err := req.SetResult(&payloads).Get(c.paths.ReadingsPath)
	if err := check(resp, err, msgListReadings); err != nil {
		return nil, err
	}
	readings, skipped := models.ReadingsFromPayloads(payloads)
	logSkipped("readings", skipped)
	return readings, nil
}

func (c *Client) GetReading(ctx context.Context, creds Credentials, id string) (*models.Reading, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var payload models.ReadingPayload
	resp, err := req.SetResult(&payload).Get(itemPath(c.paths.ReadingsPath, id))
	if err := check(resp, err, msgGetReading); err != nil {
		return nil, err
	}
	reading, err := payload.ToReading()
	if err != nil {
		return nil, errors.NewBackendError(msgGetReading, 0, err)
	}
	return &reading, nil
}

// CreateReading posts a manually entered reading. The backend assigns the id
// and timestamp; when it echoes nothing usable, nil is returned with no error.
func (c *Client) CreateReading(ctx context.Context, creds Credentials, payload models.ReadingPayload) (*models.Reading, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var created models.ReadingPayload
	resp, err := req.SetBody(payload).SetResult(&created).Post(c.paths.ReadingsPath)
	if err := check(resp, err, msgCreateReading); err != nil {
		return nil, err
	}
	reading, err := created.ToReading()
	if err != nil {
		return nil, nil
	}
	return &reading, nil
}
