package backend

import (
	"context"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
)

const (
	msgListAlerts = "Error desconocido durante la obtención de alertas"
	msgGetAlert   = "Error desconocido durante la obtención de la alerta"
)

func (c *Client) ListAlerts(ctx context.Context, creds Credentials) ([]models.Alert, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var payloads []models.AlertPayload
	resp, err := req.SetResult(&payloads).Get(c.paths.AlertsPath)
	if err := check(resp, err, msgListAlerts); err != nil {
		return nil, err
	}
	alerts, skipped := models.AlertsFromPayloads(payloads)
	logSkipped("alerts", skipped)
	return alerts, nil
}

func (c *Client) GetAlert(ctx context.Context, creds Credentials, id string) (*models.Alert, error) {
	req, err := c.request(ctx, creds)
	if err != nil {
		return nil, err
	}
	var payload models.AlertPayload
	resp, err := req.SetResult(&payload).Get(itemPath(c.paths.AlertsPath, id))
	if err := check(resp, err, msgGetAlert); err != nil {
		return nil, err
	}
	alert, err := payload.ToAlert()
	if err != nil {
		return nil, errors.NewBackendError(msgGetAlert, 0, err)
	}
	return &alert, nil
}
