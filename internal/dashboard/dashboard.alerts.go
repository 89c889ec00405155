package dashboard

import (
	"context"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/backend"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cache"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
)

// AlertView is an alert with its level indicator.
type AlertView struct {
	models.Alert
	Indicator thresholds.Indicator `json:"indicator"`
}

func view(a models.Alert) AlertView {
	return AlertView{Alert: a, Indicator: thresholds.LevelIndicator(string(a.Level))}
}

func (s *Service) alerts(ctx context.Context, creds backend.Credentials) ([]models.Alert, error) {
	return cache.Fetch(ctx, s.cache, cache.KeyAlerts, s.ttl, func(ctx context.Context) ([]models.Alert, error) {
		return s.backend.ListAlerts(ctx, creds)
	})
}

// ListAlerts returns the alerts matching search over type, sensor, level,
// description and time.
func (s *Service) ListAlerts(ctx context.Context, creds backend.Credentials, search string) ([]AlertView, error) {
	alerts, err := s.alerts(ctx, creds)
	if err != nil {
		return nil, err
	}
	term := searchTerm(search)
	out := make([]AlertView, 0, len(alerts))
	for _, a := range alerts {
		if matches(term, a.ID.String(), a.Type, a.SensorID.String(), a.Level.Label(), a.Description, s.FormatTime(a.Timestamp)) {
			out = append(out, view(a))
		}
	}
	return out, nil
}

// Alert returns one alert.
func (s *Service) Alert(ctx context.Context, creds backend.Credentials, id string) (*AlertView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewValidationError("Id de alerta requerido", nil)
	}
	a, err := cache.Fetch(ctx, s.cache, cache.AlertKey(id), s.ttl, func(ctx context.Context) (*models.Alert, error) {
		return s.backend.GetAlert(ctx, creds, id)
	})
	if err != nil {
		return nil, err
	}
	v := view(*a)
	return &v, nil
}
