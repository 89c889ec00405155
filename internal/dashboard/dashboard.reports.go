package dashboard

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/backend"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/charts"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/export"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
)

// ReadingsReport exports the monitoring page currently shown for q.
func (s *Service) ReadingsReport(ctx context.Context, creds backend.Credentials, q models.ListQuery) (export.Table, error) {
	page, err := s.Monitoring(ctx, creds, q)
	if err != nil {
		return export.Table{}, err
	}
	readings := make([]models.Reading, len(page.Items))
	for i, r := range page.Items {
		readings[i] = r.Reading
	}
	return export.ReadingsReport(s.formatter, s.now(), readings, (page.Page-1)*page.PageSize), nil
}

// AlertsReport exports the alerts matching search.
func (s *Service) AlertsReport(ctx context.Context, creds backend.Credentials, search string) (export.Table, error) {
	views, err := s.ListAlerts(ctx, creds, search)
	if err != nil {
		return export.Table{}, err
	}
	alerts := make([]models.Alert, len(views))
	for i, v := range views {
		alerts[i] = v.Alert
	}
	return export.AlertsReport(s.formatter, s.now(), alerts), nil
}

// SensorReport exports one sensor's readings.
func (s *Service) SensorReport(ctx context.Context, creds backend.Credentials, id string) (export.Table, error) {
	sensor, err := s.Sensor(ctx, creds, id)
	if err != nil {
		return export.Table{}, err
	}
	return export.SensorReport(s.formatter, s.now(), *sensor), nil
}

// Chart writes the PNG chart of one parameter of a sensor.
func (s *Service) Chart(ctx context.Context, creds backend.Credentials, id string, kind thresholds.Kind, w io.Writer) error {
	sensor, err := s.Sensor(ctx, creds, id)
	if err != nil {
		return err
	}
	err = charts.Render(w, kind, sensor.Readings, s.formatter.Location())
	if stderrors.Is(err, charts.ErrNotEnoughData) {
		return errors.NewNotFoundError("No hay suficientes lecturas para graficar", err)
	}
	if err != nil {
		return errors.NewInternalError("No se pudo generar la gráfica", err)
	}
	return nil
}
