package dashboard

import (
	"context"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/backend"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cache"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
)

func (s *Service) readings(ctx context.Context, creds backend.Credentials) ([]models.Reading, error) {
	return cache.Fetch(ctx, s.cache, cache.KeyReadings, s.ttl, func(ctx context.Context) ([]models.Reading, error) {
		return s.backend.ListReadings(ctx, creds)
	})
}

// ListReadings returns every reading, classified.
func (s *Service) ListReadings(ctx context.Context, creds backend.Credentials) ([]ClassifiedReading, error) {
	readings, err := s.readings(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.classifyAll(readings), nil
}

// Reading returns one classified reading.
func (s *Service) Reading(ctx context.Context, creds backend.Credentials, id string) (*ClassifiedReading, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewValidationError("Id de lectura requerido", nil)
	}
	r, err := cache.Fetch(ctx, s.cache, cache.ReadingKey(id), s.ttl, func(ctx context.Context) (*models.Reading, error) {
		return s.backend.GetReading(ctx, creds, id)
	})
	if err != nil {
		return nil, err
	}
	c := s.Classify(*r)
	return &c, nil
}

// CreateReading validates a manually entered reading and posts it. The
// result is nil when the backend does not echo the stored reading.
func (s *Service) CreateReading(ctx context.Context, creds backend.Credentials, form models.ReadingForm) (*ClassifiedReading, error) {
	payload, fields := form.Parse()
	if len(fields) > 0 {
		return nil, errors.NewFieldValidationError("Revisa los campos del formulario", fields)
	}
	created, err := s.backend.CreateReading(ctx, creds, payload)
	if err != nil {
		return nil, err
	}
	readingID := ""
	if created != nil {
		readingID = created.ID.String()
	}
	s.cleanup.ReadingCreated(ctx, payload.SensorID.String(), readingID)
	if created == nil {
		return nil, nil
	}
	c := s.Classify(*created)
	return &c, nil
}

// Monitoring is the monitoring table: all readings matching q.Search,
// paginated.
func (s *Service) Monitoring(ctx context.Context, creds backend.Credentials, q models.ListQuery) (models.Page[ClassifiedReading], error) {
	readings, err := s.ListReadings(ctx, creds)
	if err != nil {
		return models.Page[ClassifiedReading]{}, err
	}
	term := searchTerm(q.Search)
	filtered := readings
	if term != "" {
		filtered = make([]ClassifiedReading, 0, len(readings))
		for _, r := range readings {
			if matches(term, r.ID.String(), r.SensorID.String(), s.FormatTime(r.Timestamp),
				num(r.Reading.PH), num(r.Reading.Turbidity), num(r.Reading.ORP)) {
				filtered = append(filtered, r)
			}
		}
	}
	return models.Paginate(filtered, q), nil
}
