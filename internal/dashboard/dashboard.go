// Package dashboard is the service behind every page and API route: it calls
// the backend through the query cache, classifies readings, and builds
// reports and charts.
package dashboard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/backend"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cache"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cleanup"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/export"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/session"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
)

// Backend is the subset of the backend client the service uses.
type Backend interface {
	Authenticate(ctx context.Context, creds models.Credentials) (string, error)
	ListSensors(ctx context.Context, creds backend.Credentials) ([]models.Sensor, error)
	GetSensor(ctx context.Context, creds backend.Credentials, id string) (*models.Sensor, error)
	CreateSensor(ctx context.Context, creds backend.Credentials, form models.SensorForm) (*models.Sensor, error)
	UpdateSensor(ctx context.Context, creds backend.Credentials, id string, form models.SensorForm) (*models.Sensor, error)
	DeleteSensor(ctx context.Context, creds backend.Credentials, id string) error
	ListReadings(ctx context.Context, creds backend.Credentials) ([]models.Reading, error)
	GetReading(ctx context.Context, creds backend.Credentials, id string) (*models.Reading, error)
	CreateReading(ctx context.Context, creds backend.Credentials, payload models.ReadingPayload) (*models.Reading, error)
	ListAlerts(ctx context.Context, creds backend.Credentials) ([]models.Alert, error)
	GetAlert(ctx context.Context, creds backend.Credentials, id string) (*models.Alert, error)
}

// Recorder receives monitoring events.
type Recorder interface {
	RecordEvent(eventName string, labels map[string]string)
}

// Options wires a Service.
type Options struct {
	Backend    Backend
	Sessions   *session.Manager
	Cache      cache.Cache
	CacheTTL   time.Duration
	Thresholds *thresholds.Table
	Formatter  *export.Formatter
	Cleanup    *cleanup.CleanupService
	Recorder   Recorder
}

// Service implements the dashboard's use cases.
type Service struct {
	backend   Backend
	sessions  *session.Manager
	cache     cache.Cache
	ttl       time.Duration
	table     *thresholds.Table
	formatter *export.Formatter
	cleanup   *cleanup.CleanupService
	recorder  Recorder
	now       func() time.Time
}

// New creates a Service. Thresholds default to the strict table and a nil
// Cleanup is built on Cache.
func New(opts Options) *Service {
	s := &Service{
		backend:   opts.Backend,
		sessions:  opts.Sessions,
		cache:     opts.Cache,
		ttl:       opts.CacheTTL,
		table:     opts.Thresholds,
		formatter: opts.Formatter,
		cleanup:   opts.Cleanup,
		recorder:  opts.Recorder,
		now:       time.Now,
	}
	if s.cache == nil {
		s.cache = cache.NewMemoryCache()
	}
	if s.table == nil {
		s.table = thresholds.DefaultTable()
	}
	if s.cleanup == nil {
		s.cleanup = cleanup.New(s.cache)
	}
	return s
}

// Thresholds returns the active classification table.
func (s *Service) Thresholds() thresholds.Snapshot {
	return s.table.Snapshot()
}

func (s *Service) record(event string, labels map[string]string) {
	if s.recorder != nil {
		s.recorder.RecordEvent(event, labels)
	}
}

// Assessment is one classified parameter of a reading.
type Assessment struct {
	Kind      thresholds.Kind      `json:"kind"`
	Value     float64              `json:"value"`
	Unit      string               `json:"unit"`
	Severity  thresholds.Severity  `json:"severity"`
	Indicator thresholds.Indicator `json:"indicator"`
	// OutsideHard is set when the value also breaks the table's hard limits.
	OutsideHard bool `json:"outside_hard,omitempty"`
}

// ClassifiedReading is a reading with each parameter classified.
type ClassifiedReading struct {
	models.Reading
	PH        Assessment `json:"ph_assessment"`
	Turbidity Assessment `json:"turbidity_assessment"`
	ORP       Assessment `json:"orp_assessment"`
}

// Normal reports whether all three parameters are inside their bands.
func (r ClassifiedReading) Normal() bool {
	return r.PH.Severity == thresholds.Normal &&
		r.Turbidity.Severity == thresholds.Normal &&
		r.ORP.Severity == thresholds.Normal
}

func (s *Service) assess(kind thresholds.Kind, v float64) Assessment {
	sev := s.table.Classify(v, kind)
	return Assessment{
		Kind:        kind,
		Value:       v,
		Unit:        kind.Unit(),
		Severity:    sev,
		Indicator:   thresholds.IndicatorFor(sev),
		OutsideHard: s.table.OutsideHard(v, kind),
	}
}

// Classify attaches an assessment to each parameter of r.
func (s *Service) Classify(r models.Reading) ClassifiedReading {
	return ClassifiedReading{
		Reading:   r,
		PH:        s.assess(thresholds.PH, r.PH),
		Turbidity: s.assess(thresholds.Turbidity, r.Turbidity),
		ORP:       s.assess(thresholds.ORP, r.ORP),
	}
}

func (s *Service) classifyAll(readings []models.Reading) []ClassifiedReading {
	out := make([]ClassifiedReading, len(readings))
	for i, r := range readings {
		out[i] = s.Classify(r)
	}
	return out
}

// FormatTime renders t the way pages and reports do.
func (s *Service) FormatTime(t time.Time) string {
	if s.formatter == nil {
		return t.Format(time.RFC3339)
	}
	return s.formatter.Time(t)
}

// matches reports whether any field contains the lower-cased search term.
func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func searchTerm(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
