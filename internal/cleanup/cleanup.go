// Package cleanup evicts derived state after a successful mutation and
// announces the mutation to listeners.
package cleanup

import (
	"context"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cache"
	nuts "github.com/vaudience/go-nuts"
)

// Mutation events.
const (
	EventSensorCreated  = "sensor.created"
	EventSensorUpdated  = "sensor.updated"
	EventSensorDeleted  = "sensor.deleted"
	EventReadingCreated = "reading.created"
)

// Events lists every event the service emits.
var Events = []string{EventSensorCreated, EventSensorUpdated, EventSensorDeleted, EventReadingCreated}

// CleanupService keeps the query cache consistent with backend mutations.
type CleanupService struct {
	cache  cache.Cache
	events *nuts.EventEmitter
}

// New creates a new CleanupService
func New(c cache.Cache) *CleanupService {
	return &CleanupService{
		cache:  c,
		events: nuts.NewEventEmitter(),
	}
}

// SensorChanged evicts the sensor listing and the sensor's own entry, then
// emits event. Eviction finishes before it returns so the next read refetches.
func (s *CleanupService) SensorChanged(ctx context.Context, event string, sensorID string) {
	keys := []string{cache.KeySensors}
	if sensorID != "" {
		keys = append(keys, cache.SensorKey(sensorID))
	}
	cache.Invalidate(ctx, s.cache, keys...)
	s.events.Emit(event, sensorID)
}

// ReadingCreated evicts the reading listing and the owning sensor, whose
// detail embeds its readings.
func (s *CleanupService) ReadingCreated(ctx context.Context, sensorID string, readingID string) {
	keys := []string{cache.KeyReadings}
	if sensorID != "" {
		keys = append(keys, cache.SensorKey(sensorID))
	}
	cache.Invalidate(ctx, s.cache, keys...)
	s.events.Emit(EventReadingCreated, sensorID, readingID)
}

// OnCleanup registers a callback for a mutation event. listener must be
// unique per event.
func (s *CleanupService) OnCleanup(event string, listener string, handler func(id string)) {
	s.events.On(event, listener, func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
