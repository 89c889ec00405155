package monitoring

import (
	"sort"
	"strings"
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Service counts monitored events in memory. Counters reset on restart.
type Service struct {
	mu      sync.Mutex
	started time.Time
	counts  map[string]map[string]int64
	last    map[string]time.Time
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{
		started: time.Now(),
		counts:  make(map[string]map[string]int64),
		last:    make(map[string]time.Time),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := time.Now()
	key := labelKey(labels)

	s.mu.Lock()
	byLabel, ok := s.counts[eventName]
	if !ok {
		byLabel = make(map[string]int64)
		s.counts[eventName] = byLabel
	}
	byLabel[key]++
	s.last[eventName] = ts
	s.mu.Unlock()

	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// GetEventMetrics returns the counts of eventType by label set.
func (s *Service) GetEventMetrics(eventType string) map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counts[eventType]))
	for k, v := range s.counts[eventType] {
		out[k] = v
	}
	return out
}

// EventSummary is the total of one event name.
type EventSummary struct {
	Name     string           `json:"name"`
	Total    int64            `json:"total"`
	ByLabel  map[string]int64 `json:"by_label"`
	LastSeen time.Time        `json:"last_seen"`
}

// Snapshot is what GET /metrics serves.
type Snapshot struct {
	Version       string         `json:"version"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Events        []EventSummary `json:"events"`
}

// Snapshot returns all counters sorted by event name.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Version:       nuts.GetVersion(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Events:        make([]EventSummary, 0, len(s.counts)),
	}
	for name, byLabel := range s.counts {
		sum := EventSummary{Name: name, ByLabel: make(map[string]int64, len(byLabel)), LastSeen: s.last[name]}
		for k, v := range byLabel {
			sum.ByLabel[k] = v
			sum.Total += v
		}
		snap.Events = append(snap.Events, sum)
	}
	sort.Slice(snap.Events, func(i, j int) bool { return snap.Events[i].Name < snap.Events[j].Name })
	return snap
}

// labelKey renders labels as "k1=v1,k2=v2" in key order.
func labelKey(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + labels[k]
	}
	return strings.Join(parts, ",")
}
