package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestDecodeDefaults(t *testing.T) {
	cfg, err := decode(newTestViper(nil))
	if err != nil {
		t.Fatalf("decode defaults: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port=%d want 8080", cfg.Server.Port)
	}
	if cfg.Backend.SensorsPath != "/api/sensores" {
		t.Fatalf("sensors path=%q", cfg.Backend.SensorsPath)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Fatalf("cache ttl=%v want 5m", cfg.Cache.TTL)
	}
	if cfg.Thresholds.Preset != "default" {
		t.Fatalf("preset=%q want default", cfg.Thresholds.Preset)
	}
	if cfg.Export.Timezone != "America/Guatemala" {
		t.Fatalf("timezone=%q", cfg.Export.Timezone)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{name: "empty backend", overrides: map[string]any{"backend.url": ""}},
		{name: "unknown session store", overrides: map[string]any{"session.store": "disk"}},
		{name: "unknown preset", overrides: map[string]any{"thresholds.preset": "legacy"}},
		{name: "custom bad policy", overrides: map[string]any{
			"thresholds.preset": "custom",
			"thresholds.policy": "fuzzy",
		}},
		{name: "custom inverted band", overrides: map[string]any{
			"thresholds.preset":         "custom",
			"thresholds.ph.low":         8.5,
			"thresholds.ph.high":        6.5,
			"thresholds.turbidity.low":  0.1,
			"thresholds.turbidity.high": 1.0,
			"thresholds.orp.low":        200,
			"thresholds.orp.high":       600,
		}},
		{name: "bad timezone", overrides: map[string]any{"export.timezone": "Mars/Olympus"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decode(newTestViper(tc.overrides)); err == nil {
				t.Fatalf("decode(%v) succeeded, want error", tc.overrides)
			}
		})
	}
}

func TestDecodeCustomThresholds(t *testing.T) {
	cfg, err := decode(newTestViper(map[string]any{
		"thresholds.preset":         "custom",
		"thresholds.policy":         "inclusive",
		"thresholds.ph.low":         6.8,
		"thresholds.ph.high":        7.8,
		"thresholds.turbidity.low":  0.1,
		"thresholds.turbidity.high": 1.0,
		"thresholds.orp.low":        200,
		"thresholds.orp.high":       600,
	}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Thresholds.PH.Low != 6.8 || cfg.Thresholds.PH.High != 7.8 {
		t.Fatalf("ph band=%+v", cfg.Thresholds.PH)
	}
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	if got := r.Addr(); got != "cache:6380" {
		t.Fatalf("Addr()=%q want cache:6380", got)
	}
}
