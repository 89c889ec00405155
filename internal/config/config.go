package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Backend    BackendConfig
	Session    SessionConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Thresholds ThresholdsConfig
	Export     ExportConfig
	Monitoring MonitoringConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// BackendConfig points at the sensor network REST API.
type BackendConfig struct {
	URL          string        `mapstructure:"url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SensorsPath  string        `mapstructure:"sensors_path"`
	ReadingsPath string        `mapstructure:"readings_path"`
	AlertsPath   string        `mapstructure:"alerts_path"`
	LoginPath    string        `mapstructure:"login_path"`
}

type SessionConfig struct {
	Store      string        `mapstructure:"store"` // "memory" or "redis"
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
}

type CacheConfig struct {
	Store string        `mapstructure:"store"` // "memory" or "redis"
	TTL   time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BandConfig is the normal band of one water-quality parameter.
type BandConfig struct {
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high"`
}

// ThresholdsConfig selects the classification policy and its bands.
// Preset "default" is the strict table, "revision_b" the inclusive one;
// "custom" uses Policy and the three bands below.
type ThresholdsConfig struct {
	Preset    string     `mapstructure:"preset"`
	Policy    string     `mapstructure:"policy"`
	PH        BandConfig `mapstructure:"ph"`
	Turbidity BandConfig `mapstructure:"turbidity"`
	ORP       BandConfig `mapstructure:"orp"`
}

type ExportConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type MonitoringConfig struct {
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AQUA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	setDefaults(v)

	// Load config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{})

	// Backend defaults
	v.SetDefault("backend.url", "http://localhost:4000")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.sensors_path", "/api/sensores")
	v.SetDefault("backend.readings_path", "/lecturas/lecturas")
	v.SetDefault("backend.alerts_path", "/alertas/alertas")
	v.SetDefault("backend.login_path", "/api/auth/login")

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.cookie_name", "AUTH_SESSION")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.secure", false)

	// Cache defaults
	v.SetDefault("cache.store", "memory")
	v.SetDefault("cache.ttl", "5m")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Threshold defaults
	v.SetDefault("thresholds.preset", "default")
	v.SetDefault("thresholds.policy", "strict")

	// Export defaults
	v.SetDefault("export.timezone", "America/Guatemala")

	// Monitoring defaults
	v.SetDefault("monitoring.metrics_enabled", true)
}

func validateConfig(config *Config) error {
	if config.Backend.URL == "" {
		return fmt.Errorf("backend URL is required")
	}
	for name, store := range map[string]string{"session": config.Session.Store, "cache": config.Cache.Store} {
		if store != "memory" && store != "redis" {
			return fmt.Errorf("%s store must be memory or redis, got %q", name, store)
		}
	}
	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}
	switch config.Thresholds.Preset {
	case "default", "revision_b":
	case "custom":
		if config.Thresholds.Policy != "strict" && config.Thresholds.Policy != "inclusive" {
			return fmt.Errorf("threshold policy must be strict or inclusive, got %q", config.Thresholds.Policy)
		}
		bands := map[string]BandConfig{
			"ph":        config.Thresholds.PH,
			"turbidity": config.Thresholds.Turbidity,
			"orp":       config.Thresholds.ORP,
		}
		for name, band := range bands {
			if band.Low >= band.High {
				return fmt.Errorf("threshold band %s: low (%v) must be below high (%v)", name, band.Low, band.High)
			}
		}
	default:
		return fmt.Errorf("unknown threshold preset %q", config.Thresholds.Preset)
	}
	if _, err := time.LoadLocation(config.Export.Timezone); err != nil {
		return fmt.Errorf("invalid export timezone %q: %w", config.Export.Timezone, err)
	}
	return nil
}
