// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/backend"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cache"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/cleanup"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/config"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/export"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/monitoring"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/session"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	redis      *redis.Client
	dashboard  *dashboard.Service
	cleanup    *cleanup.CleanupService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	if err := s.initialize(); err != nil {
		return err
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// initialize builds the service graph and the HTTP handler chain.
func (s *Server) initialize() error {
	table, err := thresholds.FromConfig(s.config.Thresholds)
	if err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	formatter, err := export.NewFormatter(s.config.Export.Timezone)
	if err != nil {
		return err
	}

	sessionStore, queryCache, err := s.initStores()
	if err != nil {
		return err
	}

	s.monitoring = monitoring.NewService()
	s.cleanup = cleanup.New(queryCache)
	s.setupCleanupHandlers()

	s.dashboard = dashboard.New(dashboard.Options{
		Backend:    backend.New(s.config.Backend),
		Sessions:   session.NewManager(sessionStore, s.config.Session.TTL),
		Cache:      queryCache,
		CacheTTL:   s.config.Cache.TTL,
		Thresholds: table,
		Formatter:  formatter,
		Cleanup:    s.cleanup,
		Recorder:   s.monitoring,
	})

	router, err := api.NewRouter(s.dashboard, s.monitoring, api.Options{
		CookieName:     s.config.Session.CookieName,
		SecureCookie:   s.config.Session.Secure,
		MetricsEnabled: s.config.Monitoring.MetricsEnabled,
	})
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}
	s.srv.Handler = s.wrap(router)

	nuts.L.Infof("[Server] Backend %s, thresholds %s, session store %s, cache %s",
		s.config.Backend.URL, table.Policy(), s.config.Session.Store, s.config.Cache.Store)
	return nil
}

// wrap adds CORS, panic recovery and the access log around h.
func (s *Server) wrap(h http.Handler) http.Handler {
	if origins := s.config.Server.AllowedOrigins; len(origins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
			handlers.AllowCredentials(),
		)(h)
	}
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return handlers.CombinedLoggingHandler(os.Stdout, h)
}

// initStores returns the session store and query cache selected by config.
// Redis is connected only when one of them needs it.
func (s *Server) initStores() (session.Store, cache.Cache, error) {
	if s.config.Session.Store == "redis" || s.config.Cache.Store == "redis" {
		client, err := initRedis(s.config.Redis)
		if err != nil {
			return nil, nil, err
		}
		s.redis = client
	}

	var sessions session.Store = session.NewMemoryStore()
	if s.config.Session.Store == "redis" {
		sessions = session.NewRedisStore(s.redis)
	}
	var queries cache.Cache = cache.NewMemoryCache()
	if s.config.Cache.Store == "redis" {
		queries = cache.NewRedisCache(s.redis)
	}
	return sessions, queries, nil
}

func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}
	nuts.L.Infof("[Server] Connected to redis at %s", cfg.Addr())
	return client, nil
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing redis: %v", err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupCleanupHandlers() {
	for _, event := range cleanup.Events {
		event := event
		s.cleanup.OnCleanup(event, "monitoring", func(id string) {
			nuts.L.Infof("[Cleanup] %s: %s", event, id)
			s.monitoring.RecordEvent(event, map[string]string{
				"sensor_id": id,
			})
		})
	}
}
