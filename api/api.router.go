package api

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/middleware"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/pages"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/resources"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/monitoring"
	"github.com/gorilla/mux"
)

const loginPath = "/auth/login"

// Options configures the router.
type Options struct {
	CookieName     string
	SecureCookie   bool
	MetricsEnabled bool
}

type Router struct {
	router    *mux.Router
	auth      *middleware.SessionMiddleware
	resources *resources.Resources
	pages     *pages.Pages
	metrics   bool
}

func NewRouter(svc *dashboard.Service, mon *monitoring.Service, opts Options) (*Router, error) {
	auth := middleware.NewSessionMiddleware(svc, opts.CookieName, opts.SecureCookie, loginPath)
	p, err := pages.New(svc, auth)
	if err != nil {
		return nil, err
	}
	r := &Router{
		router:    mux.NewRouter(),
		auth:      auth,
		resources: resources.NewResources(svc, auth, mon),
		pages:     p,
		metrics:   opts.MetricsEnabled,
	}

	r.setupRoutes()
	return r, nil
}

func (r *Router) setupRoutes() {
	res := r.resources

	// Public routes
	r.router.HandleFunc("/health", res.System.HealthCheck).Methods(http.MethodGet)
	if r.metrics {
		r.router.HandleFunc("/metrics", res.System.Metrics).Methods(http.MethodGet)
	}
	r.router.HandleFunc(loginPath, r.pages.LoginForm).Methods(http.MethodGet)
	r.router.HandleFunc(loginPath, r.pages.Login).Methods(http.MethodPost)

	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", res.System.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", res.Auth.Login).Methods(http.MethodPost)

	// Protected API routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)
	protected.HandleFunc("/auth/logout", res.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/thresholds", res.System.Thresholds).Methods(http.MethodGet)

	// Sensors; mutations are for admins only
	admin := r.auth.RequireAdmin
	sensors := protected.PathPrefix("/sensors").Subrouter()
	sensors.HandleFunc("", res.Sensors.ListSensors).Methods(http.MethodGet)
	sensors.Handle("", admin(http.HandlerFunc(res.Sensors.CreateSensor))).Methods(http.MethodPost)
	sensors.HandleFunc("/{id}", res.Sensors.GetSensor).Methods(http.MethodGet)
	sensors.Handle("/{id}", admin(http.HandlerFunc(res.Sensors.UpdateSensor))).Methods(http.MethodPut)
	sensors.Handle("/{id}", admin(http.HandlerFunc(res.Sensors.DeleteSensor))).Methods(http.MethodDelete)

	// Readings
	readings := protected.PathPrefix("/readings").Subrouter()
	readings.HandleFunc("", res.Readings.ListReadings).Methods(http.MethodGet)
	readings.HandleFunc("", res.Readings.CreateReading).Methods(http.MethodPost)
	readings.HandleFunc("/{id}", res.Readings.GetReading).Methods(http.MethodGet)

	// Alerts
	alerts := protected.PathPrefix("/alerts").Subrouter()
	alerts.HandleFunc("", res.Alerts.ListAlerts).Methods(http.MethodGet)
	alerts.HandleFunc("/{id}", res.Alerts.GetAlert).Methods(http.MethodGet)

	// Downloads: session cookie or bearer session id, JSON errors
	files := r.router.PathPrefix("").Subrouter()
	files.Use(r.auth.Authenticate)
	files.HandleFunc("/reports/readings.{format:pdf|xlsx}", res.Reports.ExportReadings).Methods(http.MethodGet)
	files.HandleFunc("/reports/alerts.{format:pdf|xlsx}", res.Reports.ExportAlerts).Methods(http.MethodGet)
	files.HandleFunc("/reports/sensors/{id}.{format:pdf|xlsx}", res.Reports.ExportSensor).Methods(http.MethodGet)
	files.HandleFunc("/sensors/{id}/charts/{kind:ph|turbidity|orp}.png", res.Reports.Chart).Methods(http.MethodGet)

	// Pages
	adminPage := func(h http.HandlerFunc) http.Handler { return r.auth.RequireAdminPage(h) }
	web := r.router.PathPrefix("").Subrouter()
	web.Use(r.auth.RequirePage)
	web.HandleFunc("/", r.pages.Home).Methods(http.MethodGet)
	web.HandleFunc("/auth/logout", r.pages.Logout).Methods(http.MethodPost)
	web.HandleFunc("/sensors", r.pages.Sensors).Methods(http.MethodGet)
	web.Handle("/sensors", adminPage(r.pages.SaveSensor)).Methods(http.MethodPost)
	web.Handle("/sensors/new", adminPage(r.pages.NewSensor)).Methods(http.MethodGet)
	web.HandleFunc("/sensors/{id}", r.pages.SensorDetail).Methods(http.MethodGet)
	web.Handle("/sensors/{id}", adminPage(r.pages.SaveSensor)).Methods(http.MethodPost)
	web.Handle("/sensors/{id}/edit", adminPage(r.pages.EditSensor)).Methods(http.MethodGet)
	web.Handle("/sensors/{id}/delete", adminPage(r.pages.DeleteSensor)).Methods(http.MethodPost)
	web.HandleFunc("/monitoring", r.pages.Monitoring).Methods(http.MethodGet)
	web.HandleFunc("/alerts", r.pages.Alerts).Methods(http.MethodGet)
	web.HandleFunc("/readings/new", r.pages.NewReading).Methods(http.MethodGet)
	web.HandleFunc("/readings", r.pages.CreateReading).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
