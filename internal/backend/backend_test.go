package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/config"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
)

type staticToken string

func (s staticToken) BearerToken() (string, error) { return string(s), nil }

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{
		URL:          srv.URL,
		Timeout:      5 * time.Second,
		SensorsPath:  "/api/sensores",
		ReadingsPath: "/lecturas/lecturas",
		AlertsPath:   "/alertas/alertas",
		LoginPath:    "/api/auth/login",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListSensorsSendsBearerAndDecodes(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sensores" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization=%q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"sensorId": 1, "nombreSensor": "Lago Norte", "location": "Petén", "status": "Activo"},
			{"nombreSensor": "sin id"}
		]`))
	}))

	sensors, err := c.ListSensors(context.Background(), staticToken("tok-1"))
	if err != nil {
		t.Fatalf("ListSensors: %v", err)
	}
	if len(sensors) != 1 || sensors[0].ID != "1" || sensors[0].Status != models.SensorActive {
		t.Fatalf("sensors=%+v", sensors)
	}
}

func TestSensorCallsWithoutTokenNeverReachBackend(t *testing.T) {
	t.Parallel()
	var hits int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))

	_, err := c.ListSensors(context.Background(), staticToken(""))
	if !errors.IsAuth(err) {
		t.Fatalf("err=%v want auth error", err)
	}
	if err := c.DeleteSensor(context.Background(), staticToken(""), "4"); !errors.IsAuth(err) {
		t.Fatalf("DeleteSensor err=%v want auth error", err)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("backend hit %d times", n)
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		status   int
		body     any
		wantMsg  string
		wantCode int
	}{
		{"server message", http.StatusNotFound, map[string]string{"error": "Sensor no encontrado"}, "Sensor no encontrado", http.StatusNotFound},
		{"fallback", http.StatusInternalServerError, map[string]string{}, msgGetSensor, http.StatusBadGateway},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			_, err := c.GetSensor(context.Background(), staticToken("t"), "9")
			apiErr, ok := errors.AsAPIError(err)
			if !ok {
				t.Fatalf("err=%v want APIError", err)
			}
			if apiErr.Message != tt.wantMsg || apiErr.Code != tt.wantCode {
				t.Fatalf("got %q/%d want %q/%d", apiErr.Message, apiErr.Code, tt.wantMsg, tt.wantCode)
			}
		})
	}
}

func TestCreateSensorPostsWirePayload(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["nombreSensor"] != "Río Dulce" || body["status"] != "Inactivo" {
			t.Errorf("body=%v", body)
		}
		body["sensorId"] = 12
		writeJSON(w, http.StatusCreated, body)
	}))

	s, err := c.CreateSensor(context.Background(), staticToken("t"), models.SensorForm{Name: "Río Dulce", Location: "Izabal", Status: "Inactivo"})
	if err != nil {
		t.Fatalf("CreateSensor: %v", err)
	}
	if s.ID != "12" || s.Status != models.SensorInactive {
		t.Fatalf("sensor=%+v", s)
	}
}

func TestUpdateSensorWithEmptyAnswerKeepsForm(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/sensores/7" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	s, err := c.UpdateSensor(context.Background(), staticToken("t"), "7", models.SensorForm{Name: "A", Location: "B", Status: "Activo"})
	if err != nil {
		t.Fatalf("UpdateSensor: %v", err)
	}
	if s.ID != "7" || s.Name != "A" || s.Status != models.SensorActive {
		t.Fatalf("sensor=%+v", s)
	}
}

func TestListReadingsAndAlerts(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/lecturas/lecturas", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"readId": "r1", "sensorId": 1, "registerDate": "2024-10-05T14:30:00Z", "ph_parameter": 7.1, "turbidez_parameter": "0.4", "orp_parameter": 350},
			{"readId": "r2", "sensorId": 1, "registerDate": "2024-10-05T14:31:00Z", "ph_parameter": 7.1}
		]`))
	})
	mux.HandleFunc("/alertas/alertas", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"alertId": 3, "sensorId": 1, "registerDate": "2024-10-05T14:30:00Z", "type": "pH", "level": "Crítico", "description": "pH bajo"}]`))
	})
	c := newTestClient(t, mux)

	readings, err := c.ListReadings(context.Background(), staticToken("t"))
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if len(readings) != 1 || readings[0].Turbidity != 0.4 {
		t.Fatalf("readings=%+v", readings)
	}
	alerts, err := c.ListAlerts(context.Background(), staticToken("t"))
	if err != nil {
		t.Fatalf("ListAlerts: %v", err)
	}
	if len(alerts) != 1 || alerts[0].Level != models.AlertCritical {
		t.Fatalf("alerts=%+v", alerts)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		status    int
		body      string
		wantToken string
		wantErr   string
	}{
		{"token object", http.StatusOK, `{"token":"abc"}`, "abc", ""},
		{"json string", http.StatusOK, `"xyz"`, "xyz", ""},
		{"rejected", http.StatusUnauthorized, `{"error":"Credenciales inválidas"}`, "", "Credenciales inválidas"},
		{"no token", http.StatusOK, `{}`, "", msgLogin},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body models.LoginPayload
				_ = json.NewDecoder(r.Body).Decode(&body)
				if body.Email != "ana@agua.gt" || r.Header.Get("Authorization") != "" {
					t.Errorf("body=%+v auth=%q", body, r.Header.Get("Authorization"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			token, err := c.Authenticate(context.Background(), models.Credentials{Email: " ana@agua.gt ", Password: "secreto"})
			if tt.wantErr != "" {
				apiErr, ok := errors.AsAPIError(err)
				if !ok || apiErr.Message != tt.wantErr {
					t.Fatalf("err=%v want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil || token != tt.wantToken {
				t.Fatalf("token=%q err=%v", token, err)
			}
		})
	}
}
