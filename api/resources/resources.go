// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/middleware"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/monitoring"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/session"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth     *AuthHandlers
	Sensors  *SensorHandlers
	Readings *ReadingHandlers
	Alerts   *AlertHandlers
	Reports  *ReportHandlers
	System   *SystemHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *dashboard.Service, auth *middleware.SessionMiddleware, mon *monitoring.Service) *Resources {
	return &Resources{
		Auth:     &AuthHandlers{service: svc, auth: auth},
		Sensors:  &SensorHandlers{service: svc},
		Readings: &ReadingHandlers{service: svc},
		Alerts:   &AlertHandlers{service: svc},
		Reports:  &ReportHandlers{service: svc},
		System:   &SystemHandlers{service: svc, monitoring: mon},
	}
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeForm fills dst from the request's form values (query string included).
func DecodeForm(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(dst, r.Form)
}

// DecodeQuery fills dst from the query string only.
func DecodeQuery(r *http.Request, dst interface{}) error {
	return decoder.Decode(dst, r.URL.Query())
}

// decodeBody accepts JSON or form-encoded bodies.
func decodeBody(r *http.Request, dst interface{}) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		return DecodeForm(r, dst)
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// sessionOf returns the request's session. The middleware guarantees one on
// protected routes; a nil session makes backend calls fail with an auth error.
func sessionOf(r *http.Request) *session.Session {
	sess, _ := middleware.SessionFrom(r.Context())
	return sess
}

// asAPIError converts err for the response, keeping backend and validation
// errors as they are.
func asAPIError(msg string, err error, requestID string) *errors.APIError {
	return errors.Wrap(msg, err).WithRequestID(requestID)
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	if err.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s", err.Error())
	} else {
		nuts.L.Warnf("[API] %s", err.Error())
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
