// Package pages renders the dashboard's HTML screens.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/middleware"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/dashboard"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/errors"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/session"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/thresholds"
	nuts "github.com/vaudience/go-nuts"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "sensors", "sensor_form", "sensor_detail", "monitoring", "alerts", "reading_form"}

var notices = map[string]string{
	"created": "Sensor creado correctamente",
	"updated": "Sensor actualizado correctamente",
	"deleted": "Sensor eliminado correctamente",
	"reading": "Lectura registrada correctamente",
}

// Pages holds the HTML handlers
type Pages struct {
	service   *dashboard.Service
	auth      *middleware.SessionMiddleware
	templates map[string]*template.Template
}

// view is what every template receives.
type view struct {
	Title   string
	Email   string
	Admin   bool
	Error   string
	Notice  string
	Fields  errors.FieldErrors
	Content interface{}
}

// New parses the embedded templates.
func New(svc *dashboard.Service, auth *middleware.SessionMiddleware) (*Pages, error) {
	funcs := template.FuncMap{
		"when":   svc.FormatTime,
		"sizes":  func() []int { return models.PageSizes },
		"rownum": func(page, size, i int) int { return (page-1)*size + i + 1 },
		"inc":    func(i int) int { return i + 1 },
		"dec":    func(i int) int { return i - 1 },
		"kinds":  func() []thresholds.Kind { return thresholds.Kinds },
		"num":    func(v float64) string { return fmt.Sprintf("%g", v) },
		"query": func(q models.ListQuery, page int) template.URL {
			v := url.Values{}
			if q.Search != "" {
				v.Set("q", q.Search)
			}
			v.Set("page", fmt.Sprint(page))
			v.Set("size", fmt.Sprint(q.PageSize))
			return template.URL(v.Encode())
		},
	}
	p := &Pages{service: svc, auth: auth, templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p.templates[name] = t
	}
	return p, nil
}

// render executes a page into a buffer first so a template error never
// produces half a page.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	if sess, ok := middleware.SessionFrom(r.Context()); ok {
		v.Email = sess.Email
		v.Admin = sess.Admin
	}
	if v.Notice == "" {
		v.Notice = notices[r.URL.Query().Get("notice")]
	}
	var buf bytes.Buffer
	if err := p.templates[name].ExecuteTemplate(&buf, "layout", v); err != nil {
		nuts.L.Errorf("[Pages] Failed to render %s: %v", name, err)
		http.Error(w, "Error interno", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// failure splits err into a banner message and per-field messages.
func failure(err error) (int, string, errors.FieldErrors) {
	apiErr, ok := errors.AsAPIError(err)
	if !ok {
		nuts.L.Errorf("[Pages] Unexpected error: %v", err)
		return http.StatusInternalServerError, "Ocurrió un error inesperado", nil
	}
	if apiErr.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[Pages] %s", apiErr.Error())
	}
	fields, _ := apiErr.Details.(errors.FieldErrors)
	return apiErr.Code, apiErr.Message, fields
}

func redirect(w http.ResponseWriter, r *http.Request, path string, notice string) {
	if notice != "" {
		path += "?notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/sensors"
}

func sessionOf(r *http.Request) *session.Session {
	sess, _ := middleware.SessionFrom(r.Context())
	return sess
}

// Home sends the browser to the sensor list.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/sensors", http.StatusSeeOther)
}
