package pages

import (
	"net/http"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/api/resources"
	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/models"
)

type loginContent struct {
	Form models.Credentials
	Next string
}

// LoginForm shows the login screen.
func (p *Pages) LoginForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "login", view{
		Title:   "Iniciar sesión",
		Content: loginContent{Next: r.URL.Query().Get("next")},
	})
}

// Login validates the form, opens a session and follows next. Field errors
// are shown inline; backend errors in the banner.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	var form models.Credentials
	if err := resources.DecodeForm(r, &form); err != nil {
		p.render(w, r, http.StatusBadRequest, "login", view{Title: "Iniciar sesión", Error: "Formulario no válido", Content: loginContent{}})
		return
	}
	next := r.PostForm.Get("next")

	sess, err := p.service.Login(r.Context(), form)
	if err != nil {
		status, msg, fields := failure(err)
		form.Password = ""
		p.render(w, r, status, "login", view{
			Title:   "Iniciar sesión",
			Error:   msg,
			Fields:  fields,
			Content: loginContent{Form: form, Next: next},
		})
		return
	}

	p.auth.SetCookie(w, sess)
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// Logout closes the session and returns to the login screen.
func (p *Pages) Logout(w http.ResponseWriter, r *http.Request) {
	if err := p.service.Logout(r.Context(), p.auth.SessionID(r)); err != nil {
		_, msg, _ := failure(err)
		p.render(w, r, http.StatusServiceUnavailable, "login", view{Title: "Iniciar sesión", Error: msg, Content: loginContent{}})
		return
	}
	p.auth.ClearCookie(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
