package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rangecal/internal/calendar"
	appLog "rangecal/internal/log"
	"rangecal/internal/model"
	"rangecal/internal/picker"
)

// embeddedTemplates holds the server-rendered picker page.
//
//go:embed templates/picker.html
var embeddedTemplates embed.FS

var pageTemplate = template.Must(template.ParseFS(embeddedTemplates, "templates/picker.html"))

// GET / creates a picker for the visitor and redirects to its page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, err := s.newPicker(r, pickerRequest{Month: r.URL.Query().Get("month"), Locale: r.URL.Query().Get("locale")})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/picker/"+id, http.StatusSeeOther)
}

// GET /picker/{id}
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var view model.PickerView
	if !s.sessions.with(id, func(p *picker.Picker) { view = buildView(id, p) }) {
		http.NotFound(w, r)
		return
	}

	// Render into a buffer so a template error does not leave a half page.
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		appLog.Error("picker page render failed", err, "picker", id)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// POST /picker/{id}/click (form field "date")
func (s *Server) handlePageClick(w http.ResponseWriter, r *http.Request) {
	d, err := calendar.ParseDate(r.FormValue("date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.pageAction(w, r, func(p *picker.Picker) { p.Click(d) })
}

// POST /picker/{id}/navigate (form field "step")
func (s *Server) handlePageNavigate(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.FormValue("step"))
	if err != nil || step < -1 || step > 1 {
		http.Error(w, "step must be -1, 0 or 1", http.StatusBadRequest)
		return
	}
	s.pageAction(w, r, func(p *picker.Picker) { p.Navigate(calendar.MonthOffset(step)) })
}

// pageAction applies fn and sends the browser back to the page (POST/redirect/GET).
func (s *Server) pageAction(w http.ResponseWriter, r *http.Request, fn func(*picker.Picker)) {
	id := chi.URLParam(r, "id")
	if !s.sessions.with(id, fn) {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/picker/"+id, http.StatusSeeOther)
}
