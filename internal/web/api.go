package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rangecal/internal/calendar"
	"rangecal/internal/ics"
	appLog "rangecal/internal/log"
	"rangecal/internal/model"
	"rangecal/internal/picker"
)

// maxBodyBytes bounds JSON and .ics request bodies.
const maxBodyBytes = 1 << 20

type dateRequest struct {
	Date calendar.Date `json:"date"`
}

type navigateRequest struct {
	Step int `json:"step"`
}

type anchorRequest struct {
	Month string `json:"month"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// POST /api/pickers
//
// An empty body is allowed and yields a picker for the ambient locale and
// the current month.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req pickerRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.newPicker(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var view model.PickerView
	s.sessions.with(id, func(p *picker.Picker) {
		view = buildView(id, p)
	})
	writeJSON(w, http.StatusCreated, view)
}

// POST /api/pickers/import
//
// The body is an iCalendar payload; the first all-day event becomes the
// committed range and its first month the displayed one.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	start, end, err := ics.ParseRange(body)
	if err != nil {
		appLog.Error("ics import failed", err)
		writeError(w, http.StatusBadRequest, "no all-day event in calendar")
		return
	}

	id, err := s.newPicker(r, pickerRequest{Month: start.MonthString()})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var view model.PickerView
	s.sessions.with(id, func(p *picker.Picker) {
		p.Click(start)
		p.Click(end)
		view = buildView(id, p)
	})
	writeJSON(w, http.StatusCreated, view)
}

// GET /api/pickers/{id}
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, nil)
}

// DELETE /api/pickers/{id}
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "picker not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/pickers/{id}/click {"date": "2024-01-10"}
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	s.withDate(w, r, (*picker.Picker).Click)
}

// POST /api/pickers/{id}/hover {"date": "2024-01-10"}
func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	s.withDate(w, r, (*picker.Picker).HoverEnter)
}

// POST /api/pickers/{id}/leave {"date": "2024-01-10"}
func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	s.withDate(w, r, (*picker.Picker).HoverLeave)
}

// POST /api/pickers/{id}/navigate {"step": -1}
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Step < -1 || req.Step > 1 {
		writeError(w, http.StatusBadRequest, "step must be -1, 0 or 1")
		return
	}
	s.respond(w, r, func(p *picker.Picker) {
		p.Navigate(calendar.MonthOffset(req.Step))
	})
}

// PUT /api/pickers/{id}/anchor {"month": "2024-03"}
func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	var req anchorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := calendar.ParseMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, r, func(p *picker.Picker) {
		p.SetAnchor(m)
	})
}

// GET /api/pickers/{id}/selection.ics
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		body      []byte
		exportErr error
	)
	found := s.sessions.with(id, func(p *picker.Picker) {
		body, exportErr = ics.ExportSelection(p, ics.ExportOptions{
			UID:   id + "@rangecal",
			Stamp: s.now(),
		})
	})

	switch {
	case !found:
		writeError(w, http.StatusNotFound, "picker not found")
	case errors.Is(exportErr, ics.ErrNoRange):
		writeError(w, http.StatusConflict, exportErr.Error())
	case exportErr != nil:
		appLog.Error("ics export failed", exportErr, "picker", id)
		writeError(w, http.StatusInternalServerError, "export failed")
	default:
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="selection.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func (s *Server) withDate(w http.ResponseWriter, r *http.Request, fn func(*picker.Picker, calendar.Date)) {
	var req dateRequest
	if err := decodeJSON(r, &req); err != nil || req.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	s.respond(w, r, func(p *picker.Picker) {
		fn(p, req.Date)
	})
}

// respond applies fn (if any) to the picker named in the URL and writes the
// resulting view.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, fn func(*picker.Picker)) {
	id := chi.URLParam(r, "id")

	var view model.PickerView
	found := s.sessions.with(id, func(p *picker.Picker) {
		if fn != nil {
			fn(p)
		}
		view = buildView(id, p)
	})
	if !found {
		writeError(w, http.StatusNotFound, "picker not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
