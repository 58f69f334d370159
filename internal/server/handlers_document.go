package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxSectionPayload caps a single section update. Sections are form data,
// not file uploads.
const maxSectionPayload = 1 << 20

// handleGetDocument returns the working snapshot with template and
// completeness.
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := s.docCtl.Document()
	tmpl := s.docCtl.Template()
	report := s.docCtl.Completeness()
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"document":     doc,
		"template":     tmpl,
		"completeness": report,
	})
}

// handleUpdateSection replaces one top-level document section.
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	section := types.SectionName(r.PathValue("section"))
	if !types.ValidSection(section) {
		s.errorResponse(w, http.StatusNotFound, "Unknown section: "+string(section))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxSectionPayload))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.docCtl.UpdateSection(r.Context(), section, payload); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":       "updated",
		"completeness": s.docCtl.Completeness(),
	})
}

// handleSetTemplate replaces the selected template.
func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Template types.Template `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !types.ValidTemplate(req.Template) {
		s.errorResponse(w, http.StatusBadRequest, "Unknown template: "+string(req.Template))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.docCtl.SetTemplate(r.Context(), req.Template); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleGetCompleteness returns the current completeness report.
func (s *Server) handleGetCompleteness(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	report := s.docCtl.Completeness()
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, report)
}

// handleExport renders the text artifact. Completeness is re-evaluated at
// call time; an incomplete document gets a 409 with the report.
func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := s.docCtl.Document()
	tmpl := s.docCtl.Template()
	s.mu.Unlock()

	artifact, err := export.Render(doc, tmpl)
	if err != nil {
		var notReady *export.ErrNotReady
		if errors.As(err, &notReady) {
			s.jsonResponse(w, http.StatusConflict, map[string]any{
				"error":        err.Error(),
				"completeness": notReady.Report,
			})
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.txt"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(artifact))
}
