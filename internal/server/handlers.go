package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func (s *Server) handleFormat(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeFormat(w, r, format)
	}
}

func (s *Server) handleNamedFormat(w http.ResponseWriter, r *http.Request) {
	s.writeFormat(w, r, render.Format(chi.URLParam(r, "format")))
}

func (s *Server) writeFormat(w http.ResponseWriter, r *http.Request, format render.Format) {
	renderer, err := render.Lookup(format)
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	m, err := s.source()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	data, err := renderer.Render(m)
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type linkResponse struct {
	Position string   `json:"position"`
	Trail    []string `json:"trail"`
	Text     string   `json:"text"`
	Link     string   `json:"link"`
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	m, err := s.source()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	entries := m.Links()
	out := make([]linkResponse, len(entries))
	for i, e := range entries {
		trail := e.Trail
		if trail == nil {
			trail = []string{}
		}
		out[i] = linkResponse{Position: nav.FormatPath(e.Path), Trail: trail, Text: e.Text, Link: e.Link}
	}
	writeJSON(w, out)
}

type statsResponse struct {
	Links    int  `json:"links"`
	Groups   int  `json:"groups"`
	Total    int  `json:"total"`
	MaxDepth int  `json:"max_depth"`
	Valid    bool `json:"valid"`
	Warnings int  `json:"warnings"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	m, err := s.source()
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	st := m.Stats()
	report := nav.Validate(m)
	writeJSON(w, statsResponse{
		Links:    st.Links,
		Groups:   st.Groups,
		Total:    st.Total(),
		MaxDepth: st.MaxDepth,
		Valid:    report.Valid(),
		Warnings: len(report.Warnings()),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
