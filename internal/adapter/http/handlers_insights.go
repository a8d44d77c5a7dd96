package adapthttp

import (
	"net/http"

	"bmitracker/internal/app"
)

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req app.InsightRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.UnitSystem == "" {
		req.UnitSystem = s.prefs.Current().UnitSystem
	}

	token := s.tracker.Begin()
	text := s.insights.Request(r.Context(), req)
	applied := s.tracker.Resolve(token, text)
	writeJSON(w, http.StatusOK, map[string]any{
		"text":    text,
		"token":   token,
		"applied": applied,
	})
}

func (s *Server) handleInsightsLatest(w http.ResponseWriter, _ *http.Request) {
	text, token := s.tracker.Latest()
	writeJSON(w, http.StatusOK, map[string]any{"text": text, "token": token})
}
