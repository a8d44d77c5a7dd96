package adapthttp

import (
	"net/http"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

func (s *Server) handleBMI(w http.ResponseWriter, r *http.Request) {
	var m domain.Measurement
	if err := parseJSON(r, &m); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if m.System == "" {
		m.System = s.prefs.Current().UnitSystem
	} else if _, err := domain.ParseUnitSystem(string(m.System)); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, app.Evaluate(m))
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": domain.Categories()})
}
