package adapthttp

import (
	"net/http"

	"bmitracker/internal/domain"
)

func (s *Server) handlePreferencesGet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.prefs.Current())
}

func (s *Server) handlePreferencesPut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme      string `json:"theme"`
		UnitSystem string `json:"unitSystem"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var theme domain.Theme
	var units domain.UnitSystem
	var err error
	if body.Theme != "" {
		if theme, err = domain.ParseTheme(body.Theme); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if body.UnitSystem != "" {
		if units, err = domain.ParseUnitSystem(body.UnitSystem); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	ctx := r.Context()
	if theme != "" {
		if _, err := s.prefs.SetTheme(ctx, theme); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if units != "" {
		if _, err := s.prefs.SetUnitSystem(ctx, units); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.prefs.Current())
}
