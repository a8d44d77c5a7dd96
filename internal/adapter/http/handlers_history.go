package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"bmitracker/internal/adapter/export"
	"bmitracker/internal/domain"
	"bmitracker/internal/metrics"
)

// unitQuery reads ?unit=, falling back to the preferred unit system.
func (s *Server) unitQuery(r *http.Request) (domain.UnitSystem, error) {
	v := r.URL.Query().Get("unit")
	if v == "" {
		return s.prefs.Current().UnitSystem, nil
	}
	return domain.ParseUnitSystem(v)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	units, err := s.unitQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"unitSystem": units,
		"items":      s.history.List(),
		"chart":      s.history.Chart(units),
	})
}

type addHistoryRequest struct {
	Weight     float64           `json:"weight"`
	Unit       string            `json:"unit"`
	Date       string            `json:"date"`
	UnitSystem domain.UnitSystem `json:"unitSystem"`
	HeightCm   float64           `json:"heightCm"`
	HeightFt   float64           `json:"heightFt"`
	HeightIn   float64           `json:"heightIn"`
}

func (s *Server) handleHistoryAdd(w http.ResponseWriter, r *http.Request) {
	var body addHistoryRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.UnitSystem == "" {
		body.UnitSystem = s.prefs.Current().UnitSystem
	} else if _, err := domain.ParseUnitSystem(string(body.UnitSystem)); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Unit == "" {
		body.Unit = body.UnitSystem.WeightLabel()
	}
	current := domain.Measurement{
		System:   body.UnitSystem,
		HeightCm: body.HeightCm,
		HeightFt: body.HeightFt,
		HeightIn: body.HeightIn,
	}

	entry, err := s.history.AddMeasured(r.Context(), body.Weight, body.Unit, body.Date, current)
	if err != nil {
		status := http.StatusInternalServerError
		if isValidationError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (s *Server) handleHistoryRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.history.Remove(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	units, err := s.unitQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	now := s.now()
	data, err := export.Render(format, s.history.List(), units, now)
	metrics.ObserveExport(string(format), err)
	if err != nil {
		s.logger.Error("export failed", "format", format, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidWeight,
		domain.ErrInvalidHeight,
		domain.ErrInvalidDate,
		domain.ErrInvalidWeightUnit,
		domain.ErrInvalidUnitSystem,
		domain.ErrInvalidTheme,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
