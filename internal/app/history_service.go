package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"bmitracker/internal/domain"
	"bmitracker/internal/metrics"
)

// HistoryService encapsulates weight-history use cases. The history is kept
// in memory and the whole list is rewritten to the store on every change.
type HistoryService struct {
	store  domain.KeyValueStore
	logger *slog.Logger

	mu      sync.RWMutex
	history domain.History
}

// NewHistoryService creates a HistoryService with an empty history until
// Load is called.
func NewHistoryService(store domain.KeyValueStore, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{store: store, logger: logger, history: domain.History{}}
}

// Load replaces the in-memory history with the stored one. A corrupt stored
// value is logged and treated as an empty history.
func (s *HistoryService) Load(ctx context.Context) (domain.History, error) {
	raw, found, err := s.store.Get(ctx, domain.WeightHistoryKey)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	h := domain.History{}
	if found {
		h = domain.DeserializeHistory([]byte(raw))
		if len(h) == 0 && raw != "[]" && raw != "" {
			s.logger.Warn("stored weight history unreadable, starting empty", "bytes", len(raw))
		}
	}

	s.mu.Lock()
	s.history = h
	s.mu.Unlock()
	return s.List(), nil
}

// List returns a copy of the history in ascending date order.
func (s *HistoryService) List() domain.History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(domain.History{}, s.history...)
}

// Len returns the number of stored entries.
func (s *HistoryService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Add records a weight in kilograms for date, computing its BMI from heightM.
func (s *HistoryService) Add(ctx context.Context, weightKg float64, date string, heightM float64) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, entry, err := s.history.Add(weightKg, date, heightM)
	if err != nil {
		metrics.ObserveHistoryWrite("add", err)
		return domain.HistoryEntry{}, err
	}
	if err := s.save(ctx, next); err != nil {
		metrics.ObserveHistoryWrite("add", err)
		return domain.HistoryEntry{}, err
	}
	s.history = next
	metrics.ObserveHistoryWrite("add", nil)
	s.logger.Info("history entry added", "id", entry.ID, "date", entry.Date)
	return entry, nil
}

// AddMeasured records a weight expressed in the given unit ("kg", "lb" or
// "lbs") using the height from the current measurement.
func (s *HistoryService) AddMeasured(ctx context.Context, weight float64, unit, date string, current domain.Measurement) (domain.HistoryEntry, error) {
	weightKg := weight
	switch unit {
	case "", "kg":
	case "lb", "lbs":
		weightKg = domain.LbsToKg(weight)
	default:
		return domain.HistoryEntry{}, fmt.Errorf("%w, got %q", domain.ErrInvalidWeightUnit, unit)
	}
	return s.Add(ctx, weightKg, date, current.HeightM())
}

// Remove deletes the entry with the given ID.
func (s *HistoryService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.history.Remove(id)
	if !ok {
		return domain.ErrEntryNotFound
	}
	if err := s.save(ctx, next); err != nil {
		metrics.ObserveHistoryWrite("remove", err)
		return err
	}
	s.history = next
	metrics.ObserveHistoryWrite("remove", nil)
	s.logger.Info("history entry removed", "id", id)
	return nil
}

// ChartPoint is one history entry expressed in a display unit.
type ChartPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
	BMI    float64 `json:"bmi"`
}

// Chart returns the history as chart points with weights in the display unit
// of the given unit system, both weight and BMI rounded to one decimal.
func (s *HistoryService) Chart(units domain.UnitSystem) []ChartPoint {
	h := s.List()
	label := units.WeightLabel()
	points := make([]ChartPoint, 0, len(h))
	for _, e := range h {
		w := e.WeightKg
		if units == domain.Imperial {
			w = domain.KgToLbs(w)
		}
		points = append(points, ChartPoint{
			Date:   e.Date,
			Weight: round1(w),
			Unit:   label,
			BMI:    round1(e.BMI),
		})
	}
	return points
}

func (s *HistoryService) save(ctx context.Context, h domain.History) error {
	data, err := h.Serialize()
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.store.Set(ctx, domain.WeightHistoryKey, string(data)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
