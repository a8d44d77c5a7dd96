package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"bmitracker/internal/domain"
)

// PreferencesService owns the current theme and unit system. Every setter
// writes the changed value through to the store.
type PreferencesService struct {
	store  domain.KeyValueStore
	logger *slog.Logger

	mu    sync.RWMutex
	prefs domain.Preferences
}

// NewPreferencesService creates a PreferencesService holding the defaults
// until Load is called.
func NewPreferencesService(store domain.KeyValueStore, logger *slog.Logger) *PreferencesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferencesService{
		store:  store,
		logger: logger,
		prefs:  domain.DefaultPreferences(),
	}
}

// Load reads both preferences from the store. Missing or unrecognised values
// fall back to the defaults; only store failures are returned.
func (s *PreferencesService) Load(ctx context.Context) (domain.Preferences, error) {
	prefs := domain.DefaultPreferences()

	raw, found, err := s.store.Get(ctx, domain.ThemeKey)
	if err != nil {
		return prefs, fmt.Errorf("load theme: %w", err)
	}
	if found {
		if theme, err := domain.ParseTheme(raw); err == nil {
			prefs.Theme = theme
		} else {
			s.logger.Warn("ignoring stored theme", "value", raw)
		}
	}

	raw, found, err = s.store.Get(ctx, domain.UnitSystemKey)
	if err != nil {
		return prefs, fmt.Errorf("load unit system: %w", err)
	}
	if found {
		if units, err := domain.ParseUnitSystem(raw); err == nil {
			prefs.UnitSystem = units
		} else {
			s.logger.Warn("ignoring stored unit system", "value", raw)
		}
	}

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
	return prefs, nil
}

// Current returns a snapshot of the preferences.
func (s *PreferencesService) Current() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetTheme stores a new theme.
func (s *PreferencesService) SetTheme(ctx context.Context, theme domain.Theme) (domain.Preferences, error) {
	theme, err := domain.ParseTheme(string(theme))
	if err != nil {
		return s.Current(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, domain.ThemeKey, string(theme)); err != nil {
		return s.prefs, fmt.Errorf("save theme: %w", err)
	}
	s.prefs.Theme = theme
	s.logger.Debug("theme changed", "theme", theme)
	return s.prefs, nil
}

// ToggleTheme switches between light and dark.
func (s *PreferencesService) ToggleTheme(ctx context.Context) (domain.Preferences, error) {
	return s.SetTheme(ctx, s.Current().Theme.Toggle())
}

// SetUnitSystem stores a new unit system.
func (s *PreferencesService) SetUnitSystem(ctx context.Context, units domain.UnitSystem) (domain.Preferences, error) {
	units, err := domain.ParseUnitSystem(string(units))
	if err != nil {
		return s.Current(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, domain.UnitSystemKey, string(units)); err != nil {
		return s.prefs, fmt.Errorf("save unit system: %w", err)
	}
	s.prefs.UnitSystem = units
	s.logger.Debug("unit system changed", "unitSystem", units)
	return s.prefs, nil
}

// ToggleUnitSystem switches between metric and imperial.
func (s *PreferencesService) ToggleUnitSystem(ctx context.Context) (domain.Preferences, error) {
	return s.SetUnitSystem(ctx, s.Current().UnitSystem.Toggle())
}
