package main

import (
	"context"
	"fmt"

	"bmitracker/internal/adapter/gemini"
	"bmitracker/internal/adapter/memory"
	"bmitracker/internal/adapter/postgres"
	"bmitracker/internal/adapter/redis"
	"bmitracker/internal/adapter/sqlite"
	"bmitracker/internal/app"
	"bmitracker/internal/config"
	"bmitracker/internal/domain"
)

type kvStore interface {
	domain.KeyValueStore
	Close() error
}

func openStore(ctx context.Context, cfg config.StoreConfig) (kvStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverRedis:
		s, err := redis.Open(ctx, cfg.DSN, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// services is the composition root for one command invocation.
type services struct {
	store    kvStore
	prefs    *app.PreferencesService
	history  *app.HistoryService
	insights *app.InsightService
}

func (c *cli) loadServices(ctx context.Context) (*services, error) {
	store, err := openStore(ctx, c.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.cfg.Store.Driver, err)
	}

	s := &services{
		store:   store,
		prefs:   app.NewPreferencesService(store, c.logger),
		history: app.NewHistoryService(store, c.logger),
	}
	if _, err := s.prefs.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	if _, err := s.history.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	var gen domain.TextGenerator
	if c.cfg.Insights.APIKey != "" {
		client, err := gemini.New(gemini.Config{
			APIKey:  c.cfg.Insights.APIKey,
			Model:   c.cfg.Insights.Model,
			BaseURL: c.cfg.Insights.BaseURL,
		})
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		gen = client
	}
	s.insights = app.NewInsightService(gen, gen != nil, c.logger)
	return s, nil
}

func (s *services) Close() error {
	return s.store.Close()
}
