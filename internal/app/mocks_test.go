package app_test

import (
	"context"
	"io"
	"log/slog"

	"bmitracker/internal/domain"
)

type mockStore struct {
	getFn func(ctx context.Context, key string) (string, bool, error)
	setFn func(ctx context.Context, key, value string) error
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return "", false, nil
}

func (m *mockStore) Set(ctx context.Context, key, value string) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

// mapStore is a mockStore backed by a map, for tests that need round trips.
func mapStore(data map[string]string) *mockStore {
	return &mockStore{
		getFn: func(_ context.Context, key string) (string, bool, error) {
			v, ok := data[key]
			return v, ok, nil
		},
		setFn: func(_ context.Context, key, value string) error {
			data[key] = value
			return nil
		},
	}
}

type mockGenerator struct {
	generateFn func(ctx context.Context, prompt string, p domain.SamplingParams) (string, error)
	calls      int
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, p domain.SamplingParams) (string, error) {
	m.calls++
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt, p)
	}
	return "", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
