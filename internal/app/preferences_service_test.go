package app_test

import (
	"context"
	"errors"
	"testing"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

func TestPreferencesLoad_Defaults(t *testing.T) {
	svc := app.NewPreferencesService(&mockStore{}, discardLogger())
	prefs, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs != domain.DefaultPreferences() {
		t.Fatalf("prefs = %+v; want defaults", prefs)
	}
}

func TestPreferencesLoad_StoredValues(t *testing.T) {
	tests := []struct {
		name string
		data map[string]string
		want domain.Preferences
	}{
		{
			name: "both stored",
			data: map[string]string{domain.ThemeKey: "dark", domain.UnitSystemKey: "imperial"},
			want: domain.Preferences{Theme: domain.Dark, UnitSystem: domain.Imperial},
		},
		{
			name: "corrupt theme falls back",
			data: map[string]string{domain.ThemeKey: "sepia", domain.UnitSystemKey: "imperial"},
			want: domain.Preferences{Theme: domain.Light, UnitSystem: domain.Imperial},
		},
		{
			name: "corrupt units fall back",
			data: map[string]string{domain.ThemeKey: "dark", domain.UnitSystemKey: "stones"},
			want: domain.Preferences{Theme: domain.Dark, UnitSystem: domain.Metric},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := app.NewPreferencesService(mapStore(tc.data), discardLogger())
			got, err := svc.Load(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want || svc.Current() != tc.want {
				t.Fatalf("prefs = %+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestPreferencesLoad_StoreError(t *testing.T) {
	store := &mockStore{
		getFn: func(_ context.Context, _ string) (string, bool, error) {
			return "", false, errors.New("disk gone")
		},
	}
	svc := app.NewPreferencesService(store, discardLogger())
	if _, err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestPreferencesToggles_Persist(t *testing.T) {
	data := map[string]string{}
	svc := app.NewPreferencesService(mapStore(data), discardLogger())
	ctx := context.Background()

	prefs, err := svc.ToggleTheme(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Theme != domain.Dark || data[domain.ThemeKey] != "dark" {
		t.Fatalf("theme not persisted: %+v %v", prefs, data)
	}

	prefs, err = svc.ToggleUnitSystem(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if prefs.UnitSystem != domain.Imperial || data[domain.UnitSystemKey] != "imperial" {
		t.Fatalf("unit system not persisted: %+v %v", prefs, data)
	}

	reloaded := app.NewPreferencesService(mapStore(data), discardLogger())
	got, _ := reloaded.Load(ctx)
	if got != prefs {
		t.Fatalf("reloaded %+v; want %+v", got, prefs)
	}
}

func TestPreferencesSet_Invalid(t *testing.T) {
	store := &mockStore{
		setFn: func(_ context.Context, _, _ string) error {
			t.Fatal("store must not be written")
			return nil
		},
	}
	svc := app.NewPreferencesService(store, discardLogger())
	if _, err := svc.SetTheme(context.Background(), "sepia"); !errors.Is(err, domain.ErrInvalidTheme) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.SetUnitSystem(context.Background(), "stones"); !errors.Is(err, domain.ErrInvalidUnitSystem) {
		t.Fatalf("err = %v", err)
	}
}

func TestPreferencesSet_StoreErrorKeepsState(t *testing.T) {
	store := &mockStore{
		setFn: func(_ context.Context, _, _ string) error { return errors.New("read-only") },
	}
	svc := app.NewPreferencesService(store, discardLogger())
	if _, err := svc.SetTheme(context.Background(), domain.Dark); err == nil {
		t.Fatal("expected error")
	}
	if svc.Current().Theme != domain.Light {
		t.Fatal("theme changed despite failed write")
	}
}
