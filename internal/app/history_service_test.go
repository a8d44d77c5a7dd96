package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

func TestHistoryLoad_Corrupt(t *testing.T) {
	data := map[string]string{domain.WeightHistoryKey: "{not json"}
	svc := app.NewHistoryService(mapStore(data), discardLogger())
	h, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h) != 0 {
		t.Fatalf("expected empty history, got %v", h)
	}
}

func TestHistoryLoad_Missing(t *testing.T) {
	svc := app.NewHistoryService(&mockStore{}, discardLogger())
	h, err := svc.Load(context.Background())
	if err != nil || h == nil || len(h) != 0 {
		t.Fatalf("Load() = %v, %v", h, err)
	}
}

func TestHistoryAdd_PersistsWholeList(t *testing.T) {
	data := map[string]string{}
	svc := app.NewHistoryService(mapStore(data), discardLogger())
	ctx := context.Background()

	if _, err := svc.Add(ctx, 90, "2024-01-01", 1.75); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, 85, "2023-06-01", 1.75); err != nil {
		t.Fatal(err)
	}

	stored := domain.DeserializeHistory([]byte(data[domain.WeightHistoryKey]))
	if len(stored) != 2 || stored[0].Date != "2023-06-01" || stored[1].Date != "2024-01-01" {
		t.Fatalf("unexpected stored history: %+v", stored)
	}

	reloaded := app.NewHistoryService(mapStore(data), discardLogger())
	h, _ := reloaded.Load(ctx)
	if len(h) != 2 || h[0].ID != stored[0].ID {
		t.Fatalf("reload mismatch: %+v", h)
	}
}

func TestHistoryAdd_Rejected(t *testing.T) {
	writes := 0
	store := &mockStore{
		setFn: func(_ context.Context, _, _ string) error {
			writes++
			return nil
		},
	}
	svc := app.NewHistoryService(store, discardLogger())
	ctx := context.Background()

	tests := []struct {
		name   string
		weight float64
		height float64
		want   error
	}{
		{"zero weight", 0, 1.8, domain.ErrInvalidWeight},
		{"negative weight", -5, 1.8, domain.ErrInvalidWeight},
		{"zero height", 80, 0, domain.ErrInvalidHeight},
		{"nan height", 80, math.NaN(), domain.ErrInvalidHeight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, tc.weight, "2024-01-01", tc.height); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v; want %v", err, tc.want)
			}
		})
	}
	if writes != 0 || svc.Len() != 0 {
		t.Fatalf("rejected adds changed state: writes=%d len=%d", writes, svc.Len())
	}
}

func TestHistoryAdd_StoreErrorKeepsState(t *testing.T) {
	store := &mockStore{
		setFn: func(_ context.Context, _, _ string) error { return errors.New("quota exceeded") },
	}
	svc := app.NewHistoryService(store, discardLogger())
	if _, err := svc.Add(context.Background(), 80, "2024-01-01", 1.8); err == nil {
		t.Fatal("expected error")
	}
	if svc.Len() != 0 {
		t.Fatal("entry kept despite failed write")
	}
}

func TestHistoryAddMeasured(t *testing.T) {
	svc := app.NewHistoryService(mapStore(map[string]string{}), discardLogger())
	current := domain.Measurement{System: domain.Imperial, HeightFt: 5, HeightIn: 9, Weight: 154}

	entry, err := svc.AddMeasured(context.Background(), 154, "lbs", "2024-02-02", current)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(entry.WeightKg-domain.LbsToKg(154)) > 1e-12 {
		t.Fatalf("weight stored as %v kg", entry.WeightKg)
	}
	want, _ := current.BMI()
	if math.Abs(entry.BMI-want) > 1e-9 {
		t.Fatalf("BMI = %v; want %v", entry.BMI, want)
	}

	if _, err := svc.AddMeasured(context.Background(), 10, "stone", "2024-02-02", current); err == nil {
		t.Fatal("expected unit error")
	}
}

func TestHistoryRemove(t *testing.T) {
	data := map[string]string{}
	svc := app.NewHistoryService(mapStore(data), discardLogger())
	ctx := context.Background()
	entry, _ := svc.Add(ctx, 80, "2024-01-01", 1.8)

	if err := svc.Remove(ctx, "nope"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("err = %v; want ErrEntryNotFound", err)
	}
	if err := svc.Remove(ctx, entry.ID); err != nil {
		t.Fatal(err)
	}
	if svc.Len() != 0 || data[domain.WeightHistoryKey] != "[]" {
		t.Fatalf("entry not removed: %v", data)
	}
}

func TestHistoryChart(t *testing.T) {
	svc := app.NewHistoryService(mapStore(map[string]string{}), discardLogger())
	ctx := context.Background()
	svc.Add(ctx, 75, "2024-01-01", 1.8)
	svc.Add(ctx, 80, "2023-01-01", 1.8)

	imperial := svc.Chart(domain.Imperial)
	if len(imperial) != 2 {
		t.Fatalf("expected 2 points, got %d", len(imperial))
	}
	if imperial[0].Date != "2023-01-01" || imperial[0].Unit != "lbs" || imperial[0].Weight != 176.4 {
		t.Fatalf("unexpected point: %+v", imperial[0])
	}
	if imperial[1].Weight != 165.3 || imperial[1].BMI != 23.1 {
		t.Fatalf("unexpected point: %+v", imperial[1])
	}

	metric := svc.Chart(domain.Metric)
	if metric[1].Weight != 75 || metric[1].Unit != "kg" {
		t.Fatalf("unexpected point: %+v", metric[1])
	}
}
