package adapthttp

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestWriteJSON_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, map[string]any{"value": math.Inf(1)})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %q", w.Body.String())
	}
	if body["error"] == nil {
		t.Fatalf("expected an error message, got %v", body)
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"ok":true}` {
		t.Fatalf("body = %q", got)
	}
}

func TestMetricsRequiresPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s := New(nil, nil, nil, nil, Options{
		PasswordHash: string(hash),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	h := s.Handler()

	tests := []struct {
		name     string
		path     string
		password string
		want     int
	}{
		{"metrics without credentials", "/metrics", "", http.StatusUnauthorized},
		{"metrics with password", "/metrics", "hunter2", http.StatusOK},
		{"health stays open", "/api/health", "", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.password != "" {
				req.SetBasicAuth("anyone", tc.password)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d; want %d", w.Code, tc.want)
			}
		})
	}
}
