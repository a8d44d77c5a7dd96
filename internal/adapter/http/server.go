package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"bmitracker/internal/app"
)

// Options configures optional Server behaviour.
type Options struct {
	// CORSOrigins lists browser origins allowed to call the API. Empty
	// disables CORS headers.
	CORSOrigins []string
	// PasswordHash is a bcrypt hash guarding /api. Empty disables the guard.
	PasswordHash string
	Logger       *slog.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	prefs    *app.PreferencesService
	history  *app.HistoryService
	insights *app.InsightService
	tracker  *app.InsightTracker

	logger       *slog.Logger
	corsOrigins  []string
	passwordHash []byte
	now          func() time.Time
}

// New creates a Server wired to the given application services.
func New(prefs *app.PreferencesService, history *app.HistoryService, insights *app.InsightService, tracker *app.InsightTracker, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if tracker == nil {
		tracker = &app.InsightTracker{}
	}
	s := &Server{
		prefs:       prefs,
		history:     history,
		insights:    insights,
		tracker:     tracker,
		logger:      logger,
		corsOrigins: opts.CORSOrigins,
		now:         time.Now,
	}
	if opts.PasswordHash != "" {
		s.passwordHash = []byte(opts.PasswordHash)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", s.passwordMiddleware(promhttp.Handler())).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	api.HandleFunc("/bmi", s.handleBMI).Methods(http.MethodPost)
	api.HandleFunc("/categories", s.handleCategories).Methods(http.MethodGet)

	api.HandleFunc("/history", s.handleHistoryList).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleHistoryAdd).Methods(http.MethodPost)
	api.HandleFunc("/history/export", s.handleHistoryExport).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", s.handleHistoryRemove).Methods(http.MethodDelete)

	api.HandleFunc("/preferences", s.handlePreferencesGet).Methods(http.MethodGet)
	api.HandleFunc("/preferences", s.handlePreferencesPut).Methods(http.MethodPut)

	api.HandleFunc("/insights", s.handleInsights).Methods(http.MethodPost)
	api.HandleFunc("/insights/latest", s.handleInsightsLatest).Methods(http.MethodGet)

	api.Use(s.passwordMiddleware)

	var h http.Handler = withNoCache(r)
	if len(s.corsOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}).Handler(h)
	}
	return s.loggingMiddleware(h)
}
