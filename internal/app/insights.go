package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"bmitracker/internal/domain"
	"bmitracker/internal/metrics"
)

// Messages returned in place of generated text.
const (
	MsgNeedBMI         = "Please calculate your BMI first to get insights."
	MsgNeedInputs      = "Please enter valid height and weight to get insights."
	MsgMissingAPIKey   = "Personalized insights are unavailable at this moment. API key is missing."
	MsgInvalidAPIKey   = "Could not fetch insights. The API key may be invalid or missing."
	MsgInsightsFailure = "Sorry, I couldn't fetch personalized insights at this moment. Please try again later."
)

// InsightSampling are the generation settings sent with every prompt.
var InsightSampling = domain.SamplingParams{Temperature: 0.7, TopP: 0.9, TopK: 40}

// InsightRequest carries the values embedded in the prompt. Weight is in the
// display unit of UnitSystem. BMI is nil when none has been computed.
type InsightRequest struct {
	BMI        *float64          `json:"bmi"`
	UnitSystem domain.UnitSystem `json:"unitSystem"`
	Weight     float64           `json:"weight"`
	HeightCm   float64           `json:"heightCm,omitempty"`
	HeightFt   float64           `json:"heightFt,omitempty"`
	HeightIn   float64           `json:"heightIn,omitempty"`
}

// RequestFor builds an InsightRequest from a measurement and its result.
func RequestFor(m domain.Measurement, r Result) InsightRequest {
	req := InsightRequest{
		UnitSystem: m.System,
		Weight:     m.Weight,
		HeightCm:   m.HeightCm,
		HeightFt:   m.HeightFt,
		HeightIn:   m.HeightIn,
	}
	if r.Valid {
		bmi := r.BMI
		req.BMI = &bmi
	}
	return req
}

func (r InsightRequest) valid() bool {
	if r.Weight <= 0 {
		return false
	}
	if r.UnitSystem == domain.Imperial {
		return r.HeightFt > 0
	}
	return r.HeightCm > 0
}

// BuildPrompt renders the prompt text for r.
func BuildPrompt(r InsightRequest) string {
	var height string
	if r.UnitSystem == domain.Imperial {
		height = fmt.Sprintf("%s ft %s in", jsNumber(r.HeightFt), jsNumber(r.HeightIn))
	} else {
		height = jsNumber(r.HeightCm) + " cm"
	}
	var bmi float64
	if r.BMI != nil {
		bmi = *r.BMI
	}
	return fmt.Sprintf(
		"I am an adult. My BMI is %.1f. My current weight is %.1f %s and my height is %s. "+
			"Provide 2-3 concise, actionable, and positive health insights or lifestyle tips based on this information. "+
			"Keep the total response under 80 words. Do not give medical advice. Structure the response as a short paragraph.",
		bmi, r.Weight, r.UnitSystem.WeightLabel(), height,
	)
}

func jsNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// InsightService asks a text generator for a short paragraph of advice.
// Every failure is turned into a fixed user-facing message.
type InsightService struct {
	gen    domain.TextGenerator
	hasKey bool
	logger *slog.Logger
}

// NewInsightService creates an InsightService. When hasKey is false no
// request is ever sent.
func NewInsightService(gen domain.TextGenerator, hasKey bool, logger *slog.Logger) *InsightService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightService{gen: gen, hasKey: hasKey && gen != nil, logger: logger}
}

// Request returns generated insight text or a fallback message. It never
// fails.
func (s *InsightService) Request(ctx context.Context, r InsightRequest) string {
	if r.BMI == nil {
		return MsgNeedBMI
	}
	if !r.valid() {
		return MsgNeedInputs
	}
	if !s.hasKey {
		metrics.ObserveInsight(metrics.ResultFallback, 0)
		return MsgMissingAPIKey
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, BuildPrompt(r), InsightSampling)
	if err != nil {
		metrics.ObserveInsight(metrics.ResultError, time.Since(start))
		s.logger.Error("insight request failed", "err", err)
		if strings.Contains(err.Error(), "API key not valid") {
			return MsgInvalidAPIKey
		}
		return MsgInsightsFailure
	}
	metrics.ObserveInsight(metrics.ResultSuccess, time.Since(start))
	return strings.TrimSpace(text)
}

// InsightTracker keeps the most recent insight text. Each request takes a
// token from Begin; a response is applied only if no newer request has begun
// since, so a slow earlier response cannot replace a later one.
type InsightTracker struct {
	mu      sync.Mutex
	latest  uint64
	applied uint64
	text    string
}

// Begin issues the token for a new request.
func (t *InsightTracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest++
	return t.latest
}

// Resolve applies text if token is still the latest one issued.
func (t *InsightTracker) Resolve(token uint64, text string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token != t.latest {
		return false
	}
	t.text = text
	t.applied = token
	return true
}

// Latest returns the applied text and the token it was applied under, or
// zero when nothing has been applied.
func (t *InsightTracker) Latest() (string, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text, t.applied
}
