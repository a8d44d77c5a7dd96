package domain

import "context"

// Storage keys. Each is an independent slot overwritten as a whole.
const (
	ThemeKey         = "bmiCalculatorTheme"
	UnitSystemKey    = "bmiCalculatorUnitSystem"
	WeightHistoryKey = "bmiCalculatorWeightHistory"
)

// KeyValueStore is the port for durable string-keyed persistence. Get
// reports found=false for a key that was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SamplingParams are the generation settings sent with a prompt.
type SamplingParams struct {
	Temperature float64
	TopP        float64
	TopK        int
}

// TextGenerator is the port for a remote text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params SamplingParams) (string, error)
}
