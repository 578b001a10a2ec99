package assistant

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mediassist/clinical-service/internal/genai"
)

// Generator is the slice of the provider client the runner needs.
type Generator interface {
	GenerateContent(ctx context.Context, req genai.GenerateRequest) (string, error)
	Configured() bool
}

// RunnerMetricsRecorder interface for recording model attempt metrics
type RunnerMetricsRecorder interface {
	RecordModelAttempt(ctx context.Context, model string, durationMs float64, success bool)
	RecordFallbackExhausted(ctx context.Context)
}

// DefaultModels is the candidate list tried strictly in order: fast
// primary, cheaper variant, higher-capability variant, legacy variant.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.5-pro",
	"gemini-1.5-flash",
}

// Runner executes one generation request against the candidate list,
// one attempt per model, first non-empty text wins.
type Runner struct {
	gen     Generator
	models  []string
	metrics RunnerMetricsRecorder
}

func NewRunner(gen Generator) *Runner {
	return &Runner{gen: gen, models: DefaultModels}
}

// WithModels overrides the candidate list. Order is preserved as given.
func (r *Runner) WithModels(models []string) *Runner {
	if len(models) > 0 {
		r.models = models
	}
	return r
}

// WithMetrics attaches a metrics recorder.
func (r *Runner) WithMetrics(m RunnerMetricsRecorder) *Runner {
	r.metrics = m
	return r
}

// Generate tries each candidate model once, in order. A per-model error
// or empty result advances to the next candidate. Exhaustion returns an
// error wrapping the last underlying failure; the runner never converts
// failures to response text.
func (r *Runner) Generate(ctx context.Context, parts []genai.Part, systemInstruction string, temperature float64) (string, error) {
	if !r.gen.Configured() {
		return "", ErrNotConfigured
	}

	var lastErr error
	for _, model := range r.models {
		start := time.Now()
		text, err := r.gen.GenerateContent(ctx, genai.GenerateRequest{
			Model:             model,
			Parts:             parts,
			SystemInstruction: systemInstruction,
			Temperature:       temperature,
		})
		if r.metrics != nil {
			r.metrics.RecordModelAttempt(ctx, model, float64(time.Since(start).Milliseconds()), err == nil && text != "")
		}
		if err != nil {
			log.Printf("[RUNNER] Model %s failed: %v", model, err)
			lastErr = err
			continue
		}
		if text == "" {
			log.Printf("[RUNNER] Model %s returned empty response", model)
			continue
		}
		return text, nil
	}

	if r.metrics != nil {
		r.metrics.RecordFallbackExhausted(ctx)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("unknown error")
	}
	return "", fmt.Errorf("%w: %v", ErrModelsExhausted, lastErr)
}
