package ocr

import (
	"context"
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tsawler/doczone/model"
)

// ArbiterConfig holds configuration for engine arbitration.
type ArbiterConfig struct {
	// EngineTimeout bounds a single engine invocation on a single zone.
	// A timed-out engine is a failure for that zone only. Default: 30s
	EngineTimeout time.Duration

	// ProvisionalTimeout bounds the quick provisional text pass used for
	// semantic classification. Default: 5s
	ProvisionalTimeout time.Duration

	// LowConfidenceThreshold is the normalized confidence below which a
	// zone is flagged for caller-side highlighting. Default: 0.4
	LowConfidenceThreshold float64
}

// DefaultArbiterConfig returns sensible default configuration.
func DefaultArbiterConfig() ArbiterConfig {
	return ArbiterConfig{
		EngineTimeout:          30 * time.Second,
		ProvisionalTimeout:     5 * time.Second,
		LowConfidenceThreshold: 0.4,
	}
}

// Arbiter runs every available engine against each zone and selects the
// result with the best calibrated confidence. Engines are independent and
// run concurrently per zone, each on its own crop; the arbiter waits for
// all of them (bounded by the per-engine timeout) before finalizing a zone.
type Arbiter struct {
	engines     []Engine
	calibration Calibration
	config      ArbiterConfig
}

// NewArbiter creates an arbiter with default configuration.
func NewArbiter(engines []Engine, calibration Calibration) *Arbiter {
	return NewArbiterWithConfig(engines, calibration, DefaultArbiterConfig())
}

// NewArbiterWithConfig creates an arbiter with custom configuration.
func NewArbiterWithConfig(engines []Engine, calibration Calibration, config ArbiterConfig) *Arbiter {
	if calibration == nil {
		calibration = DefaultCalibration()
	}
	if config.EngineTimeout <= 0 {
		config.EngineTimeout = DefaultArbiterConfig().EngineTimeout
	}
	if config.ProvisionalTimeout <= 0 {
		config.ProvisionalTimeout = DefaultArbiterConfig().ProvisionalTimeout
	}
	return &Arbiter{engines: engines, calibration: calibration, config: config}
}

// Engines returns the engines the arbiter will consult.
func (a *Arbiter) Engines() []Engine {
	return a.engines
}

// engineOutcome is one engine's attempt at one zone.
type engineOutcome struct {
	name   string
	result model.RecognitionResult
	err    error
}

// RecognizeZone populates zone.Recognition, zone.SelectedEngine, and
// zone.LowConfidence from all engines' results for the zone's crop. A
// failing engine is omitted from arbitration for this zone only; when every
// engine fails the recognition map is left empty and the selected engine
// unset, which callers observe as a per-zone recognition failure.
func (a *Arbiter) RecognizeZone(ctx context.Context, src image.Image, zone *model.Zone) {
	crop := CropZone(src, zone.BBox)

	outcomes := make([]engineOutcome, len(a.engines))
	var wg sync.WaitGroup
	for i, engine := range a.engines {
		wg.Add(1)
		go func(i int, engine Engine) {
			defer wg.Done()
			outcomes[i] = a.invoke(ctx, engine, crop)
		}(i, engine)
	}
	wg.Wait()

	zone.Recognition = make(map[string]model.RecognitionResult, len(outcomes))

	type scored struct {
		name       string
		normalized float64
		score      float64
	}
	var candidates []scored
	for _, out := range outcomes {
		if out.err != nil || len(out.result.Lines) == 0 {
			continue
		}
		result := out.result
		result.NormalizedConfidence = a.calibration.Normalize(out.name, result.AvgConfidence)
		zone.Recognition[out.name] = result
		candidates = append(candidates, scored{
			name:       out.name,
			normalized: result.NormalizedConfidence,
			score:      result.NormalizedConfidence * Evaluate(result.Lines).Factor(),
		})
	}

	if len(candidates) == 0 {
		zone.SelectedEngine = ""
		zone.LowConfidence = true
		return
	}

	// Highest quality-weighted normalized confidence wins; name order
	// breaks exact ties so arbitration stays deterministic.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].name < candidates[j].name
	})

	best := candidates[0]
	zone.SelectedEngine = best.name
	zone.LowConfidence = best.normalized < a.config.LowConfidenceThreshold
}

// invoke runs one engine on one crop under the per-engine timeout. The
// timeout is enforced from outside the engine as well, so even an engine
// that ignores its context cannot stall the zone past the deadline; its
// late result is discarded.
func (a *Arbiter) invoke(ctx context.Context, engine Engine, crop image.Image) engineOutcome {
	engineCtx, cancel := context.WithTimeout(ctx, a.config.EngineTimeout)
	defer cancel()

	done := make(chan engineOutcome, 1)
	go func() {
		result, err := engine.Recognize(engineCtx, crop)
		done <- engineOutcome{name: engine.Name(), result: result, err: err}
	}()

	select {
	case out := <-done:
		return out
	case <-engineCtx.Done():
		return engineOutcome{
			name: engine.Name(),
			err:  fmt.Errorf("engine %s: %w", engine.Name(), engineCtx.Err()),
		}
	}
}

// ProvisionalText produces a quick best-effort transcription of a crop for
// semantic classification, trying engines in order and returning the first
// non-empty text. It returns "" when no engine yields text in time; the
// classifier then falls back to geometry alone.
func (a *Arbiter) ProvisionalText(ctx context.Context, src image.Image, bbox model.BBox) string {
	crop := CropZone(src, bbox)
	for _, engine := range a.engines {
		provCtx, cancel := context.WithTimeout(ctx, a.config.ProvisionalTimeout)
		result, err := engine.Recognize(provCtx, crop)
		cancel()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(result.Text()); text != "" {
			return text
		}
	}
	return ""
}
