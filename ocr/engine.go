package ocr

import (
	"context"
	"image"

	"github.com/tsawler/doczone/model"
)

// Engine is the capability interface every recognition backend implements.
// Engines are opaque: the arbiter depends only on this interface, never on a
// specific engine's internals.
//
// Recognize receives a cropped zone image and returns recognized text lines
// with per-line confidence on the engine's own native scale. Implementations
// must honor ctx cancellation and be safe for concurrent use across zones.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, crop image.Image) (model.RecognitionResult, error)
}

// avgLineConfidence computes the mean confidence across lines on the
// engine's native scale.
func avgLineConfidence(lines []model.Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	var sum float64
	for _, ln := range lines {
		sum += ln.Confidence
	}
	return sum / float64(len(lines))
}
