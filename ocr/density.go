package ocr

import (
	"context"
	"errors"
	"image"

	"github.com/tsawler/doczone/model"
	"github.com/tsawler/doczone/preprocess"
)

// EngineDensity is the name of the built-in density engine.
const EngineDensity = "density"

// errNoTextDetected reports a crop with no text-like ink rows.
var errNoTextDetected = errors.New("no text-like rows detected")

// DensityEngine is a dependency-free fallback engine. It does not read
// glyphs; it detects text-shaped line bands from the crop's horizontal ink
// projection and reports density-derived confidence with empty line text.
// Its purpose is to keep zones populated and honestly low-confidence in
// builds where no real engine is available.
type DensityEngine struct{}

// NewDensityEngine creates the fallback engine.
func NewDensityEngine() *DensityEngine {
	return &DensityEngine{}
}

// Name returns the engine name used in recognition maps and calibration.
func (e *DensityEngine) Name() string {
	return EngineDensity
}

// Recognize estimates text lines from ink density. Confidence is on a 0-100
// scale. It fails when the crop contains no text-like rows.
func (e *DensityEngine) Recognize(ctx context.Context, crop image.Image) (model.RecognitionResult, error) {
	if err := ctx.Err(); err != nil {
		return model.RecognitionResult{}, err
	}

	gray := preprocess.ToGray(crop)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w == 0 || h == 0 {
		return model.RecognitionResult{}, errNoTextDetected
	}

	threshold := meanIntensity(gray)

	// Horizontal projection: fraction of ink per row.
	rowInk := make([]float64, h)
	for y := 0; y < h; y++ {
		ink := 0
		for x := 0; x < w; x++ {
			if gray.Pix[y*gray.Stride+x] < threshold {
				ink++
			}
		}
		rowInk[y] = float64(ink) / float64(w)
	}

	// Group consecutive inked rows into line bands.
	const minRowInk = 0.05
	var lines []model.Line
	bandStart := -1
	var bandInk float64
	flush := func(end int) {
		if bandStart < 0 {
			return
		}
		height := end - bandStart
		if height >= 2 {
			density := bandInk / float64(height)
			conf := 50 + density*50
			if conf > 85 {
				conf = 85
			}
			lines = append(lines, model.Line{Confidence: conf})
		}
		bandStart = -1
		bandInk = 0
	}
	for y := 0; y < h; y++ {
		if rowInk[y] > minRowInk {
			if bandStart < 0 {
				bandStart = y
			}
			bandInk += rowInk[y]
		} else {
			flush(y)
		}
	}
	flush(h)

	if len(lines) == 0 {
		return model.RecognitionResult{}, errNoTextDetected
	}

	return model.RecognitionResult{
		Lines:         lines,
		AvgConfidence: avgLineConfidence(lines),
	}, nil
}

// meanIntensity returns the mean gray level, used as a crude binarization
// threshold.
func meanIntensity(gray *image.Gray) uint8 {
	var sum int64
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum += int64(gray.Pix[y*gray.Stride+x])
		}
	}
	return uint8(sum / int64(w*h))
}
