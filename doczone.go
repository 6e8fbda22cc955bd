// Package doczone detects, classifies, and reads text zones in scanned
// document images. It normalizes the raster, extracts text-block candidates
// with morphological analysis, classifies each zone semantically, resolves a
// human reading order, and arbitrates recognition across every available OCR
// engine per zone.
//
// Basic usage:
//
//	doc, err := doczone.New().Process(ctx, img)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(doc.Text())
//
// With options:
//
//	doc, err := doczone.New(
//	    doczone.WithHint("invoice"),
//	    doczone.WithLanguage("fra+eng"),
//	).ProcessBytes(ctx, data)
//
// For advanced use cases, the lower-level layout and ocr packages are also
// available.
package doczone

import (
	"io"
	"log/slog"

	"github.com/tsawler/doczone/layout"
	"github.com/tsawler/doczone/ocr"
)

// Processor runs the full zone-detection and recognition pipeline. A
// Processor is immutable after New and safe for concurrent use; each Process
// call builds its own per-run stage instances.
type Processor struct {
	logger      *slog.Logger
	profile     Profile
	engines     []ocr.Engine
	language    string
	calibration ocr.Calibration
	arbiterCfg  ocr.ArbiterConfig
	mergeCfg    layout.MergeConfig
	orderCfg    layout.ReadingOrderConfig
}

// New creates a Processor with the default profile and the bundled engines,
// then applies the given options.
//
// Example:
//
//	p := doczone.New(doczone.WithHint("form"))
func New(opts ...Option) *Processor {
	p := &Processor{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		profile:     DefaultProfile(),
		calibration: ocr.DefaultCalibration(),
		arbiterCfg:  ocr.DefaultArbiterConfig(),
		mergeCfg:    layout.DefaultMergeConfig(),
		orderCfg:    layout.DefaultReadingOrderConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.engines == nil {
		p.engines = defaultEngines(p.language)
	}
	return p
}

// Engines returns the recognition engines the processor consults, in
// provisional-pass preference order.
func (p *Processor) Engines() []ocr.Engine {
	return p.engines
}

// defaultEngines returns the bundled engine set: Tesseract when compiled in,
// and the density fallback so arbitration always has at least one engine.
func defaultEngines(language string) []ocr.Engine {
	var engines []ocr.Engine
	if ocr.TesseractAvailable {
		engines = append(engines, ocr.NewTesseractEngine(language))
	}
	engines = append(engines, ocr.NewDensityEngine())
	return engines
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := doczone.Must(doczone.New().Process(ctx, img))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
