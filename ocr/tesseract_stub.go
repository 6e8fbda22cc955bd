//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"image"

	"github.com/tsawler/doczone/model"
)

// EngineTesseract is the name of the Tesseract engine.
const EngineTesseract = "tesseract"

// TesseractAvailable reports whether Tesseract support was compiled in.
const TesseractAvailable = false

// ErrOCRNotEnabled is returned when Tesseract recognition is requested but
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags ocr")

// TesseractEngine is the stub compiled without the "ocr" build tag. Every
// recognition attempt fails with ErrOCRNotEnabled, which the arbiter
// absorbs as a per-zone engine failure.
type TesseractEngine struct{}

// NewTesseractEngine creates the stub engine. The language argument is
// accepted for signature compatibility with the OCR-enabled build.
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{}
}

// Name returns the engine name used in recognition maps and calibration.
func (e *TesseractEngine) Name() string {
	return EngineTesseract
}

// Recognize always fails with ErrOCRNotEnabled.
func (e *TesseractEngine) Recognize(ctx context.Context, crop image.Image) (model.RecognitionResult, error) {
	return model.RecognitionResult{}, ErrOCRNotEnabled
}
