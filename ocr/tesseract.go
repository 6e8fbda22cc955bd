//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/doczone/model"
)

// EngineTesseract is the name of the Tesseract engine.
const EngineTesseract = "tesseract"

// TesseractAvailable reports whether Tesseract support was compiled in.
const TesseractAvailable = true

// TesseractEngine recognizes zone text through the system Tesseract
// installation via gosseract. Confidence is Tesseract's native 0-100 scale.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates a Tesseract engine. Multiple languages can be
// specified as a "+" separated string (e.g. "fra+eng"); empty means
// Tesseract's default ("eng").
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{language: language}
}

// Name returns the engine name used in recognition maps and calibration.
func (e *TesseractEngine) Name() string {
	return EngineTesseract
}

// Recognize runs Tesseract on the crop. A fresh gosseract client is created
// per call; gosseract clients are not safe for concurrent use and the
// arbiter invokes engines from multiple goroutines.
func (e *TesseractEngine) Recognize(ctx context.Context, crop image.Image) (model.RecognitionResult, error) {
	if err := ctx.Err(); err != nil {
		return model.RecognitionResult{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return model.RecognitionResult{}, fmt.Errorf("encoding crop: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.language != "" {
		if err := client.SetLanguage(strings.Split(e.language, "+")...); err != nil {
			return model.RecognitionResult{}, fmt.Errorf("setting language: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return model.RecognitionResult{}, fmt.Errorf("setting segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return model.RecognitionResult{}, fmt.Errorf("setting image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return model.RecognitionResult{}, fmt.Errorf("recognition failed: %w", err)
	}

	var lines []model.Line
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		lines = append(lines, model.Line{Text: text, Confidence: box.Confidence})
	}
	if len(lines) == 0 {
		return model.RecognitionResult{}, fmt.Errorf("empty recognition output")
	}

	return model.RecognitionResult{
		Lines:         lines,
		AvgConfidence: avgLineConfidence(lines),
	}, nil
}
