package layout

import (
	"image"

	"github.com/tsawler/doczone/model"
)

// CandidateConfig holds configuration for candidate zone extraction.
type CandidateConfig struct {
	// AdaptiveBlockSize is the window size of the adaptive binarization.
	// Default: 15
	AdaptiveBlockSize int

	// AdaptiveC is the constant subtracted from the local mean during
	// binarization. Default: 10
	AdaptiveC int

	// HorizontalKernel is the width of the horizontal closing kernel that
	// fuses characters and words into line fragments. Default: 25
	HorizontalKernel int

	// VerticalKernel is the height of the vertical closing kernel that
	// fuses line fragments into blocks. Default: 15
	VerticalKernel int

	// DilationKernel is the size of the final isotropic dilation that
	// smooths block boundaries. Default: 3
	DilationKernel int
}

// DefaultCandidateConfig returns sensible default configuration.
func DefaultCandidateConfig() CandidateConfig {
	return CandidateConfig{
		AdaptiveBlockSize: 15,
		AdaptiveC:         10,
		HorizontalKernel:  25,
		VerticalKernel:    15,
		DilationKernel:    3,
	}
}

// CandidateExtractor produces raw rectangular candidates likely to contain
// text, without judging semantic validity. Candidates are unordered and
// unfiltered; downstream stages apply selection and meaning.
type CandidateExtractor struct {
	config CandidateConfig
}

// NewCandidateExtractor creates an extractor with default configuration.
func NewCandidateExtractor() *CandidateExtractor {
	return &CandidateExtractor{config: DefaultCandidateConfig()}
}

// NewCandidateExtractorWithConfig creates an extractor with custom
// configuration.
func NewCandidateExtractorWithConfig(config CandidateConfig) *CandidateExtractor {
	return &CandidateExtractor{config: config}
}

// Extract binarizes the normalized image and applies two-stage anisotropic
// morphology: a wide short closing bridges characters into line fragments,
// then a tall narrow closing bridges fragments into paragraph-like blocks.
// A single isotropic operation either merges unrelated columns or fails to
// join word-level text; closing horizontally before vertically approximates
// how readers group glyphs into lines and lines into paragraphs. Connected
// components of the resulting mask become the candidate boxes.
func (e *CandidateExtractor) Extract(normalized *image.Gray) []model.BBox {
	mask := binarizeAdaptive(normalized, e.config.AdaptiveBlockSize, e.config.AdaptiveC)
	mask = closeHorizontal(mask, e.config.HorizontalKernel)
	mask = closeVertical(mask, e.config.VerticalKernel)
	mask = dilateSquare(mask, e.config.DilationKernel)
	return connectedComponents(mask)
}
