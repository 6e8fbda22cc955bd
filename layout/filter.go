package layout

import "github.com/tsawler/doczone/model"

// FilterConfig holds the geometric plausibility bounds. Area bounds are
// ratios of the full image area so the filter stays resolution-independent;
// width and height minimums catch elongated slivers that clear the area
// threshold anyway.
type FilterConfig struct {
	// MinAreaRatio is the minimum candidate area as a fraction of image
	// area. Default: 0.001 (0.1%)
	MinAreaRatio float64

	// MaxAreaRatio is the maximum candidate area as a fraction of image
	// area. Default: 0.8
	MaxAreaRatio float64

	// MinWidth is the minimum candidate width in pixels. Default: 50
	MinWidth int

	// MinHeight is the minimum candidate height in pixels. Default: 20
	MinHeight int

	// MinAspectRatio is the minimum width/height ratio. Default: 0.1
	MinAspectRatio float64

	// MaxAspectRatio is the maximum width/height ratio. Default: 20
	MaxAspectRatio float64
}

// DefaultFilterConfig returns sensible default configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinAreaRatio:   0.001,
		MaxAreaRatio:   0.8,
		MinWidth:       50,
		MinHeight:      20,
		MinAspectRatio: 0.1,
		MaxAspectRatio: 20,
	}
}

// GeometricFilter rejects candidates implausible as text regions using only
// geometry, never pixel content, which keeps the stage cheap and
// engine-independent.
type GeometricFilter struct {
	config FilterConfig
}

// NewGeometricFilter creates a filter with default configuration.
func NewGeometricFilter() *GeometricFilter {
	return &GeometricFilter{config: DefaultFilterConfig()}
}

// NewGeometricFilterWithConfig creates a filter with custom configuration.
func NewGeometricFilterWithConfig(config FilterConfig) *GeometricFilter {
	return &GeometricFilter{config: config}
}

// Keep reports whether a single candidate passes every geometric rule.
// All bounds are inclusive: a candidate sitting exactly on a threshold is
// kept.
func (f *GeometricFilter) Keep(candidate model.BBox, imageWidth, imageHeight int) bool {
	if !candidate.Valid() || imageWidth <= 0 || imageHeight <= 0 {
		return false
	}

	imageArea := float64(imageWidth) * float64(imageHeight)
	areaRatio := float64(candidate.Area()) / imageArea

	if areaRatio < f.config.MinAreaRatio || areaRatio > f.config.MaxAreaRatio {
		return false
	}
	if candidate.Width() < f.config.MinWidth || candidate.Height() < f.config.MinHeight {
		return false
	}
	aspect := candidate.AspectRatio()
	if aspect < f.config.MinAspectRatio || aspect > f.config.MaxAspectRatio {
		return false
	}
	return true
}

// Apply returns the candidates that pass every rule, preserving input
// order. The result is always a subset of the input; filtering never adds
// or alters boxes.
func (f *GeometricFilter) Apply(candidates []model.BBox, imageWidth, imageHeight int) []model.BBox {
	kept := make([]model.BBox, 0, len(candidates))
	for _, c := range candidates {
		if f.Keep(c, imageWidth, imageHeight) {
			kept = append(kept, c)
		}
	}
	return kept
}
