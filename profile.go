package doczone

import (
	"github.com/tsawler/doczone/layout"
	"github.com/tsawler/doczone/model"
	"github.com/tsawler/doczone/preprocess"
)

// Profile bundles the stage configurations tuned for one kind of document.
// A profile only biases detection and classification; it never changes the
// pipeline's structure or output contract.
type Profile struct {
	Preprocess preprocess.Config
	Candidates layout.CandidateConfig
	Filter     layout.FilterConfig
	Classifier layout.ClassifierConfig
}

// DefaultProfile returns the balanced profile used when no document-type
// hint is given.
func DefaultProfile() Profile {
	return Profile{
		Preprocess: preprocess.DefaultConfig(),
		Candidates: layout.DefaultCandidateConfig(),
		Filter:     layout.DefaultFilterConfig(),
		Classifier: layout.DefaultClassifierConfig(),
	}
}

// ProfileForHint returns the profile tuned for a document-type hint. Known
// hints are "invoice", "form", "newspaper", "manuscript", "table", and
// "photo"; anything else falls back to the default profile, so hints are
// always safe to pass through from user input.
func ProfileForHint(hint string) Profile {
	p := DefaultProfile()

	switch hint {
	case "invoice":
		// Dense small print with amounts and references scattered across
		// the page; smaller zones matter.
		p.Filter.MinAreaRatio = 0.0008
		p.Filter.MinWidth = 35
		p.Filter.MinHeight = 12
		p.Candidates.HorizontalKernel = 16
		p.Candidates.AdaptiveBlockSize = 13
		p.Preprocess.ClipLimit = 3.2
		p.Classifier.TypeWeights = map[model.ZoneType]float64{
			model.ZonePrice:     1.2,
			model.ZoneDate:      1.2,
			model.ZoneReference: 1.2,
		}

	case "form":
		// Short labeled fields that must not fuse into one block.
		p.Filter.MinAreaRatio = 0.0006
		p.Filter.MinWidth = 30
		p.Filter.MinHeight = 12
		p.Candidates.HorizontalKernel = 14
		p.Candidates.VerticalKernel = 8
		p.Candidates.AdaptiveBlockSize = 11
		p.Classifier.TypeWeights = map[model.ZoneType]float64{
			model.ZoneFormField: 1.3,
		}

	case "newspaper":
		// Long narrow columns of dense print.
		p.Filter.MinAspectRatio = 0.3
		p.Filter.MaxAspectRatio = 15
		p.Filter.MinHeight = 15
		p.Candidates.HorizontalKernel = 18
		p.Candidates.VerticalKernel = 18
		p.Preprocess.ClipLimit = 4.0
		p.Classifier.TypeWeights = map[model.ZoneType]float64{
			model.ZoneTitle:     1.2,
			model.ZoneParagraph: 1.1,
		}

	case "manuscript":
		// Irregular handwriting; stronger contrast, gentler denoising, and
		// wider word connection.
		p.Filter.MinAreaRatio = 0.0004
		p.Filter.MinWidth = 25
		p.Filter.MinHeight = 12
		p.Candidates.AdaptiveBlockSize = 17
		p.Candidates.VerticalKernel = 10
		p.Preprocess.ClipLimit = 4.2
		p.Preprocess.BilateralDiameter = 11

	case "table":
		// Narrow short cells with visible borders; keep cells separate.
		p.Filter.MinAreaRatio = 0.0003
		p.Filter.MinWidth = 20
		p.Filter.MinHeight = 10
		p.Candidates.HorizontalKernel = 8
		p.Candidates.VerticalKernel = 6
		p.Candidates.AdaptiveBlockSize = 11
		p.Classifier.TypeWeights = map[model.ZoneType]float64{
			model.ZoneTable: 1.5,
		}

	case "photo":
		// Photographed pages with uneven lighting and sensor noise.
		p.Filter.MinWidth = 35
		p.Filter.MinHeight = 15
		p.Candidates.HorizontalKernel = 22
		p.Candidates.VerticalKernel = 14
		p.Candidates.AdaptiveC = 12
		p.Preprocess.ClipLimit = 4.5
		p.Preprocess.BilateralDiameter = 13
		p.Preprocess.BilateralSigmaColor = 90
		p.Preprocess.BilateralSigmaSpace = 90
	}

	return p
}

// Hints lists the document-type hints with dedicated profiles.
func Hints() []string {
	return []string{"invoice", "form", "newspaper", "manuscript", "table", "photo"}
}
