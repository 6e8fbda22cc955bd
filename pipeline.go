package doczone

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/tsawler/doczone/imgutil"
	"github.com/tsawler/doczone/layout"
	"github.com/tsawler/doczone/model"
	"github.com/tsawler/doczone/ocr"
	"github.com/tsawler/doczone/preprocess"
)

// Final validation bounds: after merging, zones whose area ratio leaves this
// range are discarded along with zones classified as noise.
const (
	minFinalAreaRatio = 0.0001
	maxFinalAreaRatio = 0.9
)

// ProcessBytes decodes an encoded image (PNG, JPEG, GIF, BMP, TIFF, or WebP)
// and runs the full pipeline on it.
func (p *Processor) ProcessBytes(ctx context.Context, data []byte) (*model.Document, error) {
	img, err := imgutil.Decode(data)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, img)
}

// Process runs the full pipeline on a decoded image: normalization,
// candidate extraction, geometric filtering, semantic classification, zone
// merging, reading-order resolution, and per-zone engine arbitration. The
// input image is not modified. Processing the same image with the same
// processor always yields the same document.
//
// A document that yields no usable zones degrades to a single full-page
// paragraph zone rather than an empty result, so recognition still runs.
// Process returns an error only for unusable input or cancellation;
// recognition failures surface per zone on the Document.
func (p *Processor) Process(ctx context.Context, img image.Image) (*model.Document, error) {
	if img == nil {
		return nil, imgutil.ErrInvalidImage
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if width == 0 || height == 0 {
		return nil, imgutil.ErrInvalidImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	arbiter := ocr.NewArbiterWithConfig(p.engines, p.calibration, p.arbiterCfg)

	normalized := preprocess.NewWithConfig(p.profile.Preprocess).Normalize(img)
	p.logger.Debug("image normalized", "width", width, "height", height)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := layout.NewCandidateExtractorWithConfig(p.profile.Candidates).Extract(normalized)
	filtered := layout.NewGeometricFilterWithConfig(p.profile.Filter).Apply(candidates, width, height)
	p.logger.Debug("candidates extracted", "raw", len(candidates), "kept", len(filtered))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zones := p.classify(ctx, arbiter, img, filtered, width, height)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zones = layout.NewMergerWithConfig(p.mergeCfg).Merge(zones)
	zones = p.validate(zones, width, height)
	if len(zones) == 0 {
		p.logger.Debug("no zones survived, falling back to full page")
		zones = []*model.Zone{fullPageZone(width, height)}
	}
	renumber(zones)

	layout.NewReadingOrderResolverWithConfig(p.orderCfg).Resolve(zones)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, z := range zones {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		arbiter.RecognizeZone(ctx, img, z)
	}

	doc := model.NewDocument(width, height)
	doc.Zones = zones
	p.logger.Debug("document processed", "zones", len(zones))
	return doc, nil
}

// classify turns filtered candidates into typed zones. Zones are classified
// in parallel; each classification may use a quick provisional recognition
// pass for its text cues and falls back to geometry alone when no engine
// yields text in time.
func (p *Processor) classify(ctx context.Context, arbiter *ocr.Arbiter, src image.Image, candidates []model.BBox, width, height int) []*model.Zone {
	classifier := layout.NewClassifierWithConfig(p.profile.Classifier)
	zones := make([]*model.Zone, len(candidates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i, bbox := range candidates {
		wg.Add(1)
		go func(i int, bbox model.BBox) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			z := model.NewZone(i, bbox)
			if ctx.Err() == nil {
				z.ProvisionalText = arbiter.ProvisionalText(ctx, src, bbox)
			}
			z.Type, z.TypeConfidence = classifier.Classify(
				layout.Candidate{BBox: bbox, Text: z.ProvisionalText}, width, height)
			zones[i] = z
		}(i, bbox)
	}
	wg.Wait()

	return zones
}

// validate drops zones classified as noise and zones whose merged bbox grew
// or shrank beyond plausible bounds.
func (p *Processor) validate(zones []*model.Zone, width, height int) []*model.Zone {
	imageArea := float64(width) * float64(height)
	kept := make([]*model.Zone, 0, len(zones))
	for _, z := range zones {
		if z.Type == model.ZoneNoise {
			continue
		}
		ratio := float64(z.BBox.Area()) / imageArea
		if ratio < minFinalAreaRatio || ratio > maxFinalAreaRatio {
			continue
		}
		kept = append(kept, z)
	}
	if dropped := len(zones) - len(kept); dropped > 0 {
		p.logger.Debug("zones dropped by validation", "dropped", dropped, "kept", len(kept))
	}
	return kept
}

// fullPageZone is the degenerate fallback: the whole image as one paragraph
// zone, so recognition always has something to work on.
func fullPageZone(width, height int) *model.Zone {
	z := model.NewZone(0, model.BBox{X1: 0, Y1: 0, X2: width, Y2: height})
	z.Type = model.ZoneParagraph
	return z
}

// renumber reassigns sequential IDs after merging and validation so zone IDs
// in a finished document are contiguous from zero.
func renumber(zones []*model.Zone) {
	for i, z := range zones {
		z.ID = i
	}
}
