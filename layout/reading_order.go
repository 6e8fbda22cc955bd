package layout

import (
	"sort"

	"github.com/tsawler/doczone/model"
)

// ReadingOrderConfig holds configuration for reading-order resolution.
type ReadingOrderConfig struct {
	// BandToleranceRatio scales the median zone height into the vertical
	// tolerance that groups zones onto one visual row. Default: 0.5
	BandToleranceRatio float64

	// MinBandTolerance is the tolerance floor in pixels, so very short
	// zones on slightly skewed scans still land on a shared row.
	// Default: 12
	MinBandTolerance int
}

// DefaultReadingOrderConfig returns sensible default configuration.
func DefaultReadingOrderConfig() ReadingOrderConfig {
	return ReadingOrderConfig{
		BandToleranceRatio: 0.5,
		MinBandTolerance:   12,
	}
}

// ReadingOrderResolver assigns each zone a reading index reflecting the
// order a human would read the document: rows top to bottom, zones left to
// right within a row. The two-level sort is required because a pure
// top-to-bottom sort misorders side-by-side fields, while pure left-to-right
// misorders stacked paragraphs.
type ReadingOrderResolver struct {
	config ReadingOrderConfig
}

// NewReadingOrderResolver creates a resolver with default configuration.
func NewReadingOrderResolver() *ReadingOrderResolver {
	return &ReadingOrderResolver{config: DefaultReadingOrderConfig()}
}

// NewReadingOrderResolverWithConfig creates a resolver with custom
// configuration.
func NewReadingOrderResolverWithConfig(config ReadingOrderConfig) *ReadingOrderResolver {
	return &ReadingOrderResolver{config: config}
}

// band is one visual row of zones.
type band struct {
	anchor int // vertical center of the band's first zone
	minY1  int
	zones  []*model.Zone
}

// Resolve assigns ReadingIndex values forming a contiguous permutation of
// 0..len(zones)-1. Zones are grouped into bands by vertical center within a
// tolerance proportional to the median zone height; a zone taller than the
// band tolerance allows is anchored by its top edge instead, so a block
// spanning rows joins the band containing its top.
func (r *ReadingOrderResolver) Resolve(zones []*model.Zone) {
	if len(zones) == 0 {
		return
	}

	tolerance := r.bandTolerance(zones)

	type anchored struct {
		zone   *model.Zone
		anchor int
	}
	items := make([]anchored, len(zones))
	for i, z := range zones {
		a := z.BBox.Center().Y
		if z.BBox.Height() > 2*tolerance {
			a = z.BBox.Y1
		}
		items[i] = anchored{zone: z, anchor: a}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].anchor != items[j].anchor {
			return items[i].anchor < items[j].anchor
		}
		return items[i].zone.ID < items[j].zone.ID
	})

	var bands []*band
	for _, it := range items {
		var target *band
		if n := len(bands); n > 0 && it.anchor-bands[n-1].anchor <= tolerance {
			target = bands[n-1]
		}
		if target == nil {
			target = &band{anchor: it.anchor, minY1: it.zone.BBox.Y1}
			bands = append(bands, target)
		}
		if it.zone.BBox.Y1 < target.minY1 {
			target.minY1 = it.zone.BBox.Y1
		}
		target.zones = append(target.zones, it.zone)
	}

	// Bands top to bottom by their highest member, zones left to right
	// within a band.
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].minY1 < bands[j].minY1
	})

	index := 0
	for _, b := range bands {
		sort.SliceStable(b.zones, func(i, j int) bool {
			if b.zones[i].BBox.X1 != b.zones[j].BBox.X1 {
				return b.zones[i].BBox.X1 < b.zones[j].BBox.X1
			}
			if b.zones[i].BBox.Y1 != b.zones[j].BBox.Y1 {
				return b.zones[i].BBox.Y1 < b.zones[j].BBox.Y1
			}
			return b.zones[i].ID < b.zones[j].ID
		})
		for _, z := range b.zones {
			z.ReadingIndex = index
			index++
		}
	}
}

// bandTolerance derives the row tolerance from the median zone height.
func (r *ReadingOrderResolver) bandTolerance(zones []*model.Zone) int {
	heights := make([]int, len(zones))
	for i, z := range zones {
		heights[i] = z.BBox.Height()
	}
	sort.Ints(heights)
	median := heights[len(heights)/2]

	tolerance := int(float64(median) * r.config.BandToleranceRatio)
	if tolerance < r.config.MinBandTolerance {
		tolerance = r.config.MinBandTolerance
	}
	return tolerance
}
