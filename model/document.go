package model

import (
	"sort"
	"strings"
)

// Document is the output of one processing run: the source image dimensions
// and the detected zones. A Document is created fresh per input image and is
// not mutated after recognition completes.
type Document struct {
	// Width and Height are the source image dimensions in pixels.
	Width  int
	Height int

	// Zones are the detected zones. Once ordering has run their
	// ReadingIndex values form a permutation of 0..len(Zones)-1.
	Zones []*Zone
}

// NewDocument creates an empty document for an image of the given size.
func NewDocument(width, height int) *Document {
	return &Document{
		Width:  width,
		Height: height,
		Zones:  make([]*Zone, 0),
	}
}

// ZoneCount returns the number of zones in the document.
func (d *Document) ZoneCount() int {
	return len(d.Zones)
}

// ZonesInReadingOrder returns the zones sorted by ReadingIndex. Zones with
// an unset reading index sort after ordered ones, preserving slice order
// among themselves.
func (d *Document) ZonesInReadingOrder() []*Zone {
	ordered := make([]*Zone, len(d.Zones))
	copy(ordered, d.Zones)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].ReadingIndex, ordered[j].ReadingIndex
		if a == ReadingIndexUnset {
			return false
		}
		if b == ReadingIndexUnset {
			return true
		}
		return a < b
	})
	return ordered
}

// CountsByType returns the number of zones per semantic type.
func (d *Document) CountsByType() map[ZoneType]int {
	counts := make(map[ZoneType]int)
	for _, z := range d.Zones {
		counts[z.Type]++
	}
	return counts
}

// AverageConfidence returns the mean normalized recognition confidence of
// the zones that have a selected engine, or 0 when none do.
func (d *Document) AverageConfidence() float64 {
	var sum float64
	var n int
	for _, z := range d.Zones {
		if r, ok := z.SelectedResult(); ok {
			sum += r.NormalizedConfidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Text reconstructs the recognized document text by concatenating each
// zone's selected text in reading order, separated by blank lines. Zones
// with no recognition result contribute nothing.
func (d *Document) Text() string {
	var parts []string
	for _, z := range d.ZonesInReadingOrder() {
		if t := z.SelectedText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
