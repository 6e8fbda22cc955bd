package layout

import (
	"testing"

	"github.com/tsawler/doczone/model"
)

// makeZones builds zones with sequential IDs from bboxes.
func makeZones(boxes ...model.BBox) []*model.Zone {
	zones := make([]*model.Zone, len(boxes))
	for i, b := range boxes {
		zones[i] = model.NewZone(i, b)
	}
	return zones
}

// assertPermutation fails unless reading indexes form 0..N-1 exactly once.
func assertPermutation(t *testing.T, zones []*model.Zone) {
	t.Helper()
	seen := make(map[int]bool, len(zones))
	for _, z := range zones {
		if z.ReadingIndex < 0 || z.ReadingIndex >= len(zones) {
			t.Fatalf("zone %d reading index %d out of range", z.ID, z.ReadingIndex)
		}
		if seen[z.ReadingIndex] {
			t.Fatalf("duplicate reading index %d", z.ReadingIndex)
		}
		seen[z.ReadingIndex] = true
	}
}

func TestResolveStackedBlocks(t *testing.T) {
	// Three stacked text blocks read top to bottom.
	zones := makeZones(
		model.BBox{X1: 100, Y1: 700, X2: 900, Y2: 1100},
		model.BBox{X1: 100, Y1: 50, X2: 900, Y2: 150},
		model.BBox{X1: 100, Y1: 300, X2: 900, Y2: 500},
	)
	NewReadingOrderResolver().Resolve(zones)
	assertPermutation(t, zones)
	if zones[1].ReadingIndex != 0 || zones[2].ReadingIndex != 1 || zones[0].ReadingIndex != 2 {
		t.Errorf("order = %d,%d,%d; want top block first", zones[1].ReadingIndex, zones[2].ReadingIndex, zones[0].ReadingIndex)
	}
}

func TestResolveSideBySideRow(t *testing.T) {
	// Two zones on the same visual row; the left one reads first.
	zones := makeZones(
		model.BBox{X1: 500, Y1: 100, X2: 900, Y2: 140},
		model.BBox{X1: 0, Y1: 105, X2: 400, Y2: 145},
	)
	NewReadingOrderResolver().Resolve(zones)
	assertPermutation(t, zones)
	if zones[1].ReadingIndex != 0 {
		t.Errorf("left zone reading index = %d, want 0", zones[1].ReadingIndex)
	}
	if zones[0].ReadingIndex != 1 {
		t.Errorf("right zone reading index = %d, want 1", zones[0].ReadingIndex)
	}
}

func TestResolveMultiColumnLayout(t *testing.T) {
	// Header row, then two columns of stacked paragraphs. Row-major order:
	// header, then for each row left column before right column.
	zones := makeZones(
		model.BBox{X1: 100, Y1: 20, X2: 900, Y2: 80},    // header
		model.BBox{X1: 50, Y1: 200, X2: 450, Y2: 260},   // row 1 left
		model.BBox{X1: 550, Y1: 205, X2: 950, Y2: 262},  // row 1 right
		model.BBox{X1: 50, Y1: 400, X2: 450, Y2: 460},   // row 2 left
		model.BBox{X1: 550, Y1: 398, X2: 950, Y2: 458},  // row 2 right
	)
	NewReadingOrderResolver().Resolve(zones)
	assertPermutation(t, zones)
	want := []int{0, 1, 2, 3, 4}
	for i, z := range zones {
		if z.ReadingIndex != want[i] {
			t.Errorf("zone %d reading index = %d, want %d", i, z.ReadingIndex, want[i])
		}
	}
}

func TestResolveSkewTolerance(t *testing.T) {
	// Slight skew: same row, vertical centers differ by a few pixels.
	zones := makeZones(
		model.BBox{X1: 500, Y1: 108, X2: 900, Y2: 148},
		model.BBox{X1: 100, Y1: 100, X2: 400, Y2: 140},
	)
	NewReadingOrderResolver().Resolve(zones)
	if zones[1].ReadingIndex != 0 || zones[0].ReadingIndex != 1 {
		t.Error("skewed row should still read left to right")
	}
}

func TestResolveTallZoneAnchorsAtTop(t *testing.T) {
	// A tall sidebar spanning several rows joins the band of its top edge.
	zones := makeZones(
		model.BBox{X1: 600, Y1: 100, X2: 900, Y2: 130},  // row 1 right
		model.BBox{X1: 100, Y1: 95, X2: 500, Y2: 600},   // tall left block
		model.BBox{X1: 600, Y1: 300, X2: 900, Y2: 330},  // row 2 right
	)
	NewReadingOrderResolver().Resolve(zones)
	assertPermutation(t, zones)
	if zones[1].ReadingIndex != 0 {
		t.Errorf("tall block reading index = %d, want 0 (same band as row 1, leftmost)", zones[1].ReadingIndex)
	}
}

func TestResolveSingleZone(t *testing.T) {
	zones := makeZones(model.BBox{X1: 0, Y1: 0, X2: 100, Y2: 50})
	NewReadingOrderResolver().Resolve(zones)
	if zones[0].ReadingIndex != 0 {
		t.Errorf("single zone reading index = %d, want 0", zones[0].ReadingIndex)
	}
}

func TestResolveEmpty(t *testing.T) {
	NewReadingOrderResolver().Resolve(nil) // must not panic
}

func TestResolveDeterministic(t *testing.T) {
	boxes := []model.BBox{
		{X1: 10, Y1: 10, X2: 200, Y2: 40},
		{X1: 250, Y1: 12, X2: 420, Y2: 44},
		{X1: 10, Y1: 100, X2: 600, Y2: 160},
		{X1: 10, Y1: 300, X2: 300, Y2: 700},
		{X1: 350, Y1: 305, X2: 600, Y2: 340},
	}
	first := makeZones(boxes...)
	NewReadingOrderResolver().Resolve(first)
	for run := 0; run < 20; run++ {
		again := makeZones(boxes...)
		NewReadingOrderResolver().Resolve(again)
		for i := range again {
			if again[i].ReadingIndex != first[i].ReadingIndex {
				t.Fatalf("run %d: zone %d index %d != %d", run, i, again[i].ReadingIndex, first[i].ReadingIndex)
			}
		}
	}
}

func TestResolveIdenticalAnchors(t *testing.T) {
	// Identical geometry: ID breaks the tie, indexes stay a permutation.
	zones := makeZones(
		model.BBox{X1: 100, Y1: 100, X2: 300, Y2: 140},
		model.BBox{X1: 100, Y1: 100, X2: 300, Y2: 140},
	)
	NewReadingOrderResolver().Resolve(zones)
	assertPermutation(t, zones)
	if zones[0].ReadingIndex != 0 {
		t.Errorf("lower ID should read first, got index %d", zones[0].ReadingIndex)
	}
}
