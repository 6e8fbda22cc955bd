package layout

import (
	"testing"

	"github.com/tsawler/doczone/model"
)

func TestFilterRejectsTinySpeck(t *testing.T) {
	f := NewGeometricFilter()
	// A 5x5 speck on a 1000x1000 image fails the 50x20 minimum.
	if f.Keep(model.NewBBox(100, 100, 5, 5), 1000, 1000) {
		t.Error("5x5 speck should be rejected")
	}
}

func TestFilterRejectsWholePage(t *testing.T) {
	f := NewGeometricFilter()
	if f.Keep(model.NewBBox(0, 0, 1000, 950), 1000, 1000) {
		t.Error("near-full-page candidate should be rejected")
	}
}

func TestFilterKeepsTies(t *testing.T) {
	f := NewGeometricFilter()
	// Exactly 50x20 on a 1000x50 image: area ratio 0.02, aspect 2.5.
	// Every bound is inclusive so the candidate survives.
	if !f.Keep(model.NewBBox(0, 0, 50, 20), 1000, 50) {
		t.Error("candidate sitting exactly on the minimums should be kept")
	}
	// Aspect exactly 20 (400x20) is still inside the inclusive range.
	if !f.Keep(model.NewBBox(0, 0, 400, 20), 1000, 1000) {
		t.Error("aspect ratio exactly 20 should be kept")
	}
	// Aspect exactly 0.1 (50x500).
	if !f.Keep(model.NewBBox(0, 0, 50, 500), 1000, 1000) {
		t.Error("aspect ratio exactly 0.1 should be kept")
	}
}

func TestFilterRejectsSlivers(t *testing.T) {
	f := NewGeometricFilter()
	tests := []struct {
		name string
		bbox model.BBox
	}{
		{"too flat", model.NewBBox(0, 0, 900, 20)},  // aspect 45
		{"too narrow", model.NewBBox(0, 0, 50, 600)}, // aspect < 0.1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f.Keep(tt.bbox, 1000, 1000) {
				t.Errorf("%+v should be rejected", tt.bbox)
			}
		})
	}
}

func TestFilterStackedBlocksScenario(t *testing.T) {
	// 1000x1400 image, three stacked 800px-wide text blocks. All pass.
	f := NewGeometricFilter()
	blocks := []model.BBox{
		{X1: 100, Y1: 50, X2: 900, Y2: 150},
		{X1: 100, Y1: 300, X2: 900, Y2: 500},
		{X1: 100, Y1: 700, X2: 900, Y2: 1100},
	}
	kept := f.Apply(blocks, 1000, 1400)
	if len(kept) != 3 {
		t.Fatalf("kept %d of 3 blocks", len(kept))
	}
}

func TestFilterOutputIsSubset(t *testing.T) {
	f := NewGeometricFilter()
	input := []model.BBox{
		model.NewBBox(0, 0, 5, 5),
		model.NewBBox(10, 10, 200, 60),
		model.NewBBox(0, 0, 1000, 1000),
		model.NewBBox(300, 300, 100, 40),
	}
	kept := f.Apply(input, 1000, 1000)
	if len(kept) >= len(input) {
		t.Fatalf("expected some rejections, kept %d of %d", len(kept), len(input))
	}
	// Every kept box must appear in the input unchanged, in order.
	next := 0
	for _, k := range kept {
		found := false
		for ; next < len(input); next++ {
			if input[next] == k {
				found = true
				next++
				break
			}
		}
		if !found {
			t.Errorf("kept box %+v is not an input candidate", k)
		}
	}
}

func TestFilterInvalidInputs(t *testing.T) {
	f := NewGeometricFilter()
	if f.Keep(model.BBox{X1: 10, Y1: 10, X2: 10, Y2: 30}, 1000, 1000) {
		t.Error("degenerate bbox should be rejected")
	}
	if f.Keep(model.NewBBox(0, 0, 100, 40), 0, 0) {
		t.Error("zero-sized image should reject everything")
	}
}

func TestFilterCustomConfig(t *testing.T) {
	cfg := DefaultFilterConfig()
	cfg.MinWidth = 10
	cfg.MinHeight = 5
	f := NewGeometricFilterWithConfig(cfg)
	if !f.Keep(model.NewBBox(0, 0, 40, 10), 100, 100) {
		t.Error("relaxed config should keep a small box")
	}
}
