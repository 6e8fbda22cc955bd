package layout

import (
	"image"
	"image/color"
	"testing"
)

// page builds a white gray image with the given ink rectangles drawn black.
func page(w, h int, ink ...image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for _, r := range ink {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestBinarizeAdaptive(t *testing.T) {
	src := page(100, 100, image.Rect(20, 20, 60, 40))
	mask := binarizeAdaptive(src, 15, 10)

	if mask.at(40, 30) != 1 {
		t.Error("ink pixel not marked")
	}
	if mask.at(5, 5) != 0 {
		t.Error("background pixel marked as ink")
	}
}

func TestBinarizeAdaptiveUniform(t *testing.T) {
	src := page(50, 50)
	mask := binarizeAdaptive(src, 15, 10)
	for _, v := range mask.pix {
		if v != 0 {
			t.Fatal("uniform background produced ink")
		}
	}
}

func TestCloseHorizontalBridgesGap(t *testing.T) {
	// Two words 10px apart on one line.
	mask := newBitmap(100, 20)
	for x := 10; x < 30; x++ {
		mask.set(x, 10, 1)
	}
	for x := 40; x < 60; x++ {
		mask.set(x, 10, 1)
	}

	closed := closeHorizontal(mask, 25)
	for x := 30; x < 40; x++ {
		if closed.at(x, 10) != 1 {
			t.Fatalf("gap pixel (%d,10) not bridged", x)
		}
	}
}

func TestCloseHorizontalLeavesWideGap(t *testing.T) {
	mask := newBitmap(200, 20)
	for x := 0; x < 20; x++ {
		mask.set(x, 10, 1)
	}
	for x := 150; x < 170; x++ {
		mask.set(x, 10, 1)
	}
	closed := closeHorizontal(mask, 25)
	if closed.at(80, 10) != 0 {
		t.Error("a gap far wider than the kernel should stay open")
	}
}

func TestCloseVerticalBridgesLines(t *testing.T) {
	// Two line fragments 8px apart vertically.
	mask := newBitmap(60, 60)
	for x := 10; x < 50; x++ {
		mask.set(x, 20, 1)
		mask.set(x, 28, 1)
	}
	closed := closeVertical(mask, 15)
	for y := 21; y < 28; y++ {
		if closed.at(30, y) != 1 {
			t.Fatalf("inter-line pixel (30,%d) not bridged", y)
		}
	}
}

func TestConnectedComponents(t *testing.T) {
	mask := newBitmap(100, 100)
	// Component A: 10x5 block.
	for y := 10; y < 15; y++ {
		for x := 10; x < 20; x++ {
			mask.set(x, y, 1)
		}
	}
	// Component B: 6x6 block, far away.
	for y := 60; y < 66; y++ {
		for x := 70; x < 76; x++ {
			mask.set(x, y, 1)
		}
	}

	boxes := connectedComponents(mask)
	if len(boxes) != 2 {
		t.Fatalf("components = %d, want 2", len(boxes))
	}
	a, b := boxes[0], boxes[1]
	if a.X1 != 10 || a.Y1 != 10 || a.X2 != 20 || a.Y2 != 15 {
		t.Errorf("component A bbox = %+v", a)
	}
	if b.X1 != 70 || b.Y1 != 60 || b.X2 != 76 || b.Y2 != 66 {
		t.Errorf("component B bbox = %+v", b)
	}
}

func TestConnectedComponentsDiagonal(t *testing.T) {
	// Diagonally touching pixels belong to one 8-connected component.
	mask := newBitmap(10, 10)
	mask.set(2, 2, 1)
	mask.set(3, 3, 1)
	mask.set(4, 4, 1)
	boxes := connectedComponents(mask)
	if len(boxes) != 1 {
		t.Fatalf("components = %d, want 1", len(boxes))
	}
	if boxes[0].Width() != 3 || boxes[0].Height() != 3 {
		t.Errorf("bbox = %+v", boxes[0])
	}
}

func TestConnectedComponentsEmpty(t *testing.T) {
	if got := connectedComponents(newBitmap(20, 20)); len(got) != 0 {
		t.Errorf("empty mask produced %d components", len(got))
	}
}

func TestExtractThreeStackedBlocks(t *testing.T) {
	// Three stacked solid text blocks; extraction must find three distinct
	// candidates covering them.
	src := page(1000, 1400,
		image.Rect(100, 50, 900, 150),
		image.Rect(100, 300, 900, 500),
		image.Rect(100, 700, 900, 1100),
	)
	candidates := NewCandidateExtractor().Extract(src)
	if len(candidates) != 3 {
		t.Fatalf("candidates = %d, want 3", len(candidates))
	}
	for _, c := range candidates {
		if c.Width() < 750 {
			t.Errorf("candidate %+v narrower than its block", c)
		}
	}
}

func TestExtractEmptyPage(t *testing.T) {
	candidates := NewCandidateExtractor().Extract(page(200, 200))
	if len(candidates) != 0 {
		t.Errorf("blank page produced %d candidates", len(candidates))
	}
}
