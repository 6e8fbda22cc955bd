package preprocess

import "image"

// clahe performs contrast-limited adaptive histogram equalization on a
// grayscale image. The image is divided into a tiles×tiles grid; each tile
// gets its own clipped-histogram equalization mapping, and per-pixel output
// is bilinearly interpolated between the four surrounding tile mappings to
// avoid visible tile seams.
func clahe(src *image.Gray, clipLimit float64, tiles int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return src
	}
	if tiles < 1 {
		tiles = 1
	}
	if tiles > w {
		tiles = w
	}
	if tiles > h {
		tiles = h
	}

	tileW := (w + tiles - 1) / tiles
	tileH := (h + tiles - 1) / tiles

	// Per-tile equalization lookup tables.
	luts := make([][256]uint8, tiles*tiles)
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			luts[ty*tiles+tx] = tileLUT(src, x0, y0, x1, y1, clipLimit)
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// Position of the pixel relative to tile centers along Y.
		fy := (float64(y) - float64(tileH)/2) / float64(tileH)
		ty0 := int(fy)
		if fy < 0 {
			ty0 = -1
		}
		wy := fy - float64(ty0)
		ty1 := ty0 + 1
		ty0 = clampInt(ty0, 0, tiles-1)
		ty1 = clampInt(ty1, 0, tiles-1)

		for x := 0; x < w; x++ {
			fx := (float64(x) - float64(tileW)/2) / float64(tileW)
			tx0 := int(fx)
			if fx < 0 {
				tx0 = -1
			}
			wx := fx - float64(tx0)
			tx1 := tx0 + 1
			tx0 = clampInt(tx0, 0, tiles-1)
			tx1 = clampInt(tx1, 0, tiles-1)

			v := src.GrayAt(x, y).Y
			v00 := float64(luts[ty0*tiles+tx0][v])
			v01 := float64(luts[ty0*tiles+tx1][v])
			v10 := float64(luts[ty1*tiles+tx0][v])
			v11 := float64(luts[ty1*tiles+tx1][v])

			top := v00*(1-wx) + v01*wx
			bottom := v10*(1-wx) + v11*wx
			dst.Pix[y*dst.Stride+x] = uint8(top*(1-wy) + bottom*wy + 0.5)
		}
	}
	return dst
}

// tileLUT builds the clipped-histogram equalization mapping for one tile.
func tileLUT(src *image.Gray, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	for y := y0; y < y1; y++ {
		row := src.Pix[y*src.Stride+x0 : y*src.Stride+x1]
		for _, v := range row {
			hist[v]++
		}
	}

	pixels := (x1 - x0) * (y1 - y0)
	var lut [256]uint8
	if pixels == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	// Clip the histogram and redistribute the excess uniformly.
	clip := int(clipLimit * float64(pixels) / 256)
	if clip < 1 {
		clip = 1
	}
	excess := 0
	for i, c := range hist {
		if c > clip {
			excess += c - clip
			hist[i] = clip
		}
	}
	share := excess / 256
	remainder := excess % 256
	for i := range hist {
		hist[i] += share
		if i < remainder {
			hist[i]++
		}
	}

	// Cumulative distribution to 0..255 mapping.
	cum := 0
	scale := 255.0 / float64(pixels)
	for i, c := range hist {
		cum += c
		lut[i] = uint8(float64(cum)*scale + 0.5)
	}
	return lut
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
