package layout

import (
	"image"

	"github.com/tsawler/doczone/model"
)

// bitmap is a binary ink mask over the image, one byte per pixel (0 or 1).
type bitmap struct {
	w, h int
	pix  []uint8
}

func newBitmap(w, h int) *bitmap {
	return &bitmap{w: w, h: h, pix: make([]uint8, w*h)}
}

func (b *bitmap) at(x, y int) uint8 {
	return b.pix[y*b.w+x]
}

func (b *bitmap) set(x, y int, v uint8) {
	b.pix[y*b.w+x] = v
}

// binarizeAdaptive separates ink from background with a mean-based adaptive
// threshold: a pixel is ink when it is darker than the local mean over a
// blockSize window minus the constant c. Local means come from an integral
// image so the cost is independent of block size.
func binarizeAdaptive(src *image.Gray, blockSize, c int) *bitmap {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	mask := newBitmap(w, h)
	if w == 0 || h == 0 {
		return mask
	}
	if blockSize < 3 {
		blockSize = 3
	}
	radius := blockSize / 2

	// Integral image with a zero row/column border.
	integral := make([]int64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(src.Pix[y*src.Stride+x])
			integral[(y+1)*(w+1)+(x+1)] = integral[y*(w+1)+(x+1)] + rowSum
		}
	}

	for y := 0; y < h; y++ {
		y0, y1 := clampInt(y-radius, 0, h-1), clampInt(y+radius, 0, h-1)
		for x := 0; x < w; x++ {
			x0, x1 := clampInt(x-radius, 0, w-1), clampInt(x+radius, 0, w-1)
			count := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*(w+1)+(x1+1)] - integral[y0*(w+1)+(x1+1)] -
				integral[(y1+1)*(w+1)+x0] + integral[y0*(w+1)+x0]
			mean := sum / count
			if int64(src.Pix[y*src.Stride+x]) < mean-int64(c) {
				mask.pix[y*w+x] = 1
			}
		}
	}
	return mask
}

// dilateHorizontal sets each pixel that has any set pixel within radius
// along its row.
func dilateHorizontal(src *bitmap, size int) *bitmap {
	if size <= 1 {
		return src
	}
	left := (size - 1) / 2
	right := size - 1 - left
	dst := newBitmap(src.w, src.h)
	for y := 0; y < src.h; y++ {
		row := src.pix[y*src.w : (y+1)*src.w]
		run := 0 // pixels remaining to fill after the last set pixel
		for x := 0; x < src.w; x++ {
			if row[x] == 1 {
				start := clampInt(x-left, 0, src.w-1)
				for i := start; i < x; i++ {
					dst.pix[y*src.w+i] = 1
				}
				dst.pix[y*src.w+x] = 1
				run = right
			} else if run > 0 {
				dst.pix[y*src.w+x] = 1
				run--
			}
		}
	}
	return dst
}

// dilateVertical sets each pixel that has any set pixel within radius along
// its column.
func dilateVertical(src *bitmap, size int) *bitmap {
	if size <= 1 {
		return src
	}
	up := (size - 1) / 2
	down := size - 1 - up
	dst := newBitmap(src.w, src.h)
	for x := 0; x < src.w; x++ {
		run := 0
		for y := 0; y < src.h; y++ {
			if src.pix[y*src.w+x] == 1 {
				start := clampInt(y-up, 0, src.h-1)
				for i := start; i < y; i++ {
					dst.pix[i*src.w+x] = 1
				}
				dst.pix[y*src.w+x] = 1
				run = down
			} else if run > 0 {
				dst.pix[y*src.w+x] = 1
				run--
			}
		}
	}
	return dst
}

// erodeHorizontal keeps a pixel only when the whole horizontal window around
// it is set.
func erodeHorizontal(src *bitmap, size int) *bitmap {
	if size <= 1 {
		return src
	}
	left := (size - 1) / 2
	right := size - 1 - left
	dst := newBitmap(src.w, src.h)
	for y := 0; y < src.h; y++ {
		row := src.pix[y*src.w : (y+1)*src.w]
		for x := 0; x < src.w; x++ {
			x0 := clampInt(x-left, 0, src.w-1)
			x1 := clampInt(x+right, 0, src.w-1)
			all := uint8(1)
			for i := x0; i <= x1; i++ {
				if row[i] == 0 {
					all = 0
					break
				}
			}
			dst.pix[y*src.w+x] = all
		}
	}
	return dst
}

// erodeVertical keeps a pixel only when the whole vertical window around it
// is set.
func erodeVertical(src *bitmap, size int) *bitmap {
	if size <= 1 {
		return src
	}
	up := (size - 1) / 2
	down := size - 1 - up
	dst := newBitmap(src.w, src.h)
	for x := 0; x < src.w; x++ {
		for y := 0; y < src.h; y++ {
			y0 := clampInt(y-up, 0, src.h-1)
			y1 := clampInt(y+down, 0, src.h-1)
			all := uint8(1)
			for i := y0; i <= y1; i++ {
				if src.pix[i*src.w+x] == 0 {
					all = 0
					break
				}
			}
			dst.pix[y*src.w+x] = all
		}
	}
	return dst
}

// closeHorizontal fuses horizontally adjacent ink (characters into words,
// words into line fragments) with a wide short kernel.
func closeHorizontal(src *bitmap, size int) *bitmap {
	return erodeHorizontal(dilateHorizontal(src, size), size)
}

// closeVertical fuses vertically adjacent ink (line fragments into blocks)
// with a tall narrow kernel.
func closeVertical(src *bitmap, size int) *bitmap {
	return erodeVertical(dilateVertical(src, size), size)
}

// dilateSquare performs a small isotropic dilation to smooth block
// boundaries.
func dilateSquare(src *bitmap, size int) *bitmap {
	return dilateVertical(dilateHorizontal(src, size), size)
}

// connectedComponents extracts the bounding box of every 8-connected set of
// ink pixels in the mask, in scan order.
func connectedComponents(mask *bitmap) []model.BBox {
	visited := make([]bool, len(mask.pix))
	var boxes []model.BBox
	var stack []model.Point

	for y := 0; y < mask.h; y++ {
		for x := 0; x < mask.w; x++ {
			idx := y*mask.w + x
			if mask.pix[idx] == 0 || visited[idx] {
				continue
			}

			minX, minY, maxX, maxY := x, y, x, y
			visited[idx] = true
			stack = append(stack[:0], model.Point{X: x, Y: y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= mask.w || ny >= mask.h {
							continue
						}
						nidx := ny*mask.w + nx
						if mask.pix[nidx] == 1 && !visited[nidx] {
							visited[nidx] = true
							stack = append(stack, model.Point{X: nx, Y: ny})
						}
					}
				}
			}

			boxes = append(boxes, model.BBox{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1})
		}
	}
	return boxes
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
