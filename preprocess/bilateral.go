package preprocess

import (
	"image"
	"math"
)

// bilateral applies an edge-preserving bilateral filter to a grayscale
// image. Each output pixel is a weighted mean of its neighborhood where the
// weight combines spatial distance (sigmaSpace) and intensity difference
// (sigmaColor), so smooth regions are denoised while strong edges survive.
func bilateral(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 || diameter < 2 {
		return src
	}
	radius := diameter / 2

	// Precomputed weight tables: spatial kernel over the window and range
	// weights for every possible intensity difference.
	spatial := make([]float64, diameter*diameter)
	twoSigmaSpace := 2 * sigmaSpace * sigmaSpace
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dy+radius >= diameter || dx+radius >= diameter {
				continue
			}
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*diameter+(dx+radius)] = math.Exp(-d2 / twoSigmaSpace)
		}
	}
	var rangeWeight [256]float64
	twoSigmaColor := 2 * sigmaColor * sigmaColor
	for d := 0; d < 256; d++ {
		rangeWeight[d] = math.Exp(-float64(d*d) / twoSigmaColor)
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := src.Pix[y*src.Stride+x]
			var sum, norm float64
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					v := src.Pix[ny*src.Stride+nx]
					diff := int(v) - int(center)
					if diff < 0 {
						diff = -diff
					}
					wgt := spatial[(dy+radius)*diameter+(dx+radius)] * rangeWeight[diff]
					sum += wgt * float64(v)
					norm += wgt
				}
			}
			if norm > 0 {
				dst.Pix[y*dst.Stride+x] = uint8(sum/norm + 0.5)
			} else {
				dst.Pix[y*dst.Stride+x] = center
			}
		}
	}
	return dst
}
