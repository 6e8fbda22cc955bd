package ocr

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/tsawler/doczone/model"
)

// cropMargin is the padding added around a zone before recognition, so
// glyph ascenders and descenders clipped by the morphology survive.
const cropMargin = 5

// minCropSide is the side length below which a crop is upscaled before
// recognition; engines struggle with very small text renderings.
const minCropSide = 64

// maxUpscale caps the upscaling factor.
const maxUpscale = 4

// CropZone extracts a zone's pixels from the source image with a small
// margin, upscaling tiny crops so recognition engines receive workable
// glyph sizes. The source image is not modified.
func CropZone(src image.Image, bbox model.BBox) image.Image {
	b := src.Bounds()
	expanded := bbox.Expand(cropMargin, b.Dx(), b.Dy())
	crop := imaging.Crop(src, image.Rect(
		b.Min.X+expanded.X1,
		b.Min.Y+expanded.Y1,
		b.Min.X+expanded.X2,
		b.Min.Y+expanded.Y2,
	))

	w, h := crop.Bounds().Dx(), crop.Bounds().Dy()
	if w >= minCropSide && h >= minCropSide {
		return crop
	}

	scale := 1
	for scale < maxUpscale && (w*scale < minCropSide || h*scale < minCropSide) {
		scale++
	}
	if scale == 1 {
		return crop
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.CatmullRom.Scale(dst, dst.Bounds(), crop, crop.Bounds(), draw.Over, nil)
	return dst
}
