package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FitWidth scales src to the given width, preserving aspect ratio.
// Already-matching images are returned as-is.
func FitWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() == width || b.Dx() == 0 {
		return src
	}
	scale := float64(width) / float64(b.Dx())
	height := int(float64(b.Dy()) * scale)
	if height < 1 {
		height = 1
	}
	return resample(src, width, height)
}

// FitBox scales src to fit inside maxW×maxH, preserving aspect ratio.
// Images that already fit are returned as-is.
func FitBox(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return src
	}
	scaleX := float64(maxW) / float64(b.Dx())
	scaleY := float64(maxH) / float64(b.Dy())
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale >= 1 {
		return src
	}
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return resample(src, w, h)
}

func resample(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
