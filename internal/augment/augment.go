// Package augment derives new training images from existing ones with pure
// geometric transforms. Transforms never mutate their source buffer; every
// call allocates a fresh output of identical dimensions.
package augment

import "github.com/chewxy/math32"

// Translate shifts an image by (dx, dy) pixels: positive dx moves the image
// right, positive dy moves it down. Output pixel (x, y) takes source pixel
// (x-dx, y-dy) when that coordinate is in bounds and 0 otherwise.
func Translate(pixels []float32, dx, dy, width, height int) []float32 {
	out := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := x - dx
			sy := y - dy
			if sx >= 0 && sx < width && sy >= 0 && sy < height {
				out[y*width+x] = pixels[sy*width+sx]
			}
		}
	}
	return out
}

// Scale resamples an image about its center by the given factor using
// bilinear interpolation. factor > 1 zooms in, factor < 1 zooms out; the
// result is always dstW x dstH.
//
// Each destination pixel is inverse-mapped to a source coordinate; source
// coordinates outside [0, dim-2] produce 0, so the last row and column never
// serve as an interpolation base point. A zero factor has no inverse and
// yields the all-zero image.
func Scale(src []float32, factor float32, srcW, srcH, dstW, dstH int) []float32 {
	out := make([]float32, dstW*dstH)
	if factor == 0 {
		return out
	}

	cxSrc := float32(srcW-1) / 2.0
	cySrc := float32(srcH-1) / 2.0
	cxDst := float32(dstW-1) / 2.0
	cyDst := float32(dstH-1) / 2.0

	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			sx := (float32(x)-cxDst)/factor + cxSrc
			sy := (float32(y)-cyDst)/factor + cySrc

			if sx < 0 || sx >= float32(srcW-1) || sy < 0 || sy >= float32(srcH-1) {
				continue
			}

			x0 := int(math32.Floor(sx))
			y0 := int(math32.Floor(sy))
			wx := sx - float32(x0)
			wy := sy - float32(y0)

			v00 := src[y0*srcW+x0]
			v10 := src[y0*srcW+x0+1]
			v01 := src[(y0+1)*srcW+x0]
			v11 := src[(y0+1)*srcW+x0+1]

			v0 := v00*(1-wx) + v10*wx
			v1 := v01*(1-wx) + v11*wx
			out[y*dstW+x] = v0*(1-wy) + v1*wy
		}
	}

	return out
}
