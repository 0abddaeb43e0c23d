package augment

import (
	"math/rand"

	"github.com/inkwell-ml/inkwell/internal/mnist"
)

// Transform maps a pixel buffer to a new pixel buffer of the same
// dimensions. Implementations must not mutate the source.
type Transform func(pixels []float32) []float32

// Chain composes transforms left to right into a single Transform.
func Chain(transforms ...Transform) Transform {
	return func(pixels []float32) []float32 {
		for _, t := range transforms {
			pixels = t(pixels)
		}
		return pixels
	}
}

// Shift returns a Transform applying a fixed translation.
func Shift(dx, dy, width, height int) Transform {
	return func(pixels []float32) []float32 {
		return Translate(pixels, dx, dy, width, height)
	}
}

// Zoom returns a Transform applying a fixed center scaling.
func Zoom(factor float32, width, height int) Transform {
	return func(pixels []float32) []float32 {
		return Scale(pixels, factor, width, height, width, height)
	}
}

// RandomShift returns a Transform that draws dx and dy uniformly from
// [-max, max] on every call.
func RandomShift(rng *rand.Rand, max, width, height int) Transform {
	return func(pixels []float32) []float32 {
		dx := rng.Intn(2*max+1) - max
		dy := rng.Intn(2*max+1) - max
		return Translate(pixels, dx, dy, width, height)
	}
}

// RandomZoom returns a Transform that draws a scale factor uniformly from
// [min, max] on every call.
func RandomZoom(rng *rand.Rand, min, max float32, width, height int) Transform {
	return func(pixels []float32) []float32 {
		factor := min + rng.Float32()*(max-min)
		return Scale(pixels, factor, width, height, width, height)
	}
}

// Derive applies a transform to a sample's pixels and returns a new sample
// carrying the same label and target. The source sample is untouched.
func Derive(s mnist.Sample, t Transform) mnist.Sample {
	return mnist.Sample{
		Pixels: t(s.Pixels),
		Target: s.Target,
		Label:  s.Label,
	}
}

// Expand returns the original samples followed by the requested number of
// derived copies of each, produced by the transform. With copies <= 0 or a
// nil transform the input slice is returned as-is.
func Expand(samples []mnist.Sample, t Transform, copies int) []mnist.Sample {
	if t == nil || copies <= 0 {
		return samples
	}
	out := make([]mnist.Sample, 0, len(samples)*(copies+1))
	out = append(out, samples...)
	for i := 0; i < copies; i++ {
		for _, s := range samples {
			out = append(out, Derive(s, t))
		}
	}
	return out
}
