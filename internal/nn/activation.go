package nn

import (
	"fmt"

	"github.com/chewxy/math32"
)

// leakySlope is the fixed negative-side slope for LeakyReLU.
const leakySlope = 0.01

// Activation is one of the fixed set of activation functions a Dense layer
// can apply: Sigmoid, Tanh, ReLU or LeakyReLU. The set is closed; each value
// carries its forward function, its derivative and the byte tag used in
// model files.
//
// Derivative is expressed in terms of the activated output y rather than the
// pre-activation sum, so backpropagation never has to recompute the raw sum:
//
//	kind      apply                 derivative(y)
//	Sigmoid   1/(1+exp(-x))         y*(1-y)
//	Tanh      tanh(x)               1-y*y
//	ReLU      max(0,x)              1 if y>0 else 0
//	LeakyReLU x if x>0 else 0.01x   1 if y>0 else 0.01
type Activation interface {
	// Apply computes the activated value for a pre-activation sum.
	Apply(x float32) float32

	// Derivative computes the slope at the activated output y.
	Derivative(y float32) float32

	// Tag is the single byte identifying this activation in model files.
	Tag() byte

	String() string

	// closed seals the set: only the four kinds defined in this package
	// implement Activation.
	closed()
}

// Sigmoid squashes values into (0, 1). Used on the output layer for
// classification-style bounded outputs.
type Sigmoid struct{}

func (Sigmoid) Apply(x float32) float32      { return 1.0 / (1.0 + math32.Exp(-x)) }
func (Sigmoid) Derivative(y float32) float32 { return y * (1.0 - y) }
func (Sigmoid) Tag() byte                    { return 's' }
func (Sigmoid) String() string               { return "sigmoid" }
func (Sigmoid) closed()                      {}

// Tanh squashes values into (-1, 1). Zero-centered, the default for hidden
// layers.
type Tanh struct{}

func (Tanh) Apply(x float32) float32      { return math32.Tanh(x) }
func (Tanh) Derivative(y float32) float32 { return 1.0 - y*y }
func (Tanh) Tag() byte                    { return 't' }
func (Tanh) String() string               { return "tanh" }
func (Tanh) closed()                      {}

// ReLU is the rectified linear unit: f(x) = max(0, x).
type ReLU struct{}

func (ReLU) Apply(x float32) float32 { return math32.Max(0, x) }

func (ReLU) Derivative(y float32) float32 {
	if y > 0 {
		return 1.0
	}
	return 0.0
}

func (ReLU) Tag() byte      { return 'r' }
func (ReLU) String() string { return "relu" }
func (ReLU) closed()        {}

// LeakyReLU is ReLU with a small non-zero slope on the negative side, which
// keeps gradients alive for inactive units.
type LeakyReLU struct{}

func (LeakyReLU) Apply(x float32) float32 {
	if x > 0 {
		return x
	}
	return leakySlope * x
}

func (LeakyReLU) Derivative(y float32) float32 {
	if y > 0 {
		return 1.0
	}
	return leakySlope
}

func (LeakyReLU) Tag() byte      { return 'l' }
func (LeakyReLU) String() string { return "leaky_relu" }
func (LeakyReLU) closed()        {}

// ActivationByTag maps a model-file tag byte back to its Activation.
func ActivationByTag(tag byte) (Activation, error) {
	switch tag {
	case 's':
		return Sigmoid{}, nil
	case 't':
		return Tanh{}, nil
	case 'r':
		return ReLU{}, nil
	case 'l':
		return LeakyReLU{}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownActivation, tag)
	}
}
