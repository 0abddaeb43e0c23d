package nn

import (
	"fmt"
	"math/rand"
)

// Dense is one fully connected layer: an affine transform followed by an
// element-wise activation.
//
// Weights are stored input-major in a flat slice: the weight connecting
// input i to output o lives at weights[i*nOut+o].
type Dense struct {
	nIn, nOut int
	act       Activation
	weights   []float32
	biases    []float32
}

// Trace is the record of a single forward pass through a layer: the input it
// saw and the activated output it produced. Backward consumes a Trace rather
// than hidden per-layer state, so one layer can serve interleaved
// evaluations without corrupting a pending backward pass.
type Trace struct {
	Input  []float32
	Output []float32
}

// NewDense creates a layer with nIn inputs and nOut outputs, filling every
// weight and bias with an independent uniform draw in [-1, 1) from rng.
// Panics if nIn or nOut is not positive; layer widths are fixed by the
// network topology and a non-positive width is a programming error.
func NewDense(nIn, nOut int, act Activation, rng *rand.Rand) *Dense {
	d := newSkeleton(nIn, nOut, act)
	for i := range d.weights {
		d.weights[i] = rng.Float32()*2.0 - 1.0
	}
	for i := range d.biases {
		d.biases[i] = rng.Float32()*2.0 - 1.0
	}
	return d
}

// newSkeleton allocates a layer with zeroed parameters. Load uses it to
// avoid drawing random values that would be immediately overwritten.
func newSkeleton(nIn, nOut int, act Activation) *Dense {
	if nIn <= 0 || nOut <= 0 {
		panic(fmt.Sprintf("nn: invalid layer size %dx%d", nIn, nOut))
	}
	return &Dense{
		nIn:     nIn,
		nOut:    nOut,
		act:     act,
		weights: make([]float32, nIn*nOut),
		biases:  make([]float32, nOut),
	}
}

// NumIn returns the layer's input width.
func (d *Dense) NumIn() int { return d.nIn }

// NumOut returns the layer's output width.
func (d *Dense) NumOut() int { return d.nOut }

// Activation returns the layer's activation function.
func (d *Dense) Activation() Activation { return d.act }

// Forward computes output[o] = act(bias[o] + Σ_i input[i]*weight[i][o]) and
// returns the output alongside the Trace a later Backward call needs.
// The Trace keeps a reference to input; the caller must not mutate it before
// the matching Backward.
func (d *Dense) Forward(input []float32) ([]float32, *Trace, error) {
	if len(input) != d.nIn {
		return nil, nil, fmt.Errorf("%w: layer input has %d values, want %d", ErrDimensionMismatch, len(input), d.nIn)
	}
	output := make([]float32, d.nOut)
	for out := 0; out < d.nOut; out++ {
		sum := d.biases[out]
		for in := 0; in < d.nIn; in++ {
			sum += input[in] * d.weights[in*d.nOut+out]
		}
		output[out] = d.act.Apply(sum)
	}
	return output, &Trace{Input: input, Output: output}, nil
}

// Backward applies one gradient-descent step to the layer's parameters and
// returns the gradient with respect to the layer's input, to be handed to
// the preceding layer.
//
// For each output unit: delta = outputGrad[o] * act'(traced output[o]); the
// bias moves by -lr*delta and each weight by -lr*delta*traced input[i]. The
// input gradient accumulates delta*weight using the pre-update weight value.
func (d *Dense) Backward(tr *Trace, outputGrad []float32, lr float32) ([]float32, error) {
	if len(outputGrad) != d.nOut {
		return nil, fmt.Errorf("%w: output gradient has %d values, want %d", ErrDimensionMismatch, len(outputGrad), d.nOut)
	}
	if len(tr.Input) != d.nIn || len(tr.Output) != d.nOut {
		return nil, fmt.Errorf("%w: trace is %dx%d, layer is %dx%d", ErrDimensionMismatch, len(tr.Input), len(tr.Output), d.nIn, d.nOut)
	}
	inputGrad := make([]float32, d.nIn)
	for out := 0; out < d.nOut; out++ {
		delta := outputGrad[out] * d.act.Derivative(tr.Output[out])
		d.biases[out] -= lr * delta
		for in := 0; in < d.nIn; in++ {
			w := in*d.nOut + out
			inputGrad[in] += delta * d.weights[w]
			d.weights[w] -= lr * delta * tr.Input[in]
		}
	}
	return inputGrad, nil
}
