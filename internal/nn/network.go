// Package nn implements a small feed-forward neural network trained by
// per-sample gradient descent.
//
// This package provides the building blocks of the training engine:
//   - Activation: closed set of activation functions (Sigmoid, Tanh, ReLU, LeakyReLU)
//   - Dense: fully connected layer with manual forward/backward passes
//   - Network: ordered stack of Dense layers with training and binary persistence
//
// Everything is single-threaded and synchronous: one Train call runs one
// forward pass and one backward pass in the calling goroutine. A Network is
// not safe for concurrent use.
package nn

import (
	"fmt"
	"math/rand"
)

// Network is an ordered stack of Dense layers. Adjacent layers agree on
// width: layers[i].NumOut() == layers[i+1].NumIn(). The invariant holds at
// construction and is re-checked by Load.
type Network struct {
	layers []*Dense
}

// New builds a network from a topology of layer widths, e.g.
// {784, 128, 10} for a one-hidden-layer digit classifier. Hidden layers use
// Tanh; the final layer uses Sigmoid so outputs stay in (0, 1). All
// parameters are initialized from rng.
func New(topology []int, rng *rand.Rand) (*Network, error) {
	if len(topology) < 2 {
		return nil, fmt.Errorf("%w: got %v", ErrBadTopology, topology)
	}
	for _, width := range topology {
		if width <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrBadTopology, topology)
		}
	}
	layers := make([]*Dense, len(topology)-1)
	for i := range layers {
		var act Activation = Tanh{}
		if i == len(layers)-1 {
			act = Sigmoid{}
		}
		layers[i] = NewDense(topology[i], topology[i+1], act, rng)
	}
	return &Network{layers: layers}, nil
}

// NumLayers returns the number of layers.
func (n *Network) NumLayers() int { return len(n.layers) }

// Layer returns the i-th layer.
func (n *Network) Layer(i int) *Dense { return n.layers[i] }

// Topology returns the layer widths the network was built from.
func (n *Network) Topology() []int {
	if len(n.layers) == 0 {
		return nil
	}
	t := make([]int, 0, len(n.layers)+1)
	t = append(t, n.layers[0].nIn)
	for _, l := range n.layers {
		t = append(t, l.nOut)
	}
	return t
}

// Forward chains the layers left to right and returns the final layer's
// output. The input length must match the first layer's input width.
func (n *Network) Forward(input []float32) ([]float32, error) {
	out, _, err := n.forward(input)
	return out, err
}

func (n *Network) forward(input []float32) ([]float32, []*Trace, error) {
	traces := make([]*Trace, len(n.layers))
	values := input
	for i, layer := range n.layers {
		var err error
		values, traces[i], err = layer.Forward(values)
		if err != nil {
			return nil, nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return values, traces, nil
}

// Predict runs Forward and returns the index of the largest output.
func (n *Network) Predict(input []float32) (int, error) {
	out, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	best := 0
	for i, v := range out {
		if v > out[best] {
			best = i
		}
	}
	return best, nil
}

// Train runs one forward pass on input, then backpropagates against target
// with the given learning rate, updating every layer's parameters once.
func (n *Network) Train(input, target []float32, lr float32) error {
	_, err := n.TrainStep(input, target, lr)
	return err
}

// TrainStep is Train plus a loss report: it returns the mean squared error
// between the pre-update prediction and the target, so a training loop can
// track progress without a second forward pass.
//
// The initial gradient per output unit is prediction[o] - target[o]: the
// mean-squared-error gradient applied directly through the bounded output.
// This is the reference numeric behavior, kept as-is rather than replaced
// with a combined sigmoid-cross-entropy gradient.
func (n *Network) TrainStep(input, target []float32, lr float32) (float64, error) {
	prediction, traces, err := n.forward(input)
	if err != nil {
		return 0, err
	}
	if len(target) != len(prediction) {
		return 0, fmt.Errorf("%w: target has %d values, want %d", ErrDimensionMismatch, len(target), len(prediction))
	}
	grad := make([]float32, len(prediction))
	var sumSq float64
	for i := range grad {
		grad[i] = prediction[i] - target[i]
		sumSq += float64(grad[i]) * float64(grad[i])
	}
	for i := len(n.layers) - 1; i >= 0; i-- {
		grad, err = n.layers[i].Backward(traces[i], grad, lr)
		if err != nil {
			return 0, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return sumSq / float64(len(prediction)), nil
}
