// Copyright 2026 Inkwell. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn is the public API of the inkwell training engine.
//
// It re-exports the internal implementation so external collaborators, such
// as a drawing-canvas front end, can evaluate and load networks without
// touching layer internals:
//
//	net, err := nn.LoadFile("model.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	digit, err := net.Predict(pixels)
package nn

import (
	"io"
	"math/rand"

	"github.com/inkwell-ml/inkwell/internal/nn"
)

// Network is an ordered stack of dense layers.
type Network = nn.Network

// Dense is one fully connected layer.
type Dense = nn.Dense

// Trace records one forward pass through a layer for the matching backward
// pass.
type Trace = nn.Trace

// Activation is the closed set of activation functions.
type Activation = nn.Activation

// Activation kinds.
type (
	Sigmoid   = nn.Sigmoid
	Tanh      = nn.Tanh
	ReLU      = nn.ReLU
	LeakyReLU = nn.LeakyReLU
)

// Errors.
var (
	ErrDimensionMismatch = nn.ErrDimensionMismatch
	ErrBadTopology       = nn.ErrBadTopology
	ErrUnknownActivation = nn.ErrUnknownActivation
	ErrBadModelFile      = nn.ErrBadModelFile
)

// New builds a network from a topology of layer widths with parameters
// drawn from rng. Hidden layers use Tanh, the final layer Sigmoid.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	net, err := nn.New([]int{784, 128, 10}, rng)
func New(topology []int, rng *rand.Rand) (*Network, error) {
	return nn.New(topology, rng)
}

// NewDense creates a single layer with uniform random parameters in [-1, 1).
func NewDense(nIn, nOut int, act Activation, rng *rand.Rand) *Dense {
	return nn.NewDense(nIn, nOut, act, rng)
}

// ActivationByTag maps a model-file tag byte back to its Activation.
func ActivationByTag(tag byte) (Activation, error) {
	return nn.ActivationByTag(tag)
}

// Load reads a network from r.
func Load(r io.Reader) (*Network, error) {
	return nn.Load(r)
}

// LoadFile loads a network from the model file at path.
func LoadFile(path string) (*Network, error) {
	return nn.LoadFile(path)
}
