// Copyright 2026 Inkwell. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mnist is the public API of the IDX dataset loader.
package mnist

import (
	"io"

	"github.com/inkwell-ml/inkwell/internal/mnist"
)

// NumClasses is the number of digit classes.
const NumClasses = mnist.NumClasses

// Sample is one labeled image with normalized pixels and a one-hot target.
type Sample = mnist.Sample

// Dataset is an in-memory set of samples sharing one image geometry.
type Dataset = mnist.Dataset

// Errors.
var (
	ErrBadMagic      = mnist.ErrBadMagic
	ErrCountMismatch = mnist.ErrCountMismatch
)

// Load reads the paired IDX image/label files at the given paths.
func Load(imagePath, labelPath string) (*Dataset, error) {
	return mnist.Load(imagePath, labelPath)
}

// Read parses a paired IDX image/label stream.
func Read(images, labels io.Reader) (*Dataset, error) {
	return mnist.Read(images, labels)
}
