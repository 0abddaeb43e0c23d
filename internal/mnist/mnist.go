// Package mnist loads the MNIST handwritten-digit dataset from its paired
// IDX binary files.
//
// IDX files store big-endian headers followed by raw unsigned bytes:
//
//	image file: uint32 magic (2051), uint32 count, uint32 rows, uint32 cols,
//	            then count*rows*cols pixel bytes (0-255)
//	label file: uint32 magic (2049), uint32 count, then count label bytes (0-9)
//
// Download MNIST from: http://yann.lecun.com/exdb/mnist/
package mnist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// NumClasses is the number of digit classes.
const NumClasses = 10

// IDX magic numbers.
const (
	imageMagic = 2051
	labelMagic = 2049
)

// maxImageDim bounds the rows/cols header fields. Header values are
// untrusted; without a cap a short malformed file could demand an
// allocation of hundreds of gigabytes before the first body byte is read.
const maxImageDim = 1 << 12

// Sample is one labeled image: pixel intensities normalized to [0, 1], a
// one-hot target vector of length NumClasses, and the raw label. Samples are
// immutable once loaded; augmentation derives new samples instead of
// mutating them.
type Sample struct {
	Pixels []float32
	Target []float32
	Label  int
}

// Dataset is an in-memory set of samples sharing one image geometry.
type Dataset struct {
	Samples []Sample
	Rows    int
	Cols    int
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Samples) }

// Load opens the image and label files at the given paths and reads them
// with Read. Returns a wrapped open error if either file cannot be opened,
// before any header is read.
func Load(imagePath, labelPath string) (*Dataset, error) {
	imgFile, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	defer imgFile.Close()

	lblFile, err := os.Open(labelPath)
	if err != nil {
		return nil, fmt.Errorf("open label file: %w", err)
	}
	defer lblFile.Close()

	return Read(bufio.NewReader(imgFile), bufio.NewReader(lblFile))
}

// Read parses a paired IDX image/label stream. Both headers are validated
// before any sample data is read; on any failure Read returns a nil dataset
// and an error, never a partially filled dataset.
func Read(images, labels io.Reader) (*Dataset, error) {
	var magicImg, numImg, rows, cols uint32
	for _, field := range []*uint32{&magicImg, &numImg, &rows, &cols} {
		if err := binary.Read(images, binary.BigEndian, field); err != nil {
			return nil, fmt.Errorf("read image header: %w", err)
		}
	}
	var magicLbl, numLbl uint32
	for _, field := range []*uint32{&magicLbl, &numLbl} {
		if err := binary.Read(labels, binary.BigEndian, field); err != nil {
			return nil, fmt.Errorf("read label header: %w", err)
		}
	}

	if magicImg != imageMagic {
		return nil, fmt.Errorf("%w: image magic %d, want %d", ErrBadMagic, magicImg, imageMagic)
	}
	if magicLbl != labelMagic {
		return nil, fmt.Errorf("%w: label magic %d, want %d", ErrBadMagic, magicLbl, labelMagic)
	}
	if numImg != numLbl {
		return nil, fmt.Errorf("%w: %d images, %d labels", ErrCountMismatch, numImg, numLbl)
	}
	if rows > maxImageDim || cols > maxImageDim {
		return nil, fmt.Errorf("%w: %dx%d images", ErrHeaderTooLarge, rows, cols)
	}

	// The sample slice grows with append so an overstated count surfaces
	// as a truncated-read error instead of one huge upfront allocation.
	imageSize := int(rows * cols)
	samples := make([]Sample, 0, min(int(numImg), 1<<16))
	pixelBuf := make([]byte, imageSize)
	labelBuf := make([]byte, 1)

	for i := 0; i < int(numImg); i++ {
		if _, err := io.ReadFull(labels, labelBuf); err != nil {
			return nil, fmt.Errorf("read label %d: %w", i, err)
		}
		label := int(labelBuf[0])

		target := make([]float32, NumClasses)
		if label >= 0 && label < NumClasses {
			target[label] = 1.0
		}

		if _, err := io.ReadFull(images, pixelBuf); err != nil {
			return nil, fmt.Errorf("read image %d: %w", i, err)
		}
		pixels := make([]float32, imageSize)
		for j, b := range pixelBuf {
			pixels[j] = float32(b) / 255.0
		}

		samples = append(samples, Sample{Pixels: pixels, Target: target, Label: label})
	}

	return &Dataset{Samples: samples, Rows: int(rows), Cols: int(cols)}, nil
}
