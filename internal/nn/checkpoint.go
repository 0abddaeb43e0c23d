package nn

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Model files store little-endian fixed-width values:
//
//	int32 layerCount
//	per layer, in order:
//	  int32 nIn
//	  int32 nOut
//	  1 byte activation tag
//	  nIn*nOut float32 weights (input-major)
//	  nOut float32 biases
const maxLayers = 1 << 10

// Save writes the network's layers and parameters to w.
func (n *Network) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(n.layers))); err != nil {
		return fmt.Errorf("write layer count: %w", err)
	}
	for i, layer := range n.layers {
		header := []any{int32(layer.nIn), int32(layer.nOut), layer.act.Tag()}
		for _, v := range header {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return fmt.Errorf("write layer %d header: %w", i, err)
			}
		}
		if err := binary.Write(w, binary.LittleEndian, layer.weights); err != nil {
			return fmt.Errorf("write layer %d weights: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, layer.biases); err != nil {
			return fmt.Errorf("write layer %d biases: %w", i, err)
		}
	}
	return nil
}

// SaveFile saves the network to a file at path, creating or truncating it.
func (n *Network) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := n.Save(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// Load reads a network from r. Layers are rebuilt as zeroed skeletons and
// their parameters filled from the stored floats, so no random draws happen
// during load. Returns ErrBadModelFile (possibly wrapped) if the stream is
// truncated or inconsistent.
func Load(r io.Reader) (*Network, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: layer count: %v", ErrBadModelFile, err)
	}
	if count <= 0 || count > maxLayers {
		return nil, fmt.Errorf("%w: layer count %d", ErrBadModelFile, count)
	}
	layers := make([]*Dense, count)
	for i := range layers {
		var nIn, nOut int32
		var tag byte
		if err := binary.Read(r, binary.LittleEndian, &nIn); err != nil {
			return nil, fmt.Errorf("%w: layer %d header: %v", ErrBadModelFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &nOut); err != nil {
			return nil, fmt.Errorf("%w: layer %d header: %v", ErrBadModelFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &tag); err != nil {
			return nil, fmt.Errorf("%w: layer %d header: %v", ErrBadModelFile, i, err)
		}
		if nIn <= 0 || nOut <= 0 {
			return nil, fmt.Errorf("%w: layer %d is %dx%d", ErrBadModelFile, i, nIn, nOut)
		}
		if i > 0 && layers[i-1].nOut != int(nIn) {
			return nil, fmt.Errorf("%w: layer %d input width %d does not match previous output width %d",
				ErrBadModelFile, i, nIn, layers[i-1].nOut)
		}
		act, err := ActivationByTag(tag)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %v", ErrBadModelFile, i, err)
		}
		layer := newSkeleton(int(nIn), int(nOut), act)
		if err := binary.Read(r, binary.LittleEndian, layer.weights); err != nil {
			return nil, fmt.Errorf("%w: layer %d weights: %v", ErrBadModelFile, i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, layer.biases); err != nil {
			return nil, fmt.Errorf("%w: layer %d biases: %v", ErrBadModelFile, i, err)
		}
		layers[i] = layer
	}
	return &Network{layers: layers}, nil
}

// LoadFile loads a network from the file at path.
func LoadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	defer f.Close()
	return Load(bufio.NewReader(f))
}

// Load replaces the receiver's layers with the network read from r. On
// error the receiver is left unchanged.
func (n *Network) Load(r io.Reader) error {
	loaded, err := Load(r)
	if err != nil {
		return err
	}
	n.layers = loaded.layers
	return nil
}

// LoadFile replaces the receiver's layers with the network stored at path.
// On error the receiver is left unchanged.
func (n *Network) LoadFile(path string) error {
	loaded, err := LoadFile(path)
	if err != nil {
		return err
	}
	n.layers = loaded.layers
	return nil
}
