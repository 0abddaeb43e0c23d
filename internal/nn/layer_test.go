package nn

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestDenseForwardDimensionMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layer := NewDense(3, 2, Tanh{}, rng)

	_, _, err := layer.Forward([]float32{1, 2})
	if err == nil {
		t.Fatal("expected error for short input")
	}
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestDenseBackwardDimensionMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layer := NewDense(3, 2, Tanh{}, rng)

	_, tr, err := layer.Forward([]float32{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := layer.Backward(tr, []float32{1, 2, 3}, 0.1); err == nil {
		t.Fatal("expected error for wrong gradient length")
	}
}

func TestDenseForwardHandComputed(t *testing.T) {
	// 2x1 layer with fixed parameters: out = sigmoid(b + x0*w0 + x1*w1).
	layer := newSkeleton(2, 1, Sigmoid{})
	layer.weights[0] = 0.5
	layer.weights[1] = -0.25
	layer.biases[0] = 0.1

	out, tr, err := layer.Forward([]float32{1.0, 2.0})
	if err != nil {
		t.Fatal(err)
	}
	// sum = 0.1 + 0.5 - 0.5 = 0.1
	want := 1.0 / (1.0 + math.Exp(-0.1))
	if math.Abs(float64(out[0])-want) > 1e-6 {
		t.Errorf("forward = %v, want %v", out[0], want)
	}
	if len(tr.Input) != 2 || len(tr.Output) != 1 {
		t.Errorf("trace is %dx%d, want 2x1", len(tr.Input), len(tr.Output))
	}
}

func TestDenseBackwardHandComputed(t *testing.T) {
	// 1x1 linear-ish check with ReLU in its active region, so the
	// derivative is exactly 1 and every update is easy to follow.
	layer := newSkeleton(1, 1, ReLU{})
	layer.weights[0] = 2.0
	layer.biases[0] = 1.0

	out, tr, err := layer.Forward([]float32{3.0}) // 1 + 2*3 = 7
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 7.0 {
		t.Fatalf("forward = %v, want 7", out[0])
	}

	inGrad, err := layer.Backward(tr, []float32{0.5}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	// delta = 0.5 * 1. Input gradient uses the pre-update weight: 0.5*2 = 1.
	if inGrad[0] != 1.0 {
		t.Errorf("input gradient = %v, want 1", inGrad[0])
	}
	// bias: 1 - 0.1*0.5 = 0.95; weight: 2 - 0.1*0.5*3 = 1.85.
	if math.Abs(float64(layer.biases[0])-0.95) > 1e-6 {
		t.Errorf("bias = %v, want 0.95", layer.biases[0])
	}
	if math.Abs(float64(layer.weights[0])-1.85) > 1e-6 {
		t.Errorf("weight = %v, want 1.85", layer.weights[0])
	}
}

func TestDenseTracesAreIndependent(t *testing.T) {
	// Two forward passes, then a backward against the first trace: the
	// second pass must not corrupt the first record.
	layer := newSkeleton(1, 1, ReLU{})
	layer.weights[0] = 1.0

	_, tr1, err := layer.Forward([]float32{2.0})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = layer.Forward([]float32{100.0})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := layer.Backward(tr1, []float32{1.0}, 0.1); err != nil {
		t.Fatal(err)
	}
	// weight update used tr1's input (2), not the later input (100):
	// 1 - 0.1*1*2 = 0.8.
	if math.Abs(float64(layer.weights[0])-0.8) > 1e-6 {
		t.Errorf("weight = %v, want 0.8", layer.weights[0])
	}
}

func TestNewDenseInitRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	layer := NewDense(10, 10, Tanh{}, rng)

	for _, w := range layer.weights {
		if w < -1.0 || w >= 1.0 {
			t.Fatalf("weight %v outside [-1, 1)", w)
		}
	}
	for _, b := range layer.biases {
		if b < -1.0 || b >= 1.0 {
			t.Fatalf("bias %v outside [-1, 1)", b)
		}
	}
}
