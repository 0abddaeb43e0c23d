package nn

import (
	"errors"
	"math/rand"
	"testing"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestNewTopology(t *testing.T) {
	net, err := New([]int{4, 3, 2}, testRng())
	if err != nil {
		t.Fatal(err)
	}
	if net.NumLayers() != 2 {
		t.Fatalf("layers = %d, want 2", net.NumLayers())
	}
	// Hidden layers are Tanh, final layer Sigmoid.
	if _, ok := net.Layer(0).Activation().(Tanh); !ok {
		t.Errorf("hidden activation = %v, want tanh", net.Layer(0).Activation())
	}
	if _, ok := net.Layer(1).Activation().(Sigmoid); !ok {
		t.Errorf("final activation = %v, want sigmoid", net.Layer(1).Activation())
	}

	got := net.Topology()
	want := []int{4, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("topology = %v, want %v", got, want)
		}
	}
}

func TestNewRejectsBadTopology(t *testing.T) {
	for _, topology := range [][]int{nil, {5}, {4, 0, 2}, {4, -1}} {
		if _, err := New(topology, testRng()); !errors.Is(err, ErrBadTopology) {
			t.Errorf("New(%v) = %v, want ErrBadTopology", topology, err)
		}
	}
}

func TestZeroNetworkOutputsHalf(t *testing.T) {
	// With every parameter zero the hidden tanh layers emit 0 and the
	// sigmoid output layer emits exactly 0.5 for any input.
	net, err := New([]int{3, 4, 2}, testRng())
	if err != nil {
		t.Fatal(err)
	}
	for _, layer := range net.layers {
		for i := range layer.weights {
			layer.weights[i] = 0
		}
		for i := range layer.biases {
			layer.biases[i] = 0
		}
	}

	out, err := net.Forward([]float32{0.3, -2.5, 17})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 0.5 {
			t.Errorf("output[%d] = %v, want exactly 0.5", i, v)
		}
	}
}

func TestForwardDimensionMismatch(t *testing.T) {
	net, err := New([]int{4, 3, 2}, testRng())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := net.Forward([]float32{1, 2, 3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
	if err := net.Train([]float32{1, 2, 3, 4}, []float32{1}, 0.05); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch for short target", err)
	}
}

func TestTrainReducesError(t *testing.T) {
	// Repeated updates on one fixed pair must reduce the mean squared
	// error on every step for a small learning rate.
	net, err := New([]int{4, 3, 2}, testRng())
	if err != nil {
		t.Fatal(err)
	}
	input := []float32{0.1, 0.9, 0.4, 0.7}
	target := []float32{1, 0}

	prev, err := net.TrainStep(input, target, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		loss, err := net.TrainStep(input, target, 0.05)
		if err != nil {
			t.Fatal(err)
		}
		if loss >= prev {
			t.Fatalf("step %d: loss %v did not decrease from %v", i, loss, prev)
		}
		prev = loss
	}
}

func TestPredictArgmax(t *testing.T) {
	net, err := New([]int{2, 4, 3}, testRng())
	if err != nil {
		t.Fatal(err)
	}
	input := []float32{0.2, 0.8}
	out, err := net.Forward(input)
	if err != nil {
		t.Fatal(err)
	}
	want := 0
	for i, v := range out {
		if v > out[want] {
			want = i
		}
	}
	got, err := net.Predict(input)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Predict = %d, want %d", got, want)
	}
}
