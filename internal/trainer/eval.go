package trainer

import (
	"errors"
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/mnist"
	"github.com/inkwell-ml/inkwell/internal/nn"
)

// Result summarizes an evaluation pass over a held-out sample set.
type Result struct {
	Samples  int
	Correct  int
	Accuracy float64
	Loss     float64 // mean squared error
}

// Evaluate runs the network read-only over samples, scoring each prediction
// by argmax against the sample label. No parameters are modified.
func Evaluate(net *nn.Network, samples []mnist.Sample) (Result, error) {
	if len(samples) == 0 {
		return Result{}, errors.New("trainer: no evaluation samples")
	}
	var res Result
	var sumSq float64
	var terms int
	for _, s := range samples {
		pred, err := net.Forward(s.Pixels)
		if err != nil {
			return Result{}, err
		}
		if len(pred) != len(s.Target) {
			return Result{}, fmt.Errorf("%w: network has %d outputs, target has %d values",
				nn.ErrDimensionMismatch, len(pred), len(s.Target))
		}
		best := 0
		for i, p := range pred {
			if p > pred[best] {
				best = i
			}
			d := float64(p - s.Target[i])
			sumSq += d * d
			terms++
		}
		if best == s.Label {
			res.Correct++
		}
	}
	res.Samples = len(samples)
	res.Accuracy = float64(res.Correct) / float64(res.Samples)
	res.Loss = sumSq / float64(terms)
	return res, nil
}
