// Package trainer runs sequential per-sample gradient-descent training over
// an in-memory dataset.
package trainer

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/inkwell-ml/inkwell/internal/mnist"
	"github.com/inkwell-ml/inkwell/internal/nn"
)

// Config captures the knobs for one training run.
type Config struct {
	Epochs       int
	LearningRate float32
	Shuffle      bool
	LogEvery     int // epochs between progress lines; 0 logs every epoch
}

// EpochStats summarizes one full pass over the training set.
type EpochStats struct {
	Epoch   int
	Loss    float64 // mean squared error over all samples
	Elapsed time.Duration
}

// Run trains net on samples for cfg.Epochs epochs, one sample at a time in
// a single goroutine. The sample order is reshuffled from rng before each
// epoch when cfg.Shuffle is set. Returns per-epoch statistics.
func Run(net *nn.Network, samples []mnist.Sample, cfg Config, rng *rand.Rand) ([]EpochStats, error) {
	if cfg.Epochs <= 0 {
		return nil, errors.New("trainer: epochs must be > 0")
	}
	if cfg.LearningRate <= 0 {
		return nil, errors.New("trainer: learning rate must be > 0")
	}
	if len(samples) == 0 {
		return nil, errors.New("trainer: no training samples")
	}
	logEvery := cfg.LogEvery
	if logEvery <= 0 {
		logEvery = 1
	}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	stats := make([]EpochStats, 0, cfg.Epochs)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		start := time.Now()
		if cfg.Shuffle {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		var sum float64
		for _, idx := range order {
			s := samples[idx]
			loss, err := net.TrainStep(s.Pixels, s.Target, cfg.LearningRate)
			if err != nil {
				return stats, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			sum += loss
		}

		es := EpochStats{
			Epoch:   epoch,
			Loss:    sum / float64(len(order)),
			Elapsed: time.Since(start),
		}
		stats = append(stats, es)
		if epoch%logEvery == 0 {
			log.Printf("epoch=%d loss=%.6f elapsed=%s", es.Epoch, es.Loss, es.Elapsed.Round(time.Millisecond))
		}
	}
	return stats, nil
}
