// Package main provides the inkwell CLI: training and evaluation of
// handwritten-digit classifiers.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/inkwell-ml/inkwell/internal/augment"
	"github.com/inkwell-ml/inkwell/internal/config"
	"github.com/inkwell-ml/inkwell/internal/mnist"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/trainer"
)

const version = "v0.1.0"

func usage() {
	fmt.Println("inkwell - handwritten digit MLP trainer")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  train -config <file>    Train a model and save it")
	fmt.Println("  eval  -config <file>    Evaluate a saved model on the test set")
	fmt.Println("  version                 Show version")
}

func main() {
	log.SetFlags(log.LstdFlags)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "eval":
		err = runEval(os.Args[2:])
	case "version":
		fmt.Printf("inkwell %s\n", version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "inkwell.yaml", "run configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(cfg.Train.Seed))

	data, err := mnist.Load(cfg.Data.TrainImages, cfg.Data.TrainLabels)
	if err != nil {
		return err
	}
	log.Printf("loaded %d training samples (%dx%d)", data.Len(), data.Rows, data.Cols)

	samples := data.Samples
	if cfg.Augment.Copies > 0 {
		samples = augment.Expand(samples, augmentTransform(cfg.Augment, data.Rows, data.Cols, rng), cfg.Augment.Copies)
		log.Printf("augmented to %d samples", len(samples))
	}

	net, err := nn.New(cfg.Model.Topology, rng)
	if err != nil {
		return err
	}
	_, err = trainer.Run(net, samples, trainer.Config{
		Epochs:       cfg.Train.Epochs,
		LearningRate: cfg.Train.LearningRate,
		Shuffle:      true,
		LogEvery:     cfg.Train.LogEvery,
	}, rng)
	if err != nil {
		return err
	}

	if err := net.SaveFile(cfg.Model.Path); err != nil {
		return err
	}
	log.Printf("model saved to %s", cfg.Model.Path)

	if cfg.Data.TestImages != "" {
		return evaluate(net, cfg.Data.TestImages, cfg.Data.TestLabels)
	}
	return nil
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	configPath := fs.String("config", "inkwell.yaml", "run configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	net, err := nn.LoadFile(cfg.Model.Path)
	if err != nil {
		return err
	}
	return evaluate(net, cfg.Data.TestImages, cfg.Data.TestLabels)
}

func evaluate(net *nn.Network, imagePath, labelPath string) error {
	data, err := mnist.Load(imagePath, labelPath)
	if err != nil {
		return err
	}
	res, err := trainer.Evaluate(net, data.Samples)
	if err != nil {
		return err
	}
	log.Printf("eval samples=%d correct=%d accuracy=%.2f%% loss=%.6f",
		res.Samples, res.Correct, res.Accuracy*100, res.Loss)
	return nil
}

// augmentTransform builds the per-sample transform chain from the
// configured schedule. Each derived copy draws fresh shift and zoom
// parameters from rng.
func augmentTransform(a config.Augment, rows, cols int, rng *rand.Rand) augment.Transform {
	var chain []augment.Transform
	if a.MaxShift > 0 {
		chain = append(chain, augment.RandomShift(rng, a.MaxShift, cols, rows))
	}
	if a.MaxScale > 0 {
		chain = append(chain, augment.RandomZoom(rng, a.MinScale, a.MaxScale, cols, rows))
	}
	if len(chain) == 0 {
		return nil
	}
	return augment.Chain(chain...)
}
