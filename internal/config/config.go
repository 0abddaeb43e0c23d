// Package config reads the YAML run configuration for training and
// evaluation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training or evaluation run.
type Config struct {
	Data    Data    `yaml:"data"`
	Model   Model   `yaml:"model"`
	Train   Train   `yaml:"train"`
	Augment Augment `yaml:"augment"`
}

// Data names the dataset file pairs.
type Data struct {
	TrainImages string `yaml:"train_images"`
	TrainLabels string `yaml:"train_labels"`
	TestImages  string `yaml:"test_images"`
	TestLabels  string `yaml:"test_labels"`
}

// Model describes the network shape and where its parameters live on disk.
type Model struct {
	Topology []int  `yaml:"topology"`
	Path     string `yaml:"path"`
}

// Train holds the training-loop hyperparameters.
type Train struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float32 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"`
}

// Augment holds the augmentation schedule. Copies is the number of derived
// copies per training sample; MaxShift bounds the random translation in
// pixels; MinScale/MaxScale bound the random zoom factor. Copies = 0
// disables augmentation.
type Augment struct {
	Copies   int     `yaml:"copies"`
	MaxShift int     `yaml:"max_shift"`
	MinScale float32 `yaml:"min_scale"`
	MaxScale float32 `yaml:"max_scale"`
}

// Default returns the configuration used when a field is absent from the
// YAML file.
func Default() Config {
	return Config{
		Model: Model{
			Topology: []int{784, 128, 10},
			Path:     "model.bin",
		},
		Train: Train{
			Epochs:       1,
			LearningRate: 0.05,
			Seed:         1,
			LogEvery:     1,
		},
	}
}

// Load reads and validates a Config from a YAML file, starting from
// Default for any absent field.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the numeric constraints.
func (c *Config) Validate() error {
	if len(c.Model.Topology) < 2 {
		return errors.New("config: model.topology needs at least two widths")
	}
	for _, w := range c.Model.Topology {
		if w <= 0 {
			return fmt.Errorf("config: model.topology has non-positive width %d", w)
		}
	}
	if c.Train.Epochs <= 0 {
		return errors.New("config: train.epochs must be > 0")
	}
	if c.Train.LearningRate <= 0 {
		return errors.New("config: train.learning_rate must be > 0")
	}
	if c.Augment.Copies < 0 {
		return errors.New("config: augment.copies must be >= 0")
	}
	if c.Augment.Copies > 0 {
		if c.Augment.MaxShift < 0 {
			return errors.New("config: augment.max_shift must be >= 0")
		}
		if c.Augment.MinScale > c.Augment.MaxScale {
			return errors.New("config: augment.min_scale exceeds augment.max_scale")
		}
		if c.Augment.MaxScale > 0 && c.Augment.MinScale <= 0 {
			return errors.New("config: augment.min_scale must be > 0")
		}
	}
	return nil
}
