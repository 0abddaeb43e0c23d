package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
data:
  train_images: data/train-images.idx3-ubyte
  train_labels: data/train-labels.idx1-ubyte
  test_images: data/t10k-images.idx3-ubyte
  test_labels: data/t10k-labels.idx1-ubyte
model:
  topology: [784, 64, 10]
  path: out/digits.bin
train:
  epochs: 3
  learning_rate: 0.05
  seed: 99
augment:
  copies: 2
  max_shift: 2
  min_scale: 0.9
  max_scale: 1.1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/train-images.idx3-ubyte", cfg.Data.TrainImages)
	assert.Equal(t, []int{784, 64, 10}, cfg.Model.Topology)
	assert.Equal(t, "out/digits.bin", cfg.Model.Path)
	assert.Equal(t, 3, cfg.Train.Epochs)
	assert.Equal(t, float32(0.05), cfg.Train.LearningRate)
	assert.Equal(t, int64(99), cfg.Train.Seed)
	assert.Equal(t, 2, cfg.Augment.Copies)
	assert.Equal(t, float32(1.1), cfg.Augment.MaxScale)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  train_images: a
  train_labels: b
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Model.Topology, cfg.Model.Topology)
	assert.Equal(t, def.Model.Path, cfg.Model.Path)
	assert.Equal(t, def.Train.Epochs, cfg.Train.Epochs)
	assert.Equal(t, def.Train.LearningRate, cfg.Train.LearningRate)
	assert.Equal(t, 0, cfg.Augment.Copies)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "model: [not: a: mapping")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "short topology", mutate: func(c *Config) { c.Model.Topology = []int{10} }},
		{name: "zero width", mutate: func(c *Config) { c.Model.Topology = []int{784, 0, 10} }},
		{name: "zero epochs", mutate: func(c *Config) { c.Train.Epochs = 0 }},
		{name: "negative learning rate", mutate: func(c *Config) { c.Train.LearningRate = -0.1 }},
		{name: "negative copies", mutate: func(c *Config) { c.Augment.Copies = -1 }},
		{name: "inverted scale range", mutate: func(c *Config) {
			c.Augment.Copies = 1
			c.Augment.MinScale = 1.2
			c.Augment.MaxScale = 0.8
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	good := Default()
	assert.NoError(t, good.Validate())
}
