package training

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/sleepq/internal/dataset"
	"github.com/go-sod/sleepq/internal/labeling"
)

func testConfig(file string) *Config {
	return &Config{
		Holdout:       0.2,
		MaxIterations: 1000,
		C:             1.0,
		Dataset: dataset.Config{
			Seed:  42,
			Size:  500,
			File:  file,
			Reuse: true,
		},
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "sleep_data.csv"))
	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, a.Validate())

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, int64(42), a.Seed)
	assert.Equal(t, int32(500), a.Samples)
	assert.Equal(t, int32(labeling.NumClasses), a.Weights.Classes)
	assert.Equal(t, int32(a.Transformer.Dim()), a.Weights.Features)
	assert.Greater(t, a.Accuracy, 0.6, "holdout accuracy should beat the majority class")
}

func TestRun_Reproducible(t *testing.T) {
	first, err := Run(context.Background(), testConfig(""))
	require.NoError(t, err)
	second, err := Run(context.Background(), testConfig(""))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Transformer, second.Transformer)
	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.Accuracy, second.Accuracy)
}

func TestRun_ReusedDatasetMatchesGenerated(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sleep_data.csv")
	generated, err := Run(context.Background(), testConfig(file))
	require.NoError(t, err)
	reused, err := Run(context.Background(), testConfig(file))
	require.NoError(t, err)
	assert.Equal(t, generated.Weights, reused.Weights)
}

func TestFit_Errors(t *testing.T) {
	cfg := testConfig("")
	cfg.Holdout = 1.5
	_, err := Fit(context.Background(), cfg, dataset.Generate(42, 100))
	assert.Error(t, err)

	cfg = testConfig("")
	cfg.MaxIterations = 0
	_, err = Fit(context.Background(), cfg, dataset.Generate(42, 100))
	assert.Error(t, err)

	_, err = Fit(context.Background(), testConfig(""), dataset.Generate(42, 1))
	assert.Error(t, err)
}
