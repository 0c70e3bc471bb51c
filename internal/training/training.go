// Package training runs the generate, split, fit and evaluate pipeline that
// produces a model artifact.
package training

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/go-sod/sleepq/internal/artifact"
	"github.com/go-sod/sleepq/internal/classifier"
	"github.com/go-sod/sleepq/internal/dataset"
	"github.com/go-sod/sleepq/internal/labeling"
	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/internal/metrics"
	"github.com/go-sod/sleepq/internal/transform"
)

// Run trains a new artifact. The dataset seed drives both generation and
// the train/holdout split, so a fixed configuration always yields the same
// transformer and weights.
func Run(ctx context.Context, cfg *Config) (*artifact.Artifact, error) {
	data, err := dataset.LoadOrGenerate(ctx, &cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return Fit(ctx, cfg, data)
}

// Fit trains an artifact from an already loaded dataset.
func Fit(ctx context.Context, cfg *Config, data dataset.Dataset) (*artifact.Artifact, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	train, test, err := dataset.Split(data, cfg.Dataset.Seed, cfg.Holdout)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	var transformOpts []transform.Option
	if cfg.StrictScaling {
		transformOpts = append(transformOpts, transform.WithStrictScaling())
	}
	state, err := transform.Fit(ctx, train.Records(), transformOpts...)
	if err != nil {
		return nil, fmt.Errorf("transform.Fit: %w", err)
	}

	weights, report, err := classifier.Fit(ctx,
		state.TransformAll(train.Records()),
		train.Labels(),
		classifier.WithClasses(labeling.NumClasses),
		classifier.WithMaxIterations(cfg.MaxIterations),
		classifier.WithC(cfg.C),
	)
	if err != nil {
		return nil, fmt.Errorf("classifier.Fit: %w", err)
	}

	accuracy, err := weights.Accuracy(state.TransformAll(test.Records()), test.Labels())
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	a := &artifact.Artifact{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Seed:        cfg.Dataset.Seed,
		Samples:     int32(len(data)),
		Holdout:     cfg.Holdout,
		Accuracy:    accuracy,
		Iterations:  int32(report.Iterations),
		Converged:   report.Converged,
		Transformer: state,
		Weights:     *weights,
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("trained artifact is invalid: %w", err)
	}

	took := time.Since(start)
	metrics.RecordTraining(ctx, accuracy, report.Converged, took)
	logger.Infof("trained model %s: train=%d holdout=%d accuracy=%.4f iterations=%d converged=%t took=%s",
		a.ID, len(train), len(test), accuracy, report.Iterations, report.Converged, took)

	return a, nil
}
