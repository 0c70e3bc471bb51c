// Package metrics defines the OpenCensus measures recorded by the service
// and exposes them through a Prometheus exporter.
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	PredictionCount    = stats.Int64("sleepq/predictions", "Number of predictions served", stats.UnitDimensionless)
	PredictionLatency  = stats.Float64("sleepq/prediction_latency", "Time spent transforming and scoring a record", stats.UnitMilliseconds)
	ValidationFailures = stats.Int64("sleepq/validation_failures", "Number of rejected prediction inputs", stats.UnitDimensionless)
	TrainingRuns       = stats.Int64("sleepq/training_runs", "Number of completed training runs", stats.UnitDimensionless)
	TrainingDuration   = stats.Float64("sleepq/training_duration", "Wall time of a training run", stats.UnitMilliseconds)
	HoldoutAccuracy    = stats.Float64("sleepq/holdout_accuracy", "Accuracy of the last trained model on its holdout split", stats.UnitDimensionless)
)

var (
	KeyLabel     = mustKey("label")
	KeyField     = mustKey("field")
	KeyConverged = mustKey("converged")
)

func mustKey(name string) tag.Key {
	k, err := tag.NewKey(name)
	if err != nil {
		panic(fmt.Sprintf("tag.NewKey(%q): %v", name, err))
	}
	return k
}

// views is built once. OpenCensus rejects a view whose aggregation is not
// the one already registered under the same name.
var views = []*view.View{
	{
		Name:        PredictionCount.Name(),
		Description: PredictionCount.Description(),
		Measure:     PredictionCount,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyLabel},
	},
	{
		Name:        PredictionLatency.Name(),
		Description: PredictionLatency.Description(),
		Measure:     PredictionLatency,
		Aggregation: view.Distribution(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50),
	},
	{
		Name:        ValidationFailures.Name(),
		Description: ValidationFailures.Description(),
		Measure:     ValidationFailures,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyField},
	},
	{
		Name:        TrainingRuns.Name(),
		Description: TrainingRuns.Description(),
		Measure:     TrainingRuns,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyConverged},
	},
	{
		Name:        TrainingDuration.Name(),
		Description: TrainingDuration.Description(),
		Measure:     TrainingDuration,
		Aggregation: view.LastValue(),
	},
	{
		Name:        HoldoutAccuracy.Name(),
		Description: HoldoutAccuracy.Description(),
		Measure:     HoldoutAccuracy,
		Aggregation: view.LastValue(),
	},
}

func Views() []*view.View {
	return views
}

// Register registers all views. It is safe to call more than once.
func Register() error {
	if err := view.Register(Views()...); err != nil {
		return fmt.Errorf("view.Register: %w", err)
	}
	return nil
}

// NewExporter registers the views and returns a Prometheus exporter that
// serves them over HTTP.
func NewExporter(cfg *Config) (*prometheus.Exporter, error) {
	if err := Register(); err != nil {
		return nil, err
	}
	pe, err := prometheus.NewExporter(prometheus.Options{Namespace: cfg.Namespace})
	if err != nil {
		return nil, fmt.Errorf("prometheus.NewExporter: %w", err)
	}
	view.RegisterExporter(pe)
	return pe, nil
}

func RecordPrediction(ctx context.Context, label string, latency time.Duration) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyLabel, label)},
		PredictionCount.M(1),
		PredictionLatency.M(float64(latency)/float64(time.Millisecond)),
	)
}

func RecordValidationFailure(ctx context.Context, field string) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyField, field)}, ValidationFailures.M(1))
}

func RecordTraining(ctx context.Context, accuracy float64, converged bool, took time.Duration) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyConverged, strconv.FormatBool(converged))},
		TrainingRuns.M(1),
		TrainingDuration.M(float64(took)/float64(time.Millisecond)),
		HoldoutAccuracy.M(accuracy),
	)
}
