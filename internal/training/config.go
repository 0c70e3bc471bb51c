package training

import (
	"github.com/go-sod/sleepq/internal/dataset"
)

type Config struct {
	// Fraction of the dataset held out for evaluation
	Holdout       float64 `envconfig:"SLEEPQ_TRAIN_HOLDOUT" default:"0.2" toml:"holdout"`
	MaxIterations int     `envconfig:"SLEEPQ_TRAIN_MAX_ITERATIONS" default:"1000" toml:"max_iterations"`
	// Inverse L2 regularization strength
	C             float64        `envconfig:"SLEEPQ_TRAIN_C" default:"1.0" toml:"c"`
	StrictScaling bool           `envconfig:"SLEEPQ_TRAIN_STRICT_SCALING" default:"false" toml:"strict_scaling"`
	Dataset       dataset.Config `toml:"dataset"`
}
