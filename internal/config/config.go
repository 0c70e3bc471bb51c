package sleepq

import (
	"github.com/go-sod/sleepq/internal/database"
	"github.com/go-sod/sleepq/internal/metrics"
	"github.com/go-sod/sleepq/internal/predict"
	"github.com/go-sod/sleepq/internal/setup"
	"github.com/go-sod/sleepq/internal/training"
)

var (
	_ setup.FileConfigProvider     = (*Config)(nil)
	_ setup.DatabaseConfigProvider = (*Config)(nil)
	_ setup.TrainingConfigProvider = (*Config)(nil)
	_ setup.MetricsConfigProvider  = (*Config)(nil)
)

// Config is the server configuration. Values come from the environment and
// are then overridden by the optional TOML file named in SLEEPQ_CONFIG_FILE.
type Config struct {
	SrvAddr    string          `envconfig:"SLEEPQ_ADDR" default:":8787" toml:"addr"`
	ConfigFile string          `envconfig:"SLEEPQ_CONFIG_FILE" toml:"-"`
	Database   database.Config `toml:"database"`
	Training   training.Config `toml:"training"`
	Predict    predict.Config  `toml:"predict"`
	Metrics    metrics.Config  `toml:"metrics"`
}

func (c *Config) ConfigFilePath() string {
	return c.ConfigFile
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) TrainingConfig() *training.Config {
	return &c.Training
}

func (c *Config) MetricsConfig() *metrics.Config {
	return &c.Metrics
}
