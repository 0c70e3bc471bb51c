package setup

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/sleepq/internal/artifact"
	"github.com/go-sod/sleepq/internal/database"
	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/internal/metrics"
	"github.com/go-sod/sleepq/internal/predictor"
	"github.com/go-sod/sleepq/internal/srvenv"
	"github.com/go-sod/sleepq/internal/training"
)

type FileConfigProvider interface {
	ConfigFilePath() string
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type TrainingConfigProvider interface {
	TrainingConfig() *training.Config
}

type MetricsConfigProvider interface {
	MetricsConfig() *metrics.Config
}

// Load fills config from the environment, then applies the TOML file it
// names, if any. File values win over environment values and defaults.
func Load(ctx context.Context, config interface{}) error {
	if err := envconfig.Process("", config); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}
	if fileProvider, ok := config.(FileConfigProvider); ok && fileProvider.ConfigFilePath() != "" {
		return LoadFile(ctx, fileProvider.ConfigFilePath(), config)
	}
	return nil
}

// LoadFile overlays the TOML file at path onto config. Keys absent from the
// file leave the current values untouched.
func LoadFile(ctx context.Context, path string, config interface{}) error {
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return fmt.Errorf("error loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logging.FromContext(ctx).Warnf("unknown keys in config file %s: %v", path, undecoded)
	}
	return nil
}

func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := Load(ctx, config); err != nil {
		return nil, err
	}

	var store *artifact.Store
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok {
		logger.Info("Configuring db")
		db, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open database: %w", err)
		}
		store = artifact.NewStore(db)
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db), srvenv.WithStore(store))
	}

	if trainingConfigProvider, ok := config.(TrainingConfigProvider); ok {
		logger.Info("Configuring predictor")
		if store == nil {
			return nil, fmt.Errorf("predictor requires a database config")
		}
		provider := predictor.NewProvider(ProvidePredictorFor(trainingConfigProvider, store))
		serverEnvOpts = append(serverEnvOpts, srvenv.WithPredictor(provider))
	}

	if metricsConfigProvider, ok := config.(MetricsConfigProvider); ok && metricsConfigProvider.MetricsConfig().Enabled {
		logger.Info("Configuring metrics")
		exporter, err := metrics.NewExporter(metricsConfigProvider.MetricsConfig())
		if err != nil {
			return nil, fmt.Errorf("unable create metrics exporter: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithExporter(exporter))
	} else if err := metrics.Register(); err != nil {
		return nil, fmt.Errorf("unable register metric views: %w", err)
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvidePredictorFor(provider TrainingConfigProvider, store *artifact.Store) predictor.ProvideFn {
	return predictor.ProvideFromStore(store, provider.TrainingConfig())
}
