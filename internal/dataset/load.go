package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-sod/sleepq/internal/logging"
)

// LoadOrGenerate returns the dataset stored in cfg.File when reuse is
// enabled and the file exists. Otherwise it generates cfg.Size samples from
// cfg.Seed and, when cfg.File is set, writes them there. A failed write is
// logged and does not fail the call.
func LoadOrGenerate(ctx context.Context, cfg *Config) (Dataset, error) {
	logger := logging.FromContext(ctx)

	if cfg.Reuse && cfg.File != "" {
		d, err := LoadFile(cfg.File)
		switch {
		case err == nil:
			if len(d) != cfg.Size {
				logger.Warnf("dataset file %s has %d rows, configured size is %d", cfg.File, len(d), cfg.Size)
			}
			logger.Infof("loaded dataset from %s: %d samples", cfg.File, len(d))
			return d, nil
		case errors.Is(err, os.ErrNotExist):
			logger.Debugf("dataset file %s not found, generating", cfg.File)
		default:
			return nil, fmt.Errorf("load dataset %s: %w", cfg.File, err)
		}
	}

	if cfg.Size <= 0 {
		return nil, fmt.Errorf("dataset size must be positive, got %d", cfg.Size)
	}
	d := Generate(cfg.Seed, cfg.Size)
	logger.Infof("generated dataset: seed=%d samples=%d classes=%v", cfg.Seed, len(d), d.ClassCounts())

	if cfg.File != "" {
		if err := SaveFile(cfg.File, d); err != nil {
			logger.Errorf("unable to persist dataset to %s: %v", cfg.File, err)
		} else {
			logger.Infof("dataset written to %s", cfg.File)
		}
	}
	return d, nil
}
