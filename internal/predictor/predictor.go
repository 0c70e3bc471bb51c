// Package predictor serves predictions from a trained model artifact.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-sod/sleepq/internal/artifact"
	"github.com/go-sod/sleepq/internal/labeling"
	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/internal/metrics"
	"github.com/go-sod/sleepq/internal/record"
	"github.com/go-sod/sleepq/internal/training"
)

type ProvideFn func(ctx context.Context) (*Service, error)

// Conclusion is the outcome of a single prediction.
type Conclusion struct {
	Class labeling.Class `json:"class"`
	Label string         `json:"label"`
}

// Service is read-only once built and safe for concurrent use.
type Service struct {
	model *artifact.Artifact
}

// New wraps an already validated artifact.
func New(a *artifact.Artifact) (*Service, error) {
	if a == nil {
		return nil, fmt.Errorf("nil artifact")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Service{model: a}, nil
}

// Open loads the persisted artifact. A missing artifact, or one that fails
// to decode or validate, is replaced by a freshly trained one, which is
// saved before Open returns.
func Open(ctx context.Context, store *artifact.Store, cfg *training.Config) (*Service, error) {
	logger := logging.FromContext(ctx)

	a, err := store.Load(ctx)
	switch {
	case err == nil:
		logger.Infof("using model artifact %s (accuracy %.4f)", a.ID, a.Accuracy)
		return New(a)
	case errors.Is(err, artifact.ErrNotFound):
		logger.Info("no model artifact found, training")
	case errors.Is(err, artifact.ErrCorrupt):
		logger.Warnf("stored model artifact is corrupt, retraining: %v", err)
	default:
		return nil, fmt.Errorf("load artifact: %w", err)
	}

	a, err = training.Run(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("training.Run: %w", err)
	}
	if err := store.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	return New(a)
}

// Artifact returns the model backing the service. Callers must not modify it.
func (s *Service) Artifact() *artifact.Artifact {
	return s.model
}

// Predict validates a loosely typed record and classifies it.
func (s *Service) Predict(ctx context.Context, raw map[string]interface{}) (Conclusion, error) {
	r, err := record.Parse(raw)
	if err != nil {
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationFailure(ctx, verr.Field)
		}
		return Conclusion{}, err
	}
	return s.PredictRecord(ctx, r)
}

func (s *Service) PredictRecord(ctx context.Context, r record.Record) (Conclusion, error) {
	start := time.Now()
	if err := r.Validate(); err != nil {
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationFailure(ctx, verr.Field)
		}
		return Conclusion{}, err
	}

	x := s.model.Transformer.Transform(r)
	idx, err := s.model.Weights.Infer(x)
	if err != nil {
		return Conclusion{}, fmt.Errorf("infer: %w", err)
	}
	class, err := labeling.ParseClass(idx)
	if err != nil {
		return Conclusion{}, err
	}

	c := Conclusion{Class: class, Label: class.String()}
	metrics.RecordPrediction(ctx, c.Label, time.Since(start))
	return c, nil
}

// Provider builds the Service at most once per process. Later calls return
// the first result, error included.
type Provider struct {
	once    sync.Once
	open    ProvideFn
	service *Service
	err     error
}

func NewProvider(fn ProvideFn) *Provider {
	return &Provider{open: fn}
}

func (p *Provider) Service(ctx context.Context) (*Service, error) {
	p.once.Do(func() {
		p.service, p.err = p.open(ctx)
	})
	return p.service, p.err
}

// ProvideFromStore returns a ProvideFn that opens the service over store.
func ProvideFromStore(store *artifact.Store, cfg *training.Config) ProvideFn {
	return func(ctx context.Context) (*Service, error) {
		return Open(ctx, store, cfg)
	}
}
