package srvenv

import (
	"context"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats/view"

	"github.com/go-sod/sleepq/internal/artifact"
	"github.com/go-sod/sleepq/internal/database"
	"github.com/go-sod/sleepq/internal/predictor"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database  *database.DB
	store     *artifact.Store
	predictor *predictor.Provider
	exporter  *prometheus.Exporter
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func (s *SrvEnv) Store() *artifact.Store {
	return s.store
}

func (s *SrvEnv) Predictor() *predictor.Provider {
	return s.predictor
}

// Exporter is nil when metrics are disabled.
func (s *SrvEnv) Exporter() *prometheus.Exporter {
	return s.exporter
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func WithStore(store *artifact.Store) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.store = store
		return s
	}
}

func WithPredictor(p *predictor.Provider) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.predictor = p
		return s
	}
}

func WithExporter(e *prometheus.Exporter) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.exporter = e
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.exporter != nil {
		view.UnregisterExporter(s.exporter)
	}
	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
