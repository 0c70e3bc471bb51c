package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/sleepq/internal/buildinfo"
	sleepq "github.com/go-sod/sleepq/internal/config"
	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/internal/predict"
	"github.com/go-sod/sleepq/internal/server"
	"github.com/go-sod/sleepq/internal/setup"
	"github.com/go-sod/sleepq/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintln(os.Stdout, buildinfo.Info.String())

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		done()
		logger.Fatal(err)
	}

	defer done()
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	config := sleepq.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(ctx); err != nil {
			logger.Errorf("env.Close: %v", err)
		}
	}()

	// train or load before accepting traffic
	svc, err := env.Predictor().Service(ctx)
	if err != nil {
		return fmt.Errorf("predictor.Service: %w", err)
	}

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("sever.New: %w", err)
	}

	mux := http.NewServeMux()

	predictHandler, err := predict.NewHandler(&config.Predict, svc)
	if err != nil {
		return fmt.Errorf("predict.NewHandler: %w", err)
	}

	mux.Handle("/predict", predictHandler)
	mux.Handle("/health", server.HandleHealth(ctx))
	if exporter := env.Exporter(); exporter != nil {
		mux.Handle(config.Metrics.Path, exporter)
	}

	logger.Infof("serving model %s on %s", svc.Artifact().ID, srv.Addr())
	return srv.ServeHTTPHandler(ctx, mux)
}
