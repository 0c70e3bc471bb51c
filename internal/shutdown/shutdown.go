// Package shutdown provides a context that is cancelled on termination signals.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-sod/sleepq/internal/logging"
)

// New returns a context that is cancelled on SIGINT or SIGTERM, together
// with a function that releases the signal handler. The context carries a
// logger built from the environment.
func New() (context.Context, func()) {
	ctx := logging.WithLogger(context.Background(), logging.NewLoggerFromEnv())
	ctx, cancel := context.WithCancel(ctx)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-signalCh:
			logging.FromContext(ctx).Infof("received signal %s, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(signalCh)
		cancel()
	}
}
