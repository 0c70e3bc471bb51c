package main

import (
	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		done()
		logger.Fatal(err)
	}
	done()
}
