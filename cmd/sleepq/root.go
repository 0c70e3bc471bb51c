package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	sleepq "github.com/go-sod/sleepq/internal/config"
	"github.com/go-sod/sleepq/internal/database"
	"github.com/go-sod/sleepq/internal/setup"
)

var rootCmd = &cobra.Command{
	Use:           "sleepq",
	Short:         "Sleep quality classifier",
	Long:          "sleepq generates the synthetic sleep dataset, trains the classifier and runs predictions against the stored model.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file (overrides SLEEPQ_CONFIG_FILE)")
	rootCmd.PersistentFlags().String("db", "", "Path to the model database (overrides SLEEPQ_DB_FILE)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and config file, then applies the
// persistent flags on top.
func loadConfig(cmd *cobra.Command) (*sleepq.Config, error) {
	cfg := &sleepq.Config{}
	if err := setup.Load(cmd.Context(), cfg); err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		cfg.ConfigFile = p
		if err := setup.LoadFile(cmd.Context(), p, cfg); err != nil {
			return nil, err
		}
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.FileName = p
	}
	return cfg, nil
}

func openDatabase(ctx context.Context, cfg *sleepq.Config) (*database.DB, error) {
	db, err := database.NewFromEnv(ctx, cfg.DatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	return db, nil
}
