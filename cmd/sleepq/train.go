package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-sod/sleepq/internal/artifact"
	"github.com/go-sod/sleepq/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model and store it, replacing the current one",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("fresh") {
			cfg.Training.Dataset.Reuse = false
		}

		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		a, err := training.Run(ctx, cfg.TrainingConfig())
		if err != nil {
			return err
		}
		if err := artifact.NewStore(db).Save(ctx, a); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "model %s: holdout accuracy %.4f, %d iterations, converged %t\n",
			a.ID, a.Accuracy, a.Iterations, a.Converged)
		return nil
	},
}

func init() {
	trainCmd.Flags().Bool("fresh", false, "Regenerate the dataset even if the dataset file exists")
}
