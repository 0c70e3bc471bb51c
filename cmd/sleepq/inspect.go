package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/go-sod/sleepq/internal/artifact"
	"github.com/go-sod/sleepq/internal/labeling"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the stored model",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		a, err := artifact.NewStore(db).Load(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			spew.Fdump(out, a)
			return nil
		}

		fmt.Fprintf(out, "id:         %s\n", a.ID)
		fmt.Fprintf(out, "weights:    %s\n", a.Fingerprint())
		fmt.Fprintf(out, "created:    %s\n", a.CreatedAt)
		fmt.Fprintf(out, "seed:       %d\n", a.Seed)
		fmt.Fprintf(out, "samples:    %d (holdout %.2f)\n", a.Samples, a.Holdout)
		fmt.Fprintf(out, "accuracy:   %.4f\n", a.Accuracy)
		fmt.Fprintf(out, "iterations: %d (converged %t)\n", a.Iterations, a.Converged)
		fmt.Fprintf(out, "features:   %s\n", strings.Join(a.Transformer.FeatureNames(), ", "))
		for c := 0; c < int(a.Weights.Classes); c++ {
			fmt.Fprintf(out, "  %-26s intercept %+.4f\n", labeling.Class(c).String(), a.Weights.Intercept[c])
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("dump", false, "Dump the full artifact")
}
