package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-sod/sleepq/internal/artifact"
	"github.com/go-sod/sleepq/internal/labeling"
	"github.com/go-sod/sleepq/internal/predictor"
	"github.com/go-sod/sleepq/internal/record"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Classify one record with the stored model, training it first if needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		raw := make(map[string]string, len(record.Columns))
		for _, field := range record.Columns {
			if v, _ := cmd.Flags().GetString(field); v != "" {
				raw[field] = v
			}
		}
		// validate before touching the database
		r, err := record.ParseStrings(raw)
		if err != nil {
			return err
		}

		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		svc, err := predictor.Open(ctx, artifact.NewStore(db), cfg.TrainingConfig())
		if err != nil {
			return err
		}
		c, err := svc.PredictRecord(ctx, r)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.Label)

		if explain, _ := cmd.Flags().GetBool("explain"); explain {
			class, rule := labeling.Explain(r)
			fmt.Fprintf(cmd.OutOrStdout(), "labeling rule %q gives %s\n", rule, class)
		}
		return nil
	},
}

func init() {
	f := predictCmd.Flags()
	f.String(record.FieldPhoneUsageAfter10pm, "", "Minutes of phone use after 10pm (0-180)")
	f.String(record.FieldBlueLightHours, "", "Hours of blue light exposure (0-5)")
	f.String(record.FieldSleepDuration, "", "Hours of sleep (3-9)")
	f.String(record.FieldPhonePickupsNight, "", "Phone pickups during the night (0-100)")
	f.String(record.FieldNightScrolling, "", "Scrolling at night: yes or no")
	f.String(record.FieldWakeUpTired, "", "Waking up tired: yes or no")
	f.String(record.FieldAttentionSpan, "", "Attention span: low, medium or high")
	f.String(record.FieldBreaksTaken, "", "Breaks taken: rare, sometimes or frequent")
	f.Bool("explain", false, "Also print the labeling rule that matches the record")
}
