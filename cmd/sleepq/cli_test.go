package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/sleepq/internal/dataset"
	"github.com/go-sod/sleepq/internal/labeling"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "sleepq.db")
	t.Setenv("SLEEPQ_DATASET_FILE", "")
	t.Setenv("SLEEPQ_DATASET_SIZE", "200")
	t.Setenv("SLEEPQ_DB_OPEN_TIMEOUT", "1s")

	out, err := execute(t, "generate", "--seed", "3", "--size", "20", "--out", "-")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 21)
	assert.Equal(t, dataset.Header(), rows[0])

	_, err = execute(t, "inspect", "--db", db)
	assert.Error(t, err, "nothing trained yet")

	out, err = execute(t, "train", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "holdout accuracy")

	out, err = execute(t, "predict", "--db", db,
		"--phone_usage_after_10pm", "10",
		"--blue_light_hours", "1.0",
		"--sleep_duration", "8.0",
		"--phone_pickups_night", "5",
		"--night_scrolling", "no",
		"--wake_up_tired", "no",
		"--attention_span", "high",
		"--breaks_taken", "frequent",
		"--explain",
	)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var labels []string
	for _, c := range labeling.Classes {
		labels = append(labels, c.String())
	}
	assert.Contains(t, labels, lines[0])
	assert.Contains(t, lines[1], `"healthy"`)

	_, err = execute(t, "predict", "--db", db, "--sleep_duration", "12")
	assert.Error(t, err)

	out, err = execute(t, "inspect", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "accuracy:")
	assert.Contains(t, out, labeling.LabelMap[labeling.SevereDisorder])

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "SLEEPQ")
}
