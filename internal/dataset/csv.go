package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-sod/sleepq/internal/labeling"
	"github.com/go-sod/sleepq/internal/record"
)

// LabelColumn is the name of the target column in the dataset file.
const LabelColumn = "sleep_disorder"

// Header is the column row of the dataset file.
func Header() []string {
	return append(append([]string{}, record.Columns...), LabelColumn)
}

func WriteCSV(w io.Writer, d Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range d {
		r := d[i].Record
		row := []string{
			strconv.Itoa(r.PhoneUsageAfter10pm),
			formatFloat(r.BlueLightHours),
			formatFloat(r.SleepDuration),
			strconv.Itoa(r.PhonePickupsNight),
			r.NightScrolling,
			r.WakeUpTired,
			r.AttentionSpan,
			r.BreaksTaken,
			strconv.Itoa(int(d[i].Label)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(record.Columns) + 1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range Header() {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %d: got %q, expected %q", i, header[i], name)
		}
	}

	var d Dataset
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		sample, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		d = append(d, sample)
	}
	return d, nil
}

func parseRow(row []string) (Sample, error) {
	raw := make(map[string]string, len(record.Columns))
	for i, name := range record.Columns {
		raw[name] = row[i]
	}
	r, err := record.ParseStrings(raw)
	if err != nil {
		return Sample{}, err
	}
	n, err := strconv.Atoi(row[len(record.Columns)])
	if err != nil {
		return Sample{}, fmt.Errorf("invalid %s: %w", LabelColumn, err)
	}
	class, err := labeling.ParseClass(n)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid %s: %w", LabelColumn, err)
	}
	return Sample{Record: r, Label: class}, nil
}

// SaveFile writes d to path through a temporary file so readers never see
// a partially written dataset.
func SaveFile(path string, d Dataset) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, d); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename dataset file: %w", err)
	}
	return nil
}

func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
