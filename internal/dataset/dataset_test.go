package dataset

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/sleepq/internal/labeling"
	"github.com/go-sod/sleepq/internal/record"
)

func TestGenerate_Deterministic(t *testing.T) {
	tests := []struct {
		name  string
		seed  int64
		count int
	}{
		{name: "default_seed", seed: 42, count: 500},
		{name: "zero_seed", seed: 0, count: 50},
		{name: "negative_seed", seed: -7, count: 10},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			first := Generate(test.seed, test.count)
			second := Generate(test.seed, test.count)
			require.Len(t, first, test.count)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("generate is not reproducible for seed %d", test.seed)
			}
		})
	}
}

func TestGenerate_PrefixStable(t *testing.T) {
	long := Generate(42, 100)
	short := Generate(42, 10)
	assert.Equal(t, long[:10], short)
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	assert.NotEqual(t, Generate(1, 20), Generate(2, 20))
}

func TestGenerate_Domains(t *testing.T) {
	d := Generate(42, 2000)
	for i, s := range d {
		r := s.Record
		require.NoError(t, r.Validate(), "sample %d", i)
		assert.Equal(t, r.BlueLightHours, math.Round(r.BlueLightHours*10)/10, "sample %d blue light precision", i)
		assert.Equal(t, r.SleepDuration, math.Round(r.SleepDuration*10)/10, "sample %d sleep precision", i)
		assert.Equal(t, labeling.Label(r), s.Label, "sample %d label", i)
	}
	counts := d.ClassCounts()
	for c, n := range counts {
		assert.Greater(t, n, 0, "class %d never generated", c)
	}
}

func TestGenerate_Empty(t *testing.T) {
	assert.Empty(t, Generate(42, 0))
	assert.Empty(t, Generate(42, -1))
}

func TestSplit(t *testing.T) {
	d := Generate(42, 500)
	train, test, err := Split(d, 42, 0.2)
	require.NoError(t, err)
	assert.Len(t, test, 100)
	assert.Len(t, train, 400)

	train2, test2, err := Split(d, 42, 0.2)
	require.NoError(t, err)
	assert.Equal(t, train, train2)
	assert.Equal(t, test, test2)

	// the partition is a permutation of the input
	seen := map[record.Record]int{}
	for _, s := range d {
		seen[s.Record]++
	}
	for _, s := range append(append(Dataset{}, train...), test...) {
		seen[s.Record]--
	}
	for r, n := range seen {
		assert.Zero(t, n, "record %+v", r)
	}
}

func TestSplit_OwnStream(t *testing.T) {
	const seed = 42
	d := Generate(seed, 500)
	_, test, err := Split(d, seed, 0.2)
	require.NoError(t, err)

	pick := func(perm []int) Dataset {
		out := make(Dataset, 0, len(test))
		for _, idx := range perm[:len(test)] {
			out = append(out, d[idx])
		}
		return out
	}
	assert.Equal(t, pick(permutation(len(d), newSource(seed^splitSalt))), test)
	assert.NotEqual(t, pick(permutation(len(d), newSource(seed))), test,
		"split must not reuse the stream the records were drawn from")

	gen, split := newSource(seed), newSource(seed^splitSalt)
	same := 0
	for i := 0; i < 64; i++ {
		if gen.rng.Uint32() == split.rng.Uint32() {
			same++
		}
	}
	if same != 0 {
		t.Errorf("shared draws between generation and split streams, got: %v, expected: %v", same, 0)
	}
}

func TestSplit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		holdout float64
	}{
		{name: "zero_holdout", size: 10, holdout: 0},
		{name: "full_holdout", size: 10, holdout: 1},
		{name: "negative_holdout", size: 10, holdout: -0.2},
		{name: "single_sample", size: 1, holdout: 0.2},
		{name: "empty", size: 0, holdout: 0.2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Split(Generate(1, test.size), 1, test.holdout)
			assert.Error(t, err)
		})
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	d := Generate(42, 200)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, d))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad_header", body: "a,b,c,d,e,f,g,h,i\n"},
		{
			name: "bad_label",
			body: "phone_usage_after_10pm,blue_light_hours,sleep_duration,phone_pickups_night,night_scrolling,wake_up_tired,attention_span,breaks_taken,sleep_disorder\n" +
				"10,1,8,5,no,no,high,frequent,7\n",
		},
		{
			name: "bad_category",
			body: "phone_usage_after_10pm,blue_light_hours,sleep_duration,phone_pickups_night,night_scrolling,wake_up_tired,attention_span,breaks_taken,sleep_disorder\n" +
				"10,1,8,5,maybe,no,high,frequent,0\n",
		},
		{
			name: "short_row",
			body: "phone_usage_after_10pm,blue_light_hours,sleep_duration,phone_pickups_night,night_scrolling,wake_up_tired,attention_span,breaks_taken,sleep_disorder\n" +
				"10,1,8\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadCSV(bytes.NewBufferString(test.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrGenerate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sleep_data.csv")
	cfg := &Config{Seed: 42, Size: 50, File: path, Reuse: true}

	generated, err := LoadOrGenerate(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, Generate(42, 50), generated)
	_, err = os.Stat(path)
	require.NoError(t, err, "dataset file must be written")

	// a different seed is ignored while the file is reused
	cfg.Seed = 7
	reused, err := LoadOrGenerate(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, generated, reused)

	cfg.Reuse = false
	fresh, err := LoadOrGenerate(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, Generate(7, 50), fresh)
}

func TestLoadOrGenerate_NoFile(t *testing.T) {
	d, err := LoadOrGenerate(context.Background(), &Config{Seed: 3, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, Generate(3, 20), d)

	_, err = LoadOrGenerate(context.Background(), &Config{Seed: 3, Size: 0})
	assert.Error(t, err)
}
