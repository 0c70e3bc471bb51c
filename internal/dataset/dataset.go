package dataset

import (
	"fmt"
	"math"

	"github.com/go-sod/sleepq/internal/labeling"
	"github.com/go-sod/sleepq/internal/record"
)

type Sample struct {
	Record record.Record
	Label  labeling.Class
}

// Dataset is an ordered sequence of labeled records.
type Dataset []Sample

func (d Dataset) Records() []record.Record {
	records := make([]record.Record, len(d))
	for i := range d {
		records[i] = d[i].Record
	}
	return records
}

func (d Dataset) Labels() []int {
	labels := make([]int, len(d))
	for i := range d {
		labels[i] = int(d[i].Label)
	}
	return labels
}

// ClassCounts returns the number of samples per class.
func (d Dataset) ClassCounts() [labeling.NumClasses]int {
	var counts [labeling.NumClasses]int
	for i := range d {
		counts[d[i].Label]++
	}
	return counts
}

// Generate draws count records from a stream seeded with seed and labels
// them with the rule chain. The same seed and count always produce the same
// dataset.
func Generate(seed int64, count int) Dataset {
	if count <= 0 {
		return Dataset{}
	}
	src := newSource(seed)
	data := make(Dataset, 0, count)
	for i := 0; i < count; i++ {
		r := record.Record{
			PhoneUsageAfter10pm: src.intRange(record.PhoneUsageMin, record.PhoneUsageMax),
			BlueLightHours:      round1(src.uniform(record.BlueLightMin, record.BlueLightMax)),
			SleepDuration:       round1(src.uniform(record.SleepMin, record.SleepMax)),
			PhonePickupsNight:   src.intRange(record.PhonePickupsMin, record.PhonePickupsMax),
			NightScrolling:      src.choice(record.YesNo),
			WakeUpTired:         src.choice(record.YesNo),
			AttentionSpan:       src.choice(record.AttentionSpans),
			BreaksTaken:         src.choice(record.BreakFrequencies),
		}
		data = append(data, Sample{Record: r, Label: labeling.Label(r)})
	}
	return data
}

// Split deterministically partitions d into a train and a holdout set.
// The holdout receives ceil(len(d)*holdout) samples. The shuffle uses its
// own stream derived from seed, not the one Generate drew the records from.
func Split(d Dataset, seed int64, holdout float64) (train, test Dataset, err error) {
	if holdout <= 0 || holdout >= 1 {
		return nil, nil, fmt.Errorf("holdout fraction %v must be in (0, 1)", holdout)
	}
	nTest := int(math.Ceil(float64(len(d)) * holdout))
	if nTest == 0 || nTest >= len(d) {
		return nil, nil, fmt.Errorf("dataset of %d samples is too small for holdout %v", len(d), holdout)
	}

	perm := permutation(len(d), newSource(seed^splitSalt))
	test = make(Dataset, 0, nTest)
	train = make(Dataset, 0, len(d)-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, d[idx])
		} else {
			train = append(train, d[idx])
		}
	}
	return train, test, nil
}

// permutation is a Fisher-Yates shuffle of [0, n).
func permutation(n int, src *source) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := src.intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
