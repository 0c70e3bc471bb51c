// Package transform turns records into the numeric vectors the classifier
// is trained on. A fitted State is reused verbatim at prediction time.
package transform

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/internal/record"
	"github.com/go-sod/sleepq/pkg/math/vector"
)

// minStd is the smallest standard deviation treated as non-constant.
const minStd = 1e-12

var (
	NumericFields = []string{
		record.FieldPhoneUsageAfter10pm,
		record.FieldBlueLightHours,
		record.FieldSleepDuration,
		record.FieldPhonePickupsNight,
	}
	NominalFields = []string{
		record.FieldNightScrolling,
		record.FieldWakeUpTired,
	}
)

// OrdinalOrders are the fixed rank orders. They are constants of the
// encoding, never learned from data.
var OrdinalOrders = []CategoricalParam{
	{Field: record.FieldAttentionSpan, Categories: record.AttentionSpans},
	{Field: record.FieldBreaksTaken, Categories: record.BreakFrequencies},
}

var ErrDegenerateFeature = errors.New("degenerate feature")

// DegenerateFeatureError is returned in strict mode when a numeric feature
// is constant over the fitted data.
type DegenerateFeatureError struct {
	Field string
}

func (e *DegenerateFeatureError) Error() string {
	return fmt.Sprintf("numeric feature %q is constant across the fitted data", e.Field)
}

func (e *DegenerateFeatureError) Is(target error) bool {
	return target == ErrDegenerateFeature
}

type NumericParam struct {
	Field string
	Mean  float64
	Std   float64
	// Degenerate marks a constant feature whose Std was replaced by 1
	Degenerate bool
}

type CategoricalParam struct {
	Field      string
	Categories []string
}

// State is the fitted transformer. It must not be modified after Fit.
type State struct {
	Numeric []NumericParam
	Ordinal []CategoricalParam
	Nominal []CategoricalParam
}

type Option func(*options)

type options struct {
	strict bool
}

// WithStrictScaling makes Fit fail on a constant numeric feature instead of
// falling back to a unit standard deviation.
func WithStrictScaling() Option {
	return func(o *options) {
		o.strict = true
	}
}

// Fit computes scaling parameters and nominal categories from records.
func Fit(ctx context.Context, records []record.Record, opts ...Option) (State, error) {
	logger := logging.FromContext(ctx)
	var o options
	for _, f := range opts {
		f(&o)
	}
	if len(records) == 0 {
		return State{}, fmt.Errorf("unable to fit transformer on an empty dataset")
	}

	var s State
	for _, field := range NumericFields {
		column := make(vector.V, len(records))
		for i := range records {
			column[i], _ = records[i].Numeric(field)
		}
		param := NumericParam{Field: field, Mean: column.Mean(), Std: column.StdDev()}
		if !(param.Std >= minStd) {
			if o.strict {
				return State{}, &DegenerateFeatureError{Field: field}
			}
			logger.Warnf("numeric feature %s is constant (mean %v), using unit scale", field, param.Mean)
			param.Std = 1
			param.Degenerate = true
		}
		s.Numeric = append(s.Numeric, param)
	}

	for _, ord := range OrdinalOrders {
		s.Ordinal = append(s.Ordinal, CategoricalParam{
			Field:      ord.Field,
			Categories: append([]string{}, ord.Categories...),
		})
	}

	for _, field := range NominalFields {
		seen := map[string]struct{}{}
		for i := range records {
			value, _ := records[i].Categorical(field)
			seen[value] = struct{}{}
		}
		categories := make([]string, 0, len(seen))
		for value := range seen {
			categories = append(categories, value)
		}
		sort.Strings(categories)
		s.Nominal = append(s.Nominal, CategoricalParam{Field: field, Categories: categories})
	}

	return s, nil
}

// Dim is the length of a transformed vector.
func (s State) Dim() int {
	n := len(s.Numeric) + len(s.Ordinal)
	for _, nom := range s.Nominal {
		n += len(nom.Categories)
	}
	return n
}

// FeatureNames describes each position of a transformed vector.
func (s State) FeatureNames() []string {
	names := make([]string, 0, s.Dim())
	for _, p := range s.Numeric {
		names = append(names, p.Field)
	}
	for _, p := range s.Ordinal {
		names = append(names, p.Field)
	}
	for _, p := range s.Nominal {
		for _, c := range p.Categories {
			names = append(names, p.Field+"="+c)
		}
	}
	return names
}

// Transform encodes r as standardized numerics, ordinal ranks and nominal
// indicators, in that order. A nominal value not seen during Fit leaves its
// indicator segment all zero; an ordinal value outside its order encodes as -1.
func (s State) Transform(r record.Record) vector.V {
	out := make(vector.V, 0, s.Dim())
	for _, p := range s.Numeric {
		v, _ := r.Numeric(p.Field)
		out = append(out, (v-p.Mean)/p.Std)
	}
	for _, p := range s.Ordinal {
		value, _ := r.Categorical(p.Field)
		out = append(out, float64(indexOf(p.Categories, value)))
	}
	for _, p := range s.Nominal {
		value, _ := r.Categorical(p.Field)
		for _, c := range p.Categories {
			if c == value {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

// TransformAll is Transform applied to every record.
func (s State) TransformAll(records []record.Record) []vector.V {
	out := make([]vector.V, len(records))
	for i := range records {
		out[i] = s.Transform(records[i])
	}
	return out
}

// Validate checks that a State, typically one decoded from storage, has the
// layout this package produces.
func (s State) Validate() error {
	if len(s.Numeric) != len(NumericFields) {
		return fmt.Errorf("expected %d numeric features, got %d", len(NumericFields), len(s.Numeric))
	}
	for i, p := range s.Numeric {
		if p.Field != NumericFields[i] {
			return fmt.Errorf("numeric feature %d: got %q, expected %q", i, p.Field, NumericFields[i])
		}
		if math.IsNaN(p.Mean) || math.IsInf(p.Mean, 0) || !(p.Std >= minStd) || math.IsInf(p.Std, 0) {
			return fmt.Errorf("numeric feature %q has invalid scaling mean=%v std=%v", p.Field, p.Mean, p.Std)
		}
	}
	if len(s.Ordinal) != len(OrdinalOrders) {
		return fmt.Errorf("expected %d ordinal features, got %d", len(OrdinalOrders), len(s.Ordinal))
	}
	for i, p := range s.Ordinal {
		if p.Field != OrdinalOrders[i].Field || !equalStrings(p.Categories, OrdinalOrders[i].Categories) {
			return fmt.Errorf("ordinal feature %d does not match the fixed order of %q", i, OrdinalOrders[i].Field)
		}
	}
	if len(s.Nominal) != len(NominalFields) {
		return fmt.Errorf("expected %d nominal features, got %d", len(NominalFields), len(s.Nominal))
	}
	for i, p := range s.Nominal {
		if p.Field != NominalFields[i] {
			return fmt.Errorf("nominal feature %d: got %q, expected %q", i, p.Field, NominalFields[i])
		}
		if len(p.Categories) == 0 || !sort.StringsAreSorted(p.Categories) {
			return fmt.Errorf("nominal feature %q has invalid categories %v", p.Field, p.Categories)
		}
		for j := 1; j < len(p.Categories); j++ {
			if p.Categories[j] == p.Categories[j-1] {
				return fmt.Errorf("nominal feature %q has duplicate category %q", p.Field, p.Categories[j])
			}
		}
	}
	return nil
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
