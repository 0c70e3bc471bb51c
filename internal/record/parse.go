package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse builds a Record from loosely typed input such as a decoded JSON
// object or form values. Numbers may arrive as JSON numbers or strings;
// categorical values are trimmed and lower-cased before the domain check.
func Parse(raw map[string]interface{}) (Record, error) {
	var (
		r   Record
		err error
	)
	if r.PhoneUsageAfter10pm, err = intField(raw, FieldPhoneUsageAfter10pm); err != nil {
		return Record{}, err
	}
	if r.BlueLightHours, err = floatField(raw, FieldBlueLightHours); err != nil {
		return Record{}, err
	}
	if r.SleepDuration, err = floatField(raw, FieldSleepDuration); err != nil {
		return Record{}, err
	}
	if r.PhonePickupsNight, err = intField(raw, FieldPhonePickupsNight); err != nil {
		return Record{}, err
	}
	if r.NightScrolling, err = stringField(raw, FieldNightScrolling); err != nil {
		return Record{}, err
	}
	if r.WakeUpTired, err = stringField(raw, FieldWakeUpTired); err != nil {
		return Record{}, err
	}
	if r.AttentionSpan, err = stringField(raw, FieldAttentionSpan); err != nil {
		return Record{}, err
	}
	if r.BreaksTaken, err = stringField(raw, FieldBreaksTaken); err != nil {
		return Record{}, err
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// ParseStrings is Parse for string-only sources such as url.Values or CLI flags.
func ParseStrings(raw map[string]string) (Record, error) {
	m := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		m[k] = v
	}
	return Parse(m)
}

func lookup(raw map[string]interface{}, field string) (interface{}, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil, &ValidationError{Field: field, Reason: "is required"}
	}
	return v, nil
}

func floatField(raw map[string]interface{}, field string) (float64, error) {
	v, err := lookup(raw, field)
	if err != nil {
		return 0, err
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		if f, err = x.Float64(); err != nil {
			return 0, &ValidationError{Field: field, Reason: "must be a number"}
		}
	case string:
		if f, err = strconv.ParseFloat(strings.TrimSpace(x), 64); err != nil {
			return 0, &ValidationError{Field: field, Reason: "must be a number"}
		}
	default:
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("must be a number, got %T", v)}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Field: field, Reason: "must be a finite number"}
	}
	return f, nil
}

func intField(raw map[string]interface{}, field string) (int, error) {
	f, err := floatField(raw, field)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, &ValidationError{Field: field, Reason: "must be a whole number"}
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, &ValidationError{Field: field, Reason: "is out of range"}
	}
	return int(f), nil
}

func stringField(raw map[string]interface{}, field string) (string, error) {
	v, err := lookup(raw, field)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Reason: fmt.Sprintf("must be a string, got %T", v)}
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}
