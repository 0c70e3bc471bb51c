package record

import (
	"strings"
)

// Column names, shared by the dataset file, the HTTP payload and the CLI.
const (
	FieldPhoneUsageAfter10pm = "phone_usage_after_10pm"
	FieldBlueLightHours      = "blue_light_hours"
	FieldSleepDuration       = "sleep_duration"
	FieldPhonePickupsNight   = "phone_pickups_night"
	FieldNightScrolling      = "night_scrolling"
	FieldWakeUpTired         = "wake_up_tired"
	FieldAttentionSpan       = "attention_span"
	FieldBreaksTaken         = "breaks_taken"
)

const (
	Yes = "yes"
	No  = "no"

	AttentionLow    = "low"
	AttentionMedium = "medium"
	AttentionHigh   = "high"

	BreaksRare      = "rare"
	BreaksSometimes = "sometimes"
	BreaksFrequent  = "frequent"
)

const (
	PhoneUsageMin   = 0
	PhoneUsageMax   = 180
	BlueLightMin    = 0.0
	BlueLightMax    = 5.0
	SleepMin        = 3.0
	SleepMax        = 9.0
	PhonePickupsMin = 0
	PhonePickupsMax = 100
)

// Columns is the stable field order of a record.
var Columns = []string{
	FieldPhoneUsageAfter10pm,
	FieldBlueLightHours,
	FieldSleepDuration,
	FieldPhonePickupsNight,
	FieldNightScrolling,
	FieldWakeUpTired,
	FieldAttentionSpan,
	FieldBreaksTaken,
}

// Categorical domains. The ordinal ones are listed in rank order.
var (
	YesNo            = []string{Yes, No}
	AttentionSpans   = []string{AttentionLow, AttentionMedium, AttentionHigh}
	BreakFrequencies = []string{BreaksRare, BreaksSometimes, BreaksFrequent}
)

// Record is one behavioral observation. It is a value type: copies never
// share state, so a constructed Record cannot be changed under a caller.
type Record struct {
	PhoneUsageAfter10pm int
	BlueLightHours      float64
	SleepDuration       float64
	PhonePickupsNight   int
	NightScrolling      string
	WakeUpTired         string
	AttentionSpan       string
	BreaksTaken         string
}

// Domain returns the allowed values of a categorical field, nil for numeric fields.
func Domain(field string) []string {
	switch field {
	case FieldNightScrolling, FieldWakeUpTired:
		return YesNo
	case FieldAttentionSpan:
		return AttentionSpans
	case FieldBreaksTaken:
		return BreakFrequencies
	default:
		return nil
	}
}

// Categorical returns the value of a categorical field by column name.
func (r Record) Categorical(field string) (string, bool) {
	switch field {
	case FieldNightScrolling:
		return r.NightScrolling, true
	case FieldWakeUpTired:
		return r.WakeUpTired, true
	case FieldAttentionSpan:
		return r.AttentionSpan, true
	case FieldBreaksTaken:
		return r.BreaksTaken, true
	default:
		return "", false
	}
}

// Numeric returns the value of a numeric field by column name.
func (r Record) Numeric(field string) (float64, bool) {
	switch field {
	case FieldPhoneUsageAfter10pm:
		return float64(r.PhoneUsageAfter10pm), true
	case FieldBlueLightHours:
		return r.BlueLightHours, true
	case FieldSleepDuration:
		return r.SleepDuration, true
	case FieldPhonePickupsNight:
		return float64(r.PhonePickupsNight), true
	default:
		return 0, false
	}
}

// Validate checks every field against its declared range or domain.
func (r Record) Validate() error {
	if r.PhoneUsageAfter10pm < PhoneUsageMin || r.PhoneUsageAfter10pm > PhoneUsageMax {
		return outOfRange(FieldPhoneUsageAfter10pm, PhoneUsageMin, PhoneUsageMax)
	}
	if !inRange(r.BlueLightHours, BlueLightMin, BlueLightMax) {
		return outOfRange(FieldBlueLightHours, BlueLightMin, BlueLightMax)
	}
	if !inRange(r.SleepDuration, SleepMin, SleepMax) {
		return outOfRange(FieldSleepDuration, SleepMin, SleepMax)
	}
	if r.PhonePickupsNight < PhonePickupsMin || r.PhonePickupsNight > PhonePickupsMax {
		return outOfRange(FieldPhonePickupsNight, PhonePickupsMin, PhonePickupsMax)
	}
	for _, field := range Columns[4:] {
		value, _ := r.Categorical(field)
		if !contains(Domain(field), value) {
			return &ValidationError{
				Field:  field,
				Reason: "must be one of " + strings.Join(Domain(field), ", "),
			}
		}
	}
	return nil
}

func inRange(v, min, max float64) bool {
	return v >= min && v <= max
}

func contains(domain []string, value string) bool {
	for _, d := range domain {
		if d == value {
			return true
		}
	}
	return false
}
