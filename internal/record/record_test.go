package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]interface{} {
	return map[string]interface{}{
		FieldPhoneUsageAfter10pm: 10.0,
		FieldBlueLightHours:      1.0,
		FieldSleepDuration:       8.0,
		FieldPhonePickupsNight:   5.0,
		FieldNightScrolling:      "no",
		FieldWakeUpTired:         "no",
		FieldAttentionSpan:       "high",
		FieldBreaksTaken:         "frequent",
	}
}

func TestParse(t *testing.T) {
	r, err := Parse(validRaw())
	require.NoError(t, err)
	assert.Equal(t, Record{
		PhoneUsageAfter10pm: 10,
		BlueLightHours:      1.0,
		SleepDuration:       8.0,
		PhonePickupsNight:   5,
		NightScrolling:      No,
		WakeUpTired:         No,
		AttentionSpan:       AttentionHigh,
		BreaksTaken:         BreaksFrequent,
	}, r)
}

func TestParse_Conversions(t *testing.T) {
	raw := validRaw()
	raw[FieldPhoneUsageAfter10pm] = json.Number("20")
	raw[FieldBlueLightHours] = " 2.5 "
	raw[FieldPhonePickupsNight] = 7
	raw[FieldAttentionSpan] = " Medium"

	r, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 20, r.PhoneUsageAfter10pm)
	assert.Equal(t, 2.5, r.BlueLightHours)
	assert.Equal(t, 7, r.PhonePickupsNight)
	assert.Equal(t, AttentionMedium, r.AttentionSpan)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{name: "missing", field: FieldSleepDuration, value: nil},
		{name: "phone_below_range", field: FieldPhoneUsageAfter10pm, value: -1.0},
		{name: "phone_above_range", field: FieldPhoneUsageAfter10pm, value: 181.0},
		{name: "phone_fractional", field: FieldPhoneUsageAfter10pm, value: 12.5},
		{name: "blue_light_above_range", field: FieldBlueLightHours, value: 5.1},
		{name: "sleep_below_range", field: FieldSleepDuration, value: 2.9},
		{name: "sleep_not_a_number", field: FieldSleepDuration, value: "eight"},
		{name: "pickups_above_range", field: FieldPhonePickupsNight, value: 101},
		{name: "pickups_wrong_type", field: FieldPhonePickupsNight, value: true},
		{name: "scrolling_unknown", field: FieldNightScrolling, value: "sometimes"},
		{name: "tired_wrong_type", field: FieldWakeUpTired, value: 1.0},
		{name: "attention_unknown", field: FieldAttentionSpan, value: "extreme"},
		{name: "breaks_unknown", field: FieldBreaksTaken, value: "never"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := validRaw()
			if test.value == nil {
				delete(raw, test.field)
			} else {
				raw[test.field] = test.value
			}
			_, err := Parse(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, test.field, vErr.Field)
		})
	}
}

func TestParseStrings(t *testing.T) {
	r, err := ParseStrings(map[string]string{
		FieldPhoneUsageAfter10pm: "180",
		FieldBlueLightHours:      "0",
		FieldSleepDuration:       "3.0",
		FieldPhonePickupsNight:   "100",
		FieldNightScrolling:      "YES",
		FieldWakeUpTired:         "yes",
		FieldAttentionSpan:       "low",
		FieldBreaksTaken:         "rare",
	})
	require.NoError(t, err)
	assert.Equal(t, 180, r.PhoneUsageAfter10pm)
	assert.Equal(t, Yes, r.NightScrolling)
}
