// Package labeling holds the rule chain that defines ground truth for the
// synthetic dataset and the label vocabulary shared with the classifier.
package labeling

import (
	"fmt"

	"github.com/go-sod/sleepq/internal/record"
)

type Class int

const (
	Healthy Class = iota
	SlightlyDisturbed
	MildDisorder
	SevereDisorder
)

// NumClasses is the size of the label vocabulary.
const NumClasses = 4

var Classes = []Class{Healthy, SlightlyDisturbed, MildDisorder, SevereDisorder}

// LabelMap maps a class to its human readable severity.
var LabelMap = map[Class]string{
	Healthy:           "Healthy Sleep",
	SlightlyDisturbed: "Slightly Disturbed Sleep",
	MildDisorder:      "Mild Sleep Disorder",
	SevereDisorder:    "Severe Sleep Disorder",
}

func (c Class) String() string {
	if s, ok := LabelMap[c]; ok {
		return s
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

func ParseClass(n int) (Class, error) {
	if n < 0 || n >= NumClasses {
		return 0, fmt.Errorf("class %d is outside [0, %d)", n, NumClasses)
	}
	return Class(n), nil
}

// Rule is one guard of the chain.
type Rule struct {
	Name  string
	Match func(record.Record) bool
	Class Class
}

// Rules is evaluated top-down and the first match wins: a later rule only
// sees records every earlier rule rejected. The last rule matches anything.
var Rules = []Rule{
	{
		Name: "healthy",
		Match: func(r record.Record) bool {
			return r.PhoneUsageAfter10pm <= 20 &&
				r.SleepDuration >= 7 &&
				(r.BreaksTaken == record.BreaksFrequent || r.BreaksTaken == record.BreaksSometimes)
		},
		Class: Healthy,
	},
	{
		Name: "slightly_disturbed",
		Match: func(r record.Record) bool {
			return r.PhoneUsageAfter10pm <= 60 && r.SleepDuration >= 6
		},
		Class: SlightlyDisturbed,
	},
	{
		Name: "mild_disorder",
		Match: func(r record.Record) bool {
			return r.PhoneUsageAfter10pm <= 120 && r.SleepDuration >= 4
		},
		Class: MildDisorder,
	},
	{
		Name:  "severe_disorder",
		Match: func(record.Record) bool { return true },
		Class: SevereDisorder,
	},
}

// Label returns the class of the first rule matching r.
func Label(r record.Record) Class {
	class, _ := Explain(r)
	return class
}

// Explain is Label plus the name of the rule that decided.
func Explain(r record.Record) (Class, string) {
	for _, rule := range Rules {
		if rule.Match(r) {
			return rule.Class, rule.Name
		}
	}
	return SevereDisorder, Rules[len(Rules)-1].Name
}
