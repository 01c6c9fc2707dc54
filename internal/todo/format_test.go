package todo

import (
	"testing"
	"time"

	"github.com/rnwolfe/dated/internal/calendar"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestFrequencyString(t *testing.T) {
	tests := []struct {
		f    Frequency
		want string
	}{
		{Frequency{Interval: IntervalDay, Number: 1}, "daily"},
		{Frequency{Interval: IntervalWeek, Number: 1}, "weekly"},
		{Frequency{Interval: IntervalMonth, Number: 1}, "monthly"},
		{Frequency{Interval: IntervalYear, Number: 1}, "yearly"},
		{Frequency{Interval: IntervalWeek, Number: 2}, "2-week"},
		{Frequency{Interval: IntervalMonth, Number: 6}, "6-month"},
		{Frequency{Interval: IntervalOther, Label: ProgressiveLabel}, "(PR)"},
		{Frequency{Interval: IntervalOther, Label: "work"}, "work"},
		{Frequency{}, ""},
	}
	for _, tc := range tests {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("%+v.String() = %q, want %q", tc.f, got, tc.want)
		}
	}
}

func TestTaskString(t *testing.T) {
	tests := []struct {
		task Task
		want string
	}{
		{task("Plain"), "Plain"},
		{Task{Contents: Contents{Title: "Call", Note: "mom"}}, "Call (mom)"},
		{
			Task{
				Meta:     Meta{Frequency: Frequency{Interval: IntervalWeek, Number: 1}, TimeOfDay: TimeMorning},
				Contents: Contents{Title: "Run", Note: "5k"},
			},
			"weekly - (M) Run (5k)",
		},
		{Task{Meta: Meta{TimeOfDay: TimeEvening}, Contents: Contents{Title: "Read"}}, "(E) Read"},
	}
	for _, tc := range tests {
		if got := tc.task.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestParseInterval(t *testing.T) {
	for in, want := range map[string]Interval{"Day": IntervalDay, "week": IntervalWeek, "Month": IntervalMonth, "YEAR": IntervalYear} {
		got, err := ParseInterval(in)
		if err != nil || got != want {
			t.Errorf("ParseInterval(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseInterval("fortnight"); err == nil {
		t.Error("expected error for unknown interval")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	for in, want := range map[string]TimeOfDay{"": TimeAny, "Any": TimeAny, "Morning": TimeMorning, "midday": TimeMidday, "Evening": TimeEvening} {
		got, err := ParseTimeOfDay(in)
		if err != nil || got != want {
			t.Errorf("ParseTimeOfDay(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTimeOfDay("night"); err == nil {
		t.Error("expected error for unknown time of day")
	}
}

func TestVisibleSubtasks(t *testing.T) {
	tk := Task{Meta: Meta{Subtasks: []Contents{{Title: "a"}, {Title: "b", Visibility: Hidden}, {Title: "c", Done: true}}}}
	got := tk.VisibleSubtasks()
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "c" {
		t.Errorf("VisibleSubtasks = %+v", got)
	}
}
