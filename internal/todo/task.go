// Package todo holds the task model and the date logic built on it:
// recurrence resolution, the planning horizon, bucket classification,
// ordering and the aggregate the loaders fill.
package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for malformed task records. Loaders log and skip the
// offending record when one of these comes back.
var (
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidSnapTo    = errors.New("invalid snap_to")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMarkedDay = errors.New("invalid marked day")
)

// Visibility controls where, if anywhere, a task shows up.
type Visibility int

const (
	Visible Visibility = iota
	Inactive
	Hidden
)

func (v Visibility) String() string {
	switch v {
	case Inactive:
		return "inactive"
	case Hidden:
		return "hidden"
	default:
		return "visible"
	}
}

// TimeOfDay is a coarse hint for when in the day a task belongs.
// The zero value is TimeAny.
type TimeOfDay int

const (
	TimeAny TimeOfDay = iota
	TimeMorning
	TimeMidday
	TimeEvening
)

// rank orders times of day for sorting: morning, midday, any, evening.
func (t TimeOfDay) rank() int {
	switch t {
	case TimeMorning:
		return 0
	case TimeMidday:
		return 1
	case TimeEvening:
		return 3
	default:
		return 2
	}
}

// Mark returns the short display tag: "M", "D", "E", or "" for any.
func (t TimeOfDay) Mark() string {
	switch t {
	case TimeMorning:
		return "M"
	case TimeMidday:
		return "D"
	case TimeEvening:
		return "E"
	default:
		return ""
	}
}

// ParseTimeOfDay accepts morning/midday/evening/any and their single-letter
// marks. An empty string is TimeAny.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return TimeAny, nil
	case "morning", "m":
		return TimeMorning, nil
	case "midday", "noon", "d":
		return TimeMidday, nil
	case "evening", "e":
		return TimeEvening, nil
	default:
		return TimeAny, fmt.Errorf("invalid time_of_day %q: want morning, midday, evening or any", s)
	}
}

// Interval is the unit a frequency repeats on. The zero value is IntervalNone.
type Interval int

const (
	IntervalNone Interval = iota
	IntervalDay
	IntervalWeek
	IntervalMonth
	IntervalYear
	IntervalOther
)

// rank orders intervals for sorting: day, week, month, year, other, none.
func (i Interval) rank() int {
	switch i {
	case IntervalDay:
		return 0
	case IntervalWeek:
		return 1
	case IntervalMonth:
		return 2
	case IntervalYear:
		return 3
	case IntervalOther:
		return 4
	default:
		return 5
	}
}

func (i Interval) String() string {
	switch i {
	case IntervalDay:
		return "day"
	case IntervalWeek:
		return "week"
	case IntervalMonth:
		return "month"
	case IntervalYear:
		return "year"
	case IntervalOther:
		return "other"
	default:
		return "none"
	}
}

// ParseInterval accepts the recurring-file spellings of an interval.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "days", "daily", "d":
		return IntervalDay, nil
	case "week", "weeks", "weekly", "w":
		return IntervalWeek, nil
	case "month", "months", "monthly", "m":
		return IntervalMonth, nil
	case "year", "years", "yearly", "y":
		return IntervalYear, nil
	default:
		return IntervalNone, fmt.Errorf("%w: unknown interval %q", ErrInvalidFrequency, s)
	}
}

// Frequency describes how often a task repeats. Number is 0 when the task
// carries no repeat count. Label is shown for IntervalOther tasks.
type Frequency struct {
	Interval Interval
	Number   int
	Label    string
}

// Contents is the displayable part of a task or subtask.
type Contents struct {
	Title      string
	Note       string
	Done       bool
	Visibility Visibility
}

// Meta is everything about a task that is not its own text.
type Meta struct {
	Frequency Frequency
	TimeOfDay TimeOfDay
	Subtasks  []Contents
}

// Task is one resolved occurrence. Tasks carry no due date; the date is the
// key of the section they are filed under.
type Task struct {
	Meta
	Contents
}
