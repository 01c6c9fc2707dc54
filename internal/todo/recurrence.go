package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/dated/internal/calendar"
)

// Rule resolves to the next due date of a task.
type Rule interface {
	Resolve(today time.Time) (time.Time, error)
}

// SimpleRule is a task with an explicit due date.
type SimpleRule struct {
	Due time.Time
}

func (r SimpleRule) Resolve(time.Time) (time.Time, error) {
	return r.Due, nil
}

// SnapKind selects how a recurring due date is pulled forward.
type SnapKind int

const (
	SnapNone SnapKind = iota
	SnapToday
	SnapWeekday
)

// SnapTo is a parsed snap_to value. Weekday is meaningful only for SnapWeekday.
type SnapTo struct {
	Kind    SnapKind
	Weekday time.Weekday
}

func (s SnapTo) String() string {
	switch s.Kind {
	case SnapToday:
		return "today"
	case SnapWeekday:
		return s.Weekday.String()[:3]
	default:
		return "none"
	}
}

// ParseSnapTo accepts "", none, tbd (to be determined), today or a weekday name.
func ParseSnapTo(s string) (SnapTo, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "tbd", "tobedetermined":
		return SnapTo{}, nil
	case "today":
		return SnapTo{Kind: SnapToday}, nil
	}
	wd, err := calendar.ParseWeekday(s)
	if err != nil {
		return SnapTo{}, fmt.Errorf("%w: %q", ErrInvalidSnapTo, s)
	}
	return SnapTo{Kind: SnapWeekday, Weekday: wd}, nil
}

// RecurringRule repeats every Number Intervals after Last. Modifiers apply
// in a fixed order: Pivot, then BufferDays, then SnapTo.
type RecurringRule struct {
	Last     time.Time
	Interval Interval
	Number   int

	// Pivot moves the candidate forward onto this weekday when set.
	Pivot *time.Weekday
	// BufferDays is lead time: positive values move the date earlier.
	BufferDays int
	SnapTo     SnapTo
}

// Resolve returns the next due date. Bad parameters yield
// ErrInvalidFrequency; leaving the calendar range yields
// calendar.ErrOutOfRange.
func (r RecurringRule) Resolve(today time.Time) (time.Time, error) {
	if r.Number < 1 {
		return time.Time{}, fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidFrequency, r.Number)
	}
	unit, ok := r.Interval.unit()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: interval %s cannot recur", ErrInvalidFrequency, r.Interval)
	}

	due, ok := calendar.AddInterval(r.Last, unit, r.Number)
	if !ok {
		return time.Time{}, fmt.Errorf("adding %d %s to %s: %w", r.Number, unit, r.Last.Format(calendar.DateLayout), calendar.ErrOutOfRange)
	}

	var err error
	if r.Pivot != nil {
		if due, err = advanceToWeekday(due, *r.Pivot); err != nil {
			return time.Time{}, err
		}
	}

	if r.BufferDays != 0 {
		if due, ok = calendar.AdjustByBufferDays(due, r.BufferDays); !ok {
			return time.Time{}, fmt.Errorf("applying %d buffer days: %w", r.BufferDays, calendar.ErrOutOfRange)
		}
	}

	switch r.SnapTo.Kind {
	case SnapToday:
		if due.Before(today) {
			due = today
		}
	case SnapWeekday:
		if due.Before(today) {
			due = today
		}
		if due, err = advanceToWeekday(due, r.SnapTo.Weekday); err != nil {
			return time.Time{}, err
		}
	}
	return due, nil
}

func (i Interval) unit() (calendar.Unit, bool) {
	switch i {
	case IntervalDay:
		return calendar.UnitDay, true
	case IntervalWeek:
		return calendar.UnitWeek, true
	case IntervalMonth:
		return calendar.UnitMonth, true
	case IntervalYear:
		return calendar.UnitYear, true
	default:
		return 0, false
	}
}

// advanceToWeekday moves d forward one day at a time until it falls on wd.
func advanceToWeekday(d time.Time, wd time.Weekday) (time.Time, error) {
	for range 7 {
		if d.Weekday() == wd {
			return d, nil
		}
		next, ok := calendar.AddDays(d, 1)
		if !ok {
			return time.Time{}, fmt.Errorf("advancing to %s: %w", wd, calendar.ErrOutOfRange)
		}
		d = next
	}
	panic(fmt.Sprintf("no %s within seven days of %s", wd, d.Format(calendar.DateLayout)))
}

// Step is one item of a progressive checklist. Done is zero while the step
// is still open.
type Step struct {
	Title string
	Done  time.Time
}

// ProgressiveRule works through Steps in order, one per day.
type ProgressiveRule struct {
	Steps []Step
}

// Next returns the first open step.
func (r ProgressiveRule) Next() (Step, bool) {
	for _, s := range r.Steps {
		if s.Done.IsZero() {
			return s, true
		}
	}
	return Step{}, false
}

// Resolve returns today, or tomorrow when the step completed most recently
// before the first open step was completed today.
func (r ProgressiveRule) Resolve(today time.Time) (time.Time, error) {
	var last time.Time
	for _, s := range r.Steps {
		if s.Done.IsZero() {
			break
		}
		last = s.Done
	}
	if !last.IsZero() && last.Equal(today) {
		next, ok := calendar.AddDays(today, 1)
		if !ok {
			return time.Time{}, fmt.Errorf("progressive next day: %w", calendar.ErrOutOfRange)
		}
		return next, nil
	}
	return today, nil
}

// MarkedDayRule is a month/day that comes around every year.
type MarkedDayRule struct {
	Month int
	Day   int
}

// Resolve returns the marked day in year, or ErrInvalidMarkedDay for
// combinations like Feb 30. Feb 29 falls on Feb 28 in common years.
func (r MarkedDayRule) Resolve(year int) (time.Time, error) {
	d, err := calendar.FromYMD(year, r.Month, r.Day)
	if err != nil && r.Month == 2 && r.Day == 29 {
		d, err = calendar.FromYMD(year, 2, 28)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %02d-%02d: %v", ErrInvalidMarkedDay, r.Month, r.Day, err)
	}
	return d, nil
}

// MarkedItem is one thing observed on a marked day.
type MarkedItem struct {
	Title string
	Note  string
	// Origin is the year the item started, or 0. It turns the title into
	// "Title (N years since Origin)".
	Origin int
	// LastObserved is the last year the item was done, or 0 for never.
	LastObserved int
	Hidden       bool
}

// Occurrence is a resolved task with its due date.
type Occurrence struct {
	Due  time.Time
	Task Task
}

// Occurrences builds the tasks for a marked day: one in currentYear holding
// every visible item, done when observed this year, and one in the following
// year holding the items already observed this year, reopened. Items whose
// last observation is not a real date are left out and reported in skipped.
func (r MarkedDayRule) Occurrences(title string, items []MarkedItem, currentYear int) (occ []Occurrence, skipped []error, err error) {
	thisYear, err := r.Resolve(currentYear)
	if err != nil {
		return nil, nil, err
	}
	nextYear, err := r.Resolve(currentYear + 1)
	if err != nil {
		return nil, nil, err
	}

	var current, next []Contents
	for _, it := range items {
		if it.Hidden {
			continue
		}
		observed := false
		if it.LastObserved != 0 {
			last, err := r.Resolve(it.LastObserved)
			if err != nil {
				skipped = append(skipped, fmt.Errorf("%q last observed: %w", it.Title, err))
				continue
			}
			observed = !last.Before(thisYear)
		}
		current = append(current, Contents{
			Title: it.displayTitle(currentYear),
			Note:  it.Note,
			Done:  observed,
		})
		if observed {
			next = append(next, Contents{
				Title: it.displayTitle(currentYear + 1),
				Note:  it.Note,
			})
		}
	}

	if len(current) > 0 {
		t := markedTask(title, current)
		t.Done = allDone(current)
		occ = append(occ, Occurrence{Due: thisYear, Task: t})
	}
	if len(next) > 0 {
		occ = append(occ, Occurrence{Due: nextYear, Task: markedTask(title, next)})
	}
	return occ, skipped, nil
}

func (it MarkedItem) displayTitle(year int) string {
	if it.Origin == 0 {
		return it.Title
	}
	n := year - it.Origin
	unit := "year"
	if n > 1 {
		unit = "years"
	}
	return fmt.Sprintf("%s (%d %s since %d)", it.Title, n, unit, it.Origin)
}

func markedTask(title string, subtasks []Contents) Task {
	return Task{
		Meta:     Meta{Subtasks: subtasks},
		Contents: Contents{Title: title},
	}
}

func allDone(cs []Contents) bool {
	for _, c := range cs {
		if !c.Done {
			return false
		}
	}
	return true
}
