package todo

import (
	"cmp"
	"slices"
	"strings"
)

// Compare orders tasks by time of day, interval, repeat count, title, note
// and finally completion. Titles and notes compare case-insensitively.
func Compare(a, b Task) int {
	if c := cmp.Compare(a.TimeOfDay.rank(), b.TimeOfDay.rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Frequency.Interval.rank(), b.Frequency.Interval.rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Frequency.Number, b.Frequency.Number); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.Note), strings.ToLower(b.Note)); c != 0 {
		return c
	}
	return cmp.Compare(doneRank(a.Done), doneRank(b.Done))
}

func doneRank(done bool) int {
	if done {
		return 1
	}
	return 0
}

// Sort orders tasks in place, keeping equal tasks in their input order.
func Sort(tasks []Task) {
	slices.SortStableFunc(tasks, Compare)
}
