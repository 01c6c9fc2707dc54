package todo

import (
	"fmt"
	"strings"
)

// ProgressiveLabel is the frequency label of progressive tasks.
const ProgressiveLabel = "(PR)"

// String renders the frequency for display: "daily", "weekly", "2-week",
// the label for other frequencies, and "" for none.
func (f Frequency) String() string {
	switch f.Interval {
	case IntervalNone:
		return ""
	case IntervalOther:
		return f.Label
	}
	if f.Number == 1 {
		switch f.Interval {
		case IntervalDay:
			return "daily"
		case IntervalWeek:
			return "weekly"
		case IntervalMonth:
			return "monthly"
		case IntervalYear:
			return "yearly"
		}
	}
	return fmt.Sprintf("%d-%s", f.Number, f.Interval)
}

// Prefix renders the leading metadata of a task line, e.g. "weekly - (M) ".
// It is empty for tasks with no frequency and no time of day.
func (m Meta) Prefix() string {
	var b strings.Builder
	if freq := m.Frequency.String(); freq != "" {
		b.WriteString(freq)
		b.WriteString(" - ")
	}
	if mark := m.TimeOfDay.Mark(); mark != "" {
		fmt.Fprintf(&b, "(%s) ", mark)
	}
	return b.String()
}

// String renders "Title (note)", or just the title without a note.
func (c Contents) String() string {
	if c.Note == "" {
		return c.Title
	}
	return fmt.Sprintf("%s (%s)", c.Title, c.Note)
}

// String renders the task's prefix and contents on one line.
func (t Task) String() string {
	return t.Prefix() + t.Contents.String()
}

// VisibleSubtasks returns the subtasks that are not hidden.
func (t Task) VisibleSubtasks() []Contents {
	var out []Contents
	for _, s := range t.Subtasks {
		if s.Visibility != Hidden {
			out = append(out, s)
		}
	}
	return out
}
