package loader

import (
	"fmt"

	"github.com/rnwolfe/dated/internal/calendar"
	"github.com/rnwolfe/dated/internal/todo"
)

// Recurring loads tasks that repeat a fixed interval after they were last
// done. One file holds one task.
type Recurring struct{}

type recurringFile struct {
	Title       string             `json:"title" yaml:"title"`
	Note        string             `json:"note" yaml:"note"`
	Description string             `json:"description" yaml:"description"`
	Frequency   recurringFrequency `json:"frequency" yaml:"frequency"`
	Last        string             `json:"last" yaml:"last"`
	SnapTo      string             `json:"snap_to" yaml:"snap_to"`
	Pivot       string             `json:"pivot" yaml:"pivot"`
	TimeOfDay   string             `json:"time_of_day" yaml:"time_of_day"`
	BufferDays  int                `json:"buffer_days" yaml:"buffer_days"`
	Subtasks    []recurringSubtask `json:"subtasks" yaml:"subtasks"`
	Active      *bool              `json:"active" yaml:"active"`
	Hidden      bool               `json:"hidden" yaml:"hidden"`
}

type recurringFrequency struct {
	Number   *int   `json:"number" yaml:"number"`
	Interval string `json:"interval" yaml:"interval"`
}

type recurringSubtask struct {
	Title  string `json:"title" yaml:"title"`
	Done   string `json:"done" yaml:"done"`
	Hidden bool   `json:"hidden" yaml:"hidden"`
}

func (Recurring) Dir() string { return "recurring" }

func (Recurring) Load(file string, data []byte, b *todo.Batch) ([]error, error) {
	var f recurringFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	if f.Title == "" {
		return nil, fmt.Errorf("missing title")
	}

	rule, err := f.rule()
	if err != nil {
		return nil, fmt.Errorf("%q: %w", f.Title, err)
	}
	tod, err := todo.ParseTimeOfDay(f.TimeOfDay)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", f.Title, err)
	}
	due, err := rule.Resolve(b.Today())
	if err != nil {
		return nil, fmt.Errorf("%q: %w", f.Title, err)
	}

	subtasks := make([]todo.Contents, 0, len(f.Subtasks))
	for _, s := range f.Subtasks {
		c := todo.Contents{Title: s.Title, Done: s.Done != ""}
		if s.Hidden {
			c.Visibility = todo.Hidden
		}
		subtasks = append(subtasks, c)
	}

	visibility := todo.Visible
	if f.Active != nil && !*f.Active {
		visibility = todo.Inactive
	}
	if f.Hidden {
		visibility = todo.Hidden
	}

	b.Add(due, todo.Task{
		Meta: todo.Meta{
			Frequency: todo.Frequency{Interval: rule.Interval, Number: rule.Number},
			TimeOfDay: tod,
			Subtasks:  subtasks,
		},
		Contents: todo.Contents{Title: f.Title, Note: f.Note, Visibility: visibility},
	})
	return nil, nil
}

func (f recurringFile) rule() (todo.RecurringRule, error) {
	last, err := parseDate("last", f.Last)
	if err != nil {
		return todo.RecurringRule{}, err
	}
	if f.Frequency.Number == nil {
		return todo.RecurringRule{}, fmt.Errorf("%w: missing frequency number", todo.ErrInvalidFrequency)
	}
	interval, err := todo.ParseInterval(f.Frequency.Interval)
	if err != nil {
		return todo.RecurringRule{}, err
	}
	snap, err := todo.ParseSnapTo(f.SnapTo)
	if err != nil {
		return todo.RecurringRule{}, err
	}

	rule := todo.RecurringRule{
		Last:       last,
		Interval:   interval,
		Number:     *f.Frequency.Number,
		BufferDays: f.BufferDays,
		SnapTo:     snap,
	}
	if f.Pivot != "" {
		wd, err := calendar.ParseWeekday(f.Pivot)
		if err != nil {
			return todo.RecurringRule{}, fmt.Errorf("pivot: %w", err)
		}
		rule.Pivot = &wd
	}
	return rule, nil
}
