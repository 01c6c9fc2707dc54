package loader

import (
	"fmt"
	"time"

	"github.com/rnwolfe/dated/internal/todo"
)

// Progressive loads checklists worked through one step per day. The task
// note is the next open step.
type Progressive struct{}

type progressiveFile struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Items       []progressiveItem `json:"items" yaml:"items"`
}

type progressiveItem struct {
	Title string `json:"title" yaml:"title"`
	Done  string `json:"done" yaml:"done"`
}

func (Progressive) Dir() string { return "progressive" }

func (Progressive) Load(file string, data []byte, b *todo.Batch) ([]error, error) {
	var f progressiveFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	if f.Title == "" {
		return nil, fmt.Errorf("missing title")
	}

	rule := todo.ProgressiveRule{Steps: make([]todo.Step, 0, len(f.Items))}
	for _, it := range f.Items {
		var done time.Time
		if it.Done != "" {
			d, err := parseDate("done", it.Done)
			if err != nil {
				return nil, fmt.Errorf("%q step %q: %w", f.Title, it.Title, err)
			}
			done = d
		}
		rule.Steps = append(rule.Steps, todo.Step{Title: it.Title, Done: done})
	}

	next, ok := rule.Next()
	if !ok {
		return nil, fmt.Errorf("%q: %w", f.Title, ErrComplete)
	}
	due, err := rule.Resolve(b.Today())
	if err != nil {
		return nil, err
	}

	b.Add(due, todo.Task{
		Meta: todo.Meta{
			Frequency: todo.Frequency{Interval: todo.IntervalOther, Label: todo.ProgressiveLabel},
		},
		Contents: todo.Contents{Title: f.Title, Note: next.Title},
	})
	return nil, nil
}
