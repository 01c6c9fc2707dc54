package loader

import (
	"fmt"

	"github.com/rnwolfe/dated/internal/todo"
)

// Simple loads one-off tasks with explicit due dates. The file prefix is
// shown in place of a frequency.
type Simple struct{}

type simpleFile struct {
	Prefix      string       `json:"prefix" yaml:"prefix"`
	Description string       `json:"description" yaml:"description"`
	Items       []simpleItem `json:"items" yaml:"items"`
}

type simpleItem struct {
	Title string `json:"title" yaml:"title"`
	Note  string `json:"note" yaml:"note"`
	Due   string `json:"due" yaml:"due"`
	Done  string `json:"done" yaml:"done"`
}

func (Simple) Dir() string { return "simple" }

func (Simple) Load(file string, data []byte, b *todo.Batch) ([]error, error) {
	var f simpleFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}

	var skips []error
	for i, it := range f.Items {
		if it.Done != "" {
			continue
		}
		if it.Title == "" {
			skips = append(skips, fmt.Errorf("items[%d]: missing title", i))
			continue
		}
		due, err := parseDate("due", it.Due)
		if err != nil {
			skips = append(skips, fmt.Errorf("%q: %w", it.Title, err))
			continue
		}
		if due, err = (todo.SimpleRule{Due: due}).Resolve(b.Today()); err != nil {
			skips = append(skips, fmt.Errorf("%q: %w", it.Title, err))
			continue
		}
		b.Add(due, todo.Task{
			Meta: todo.Meta{
				Frequency: todo.Frequency{Interval: todo.IntervalOther, Label: f.Prefix},
			},
			Contents: todo.Contents{Title: it.Title, Note: it.Note},
		})
	}
	return skips, nil
}
