package loader

import (
	"fmt"

	"github.com/rnwolfe/dated/internal/todo"
)

// MarkedDay loads yearly dates, each with items that are observed once a
// year.
type MarkedDay struct{}

type markedDayFile struct {
	MarkTitle   string      `json:"mark_title" yaml:"mark_title"`
	Description string      `json:"description" yaml:"description"`
	Days        []markedDay `json:"days" yaml:"days"`
}

type markedDay struct {
	Month int          `json:"month" yaml:"month"`
	Day   int          `json:"day" yaml:"day"`
	Items []markedItem `json:"items" yaml:"items"`
}

type markedItem struct {
	Title            string `json:"title" yaml:"title"`
	Note             string `json:"note" yaml:"note"`
	Year             *int   `json:"year" yaml:"year"`
	YearLastObserved int    `json:"year_last_observed" yaml:"year_last_observed"`
	Hidden           bool   `json:"hidden" yaml:"hidden"`
}

func (MarkedDay) Dir() string { return "marked-day" }

func (MarkedDay) Load(file string, data []byte, b *todo.Batch) ([]error, error) {
	var f markedDayFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	if f.MarkTitle == "" {
		return nil, fmt.Errorf("missing mark_title")
	}

	year := b.Today().Year()
	var skips []error
	for _, day := range f.Days {
		items := make([]todo.MarkedItem, 0, len(day.Items))
		for _, it := range day.Items {
			mi := todo.MarkedItem{
				Title:        it.Title,
				Note:         it.Note,
				LastObserved: it.YearLastObserved,
				Hidden:       it.Hidden,
			}
			if it.Year != nil {
				mi.Origin = *it.Year
			}
			items = append(items, mi)
		}

		rule := todo.MarkedDayRule{Month: day.Month, Day: day.Day}
		occ, skipped, err := rule.Occurrences(f.MarkTitle, items, year)
		if err != nil {
			skips = append(skips, fmt.Errorf("%q: %w", f.MarkTitle, err))
			continue
		}
		for _, s := range skipped {
			skips = append(skips, fmt.Errorf("%q: %w", f.MarkTitle, s))
		}
		for _, o := range occ {
			b.Add(o.Due, o.Task)
		}
	}
	return skips, nil
}
