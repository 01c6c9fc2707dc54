// Package render turns a loaded todo.Data into markdown.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/dated/internal/calendar"
	"github.com/rnwolfe/dated/internal/todo"
)

// Words used in headings.
const (
	TitleIcon = "🗓️"
	Title     = "repeating - dated"
	Today     = "today"
	Later     = "later"
	Inactive  = "inactive"

	// EmptyToday is shown in place of an empty today section.
	EmptyToday = "All done for today :)"
)

const subtaskIndent = "  "

// Document renders every section: overdue, today, rest of the week, the
// dated weeks of this year and the next, later, and inactive.
func Document(d *todo.Data) string {
	var w writer
	w.heading(1, TitleIcon+" "+Title)
	w.overdue(d)
	w.today(d)
	w.restOfWeek(d)
	w.dated(d)
	return w.String()
}

// Overdue renders past-due tasks grouped by day. Overdue has no heading of
// its own.
func Overdue(d *todo.Data) string {
	var w writer
	w.overdue(d)
	return w.String()
}

// TodayList renders the today section, or a short note when it is empty.
func TodayList(d *todo.Data) string {
	var w writer
	w.today(d)
	if len(d.Sections.Today) == 0 {
		w.line("")
		w.line("_" + EmptyToday + "_")
	}
	return w.String()
}

// RestOfWeek renders the days between tomorrow and the first full week.
func RestOfWeek(d *todo.Data) string {
	var w writer
	w.restOfWeek(d)
	return w.String()
}

// Dated renders the week-by-week view for the current and next year
// followed by the later and inactive sections.
func Dated(d *todo.Data) string {
	var w writer
	w.dated(d)
	return w.String()
}

type writer struct {
	strings.Builder
}

func (w *writer) line(s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}

func (w *writer) heading(level int, text string) {
	if w.Len() > 0 {
		w.line("")
	}
	w.line(strings.Repeat("#", level) + " " + text)
}

func (w *writer) overdue(d *todo.Data) {
	w.groups(d.Sections.Overdue.Days())
}

func (w *writer) today(d *todo.Data) {
	w.heading(2, fmt.Sprintf("%s - %s", Today, calendar.FormatDayShort(d.Today())))
	w.tasks(d.Sections.Today)
}

func (w *writer) restOfWeek(d *todo.Data) {
	w.groups(d.Sections.RestOfWeek.Days())
}

func (w *writer) dated(d *todo.Data) {
	h := d.Horizon
	w.heading(2, fmt.Sprint(h.CurrentYear))
	w.weeks(d.Sections.Dated, h.WeeksCurrentYear)

	w.heading(2, fmt.Sprint(h.NextYear))
	w.weeks(d.Sections.Dated, h.WeeksNextYear)

	w.heading(2, Later)
	w.groups(d.Sections.Later.Days())

	w.heading(2, Inactive)
	w.tasks(d.Sections.Inactive)
}

func (w *writer) weeks(g todo.DateGroups, mondays []time.Time) {
	for _, monday := range mondays {
		w.heading(4, calendar.FormatWeek(monday))
		w.groups(g.Between(monday, monday.AddDate(0, 0, 6)))
	}
}

func (w *writer) groups(days []todo.DayTasks) {
	for _, day := range days {
		w.heading(5, calendar.FormatDay(day.Date))
		w.tasks(day.Tasks)
	}
}

func (w *writer) tasks(tasks []todo.Task) {
	if len(tasks) == 0 {
		return
	}
	w.line("")
	for _, t := range tasks {
		w.task(t)
	}
}

// task writes one task line and its visible subtasks. Inactive tasks carry
// no checkbox; inactive subtasks are struck through.
func (w *writer) task(t todo.Task) {
	switch t.Visibility {
	case todo.Hidden:
		return
	case todo.Inactive:
		w.line("- " + t.String())
	default:
		w.line("- " + checkbox(t.Done) + " " + t.String())
	}

	for _, s := range t.VisibleSubtasks() {
		item := checkbox(s.Done) + " " + s.String()
		if s.Visibility == todo.Inactive {
			item = "~~" + item + "~~"
		}
		w.line(subtaskIndent + "- " + item)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
