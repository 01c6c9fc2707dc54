package todo

import (
	"slices"
	"time"

	"github.com/rnwolfe/dated/internal/calendar"
)

// DayTasks is the list of tasks filed under one date.
type DayTasks struct {
	Date  time.Time
	Tasks []Task
}

// DateGroups maps dates to task lists and iterates them in date order.
type DateGroups struct {
	byDate map[time.Time][]Task
}

func (g *DateGroups) add(d time.Time, t Task) {
	if g.byDate == nil {
		g.byDate = make(map[time.Time][]Task)
	}
	d = calendar.Day(d)
	g.byDate[d] = append(g.byDate[d], t)
}

func (g *DateGroups) sort() {
	for _, tasks := range g.byDate {
		Sort(tasks)
	}
}

// Days returns the groups ordered by date.
func (g DateGroups) Days() []DayTasks {
	out := make([]DayTasks, 0, len(g.byDate))
	for d, tasks := range g.byDate {
		out = append(out, DayTasks{Date: d, Tasks: tasks})
	}
	slices.SortFunc(out, func(a, b DayTasks) int { return a.Date.Compare(b.Date) })
	return out
}

// On returns the tasks due on d.
func (g DateGroups) On(d time.Time) []Task {
	return g.byDate[calendar.Day(d)]
}

// Between returns the groups with from <= date <= to, in date order.
func (g DateGroups) Between(from, to time.Time) []DayTasks {
	var out []DayTasks
	for _, day := range g.Days() {
		if !day.Date.Before(from) && !day.Date.After(to) {
			out = append(out, day)
		}
	}
	return out
}

// Len counts tasks across all dates.
func (g DateGroups) Len() int {
	n := 0
	for _, tasks := range g.byDate {
		n += len(tasks)
	}
	return n
}

// Sections holds classified tasks. Today and Inactive are flat lists; the
// others are keyed by due date.
type Sections struct {
	Overdue    DateGroups
	Today      []Task
	RestOfWeek DateGroups
	Dated      DateGroups
	Later      DateGroups
	Inactive   []Task
}

func (s *Sections) sort() {
	s.Overdue.sort()
	Sort(s.Today)
	s.RestOfWeek.sort()
	s.Dated.sort()
	s.Later.sort()
	Sort(s.Inactive)
}

// Data is the aggregate a run fills: the horizon plus every classified
// task. It is not safe for concurrent use.
type Data struct {
	Horizon  Horizon
	Sections Sections
}

// NewData returns an empty aggregate for today.
func NewData(today time.Time) *Data {
	return &Data{Horizon: NewHorizon(today)}
}

// AddTask classifies t and files it. Hidden tasks are dropped.
func (d *Data) AddTask(due time.Time, t Task) Bucket {
	b := Classify(due, t.Visibility, d.Horizon)
	switch b {
	case BucketOverdue:
		d.Sections.Overdue.add(due, t)
	case BucketToday:
		d.Sections.Today = append(d.Sections.Today, t)
	case BucketRestOfWeek:
		d.Sections.RestOfWeek.add(due, t)
	case BucketDated:
		d.Sections.Dated.add(due, t)
	case BucketLater:
		d.Sections.Later.add(due, t)
	case BucketInactive:
		d.Sections.Inactive = append(d.Sections.Inactive, t)
	}
	return b
}

// Today is the date the horizon was computed for.
func (d *Data) Today() time.Time { return d.Horizon.Today }

// Batch collects resolved tasks for one source directory before they are
// merged into a Data.
type Batch struct {
	today   time.Time
	entries []Occurrence
}

// NewBatch starts a batch against this aggregate's today.
func (d *Data) NewBatch() *Batch {
	return &Batch{today: d.Horizon.Today}
}

// Today is the date rules should resolve against.
func (b *Batch) Today() time.Time { return b.today }

// Add queues a task due on due.
func (b *Batch) Add(due time.Time, t Task) {
	b.entries = append(b.entries, Occurrence{Due: due, Task: t})
}

// Len reports how many tasks are queued.
func (b *Batch) Len() int { return len(b.entries) }

// Merge files every task in b and re-sorts all sections. It returns the
// number of tasks filed per bucket, hidden ones included.
func (d *Data) Merge(b *Batch) map[Bucket]int {
	counts := make(map[Bucket]int)
	for _, e := range b.entries {
		counts[d.AddTask(e.Due, e.Task)]++
	}
	b.entries = nil
	d.Sections.sort()
	return counts
}
