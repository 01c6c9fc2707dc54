package todo

import "fmt"

// Summary counts tasks per section.
type Summary struct {
	Overdue    int
	Today      int
	RestOfWeek int
	Dated      int
	Later      int
	Inactive   int
}

// Summary counts the tasks currently filed in d.
func (d *Data) Summary() Summary {
	s := d.Sections
	return Summary{
		Overdue:    s.Overdue.Len(),
		Today:      len(s.Today),
		RestOfWeek: s.RestOfWeek.Len(),
		Dated:      s.Dated.Len(),
		Later:      s.Later.Len(),
		Inactive:   len(s.Inactive),
	}
}

// Total counts every filed task.
func (s Summary) Total() int {
	return s.Overdue + s.Today + s.RestOfWeek + s.Dated + s.Later + s.Inactive
}

// Open counts tasks that need attention now: overdue and due today.
func (s Summary) Open() int {
	return s.Overdue + s.Today
}

func (s Summary) String() string {
	return fmt.Sprintf("%d overdue, %d today, %d this week, %d dated, %d later, %d inactive",
		s.Overdue, s.Today, s.RestOfWeek, s.Dated, s.Later, s.Inactive)
}
