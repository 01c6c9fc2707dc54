package todo

import (
	"testing"
)

func TestDataAddTask_WeeklyScenario(t *testing.T) {
	d := NewData(date(2024, 6, 10))
	rule := RecurringRule{Last: date(2024, 6, 3), Interval: IntervalWeek, Number: 1}
	due, err := rule.Resolve(d.Today())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b := d.AddTask(due, task("Water plants")); b != BucketToday {
		t.Fatalf("bucket = %s, want today", b)
	}
	if len(d.Sections.Today) != 1 || d.Sections.Today[0].Title != "Water plants" {
		t.Errorf("Today = %v", titles(d.Sections.Today))
	}
}

func TestDataAddTask_ProgressiveScenario(t *testing.T) {
	d := NewData(date(2024, 6, 10))
	rule := ProgressiveRule{Steps: []Step{{Title: "ch. 1", Done: date(2024, 6, 9)}, {Title: "ch. 2", Done: date(2024, 6, 10)}}}
	due, _ := rule.Resolve(d.Today())
	if !due.Equal(date(2024, 6, 11)) {
		t.Fatalf("due = %s, want 2024-06-11", fmtDate(due))
	}
	// Tuesday after a Monday today is already a Dated week.
	if b := d.AddTask(due, task("Read book")); b != BucketDated {
		t.Errorf("bucket = %s, want dated", b)
	}
}

func TestDataAddTask_Partition(t *testing.T) {
	d := NewData(date(2024, 6, 12))
	inputs := []struct {
		due  string
		vis  Visibility
		want Bucket
	}{
		{"2024-06-01", Visible, BucketOverdue},
		{"2024-06-12", Visible, BucketToday},
		{"2024-06-14", Visible, BucketRestOfWeek},
		{"2024-09-01", Visible, BucketDated},
		{"2026-01-01", Visible, BucketLater},
		{"2024-06-12", Inactive, BucketInactive},
		{"2024-06-12", Hidden, BucketHidden},
	}
	for _, in := range inputs {
		due := mustParse(t, in.due)
		tk := Task{Contents: Contents{Title: in.due, Visibility: in.vis}}
		if b := d.AddTask(due, tk); b != in.want {
			t.Errorf("AddTask(%s, %s) = %s, want %s", in.due, in.vis, b, in.want)
		}
	}

	s := d.Summary()
	want := Summary{Overdue: 1, Today: 1, RestOfWeek: 1, Dated: 1, Later: 1, Inactive: 1}
	if s != want {
		t.Errorf("Summary = %+v, want %+v", s, want)
	}
	if s.Total() != 6 {
		t.Errorf("Total = %d, want 6 (hidden dropped)", s.Total())
	}
	if s.Open() != 2 {
		t.Errorf("Open = %d, want 2", s.Open())
	}
}

func TestDataMerge(t *testing.T) {
	d := NewData(date(2024, 6, 12))

	b := d.NewBatch()
	b.Add(d.Today(), task("zebra"))
	b.Add(d.Today(), Task{Meta: Meta{TimeOfDay: TimeMorning}, Contents: Contents{Title: "coffee"}})
	b.Add(date(2024, 9, 2), task("b"))
	b.Add(date(2024, 7, 1), task("a"))
	b.Add(date(2024, 7, 1), task("A0"))
	if b.Len() != 5 {
		t.Fatalf("batch Len = %d, want 5", b.Len())
	}

	counts := d.Merge(b)
	if counts[BucketToday] != 2 || counts[BucketDated] != 3 {
		t.Errorf("counts = %v", counts)
	}
	if b.Len() != 0 {
		t.Errorf("batch not drained after merge")
	}
	if got := titles(d.Sections.Today); got[0] != "coffee" || got[1] != "zebra" {
		t.Errorf("Today = %v, want [coffee zebra]", got)
	}

	days := d.Sections.Dated.Days()
	if len(days) != 2 {
		t.Fatalf("dated days = %d, want 2", len(days))
	}
	if !days[0].Date.Equal(date(2024, 7, 1)) || !days[1].Date.Equal(date(2024, 9, 2)) {
		t.Errorf("dated days out of order: %s, %s", fmtDate(days[0].Date), fmtDate(days[1].Date))
	}
	if got := titles(days[0].Tasks); got[0] != "a" || got[1] != "A0" {
		t.Errorf("2024-07-01 = %v, want [a A0]", got)
	}

	// A second batch merges into already-sorted sections.
	b2 := d.NewBatch()
	b2.Add(d.Today(), task("apple"))
	d.Merge(b2)
	if got := titles(d.Sections.Today); got[1] != "apple" {
		t.Errorf("Today after second merge = %v", got)
	}
}

func TestDateGroupsBetween(t *testing.T) {
	d := NewData(date(2024, 6, 12))
	for _, s := range []string{"2024-06-17", "2024-06-20", "2024-06-24", "2024-07-01"} {
		d.AddTask(mustParse(t, s), task(s))
	}
	week := d.Sections.Dated.Between(date(2024, 6, 17), date(2024, 6, 23))
	if len(week) != 2 {
		t.Fatalf("Between = %d days, want 2", len(week))
	}
	if got := d.Sections.Dated.On(date(2024, 6, 24)); len(got) != 1 {
		t.Errorf("On(2024-06-24) = %d tasks", len(got))
	}
}
