package todo

import (
	"testing"
)

func task(title string) Task {
	return Task{Contents: Contents{Title: title}}
}

func TestCompare_Keys(t *testing.T) {
	tests := []struct {
		name string
		a, b Task
	}{
		{
			name: "morning before midday",
			a:    Task{Meta: Meta{TimeOfDay: TimeMorning}, Contents: Contents{Title: "z"}},
			b:    Task{Meta: Meta{TimeOfDay: TimeMidday}, Contents: Contents{Title: "a"}},
		},
		{
			name: "midday before any",
			a:    Task{Meta: Meta{TimeOfDay: TimeMidday}},
			b:    Task{Meta: Meta{TimeOfDay: TimeAny}},
		},
		{
			name: "any before evening",
			a:    Task{Meta: Meta{TimeOfDay: TimeAny}},
			b:    Task{Meta: Meta{TimeOfDay: TimeEvening}},
		},
		{
			name: "day before week",
			a:    Task{Meta: Meta{Frequency: Frequency{Interval: IntervalDay, Number: 9}}},
			b:    Task{Meta: Meta{Frequency: Frequency{Interval: IntervalWeek, Number: 1}}},
		},
		{
			name: "year before other",
			a:    Task{Meta: Meta{Frequency: Frequency{Interval: IntervalYear, Number: 1}}},
			b:    Task{Meta: Meta{Frequency: Frequency{Interval: IntervalOther, Label: "(PR)"}}},
		},
		{
			name: "other before none",
			a:    Task{Meta: Meta{Frequency: Frequency{Interval: IntervalOther}}},
			b:    Task{},
		},
		{
			name: "smaller repeat count first",
			a:    Task{Meta: Meta{Frequency: Frequency{Interval: IntervalWeek, Number: 1}}, Contents: Contents{Title: "z"}},
			b:    Task{Meta: Meta{Frequency: Frequency{Interval: IntervalWeek, Number: 2}}, Contents: Contents{Title: "a"}},
		},
		{
			name: "title ignores case",
			a:    task("apple"),
			b:    task("Banana"),
		},
		{
			name: "note breaks title ties",
			a:    Task{Contents: Contents{Title: "x", Note: "Alpha"}},
			b:    Task{Contents: Contents{Title: "X", Note: "beta"}},
		},
		{
			name: "open before done",
			a:    Task{Contents: Contents{Title: "x"}},
			b:    Task{Contents: Contents{Title: "x", Done: true}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if c := Compare(tc.a, tc.b); c >= 0 {
				t.Errorf("Compare(a, b) = %d, want < 0", c)
			}
			if c := Compare(tc.b, tc.a); c <= 0 {
				t.Errorf("Compare(b, a) = %d, want > 0", c)
			}
		})
	}
}

func TestCompare_EqualMorningTasks(t *testing.T) {
	a := Task{Meta: Meta{TimeOfDay: TimeMorning}, Contents: Contents{Title: "same"}}
	if c := Compare(a, a); c != 0 {
		t.Errorf("Compare(a, a) = %d, want 0", c)
	}
}

func TestSort(t *testing.T) {
	tasks := []Task{
		{Meta: Meta{TimeOfDay: TimeEvening}, Contents: Contents{Title: "walk"}},
		task("Laundry"),
		{Meta: Meta{TimeOfDay: TimeMorning}, Contents: Contents{Title: "stretch"}},
		{Meta: Meta{Frequency: Frequency{Interval: IntervalDay, Number: 1}}, Contents: Contents{Title: "water plants"}},
		task("dishes"),
	}
	Sort(tasks)
	want := []string{"stretch", "water plants", "dishes", "Laundry", "walk"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Fatalf("position %d = %q, want %q (order %v)", i, tasks[i].Title, w, titles(tasks))
		}
	}
}

func TestSort_Stable(t *testing.T) {
	// Equal under every ordering key; subtasks tell them apart.
	mk := func(tag string) Task {
		return Task{
			Meta:     Meta{Subtasks: []Contents{{Title: tag}}},
			Contents: Contents{Title: "Same"},
		}
	}
	tasks := []Task{mk("first"), task("aaa"), mk("second"), task("zzz"), mk("third")}
	Sort(tasks)

	var order []string
	for _, tk := range tasks {
		if tk.Title == "Same" {
			order = append(order, tk.Subtasks[0].Title)
		}
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("equal tasks reordered: %v", order)
		}
	}
}

func titles(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
