package todo

import (
	"time"

	"github.com/rnwolfe/dated/internal/calendar"
)

// Horizon is the set of calendar boundaries one run classifies against.
type Horizon struct {
	Today time.Time
	// FirstFullWeekStart is the Monday opening the first full week; it is
	// Today itself when Today is a Monday.
	FirstFullWeekStart time.Time
	// End is the first Sunday on or after Today + 12 months.
	End time.Time

	CurrentYear int
	NextYear    int

	// WeeksCurrentYear and WeeksNextYear hold the Monday of each week from
	// FirstFullWeekStart through End, split at the first ISO week 1 of a
	// later year.
	WeeksCurrentYear []time.Time
	WeeksNextYear    []time.Time
}

// NewHorizon computes the horizon for today.
func NewHorizon(today time.Time) Horizon {
	today = calendar.Day(today)
	h := Horizon{
		Today:              today,
		FirstFullWeekStart: calendar.NextMonday(today),
		End:                calendar.HorizonEnd(today),
		CurrentYear:        today.Year(),
		NextYear:           today.Year() + 1,
	}

	inNextYear := false
	for d := h.FirstFullWeekStart; d.Before(h.End); d = calendar.NextWeek(d) {
		if !inNextYear && calendar.ISOWeekIsFirstOfYear(d) && calendar.ISOYear(d) > h.CurrentYear {
			inNextYear = true
		}
		if inNextYear {
			h.WeeksNextYear = append(h.WeeksNextYear, d)
		} else {
			h.WeeksCurrentYear = append(h.WeeksCurrentYear, d)
		}
	}
	return h
}

// Weeks returns every week Monday in order.
func (h Horizon) Weeks() []time.Time {
	out := make([]time.Time, 0, len(h.WeeksCurrentYear)+len(h.WeeksNextYear))
	out = append(out, h.WeeksCurrentYear...)
	return append(out, h.WeeksNextYear...)
}

// InNextYear reports whether a Dated date falls in the next-year part.
func (h Horizon) InNextYear(d time.Time) bool {
	if len(h.WeeksNextYear) == 0 {
		return false
	}
	return !d.Before(h.WeeksNextYear[0])
}
