// Package calendar provides civil-date arithmetic. A date is a time.Time at
// midnight UTC; no function here looks at a time-of-day or a time zone.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted on-disk date format.
const DateLayout = "2006-01-02"

const (
	minYear = 1
	maxYear = 9999
)

// ErrOutOfRange is returned when arithmetic leaves the supported year range.
var ErrOutOfRange = errors.New("date out of range")

// Unit is a recurrence step.
type Unit int

const (
	UnitDay Unit = iota
	UnitWeek
	UnitMonth
	UnitYear
)

func (u Unit) String() string {
	switch u {
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	default:
		return "unknown"
	}
}

// Day strips the clock and location from t, keeping its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the civil date of now in now's own location.
func Today(now time.Time) time.Time {
	return Day(now)
}

// Parse reads a strict YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// FromYMD builds a date, rejecting combinations such as Feb 30.
func FromYMD(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || year < minYear || year > maxYear {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	return d, nil
}

func inRange(d time.Time) bool {
	return d.Year() >= minYear && d.Year() <= maxYear
}

// AddDays adds n (possibly negative) days.
func AddDays(d time.Time, n int) (time.Time, bool) {
	r := d.AddDate(0, 0, n)
	return r, inRange(r)
}

// AddWeeks adds n weeks.
func AddWeeks(d time.Time, n int) (time.Time, bool) {
	return AddDays(d, 7*n)
}

// AddMonths adds n months, clamping the day to the end of the target month
// (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(d time.Time, n int) (time.Time, bool) {
	y, m, day := d.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	if year < minYear || year > maxYear {
		return time.Time{}, false
	}
	last := daysIn(year, month)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// AddYears adds n years; Feb 29 lands on Feb 28 in non-leap years.
func AddYears(d time.Time, n int) (time.Time, bool) {
	return AddMonths(d, 12*n)
}

// AddInterval adds count units to d.
func AddInterval(d time.Time, unit Unit, count int) (time.Time, bool) {
	switch unit {
	case UnitDay:
		return AddDays(d, count)
	case UnitWeek:
		return AddWeeks(d, count)
	case UnitMonth:
		return AddMonths(d, count)
	case UnitYear:
		return AddYears(d, count)
	default:
		return time.Time{}, false
	}
}

// AdjustByBufferDays applies lead time: a positive count moves the date
// earlier, a negative count moves it later.
func AdjustByBufferDays(d time.Time, count int) (time.Time, bool) {
	return AddDays(d, -count)
}

// NextDay returns d + 1 day. It panics outside the supported range, which
// cannot happen for dates produced by Parse or FromYMD short of year 9999.
func NextDay(d time.Time) time.Time {
	return mustAdd(AddDays(d, 1))
}

// NextWeek returns d + 7 days.
func NextWeek(d time.Time) time.Time {
	return mustAdd(AddDays(d, 7))
}

func mustAdd(d time.Time, ok bool) time.Time {
	if !ok {
		panic(ErrOutOfRange)
	}
	return d
}

// daysFromMonday maps Monday..Sunday to 0..6.
func daysFromMonday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// NextMonday returns d when d is a Monday, otherwise the following Monday.
func NextMonday(d time.Time) time.Time {
	n := daysFromMonday(d)
	if n == 0 {
		return d
	}
	return mustAdd(AddDays(d, 7-n))
}

// FirstSundayOnOrAfter returns the smallest Sunday >= d.
func FirstSundayOnOrAfter(d time.Time) time.Time {
	return mustAdd(AddDays(d, (7-int(d.Weekday()))%7))
}

// HorizonEnd returns the first Sunday on or after today + 12 months.
func HorizonEnd(today time.Time) time.Time {
	return FirstSundayOnOrAfter(mustAdd(AddMonths(today, 12)))
}

// WeekStart returns the Monday of d's week.
func WeekStart(d time.Time) time.Time {
	return mustAdd(AddDays(d, -daysFromMonday(d)))
}

// WeekDays returns the seven dates of the week starting on monday.
func WeekDays(monday time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// ISOWeekIsFirstOfYear reports whether d falls in ISO week 1.
func ISOWeekIsFirstOfYear(d time.Time) bool {
	_, w := d.ISOWeek()
	return w == 1
}

// ISOYear returns the ISO week-numbering year of d.
func ISOYear(d time.Time) int {
	y, _ := d.ISOWeek()
	return y
}

// ParseWeekday accepts short or long English weekday names, any case.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		long := strings.ToLower(wd.String())
		if key == long || key == long[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// WeekdayAbbrev returns "Mon", "Tue", ...
func WeekdayAbbrev(d time.Time) string {
	return d.Weekday().String()[:3]
}

// MonthAbbrev returns "Jan.", "Feb.", ... and "May" without a dot.
func MonthAbbrev(m time.Month) string {
	if m == time.May {
		return "May"
	}
	return m.String()[:3] + "."
}

// FormatDay renders "2024-06-17 (Mon)".
func FormatDay(d time.Time) string {
	return fmt.Sprintf("%s (%s)", d.Format(DateLayout), WeekdayAbbrev(d))
}

// FormatDayShort renders "Jun. 17. (Mon)".
func FormatDayShort(d time.Time) string {
	return fmt.Sprintf("%s %d. (%s)", MonthAbbrev(d.Month()), d.Day(), WeekdayAbbrev(d))
}

// FormatISOWeek renders "2024-W25".
func FormatISOWeek(d time.Time) string {
	y, w := d.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// FormatWeek renders the ISO week of d with its Monday-Sunday range,
// e.g. "2024-W25 (Jun. 17-23.)", or "2024-W31 (Jul. 29. - Aug. 4.)" across months.
func FormatWeek(d time.Time) string {
	monday := WeekStart(d)
	sunday := monday.AddDate(0, 0, 6)

	var span string
	if monday.Month() == sunday.Month() {
		span = fmt.Sprintf("%s %d-%d.", MonthAbbrev(monday.Month()), monday.Day(), sunday.Day())
	} else {
		span = fmt.Sprintf("%s %d. - %s %d.",
			MonthAbbrev(monday.Month()), monday.Day(),
			MonthAbbrev(sunday.Month()), sunday.Day())
	}
	return fmt.Sprintf("%s (%s)", FormatISOWeek(monday), span)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
