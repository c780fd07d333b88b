package calendar

import (
	"fmt"
	"time"

	"github.com/alpacahq/bizcal/utils/date"
)

// NthWeekday selects one occurrence of a weekday within a month.
type NthWeekday int

const (
	First NthWeekday = iota
	Second
	Third
	Fourth
	Last
)

func (n NthWeekday) String() string {
	switch n {
	case First:
		return "first"
	case Second:
		return "second"
	case Third:
		return "third"
	case Fourth:
		return "fourth"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("NthWeekday(%d)", int(n))
	}
}

// anchor returns the day of month the weekday search starts from.
func (n NthWeekday) anchor(year int, month time.Month) int {
	switch n {
	case Second:
		return 8
	case Third:
		return 15
	case Fourth:
		return 22
	case Last:
		return date.LastDayOfMonth(year, month)
	default:
		return 1
	}
}

// Rule describes one recurring or singular non-business day. The set of
// rules is closed: WeekDay, YearlyDay, MovableYearlyDay, SingularDay,
// EasterOffset and MonthWeekday.
type Rule interface {
	fmt.Stringer
	isRule()
}

// WeekDay marks a day of the week as a weekend day. Most markets use
// Saturday and Sunday, but not all of them.
type WeekDay struct {
	Weekday time.Weekday
}

// YearlyDay is a holiday on the same month and day every year.
// First and Last are the first and last year (inclusive) the holiday
// applies; nil means unbounded.
type YearlyDay struct {
	Month time.Month
	Day   int
	First *int
	Last  *int
}

// MovableYearlyDay is like YearlyDay, but a date falling on Saturday or
// Sunday moves to the next Monday. Saturday and Sunday are used here even
// when the calendar defines other weekend days. If the target day is
// already a holiday, the date moves forward until a free day is found, so
// the order of rules decides which of two colliding holidays is moved.
type MovableYearlyDay struct {
	Month time.Month
	Day   int
	First *int
	Last  *int
}

// SingularDay is a holiday that happens only once.
type SingularDay struct {
	Date date.Date
}

// EasterOffset is a holiday defined in days relative to Easter Sunday,
// e.g. -2 for Good Friday or 1 for Easter Monday.
type EasterOffset struct {
	Offset int
}

// MonthWeekday is a holiday on the nth (or last) weekday of a month,
// e.g. the first Monday in May.
type MonthWeekday struct {
	Month   time.Month
	Weekday time.Weekday
	Nth     NthWeekday
	First   *int
	Last    *int
}

func (WeekDay) isRule()          {}
func (YearlyDay) isRule()        {}
func (MovableYearlyDay) isRule() {}
func (SingularDay) isRule()      {}
func (EasterOffset) isRule()     {}
func (MonthWeekday) isRule()     {}

// Year returns a pointer to y, for use as a First or Last bound.
func Year(y int) *int {
	return &y
}

func (r WeekDay) String() string {
	return fmt.Sprintf("WeekDay(%s)", r.Weekday)
}

func (r YearlyDay) String() string {
	return fmt.Sprintf("YearlyDay(%s %d%s)", r.Month, r.Day, bounds(r.First, r.Last))
}

func (r MovableYearlyDay) String() string {
	return fmt.Sprintf("MovableYearlyDay(%s %d%s)", r.Month, r.Day, bounds(r.First, r.Last))
}

func (r SingularDay) String() string {
	return fmt.Sprintf("SingularDay(%s)", r.Date)
}

func (r EasterOffset) String() string {
	return fmt.Sprintf("EasterOffset(%+d)", r.Offset)
}

func (r MonthWeekday) String() string {
	return fmt.Sprintf("MonthWeekday(%s %s of %s%s)", r.Nth, r.Weekday, r.Month, bounds(r.First, r.Last))
}

func bounds(first, last *int) string {
	if first == nil && last == nil {
		return ""
	}
	s := ", "
	if first != nil {
		s += fmt.Sprint(*first)
	}
	s += ".."
	if last != nil {
		s += fmt.Sprint(*last)
	}
	return s
}

// yearRange clamps the optional rule bounds into [start, end].
func yearRange(start, end int, first, last *int) (int, int) {
	if first != nil && *first > start {
		start = *first
	}
	if last != nil && *last < end {
		end = *last
	}
	return start, end
}

func validMonth(m time.Month) bool {
	return m >= time.January && m <= time.December
}

func validWeekday(w time.Weekday) bool {
	return w >= time.Sunday && w <= time.Saturday
}
