package defs

import (
	"time"

	"github.com/alpacahq/bizcal/calendar"
)

// British bank holidays (England and Wales)
var (
	GBNewYear   = calendar.MovableYearlyDay{Month: time.January, Day: 1}
	GBSummer    = calendar.MonthWeekday{Month: time.August, Weekday: time.Monday, Nth: calendar.Last}
	GBChristmas = calendar.MovableYearlyDay{Month: time.December, Day: 25}
	GBBoxingDay = calendar.MovableYearlyDay{Month: time.December, Day: 26}
)

// UnitedKingdom returns the bank holidays of England and Wales. New Year,
// Christmas and Boxing Day falling on a weekend are substituted by the
// following working days; the order of Christmas before Boxing Day makes
// Christmas take the Monday.
func UnitedKingdom() []calendar.Rule {
	earlyMay := func(first, last *int) calendar.MonthWeekday {
		return calendar.MonthWeekday{Month: time.May, Weekday: time.Monday, Nth: calendar.First, First: first, Last: last}
	}
	spring := func(first, last *int) calendar.MonthWeekday {
		return calendar.MonthWeekday{Month: time.May, Weekday: time.Monday, Nth: calendar.Last, First: first, Last: last}
	}

	return []calendar.Rule{
		Saturday,
		Sunday,
		GBNewYear,
		GoodFriday,
		EasterMonday,
		// moved to VE day in 1995 and 2020
		earlyMay(nil, calendar.Year(1994)),
		earlyMay(calendar.Year(1996), calendar.Year(2019)),
		earlyMay(calendar.Year(2021), nil),
		singular(1995, time.May, 8),
		singular(2020, time.May, 8),
		// moved for the Golden, Diamond and Platinum Jubilees
		spring(nil, calendar.Year(2001)),
		spring(calendar.Year(2003), calendar.Year(2011)),
		spring(calendar.Year(2013), calendar.Year(2021)),
		spring(calendar.Year(2023), nil),
		singular(2002, time.June, 3),
		singular(2002, time.June, 4),
		singular(2012, time.June, 4),
		singular(2012, time.June, 5),
		singular(2022, time.June, 2),
		singular(2022, time.June, 3),
		GBSummer,
		GBChristmas,
		GBBoxingDay,
		singular(1999, time.December, 31),  // millennium
		singular(2011, time.April, 29),     // royal wedding
		singular(2022, time.September, 19), // state funeral
		singular(2023, time.May, 8),        // coronation
	}
}
