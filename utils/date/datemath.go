package date

import "time"

// IsLeapYear reports whether February 29 exists in year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LastDayOfMonth returns the number of the last day of month in year.
// It steps back one day from the first day of the following month.
func LastDayOfMonth(year int, month time.Month) int {
	next := Date{Year: year, Month: month + 1, Day: 1}
	if month == time.December {
		next = Date{Year: year + 1, Month: time.January, Day: 1}
	}
	return next.Pred().Day
}
