package calendar

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizcal/utils/date"
)

// ErrNoBusinessDays is returned by the traversal methods when no business
// day can be reached, i.e. all seven days of the week are weekend days.
var ErrNoBusinessDays = errors.New("calendar has no business days")

// Calendar holds the holidays and weekend days computed by Build.
// It is immutable and safe for concurrent use.
type Calendar struct {
	holidays []date.Date // ascending, unique
	weekend  []time.Weekday
	start    int
	end      int
}

// Range returns the first and last year the calendar was computed for.
// Holidays outside of this range are not known to the calendar.
func (c *Calendar) Range() (start, end int) {
	return c.start, c.end
}

// Weekend returns the weekdays treated as weekend days.
func (c *Calendar) Weekend() []time.Weekday {
	w := make([]time.Weekday, len(c.weekend))
	copy(w, c.weekend)
	return w
}

// Holidays returns all holidays of the calendar in ascending order.
func (c *Calendar) Holidays() []date.Date {
	h := make([]date.Date, len(c.holidays))
	copy(h, c.holidays)
	return h
}

// HolidaysBetween returns the holidays from from to to (both inclusive).
func (c *Calendar) HolidaysBetween(from, to date.Date) []date.Date {
	i := c.search(from)
	j := c.search(to.Succ())
	if i >= j {
		return nil
	}
	h := make([]date.Date, j-i)
	copy(h, c.holidays[i:j])
	return h
}

// IsWeekend returns true if d falls on a weekend day.
func (c *Calendar) IsWeekend(d date.Date) bool {
	w := d.Weekday()
	for _, wd := range c.weekend {
		if w == wd {
			return true
		}
	}
	return false
}

// IsHoliday returns true if d is a holiday.
func (c *Calendar) IsHoliday(d date.Date) bool {
	i := c.search(d)
	return i < len(c.holidays) && c.holidays[i] == d
}

// IsBusinessDay returns true if d is neither a weekend day nor a holiday.
func (c *Calendar) IsBusinessDay(d date.Date) bool {
	return !c.IsWeekend(d) && !c.IsHoliday(d)
}

// NextBusinessDay returns the first business day after d.
func (c *Calendar) NextBusinessDay(d date.Date) (date.Date, error) {
	return c.step(d, 1)
}

// PrevBusinessDay returns the last business day before d.
func (c *Calendar) PrevBusinessDay(d date.Date) (date.Date, error) {
	return c.step(d, -1)
}

// AddBusinessDays returns the date n business days after d, or before d
// if n is negative. d itself is returned for n == 0.
func (c *Calendar) AddBusinessDays(d date.Date, n int) (date.Date, error) {
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	var err error
	for ; n > 0; n-- {
		if d, err = c.step(d, dir); err != nil {
			return date.Date{}, err
		}
	}
	return d, nil
}

// CountBusinessDays returns the number of business days after from up to
// and including to. The result is negative if to is before from.
func (c *Calendar) CountBusinessDays(from, to date.Date) int {
	sign := 1
	if to.Before(from) {
		sign = -1
		from, to = to, from
	}
	n := 0
	for d := from.Succ(); !d.After(to); d = d.Succ() {
		if c.IsBusinessDay(d) {
			n++
		}
	}
	return sign * n
}

// step walks from d in direction dir (+1/-1) to the nearest business day.
//
// Every seven consecutive days contain at least one day that is not a
// weekend day, so a run of non-business days can never be longer than
// 7*(holidays+1) days unless the whole week is weekend.
func (c *Calendar) step(d date.Date, dir int) (date.Date, error) {
	if c.allWeekend() {
		return date.Date{}, errors.Wrapf(ErrNoBusinessDays, "weekend %v", c.weekend)
	}
	limit := 7 * (len(c.holidays) + 1)
	for i := 0; i < limit; i++ {
		d = d.AddDays(dir)
		if c.IsBusinessDay(d) {
			return d, nil
		}
	}
	return date.Date{}, errors.Wrapf(ErrNoBusinessDays, "gave up after %d days from %v", limit, d)
}

func (c *Calendar) allWeekend() bool {
	var seen [7]bool
	n := 0
	for _, w := range c.weekend {
		if !seen[w] {
			seen[w] = true
			n++
		}
	}
	return n == len(seen)
}

// search returns the index of the first holiday not before d.
func (c *Calendar) search(d date.Date) int {
	return sort.Search(len(c.holidays), func(i int) bool {
		return !c.holidays[i].Before(d)
	})
}
