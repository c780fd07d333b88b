// Package date provides the calendar date used by the business day
// calendars. It is a thin layer over civil.Date that adds validated
// construction, weekday computation and day stepping.
package date

import (
	"database/sql/driver"
	"time"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// ErrInvalidDate is returned when a year/month/day triple does not name
// a real day of the Gregorian calendar (e.g. Feb 30).
var ErrInvalidDate = errors.New("invalid calendar date")

const layout = "2006-01-02"

type Date civil.Date

// New returns the date year-month-day, or ErrInvalidDate.
func New(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return Date{}, errors.Wrapf(ErrInvalidDate, "%04d-%02d-%02d", year, int(month), day)
	}
	return d, nil
}

// MustNew is like New but panics on an invalid date. Intended for
// package-level tables and tests.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func DateOf(t time.Time) Date {
	return Date(civil.DateOf(t))
}

func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, errors.Wrapf(ErrInvalidDate, "parse %q", s)
	}
	return Date(d), nil
}

func (d Date) c() civil.Date {
	return civil.Date(d)
}

func (d Date) AddDays(n int) Date {
	return Date(d.c().AddDays(n))
}

// Succ returns the following day.
func (d Date) Succ() Date {
	return d.AddDays(1)
}

// Pred returns the preceding day.
func (d Date) Pred() Date {
	return d.AddDays(-1)
}

// Weekday reports the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

func (d Date) After(d2 Date) bool {
	return d.c().After(d2.c())
}

func (d Date) Before(d2 Date) bool {
	return d.c().Before(d2.c())
}

func (d Date) Equal(d2 Date) bool {
	return d == d2
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal
// to or after d2.
func (d Date) Compare(d2 Date) int {
	switch {
	case d.Before(d2):
		return -1
	case d.After(d2):
		return 1
	default:
		return 0
	}
}

func (d Date) DaysSince(s Date) int {
	return d.c().DaysSince(s.c())
}

func (d Date) In(loc *time.Location) time.Time {
	return d.c().In(loc)
}

func (d Date) IsValid() bool {
	return d.c().IsValid()
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) MarshalText() ([]byte, error) {
	return d.c().MarshalText()
}

func (d Date) String() string {
	return d.c().String()
}

func (d *Date) UnmarshalText(data []byte) error {
	return (*civil.Date)(d).UnmarshalText(data)
}

func (d Date) Date() (year int, month time.Month, day int) {
	return d.Year, d.Month, d.Day
}

func (d Date) Format(layout string) string {
	return d.In(time.UTC).Format(layout)
}

// NullDate is a Date that may be absent. It implements sql.Scanner and
// driver.Valuer so it can be stored in a nullable TEXT column.
type NullDate struct {
	Date  Date
	Valid bool
}

func MakeNullDate(d *Date) NullDate {
	if d != nil {
		return NullDate{
			Date:  *d,
			Valid: true,
		}
	}

	return NullDate{}
}

// Ptr returns nil for an absent date.
func (n NullDate) Ptr() *Date {
	if !n.Valid {
		return nil
	}
	d := n.Date
	return &d
}

func (n *NullDate) Scan(value interface{}) error {
	if value == nil {
		*n = NullDate{}
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*n = NullDate{Date: DateOf(v), Valid: true}
		return nil
	default:
		return errors.Errorf("cannot scan %T into date.NullDate", value)
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return errors.Wrapf(ErrInvalidDate, "scan %q", s)
	}
	*n = NullDate{Date: DateOf(t), Valid: true}
	return nil
}

func (n NullDate) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Date.String(), nil
}
