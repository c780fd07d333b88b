package calendar

import (
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizcal/utils/date"
)

// ErrEasterYearOutOfRange is returned by Gregorian for years before the
// Gregorian reform.
var ErrEasterYearOutOfRange = errors.New("easter date is undefined for this year")

// EasterProvider returns the date of Easter Sunday in a given year.
type EasterProvider interface {
	EasterSunday(year int) (date.Date, error)
}

// EasterFunc adapts a plain function to EasterProvider.
type EasterFunc func(year int) (date.Date, error)

func (f EasterFunc) EasterSunday(year int) (date.Date, error) {
	return f(year)
}

// Gregorian computes Western Easter Sunday with the anonymous Gregorian
// (Meeus/Jones/Butcher) algorithm. It is valid from 1583 on.
var Gregorian EasterProvider = EasterFunc(gregorianEaster)

func gregorianEaster(year int) (date.Date, error) {
	if year < 1583 {
		return date.Date{}, errors.Wrapf(ErrEasterYearOutOfRange, "year %d", year)
	}

	// nolint:gomnd // computus constants
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return date.New(year, time.Month(month), day)
}
