// Package defs contains settlement calendars of a few markets, expressed
// as holiday rules for calendar.Build.
package defs

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/utils/date"
)

// ErrUnknownCalendar is returned by Lookup for names not in the registry.
var ErrUnknownCalendar = errors.New("unknown calendar")

// Common rules
var (
	Saturday     = calendar.WeekDay{Weekday: time.Saturday}
	Sunday       = calendar.WeekDay{Weekday: time.Sunday}
	NewYear      = calendar.YearlyDay{Month: time.January, Day: 1}
	GoodFriday   = calendar.EasterOffset{Offset: -2}
	EasterMonday = calendar.EasterOffset{Offset: 1}
	LabourDay    = calendar.YearlyDay{Month: time.May, Day: 1}
	ChristmasEve = calendar.YearlyDay{Month: time.December, Day: 24}
	Christmas    = calendar.YearlyDay{Month: time.December, Day: 25}
	Christmas2   = calendar.YearlyDay{Month: time.December, Day: 26}
	NewYearsEve  = calendar.YearlyDay{Month: time.December, Day: 31}
)

var calendars = map[string]func() []calendar.Rule{
	"target":  TARGET,
	"uk":      UnitedKingdom,
	"germany": Germany,
}

// Lookup returns the rules of the calendar registered under name.
// Names are case-insensitive.
func Lookup(name string) ([]calendar.Rule, error) {
	fn, ok := calendars[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCalendar, "%q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// Names returns the registered calendar names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(calendars))
	for name := range calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func singular(year int, month time.Month, day int) calendar.SingularDay {
	return calendar.SingularDay{Date: date.MustNew(year, month, day)}
}
