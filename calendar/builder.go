// Package calendar implements settlement calendars for business day
// calculations.
//
// A calendar is computed once from a list of holiday rules for a range of
// years. All holidays of the range are materialized up front, so queries
// afterwards are simple lookups and a Calendar can be shared freely
// between goroutines.
package calendar

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizcal/utils/date"
	"github.com/alpacahq/bizcal/utils/log"
)

var (
	ErrInvalidRange    = errors.New("start year must not be after end year")
	ErrInvalidRule     = errors.New("invalid holiday rule")
	ErrInvalidRuleDate = errors.New("holiday rule produces an invalid date")
	ErrEasterProvider  = errors.New("easter provider failed")
)

// Option configures Build.
type Option func(*builder)

// WithEasterProvider replaces the default Gregorian Easter computation.
func WithEasterProvider(p EasterProvider) Option {
	return func(b *builder) {
		b.easter = p
	}
}

// builder is the mutable accumulator used while evaluating the rules.
type builder struct {
	start, end int
	easter     EasterProvider
	holidays   map[date.Date]struct{}
	weekend    []time.Weekday
}

// Build evaluates rules for all years from start to end (inclusively) and
// returns the resulting calendar.
//
// Rules are evaluated in the given order. This matters for
// MovableYearlyDay: a moved holiday skips over every date that is already
// a holiday at the time it is evaluated, so swapping two rules may swap
// which of them is moved.
//
// Any rule that would produce an invalid date (e.g. February 29 in a
// non-leap year) fails the whole build.
func Build(rules []Rule, start, end int, opts ...Option) (*Calendar, error) {
	if start > end {
		return nil, errors.Wrapf(ErrInvalidRange, "start=%d, end=%d", start, end)
	}

	b := &builder{
		start:    start,
		end:      end,
		easter:   Gregorian,
		holidays: map[date.Date]struct{}{},
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, rule := range rules {
		if err := b.apply(rule); err != nil {
			return nil, err
		}
	}

	cal := b.freeze()
	log.Debug("built calendar for %d-%d: %d rules, %d holidays, weekend %v",
		start, end, len(rules), len(cal.holidays), cal.weekend)
	return cal, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(rules []Rule, start, end int, opts ...Option) *Calendar {
	cal, err := Build(rules, start, end, opts...)
	if err != nil {
		panic(err)
	}
	return cal
}

func (b *builder) apply(rule Rule) error {
	switch r := rule.(type) {
	case WeekDay:
		if !validWeekday(r.Weekday) {
			return errors.Wrapf(ErrInvalidRule, "%v", r)
		}
		b.weekend = append(b.weekend, r.Weekday)
	case SingularDay:
		if r.Date.Year >= b.start && r.Date.Year <= b.end {
			if !r.Date.IsValid() {
				return errors.Wrapf(ErrInvalidRuleDate, "%v", r)
			}
			b.insert(r.Date)
		}
	case YearlyDay:
		if !validMonth(r.Month) {
			return errors.Wrapf(ErrInvalidRule, "%v", r)
		}
		first, last := yearRange(b.start, b.end, r.First, r.Last)
		for year := first; year <= last; year++ {
			d, err := ruleDate(r, year, r.Month, r.Day)
			if err != nil {
				return err
			}
			b.insert(d)
		}
	case MovableYearlyDay:
		if !validMonth(r.Month) {
			return errors.Wrapf(ErrInvalidRule, "%v", r)
		}
		first, last := yearRange(b.start, b.end, r.First, r.Last)
		for year := first; year <= last; year++ {
			d, err := ruleDate(r, year, r.Month, r.Day)
			if err != nil {
				return err
			}
			b.insert(b.move(d))
		}
	case EasterOffset:
		for year := b.start; year <= b.end; year++ {
			easter, err := b.easter.EasterSunday(year)
			if err != nil {
				return errors.Wrapf(ErrEasterProvider, "year %d: %v", year, err)
			}
			b.insert(easter.AddDays(r.Offset))
		}
	case MonthWeekday:
		if !validMonth(r.Month) || !validWeekday(r.Weekday) || r.Nth < First || r.Nth > Last {
			return errors.Wrapf(ErrInvalidRule, "%v", r)
		}
		first, last := yearRange(b.start, b.end, r.First, r.Last)
		for year := first; year <= last; year++ {
			d, err := ruleDate(r, year, r.Month, r.Nth.anchor(year, r.Month))
			if err != nil {
				return err
			}
			for d.Weekday() != r.Weekday {
				if r.Nth == Last {
					d = d.Pred()
				} else {
					d = d.Succ()
				}
			}
			b.insert(d)
		}
	default:
		return errors.Wrapf(ErrInvalidRule, "unsupported rule type %T", rule)
	}
	return nil
}

// move shifts d off Saturday/Sunday and then forward past any day that
// already is a holiday.
func (b *builder) move(d date.Date) date.Date {
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDays(2)
	case time.Sunday:
		d = d.Succ()
	}
	for b.has(d) {
		d = d.Succ()
	}
	return d
}

func (b *builder) has(d date.Date) bool {
	_, ok := b.holidays[d]
	return ok
}

func (b *builder) insert(d date.Date) {
	b.holidays[d] = struct{}{}
}

func (b *builder) freeze() *Calendar {
	holidays := make([]date.Date, 0, len(b.holidays))
	for d := range b.holidays {
		holidays = append(holidays, d)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Before(holidays[j])
	})

	weekend := make([]time.Weekday, len(b.weekend))
	copy(weekend, b.weekend)

	return &Calendar{
		holidays: holidays,
		weekend:  weekend,
		start:    b.start,
		end:      b.end,
	}
}

func ruleDate(rule Rule, year int, month time.Month, day int) (date.Date, error) {
	d, err := date.New(year, month, day)
	if err != nil {
		return date.Date{}, errors.Wrapf(ErrInvalidRuleDate, "%v in %d: %v", rule, year, err)
	}
	return d, nil
}
