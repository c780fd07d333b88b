package calendar_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizcal/calendar"
	"github.com/alpacahq/bizcal/utils/date"
)

func d(year int, month time.Month, day int) date.Date {
	return date.MustNew(year, month, day)
}

func TestBuild_FixedDates(t *testing.T) {
	t.Parallel()

	rules := []calendar.Rule{
		calendar.SingularDay{Date: d(2019, 11, 20)},
		calendar.SingularDay{Date: d(2019, 11, 24)},
		calendar.SingularDay{Date: d(2019, 11, 25)},
		calendar.WeekDay{Weekday: time.Saturday},
		calendar.WeekDay{Weekday: time.Sunday},
	}
	cal, err := calendar.Build(rules, 2019, 2019)
	require.NoError(t, err)

	assert.False(t, cal.IsBusinessDay(d(2019, 11, 20)))
	assert.True(t, cal.IsBusinessDay(d(2019, 11, 21)))
	assert.True(t, cal.IsBusinessDay(d(2019, 11, 22)))
	// weekend
	assert.False(t, cal.IsBusinessDay(d(2019, 11, 23)))
	assert.True(t, cal.IsWeekend(d(2019, 11, 23)))
	assert.False(t, cal.IsHoliday(d(2019, 11, 23)))
	// weekend and holiday
	assert.False(t, cal.IsBusinessDay(d(2019, 11, 24)))
	assert.True(t, cal.IsWeekend(d(2019, 11, 24)))
	assert.True(t, cal.IsHoliday(d(2019, 11, 24)))
	assert.False(t, cal.IsBusinessDay(d(2019, 11, 25)))
	assert.True(t, cal.IsBusinessDay(d(2019, 11, 26)))

	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cal.Weekend())
}

func TestBuild_SingularDayOutOfRange(t *testing.T) {
	t.Parallel()

	rules := []calendar.Rule{
		calendar.SingularDay{Date: d(2017, 5, 2)},
		calendar.SingularDay{Date: d(2018, 5, 2)},
		calendar.SingularDay{Date: d(2021, 5, 2)},
	}
	cal, err := calendar.Build(rules, 2018, 2020)
	require.NoError(t, err)

	assert.Equal(t, []date.Date{d(2018, 5, 2)}, cal.Holidays())
}

func TestBuild_YearlyDay(t *testing.T) {
	t.Parallel()

	rules := []calendar.Rule{
		calendar.YearlyDay{Month: 11, Day: 1},
		calendar.YearlyDay{Month: 11, Day: 2, First: calendar.Year(2019)},
		calendar.YearlyDay{Month: 11, Day: 3, Last: calendar.Year(2019)},
		calendar.YearlyDay{Month: 11, Day: 4, First: calendar.Year(2019), Last: calendar.Year(2019)},
	}
	cal, err := calendar.Build(rules, 2018, 2020)
	require.NoError(t, err)

	tests := []struct {
		date date.Date
		want bool
	}{
		{d(2018, 11, 1), true},
		{d(2019, 11, 1), true},
		{d(2020, 11, 1), true},

		{d(2018, 11, 2), false},
		{d(2019, 11, 2), true},
		{d(2020, 11, 2), true},

		{d(2018, 11, 3), true},
		{d(2019, 11, 3), true},
		{d(2020, 11, 3), false},

		{d(2018, 11, 4), false},
		{d(2019, 11, 4), true},
		{d(2020, 11, 4), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cal.IsHoliday(tt.date), tt.date.String())
	}
}

func TestBuild_MovableYearlyDay(t *testing.T) {
	t.Parallel()

	rules := []calendar.Rule{
		calendar.MovableYearlyDay{Month: 11, Day: 1},
		calendar.MovableYearlyDay{Month: 11, Day: 2},

		calendar.MovableYearlyDay{Month: 11, Day: 10, Last: calendar.Year(2019)},
		calendar.MovableYearlyDay{Month: 11, Day: 17, First: calendar.Year(2019)},
		calendar.MovableYearlyDay{Month: 11, Day: 24, First: calendar.Year(2019), Last: calendar.Year(2019)},
	}
	cal, err := calendar.Build(rules, 2018, 2020)
	require.NoError(t, err)

	tests := []struct {
		date date.Date
		want bool
	}{
		// 2018-11-01 is a Thursday, nothing moves
		{d(2018, 11, 1), true},
		{d(2018, 11, 2), true},
		// 2019-11-02 is a Saturday
		{d(2019, 11, 1), true},
		{d(2019, 11, 4), true},
		// 2020-11-01 is a Sunday, the Monday is taken by the first rule
		{d(2020, 11, 2), true},
		{d(2020, 11, 3), true},

		{d(2018, 11, 12), true},
		{d(2019, 11, 11), true},
		{d(2020, 11, 10), false},
		{d(2018, 11, 19), false},
		{d(2019, 11, 18), true},
		{d(2020, 11, 17), true},
		{d(2018, 11, 26), false},
		{d(2019, 11, 25), true},
		{d(2020, 11, 24), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cal.IsHoliday(tt.date), tt.date.String())
	}
}

func TestBuild_MovableYearlyDayIgnoresConfiguredWeekend(t *testing.T) {
	t.Parallel()

	// Friday/Saturday weekend, but the move still uses Saturday/Sunday.
	rules := []calendar.Rule{
		calendar.WeekDay{Weekday: time.Friday},
		calendar.WeekDay{Weekday: time.Saturday},
		calendar.MovableYearlyDay{Month: 11, Day: 1},
	}
	cal, err := calendar.Build(rules, 2020, 2020)
	require.NoError(t, err)

	assert.Equal(t, []date.Date{d(2020, 11, 2)}, cal.Holidays())
}

func TestBuild_RuleOrderMatters(t *testing.T) {
	t.Parallel()

	movable := calendar.MovableYearlyDay{Month: 11, Day: 1}
	fixed := calendar.YearlyDay{Month: 11, Day: 2}

	// The movable holiday is evaluated first and lands on Monday 2020-11-02,
	// which the fixed holiday then shares.
	cal, err := calendar.Build([]calendar.Rule{movable, fixed}, 2020, 2020)
	require.NoError(t, err)
	assert.Equal(t, []date.Date{d(2020, 11, 2)}, cal.Holidays())

	// The fixed holiday is already there, so the movable one skips to Tuesday.
	cal, err = calendar.Build([]calendar.Rule{fixed, movable}, 2020, 2020)
	require.NoError(t, err)
	assert.Equal(t, []date.Date{d(2020, 11, 2), d(2020, 11, 3)}, cal.Holidays())
}

func TestBuild_EasterOffset(t *testing.T) {
	t.Parallel()

	// Good Friday
	cal, err := calendar.Build([]calendar.Rule{calendar.EasterOffset{Offset: -2}}, 2019, 2020)
	require.NoError(t, err)

	assert.False(t, cal.IsBusinessDay(d(2019, 4, 19)))
	assert.False(t, cal.IsBusinessDay(d(2020, 4, 10)))
	assert.Equal(t, []date.Date{d(2019, 4, 19), d(2020, 4, 10)}, cal.Holidays())
}

func TestBuild_EasterOffsetDeduplicates(t *testing.T) {
	t.Parallel()

	// Easter Monday 2019 is April 22nd.
	rules := []calendar.Rule{
		calendar.EasterOffset{Offset: 1},
		calendar.SingularDay{Date: d(2019, 4, 22)},
	}
	cal, err := calendar.Build(rules, 2019, 2019)
	require.NoError(t, err)

	assert.Equal(t, []date.Date{d(2019, 4, 22)}, cal.Holidays())
}

func TestBuild_MonthWeekday(t *testing.T) {
	t.Parallel()

	rules := []calendar.Rule{
		calendar.MonthWeekday{Month: 11, Weekday: time.Monday, Nth: calendar.First},
		calendar.MonthWeekday{Month: 11, Weekday: time.Tuesday, Nth: calendar.Second},
		calendar.MonthWeekday{Month: 11, Weekday: time.Wednesday, Nth: calendar.Third},
		calendar.MonthWeekday{Month: 11, Weekday: time.Thursday, Nth: calendar.Fourth},
		calendar.MonthWeekday{Month: 11, Weekday: time.Friday, Nth: calendar.Last},

		calendar.MonthWeekday{Month: 11, Weekday: time.Saturday, Nth: calendar.First, Last: calendar.Year(2018)},
		calendar.MonthWeekday{Month: 11, Weekday: time.Sunday, Nth: calendar.Last, First: calendar.Year(2020)},
	}
	cal, err := calendar.Build(rules, 2018, 2020)
	require.NoError(t, err)

	tests := []struct {
		date date.Date
		want bool
	}{
		{d(2019, 11, 4), true},
		{d(2019, 11, 12), true},
		{d(2019, 11, 20), true},
		{d(2019, 11, 28), true},
		{d(2019, 11, 29), true},

		{d(2018, 11, 3), true},
		{d(2019, 11, 2), false},
		{d(2020, 11, 7), false},
		{d(2018, 11, 25), false},
		{d(2019, 11, 24), false},
		{d(2020, 11, 29), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cal.IsHoliday(tt.date), tt.date.String())
	}
}

func TestBuild_MonthWeekdayLastInFebruary(t *testing.T) {
	t.Parallel()

	rule := calendar.MonthWeekday{Month: time.February, Weekday: time.Saturday, Nth: calendar.Last}
	cal, err := calendar.Build([]calendar.Rule{rule}, 2020, 2021)
	require.NoError(t, err)

	// 2020-02-29 is a Saturday in a leap year.
	assert.Equal(t, []date.Date{d(2020, 2, 29), d(2021, 2, 27)}, cal.Holidays())
}

func TestBuild_EmptyBoundedRange(t *testing.T) {
	t.Parallel()

	rules := []calendar.Rule{
		calendar.YearlyDay{Month: 1, Day: 1, First: calendar.Year(2030)},
		calendar.MovableYearlyDay{Month: 1, Day: 1, Last: calendar.Year(2000)},
	}
	cal, err := calendar.Build(rules, 2018, 2020)
	require.NoError(t, err)

	assert.Empty(t, cal.Holidays())
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	failingEaster := calendar.EasterFunc(func(year int) (date.Date, error) {
		return date.Date{}, errors.New("no easter today")
	})

	tests := []struct {
		name       string
		rules      []calendar.Rule
		start, end int
		opts       []calendar.Option
		wantErr    error
	}{
		{
			name:    "start after end",
			start:   2020,
			end:     2019,
			wantErr: calendar.ErrInvalidRange,
		},
		{
			name:    "Feb 29 in a non-leap year",
			rules:   []calendar.Rule{calendar.YearlyDay{Month: 2, Day: 29}},
			start:   2019,
			end:     2020,
			wantErr: calendar.ErrInvalidRuleDate,
		},
		{
			name:    "Feb 30",
			rules:   []calendar.Rule{calendar.MovableYearlyDay{Month: 2, Day: 30}},
			start:   2020,
			end:     2020,
			wantErr: calendar.ErrInvalidRuleDate,
		},
		{
			name:    "31st of a 30-day month",
			rules:   []calendar.Rule{calendar.YearlyDay{Month: 11, Day: 31}},
			start:   2020,
			end:     2020,
			wantErr: calendar.ErrInvalidRuleDate,
		},
		{
			name:    "invalid singular day in range",
			rules:   []calendar.Rule{calendar.SingularDay{Date: date.Date{Year: 2020, Month: 2, Day: 30}}},
			start:   2020,
			end:     2020,
			wantErr: calendar.ErrInvalidRuleDate,
		},
		{
			name:    "month out of range",
			rules:   []calendar.Rule{calendar.MonthWeekday{Month: 13, Weekday: time.Monday}},
			start:   2020,
			end:     2020,
			wantErr: calendar.ErrInvalidRule,
		},
		{
			name:    "weekday out of range",
			rules:   []calendar.Rule{calendar.WeekDay{Weekday: 7}},
			start:   2020,
			end:     2020,
			wantErr: calendar.ErrInvalidRule,
		},
		{
			name:    "nil rule",
			rules:   []calendar.Rule{nil},
			start:   2020,
			end:     2020,
			wantErr: calendar.ErrInvalidRule,
		},
		{
			name:    "easter provider failure",
			rules:   []calendar.Rule{calendar.EasterOffset{Offset: -2}},
			start:   2020,
			end:     2020,
			opts:    []calendar.Option{calendar.WithEasterProvider(failingEaster)},
			wantErr: calendar.ErrEasterProvider,
		},
		{
			name:    "easter before the Gregorian reform",
			rules:   []calendar.Rule{calendar.EasterOffset{Offset: 0}},
			start:   1500,
			end:     1600,
			wantErr: calendar.ErrEasterProvider,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cal, err := calendar.Build(tt.rules, tt.start, tt.end, tt.opts...)
			assert.Nil(t, cal)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMustBuild(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		calendar.MustBuild(nil, 2021, 2020)
	})
	assert.NotPanics(t, func() {
		calendar.MustBuild(nil, 2020, 2020)
	})
}

func TestGregorian(t *testing.T) {
	t.Parallel()

	easterSundays := []date.Date{
		d(1961, 4, 2),
		d(2000, 4, 23),
		d(2008, 3, 23),
		d(2011, 4, 24),
		d(2019, 4, 21),
		d(2020, 4, 12),
		d(2024, 3, 31),
		d(2025, 4, 20),
		d(2038, 4, 25),
	}
	for _, want := range easterSundays {
		got, err := calendar.Gregorian.EasterSunday(want.Year)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, time.Sunday, got.Weekday())
	}

	_, err := calendar.Gregorian.EasterSunday(1582)
	assert.ErrorIs(t, err, calendar.ErrEasterYearOutOfRange)
}

func TestRuleString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "YearlyDay(November 1)", calendar.YearlyDay{Month: 11, Day: 1}.String())
	assert.Equal(t, "MovableYearlyDay(December 25, 2019..)",
		calendar.MovableYearlyDay{Month: 12, Day: 25, First: calendar.Year(2019)}.String())
	assert.Equal(t, "MonthWeekday(last Monday of May, ..2021)",
		calendar.MonthWeekday{Month: 5, Weekday: time.Monday, Nth: calendar.Last, Last: calendar.Year(2021)}.String())
	assert.Equal(t, "EasterOffset(-2)", calendar.EasterOffset{Offset: -2}.String())
}
