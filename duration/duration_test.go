package duration

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/round"
)

func TestUnits(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	for u := Nanosecond; u <= Year; u++ {
		parsed, err := ParseUnit(u.String())
		r.NoError(err)
		a.Equal(u, parsed)
		parsed, err = ParseUnit(u.String() + "s")
		r.NoError(err)
		a.Equal(u, parsed)
	}
	u, err := ParseUnit("Hours")
	r.NoError(err)
	a.Equal(Hour, u)

	_, err = ParseUnit("fortnight")
	r.ErrorIs(err, errs.ErrRange)
	r.EqualError(err, `range: invalid unit "fortnight"`)
	a.Equal("UNKNOWN_UNIT", Unit(99).String())

	a.Equal(nano.NanoInDay, Day.Nano())
	a.Equal(7*nano.NanoInDay, Week.Nano())
	a.Equal(int64(0), Month.Nano())
	a.Equal(int64(0), Year.Nano())
	a.True(Week.IsCalendar())
	a.False(Day.IsCalendar())
	a.Equal(int64(60), Minute.Modulus())
	a.Equal(int64(24), Hour.Modulus())
	a.Equal(int64(1000), Microsecond.Modulus())
	a.Equal(int64(0), Day.Modulus())
}

func TestSign(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		f     Fields
		sign  int
		err   bool
		large Unit
	}{
		{"blank", Fields{}, 0, false, Nanosecond},
		{"years", Fields{Years: 1}, 1, false, Year},
		{"neg_mixed_units", Fields{Months: -1, Nanoseconds: -5}, -1, false, Month},
		{"hours", Fields{Hours: 3, Seconds: 1}, 1, false, Hour},
		{"mixed", Fields{Days: 1, Hours: -1}, 0, true, Day},
		{"mixed_far", Fields{Years: -1, Nanoseconds: 1}, 0, true, Year},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			a.Equal(tc.large, tc.f.LargestUnit())
			got, err := NormalizeSign(tc.f)
			if tc.err {
				require.ErrorIs(t, err, errs.ErrRange)
				require.EqualError(t, err, "range: mixed-sign duration fields")
				return
			}
			require.NoError(t, err)
			a.Equal(tc.f, got)
			a.Equal(tc.sign, got.Sign())
			a.Equal(tc.sign == 0, got.IsBlank())
		})
	}
}

func TestNegateAbs(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	f := Fields{Years: 1, Days: 2, Nanoseconds: 3}
	neg := Negate(f)
	a.Equal(Fields{Years: -1, Days: -2, Nanoseconds: -3}, neg)
	a.Equal(f, Abs(neg))
	a.Equal(f, Abs(f))
	a.Equal(f, Negate(neg))
	a.Equal(Fields{}, Negate(Fields{}))
}

func TestGetWith(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	var f Fields
	for u := Nanosecond; u <= Year; u++ {
		f = f.With(u, int64(u)+1)
	}
	a.Equal(Fields{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, f)
	for u := Nanosecond; u <= Year; u++ {
		a.Equal(int64(u)+1, f.Get(u))
	}
	a.True(f.HasDate())
	a.Equal(Fields{Years: 10, Months: 9, Weeks: 8, Days: 7}, f.DateOnly())
	a.Equal(Fields{Hours: 6, Minutes: 5, Seconds: 4, Milliseconds: 3, Microseconds: 2, Nanoseconds: 1}, f.TimeOnly())
	a.False(f.TimeOnly().HasDate())
}

func TestDayTimeNano(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	f := Fields{Years: 5, Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Milliseconds: 1, Microseconds: 1, Nanoseconds: 1}
	a.Equal("90061001001001", DayTimeNano(f).String())
	a.Equal("3661001001001", TimeNano(f).String())
}

func TestFromDayTimeNano(t *testing.T) {
	t.Parallel()

	n := nano.New(90061001001001)
	for _, tc := range []struct {
		largest Unit
		exp     Fields
	}{
		{Year, Fields{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Milliseconds: 1, Microseconds: 1, Nanoseconds: 1}},
		{Day, Fields{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Milliseconds: 1, Microseconds: 1, Nanoseconds: 1}},
		{Hour, Fields{Hours: 25, Minutes: 1, Seconds: 1, Milliseconds: 1, Microseconds: 1, Nanoseconds: 1}},
		{Second, Fields{Seconds: 90061, Milliseconds: 1, Microseconds: 1, Nanoseconds: 1}},
		{Nanosecond, Fields{Nanoseconds: 90061001001001}},
	} {
		t.Run(tc.largest.String(), func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			got, err := FromDayTimeNano(n, tc.largest)
			require.NoError(t, err)
			a.Equal(tc.exp, got)
			neg, err := FromDayTimeNano(n.Neg(), tc.largest)
			require.NoError(t, err)
			a.Equal(Negate(tc.exp), neg)
		})
	}

	_, err := FromDayTimeNano(nano.Max, Nanosecond)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
	require.EqualError(t, err, "range: out of range: 8640000000000000000000 nanoseconds")
}

func TestBalanceDayTime(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name     string
		f        Fields
		largest  Unit
		smallest Unit
		inc      int64
		mode     round.Mode
		exp      Fields
	}{
		{
			name:     "minutes_to_hours",
			f:        Fields{Minutes: 130},
			largest:  Hour,
			smallest: Nanosecond,
			inc:      1,
			mode:     round.Trunc,
			exp:      Fields{Hours: 2, Minutes: 10},
		},
		{
			name:     "round_to_quarter_hour",
			f:        Fields{Hours: 1, Minutes: 22, Seconds: 30},
			largest:  Hour,
			smallest: Minute,
			inc:      15 * nano.NanoInMinute,
			mode:     round.HalfExpand,
			exp:      Fields{Hours: 1, Minutes: 30},
		},
		{
			name:     "days_carry",
			f:        Fields{Hours: 47, Minutes: 59},
			largest:  Day,
			smallest: Hour,
			inc:      nano.NanoInHour,
			mode:     round.Ceil,
			exp:      Fields{Days: 2},
		},
		{
			name:     "keeps_calendar_units",
			f:        Fields{Years: 1, Weeks: 2, Hours: 36},
			largest:  Day,
			smallest: Day,
			inc:      nano.NanoInDay,
			mode:     round.HalfEven,
			exp:      Fields{Years: 1, Weeks: 2, Days: 2},
		},
		{
			name:     "negative_floor",
			f:        Fields{Seconds: -90},
			largest:  Minute,
			smallest: Minute,
			inc:      nano.NanoInMinute,
			mode:     round.Floor,
			exp:      Fields{Minutes: -2},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := BalanceDayTime(tc.f, tc.largest, tc.smallest, tc.inc, tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, got)
		})
	}

	_, err := BalanceDayTime(Fields{}, Year, Month, 1, round.Trunc)
	require.ErrorIs(t, err, errs.ErrInvalid)
}

func TestAddDayTime(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	got, err := AddDayTime(Fields{Hours: 20}, Fields{Hours: 5}, Day)
	r.NoError(err)
	a.Equal(Fields{Days: 1, Hours: 1}, got)

	got, err = AddDayTime(Fields{Hours: 20}, Fields{Days: -1}, Hour)
	r.NoError(err)
	a.Equal(Fields{Hours: -4}, got)

	_, err = AddDayTime(Fields{Months: 1}, Fields{}, Day)
	r.ErrorIs(err, errs.ErrInvalid)

	_, err = AddDayTime(Fields{Days: 2 * nano.MaxDays}, Fields{Days: 1}, Day)
	r.ErrorIs(err, errs.ErrOutOfRange)
}

func TestTotalAndCompare(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	a.InDelta(1.5, TotalDayTime(Fields{Hours: 36}, Day), 0)
	a.InDelta(90.0, TotalDayTime(Fields{Hours: 1, Minutes: 30}, Minute), 0)
	a.InDelta(-0.25, TotalDayTime(Fields{Minutes: -15}, Hour), 0)
	a.Equal(1, CompareDayTime(Fields{Days: 1}, Fields{Hours: 23}))
	a.Equal(0, CompareDayTime(Fields{Days: 1}, Fields{Hours: 24}))
	a.Equal(-1, CompareDayTime(Fields{Minutes: -1}, Fields{}))
}

func TestCheckBounds(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	r.NoError(CheckBounds(Fields{Years: MaxCalendarUnit, Days: 2 * nano.MaxDays}))
	r.NoError(CheckBounds(Fields{Weeks: -MaxCalendarUnit}))

	err := CheckBounds(Fields{Months: MaxCalendarUnit + 1})
	r.ErrorIs(err, errs.ErrRange)
	r.EqualError(err, "range: 4294967296 months exceeds duration limits")

	err = CheckBounds(Fields{Days: 2*nano.MaxDays + 1})
	r.ErrorIs(err, errs.ErrRange)
	r.EqualError(err, "range: day-time duration exceeds limits")

	for u := Nanosecond; u <= Year; u++ {
		err = CheckBounds(Fields{}.With(u, math.MinInt64))
		r.ErrorIs(err, errs.ErrRange, u.String())
		r.ErrorContains(err, "cannot be negated", u.String())
	}
	r.NoError(CheckBounds(Fields{Nanoseconds: -math.MaxInt64}))
}

func TestString(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		f   Fields
		exp string
	}{
		{Fields{}, "PT0S"},
		{Fields{Years: 1, Months: 2, Days: 3}, "P1Y2M3D"},
		{Fields{Weeks: 2}, "P2W"},
		{Fields{Hours: 4, Minutes: 5, Seconds: 6, Milliseconds: 7}, "PT4H5M6.007S"},
		{Fields{Days: -1, Hours: -12}, "-P1DT12H"},
		{Fields{Nanoseconds: 1}, "PT0.000000001S"},
		{Fields{Milliseconds: 1500}, "PT1.5S"},
		{Fields{Minutes: 1}, "PT1M"},
	} {
		assert.Equal(t, tc.exp, tc.f.String())
	}
}

func genFields(sign int64) gopter.Gen {
	return gen.SliceOfN(10, gen.Int64Range(0, 1_000_000)).Map(func(v []int64) Fields {
		var f Fields
		for i, x := range v {
			f = f.With(Unit(i), sign*x)
		}
		return f
	})
}

func TestProperties(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("negate is an involution", prop.ForAll(
		func(f Fields) bool { return Negate(Negate(f)) == f },
		genFields(-1),
	))

	properties.Property("abs is non-negative", prop.ForAll(
		func(f Fields) bool { return Abs(f).Sign() >= 0 && Abs(Negate(f)) == f },
		genFields(1),
	))

	properties.Property("bounded fields have a non-negative abs", prop.ForAll(
		func(f Fields, u int, extreme bool) bool {
			if extreme {
				f = f.With(Unit(u), math.MinInt64)
			}
			if CheckBounds(f) != nil {
				return extreme
			}
			abs := Abs(f)
			for unit := Nanosecond; unit <= Year; unit++ {
				if abs.Get(unit) < 0 {
					return false
				}
			}
			return true
		},
		genFields(-1), gen.IntRange(0, int(Year)), gen.Bool(),
	))

	properties.Property("normalized fields have one sign", prop.ForAll(
		func(f Fields) bool {
			got, err := NormalizeSign(f)
			if err != nil {
				return false
			}
			s := got.Sign()
			for u := Nanosecond; u <= Year; u++ {
				if v := got.Get(u); v != 0 && (v > 0) != (s > 0) {
					return false
				}
			}
			return true
		},
		genFields(-1),
	))

	properties.Property("balancing preserves day-time length", prop.ForAll(
		func(f Fields, lu int) bool {
			f = f.TimeOnly()
			got, err := FromDayTimeNano(DayTimeNano(f), Unit(lu))
			return err == nil && CompareDayTime(got, f) == 0
		},
		genFields(1), gen.IntRange(0, int(Year)),
	))

	properties.TestingRun(t)
}
