// Package duration implements duration field vectors: sign normalization,
// balancing between day-time units, bounds checking, and the uniform-day
// arithmetic that needs no calendar.
//
// Years, months and weeks are never balanced here. Converting between those
// and days requires an anchor date; see package relative.
package duration

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/round"
)

// MaxCalendarUnit bounds the absolute value of years, months and weeks.
const MaxCalendarUnit = 1<<32 - 1

//nolint:gochecknoglobals
var maxDayTime = nano.Max.Sub(nano.Min)

// Fields holds the ten components of a duration. All non-zero components
// must share the same sign; use [NormalizeSign] after constructing or
// combining values.
type Fields struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// ptr returns a pointer to the component for u.
func (f *Fields) ptr(u Unit) *int64 {
	switch u {
	case Year:
		return &f.Years
	case Month:
		return &f.Months
	case Week:
		return &f.Weeks
	case Day:
		return &f.Days
	case Hour:
		return &f.Hours
	case Minute:
		return &f.Minutes
	case Second:
		return &f.Seconds
	case Millisecond:
		return &f.Milliseconds
	case Microsecond:
		return &f.Microseconds
	default:
		return &f.Nanoseconds
	}
}

// Get returns the component for u.
func (f Fields) Get(u Unit) int64 {
	return *f.ptr(u)
}

// With returns a copy of f with the component for u set to v.
func (f Fields) With(u Unit, v int64) Fields {
	*f.ptr(u) = v
	return f
}

func (f Fields) values() [10]int64 {
	return [10]int64{
		f.Nanoseconds, f.Microseconds, f.Milliseconds, f.Seconds, f.Minutes,
		f.Hours, f.Days, f.Weeks, f.Months, f.Years,
	}
}

// Sign returns the sign of the first non-zero component, or 0 if f is
// blank. Assumes f is normalized.
func (f Fields) Sign() int {
	for _, v := range f.values() {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
	}
	return 0
}

// IsBlank returns true if every component is zero.
func (f Fields) IsBlank() bool {
	return f == Fields{}
}

// LargestUnit returns the largest unit with a non-zero component, or
// Nanosecond if f is blank.
func (f Fields) LargestUnit() Unit {
	for u := Year; u > Nanosecond; u-- {
		if f.Get(u) != 0 {
			return u
		}
	}
	return Nanosecond
}

// HasDate returns true if any of years, months, weeks or days is non-zero.
func (f Fields) HasDate() bool {
	return f.Years != 0 || f.Months != 0 || f.Weeks != 0 || f.Days != 0
}

// DateOnly returns f with the time components cleared.
func (f Fields) DateOnly() Fields {
	return Fields{Years: f.Years, Months: f.Months, Weeks: f.Weeks, Days: f.Days}
}

// TimeOnly returns f with years, months, weeks and days cleared.
func (f Fields) TimeOnly() Fields {
	f.Years, f.Months, f.Weeks, f.Days = 0, 0, 0, 0
	return f
}

// NormalizeSign validates that the non-zero components of f share one
// sign, returning an [errs.ErrRange] error if they do not.
func NormalizeSign(f Fields) (Fields, error) {
	sign := 0
	for _, v := range f.values() {
		s := 0
		switch {
		case v > 0:
			s = 1
		case v < 0:
			s = -1
		default:
			continue
		}
		if sign != 0 && s != sign {
			return Fields{}, fmt.Errorf("%w: mixed-sign duration fields", errs.ErrRange)
		}
		sign = s
	}
	return f, nil
}

// Negate returns f with every component negated.
func Negate(f Fields) Fields {
	for u := Nanosecond; u <= Year; u++ {
		f = f.With(u, -f.Get(u))
	}
	return f
}

// Abs returns f with every component made non-negative.
func Abs(f Fields) Fields {
	if f.Sign() < 0 {
		return Negate(f)
	}
	return f
}

// TimeNano returns the hours through nanoseconds of f as exact nanoseconds.
func TimeNano(f Fields) nano.Nano {
	return DayTimeNano(f.TimeOnly())
}

// DayTimeNano returns the days through nanoseconds of f as exact
// nanoseconds, counting each day as 24 hours. Years, months and weeks are
// ignored.
func DayTimeNano(f Fields) nano.Nano {
	total := new(big.Int)
	for u := Nanosecond; u <= Day; u++ {
		if v := f.Get(u); v != 0 {
			total.Add(total, new(big.Int).Mul(big.NewInt(v), big.NewInt(u.Nano())))
		}
	}
	return nano.FromBig(total)
}

// FromDayTimeNano balances n nanoseconds into components no larger than
// largest, which is capped at Day. Every component takes the sign of n.
// Returns an [errs.ErrOutOfRange] error if the largest component does not
// fit in an int64.
func FromDayTimeNano(n nano.Nano, largest Unit) (Fields, error) {
	largest = min(largest, Day)
	var f Fields
	rem := n
	for u := largest; ; u-- {
		q, r := rem.DivTrunc(u.Nano())
		if !q.IsInt64() {
			return Fields{}, fmt.Errorf("%w: %v %ss", errs.ErrOutOfRange, q, u)
		}
		f = f.With(u, q.Int64())
		rem = nano.New(r)
		if u == Nanosecond {
			break
		}
	}
	return f, nil
}

// BalanceDayTime rounds the day-time portion of f to incNano with mode and
// rebalances it into components no larger than largest (capped at Day).
// smallest names the unit incNano was derived from; components below it
// come back zero. Years, months and weeks pass through unchanged.
func BalanceDayTime(f Fields, largest, smallest Unit, incNano int64, mode round.Mode) (Fields, error) {
	if smallest > Day {
		return Fields{}, fmt.Errorf("%w: cannot balance day-time fields to %ss", errs.ErrInvalid, smallest)
	}
	rounded := round.Nano(DayTimeNano(f), incNano, mode)
	bal, err := FromDayTimeNano(rounded, largest)
	if err != nil {
		return Fields{}, err
	}
	bal.Years, bal.Months, bal.Weeks = f.Years, f.Months, f.Weeks
	return NormalizeSign(bal)
}

// AddDayTime adds the day-time portions of a and b, treating days as 24
// hours, and balances the sum up to largest. Neither may have years,
// months or weeks.
func AddDayTime(a, b Fields, largest Unit) (Fields, error) {
	if a.Years|a.Months|a.Weeks|b.Years|b.Months|b.Weeks != 0 {
		return Fields{}, fmt.Errorf("%w: calendar units in day-time addition", errs.ErrInvalid)
	}
	sum := DayTimeNano(a).Add(DayTimeNano(b))
	if sum.Abs().Compare(maxDayTime) > 0 {
		return Fields{}, fmt.Errorf("%w: duration too large", errs.ErrOutOfRange)
	}
	return FromDayTimeNano(sum, largest)
}

// CompareDayTime compares the day-time lengths of a and b.
func CompareDayTime(a, b Fields) int {
	return DayTimeNano(a).Compare(DayTimeNano(b))
}

// TotalDayTime returns the day-time length of f expressed as a fractional
// count of unit, which must be Day or smaller.
func TotalDayTime(f Fields, unit Unit) float64 {
	return Ratio(DayTimeNano(f), nano.New(unit.Nano()))
}

// Ratio returns num / den as the nearest float64, computed exactly first.
func Ratio(num, den nano.Nano) float64 {
	r := new(big.Rat).SetFrac(num.Big(), den.Big())
	v, _ := r.Float64()
	return v
}

// CheckBounds returns an [errs.ErrRange] error if any component has no
// negation in int64, if years, months or weeks exceed [MaxCalendarUnit] in
// magnitude, or if the day-time portion is wider than the whole supported
// epoch window.
func CheckBounds(f Fields) error {
	for u := Nanosecond; u <= Year; u++ {
		if v := f.Get(u); v == math.MinInt64 {
			return fmt.Errorf("%w: %d %ss cannot be negated", errs.ErrRange, v, u)
		}
	}
	for _, u := range []Unit{Year, Month, Week} {
		if v := f.Get(u); v > MaxCalendarUnit || v < -MaxCalendarUnit {
			return fmt.Errorf("%w: %d %ss exceeds duration limits", errs.ErrRange, v, u)
		}
	}
	if DayTimeNano(f).Abs().Compare(maxDayTime) > 0 {
		return fmt.Errorf("%w: day-time duration exceeds limits", errs.ErrRange)
	}
	return nil
}

// String returns the ISO 8601 representation of f, for example
// "P1Y2M3DT4H5M6.007S". Blank durations format as "PT0S".
func (f Fields) String() string {
	if f.IsBlank() {
		return "PT0S"
	}
	sign := f.Sign()
	f = Abs(f)

	var b strings.Builder
	if sign < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	for _, part := range []struct {
		v int64
		d byte
	}{{f.Years, 'Y'}, {f.Months, 'M'}, {f.Weeks, 'W'}, {f.Days, 'D'}} {
		if part.v != 0 {
			fmt.Fprintf(&b, "%d%c", part.v, part.d)
		}
	}

	secs := DayTimeNano(Fields{
		Seconds:      f.Seconds,
		Milliseconds: f.Milliseconds,
		Microseconds: f.Microseconds,
		Nanoseconds:  f.Nanoseconds,
	})
	if f.Hours == 0 && f.Minutes == 0 && secs.Sign() == 0 {
		return b.String()
	}
	b.WriteByte('T')
	if f.Hours != 0 {
		fmt.Fprintf(&b, "%dH", f.Hours)
	}
	if f.Minutes != 0 {
		fmt.Fprintf(&b, "%dM", f.Minutes)
	}
	if secs.Sign() != 0 {
		whole, frac := secs.DivModFloor(nano.NanoInSecond)
		b.WriteString(whole.String())
		if frac != 0 {
			b.WriteString(strings.TrimRight(fmt.Sprintf(".%09d", frac), "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}
