package relative

import (
	"fmt"

	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/round"
)

// uniform returns true if durations no larger than largest can be handled
// as exact nanoseconds relative to m, which may be nil. Days count as 24
// hours unless m is zoned.
func uniform(largest duration.Unit, m Marker) bool {
	return largest < duration.Day || (largest == duration.Day && (m == nil || m.UniformDays()))
}

func missing(op string, largest duration.Unit) error {
	return fmt.Errorf("%w: %s with %ss", errs.ErrMissingRelativeTo, op, largest)
}

// Span moves m by each of durs in turn and returns the balanced duration
// from m to the result, in units no larger than largest, along with the
// end marker.
func Span(m Marker, largest duration.Unit, durs ...duration.Fields) (duration.Fields, Marker, error) {
	end := m
	for _, d := range durs {
		var err error
		if end, err = end.Move(d); err != nil {
			return duration.Fields{}, nil, err
		}
	}
	f, err := m.Diff(end, largest)
	if err != nil {
		return duration.Fields{}, nil, err
	}
	return f, end, nil
}

// Add returns the sum of a and b balanced up to the larger of their largest
// units. Sums of days and smaller need no marker; anything with calendar
// units, or days relative to a zoned marker, is computed by moving m by a
// then b. m may be nil, in which case such sums fail with
// [errs.ErrMissingRelativeTo].
func Add(a, b duration.Fields, m Marker) (duration.Fields, error) {
	largest := max(a.LargestUnit(), b.LargestUnit())
	if uniform(largest, m) {
		f, err := duration.AddDayTime(a, b, largest)
		if err != nil {
			return duration.Fields{}, err
		}
		return duration.NormalizeSign(f)
	}
	if m == nil {
		return duration.Fields{}, missing("add", largest)
	}
	f, _, err := Span(m, largest, a, b)
	if err != nil {
		return duration.Fields{}, err
	}
	return f, duration.CheckBounds(f)
}

// Subtract returns a minus b. See [Add].
func Subtract(a, b duration.Fields, m Marker) (duration.Fields, error) {
	return Add(a, duration.Negate(b), m)
}

// Compare compares the lengths of a and b, returning -1, 0 or 1. Identical
// durations compare equal without a marker. Otherwise the rules of [Add]
// decide whether m is required.
func Compare(a, b duration.Fields, m Marker) (int, error) {
	if a == b {
		return 0, nil
	}
	largest := max(a.LargestUnit(), b.LargestUnit())
	if uniform(largest, m) {
		return duration.CompareDayTime(a, b), nil
	}
	if m == nil {
		return 0, missing("compare", largest)
	}
	ea, err := m.Move(a)
	if err != nil {
		return 0, err
	}
	eb, err := m.Move(b)
	if err != nil {
		return 0, err
	}
	return ea.EpochNano().Compare(eb.EpochNano()), nil
}

// Total returns the length of f as a fractional count of unit. Calendar
// units, or days relative to a zoned marker, require m; without it Total
// fails with [errs.ErrMissingRelativeTo].
func Total(f duration.Fields, unit duration.Unit, m Marker) (float64, error) {
	largest := max(f.LargestUnit(), unit)
	if uniform(largest, m) {
		return duration.TotalDayTime(f, unit), nil
	}
	if m == nil {
		return 0, missing("total", largest)
	}

	bal, end, err := Span(m, unit, f)
	if err != nil {
		return 0, err
	}
	dest := end.EpochNano()
	if unit < duration.Day {
		return duration.Ratio(dest.Sub(m.EpochNano()), nano.New(unit.Nano())), nil
	}
	sign := bal.Sign()
	if sign == 0 {
		return 0, nil
	}
	n, err := nudgeToCalendarUnit(m, sign, bal, dest, unit, 1, round.Trunc)
	if err != nil {
		return 0, err
	}
	return duration.Ratio(n.numer, n.denom), nil
}
