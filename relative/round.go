package relative

import (
	"fmt"
	"math"

	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/round"
)

// RoundOptions configure [Round].
type RoundOptions struct {
	// Largest is the largest unit of the result.
	Largest duration.Unit

	// Smallest is the unit to round to.
	Smallest duration.Unit

	// Increment is the multiple of Smallest to round to. Zero means one.
	Increment int64

	// Mode is the rounding mode.
	Mode round.Mode
}

// Round rounds f to a multiple of o.Increment o.Smallest units and
// balances it up to o.Largest. Durations no larger than days round as
// exact nanoseconds without a marker; otherwise f is laid out from m and
// rounded against the actual lengths of the months, years or days it
// spans, failing with [errs.ErrMissingRelativeTo] if m is nil.
//
// Weeks in f survive unchanged when o.Largest is at least a week and
// o.Smallest at most a week.
func Round(f duration.Fields, o RoundOptions, m Marker) (duration.Fields, error) {
	if o.Increment == 0 {
		o.Increment = 1
	}
	if o.Smallest > o.Largest {
		return duration.Fields{}, fmt.Errorf(
			"%w: smallest unit %v is larger than largest unit %v",
			errs.ErrRange, o.Smallest, o.Largest,
		)
	}
	if o.Increment < 1 || (o.Smallest <= duration.Day && o.Increment > math.MaxInt64/o.Smallest.Nano()) {
		return duration.Fields{}, fmt.Errorf("%w: rounding increment %d", errs.ErrRange, o.Increment)
	}

	largest := max(f.LargestUnit(), o.Largest)
	if uniform(largest, m) {
		return duration.BalanceDayTime(f, o.Largest, o.Smallest, o.Increment*o.Smallest.Nano(), o.Mode)
	}
	if m == nil {
		return duration.Fields{}, missing("round", largest)
	}

	var weeks int64
	if f.Weeks != 0 && o.Largest >= duration.Week && o.Smallest <= duration.Week {
		weeks, f.Weeks = f.Weeks, 0
	}

	bal, end, err := Span(m, o.Largest, f)
	if err != nil {
		return duration.Fields{}, err
	}
	res, err := roundSpan(m, bal, end.EpochNano(), o)
	if err != nil {
		return duration.Fields{}, err
	}
	res.Weeks += weeks
	if res, err = duration.NormalizeSign(res); err != nil {
		return duration.Fields{}, err
	}
	return res, duration.CheckBounds(res)
}

// roundSpan rounds bal, the balanced duration from m to dest.
func roundSpan(m Marker, bal duration.Fields, dest nano.Nano, o RoundOptions) (duration.Fields, error) {
	if o.Largest < duration.Day {
		n := round.Nano(dest.Sub(m.EpochNano()), o.Increment*o.Smallest.Nano(), o.Mode)
		return duration.FromDayTimeNano(n, o.Largest)
	}

	sign := bal.Sign()
	if sign == 0 {
		return bal, nil
	}

	var (
		n   nudged
		err error
	)
	switch {
	case o.Smallest.IsCalendar() || (o.Smallest == duration.Day && !m.UniformDays()):
		n, err = nudgeToCalendarUnit(m, sign, bal, dest, o.Smallest, o.Increment, o.Mode)
	case !m.UniformDays():
		n, err = nudgeToZonedTime(m, sign, bal, o.Smallest, o.Increment, o.Mode)
	default:
		n, err = nudgeToDayOrTime(bal, dest, o.Smallest, o.Increment, o.Mode)
	}
	if err != nil {
		return duration.Fields{}, err
	}

	if n.expanded && o.Smallest != duration.Week {
		return bubble(m, sign, n.result, n.epoch, o.Largest, max(o.Smallest, duration.Day))
	}
	return n.result, nil
}

// nudged is the result of rounding the smallest unit of a duration.
type nudged struct {
	result duration.Fields

	// epoch is the instant the rounded duration reaches from the marker.
	epoch nano.Nano

	// expanded is true when rounding spilled into the next larger unit.
	expanded bool

	// numer / denom is the unrounded total of the smallest calendar unit.
	numer nano.Nano
	denom nano.Nano
}

// nudgeToCalendarUnit rounds bal to a multiple of inc units, where unit is
// at least a day, by measuring how far dest lies between the truncated
// value and the next increment along the timeline.
func nudgeToCalendarUnit(
	m Marker,
	sign int,
	bal duration.Fields,
	dest nano.Nano,
	unit duration.Unit,
	inc int64,
	mode round.Mode,
) (nudged, error) {
	var (
		r1    int64
		start duration.Fields
	)
	switch unit {
	case duration.Year:
		r1 = round.Int(bal.Years, inc, round.Trunc)
		start = duration.Fields{Years: r1}
	case duration.Month:
		r1 = round.Int(bal.Months, inc, round.Trunc)
		start = duration.Fields{Years: bal.Years, Months: r1}
	case duration.Week:
		r1 = round.Int(bal.Weeks+bal.Days/7, inc, round.Trunc)
		start = duration.Fields{Years: bal.Years, Months: bal.Months, Weeks: r1}
	case duration.Day:
		r1 = round.Int(bal.Days, inc, round.Trunc)
		start = duration.Fields{Years: bal.Years, Months: bal.Months, Weeks: bal.Weeks, Days: r1}
	default:
		return nudged{}, fmt.Errorf("%w: cannot nudge to %ss", errs.ErrInvalid, unit)
	}
	r2 := r1 + inc*int64(sign)
	end := start.With(unit, r2)

	startM, err := m.Move(start)
	if err != nil {
		return nudged{}, err
	}
	endM, err := m.Move(end)
	if err != nil {
		return nudged{}, err
	}
	startNano, endNano := startM.EpochNano(), endM.EpochNano()

	progress := dest.Sub(startNano)
	width := endNano.Sub(startNano).Abs()
	if progress.Sign() == -sign || progress.Abs().Compare(width) > 0 {
		return nudged{}, fmt.Errorf("%w: %v lies outside the %v rounding window", errs.ErrInvalid, dest, unit)
	}

	// The total, in units, is (r1 * width + inc * progress) / width.
	numer := width.Mul(r1).Add(progress.Mul(inc))
	rounded := round.Quotient(numer, width.Mul(inc), mode).Mul(inc)

	n := nudged{numer: numer, denom: width}
	if rounded.Equal(nano.New(r2)) {
		n.result, n.epoch, n.expanded = end, endNano, true
	} else {
		n.result, n.epoch = start, startNano
	}
	return n, nil
}

// nudgeToZonedTime rounds the time portion of bal within the actual length
// of the zoned day it falls in, rolling into the next day when it rounds
// past the day's end.
func nudgeToZonedTime(
	m Marker,
	sign int,
	bal duration.Fields,
	unit duration.Unit,
	inc int64,
	mode round.Mode,
) (nudged, error) {
	date := bal.DateOnly()
	startM, err := m.Move(date)
	if err != nil {
		return nudged{}, err
	}
	endM, err := m.Move(date.With(duration.Day, date.Days+int64(sign)))
	if err != nil {
		return nudged{}, err
	}
	startNano, endNano := startM.EpochNano(), endM.EpochNano()
	daySpan := endNano.Sub(startNano)

	incNano := inc * unit.Nano()
	timeNano := round.Nano(duration.TimeNano(bal), incNano, mode)
	n := nudged{}
	if beyond := timeNano.Sub(daySpan); beyond.Sign() != -sign {
		n.expanded = true
		date.Days += int64(sign)
		timeNano = round.Nano(beyond, incNano, mode)
		n.epoch = endNano.Add(timeNano)
	} else {
		n.epoch = startNano.Add(timeNano)
	}

	if n.result, err = combine(date, timeNano); err != nil {
		return nudged{}, err
	}
	return n, nil
}

// nudgeToDayOrTime rounds the days and time of bal as exact 24-hour days,
// for plain markers.
func nudgeToDayOrTime(
	bal duration.Fields,
	dest nano.Nano,
	unit duration.Unit,
	inc int64,
	mode round.Mode,
) (nudged, error) {
	dayTime := duration.DayTimeNano(bal)
	rounded := round.Nano(dayTime, inc*unit.Nano(), mode)

	wholeDays, _ := dayTime.DivTrunc(nano.NanoInDay)
	roundedDays, _ := rounded.DivTrunc(nano.NanoInDay)
	if !roundedDays.IsInt64() {
		return nudged{}, fmt.Errorf("%w: %v days", errs.ErrOutOfRange, roundedDays)
	}

	date := bal.DateOnly()
	date.Days = roundedDays.Int64()
	res, err := combine(date, rounded.Sub(roundedDays.Mul(nano.NanoInDay)))
	if err != nil {
		return nudged{}, err
	}
	return nudged{
		result:   res,
		epoch:    dest.Add(rounded.Sub(dayTime)),
		expanded: roundedDays.Sub(wholeDays).Sign() == dayTime.Sign(),
	}, nil
}

// bubble carries a rounded duration that reached the end of its smallest
// unit up through each larger unit, up to largest, as long as the rounded
// instant reaches the end of that unit too.
func bubble(
	m Marker,
	sign int,
	f duration.Fields,
	epoch nano.Nano,
	largest, smallest duration.Unit,
) (duration.Fields, error) {
	for u := smallest + 1; u <= largest; u++ {
		var end duration.Fields
		switch u {
		case duration.Year:
			end = duration.Fields{Years: f.Years + int64(sign)}
		case duration.Month:
			end = duration.Fields{Years: f.Years, Months: f.Months + int64(sign)}
		case duration.Week:
			if largest != duration.Week {
				continue
			}
			end = duration.Fields{Years: f.Years, Months: f.Months, Weeks: f.Weeks + int64(sign)}
		default:
			continue
		}

		endM, err := m.Move(end)
		if err != nil {
			return duration.Fields{}, err
		}
		if epoch.Sub(endM.EpochNano()).Sign() == -sign {
			break
		}
		f = end
	}
	return f, nil
}
