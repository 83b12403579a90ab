// Package temporal provides calendar-agnostic date and time arithmetic with
// nanosecond precision. It adds, diffs, rounds and totals durations across
// civil calendars and time zones, with exact rules for variable-length
// months and years and for offset transitions.
//
// The work happens in subpackages:
//
//   - [github.com/theory/temporal/nano]: exact epoch nanoseconds
//   - [github.com/theory/temporal/iso]: ISO 8601 calendar math
//   - [github.com/theory/temporal/calendar]: pluggable calendars
//   - [github.com/theory/temporal/duration]: duration field vectors
//   - [github.com/theory/temporal/round]: rounding modes
//   - [github.com/theory/temporal/tz]: time zone resolution
//   - [github.com/theory/temporal/relative]: anchored duration math
//
// This package adds instant-level helpers on top of them.
package temporal

import (
	"fmt"
	"time"

	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/round"
	"github.com/theory/temporal/tz"
)

// clock returns the current time; replaced in tests.
//
//nolint:gochecknoglobals
var clock = time.Now

// Now returns the current instant as epoch nanoseconds.
func Now() nano.Nano {
	return nano.New(clock().UnixNano())
}

// EpochSeconds returns n in whole seconds, rounded toward negative
// infinity.
func EpochSeconds(n nano.Nano) int64 { return n.DivFloor(nano.NanoInSecond).Int64() }

// EpochMilliseconds returns n in whole milliseconds, rounded toward
// negative infinity.
func EpochMilliseconds(n nano.Nano) int64 { return n.DivFloor(nano.NanoInMilli).Int64() }

// EpochMicroseconds returns n in whole microseconds, rounded toward
// negative infinity.
func EpochMicroseconds(n nano.Nano) int64 { return n.DivFloor(nano.NanoInMicro).Int64() }

// RoundEpochNano rounds the instant n to inc smallest units using mode.
// smallest may be at most [duration.Hour], and inc of them must evenly
// divide a 24-hour day.
func RoundEpochNano(n nano.Nano, smallest duration.Unit, inc int64, mode round.Mode) (nano.Nano, error) {
	if smallest > duration.Hour {
		return nano.Nano{}, fmt.Errorf("%w: cannot round an instant to %ss", errs.ErrRange, smallest)
	}
	if inc < 1 || inc > nano.NanoInDay/smallest.Nano() || nano.NanoInDay%(inc*smallest.Nano()) != 0 {
		return nano.Nano{}, fmt.Errorf("%w: rounding increment %d %ss must evenly divide a day", errs.ErrRange, inc, smallest)
	}
	return nano.Checked(round.Nano(n, inc*smallest.Nano(), mode))
}

// StartOfDay returns the first instant of the wall-clock day containing n
// in zone. That is midnight unless a transition skips it, in which case it
// is the first instant after the gap.
func StartOfDay(zone tz.Ops, n nano.Nano) (nano.Nano, error) {
	dt, err := tz.EpochNanoToDateTime(zone, n)
	if err != nil {
		return nano.Nano{}, err
	}
	return tz.SingleInstant(zone, iso.DateTime{Date: dt.Date}, tz.Compatible)
}

// HoursInDay returns the length in hours of the wall-clock day containing
// n in zone: 24 on most days, 23 or 25 across typical DST transitions.
func HoursInDay(zone tz.Ops, n nano.Nano) (float64, error) {
	start, err := StartOfDay(zone, n)
	if err != nil {
		return 0, err
	}
	dt, err := tz.EpochNanoToDateTime(zone, n)
	if err != nil {
		return 0, err
	}
	end, err := tz.SingleInstant(zone, iso.DateTime{Date: iso.AddDays(dt.Date, 1)}, tz.Compatible)
	if err != nil {
		return 0, err
	}
	return duration.Ratio(end.Sub(start), nano.New(nano.NanoInHour)), nil
}
