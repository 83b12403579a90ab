package duration

import (
	"fmt"
	"strings"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/nano"
)

// Unit identifies one of the ten duration components, ordered from the
// smallest to the largest.
type Unit uint8

const (
	Nanosecond Unit = iota
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

//nolint:gochecknoglobals
var unitNames = [...]string{
	Nanosecond:  "nanosecond",
	Microsecond: "microsecond",
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

//nolint:gochecknoglobals
var unitNano = [...]int64{
	Nanosecond:  1,
	Microsecond: nano.NanoInMicro,
	Millisecond: nano.NanoInMilli,
	Second:      nano.NanoInSecond,
	Minute:      nano.NanoInMinute,
	Hour:        nano.NanoInHour,
	Day:         nano.NanoInDay,
	Week:        nano.NanoInDay * 7,
}

// String returns the singular name of the unit.
func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "UNKNOWN_UNIT"
}

// ParseUnit parses a singular or plural unit name, ignoring case.
func ParseUnit(s string) (Unit, error) {
	name := strings.TrimSuffix(strings.ToLower(s), "s")
	for i, n := range unitNames {
		if n == name {
			return Unit(i), nil
		}
	}
	return Nanosecond, fmt.Errorf("%w: invalid unit %q", errs.ErrRange, s)
}

// Nano returns the length of u in nanoseconds, treating days as 24 hours
// and weeks as seven such days. Returns 0 for months and years, which have
// no fixed length.
func (u Unit) Nano() int64 {
	if int(u) < len(unitNano) {
		return unitNano[u]
	}
	return 0
}

// IsCalendar returns true for weeks, months and years: units whose meaning
// depends on a calendar.
func (u Unit) IsCalendar() bool {
	return u >= Week
}

// Modulus returns the number of u in the next larger unit, used to validate
// rounding increments: 1000 for sub-second units, 60 for seconds and
// minutes, 24 for hours, and 0 (unbounded) for days and larger.
func (u Unit) Modulus() int64 {
	switch u {
	case Nanosecond, Microsecond, Millisecond:
		return 1000
	case Second, Minute:
		return 60
	case Hour:
		return 24
	default:
		return 0
	}
}
