// Package iso provides pure ISO 8601 (proleptic Gregorian) calendar math:
// leap years, month lengths, conversion between civil fields and exact epoch
// nanoseconds, day-of-week, day-of-year and ISO week numbering.
//
// The ISO calendar is the interchange representation for every other
// calendar in this module: each calendar maps its own fields to and from
// [Date] values.
package iso

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/theory/temporal/errs"
)

// Calendar constants.
const (
	// MonthsInYear is the number of months in every ISO year.
	MonthsInYear = 12

	// DaysInWeek is the number of days in an ISO week.
	DaysInWeek = 7

	// EpochOriginYear is the year of the Unix epoch.
	EpochOriginYear = 1970

	// EpochFirstLeapYear is the first leap year after the epoch, used as
	// the reference year for month-day values so that February 29 is
	// always representable.
	EpochFirstLeapYear = 1972

	// MinYear and MaxYear bound the years reachable within the supported
	// epoch window.
	MinYear = -271821
	MaxYear = 275760
)

// Overflow determines how out-of-range fields are handled.
type Overflow uint8

const (
	// Constrain clamps out-of-range fields to the nearest valid value.
	Constrain Overflow = iota

	// Reject raises an error for out-of-range fields.
	Reject
)

// String returns the option name of the overflow policy.
func (o Overflow) String() string {
	switch o {
	case Constrain:
		return "constrain"
	case Reject:
		return "reject"
	default:
		return "UNKNOWN_OVERFLOW"
	}
}

// ParseOverflow parses "constrain" or "reject".
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(s) {
	case "constrain", "":
		return Constrain, nil
	case "reject":
		return Reject, nil
	default:
		return Constrain, fmt.Errorf("%w: invalid overflow %q", errs.ErrRange, s)
	}
}

// Date represents an ISO calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Time represents a wall-clock time of day.
type Time struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Microsecond int
	Nanosecond  int
}

// DateTime combines a Date and a Time.
type DateTime struct {
	Date
	Time
}

// NewDateTime combines d and t.
func NewDateTime(d Date, t Time) DateTime {
	return DateTime{Date: d, Time: t}
}

// IsLeapYear returns true if year is a Gregorian leap year: divisible by
// 4, but not by 100 unless also by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// ConstrainField checks that value lies within [lo, hi]. With Constrain it
// returns the clamped value; with Reject it returns an [errs.ErrRange]
// error naming the field.
func ConstrainField(name string, value, lo, hi int, overflow Overflow) (int, error) {
	if value >= lo && value <= hi {
		return value, nil
	}
	if overflow == Reject {
		return 0, fmt.Errorf("%w: %s %d out of range %d-%d", errs.ErrRange, name, value, lo, hi)
	}
	return max(lo, min(value, hi)), nil
}

// ConstrainDate validates d's month and day against the Gregorian calendar.
func ConstrainDate(d Date, overflow Overflow) (Date, error) {
	month, err := ConstrainField("month", d.Month, 1, MonthsInYear, overflow)
	if err != nil {
		return Date{}, err
	}
	day, err := ConstrainField("day", d.Day, 1, DaysInMonth(d.Year, month), overflow)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: d.Year, Month: month, Day: day}, nil
}

// ConstrainTime validates t's fields.
func ConstrainTime(t Time, overflow Overflow) (Time, error) {
	var err error
	for _, f := range []struct {
		name string
		val  *int
		hi   int
	}{
		{"hour", &t.Hour, 23},
		{"minute", &t.Minute, 59},
		{"second", &t.Second, 59},
		{"millisecond", &t.Millisecond, 999},
		{"microsecond", &t.Microsecond, 999},
		{"nanosecond", &t.Nanosecond, 999},
	} {
		if *f.val, err = ConstrainField(f.name, *f.val, 0, f.hi, overflow); err != nil {
			return Time{}, err
		}
	}
	return t, nil
}

// CompareDates returns -1, 0, or 1 as a is before, equal to, or after b.
func CompareDates(a, b Date) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	return cmp.Compare(a.Day, b.Day)
}

// CompareTimes returns -1, 0, or 1 as a is before, equal to, or after b.
func CompareTimes(a, b Time) int {
	return cmp.Compare(TimeToNano(a), TimeToNano(b))
}

// CompareDateTimes returns -1, 0, or 1 as a is before, equal to, or after b.
func CompareDateTimes(a, b DateTime) int {
	if c := CompareDates(a.Date, b.Date); c != 0 {
		return c
	}
	return CompareTimes(a.Time, b.Time)
}

// DayOfWeek returns the ISO day of the week, Monday = 1 through Sunday = 7.
func DayOfWeek(d Date) int {
	// 1970-01-01 was a Thursday.
	return int(floorMod(EpochDays(d)+3, DaysInWeek)) + 1
}

// DayOfYear returns the 1-based ordinal day of d in its year.
func DayOfYear(d Date) int {
	return int(EpochDays(d)-EpochDays(Date{Year: d.Year, Month: 1, Day: 1})) + 1
}

// WeekOfYear returns the ISO 8601 week number of d and the week-numbering
// year it belongs to. Week 1 is the week containing the year's first
// Thursday, so days at either end of a calendar year may belong to the
// neighboring week-numbering year.
func WeekOfYear(d Date) (int, int) {
	year := d.Year
	week := (DayOfYear(d) - DayOfWeek(d) + 10) / DaysInWeek
	switch {
	case week < 1:
		year--
		week = WeeksInYear(year)
	case week > WeeksInYear(year):
		year++
		week = 1
	}
	return week, year
}

// WeeksInYear returns 53 for ISO week-numbering years that start on a
// Thursday, or leap years that start on a Wednesday, and 52 otherwise.
func WeeksInYear(year int) int {
	switch DayOfWeek(Date{Year: year, Month: 1, Day: 1}) {
	case 4:
		return 53
	case 3:
		if IsLeapYear(year) {
			return 53
		}
	}
	return 52
}

// String returns the ISO 8601 representation of d, using a signed six
// digit year outside 0000-9999.
func (d Date) String() string {
	return fmt.Sprintf("%s-%02d-%02d", formatYear(d.Year), d.Month, d.Day)
}

// String returns HH:MM:SS with a fraction trimmed of trailing zeros.
func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if frac := t.Millisecond*1_000_000 + t.Microsecond*1_000 + t.Nanosecond; frac != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%09d", frac), "0")
	}
	return s
}

// String returns the ISO 8601 representation of dt.
func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}

func formatYear(year int) string {
	if year >= 0 && year <= 9999 {
		return fmt.Sprintf("%04d", year)
	}
	if year < 0 {
		return fmt.Sprintf("-%06d", -year)
	}
	return fmt.Sprintf("+%06d", year)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
