// Package calendar implements the calendar systems: conversion of calendar
// fields to and from ISO dates, month and year arithmetic in each calendar's
// own units, and the derived-field getters.
//
// Every calendar satisfies [Ops]. ISO 8601 is the interchange
// representation: operations accept and return [iso.Date] values, and
// calendar-specific fields exist only in [Fields] and the getters.
//
// Calendars without closed-form rules in this package draw their data from
// a [Provider], which maps an ISO date to the calendar's fields the way a
// locale calendar database would. Providers for the arithmetic calendars
// (buddhist, roc, coptic, ethiopic, ethioaa, indian, islamic-civil,
// islamic-tbla, persian, hebrew) are built in; others, such as chinese, can
// be supplied with [Register].
package calendar

import (
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/iso"
)

// Calendar identifiers.
const (
	ISO8601      = "iso8601"
	Gregory      = "gregory"
	Japanese     = "japanese"
	Buddhist     = "buddhist"
	ROC          = "roc"
	Coptic       = "coptic"
	Ethiopic     = "ethiopic"
	EthiopicAA   = "ethioaa"
	Indian       = "indian"
	IslamicCivil = "islamic-civil"
	IslamicTbla  = "islamic-tbla"
	Persian      = "persian"
	Hebrew       = "hebrew"
	Chinese      = "chinese"
	Dangi        = "dangi"
)

// Fields holds calendar fields as supplied by a caller. Nil pointers and
// empty strings are absent fields.
type Fields struct {
	Era       string
	EraYear   *int
	Year      *int
	Month     *int
	MonthCode string
	Day       *int
}

// Int returns a pointer to v, for populating [Fields].
func Int(v int) *int {
	return &v
}

// Ops is the capability set of a calendar.
type Ops interface {
	// ID returns the canonical calendar identifier.
	ID() string

	// DateFromFields converts year (or era and eraYear), month (or
	// monthCode) and day into an ISO date.
	DateFromFields(f Fields, overflow iso.Overflow) (iso.Date, error)

	// YearMonthFromFields returns the ISO date of the first day of the
	// calendar month identified by f.
	YearMonthFromFields(f Fields, overflow iso.Overflow) (iso.Date, error)

	// MonthDayFromFields returns an ISO date in a reference year that
	// hosts the month code and day identified by f.
	MonthDayFromFields(f Fields, overflow iso.Overflow) (iso.Date, error)

	// DateAdd adds the years, months, weeks and days of dur to d. Smaller
	// units are ignored.
	DateAdd(d iso.Date, dur duration.Fields, overflow iso.Overflow) (iso.Date, error)

	// DateUntil returns the difference from d0 to d1 in units no larger
	// than largest, such that DateAdd(d0, result, iso.Constrain) == d1.
	DateUntil(d0, d1 iso.Date, largest duration.Unit) (duration.Fields, error)

	// Fields returns names plus any additional field names the calendar
	// requires alongside them.
	Fields(names []string) []string

	// MergeFields overlays override onto base, dropping base fields made
	// stale by those in override.
	MergeFields(base, override Fields) Fields

	Era(d iso.Date) (string, bool)
	EraYear(d iso.Date) (int, bool)
	Year(d iso.Date) int
	Month(d iso.Date) int
	MonthCode(d iso.Date) string
	Day(d iso.Date) int
	DayOfWeek(d iso.Date) int
	DayOfYear(d iso.Date) int
	WeekOfYear(d iso.Date) (int, bool)
	YearOfWeek(d iso.Date) (int, bool)
	DaysInWeek(d iso.Date) int
	DaysInMonth(d iso.Date) int
	DaysInYear(d iso.Date) int
	MonthsInYear(d iso.Date) int
	InLeapYear(d iso.Date) bool
}

// Calendar implements [Ops] on top of a date system. Values are immutable
// and safe for concurrent use.
type Calendar struct {
	id  string
	sys system

	// eras is nil for calendars without eras.
	eras *eraTable

	// leapMeta encodes intercalary months. Zero: none. Negative: the leap
	// month always sits at ordinal -leapMeta. Positive: the largest month
	// code number that may be followed by a leap month.
	leapMeta int

	// dateClearsEra is set for calendars whose eras start mid-year, so
	// that a new month or day invalidates a merged era.
	dateClearsEra bool
}

var _ Ops = (*Calendar)(nil)

// ID returns the canonical calendar identifier.
func (c *Calendar) ID() string { return c.id }

// String returns the calendar identifier.
func (c *Calendar) String() string { return c.id }

// Era returns the era of d, or false if the calendar has no eras.
func (c *Calendar) Era(d iso.Date) (string, bool) {
	name, _, ok := c.era(d)
	return name, ok
}

// EraYear returns the year of d within its era, or false if the calendar
// has no eras.
func (c *Calendar) EraYear(d iso.Date) (int, bool) {
	_, year, ok := c.era(d)
	return year, ok
}

func (c *Calendar) era(d iso.Date) (string, int, bool) {
	if es, ok := c.sys.(eraSystem); ok {
		return es.era(d)
	}
	if c.eras == nil {
		return "", 0, false
	}
	year, _, _ := c.sys.parts(d)
	name, eraYear := c.eras.forYear(year)
	return name, eraYear, true
}

// Year returns the calendar year of d.
func (c *Calendar) Year(d iso.Date) int {
	year, _, _ := c.sys.parts(d)
	return year
}

// Month returns the ordinal calendar month of d.
func (c *Calendar) Month(d iso.Date) int {
	_, month, _ := c.sys.parts(d)
	return month
}

// MonthCode returns the month code of d, such as "M05" or "M05L".
func (c *Calendar) MonthCode(d iso.Date) string {
	year, month, _ := c.sys.parts(d)
	return formatMonthCode(c.monthCodeParts(year, month))
}

// Day returns the calendar day of month of d.
func (c *Calendar) Day(d iso.Date) int {
	_, _, day := c.sys.parts(d)
	return day
}

// DayOfWeek returns the ISO day of the week, Monday = 1.
func (c *Calendar) DayOfWeek(d iso.Date) int {
	return iso.DayOfWeek(d)
}

// DayOfYear returns the 1-based ordinal day of d in its calendar year.
func (c *Calendar) DayOfYear(d iso.Date) int {
	year, _, _ := c.sys.parts(d)
	return int(iso.DiffDays(c.sys.toISO(year, 1, 1), d)) + 1
}

// WeekOfYear returns the ISO 8601 week number of d. Only the ISO calendar
// numbers weeks.
func (c *Calendar) WeekOfYear(d iso.Date) (int, bool) {
	if c.id != ISO8601 {
		return 0, false
	}
	week, _ := iso.WeekOfYear(d)
	return week, true
}

// YearOfWeek returns the ISO 8601 week-numbering year of d. Only the ISO
// calendar numbers weeks.
func (c *Calendar) YearOfWeek(d iso.Date) (int, bool) {
	if c.id != ISO8601 {
		return 0, false
	}
	_, year := iso.WeekOfYear(d)
	return year, true
}

// DaysInWeek returns 7.
func (c *Calendar) DaysInWeek(iso.Date) int {
	return iso.DaysInWeek
}

// DaysInMonth returns the length of d's calendar month.
func (c *Calendar) DaysInMonth(d iso.Date) int {
	year, month, _ := c.sys.parts(d)
	return c.sys.daysInMonth(year, month)
}

// DaysInYear returns the length of d's calendar year.
func (c *Calendar) DaysInYear(d iso.Date) int {
	year, _, _ := c.sys.parts(d)
	return c.sys.daysInYear(year)
}

// MonthsInYear returns the number of months in d's calendar year.
func (c *Calendar) MonthsInYear(d iso.Date) int {
	year, _, _ := c.sys.parts(d)
	return c.sys.monthsInYear(year)
}

// InLeapYear returns true if d's calendar year is a leap year.
func (c *Calendar) InLeapYear(d iso.Date) bool {
	year, _, _ := c.sys.parts(d)
	return c.sys.inLeapYear(year)
}

// yearBounds returns the calendar years of the first and last supported
// dates.
func (c *Calendar) yearBounds() (int, int) {
	lo, _, _ := c.sys.parts(iso.DateFromEpochDays(minEpochDays))
	hi, _, _ := c.sys.parts(iso.DateFromEpochDays(maxEpochDays))
	return lo, hi
}
