package calendar

import (
	"github.com/theory/temporal/iso"
)

// Parts are the calendar fields of a single ISO date, as a [Provider]
// reports them.
type Parts struct {
	Era          string
	EraYear      int
	Year         int
	Month        int
	MonthCode    string
	Day          int
	DaysInMonth  int
	MonthsInYear int
	InLeapYear   bool
}

// Provider supplies the fields of a calendar for any ISO date. Years must
// not decrease as dates advance. Leap months carry an "L" month code
// suffix.
type Provider interface {
	Parts(d iso.Date) Parts
}

// Inverter is implemented by providers that can convert a valid calendar
// date back to ISO without searching.
type Inverter interface {
	ToISO(year, month, day int) iso.Date
}

// arithmetic is a Provider over closed-form calendar rules expressed in
// days since the epoch.
type arithmetic struct {
	fromDays     func(days int64) (year, month, day int)
	toDays       func(year, month, day int) int64
	monthsInYear func(year int) int
	daysInMonth  func(year, month int) int
	inLeapYear   func(year int) bool
	// leapMonth may be nil for calendars without leap months.
	leapMonth func(year int) int
	eras      *eraTable
}

func (a *arithmetic) Parts(d iso.Date) Parts {
	year, month, day := a.fromDays(iso.EpochDays(d))
	p := Parts{
		Year:         year,
		Month:        month,
		Day:          day,
		DaysInMonth:  a.daysInMonth(year, month),
		MonthsInYear: a.monthsInYear(year),
		InLeapYear:   a.inLeapYear(year),
	}
	switch lm := a.LeapMonth(year); {
	case lm == 0 || month < lm:
		p.MonthCode = formatMonthCode(month, false)
	case month == lm:
		p.MonthCode = formatMonthCode(month-1, true)
	default:
		p.MonthCode = formatMonthCode(month-1, false)
	}
	if a.eras != nil {
		p.Era, p.EraYear = a.eras.forYear(year)
	}
	return p
}

func (a *arithmetic) ToISO(year, month, day int) iso.Date {
	return iso.DateFromEpochDays(a.toDays(year, month, day))
}

func (a *arithmetic) MonthsInYear(year int) int       { return a.monthsInYear(year) }
func (a *arithmetic) DaysInMonth(year, month int) int { return a.daysInMonth(year, month) }

func (a *arithmetic) LeapMonth(year int) int {
	if a.leapMonth == nil {
		return 0
	}
	return a.leapMonth(year)
}

// Julian day number of 1970-01-01.
const jdEpoch = 2440588

// offsetISO returns a Provider for a calendar that is the ISO calendar
// with years shifted by offset.
func offsetISO(offset int, eras *eraTable) *arithmetic {
	return &arithmetic{
		fromDays: func(days int64) (int, int, int) {
			d := iso.DateFromEpochDays(days)
			return d.Year + offset, d.Month, d.Day
		},
		toDays: func(year, month, day int) int64 {
			return iso.EpochDays(iso.Date{Year: year - offset, Month: month, Day: day})
		},
		monthsInYear: func(int) int { return iso.MonthsInYear },
		daysInMonth:  func(year, month int) int { return iso.DaysInMonth(year-offset, month) },
		inLeapYear:   func(year int) bool { return iso.IsLeapYear(year - offset) },
		eras:         eras,
	}
}
