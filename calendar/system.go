package calendar

import (
	"sort"
	"strings"

	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
)

// The supported range of dates, in days since the epoch.
const (
	minEpochDays = -nano.MaxDays - 1
	maxEpochDays = nano.MaxDays
)

// system is the date arithmetic behind a [Calendar]. Years, months and
// days are calendar values; months are ordinal, counting any leap month.
type system interface {
	parts(d iso.Date) (year, month, day int)
	// toISO requires a valid calendar date.
	toISO(year, month, day int) iso.Date
	monthsInYear(year int) int
	daysInMonth(year, month int) int
	daysInYear(year int) int
	inLeapYear(year int) bool
	// leapMonth returns the ordinal of the year's leap month, or 0.
	leapMonth(year int) int
}

// eraSystem is implemented by systems that know the era of a date
// directly rather than from the calendar year alone.
type eraSystem interface {
	era(d iso.Date) (name string, eraYear int, ok bool)
}

// isoSystem is the proleptic Gregorian calendar.
type isoSystem struct{}

func (isoSystem) parts(d iso.Date) (int, int, int) { return d.Year, d.Month, d.Day }

func (isoSystem) toISO(year, month, day int) iso.Date {
	return iso.Date{Year: year, Month: month, Day: day}
}

func (isoSystem) monthsInYear(int) int            { return iso.MonthsInYear }
func (isoSystem) daysInMonth(year, month int) int { return iso.DaysInMonth(year, month) }
func (isoSystem) daysInYear(year int) int         { return iso.DaysInYear(year) }
func (isoSystem) inLeapYear(year int) bool        { return iso.IsLeapYear(year) }
func (isoSystem) leapMonth(int) int               { return 0 }

// japaneseSystem is ISO arithmetic with eras that begin on specific
// dates.
type japaneseSystem struct {
	isoSystem
}

func (japaneseSystem) era(d iso.Date) (string, int, bool) {
	for _, e := range japaneseEras.eras {
		if e.start != (iso.Date{}) && iso.CompareDates(d, e.start) >= 0 {
			return e.name, d.Year - e.origin, true
		}
	}
	name, year := gregoryEras.forYear(d.Year)
	return name, year, true
}

// providerSystem derives calendar arithmetic from a [Provider]. Providers
// that also implement [Inverter] convert fields to ISO directly; others are
// searched.
type providerSystem struct {
	p    Provider
	inv  Inverter
	info yearInfo
}

// yearInfo is implemented by the built-in providers to answer year and
// month questions without walking dates.
type yearInfo interface {
	MonthsInYear(year int) int
	DaysInMonth(year, month int) int
	LeapMonth(year int) int
}

func newProviderSystem(p Provider) *providerSystem {
	inv, _ := p.(Inverter)
	info, _ := p.(yearInfo)
	return &providerSystem{p: p, inv: inv, info: info}
}

func (s *providerSystem) partsAt(days int64) Parts {
	return s.p.Parts(iso.DateFromEpochDays(days))
}

func (s *providerSystem) parts(d iso.Date) (int, int, int) {
	p := s.p.Parts(d)
	return p.Year, p.Month, p.Day
}

func (s *providerSystem) era(d iso.Date) (string, int, bool) {
	p := s.p.Parts(d)
	return p.Era, p.EraYear, p.Era != ""
}

// yearStart returns the epoch day of the first day of year.
func (s *providerSystem) yearStart(year int) int64 {
	if s.inv != nil {
		return iso.EpochDays(s.inv.ToISO(year, 1, 1))
	}
	// Search a margin beyond the supported range so that the first year
	// still finds its start.
	const margin = 2000
	lo := int64(minEpochDays - margin)
	n := int(maxEpochDays - minEpochDays + 2*margin)
	i := sort.Search(n, func(i int) bool {
		return s.partsAt(lo+int64(i)).Year >= year
	})
	return lo + int64(i)
}

// monthStart returns the epoch day of the first day of month in year.
func (s *providerSystem) monthStart(year, month int) int64 {
	if s.inv != nil {
		return iso.EpochDays(s.inv.ToISO(year, month, 1))
	}
	days := s.yearStart(year)
	for m := 1; m < month; m++ {
		days += int64(s.partsAt(days).DaysInMonth)
	}
	return days
}

func (s *providerSystem) toISO(year, month, day int) iso.Date {
	if s.inv != nil {
		return s.inv.ToISO(year, month, day)
	}
	return iso.DateFromEpochDays(s.monthStart(year, month) + int64(day) - 1)
}

func (s *providerSystem) monthsInYear(year int) int {
	if s.info != nil {
		return s.info.MonthsInYear(year)
	}
	return s.partsAt(s.yearStart(year)).MonthsInYear
}

func (s *providerSystem) daysInMonth(year, month int) int {
	if s.info != nil {
		return s.info.DaysInMonth(year, month)
	}
	return s.partsAt(s.monthStart(year, month)).DaysInMonth
}

func (s *providerSystem) daysInYear(year int) int {
	return int(s.yearStart(year+1) - s.yearStart(year))
}

func (s *providerSystem) inLeapYear(year int) bool {
	return s.partsAt(s.yearStart(year)).InLeapYear
}

func (s *providerSystem) leapMonth(year int) int {
	if s.info != nil {
		return s.info.LeapMonth(year)
	}
	days := s.yearStart(year)
	p := s.partsAt(days)
	for m := 1; m <= p.MonthsInYear; m++ {
		mp := s.partsAt(days)
		if strings.HasSuffix(mp.MonthCode, "L") {
			return m
		}
		days += int64(mp.DaysInMonth)
	}
	return 0
}
