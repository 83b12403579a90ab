package calendar

import (
	"github.com/theory/temporal/iso"
)

// Julian day numbers of the tabular Islamic epochs, civil (Friday) and
// astronomical (Thursday).
const (
	islamicCivilJD = 1948440
	islamicTblaJD  = 1948439
)

// islamic returns a tabular Islamic calendar: alternating 30- and 29-day
// months, with 11 leap years in each 30-year cycle.
func islamic(epoch int64, eras *eraTable) *arithmetic {
	yearStart := func(y int64) int64 { return (y-1)*354 + floorDiv(3+11*y, 30) }
	monthStart := func(y, m0 int64) int64 { return yearStart(y) + 29*m0 + (m0+1)/2 }
	leap := func(year int) bool { return floorMod(14+11*int64(year), 30) < 11 }
	return &arithmetic{
		fromDays: func(days int64) (int, int, int) {
			n := days + jdEpoch - epoch
			y := floorDiv(30*n+10646, 10631)
			for yearStart(y) > n {
				y--
			}
			for yearStart(y+1) <= n {
				y++
			}
			m0 := int64(11)
			for monthStart(y, m0) > n {
				m0--
			}
			return int(y), int(m0) + 1, int(n-monthStart(y, m0)) + 1
		},
		toDays: func(year, month, day int) int64 {
			return epoch - jdEpoch + monthStart(int64(year), int64(month-1)) + int64(day) - 1
		},
		monthsInYear: func(int) int { return iso.MonthsInYear },
		daysInMonth: func(year, month int) int {
			if month%2 == 1 || (month == 12 && leap(year)) {
				return 30
			}
			return 29
		},
		inLeapYear: leap,
		eras:       eras,
	}
}

// Hebrew calendar constants: the fixed day of 1 Tishri AM 1 counted from
// 0001-01-01 as day 1, and the offset of that count from epoch days.
const (
	hebrewEpochRD = -1373427
	rdEpochShift  = 719163
)

// hebrew returns the Hebrew calendar with months counted from Tishri and
// Adar I as the sixth month of leap years.
func hebrew(eras *eraTable) *arithmetic {
	leap := func(year int) bool { return floorMod(7*int64(year)+1, 19) < 7 }
	elapsed := func(year int) int64 {
		months := floorDiv(235*int64(year)-234, 19)
		parts := 12084 + 13753*months
		days := 29*months + floorDiv(parts, 25920)
		if floorMod(3*(days+1), 7) < 3 {
			days++
		}
		return days
	}
	newYear := func(year int) int64 {
		ny0, ny1, ny2 := elapsed(year-1), elapsed(year), elapsed(year+1)
		var correction int64
		switch {
		case ny2-ny1 == 356:
			correction = 2
		case ny1-ny0 == 382:
			correction = 1
		}
		return hebrewEpochRD + ny1 + correction - rdEpochShift
	}
	lengths := func(year int) []int {
		yearLength := newYear(year+1) - newYear(year)
		heshvan, kislev := 29, 30
		if yearLength%10 == 5 {
			heshvan = 30
		}
		if yearLength%10 == 3 {
			kislev = 29
		}
		if leap(year) {
			return []int{30, heshvan, kislev, 29, 30, 30, 29, 30, 29, 30, 29, 30, 29}
		}
		return []int{30, heshvan, kislev, 29, 30, 29, 30, 29, 30, 29, 30, 29}
	}
	return &arithmetic{
		fromDays: func(days int64) (int, int, int) {
			year := int(floorDiv((days+rdEpochShift-hebrewEpochRD)*98496, 35975351)) + 1
			for newYear(year) > days {
				year--
			}
			for newYear(year+1) <= days {
				year++
			}
			doy := int(days - newYear(year))
			for i, n := range lengths(year) {
				if doy < n {
					return year, i + 1, doy + 1
				}
				doy -= n
			}
			panic("unreachable")
		},
		toDays: func(year, month, day int) int64 {
			days := newYear(year)
			for _, n := range lengths(year)[:month-1] {
				days += int64(n)
			}
			return days + int64(day) - 1
		},
		monthsInYear: func(year int) int {
			if leap(year) {
				return 13
			}
			return 12
		},
		daysInMonth: func(year, month int) int { return lengths(year)[month-1] },
		inLeapYear:  leap,
		leapMonth: func(year int) int {
			if leap(year) {
				return 6
			}
			return 0
		},
		eras: eras,
	}
}
