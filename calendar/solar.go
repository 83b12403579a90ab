package calendar

import (
	"github.com/theory/temporal/iso"
)

// Julian day numbers of calendar epochs.
const (
	copticJD   = 1824665
	ethiopicJD = 1723856
	persianJD  = 1948320

	// Years between the Amete Alem and Amete Mihret epochs.
	ethiopicAAYears = 5500
)

// coptic returns the rules shared by the Coptic and Ethiopic calendars:
// twelve 30-day months, a thirteenth month of five days (six in years
// before a year divisible by four), counted from the Julian day epoch.
func coptic(epoch int64, eras *eraTable) *arithmetic {
	leap := func(year int) bool { return floorMod(int64(year), 4) == 3 }
	return &arithmetic{
		fromDays: func(days int64) (int, int, int) {
			n := days + jdEpoch - epoch
			c4, r4 := floorDiv(n, 1461), floorMod(n, 1461)
			year := 4*c4 + r4/365 - r4/1460
			doy := r4 % 365
			if r4 == 1460 {
				doy = 365
			}
			return int(year), int(doy/30) + 1, int(doy%30) + 1
		},
		toDays: func(year, month, day int) int64 {
			y := int64(year)
			return epoch - jdEpoch + 365*y + floorDiv(y, 4) + 30*int64(month-1) + int64(day) - 1
		},
		monthsInYear: func(int) int { return 13 },
		daysInMonth: func(year, month int) int {
			switch {
			case month < 13:
				return 30
			case leap(year):
				return 6
			default:
				return 5
			}
		},
		inLeapYear: leap,
		eras:       eras,
	}
}

// indian returns the Indian national (Saka) calendar. Its year starts on
// March 22, or March 21 in Gregorian leap years.
func indian(eras *eraTable) *arithmetic {
	const offset = 78
	chaitra := func(gregorianYear int) int64 {
		day := 22
		if iso.IsLeapYear(gregorianYear) {
			day = 21
		}
		return iso.EpochDays(iso.Date{Year: gregorianYear, Month: 3, Day: day})
	}
	leap := func(year int) bool { return iso.IsLeapYear(year + offset) }
	dim := func(year, month int) int {
		switch {
		case month == 1 && leap(year):
			return 31
		case month == 1:
			return 30
		case month <= 6:
			return 31
		default:
			return 30
		}
	}
	return &arithmetic{
		fromDays: func(days int64) (int, int, int) {
			g := iso.DateFromEpochDays(days).Year
			start := chaitra(g)
			if days < start {
				g--
				start = chaitra(g)
			}
			year := g - offset
			doy := int(days - start)
			month := 1
			for doy >= dim(year, month) {
				doy -= dim(year, month)
				month++
			}
			return year, month, doy + 1
		},
		toDays: func(year, month, day int) int64 {
			days := chaitra(year + offset)
			for m := 1; m < month; m++ {
				days += int64(dim(year, m))
			}
			return days + int64(day) - 1
		},
		monthsInYear: func(int) int { return iso.MonthsInYear },
		daysInMonth:  dim,
		inLeapYear:   leap,
		eras:         eras,
	}
}

// persian returns the arithmetic Persian calendar with its 33-year leap
// cycle.
func persian(eras *eraTable) *arithmetic {
	cumulative := [...]int64{0, 31, 62, 93, 124, 155, 186, 216, 246, 276, 306, 336}
	start := func(year int) int64 {
		y := int64(year)
		return persianJD - jdEpoch + 365*(y-1) + floorDiv(8*y+21, 33)
	}
	leap := func(year int) bool { return start(year+1)-start(year) == 366 }
	return &arithmetic{
		fromDays: func(days int64) (int, int, int) {
			n := days - (persianJD - jdEpoch)
			year := int(1 + floorDiv(33*n+3, 12053))
			for start(year) > days {
				year--
			}
			for start(year+1) <= days {
				year++
			}
			doy := days - start(year)
			var m int64
			if doy < cumulative[6] {
				m = doy / 31
			} else {
				m = (doy-cumulative[6])/30 + 6
			}
			return year, int(m) + 1, int(doy-cumulative[m]) + 1
		},
		toDays: func(year, month, day int) int64 {
			return start(year) + cumulative[month-1] + int64(day) - 1
		},
		monthsInYear: func(int) int { return iso.MonthsInYear },
		daysInMonth: func(year, month int) int {
			switch {
			case month <= 6:
				return 31
			case month <= 11:
				return 30
			case leap(year):
				return 30
			default:
				return 29
			}
		},
		inLeapYear: leap,
		eras:       eras,
	}
}
