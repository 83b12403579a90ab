package calendar

import (
	"fmt"
	"slices"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
)

// Search window, in calendar years, for a month day's reference year.
const monthDaySearchYears = 100

// DateFromFields converts f into an ISO date. Year comes from year or from
// era and eraYear; month from month or monthCode. Out-of-range month and
// day values are clamped or rejected according to overflow.
func (c *Calendar) DateFromFields(f Fields, overflow iso.Overflow) (iso.Date, error) {
	year, err := c.refineYear(f)
	if err != nil {
		return iso.Date{}, err
	}
	month, err := c.refineMonth(f, year, overflow)
	if err != nil {
		return iso.Date{}, err
	}
	day, err := c.refineDay(f, year, month, overflow)
	if err != nil {
		return iso.Date{}, err
	}
	return c.toISO(year, month, day)
}

// YearMonthFromFields returns the first day of the calendar month that f
// identifies. Any day field is ignored.
func (c *Calendar) YearMonthFromFields(f Fields, overflow iso.Overflow) (iso.Date, error) {
	year, err := c.refineYear(f)
	if err != nil {
		return iso.Date{}, err
	}
	month, err := c.refineMonth(f, year, overflow)
	if err != nil {
		return iso.Date{}, err
	}
	return c.toISO(year, month, 1)
}

// MonthDayFromFields returns an ISO date hosting the month code and day of
// f. ISO-based calendars use the leap year 1972 as reference. Other
// calendars search backward from the calendar year containing 1972-12-31
// for the latest year with that month code and day. A year in f is used
// only to resolve month and day.
func (c *Calendar) MonthDayFromFields(f Fields, overflow iso.Overflow) (iso.Date, error) {
	if f.Day == nil {
		return iso.Date{}, fmt.Errorf("%w: day is required", errs.ErrType)
	}

	var (
		num  int
		leap bool
		day  = *f.Day
	)
	if f.Year != nil || (f.Era != "" && f.EraYear != nil) {
		year, err := c.refineYear(f)
		if err != nil {
			return iso.Date{}, err
		}
		month, err := c.refineMonth(f, year, overflow)
		if err != nil {
			return iso.Date{}, err
		}
		if day, err = c.refineDay(f, year, month, overflow); err != nil {
			return iso.Date{}, err
		}
		num, leap = c.monthCodeParts(year, month)
	} else {
		switch {
		case f.MonthCode != "":
			var err error
			if num, leap, err = parseMonthCode(f.MonthCode); err != nil {
				return iso.Date{}, err
			}
			if f.Month != nil && c.isoBased() && *f.Month != num {
				return iso.Date{}, fmt.Errorf("%w: month %d and monthCode %v do not agree", errs.ErrRange, *f.Month, f.MonthCode)
			}
		case f.Month != nil && c.isoBased():
			num = *f.Month
		default:
			return iso.Date{}, fmt.Errorf("%w: monthCode is required", errs.ErrType)
		}
	}

	if c.isoBased() {
		const refYear = 1972
		month, err := c.monthForCode(num, leap, refYear, overflow)
		if err != nil {
			return iso.Date{}, err
		}
		if day, err = iso.ConstrainField("day", day, 1, iso.DaysInMonth(refYear, month), overflow); err != nil {
			return iso.Date{}, err
		}
		return iso.Date{Year: refYear, Month: month, Day: day}, nil
	}
	return c.searchMonthDay(num, leap, day, overflow)
}

func (c *Calendar) searchMonthDay(num int, leap bool, day int, overflow iso.Overflow) (iso.Date, error) {
	if day < 1 {
		return iso.Date{}, fmt.Errorf("%w: day %d out of range", errs.ErrRange, day)
	}
	// Validates the code itself against the calendar.
	start, _, _ := c.sys.parts(iso.Date{Year: 1972, Month: 12, Day: 31})
	if _, err := c.monthForCode(num, leap, start, iso.Constrain); err != nil {
		return iso.Date{}, err
	}

	maxDays := 0
	for year := start; year > start-monthDaySearchYears; year-- {
		month, ok := c.hasMonthCode(num, leap, year)
		if !ok {
			continue
		}
		n := c.sys.daysInMonth(year, month)
		if day <= n {
			return c.sys.toISO(year, month, day), nil
		}
		maxDays = max(maxDays, n)
	}

	code := formatMonthCode(num, leap)
	if overflow == iso.Reject {
		return iso.Date{}, fmt.Errorf("%w: no reference year for %v day %d", errs.ErrRange, code, day)
	}
	if maxDays == 0 {
		// The leap month never occurs in the window: use its substitute.
		month, err := c.monthForCode(num, leap, start, iso.Constrain)
		if err != nil {
			return iso.Date{}, err
		}
		num, leap = c.monthCodeParts(start, month)
		return c.searchMonthDay(num, leap, day, overflow)
	}
	return c.searchMonthDay(num, leap, maxDays, overflow)
}

// toISO converts a valid calendar date to ISO, checking the result is in
// range.
func (c *Calendar) toISO(year, month, day int) (iso.Date, error) {
	d := c.sys.toISO(year, month, day)
	if err := iso.CheckDateInBounds(d); err != nil {
		return iso.Date{}, err
	}
	if y, m, dd := c.sys.parts(d); y != year || m != month || dd != day {
		return iso.Date{}, fmt.Errorf("%w: %v year %d month %d day %d", errs.ErrOutOfRange, c.id, year, month, day)
	}
	return d, nil
}

func (c *Calendar) refineYear(f Fields) (int, error) {
	if c.eras != nil && (f.Era != "" || f.EraYear != nil) {
		if f.Era == "" || f.EraYear == nil {
			if f.Year == nil {
				return 0, fmt.Errorf("%w: era and eraYear must be provided together", errs.ErrType)
			}
			return c.checkYear(*f.Year)
		}
		year, err := c.eras.yearFor(f.Era, *f.EraYear)
		if err != nil {
			return 0, err
		}
		if f.Year != nil && *f.Year != year {
			return 0, fmt.Errorf("%w: year %d and era %v %d do not agree", errs.ErrRange, *f.Year, f.Era, *f.EraYear)
		}
		return c.checkYear(year)
	}
	if f.Year == nil {
		return 0, fmt.Errorf("%w: year is required", errs.ErrType)
	}
	return c.checkYear(*f.Year)
}

func (c *Calendar) checkYear(year int) (int, error) {
	lo, hi := c.yearBounds()
	if year < lo || year > hi {
		return 0, fmt.Errorf("%w: %v year %d", errs.ErrOutOfRange, c.id, year)
	}
	return year, nil
}

func (c *Calendar) refineMonth(f Fields, year int, overflow iso.Overflow) (int, error) {
	if f.MonthCode != "" {
		num, leap, err := parseMonthCode(f.MonthCode)
		if err != nil {
			return 0, err
		}
		month, err := c.monthForCode(num, leap, year, overflow)
		if err != nil {
			return 0, err
		}
		if f.Month != nil && *f.Month != month {
			return 0, fmt.Errorf("%w: month %d and monthCode %v do not agree", errs.ErrRange, *f.Month, f.MonthCode)
		}
		return month, nil
	}
	if f.Month == nil {
		return 0, fmt.Errorf("%w: month or monthCode is required", errs.ErrType)
	}
	return iso.ConstrainField("month", *f.Month, 1, c.sys.monthsInYear(year), overflow)
}

func (c *Calendar) refineDay(f Fields, year, month int, overflow iso.Overflow) (int, error) {
	if f.Day == nil {
		return 0, fmt.Errorf("%w: day is required", errs.ErrType)
	}
	return iso.ConstrainField("day", *f.Day, 1, c.sys.daysInMonth(year, month), overflow)
}

// Fields returns names plus the era fields for calendars with eras and
// monthCode for calendars with leap months.
func (c *Calendar) Fields(names []string) []string {
	out := make([]string, 0, len(names)+2)
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	if c.eras != nil && slices.Contains(out, "year") {
		for _, n := range []string{"era", "eraYear"} {
			if !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}
	if c.leapMeta != 0 && slices.Contains(out, "month") && !slices.Contains(out, "monthCode") {
		out = append(out, "monthCode")
	}
	return out
}

// MergeFields overlays override onto base. Month and monthCode replace each
// other, as do year and the era fields in calendars with eras.
func (c *Calendar) MergeFields(base, override Fields) Fields {
	res := base
	if override.Month != nil || override.MonthCode != "" {
		res.Month, res.MonthCode = override.Month, override.MonthCode
	}
	if override.Day != nil {
		res.Day = override.Day
	}
	if c.eras == nil {
		if override.Year != nil {
			res.Year = override.Year
		}
		return res
	}
	if override.Year != nil || override.Era != "" || override.EraYear != nil {
		res.Year, res.Era, res.EraYear = override.Year, override.Era, override.EraYear
	}
	if c.dateClearsEra && override.Era == "" && override.EraYear == nil &&
		(override.Month != nil || override.MonthCode != "" || override.Day != nil) {
		res.Era, res.EraYear = "", nil
	}
	return res
}
