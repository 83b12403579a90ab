package calendar

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
)

//nolint:gochecknoglobals
var monthCodeRegex = regexp.MustCompile(`^M(\d{2})(L?)$`)

// parseMonthCode splits a month code such as "M05L" into its number and
// leap flag.
func parseMonthCode(code string) (int, bool, error) {
	m := monthCodeRegex.FindStringSubmatch(code)
	if m == nil {
		return 0, false, fmt.Errorf("%w: invalid month code %q", errs.ErrRange, code)
	}
	num, _ := strconv.Atoi(m[1])
	if num == 0 {
		return 0, false, fmt.Errorf("%w: invalid month code %q", errs.ErrRange, code)
	}
	return num, m[2] == "L", nil
}

func formatMonthCode(num int, leap bool) string {
	if leap {
		return fmt.Sprintf("M%02dL", num)
	}
	return fmt.Sprintf("M%02d", num)
}

// monthCodeParts returns the month code number and leap flag of ordinal
// month in year.
func (c *Calendar) monthCodeParts(year, month int) (int, bool) {
	lm := c.sys.leapMonth(year)
	switch {
	case lm == 0 || month < lm:
		return month, false
	case month == lm:
		return month - 1, true
	default:
		return month - 1, false
	}
}

// ordinalMonth returns the ordinal of the common month num in a year whose
// leap month is lm.
func ordinalMonth(num, lm int) int {
	if lm != 0 && num >= lm {
		return num + 1
	}
	return num
}

// monthForCode returns the ordinal month of the month code in year. When
// year lacks the requested leap month, Constrain falls back to the
// calendar's substitute month and Reject fails.
func (c *Calendar) monthForCode(num int, leap bool, year int, overflow iso.Overflow) (int, error) {
	lm := c.sys.leapMonth(year)
	month := ordinalMonth(num, lm)
	if leap {
		code := formatMonthCode(num, leap)
		switch {
		case c.leapMeta == 0:
			return 0, fmt.Errorf("%w: invalid month code %q for calendar %v", errs.ErrRange, code, c.id)
		case c.leapMeta < 0 && num+1 != -c.leapMeta:
			return 0, fmt.Errorf("%w: invalid month code %q for calendar %v", errs.ErrRange, code, c.id)
		case c.leapMeta > 0 && num > c.leapMeta:
			return 0, fmt.Errorf("%w: invalid month code %q for calendar %v", errs.ErrRange, code, c.id)
		}
		switch {
		case lm == num+1:
			month = lm
		case overflow == iso.Reject:
			return 0, fmt.Errorf("%w: month code %q does not exist in year %d", errs.ErrRange, code, year)
		case c.leapMeta < 0:
			// The leap month occupies a fixed ordinal, whose common-year
			// month takes its place.
			month = -c.leapMeta
		}
	}
	if month > c.sys.monthsInYear(year) {
		return 0, fmt.Errorf(
			"%w: invalid month code %q for calendar %v",
			errs.ErrRange, formatMonthCode(num, leap), c.id,
		)
	}
	return month, nil
}

// hasMonthCode returns the ordinal of the month code in year, or false if
// year lacks it.
func (c *Calendar) hasMonthCode(num int, leap bool, year int) (int, bool) {
	month, err := c.monthForCode(num, leap, year, iso.Reject)
	if err != nil {
		return 0, false
	}
	return month, true
}

// addMonths moves ordinal month in year by months.
func (c *Calendar) addMonths(year, month int, months int64) (int, int) {
	if c.isoBased() {
		total := int64(year)*iso.MonthsInYear + int64(month-1) + months
		return int(floorDiv(total, iso.MonthsInYear)), int(floorMod(total, iso.MonthsInYear)) + 1
	}
	for months > 0 {
		n := c.sys.monthsInYear(year)
		if int64(month)+months <= int64(n) {
			return year, month + int(months)
		}
		months -= int64(n - month + 1)
		year++
		month = 1
	}
	for months < 0 {
		if int64(month)+months >= 1 {
			return year, month + int(months)
		}
		months += int64(month)
		year--
		month = c.sys.monthsInYear(year)
	}
	return year, month
}

// monthsBetween counts the months from (y0, m0) to (y1, m1).
func (c *Calendar) monthsBetween(y0, m0, y1, m1 int) int64 {
	switch {
	case c.isoBased():
		return int64(y1-y0)*iso.MonthsInYear + int64(m1-m0)
	case y0 == y1:
		return int64(m1 - m0)
	case y0 > y1:
		return -c.monthsBetween(y1, m1, y0, m0)
	}
	n := int64(c.sys.monthsInYear(y0) - m0)
	for y := y0 + 1; y < y1; y++ {
		n += int64(c.sys.monthsInYear(y))
	}
	return n + int64(m1)
}

// isoBased returns true for calendars with ISO months and years.
func (c *Calendar) isoBased() bool {
	switch c.sys.(type) {
	case isoSystem, japaneseSystem:
		return true
	default:
		return false
	}
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
