package calendar

import (
	"fmt"

	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
)

// DateAdd adds the years, months, weeks and days of dur to d. Years keep
// the month code, falling back per overflow when the target year lacks it.
// Months then move by ordinal month, the day is constrained or rejected
// once, and weeks and days are added last.
func (c *Calendar) DateAdd(d iso.Date, dur duration.Fields, overflow iso.Overflow) (iso.Date, error) {
	if dur.Years != 0 || dur.Months != 0 {
		year, month, day := c.sys.parts(d)
		lo, hi := c.yearBounds()
		span := int64(hi - lo + 1)

		if dur.Years != 0 {
			if dur.Years > span || dur.Years < -span {
				return iso.Date{}, fmt.Errorf("%w: %d years", errs.ErrOutOfRange, dur.Years)
			}
			num, leap := c.monthCodeParts(year, month)
			year += int(dur.Years)
			if year < lo || year > hi {
				return iso.Date{}, fmt.Errorf("%w: %v year %d", errs.ErrOutOfRange, c.id, year)
			}
			var err error
			if month, err = c.monthForCode(num, leap, year, overflow); err != nil {
				return iso.Date{}, err
			}
		}

		if dur.Months != 0 {
			if dur.Months > span*13 || dur.Months < -span*13 {
				return iso.Date{}, fmt.Errorf("%w: %d months", errs.ErrOutOfRange, dur.Months)
			}
			year, month = c.addMonths(year, month, dur.Months)
			if year < lo || year > hi {
				return iso.Date{}, fmt.Errorf("%w: %v year %d", errs.ErrOutOfRange, c.id, year)
			}
		}

		day, err := iso.ConstrainField("day", day, 1, c.sys.daysInMonth(year, month), overflow)
		if err != nil {
			return iso.Date{}, err
		}
		d = c.sys.toISO(year, month, day)
	}

	days := dur.Weeks*iso.DaysInWeek + dur.Days
	if days > 2*maxEpochDays+2 || days < -2*maxEpochDays-2 {
		return iso.Date{}, fmt.Errorf("%w: %d days", errs.ErrOutOfRange, days)
	}
	res := iso.AddDays(d, days)
	if err := iso.CheckDateInBounds(res); err != nil {
		return iso.Date{}, err
	}
	return res, nil
}

// DateUntil returns the difference from d0 to d1. With largest at most
// [duration.Week] the result counts weeks and days. Otherwise it takes as
// many whole years (for [duration.Year]) then whole months as fit without
// passing d1, and the remaining days, so that adding the result to d0 with
// [iso.Constrain] yields d1.
func (c *Calendar) DateUntil(d0, d1 iso.Date, largest duration.Unit) (duration.Fields, error) {
	if largest <= duration.Week {
		days := iso.DiffDays(d0, d1)
		if largest == duration.Week {
			return duration.Fields{Weeks: days / iso.DaysInWeek, Days: days % iso.DaysInWeek}, nil
		}
		return duration.Fields{Days: days}, nil
	}

	sign := int64(iso.CompareDates(d1, d0))
	if sign == 0 {
		return duration.Fields{}, nil
	}

	// passes reports whether d0 plus years and months lands beyond d1.
	passes := func(years, months int64) (bool, iso.Date, error) {
		d, err := c.DateAdd(d0, duration.Fields{Years: years, Months: months}, iso.Constrain)
		if err != nil {
			return false, iso.Date{}, err
		}
		return int64(iso.CompareDates(d, d1))*sign > 0, d, nil
	}

	y0, m0, _ := c.sys.parts(d0)
	y1, m1, _ := c.sys.parts(d1)

	var years int64
	if largest == duration.Year {
		years = int64(y1 - y0)
		for years != 0 {
			over, _, err := passes(years, 0)
			if err != nil {
				return duration.Fields{}, err
			}
			if !over {
				break
			}
			years -= sign
		}
	}

	// Estimate months from the month reached after adding years.
	ya, ma := y0, m0
	if years != 0 {
		num, leap := c.monthCodeParts(y0, m0)
		ya = y0 + int(years)
		var err error
		if ma, err = c.monthForCode(num, leap, ya, iso.Constrain); err != nil {
			return duration.Fields{}, err
		}
	}
	months := c.monthsBetween(ya, ma, y1, m1)

	var mid iso.Date
	for {
		over, d, err := passes(years, months)
		if err != nil {
			return duration.Fields{}, err
		}
		if !over {
			mid = d
			break
		}
		months -= sign
	}

	return duration.Fields{
		Years:  years,
		Months: months,
		Days:   iso.DiffDays(mid, d1),
	}, nil
}
