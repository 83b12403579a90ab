// Package isotext parses and formats the ISO 8601 and RFC 9557 text used by
// the temporal command: dates, date-times with optional offsets and
// bracketed time zone and calendar annotations, and durations.
package isotext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/tz"
)

// DateTime holds the parts of a parsed date-time string.
type DateTime struct {
	iso.DateTime

	// HasTime is true if the string included a time of day.
	HasTime bool

	// Offset is the numeric UTC offset in nanoseconds, or nil if the
	// string had none.
	Offset *int64

	// UTC is true for the "Z" designator, which gives an exact instant but
	// no local offset.
	UTC bool

	// Zone is the time zone annotation, such as "America/New_York".
	Zone string

	// Calendar is the u-ca annotation, such as "hebrew".
	Calendar string
}

//nolint:gochecknoglobals
var (
	// Layouts for time.Parse, most common first. Fractional seconds are
	// accepted after the seconds field without appearing in the layout.
	dateTimeLayouts = func() []string {
		var layouts []string
		for _, offset := range []string{"", "Z07:00", "Z07:00:00", "Z0700", "Z07"} {
			for _, sep := range []string{"T", " "} {
				for _, clock := range []string{"15:04:05", "15:04"} {
					layouts = append(layouts, "2006-01-02"+sep+clock+offset)
				}
			}
		}
		return layouts
	}()

	extendedYear = regexp.MustCompile(`^([+-]\d{6})(-\d{2}-\d{2}.*)$`)
)

// ParseDateTime parses a date or date-time such as "2024-03-10",
// "2024-03-10T01:30:00.5-05:00[America/New_York][u-ca=hebrew]" or
// "+275760-09-13". Returns an [errs.ErrRange] error if the string is
// malformed or names a date outside the supported range.
func ParseDateTime(s string) (DateTime, error) {
	var res DateTime
	main, err := parseAnnotations(s, &res)
	if err != nil {
		return DateTime{}, err
	}

	year := 0
	extended := false
	if m := extendedYear.FindStringSubmatch(main); m != nil {
		if m[1] == "-000000" {
			return DateTime{}, fmt.Errorf("%w: invalid year in %q", errs.ErrRange, s)
		}
		year, _ = strconv.Atoi(m[1])
		// 2000 is a leap year, so time.Parse accepts February 29.
		main, extended = "2000"+m[2], true
	}
	if strings.HasSuffix(main, "z") {
		main = main[:len(main)-1] + "Z"
	}

	value, layout, ok := parseLayouts(main)
	if !ok {
		return DateTime{}, fmt.Errorf("%w: invalid date-time %q", errs.ErrRange, s)
	}

	res.DateTime = iso.DateTime{
		Date: iso.Date{Year: value.Year(), Month: int(value.Month()), Day: value.Day()},
		Time: iso.Time{
			Hour:        value.Hour(),
			Minute:      value.Minute(),
			Second:      value.Second(),
			Millisecond: value.Nanosecond() / 1_000_000,
			Microsecond: value.Nanosecond() / 1_000 % 1_000,
			Nanosecond:  value.Nanosecond() % 1_000,
		},
	}
	if extended {
		res.Year = year
		if _, err := iso.ConstrainDate(res.Date, iso.Reject); err != nil {
			return DateTime{}, fmt.Errorf("%w in %q", err, s)
		}
	}
	res.HasTime = layout != "2006-01-02"

	if strings.Contains(layout, "Z07") {
		if strings.HasSuffix(main, "Z") {
			res.UTC = true
		} else {
			_, secs := value.Zone()
			off := int64(secs) * nano.NanoInSecond
			res.Offset = &off
		}
	}

	check := iso.CheckDateTimeInBounds
	if !res.HasTime {
		check = func(dt iso.DateTime) error { return iso.CheckDateInBounds(dt.Date) }
	}
	if err := check(res.DateTime); err != nil {
		return DateTime{}, err
	}
	return res, nil
}

// parseLayouts tries the date layout and then each date-time layout in
// turn, returning the first that parses.
func parseLayouts(src string) (time.Time, string, bool) {
	if value, err := time.Parse("2006-01-02", src); err == nil {
		return value, "2006-01-02", true
	}
	for _, layout := range dateTimeLayouts {
		if value, err := time.Parse(layout, src); err == nil {
			return value, layout, true
		}
	}
	return time.Time{}, "", false
}

// parseAnnotations strips bracketed annotations from the end of s, recording
// the time zone and calendar in res, and returns the rest of s.
func parseAnnotations(s string, res *DateTime) (string, error) {
	calCritical := false
	for strings.HasSuffix(s, "]") {
		start := strings.LastIndexByte(s, '[')
		if start < 0 {
			return "", fmt.Errorf("%w: unbalanced annotation in %q", errs.ErrRange, s)
		}
		body := s[start+1 : len(s)-1]
		s = s[:start]
		if res.Zone != "" {
			return "", fmt.Errorf("%w: time zone annotation must come first in %q", errs.ErrRange, s)
		}

		critical := strings.HasPrefix(body, "!")
		body = strings.TrimPrefix(body, "!")
		key, val, isKey := strings.Cut(body, "=")
		switch {
		case body == "":
			return "", fmt.Errorf("%w: empty annotation in %q", errs.ErrRange, s)
		case !isKey:
			res.Zone = body
		case key == "u-ca":
			if res.Calendar != "" && (critical || calCritical) {
				return "", fmt.Errorf("%w: conflicting calendar annotations in %q", errs.ErrRange, s)
			}
			res.Calendar, calCritical = val, calCritical || critical
		case critical:
			return "", fmt.Errorf("%w: unknown critical annotation %q", errs.ErrRange, key)
		}
	}
	return s, nil
}

// FormatDate returns d in ISO 8601 form, with a calendar annotation unless
// calID is the ISO calendar.
func FormatDate(d iso.Date, calID string) string {
	return d.String() + calendarAnnotation(calID)
}

// FormatDateTime returns dt in ISO 8601 form, with a calendar annotation
// unless calID is the ISO calendar.
func FormatDateTime(dt iso.DateTime, calID string) string {
	return dt.String() + calendarAnnotation(calID)
}

// FormatZoned returns the wall-clock date-time of epochNano in zone with its
// offset and time zone annotation, such as
// "2024-03-10T03:30:00-04:00[America/New_York]".
func FormatZoned(zone tz.Ops, epochNano nano.Nano, calID string) (string, error) {
	off, err := tz.Offset(zone, epochNano)
	if err != nil {
		return "", err
	}
	dt := iso.EpochNanoToDateTime(epochNano.AddInt(off))
	return dt.String() + tz.FormatOffset(off) + "[" + zone.ID() + "]" + calendarAnnotation(calID), nil
}

// FormatInstant returns epochNano as a UTC date-time ending in "Z".
func FormatInstant(epochNano nano.Nano) string {
	return iso.EpochNanoToDateTime(epochNano).String() + "Z"
}

func calendarAnnotation(calID string) string {
	if calID == "" || calID == calendar.ISO8601 {
		return ""
	}
	return "[u-ca=" + calID + "]"
}

//nolint:gochecknoglobals
var durationPattern = regexp.MustCompile(
	`^(?i)([+-])?P` +
		`(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?` +
		`(?:T(?:(\d+)(?:[.,](\d{1,9}))?H)?(?:(\d+)(?:[.,](\d{1,9}))?M)?(?:(\d+)(?:[.,](\d{1,9}))?S)?)?$`,
)

// ParseDuration parses an ISO 8601 duration such as "P1Y2M3DT4H5M6.007S"
// or "-PT1.5H". Only the smallest time component may carry a fraction,
// which spills into the smaller units.
func ParseDuration(s string) (duration.Fields, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return duration.Fields{}, fmt.Errorf("%w: invalid duration %q", errs.ErrRange, s)
	}
	hasDate := m[2]+m[3]+m[4]+m[5] != ""
	hasTime := m[6]+m[8]+m[10] != ""
	if !hasTime && (!hasDate || strings.ContainsAny(s, "Tt")) {
		return duration.Fields{}, fmt.Errorf("%w: invalid duration %q", errs.ErrRange, s)
	}

	var f duration.Fields
	for i, u := range []duration.Unit{duration.Year, duration.Month, duration.Week, duration.Day} {
		v, err := parseComponent(s, m[i+2])
		if err != nil {
			return duration.Fields{}, err
		}
		f = f.With(u, v)
	}

	var (
		fracNano   int64
		fracUnit   duration.Unit
		fractional bool
	)
	for i, u := range []duration.Unit{duration.Hour, duration.Minute, duration.Second} {
		whole, fraction := m[6+i*2], m[7+i*2]
		if whole == "" {
			continue
		}
		if fractional {
			return duration.Fields{}, fmt.Errorf("%w: only the smallest unit may be fractional in %q", errs.ErrRange, s)
		}
		v, err := parseComponent(s, whole)
		if err != nil {
			return duration.Fields{}, err
		}
		f = f.With(u, v)
		if fraction != "" {
			// Billionths of the unit, scaled to nanoseconds.
			digits, _ := strconv.ParseInt((fraction + "00000000")[:9], 10, 64)
			fracNano, fracUnit, fractional = digits*(u.Nano()/nano.NanoInSecond), u, true
		}
	}

	if fracNano != 0 {
		spill, err := duration.FromDayTimeNano(nano.New(fracNano), fracUnit-1)
		if err != nil {
			return duration.Fields{}, err
		}
		for u := duration.Nanosecond; u < fracUnit; u++ {
			f = f.With(u, spill.Get(u))
		}
	}
	if m[1] == "-" {
		f = duration.Negate(f)
	}
	if err := duration.CheckBounds(f); err != nil {
		return duration.Fields{}, err
	}
	return f, nil
}

func parseComponent(s, digits string) (int64, error) {
	if digits == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: duration component %s too large in %q", errs.ErrRange, digits, s)
	}
	return v, nil
}
