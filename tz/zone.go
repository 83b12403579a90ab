package tz

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
)

// Fixed is a zone with a constant offset.
type Fixed struct {
	offset int64
}

// NewFixed returns a zone with a constant offset in nanoseconds. The
// offset must be less than a day in magnitude.
func NewFixed(offset int64) (*Fixed, error) {
	if offset <= -nano.NanoInDay || offset >= nano.NanoInDay {
		return nil, fmt.Errorf("%w: offset %d nanoseconds", errs.ErrOutOfRange, offset)
	}
	return &Fixed{offset: offset}, nil
}

// ID returns the offset formatted as ±HH:MM, with seconds and fractional
// seconds when present.
func (z *Fixed) ID() string { return FormatOffset(z.offset) }

// String returns the zone ID.
func (z *Fixed) String() string { return z.ID() }

// OffsetNanosecondsFor returns the constant offset.
func (z *Fixed) OffsetNanosecondsFor(nano.Nano) int64 { return z.offset }

// PossibleInstantsFor returns the single instant of dt.
func (z *Fixed) PossibleInstantsFor(dt iso.DateTime) []nano.Nano {
	return []nano.Nano{iso.DateTimeToEpochNano(dt).AddInt(-z.offset)}
}

// Named is a zone from the IANA time zone database.
type Named struct {
	loc *time.Location
}

// NewNamed wraps loc as a zone.
func NewNamed(loc *time.Location) *Named {
	return &Named{loc: loc}
}

// ID returns the IANA zone name.
func (z *Named) ID() string { return z.loc.String() }

// String returns the zone ID.
func (z *Named) String() string { return z.ID() }

// Location returns the underlying [time.Location].
func (z *Named) Location() *time.Location { return z.loc }

// OffsetNanosecondsFor returns the offset in effect at epochNano. IANA
// offsets are whole seconds.
func (z *Named) OffsetNanosecondsFor(epochNano nano.Nano) int64 {
	sec := epochNano.DivFloor(nano.NanoInSecond)
	_, off := time.Unix(sec.Int64(), 0).In(z.loc).Zone()
	return int64(off) * nano.NanoInSecond
}

// PossibleInstantsFor returns the instants whose local date-time is dt. The
// offsets a day before and a day after bound the candidates, and each is
// kept only if its own offset confirms it.
func (z *Named) PossibleInstantsFor(dt iso.DateTime) []nano.Nano {
	local := iso.DateTimeToEpochNano(dt)
	before := z.OffsetNanosecondsFor(local.AddInt(-nano.NanoInDay))
	after := z.OffsetNanosecondsFor(local.AddInt(nano.NanoInDay))
	offsets := []int64{before}
	if after != before {
		offsets = append(offsets, after)
	}

	var out []nano.Nano
	for _, off := range offsets {
		cand := local.AddInt(-off)
		if z.OffsetNanosecondsFor(cand) == off {
			out = append(out, cand)
		}
	}
	return out
}

// FormatOffset formats an offset in nanoseconds as ±HH:MM, adding :SS and a
// fraction only when needed.
func FormatOffset(offset int64) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := offset / nano.NanoInHour
	minutes := offset % nano.NanoInHour / nano.NanoInMinute
	seconds := offset % nano.NanoInMinute / nano.NanoInSecond
	frac := offset % nano.NanoInSecond

	s := fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
	switch {
	case frac != 0:
		s += strings.TrimRight(fmt.Sprintf(":%02d.%09d", seconds, frac), "0")
	case seconds != 0:
		s += fmt.Sprintf(":%02d", seconds)
	}
	return s
}

// ParseOffset parses ±HH, ±HHMM, ±HH:MM, ±HH:MM:SS and ±HH:MM:SS.fffffffff
// offsets into nanoseconds.
func ParseOffset(s string) (int64, error) {
	bad := fmt.Errorf("%w: invalid offset %q", errs.ErrRange, s)
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return 0, bad
	}
	sign := int64(1)
	if s[0] == '-' {
		sign = -1
	}
	rest := s[1:]

	var parts []string
	if strings.Contains(rest, ":") {
		parts = strings.Split(rest, ":")
	} else {
		for len(rest) > 0 {
			n := min(2, len(rest))
			if strings.HasPrefix(rest, ".") || len(parts) == 2 {
				n = len(rest)
			}
			parts = append(parts, rest[:n])
			rest = rest[n:]
		}
	}
	if len(parts) > 3 {
		return 0, bad
	}

	var total int64
	units := []int64{nano.NanoInHour, nano.NanoInMinute, nano.NanoInSecond}
	for i, p := range parts {
		whole, frac, hasFrac := strings.Cut(p, ".")
		if len(whole) != 2 || (hasFrac && i != 2) {
			return 0, bad
		}
		v, err := strconv.Atoi(whole)
		if err != nil || (i == 0 && v > 23) || (i > 0 && v > 59) {
			return 0, bad
		}
		total += int64(v) * units[i]
		if hasFrac {
			if frac == "" || len(frac) > 9 {
				return 0, bad
			}
			f, err := strconv.ParseInt(frac, 10, 64)
			if err != nil || f < 0 {
				return 0, bad
			}
			total += f * int64(math.Pow10(9-len(frac)))
		}
	}
	return sign * total, nil
}
