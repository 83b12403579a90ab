// Package tz maps between exact instants and wall-clock date-times in a
// time zone, resolving the ambiguity of offset transitions.
//
// A zone is anything implementing [Ops]. The package provides fixed-offset
// zones and named zones backed by the IANA database loaded through
// [time.LoadLocation]. The free functions validate what a zone returns, so
// callers may supply their own implementations.
package tz

import (
	"fmt"
	"slices"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
)

// Ops is the capability set of a time zone.
type Ops interface {
	// ID returns the zone identifier, such as "America/New_York" or
	// "+05:30".
	ID() string

	// OffsetNanosecondsFor returns the UTC offset in effect at an instant.
	OffsetNanosecondsFor(epochNano nano.Nano) int64

	// PossibleInstantsFor returns the instants whose local date-time is dt:
	// one normally, two in an overlap and none in a gap.
	PossibleInstantsFor(dt iso.DateTime) []nano.Nano
}

// Offset returns the offset of z at epochNano, failing with
// [errs.ErrInvalidTimeZoneResult] unless it is less than a day in
// magnitude.
func Offset(z Ops, epochNano nano.Nano) (int64, error) {
	off := z.OffsetNanosecondsFor(epochNano)
	if off <= -nano.NanoInDay || off >= nano.NanoInDay {
		return 0, fmt.Errorf("%w: offset %d for %v", errs.ErrInvalidTimeZoneResult, off, z.ID())
	}
	return off, nil
}

// PossibleInstants returns the sorted candidate instants of dt in z. The
// candidates must lie within a day of each other, or it fails with
// [errs.ErrInvalidTimeZoneResult].
func PossibleInstants(z Ops, dt iso.DateTime) ([]nano.Nano, error) {
	cands := slices.Clone(z.PossibleInstantsFor(dt))
	slices.SortFunc(cands, nano.Nano.Compare)
	if len(cands) > 1 {
		span := cands[len(cands)-1].Sub(cands[0])
		if span.Compare(nano.New(nano.NanoInDay)) > 0 {
			return nil, fmt.Errorf("%w: candidates for %v in %v span %v nanoseconds",
				errs.ErrInvalidTimeZoneResult, dt, z.ID(), span)
		}
	}
	return cands, nil
}

// EpochNanoToDateTime returns the wall-clock date-time of epochNano in z.
func EpochNanoToDateTime(z Ops, epochNano nano.Nano) (iso.DateTime, error) {
	off, err := Offset(z, epochNano)
	if err != nil {
		return iso.DateTime{}, err
	}
	return iso.EpochNanoToDateTime(epochNano.AddInt(off)), nil
}

// Same returns true if a and b are the same zone.
func Same(a, b Ops) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.ID() == b.ID()
}

// shift returns dt moved by n nanoseconds.
func shift(dt iso.DateTime, n int64) iso.DateTime {
	t, days := iso.AddTimeNano(dt.Time, nano.New(n))
	return iso.DateTime{Date: iso.AddDays(dt.Date, days), Time: t}
}
