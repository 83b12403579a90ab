package tz

import (
	"fmt"
	"strings"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/round"
)

// Disambiguation selects an instant for a wall-clock time that occurs
// twice (an overlap) or not at all (a gap).
type Disambiguation uint8

const (
	// Compatible picks the earlier instant in an overlap and the later one
	// in a gap, moving the wall-clock time forward by the gap length.
	Compatible Disambiguation = iota

	// Earlier picks the earlier instant, moving backward across a gap.
	Earlier

	// Later picks the later instant, moving forward across a gap.
	Later

	// Reject fails on overlaps and gaps.
	Reject
)

//nolint:gochecknoglobals
var disambiguationNames = [...]string{
	Compatible: "compatible",
	Earlier:    "earlier",
	Later:      "later",
	Reject:     "reject",
}

// String returns the option name of d.
func (d Disambiguation) String() string {
	if int(d) < len(disambiguationNames) {
		return disambiguationNames[d]
	}
	return "UNKNOWN_DISAMBIGUATION"
}

// ParseDisambiguation parses a disambiguation name, ignoring case. The
// empty string means Compatible.
func ParseDisambiguation(s string) (Disambiguation, error) {
	if s == "" {
		return Compatible, nil
	}
	for i, name := range disambiguationNames {
		if strings.EqualFold(name, s) {
			return Disambiguation(i), nil
		}
	}
	return Compatible, fmt.Errorf("%w: invalid disambiguation %q", errs.ErrRange, s)
}

// OffsetDisambiguation determines how an offset recorded alongside a
// wall-clock time is reconciled with the zone.
type OffsetDisambiguation uint8

const (
	// UseOffset trusts the recorded offset.
	UseOffset OffsetDisambiguation = iota

	// IgnoreOffset discards the recorded offset.
	IgnoreOffset

	// PreferOffset uses the recorded offset if it is valid for the zone,
	// and otherwise disambiguates.
	PreferOffset

	// RejectOffset fails unless the recorded offset is valid for the zone.
	RejectOffset
)

//nolint:gochecknoglobals
var offsetNames = [...]string{
	UseOffset:    "use",
	IgnoreOffset: "ignore",
	PreferOffset: "prefer",
	RejectOffset: "reject",
}

// String returns the option name of o.
func (o OffsetDisambiguation) String() string {
	if int(o) < len(offsetNames) {
		return offsetNames[o]
	}
	return "UNKNOWN_OFFSET_DISAMBIGUATION"
}

// ParseOffsetDisambiguation parses an offset option name, ignoring case.
// The empty string means RejectOffset.
func ParseOffsetDisambiguation(s string) (OffsetDisambiguation, error) {
	if s == "" {
		return RejectOffset, nil
	}
	for i, name := range offsetNames {
		if strings.EqualFold(name, s) {
			return OffsetDisambiguation(i), nil
		}
	}
	return RejectOffset, fmt.Errorf("%w: invalid offset option %q", errs.ErrRange, s)
}

// SingleInstant resolves dt in z to one instant according to d.
func SingleInstant(z Ops, dt iso.DateTime, d Disambiguation) (nano.Nano, error) {
	if err := iso.CheckDateTimeInBounds(dt); err != nil {
		return nano.Nano{}, err
	}
	cands, err := PossibleInstants(z, dt)
	if err != nil {
		return nano.Nano{}, err
	}

	switch {
	case len(cands) == 1:
		return nano.Checked(cands[0])
	case len(cands) > 1:
		switch d {
		case Compatible, Earlier:
			return nano.Checked(cands[0])
		case Later:
			return nano.Checked(cands[len(cands)-1])
		default:
			return nano.Nano{}, fmt.Errorf("%w: %v is ambiguous in %v", errs.ErrRange, dt, z.ID())
		}
	}

	if d == Reject {
		return nano.Nano{}, fmt.Errorf("%w: %v does not exist in %v", errs.ErrRange, dt, z.ID())
	}

	// In a gap. Shift the wall-clock time by the size of the gap and take
	// the instant on the far side.
	local := iso.DateTimeToEpochNano(dt)
	before, err := Offset(z, local.AddInt(-nano.NanoInDay))
	if err != nil {
		return nano.Nano{}, err
	}
	after, err := Offset(z, local.AddInt(nano.NanoInDay))
	if err != nil {
		return nano.Nano{}, err
	}
	gap := after - before
	if d == Earlier {
		gap = -gap
	}
	shifted := shift(dt, gap)
	if err := iso.CheckDateTimeInBounds(shifted); err != nil {
		return nano.Nano{}, err
	}
	if cands, err = PossibleInstants(z, shifted); err != nil {
		return nano.Nano{}, err
	}
	switch {
	case len(cands) == 0:
		return nano.Nano{}, fmt.Errorf("%w: no instant for %v in %v", errs.ErrInvalidTimeZoneResult, dt, z.ID())
	case d == Earlier:
		return nano.Checked(cands[0])
	default:
		return nano.Checked(cands[len(cands)-1])
	}
}

// Option configures [MatchingInstant].
type Option func(*matchConfig)

type matchConfig struct {
	fuzzy bool
}

// WithFuzzy lets an offset rounded to the minute match a zone offset with
// seconds, as for offsets recorded in minute-precision text.
func WithFuzzy() Option {
	return func(c *matchConfig) { c.fuzzy = true }
}

// MatchingInstant resolves dt in z given an optional recorded offset. With
// no offset, or with IgnoreOffset, it behaves like [SingleInstant].
// UseOffset computes the instant from the offset alone. PreferOffset and
// RejectOffset pick the candidate whose offset matches, falling back to d
// or failing respectively.
func MatchingInstant(
	z Ops,
	dt iso.DateTime,
	offset *int64,
	o OffsetDisambiguation,
	d Disambiguation,
	opts ...Option,
) (nano.Nano, error) {
	if offset == nil || o == IgnoreOffset {
		return SingleInstant(z, dt, d)
	}
	if o == UseOffset {
		if err := iso.CheckDateTimeInBounds(dt); err != nil {
			return nano.Nano{}, err
		}
		return nano.Checked(iso.DateTimeToEpochNano(dt).AddInt(-*offset))
	}

	var cfg matchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := iso.CheckDateTimeInBounds(dt); err != nil {
		return nano.Nano{}, err
	}
	cands, err := PossibleInstants(z, dt)
	if err != nil {
		return nano.Nano{}, err
	}
	for _, cand := range cands {
		off, err := Offset(z, cand)
		if err != nil {
			return nano.Nano{}, err
		}
		if off == *offset || (cfg.fuzzy && round.Int(off, nano.NanoInMinute, round.HalfExpand) == *offset) {
			return nano.Checked(cand)
		}
	}

	if o == RejectOffset {
		return nano.Nano{}, fmt.Errorf("%w: offset %v is invalid for %v in %v",
			errs.ErrRange, FormatOffset(*offset), dt, z.ID())
	}
	return SingleInstant(z, dt, d)
}
