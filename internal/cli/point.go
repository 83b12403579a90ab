package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/internal/isotext"
	"github.com/theory/temporal/internal/log"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/relative"
	"github.com/theory/temporal/tz"
)

// point is a parsed date, date-time, or zoned date-time argument.
type point struct {
	cal     calendar.Ops
	dt      iso.DateTime
	hasTime bool

	// zone is nil for plain dates and date-times. Strings with an offset or
	// "Z" but no zone annotation are exact instants in a fixed zone.
	zone  tz.Ops
	epoch nano.Nano
}

// parsePoint parses s. The calendar annotation, if any, overrides the
// default calendar; zoned wall-clock times resolve with disambig, and an
// offset that does not match the zone is an error.
func (o *RootOptions) parsePoint(s string, disambig tz.Disambiguation) (*point, error) {
	parsed, err := isotext.ParseDateTime(s)
	if err != nil {
		return nil, err
	}

	p := &point{dt: parsed.DateTime, hasTime: parsed.HasTime}
	if parsed.Calendar != "" {
		p.cal, err = calendar.Get(parsed.Calendar)
	} else {
		p.cal, err = o.calendar()
	}
	if err != nil {
		return nil, err
	}

	switch {
	case parsed.Zone != "":
		if p.zone, err = tz.Get(parsed.Zone); err != nil {
			return nil, err
		}
		if parsed.UTC {
			var utc int64
			p.epoch, err = tz.MatchingInstant(p.zone, p.dt, &utc, tz.UseOffset, disambig)
		} else {
			var opts []tz.Option
			if parsed.Offset != nil && *parsed.Offset%nano.NanoInMinute == 0 {
				opts = append(opts, tz.WithFuzzy())
			}
			p.epoch, err = tz.MatchingInstant(p.zone, p.dt, parsed.Offset, tz.RejectOffset, disambig, opts...)
		}
	case parsed.UTC:
		p.zone = tz.UTC()
		p.epoch, err = tz.SingleInstant(p.zone, p.dt, tz.Reject)
	case parsed.Offset != nil:
		if p.zone, err = tz.NewFixed(*parsed.Offset); err != nil {
			return nil, err
		}
		p.epoch, err = tz.SingleInstant(p.zone, p.dt, tz.Reject)
	}
	if err != nil {
		return nil, err
	}
	if p.zone != nil {
		// Use the wall-clock time the instant actually has, which differs
		// from the input in a gap.
		if p.dt, err = tz.EpochNanoToDateTime(p.zone, p.epoch); err != nil {
			return nil, err
		}
		p.hasTime = true
	}

	log.Logger().Debug("parsed", slog.String("input", s), slog.String("as", p.String()))
	return p, nil
}

// parseInstant parses s as an exact instant. A plain date or date-time is
// interpreted in the default time zone from ctx.
func (o *RootOptions) parseInstant(ctx context.Context, s string, disambig tz.Disambiguation) (*point, error) {
	p, err := o.parsePoint(s, disambig)
	if err != nil {
		return nil, err
	}
	if p.zone == nil {
		p.zone = tz.FromContext(ctx)
		if p.epoch, err = tz.SingleInstant(p.zone, p.dt, disambig); err != nil {
			return nil, err
		}
		if p.dt, err = tz.EpochNanoToDateTime(p.zone, p.epoch); err != nil {
			return nil, err
		}
		p.hasTime = true
	}
	return p, nil
}

// marker returns the relative.Marker anchored at p.
func (p *point) marker() relative.Marker {
	if p.zone != nil {
		return relative.Zoned(p.cal, p.zone, p.epoch)
	}
	return relative.Plain(p.cal, p.dt)
}

// at returns a point in the same calendar and zone as p at the position of
// m.
func (p *point) at(m relative.Marker) (*point, error) {
	res := &point{cal: p.cal, hasTime: p.hasTime, zone: p.zone}
	switch m := m.(type) {
	case relative.PlainMarker:
		res.dt = m.DateTime()
	case relative.ZonedMarker:
		dt, err := m.DateTime()
		if err != nil {
			return nil, err
		}
		res.dt, res.epoch = dt, m.EpochNano()
	default:
		return nil, fmt.Errorf("%w: unexpected marker %T", errs.ErrInvalid, m)
	}
	return res, nil
}

// String formats p the way it was parsed: a date, a date-time, or a zoned
// date-time with offset and annotations.
func (p *point) String() string {
	switch {
	case p.zone != nil:
		s, err := isotext.FormatZoned(p.zone, p.epoch, p.cal.ID())
		if err != nil {
			return p.dt.String()
		}
		return s
	case p.hasTime:
		return isotext.FormatDateTime(p.dt, p.cal.ID())
	default:
		return isotext.FormatDate(p.dt.Date, p.cal.ID())
	}
}

// relativeTo parses the --relative-to flag value, if any.
func (o *RootOptions) relativeTo(s string) (relative.Marker, error) {
	if s == "" {
		return nil, nil //nolint:nilnil
	}
	disambig, err := o.disambiguation()
	if err != nil {
		return nil, err
	}
	p, err := o.parsePoint(s, disambig)
	if err != nil {
		return nil, err
	}
	return p.marker(), nil
}
