// Package relative moves and diffs anchored date-times by durations and
// uses them to add, compare, round and total durations whose calendar
// units have no fixed length.
//
// A [Marker] is the anchor: either a [PlainMarker], a calendar date-time
// with no time zone whose days are always 24 hours, or a [ZonedMarker], an
// exact instant viewed in a time zone whose days may be 23 or 25 hours
// long across offset transitions.
package relative

import (
	"fmt"

	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/internal/log"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/tz"
)

// Marker is a point on the timeline with enough context to move it by a
// duration and to measure the duration between it and another marker of
// the same kind.
type Marker interface {
	// Calendar returns the calendar that interprets years, months and
	// weeks.
	Calendar() calendar.Ops

	// EpochNano returns the marker's position as epoch nanoseconds. Plain
	// markers treat their wall-clock time as UTC.
	EpochNano() nano.Nano

	// Move returns the marker moved by d.
	Move(d duration.Fields) (Marker, error)

	// Diff returns the duration from the marker to end in units no larger
	// than largest, such that Move(Diff(end)) is end.
	Diff(end Marker, largest duration.Unit) (duration.Fields, error)

	// UniformDays returns true if every day spans exactly 24 hours.
	UniformDays() bool
}

var (
	_ Marker = PlainMarker{}
	_ Marker = ZonedMarker{}
)

// PlainMarker anchors durations to a calendar date and wall-clock time.
type PlainMarker struct {
	cal calendar.Ops
	dt  iso.DateTime
}

// Plain returns a marker for dt in cal.
func Plain(cal calendar.Ops, dt iso.DateTime) PlainMarker {
	return PlainMarker{cal: cal, dt: dt}
}

// DateTime returns the marker's ISO date-time.
func (m PlainMarker) DateTime() iso.DateTime { return m.dt }

// Calendar returns the marker's calendar.
func (m PlainMarker) Calendar() calendar.Ops { return m.cal }

// EpochNano returns the epoch nanoseconds of the marker's date-time in
// UTC.
func (m PlainMarker) EpochNano() nano.Nano { return iso.DateTimeToEpochNano(m.dt) }

// UniformDays returns true.
func (PlainMarker) UniformDays() bool { return true }

// String returns the ISO date-time.
func (m PlainMarker) String() string { return m.dt.String() }

// Move adds the time portion of d to the wall-clock time, carries whole
// days into the date portion, and adds that with the calendar, constraining
// the day of month.
func (m PlainMarker) Move(d duration.Fields) (Marker, error) {
	t, carry := iso.AddTimeNano(m.dt.Time, duration.TimeNano(d))
	dd := d.DateOnly()
	dd.Days += carry
	date, err := m.cal.DateAdd(m.dt.Date, dd, iso.Constrain)
	if err != nil {
		return nil, err
	}
	dt := iso.DateTime{Date: date, Time: t}
	if err := iso.CheckDateTimeInBounds(dt); err != nil {
		return nil, err
	}
	return PlainMarker{cal: m.cal, dt: dt}, nil
}

// Diff returns the duration from m to end, which must be a PlainMarker in
// the same calendar.
func (m PlainMarker) Diff(end Marker, largest duration.Unit) (duration.Fields, error) {
	e, ok := end.(PlainMarker)
	if !ok {
		return duration.Fields{}, fmt.Errorf("%w: cannot diff plain marker with %T", errs.ErrInvalid, end)
	}
	if m.cal.ID() != e.cal.ID() {
		return duration.Fields{}, fmt.Errorf("%w: %v and %v", errs.ErrIncompatibleCalendars, m.cal.ID(), e.cal.ID())
	}
	if largest < duration.Day {
		return duration.FromDayTimeNano(e.EpochNano().Sub(m.EpochNano()), largest)
	}

	// Borrow a day from the date when the times run against the dates.
	timeNano := iso.TimeToNano(e.dt.Time) - iso.TimeToNano(m.dt.Time)
	endDate := e.dt.Date
	timeSign := sign64(timeNano)
	if dateSign := iso.CompareDates(e.dt.Date, m.dt.Date); dateSign != 0 && timeSign == -dateSign {
		endDate = iso.AddDays(endDate, int64(timeSign))
		timeNano -= int64(timeSign) * nano.NanoInDay
	}

	dateDiff, err := m.cal.DateUntil(m.dt.Date, endDate, largest)
	if err != nil {
		return duration.Fields{}, err
	}
	return combine(dateDiff, nano.New(timeNano))
}

// ZonedMarker anchors durations to an exact instant in a time zone.
type ZonedMarker struct {
	cal   calendar.Ops
	zone  tz.Ops
	epoch nano.Nano
}

// Zoned returns a marker for epochNano viewed in zone with cal.
func Zoned(cal calendar.Ops, zone tz.Ops, epochNano nano.Nano) ZonedMarker {
	return ZonedMarker{cal: cal, zone: zone, epoch: epochNano}
}

// Calendar returns the marker's calendar.
func (m ZonedMarker) Calendar() calendar.Ops { return m.cal }

// Zone returns the marker's time zone.
func (m ZonedMarker) Zone() tz.Ops { return m.zone }

// EpochNano returns the marker's instant.
func (m ZonedMarker) EpochNano() nano.Nano { return m.epoch }

// UniformDays returns false: days in a time zone vary in length.
func (ZonedMarker) UniformDays() bool { return false }

// DateTime returns the wall-clock date-time of the marker in its zone.
func (m ZonedMarker) DateTime() (iso.DateTime, error) {
	return tz.EpochNanoToDateTime(m.zone, m.epoch)
}

// Move adds the calendar portion of d in wall-clock time, resolves the
// result back to an instant with [tz.Compatible] disambiguation, and then
// adds the time portion as exact nanoseconds.
func (m ZonedMarker) Move(d duration.Fields) (Marker, error) {
	epoch := m.epoch
	if d.HasDate() {
		dt, err := m.DateTime()
		if err != nil {
			return nil, err
		}
		date, err := m.cal.DateAdd(dt.Date, d.DateOnly(), iso.Constrain)
		if err != nil {
			return nil, err
		}
		if epoch, err = tz.SingleInstant(m.zone, iso.DateTime{Date: date, Time: dt.Time}, tz.Compatible); err != nil {
			return nil, err
		}
	}
	epoch, err := nano.Checked(epoch.Add(duration.TimeNano(d)))
	if err != nil {
		return nil, err
	}
	return ZonedMarker{cal: m.cal, zone: m.zone, epoch: epoch}, nil
}

// Diff returns the duration from m to end, which must be a ZonedMarker in
// the same zone and calendar. Below days the result is exact. Otherwise
// the date portion runs to the last wall-clock day at m's time of day that
// does not pass end, and the rest is exact nanoseconds.
func (m ZonedMarker) Diff(end Marker, largest duration.Unit) (duration.Fields, error) {
	e, ok := end.(ZonedMarker)
	if !ok {
		return duration.Fields{}, fmt.Errorf("%w: cannot diff zoned marker with %T", errs.ErrInvalid, end)
	}
	if m.cal.ID() != e.cal.ID() {
		return duration.Fields{}, fmt.Errorf("%w: %v and %v", errs.ErrIncompatibleCalendars, m.cal.ID(), e.cal.ID())
	}

	diff := e.epoch.Sub(m.epoch)
	if largest < duration.Day {
		return duration.FromDayTimeNano(diff, largest)
	}
	if !tz.Same(m.zone, e.zone) {
		return duration.Fields{}, fmt.Errorf("%w: %v and %v", errs.ErrIncompatibleTimeZones, m.zone.ID(), e.zone.ID())
	}
	sign := diff.Sign()
	if sign == 0 {
		return duration.Fields{}, nil
	}

	start, err := m.DateTime()
	if err != nil {
		return duration.Fields{}, err
	}
	stop, err := e.DateTime()
	if err != nil {
		return duration.Fields{}, err
	}

	correction := 0
	if sign64(iso.TimeToNano(stop.Time)-iso.TimeToNano(start.Time)) == -sign {
		correction++
	}
	maxCorrection := 1
	if sign > 0 {
		maxCorrection = 2
	}

	for ; correction <= maxCorrection; correction++ {
		mid := iso.DateTime{
			Date: iso.AddDays(stop.Date, int64(-correction*sign)),
			Time: start.Time,
		}
		midNano, err := tz.SingleInstant(m.zone, mid, tz.Compatible)
		if err != nil {
			return duration.Fields{}, err
		}
		rest := e.epoch.Sub(midNano)
		if rest.Sign() == -sign {
			continue
		}
		if correction > 1 {
			log.Logger().Debug("zoned diff day correction",
				"zone", m.zone.ID(), "start", start.String(), "end", stop.String(), "correction", correction)
		}
		dateDiff, err := m.cal.DateUntil(start.Date, mid.Date, largest)
		if err != nil {
			return duration.Fields{}, err
		}
		return combine(dateDiff, rest)
	}

	return duration.Fields{}, fmt.Errorf(
		"%w: no intermediate day between %v and %v in %v",
		errs.ErrInvalidTimeZoneResult, start, stop, m.zone.ID(),
	)
}

// combine adds exact time nanoseconds, balanced up to hours, to a date
// duration.
func combine(date duration.Fields, timeNano nano.Nano) (duration.Fields, error) {
	t, err := duration.FromDayTimeNano(timeNano, duration.Hour)
	if err != nil {
		return duration.Fields{}, err
	}
	t.Years, t.Months, t.Weeks, t.Days = date.Years, date.Months, date.Weeks, date.Days
	return duration.NormalizeSign(t)
}

func sign64(n int64) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
