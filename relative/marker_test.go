package relative

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/tz"
)

func wall(y, mo, d, h, mi int) iso.DateTime {
	return iso.DateTime{
		Date: iso.Date{Year: y, Month: mo, Day: d},
		Time: iso.Time{Hour: h, Minute: mi},
	}
}

func utcNano(y, mo, d, h, mi int) nano.Nano {
	return nano.New(time.Date(y, time.Month(mo), d, h, mi, 0, 0, time.UTC).UnixNano())
}

func plain(y, mo, d, h, mi int) PlainMarker {
	return Plain(calendar.ISO(), wall(y, mo, d, h, mi))
}

func newYork(y, mo, d, h, mi int) ZonedMarker {
	return Zoned(calendar.ISO(), tz.MustGet("America/New_York"), utcNano(y, mo, d, h, mi))
}

func TestPlainMove(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		start PlainMarker
		dur   duration.Fields
		exp   string
		err   error
	}{
		{
			name:  "constrain_leap",
			start: plain(2024, 1, 31, 12, 0),
			dur:   duration.Fields{Months: 1},
			exp:   "2024-02-29T12:00:00",
		},
		{
			name:  "constrain_common",
			start: plain(2023, 1, 31, 0, 0),
			dur:   duration.Fields{Months: 1},
			exp:   "2023-02-28T00:00:00",
		},
		{
			name:  "time_carry",
			start: plain(2024, 1, 31, 23, 0),
			dur:   duration.Fields{Hours: 2},
			exp:   "2024-02-01T01:00:00",
		},
		{
			name:  "time_borrow",
			start: plain(2024, 3, 1, 1, 0),
			dur:   duration.Fields{Hours: -2},
			exp:   "2024-02-29T23:00:00",
		},
		{
			name:  "carry_after_months",
			start: plain(2024, 1, 31, 12, 0),
			dur:   duration.Fields{Months: 1, Hours: 18},
			exp:   "2024-03-01T06:00:00",
		},
		{
			name:  "weeks",
			start: plain(2024, 1, 1, 0, 0),
			dur:   duration.Fields{Weeks: 2, Days: 5},
			exp:   "2024-01-20T00:00:00",
		},
		{
			name:  "out_of_range",
			start: plain(2024, 1, 1, 0, 0),
			dur:   duration.Fields{Years: 300_000},
			err:   errs.ErrOutOfRange,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			m, err := tc.start.Move(tc.dur)
			if tc.err != nil {
				r.ErrorIs(err, tc.err)
				a.Nil(m)
				return
			}
			r.NoError(err)
			a.Equal(tc.exp, m.(PlainMarker).DateTime().String())
			a.True(m.UniformDays())
		})
	}
}

func TestPlainDiff(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		start   PlainMarker
		end     Marker
		largest duration.Unit
		exp     duration.Fields
		err     error
	}{
		{
			name:    "month_borrow_day",
			start:   plain(2024, 1, 31, 12, 0),
			end:     plain(2024, 3, 1, 6, 0),
			largest: duration.Month,
			exp:     duration.Fields{Months: 1, Hours: 18},
		},
		{
			name:    "days",
			start:   plain(2024, 1, 31, 12, 0),
			end:     plain(2024, 3, 1, 6, 0),
			largest: duration.Day,
			exp:     duration.Fields{Days: 29, Hours: 18},
		},
		{
			name:    "hours",
			start:   plain(2024, 1, 31, 12, 0),
			end:     plain(2024, 3, 1, 6, 0),
			largest: duration.Hour,
			exp:     duration.Fields{Hours: 714},
		},
		{
			name:    "negative",
			start:   plain(2024, 3, 1, 6, 0),
			end:     plain(2024, 1, 31, 12, 0),
			largest: duration.Month,
			exp:     duration.Fields{Months: -1, Hours: -18},
		},
		{
			name:    "weeks",
			start:   plain(2024, 1, 1, 0, 0),
			end:     plain(2024, 1, 20, 0, 0),
			largest: duration.Week,
			exp:     duration.Fields{Weeks: 2, Days: 5},
		},
		{
			name:    "same_day",
			start:   plain(2024, 1, 1, 18, 0),
			end:     plain(2024, 1, 1, 6, 30),
			largest: duration.Year,
			exp:     duration.Fields{Hours: -11, Minutes: -30},
		},
		{
			name:    "leap_day_years",
			start:   plain(2020, 2, 29, 0, 0),
			end:     plain(2021, 3, 1, 0, 0),
			largest: duration.Year,
			exp:     duration.Fields{Years: 1, Days: 1},
		},
		{
			name:    "calendar_mismatch",
			start:   plain(2024, 1, 1, 0, 0),
			end:     Plain(calendar.MustGet(calendar.Gregory), wall(2024, 2, 1, 0, 0)),
			largest: duration.Month,
			err:     errs.ErrIncompatibleCalendars,
		},
		{
			name:    "zoned_end",
			start:   plain(2024, 1, 1, 0, 0),
			end:     newYork(2024, 2, 1, 0, 0),
			largest: duration.Month,
			err:     errs.ErrInvalid,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			diff, err := tc.start.Diff(tc.end, tc.largest)
			if tc.err != nil {
				r.ErrorIs(err, tc.err)
				return
			}
			r.NoError(err)
			a.Equal(tc.exp, diff)

			back, err := tc.start.Move(diff)
			r.NoError(err)
			a.Equal(tc.end, back)
		})
	}
}

func TestZonedMove(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		start ZonedMarker
		dur   duration.Fields
		exp   nano.Nano
		local string
	}{
		{
			// 01:30 EST plus an hour skips the 02:00 gap.
			name:  "hour_across_gap",
			start: newYork(2024, 3, 10, 6, 30),
			dur:   duration.Fields{Hours: 1},
			exp:   utcNano(2024, 3, 10, 7, 30),
			local: "2024-03-10T03:30:00",
		},
		{
			name:  "day_into_gap",
			start: newYork(2024, 3, 9, 7, 30),
			dur:   duration.Fields{Days: 1},
			exp:   utcNano(2024, 3, 10, 7, 30),
			local: "2024-03-10T03:30:00",
		},
		{
			name:  "day_into_overlap",
			start: newYork(2024, 11, 2, 5, 30),
			dur:   duration.Fields{Days: 1},
			exp:   utcNano(2024, 11, 3, 5, 30),
			local: "2024-11-03T01:30:00",
		},
		{
			name:  "day_is_23_hours",
			start: newYork(2024, 3, 9, 17, 0),
			dur:   duration.Fields{Days: 1, Hours: 1},
			exp:   utcNano(2024, 3, 10, 17, 0),
			local: "2024-03-10T13:00:00",
		},
		{
			name:  "month",
			start: newYork(2024, 1, 31, 17, 0),
			dur:   duration.Fields{Months: 1},
			exp:   utcNano(2024, 2, 29, 17, 0),
			local: "2024-02-29T12:00:00",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			m, err := tc.start.Move(tc.dur)
			r.NoError(err)
			a.Equal(tc.exp.String(), m.EpochNano().String())
			a.False(m.UniformDays())
			dt, err := m.(ZonedMarker).DateTime()
			r.NoError(err)
			a.Equal(tc.local, dt.String())
		})
	}
}

func TestZonedDiff(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		start   ZonedMarker
		end     Marker
		largest duration.Unit
		exp     duration.Fields
		err     error
	}{
		{
			name:    "across_gap_days",
			start:   newYork(2024, 3, 9, 17, 0),
			end:     newYork(2024, 3, 11, 5, 0),
			largest: duration.Day,
			exp:     duration.Fields{Days: 1, Hours: 13},
		},
		{
			name:    "across_gap_hours",
			start:   newYork(2024, 3, 9, 17, 0),
			end:     newYork(2024, 3, 11, 5, 0),
			largest: duration.Hour,
			exp:     duration.Fields{Hours: 36},
		},
		{
			name:    "negative",
			start:   newYork(2024, 3, 11, 5, 0),
			end:     newYork(2024, 3, 9, 17, 0),
			largest: duration.Day,
			exp:     duration.Fields{Days: -1, Hours: -13},
		},
		{
			name:    "months",
			start:   newYork(2024, 1, 31, 17, 0),
			end:     newYork(2024, 3, 31, 16, 0),
			largest: duration.Month,
			exp:     duration.Fields{Months: 2},
		},
		{
			name:    "zero",
			start:   newYork(2024, 1, 31, 17, 0),
			end:     newYork(2024, 1, 31, 17, 0),
			largest: duration.Year,
			exp:     duration.Fields{},
		},
		{
			name:    "zone_mismatch",
			start:   newYork(2024, 1, 1, 0, 0),
			end:     Zoned(calendar.ISO(), tz.MustGet("Europe/Paris"), utcNano(2024, 2, 1, 0, 0)),
			largest: duration.Day,
			err:     errs.ErrIncompatibleTimeZones,
		},
		{
			name:    "plain_end",
			start:   newYork(2024, 1, 1, 0, 0),
			end:     plain(2024, 2, 1, 0, 0),
			largest: duration.Day,
			err:     errs.ErrInvalid,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			diff, err := tc.start.Diff(tc.end, tc.largest)
			if tc.err != nil {
				r.ErrorIs(err, tc.err)
				return
			}
			r.NoError(err)
			a.Equal(tc.exp, diff)

			back, err := tc.start.Move(diff)
			r.NoError(err)
			a.Equal(tc.end.EpochNano().String(), back.EpochNano().String())
		})
	}
}

func TestZonedDiffTimeUnitsIgnoreZone(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	start := newYork(2024, 1, 1, 0, 0)
	end := Zoned(calendar.ISO(), tz.UTC(), utcNano(2024, 1, 1, 2, 30))
	diff, err := start.Diff(end, duration.Hour)
	r.NoError(err)
	a.Equal(duration.Fields{Hours: 2, Minutes: 30}, diff)
}

func TestSpan(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	m := plain(2024, 1, 31, 0, 0)
	f, end, err := Span(m, duration.Month, duration.Fields{Months: 1}, duration.Fields{Months: 1})
	r.NoError(err)
	a.Equal(duration.Fields{Months: 1, Days: 29}, f)
	a.Equal("2024-03-29T00:00:00", end.(PlainMarker).DateTime().String())

	_, _, err = Span(m, duration.Month, duration.Fields{Years: 400_000})
	r.ErrorIs(err, errs.ErrOutOfRange)
}
