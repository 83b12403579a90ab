package relative

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/nano"
	"github.com/theory/temporal/round"
	"github.com/theory/temporal/tz"
)

// 1950-01-01 through 2099-12-31, which spans plenty of DST rule changes.
const (
	minDay = -7305
	maxDay = 47481
)

func units() gopter.Gen {
	return gen.OneConstOf(
		duration.Hour, duration.Day, duration.Week, duration.Month, duration.Year,
	)
}

func TestMarkerProperties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)
	zone := tz.MustGet("America/New_York")

	properties.Property("plain move inverts diff", prop.ForAll(
		func(d0, d1, t0, t1 int64, largest duration.Unit) bool {
			start := Plain(calendar.ISO(), iso.DateTime{
				Date: iso.DateFromEpochDays(d0),
				Time: timeOf(t0),
			})
			end := Plain(calendar.ISO(), iso.DateTime{
				Date: iso.DateFromEpochDays(d1),
				Time: timeOf(t1),
			})
			diff, err := start.Diff(end, largest)
			if err != nil {
				return false
			}
			back, err := start.Move(diff)
			return err == nil && back.(PlainMarker).DateTime() == end.DateTime()
		},
		gen.Int64Range(minDay, maxDay),
		gen.Int64Range(minDay, maxDay),
		gen.Int64Range(0, nano.NanoInDay-1),
		gen.Int64Range(0, nano.NanoInDay-1),
		units(),
	))

	properties.Property("zoned move inverts diff", prop.ForAll(
		func(n0, n1 int64, largest duration.Unit) bool {
			start := Zoned(calendar.ISO(), zone, nano.FromDayNano(0, n0))
			end := Zoned(calendar.ISO(), zone, nano.FromDayNano(0, n1))
			diff, err := start.Diff(end, largest)
			if err != nil {
				return false
			}
			if _, err := duration.NormalizeSign(diff); err != nil {
				return false
			}
			back, err := start.Move(diff)
			return err == nil && back.EpochNano().Equal(end.EpochNano())
		},
		gen.Int64Range(minDay*nano.NanoInDay, maxDay*nano.NanoInDay),
		gen.Int64Range(minDay*nano.NanoInDay, maxDay*nano.NanoInDay),
		units(),
	))

	properties.Property("rounding is idempotent", prop.ForAll(
		func(days, months int64, smallest duration.Unit) bool {
			m := Plain(calendar.ISO(), iso.DateTime{Date: iso.Date{Year: 2024, Month: 1, Day: 31}})
			opts := RoundOptions{Largest: duration.Year, Smallest: smallest, Mode: round.HalfEven}
			once, err := Round(duration.Fields{Months: months, Days: days}, opts, m)
			if err != nil {
				return false
			}
			twice, err := Round(once, opts, m)
			return err == nil && twice == once
		},
		gen.Int64Range(0, 400),
		gen.Int64Range(0, 30),
		gen.OneConstOf(duration.Day, duration.Month, duration.Year),
	))

	properties.TestingRun(t)
}

func timeOf(n int64) iso.Time {
	t, _ := iso.TimeFromNano(n)
	return t
}
