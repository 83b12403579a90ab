package calendar

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/iso"
)

func builtinIDs() []string {
	return []string{
		ISO8601, Gregory, Japanese, Buddhist, ROC, Coptic, Ethiopic,
		EthiopicAA, Indian, IslamicCivil, IslamicTbla, Persian, Hebrew,
	}
}

func TestRoundTripProperties(t *testing.T) {
	t.Parallel()

	for _, id := range builtinIDs() {
		t.Run(id, func(t *testing.T) {
			t.Parallel()
			cal := MustGet(id)

			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 200
			properties := gopter.NewProperties(parameters)

			properties.Property("fields round-trip", prop.ForAll(
				func(days int64) bool {
					d := iso.DateFromEpochDays(days)
					byCode, err := cal.DateFromFields(Fields{
						Year:      Int(cal.Year(d)),
						MonthCode: cal.MonthCode(d),
						Day:       Int(cal.Day(d)),
					}, iso.Reject)
					if err != nil || byCode != d {
						return false
					}
					byMonth, err := cal.DateFromFields(Fields{
						Year:  Int(cal.Year(d)),
						Month: Int(cal.Month(d)),
						Day:   Int(cal.Day(d)),
					}, iso.Reject)
					return err == nil && byMonth == d
				},
				gen.Int64Range(minEpochDays, maxEpochDays),
			))

			properties.Property("era fields round-trip", prop.ForAll(
				func(days int64) bool {
					d := iso.DateFromEpochDays(days)
					era, ok := cal.Era(d)
					if !ok {
						return true
					}
					eraYear, _ := cal.EraYear(d)
					got, err := cal.DateFromFields(Fields{
						Era:     era,
						EraYear: Int(eraYear),
						Month:   Int(cal.Month(d)),
						Day:     Int(cal.Day(d)),
					}, iso.Reject)
					return err == nil && got == d
				},
				gen.Int64Range(-800_000, 800_000),
			))

			properties.Property("add inverts until", prop.ForAll(
				func(from, to int64, largest duration.Unit) bool {
					d0 := iso.DateFromEpochDays(from)
					d1 := iso.DateFromEpochDays(to)
					diff, err := cal.DateUntil(d0, d1, largest)
					if err != nil {
						return false
					}
					back, err := cal.DateAdd(d0, diff, iso.Constrain)
					return err == nil && back == d1
				},
				gen.Int64Range(-20_000, 40_000),
				gen.Int64Range(-20_000, 40_000),
				gen.OneConstOf(duration.Day, duration.Week, duration.Month, duration.Year),
			))

			properties.Property("until has a uniform sign", prop.ForAll(
				func(from, to int64) bool {
					diff, err := cal.DateUntil(iso.DateFromEpochDays(from), iso.DateFromEpochDays(to), duration.Year)
					if err != nil {
						return false
					}
					s := diff.Sign()
					for _, v := range []int64{diff.Years, diff.Months, diff.Days} {
						if v != 0 && (v > 0) != (s > 0) {
							return false
						}
					}
					return true
				},
				gen.Int64Range(-20_000, 40_000),
				gen.Int64Range(-20_000, 40_000),
			))

			properties.Property("day of year within year", prop.ForAll(
				func(days int64) bool {
					d := iso.DateFromEpochDays(days)
					doy := cal.DayOfYear(d)
					return doy >= 1 && doy <= cal.DaysInYear(d) &&
						cal.Day(d) <= cal.DaysInMonth(d) &&
						cal.Month(d) <= cal.MonthsInYear(d)
				},
				gen.Int64Range(-800_000, 800_000),
			))

			properties.TestingRun(t)
		})
	}
}
