package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/theory/temporal"
	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/internal/isotext"
	"github.com/theory/temporal/round"
	"github.com/theory/temporal/tz"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand(opts *RootOptions) *cobra.Command {
	var toZone, toCalendar string
	cmd := &cobra.Command{
		Use:   "convert <date-time>",
		Short: "Show an instant in another time zone or calendar",
		Long: `Show the instant identified by a date-time in another time zone or
calendar. Plain dates and date-times are interpreted in the default time
zone.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) (fmt.Stringer, error) {
			disambig, err := opts.disambiguation()
			if err != nil {
				return nil, err
			}
			p, err := opts.parseInstant(cmd.Context(), args[0], disambig)
			if err != nil {
				return nil, err
			}
			if toZone != "" {
				if p.zone, err = tz.Get(toZone); err != nil {
					return nil, err
				}
			}
			if toCalendar != "" {
				if p.cal, err = calendar.Get(toCalendar); err != nil {
					return nil, err
				}
			}
			return text{p.String()}, nil
		}),
	}
	cmd.Flags().StringVar(&toZone, "to-zone", "", "time zone to convert to")
	cmd.Flags().StringVar(&toCalendar, "to-calendar", "", "calendar to convert to")
	cmd.Flags().StringVar(&opts.Settings.Disambiguation, "disambiguation", "", "compatible, earlier, later, or reject")
	return cmd
}

// day describes the wall-clock day containing an instant.
type day struct {
	Start      string  `json:"start"      yaml:"start"`
	HoursInDay float64 `json:"hoursInDay" yaml:"hoursInDay"`
}

func (d day) String() string {
	return "start: " + d.Start + "\nhoursInDay: " + strconv.FormatFloat(d.HoursInDay, 'f', -1, 64)
}

// NewDayCommand creates the day command.
func NewDayCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day <date-time>",
		Short: "Show the start and length of a wall-clock day",
		Long: `Show the first instant and the length in hours of the wall-clock day
containing a date-time in its time zone, or in the default time zone for
plain values. Days are 24 hours long except across offset transitions.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) (fmt.Stringer, error) {
			disambig, err := opts.disambiguation()
			if err != nil {
				return nil, err
			}
			p, err := opts.parseInstant(cmd.Context(), args[0], disambig)
			if err != nil {
				return nil, err
			}
			start, err := temporal.StartOfDay(p.zone, p.epoch)
			if err != nil {
				return nil, err
			}
			hours, err := temporal.HoursInDay(p.zone, p.epoch)
			if err != nil {
				return nil, err
			}
			p.epoch = start
			return day{Start: p.String(), HoursInDay: hours}, nil
		}),
	}
	cmd.Flags().StringVar(&opts.Settings.Disambiguation, "disambiguation", "", "compatible, earlier, later, or reject")
	return cmd
}

// epoch lists an instant in epoch units.
type epoch struct {
	Instant      string `json:"instant"      yaml:"instant"`
	Seconds      int64  `json:"seconds"      yaml:"seconds"`
	Milliseconds int64  `json:"milliseconds" yaml:"milliseconds"`
	Microseconds int64  `json:"microseconds" yaml:"microseconds"`

	// Nanoseconds may exceed the int64 range, so it is a string.
	Nanoseconds string `json:"nanoseconds" yaml:"nanoseconds"`
}

func (e epoch) String() string {
	return "instant: " + e.Instant +
		"\nseconds: " + strconv.FormatInt(e.Seconds, 10) +
		"\nmilliseconds: " + strconv.FormatInt(e.Milliseconds, 10) +
		"\nmicroseconds: " + strconv.FormatInt(e.Microseconds, 10) +
		"\nnanoseconds: " + e.Nanoseconds
}

// NewEpochCommand creates the epoch command.
func NewEpochCommand(opts *RootOptions) *cobra.Command {
	var (
		smallest string
		inc      int64
	)
	cmd := &cobra.Command{
		Use:   "epoch <date-time>",
		Short: "Show an instant as time since the Unix epoch",
		Long: `Show the instant identified by a date-time as seconds, milliseconds,
microseconds and nanoseconds since 1970-01-01T00:00:00Z. With
--smallest-unit, first round the instant to a unit no larger than an hour.
Plain values are interpreted in the default time zone.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string) (fmt.Stringer, error) {
			disambig, err := opts.disambiguation()
			if err != nil {
				return nil, err
			}
			p, err := opts.parseInstant(cmd.Context(), args[0], disambig)
			if err != nil {
				return nil, err
			}
			n := p.epoch
			if smallest != "" {
				u, err := duration.ParseUnit(smallest)
				if err != nil {
					return nil, err
				}
				mode, err := opts.roundingMode(round.HalfExpand)
				if err != nil {
					return nil, err
				}
				if n, err = temporal.RoundEpochNano(n, u, inc, mode); err != nil {
					return nil, err
				}
			}
			return epoch{
				Instant:      isotext.FormatInstant(n),
				Seconds:      temporal.EpochSeconds(n),
				Milliseconds: temporal.EpochMilliseconds(n),
				Microseconds: temporal.EpochMicroseconds(n),
				Nanoseconds:  n.String(),
			}, nil
		}),
	}
	cmd.Flags().StringVar(&smallest, "smallest-unit", "", "unit to round the instant to")
	cmd.Flags().Int64Var(&inc, "increment", 1, "rounding increment in smallest units")
	cmd.Flags().StringVar(&opts.Settings.RoundingMode, "rounding-mode", "", "rounding mode, such as halfExpand or floor")
	cmd.Flags().StringVar(&opts.Settings.Disambiguation, "disambiguation", "", "compatible, earlier, later, or reject")
	return cmd
}

// NewNowCommand creates the now command.
func NewNowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Show the current date and time",
		Long:  `Show the current date and time in the default time zone and calendar.`,
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, _ []string) (fmt.Stringer, error) {
			cal, err := opts.calendar()
			if err != nil {
				return nil, err
			}
			p := &point{cal: cal, zone: tz.FromContext(cmd.Context()), epoch: temporal.Now(), hasTime: true}
			return text{p.String()}, nil
		}),
	}
}
