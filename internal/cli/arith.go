package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/internal/isotext"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/relative"
	"github.com/theory/temporal/round"
)

// text is a single-value result.
type text struct {
	Value string `json:"value" yaml:"value"`
}

func (t text) String() string { return t.Value }

// order is the result of a comparison: -1, 0, or 1.
type order struct {
	Order int `json:"order" yaml:"order"`
}

func (o order) String() string { return strconv.Itoa(o.Order) }

// run adapts fn to a cobra RunE function that writes its result or error
// to the command output.
func (o *RootOptions) run(fn func(cmd *cobra.Command, args []string) (fmt.Stringer, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out := o.output(cmd)
		res, err := fn(cmd, args)
		if err != nil {
			return out.Fail(ExitFailure, err)
		}
		return out.Success(res)
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return newAddCommand(opts, "add", "Add a duration to a date or date-time", false)
}

// NewSubtractCommand creates the subtract command.
func NewSubtractCommand(opts *RootOptions) *cobra.Command {
	return newAddCommand(opts, "subtract", "Subtract a duration from a date or date-time", true)
}

func newAddCommand(opts *RootOptions, name, short string, negate bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <date-time> <duration>",
		Short: short,
		Long: short + `.

Years, months and weeks move the calendar date, constraining or rejecting
a day past the end of the resulting month. On a zoned date-time, days move
the wall-clock date and time units move the exact instant, so adding PT24H
and P1D differ across a DST transition.`,
		Args: cobra.ExactArgs(2),
		RunE: opts.run(func(_ *cobra.Command, args []string) (fmt.Stringer, error) {
			return opts.add(args[0], args[1], negate)
		}),
	}
	cmd.Flags().StringVar(&opts.Settings.Overflow, "overflow", "", "constrain or reject a day past the end of the month")
	cmd.Flags().StringVar(&opts.Settings.Disambiguation, "disambiguation", "", "compatible, earlier, later, or reject")
	return cmd
}

func (o *RootOptions) add(start, dur string, negate bool) (fmt.Stringer, error) {
	overflow, err := o.overflow()
	if err != nil {
		return nil, err
	}
	disambig, err := o.disambiguation()
	if err != nil {
		return nil, err
	}
	p, err := o.parsePoint(start, disambig)
	if err != nil {
		return nil, err
	}
	d, err := isotext.ParseDuration(dur)
	if err != nil {
		return nil, err
	}
	if negate {
		d = duration.Negate(d)
	}

	if p.zone == nil && !p.hasTime {
		// Dates take whole days from the time units.
		days, err := duration.FromDayTimeNano(duration.TimeNano(d), duration.Day)
		if err != nil {
			return nil, err
		}
		dd := d.DateOnly()
		dd.Days += days.Days
		if p.dt.Date, err = p.cal.DateAdd(p.dt.Date, dd, overflow); err != nil {
			return nil, err
		}
		if err := iso.CheckDateInBounds(p.dt.Date); err != nil {
			return nil, err
		}
		return text{p.String()}, nil
	}

	if overflow == iso.Reject && d.HasDate() {
		dd := d.DateOnly()
		if p.zone == nil {
			_, carry := iso.AddTimeNano(p.dt.Time, duration.TimeNano(d))
			dd.Days += carry
		}
		if _, err := p.cal.DateAdd(p.dt.Date, dd, iso.Reject); err != nil {
			return nil, err
		}
	}
	m, err := p.marker().Move(d)
	if err != nil {
		return nil, err
	}
	res, err := p.at(m)
	if err != nil {
		return nil, err
	}
	return text{res.String()}, nil
}

// diffFlags are the options shared by commands that compute or round
// durations.
type diffFlags struct {
	largest    string
	smallest   string
	increment  int64
	relativeTo string
}

func (f *diffFlags) bind(cmd *cobra.Command, opts *RootOptions) {
	cmd.Flags().StringVar(&f.largest, "largest-unit", "", "largest unit of the result")
	cmd.Flags().StringVar(&f.smallest, "smallest-unit", "", "smallest unit of the result")
	cmd.Flags().Int64Var(&f.increment, "increment", 1, "rounding increment in smallest units")
	cmd.Flags().StringVar(&opts.Settings.RoundingMode, "rounding-mode", "", "rounding mode, such as halfExpand or trunc")
}

func parseUnit(s string, def duration.Unit) (duration.Unit, error) {
	if s == "" {
		return def, nil
	}
	return duration.ParseUnit(s)
}

// NewUntilCommand creates the until command.
func NewUntilCommand(opts *RootOptions) *cobra.Command {
	flags := &diffFlags{}
	cmd := &cobra.Command{
		Use:   "until <start> <end>",
		Short: "Compute the duration from one date or date-time to another",
		Long: `Compute the duration from start to end.

Both values must be plain, or both zoned in the same time zone, and use the
same calendar. The largest unit defaults to days for plain values and hours
for zoned values. The result is truncated to the smallest unit unless
another rounding mode is given.`,
		Args: cobra.ExactArgs(2),
		RunE: opts.run(func(_ *cobra.Command, args []string) (fmt.Stringer, error) {
			return opts.until(args[0], args[1], flags)
		}),
	}
	flags.bind(cmd, opts)
	cmd.Flags().StringVar(&opts.Settings.Disambiguation, "disambiguation", "", "compatible, earlier, later, or reject")
	return cmd
}

func (o *RootOptions) until(start, end string, flags *diffFlags) (fmt.Stringer, error) {
	disambig, err := o.disambiguation()
	if err != nil {
		return nil, err
	}
	p0, err := o.parsePoint(start, disambig)
	if err != nil {
		return nil, err
	}
	p1, err := o.parsePoint(end, disambig)
	if err != nil {
		return nil, err
	}
	if (p0.zone == nil) != (p1.zone == nil) {
		return nil, fmt.Errorf("%w: cannot compute the difference between zoned and plain values", errs.ErrType)
	}

	mode, err := o.roundingMode(round.Trunc)
	if err != nil {
		return nil, err
	}
	smallest, err := parseUnit(flags.smallest, duration.Nanosecond)
	if err != nil {
		return nil, err
	}
	def := duration.Day
	if p0.zone != nil {
		def = duration.Hour
	}
	largest, err := parseUnit(flags.largest, max(def, smallest))
	if err != nil {
		return nil, err
	}
	if smallest > largest {
		return nil, fmt.Errorf("%w: smallest unit %v is larger than largest unit %v", errs.ErrRange, smallest, largest)
	}

	start0 := p0.marker()
	f, err := start0.Diff(p1.marker(), largest)
	if err != nil {
		return nil, err
	}
	if smallest != duration.Nanosecond || flags.increment != 1 {
		if err := round.CheckIncrement(flags.increment, smallest.Modulus()); err != nil {
			return nil, err
		}
		f, err = relative.Round(f, relative.RoundOptions{
			Largest:   largest,
			Smallest:  smallest,
			Increment: flags.increment,
			Mode:      mode,
		}, start0)
		if err != nil {
			return nil, err
		}
	}
	return text{f.String()}, nil
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(opts *RootOptions) *cobra.Command {
	var relativeTo string
	cmd := &cobra.Command{
		Use:   "compare <duration> <duration>",
		Short: "Compare two durations",
		Long: `Compare two durations, printing -1, 0, or 1.

Durations with years, months or weeks, or days when relative to a zoned
date-time, need --relative-to to compare.`,
		Args: cobra.ExactArgs(2),
		RunE: opts.run(func(_ *cobra.Command, args []string) (fmt.Stringer, error) {
			a, err := isotext.ParseDuration(args[0])
			if err != nil {
				return nil, err
			}
			b, err := isotext.ParseDuration(args[1])
			if err != nil {
				return nil, err
			}
			m, err := opts.relativeTo(relativeTo)
			if err != nil {
				return nil, err
			}
			c, err := relative.Compare(a, b, m)
			if err != nil {
				return nil, err
			}
			return order{c}, nil
		}),
	}
	cmd.Flags().StringVar(&relativeTo, "relative-to", "", "date or zoned date-time to measure from")
	return cmd
}
