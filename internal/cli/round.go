package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/internal/isotext"
	"github.com/theory/temporal/relative"
	"github.com/theory/temporal/round"
)

// NewRoundCommand creates the round command.
func NewRoundCommand(opts *RootOptions) *cobra.Command {
	flags := &diffFlags{}
	cmd := &cobra.Command{
		Use:   "round <duration>",
		Short: "Round and balance a duration",
		Long: `Round a duration to a smallest unit and balance it up to a largest unit.

Years, months and weeks have no fixed length, so rounding to or balancing
through them needs --relative-to. Relative to a zoned date-time, days do
too. The largest unit defaults to the larger of the duration's largest unit
and the smallest unit. The rounding mode defaults to halfExpand.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run(func(_ *cobra.Command, args []string) (fmt.Stringer, error) {
			return opts.round(args[0], flags)
		}),
	}
	flags.bind(cmd, opts)
	cmd.Flags().StringVar(&flags.relativeTo, "relative-to", "", "date or zoned date-time to measure from")
	cmd.Flags().StringVar(&opts.Settings.Disambiguation, "disambiguation", "", "compatible, earlier, later, or reject")
	return cmd
}

func (o *RootOptions) round(dur string, flags *diffFlags) (fmt.Stringer, error) {
	if flags.smallest == "" && flags.largest == "" {
		return nil, fmt.Errorf("%w: smallest or largest unit is required", errs.ErrRange)
	}
	d, err := isotext.ParseDuration(dur)
	if err != nil {
		return nil, err
	}
	mode, err := o.roundingMode(round.HalfExpand)
	if err != nil {
		return nil, err
	}
	smallest, err := parseUnit(flags.smallest, duration.Nanosecond)
	if err != nil {
		return nil, err
	}
	largest, err := parseUnit(flags.largest, max(d.LargestUnit(), smallest))
	if err != nil {
		return nil, err
	}
	if err := round.CheckIncrement(flags.increment, smallest.Modulus()); err != nil {
		return nil, err
	}
	m, err := o.relativeTo(flags.relativeTo)
	if err != nil {
		return nil, err
	}

	res, err := relative.Round(d, relative.RoundOptions{
		Largest:   largest,
		Smallest:  smallest,
		Increment: flags.increment,
		Mode:      mode,
	}, m)
	if err != nil {
		return nil, err
	}
	return text{res.String()}, nil
}

// total is the result of the total command.
type total struct {
	Unit  string  `json:"unit"  yaml:"unit"`
	Total float64 `json:"total" yaml:"total"`
}

func (t total) String() string { return strconv.FormatFloat(t.Total, 'f', -1, 64) }

// NewTotalCommand creates the total command.
func NewTotalCommand(opts *RootOptions) *cobra.Command {
	var unit, relativeTo string
	cmd := &cobra.Command{
		Use:   "total <duration>",
		Short: "Express a duration as a number of one unit",
		Long: `Express a duration as a fractional number of one unit.

Totals in or through years, months and weeks depend on where the duration
starts, so they need --relative-to.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run(func(_ *cobra.Command, args []string) (fmt.Stringer, error) {
			d, err := isotext.ParseDuration(args[0])
			if err != nil {
				return nil, err
			}
			u, err := duration.ParseUnit(unit)
			if err != nil {
				return nil, err
			}
			m, err := opts.relativeTo(relativeTo)
			if err != nil {
				return nil, err
			}
			res, err := relative.Total(d, u, m)
			if err != nil {
				return nil, err
			}
			return total{Unit: u.String(), Total: res}, nil
		}),
	}
	cmd.Flags().StringVar(&unit, "unit", "", "unit to total in (required)")
	cmd.Flags().StringVar(&relativeTo, "relative-to", "", "date or zoned date-time to measure from")
	cmd.Flags().StringVar(&opts.Settings.Disambiguation, "disambiguation", "", "compatible, earlier, later, or reject")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}
