// Package cli implements the temporal command: date arithmetic, duration
// rounding and totals, and time zone conversion from the command line.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/internal/log"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/round"
	"github.com/theory/temporal/tz"
)

// RootOptions holds the global flags and settings for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	ConfigFile string
	Settings   Settings
}

// ValidFormats lists the allowed output formats.
//
//nolint:gochecknoglobals
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root temporal command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "temporal",
		Short: "Calendar and time zone aware date arithmetic",
		Long: `Add, diff, round and total durations across calendars and time zones.

Dates and date-times use ISO 8601 with optional RFC 9557 annotations, such
as 2024-03-10T01:30:00-05:00[America/New_York][u-ca=hebrew]. Durations use
ISO 8601 duration syntax, such as P1Y2M3DT4H.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.setup(cmd); err != nil {
				return &ExitError{Code: ExitCommandError, Err: err}
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug output to stderr")
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	flags.StringVar(&opts.ConfigFile, "config", "", "TOML or YAML configuration file")
	flags.StringVar(&opts.Settings.Calendar, "calendar", "", "default calendar (default iso8601)")
	flags.StringVar(&opts.Settings.TimeZone, "time-zone", "", "default time zone (default the system zone)")
	flags.StringVar(&opts.Settings.LogLevel, "log-level", "", "log level: debug, info, warn, or error")

	cmd.AddCommand(
		NewAddCommand(opts),
		NewSubtractCommand(opts),
		NewUntilCommand(opts),
		NewCompareCommand(opts),
		NewRoundCommand(opts),
		NewTotalCommand(opts),
		NewFieldsCommand(opts),
		NewCalendarsCommand(opts),
		NewConvertCommand(opts),
		NewDayCommand(opts),
		NewEpochCommand(opts),
		NewNowCommand(opts),
	)

	return cmd
}

// setup validates the output format, merges the configuration file under
// the flags, installs the logger, and stores the default time zone in the
// command context.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	if o.ConfigFile != "" {
		cfg, err := LoadSettings(o.ConfigFile, FormatAuto)
		if err != nil {
			return err
		}
		o.merge(cmd, cfg)
	}

	level, err := log.ParseLevel(o.Settings.LogLevel)
	if err != nil {
		return err
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	log.Set(log.New(cmd.ErrOrStderr(), level))

	var zone tz.Ops
	if o.Settings.TimeZone == "" {
		zone = tz.Current()
	} else if zone, err = tz.Get(o.Settings.TimeZone); err != nil {
		return err
	}
	cmd.SetContext(tz.ContextWithZone(cmd.Context(), zone))
	log.Logger().Debug("settings",
		slog.String("calendar", o.Settings.Calendar),
		slog.String("time_zone", zone.ID()),
		slog.String("config", o.ConfigFile),
	)
	return nil
}

// merge copies values from cfg into the settings unless the command line
// set the corresponding flag.
func (o *RootOptions) merge(cmd *cobra.Command, cfg Settings) {
	dst, src := o.Settings.settingFlags(), cfg.settingFlags()
	for i, s := range dst {
		if f := cmd.Flags().Lookup(s.flag); f != nil && f.Changed {
			continue
		}
		if v := *src[i].dst; v != "" {
			*s.dst = v
		}
	}
}

// output returns the [Output] for cmd.
func (o *RootOptions) output(cmd *cobra.Command) *Output {
	return &Output{Format: o.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}
}

// calendar returns the default calendar.
func (o *RootOptions) calendar() (calendar.Ops, error) {
	if o.Settings.Calendar == "" {
		return calendar.ISO(), nil
	}
	return calendar.Get(o.Settings.Calendar)
}

func (o *RootOptions) overflow() (iso.Overflow, error) {
	return iso.ParseOverflow(o.Settings.Overflow)
}

func (o *RootOptions) disambiguation() (tz.Disambiguation, error) {
	return tz.ParseDisambiguation(o.Settings.Disambiguation)
}

// roundingMode returns the configured rounding mode, or def if none is set.
func (o *RootOptions) roundingMode(def round.Mode) (round.Mode, error) {
	if o.Settings.RoundingMode == "" {
		return def, nil
	}
	return round.ParseMode(o.Settings.RoundingMode)
}
