package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/iso"
)

// fields lists the calendar fields of a date.
type fields struct {
	Calendar     string `json:"calendar"             yaml:"calendar"`
	Era          string `json:"era,omitempty"        yaml:"era,omitempty"`
	EraYear      *int   `json:"eraYear,omitempty"    yaml:"eraYear,omitempty"`
	Year         int    `json:"year"                 yaml:"year"`
	Month        int    `json:"month"                yaml:"month"`
	MonthCode    string `json:"monthCode"            yaml:"monthCode"`
	Day          int    `json:"day"                  yaml:"day"`
	DayOfWeek    int    `json:"dayOfWeek"            yaml:"dayOfWeek"`
	DayOfYear    int    `json:"dayOfYear"            yaml:"dayOfYear"`
	WeekOfYear   *int   `json:"weekOfYear,omitempty" yaml:"weekOfYear,omitempty"`
	YearOfWeek   *int   `json:"yearOfWeek,omitempty" yaml:"yearOfWeek,omitempty"`
	DaysInWeek   int    `json:"daysInWeek"           yaml:"daysInWeek"`
	DaysInMonth  int    `json:"daysInMonth"          yaml:"daysInMonth"`
	DaysInYear   int    `json:"daysInYear"           yaml:"daysInYear"`
	MonthsInYear int    `json:"monthsInYear"         yaml:"monthsInYear"`
	InLeapYear   bool   `json:"inLeapYear"           yaml:"inLeapYear"`
}

func newFields(cal calendar.Ops, d iso.Date) fields {
	f := fields{
		Calendar:     cal.ID(),
		Year:         cal.Year(d),
		Month:        cal.Month(d),
		MonthCode:    cal.MonthCode(d),
		Day:          cal.Day(d),
		DayOfWeek:    cal.DayOfWeek(d),
		DayOfYear:    cal.DayOfYear(d),
		DaysInWeek:   cal.DaysInWeek(d),
		DaysInMonth:  cal.DaysInMonth(d),
		DaysInYear:   cal.DaysInYear(d),
		MonthsInYear: cal.MonthsInYear(d),
		InLeapYear:   cal.InLeapYear(d),
	}
	if era, ok := cal.Era(d); ok {
		f.Era = era
	}
	if y, ok := cal.EraYear(d); ok {
		f.EraYear = &y
	}
	if w, ok := cal.WeekOfYear(d); ok {
		f.WeekOfYear = &w
	}
	if y, ok := cal.YearOfWeek(d); ok {
		f.YearOfWeek = &y
	}
	return f
}

// String returns one "name: value" line per field.
func (f fields) String() string {
	var b strings.Builder
	line := func(name, value string) {
		b.WriteString(name + ": " + value + "\n")
	}
	optional := func(name string, v *int) {
		if v != nil {
			line(name, strconv.Itoa(*v))
		}
	}

	line("calendar", f.Calendar)
	if f.Era != "" {
		line("era", f.Era)
	}
	optional("eraYear", f.EraYear)
	line("year", strconv.Itoa(f.Year))
	line("month", strconv.Itoa(f.Month))
	line("monthCode", f.MonthCode)
	line("day", strconv.Itoa(f.Day))
	line("dayOfWeek", strconv.Itoa(f.DayOfWeek))
	line("dayOfYear", strconv.Itoa(f.DayOfYear))
	optional("weekOfYear", f.WeekOfYear)
	optional("yearOfWeek", f.YearOfWeek)
	line("daysInWeek", strconv.Itoa(f.DaysInWeek))
	line("daysInMonth", strconv.Itoa(f.DaysInMonth))
	line("daysInYear", strconv.Itoa(f.DaysInYear))
	line("monthsInYear", strconv.Itoa(f.MonthsInYear))
	line("inLeapYear", strconv.FormatBool(f.InLeapYear))
	return strings.TrimSuffix(b.String(), "\n")
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <date>",
		Short: "Show the calendar fields of a date",
		Long: `Show the calendar fields of a date: era, year, month, month code, day,
and the week, month and year lengths around it.

The calendar comes from the date's u-ca annotation or --calendar. Zoned
date-times show the fields of their wall-clock date.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run(func(_ *cobra.Command, args []string) (fmt.Stringer, error) {
			disambig, err := opts.disambiguation()
			if err != nil {
				return nil, err
			}
			p, err := opts.parsePoint(args[0], disambig)
			if err != nil {
				return nil, err
			}
			return newFields(p.cal, p.dt.Date), nil
		}),
	}
}

// list is a list of names, printed one per line.
type list []string

func (l list) String() string { return strings.Join(l, "\n") }

// NewCalendarsCommand creates the calendars command.
func NewCalendarsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List the supported calendars",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(*cobra.Command, []string) (fmt.Stringer, error) {
			return list(calendar.IDs()), nil
		}),
	}
}
