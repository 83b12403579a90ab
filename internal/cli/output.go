package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/theory/temporal/errs"
	"gopkg.in/yaml.v3"
)

// Exit codes for the temporal command.
const (
	ExitSuccess      = 0 // Success
	ExitFailure      = 1 // The operation failed, e.g. out of range or missing relativeTo
	ExitCommandError = 2 // Bad flags, arguments, or configuration
)

// ExitError carries the exit code for a failed command.
type ExitError struct {
	Code int
	Err  error

	// Reported is true when the error has already been written to the
	// command output.
	Reported bool
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// GetExitCode returns the exit code for err: the code of an [ExitError],
// or [ExitCommandError] for anything else, such as a cobra usage error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// Response is the envelope for json and yaml output.
type Response struct {
	Status string         `json:"status"          yaml:"status"`
	Data   any            `json:"data,omitempty"  yaml:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty" yaml:"error,omitempty"`
}

// ResponseError describes a failure in json and yaml output.
type ResponseError struct {
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Output writes command results in text, json, or yaml format.
type Output struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

// Success writes data. Text output uses the value's String method.
func (o *Output) Success(data fmt.Stringer) error {
	switch o.Format {
	case "json":
		return json.NewEncoder(o.Writer).Encode(Response{Status: "ok", Data: data})
	case "yaml":
		return o.yaml(Response{Status: "ok", Data: data})
	default:
		_, err := fmt.Fprintln(o.Writer, data)
		return err
	}
}

// Fail reports err and returns an [ExitError] with code. Text output goes
// to ErrWriter; json and yaml go to Writer in a [Response].
func (o *Output) Fail(code int, err error) error {
	resp := Response{Status: "error", Error: &ResponseError{Code: errorCode(err), Message: err.Error()}}
	var werr error
	switch o.Format {
	case "json":
		werr = json.NewEncoder(o.Writer).Encode(resp)
	case "yaml":
		werr = o.yaml(resp)
	default:
		_, werr = fmt.Fprintf(o.ErrWriter, "Error: %v\n", err)
	}
	return &ExitError{Code: code, Err: err, Reported: werr == nil}
}

func (o *Output) yaml(v any) error {
	enc := yaml.NewEncoder(o.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// errorCode names the kind of err.
func errorCode(err error) string {
	for _, kind := range []struct {
		err  error
		code string
	}{
		{errs.ErrOutOfRange, "out_of_range"},
		{errs.ErrMissingRelativeTo, "missing_relative_to"},
		{errs.ErrInvalidTimeZoneResult, "invalid_time_zone_result"},
		{errs.ErrIncompatibleCalendars, "incompatible_calendars"},
		{errs.ErrIncompatibleTimeZones, "incompatible_time_zones"},
		{errs.ErrUnknownCalendar, "unknown_calendar"},
		{errs.ErrUnknownTimeZone, "unknown_time_zone"},
		{ErrConfig, "config"},
		{errs.ErrRange, "range"},
		{errs.ErrType, "type"},
		{errs.ErrInvalid, "invalid"},
	} {
		if errors.Is(err, kind.err) {
			return kind.code
		}
	}
	return "unknown"
}
