package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/temporal/errs"
	"gopkg.in/yaml.v3"
)

func TestOutputSuccess(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		format string
		exp    string
	}{
		{"text", "P1D\n"},
		{"json", `{"status":"ok","data":{"value":"P1D"}}` + "\n"},
		{"yaml", "status: ok\ndata:\n  value: P1D\n"},
	} {
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			buf := new(bytes.Buffer)
			out := &Output{Format: tc.format, Writer: buf, ErrWriter: buf}
			r.NoError(out.Success(text{"P1D"}))
			a.Equal(tc.exp, buf.String())
		})
	}
}

func TestOutputFail(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)
	cause := fmt.Errorf("%w: total with months", errs.ErrMissingRelativeTo)

	// Text goes to the error writer.
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	out := &Output{Format: "text", Writer: stdout, ErrWriter: stderr}
	err := out.Fail(ExitFailure, cause)
	r.ErrorIs(err, errs.ErrMissingRelativeTo)
	a.Equal(ExitFailure, GetExitCode(err))
	a.Empty(stdout.String())
	a.Equal("Error: "+cause.Error()+"\n", stderr.String())

	var exitErr *ExitError
	r.ErrorAs(err, &exitErr)
	a.True(exitErr.Reported)

	// JSON goes to the writer.
	stdout.Reset()
	out.Format = "json"
	r.Error(out.Fail(ExitFailure, cause))
	var resp Response
	r.NoError(json.Unmarshal(stdout.Bytes(), &resp))
	a.Equal("error", resp.Status)
	a.Equal(&ResponseError{Code: "missing_relative_to", Message: cause.Error()}, resp.Error)

	// So does YAML.
	stdout.Reset()
	out.Format = "yaml"
	r.Error(out.Fail(ExitCommandError, cause))
	resp = Response{}
	r.NoError(yaml.Unmarshal(stdout.Bytes(), &resp))
	a.Equal("error", resp.Status)
	a.Equal("missing_relative_to", resp.Error.Code)
}

func TestGetExitCode(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal(ExitSuccess, GetExitCode(nil))
	a.Equal(ExitCommandError, GetExitCode(errors.New("oops")))
	a.Equal(ExitFailure, GetExitCode(&ExitError{Code: ExitFailure, Err: errs.ErrRange}))
	a.Equal(ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: ExitFailure, Err: errs.ErrRange})))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		err  error
		code string
	}{
		{errs.ErrOutOfRange, "out_of_range"},
		{errs.ErrMissingRelativeTo, "missing_relative_to"},
		{errs.ErrInvalidTimeZoneResult, "invalid_time_zone_result"},
		{errs.ErrIncompatibleCalendars, "incompatible_calendars"},
		{errs.ErrIncompatibleTimeZones, "incompatible_time_zones"},
		{fmt.Errorf("%w: %q", errs.ErrUnknownCalendar, "x"), "unknown_calendar"},
		{errs.ErrUnknownTimeZone, "unknown_time_zone"},
		{ErrConfig, "config"},
		{errs.ErrRange, "range"},
		{errs.ErrType, "type"},
		{errs.ErrInvalid, "invalid"},
		{errors.New("oops"), "unknown"},
	} {
		t.Run(tc.code, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.code, errorCode(tc.err))
		})
	}
}
