// Package errs defines the error kinds raised by the temporal packages.
//
// Every error returned by this module wraps one of the sentinels below, so
// callers classify failures with [errors.Is] rather than by message. All of
// the specific range conditions wrap [ErrRange].
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrRange errors denote a value outside its valid domain: an invalid
	// calendar field, an out-of-bounds epoch value, an invalid rounding
	// increment.
	ErrRange = errors.New("range")

	// ErrType errors denote a missing required field or a value of the
	// wrong shape.
	ErrType = errors.New("type")

	// ErrOutOfRange errors are raised when an epoch value leaves the
	// supported window of 10^8 days either side of 1970-01-01.
	ErrOutOfRange = fmt.Errorf("%w: out of range", ErrRange)

	// ErrMissingRelativeTo errors are raised when calendar-unit duration
	// arithmetic is attempted without an anchor.
	ErrMissingRelativeTo = fmt.Errorf("%w: relativeTo is required for years, months, or weeks arithmetic", ErrRange)

	// ErrInvalidTimeZoneResult errors denote time zone data that violates
	// the offset or candidate-span invariants.
	ErrInvalidTimeZoneResult = fmt.Errorf("%w: invalid time zone result", ErrRange)

	// ErrIncompatibleCalendars errors are raised by operations on values
	// from different calendars.
	ErrIncompatibleCalendars = fmt.Errorf("%w: mismatching calendars", ErrRange)

	// ErrIncompatibleTimeZones errors are raised by operations on values
	// from different time zones.
	ErrIncompatibleTimeZones = fmt.Errorf("%w: mismatching time zones", ErrRange)

	// ErrUnknownCalendar errors are raised for calendar ids with no
	// implementation.
	ErrUnknownCalendar = fmt.Errorf("%w: unknown calendar", ErrRange)

	// ErrUnknownTimeZone errors are raised for time zone ids that cannot be
	// resolved.
	ErrUnknownTimeZone = fmt.Errorf("%w: unknown time zone", ErrRange)

	// ErrInvalid errors denote invalid or unexpected state. Generally
	// internal-only.
	ErrInvalid = errors.New("temporal invalid")
)
