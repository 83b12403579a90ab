package tz

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/theory/temporal/internal/log"
)

//nolint:gochecknoglobals
var (
	currentID atomic.Pointer[string]

	// Overridden by tests.
	getenv   = os.Getenv
	readlink = os.Readlink
)

// CurrentID returns the identifier of the system time zone. It consults
// $TZ, then the /etc/localtime link, and falls back to "UTC". The result
// is computed once and reused until [ResetCurrentID].
func CurrentID() string {
	if id := currentID.Load(); id != nil {
		return *id
	}
	id := lookupCurrentID()
	currentID.CompareAndSwap(nil, &id)
	return *currentID.Load()
}

// Current returns the system time zone.
func Current() Ops {
	if z, err := Get(CurrentID()); err == nil {
		return z
	}
	return utc
}

// ResetCurrentID discards the cached system time zone identifier.
func ResetCurrentID() {
	currentID.Store(nil)
}

func lookupCurrentID() string {
	if v := strings.TrimPrefix(getenv("TZ"), ":"); v != "" {
		if z, err := Get(v); err == nil {
			log.Logger().Debug("current time zone", slog.String("id", z.ID()), slog.String("source", "TZ"))
			return z.ID()
		}
	}
	if target, err := readlink("/etc/localtime"); err == nil {
		if _, name, ok := strings.Cut(target, "zoneinfo/"); ok {
			if z, err := Get(name); err == nil {
				log.Logger().Debug("current time zone", slog.String("id", z.ID()), slog.String("source", "localtime"))
				return z.ID()
			}
		}
	}
	log.Logger().Debug("current time zone", slog.String("id", "UTC"), slog.String("source", "default"))
	return utc.ID()
}
