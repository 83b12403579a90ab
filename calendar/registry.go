package calendar

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/internal/log"
)

//nolint:gochecknoglobals
var (
	isoCalendar = &Calendar{id: ISO8601, sys: isoSystem{}}

	gregoryCalendar = &Calendar{id: Gregory, sys: isoSystem{}, eras: gregoryEras}

	japaneseCalendar = &Calendar{
		id:            Japanese,
		sys:           japaneseSystem{},
		eras:          japaneseEras,
		dateClearsEra: true,
	}

	idAliases = map[string]string{
		"iso":                 ISO8601,
		"islamicc":            IslamicCivil,
		"ethiopic-amete-alem": EthiopicAA,
	}

	idFolder = cases.Fold()

	registry = struct {
		sync.RWMutex
		providers map[string]Provider
	}{providers: builtinProviders()}
)

// ISO returns the ISO 8601 calendar.
func ISO() *Calendar {
	return isoCalendar
}

// NormalizeID folds a calendar identifier to its canonical form.
func NormalizeID(id string) string {
	folded := idFolder.String(norm.NFC.String(id))
	if alias, ok := idAliases[folded]; ok {
		return alias
	}
	return folded
}

// Get returns the calendar identified by id, compared case-insensitively.
// Returns an [errs.ErrUnknownCalendar] error for unknown identifiers.
func Get(id string) (*Calendar, error) {
	key := NormalizeID(id)
	switch key {
	case ISO8601:
		return isoCalendar, nil
	case Gregory:
		return gregoryCalendar, nil
	case Japanese:
		return japaneseCalendar, nil
	}

	registry.RLock()
	p, ok := registry.providers[key]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownCalendar, id)
	}
	return &Calendar{
		id:       key,
		sys:      newProviderSystem(p),
		eras:     providerEras[key],
		leapMeta: leapMetas[key],
	}, nil
}

// MustGet is like [Get] but panics on error.
func MustGet(id string) *Calendar {
	c, err := Get(id)
	if err != nil {
		panic(err)
	}
	return c
}

// Register makes the calendar id available through [Get], backed by p. It
// replaces any existing provider for id. The ISO, gregory and japanese
// calendars cannot be replaced.
func Register(id string, p Provider) error {
	key := NormalizeID(id)
	switch key {
	case ISO8601, Gregory, Japanese:
		return fmt.Errorf("%w: cannot replace calendar %q", errs.ErrType, key)
	}
	registry.Lock()
	registry.providers[key] = p
	registry.Unlock()
	log.Logger().Debug("registered calendar", slog.String("id", key))
	return nil
}

// IDs returns the sorted identifiers of all available calendars.
func IDs() []string {
	registry.RLock()
	ids := maps.Keys(registry.providers)
	registry.RUnlock()
	ids = append(ids, ISO8601, Gregory, Japanese)
	slices.Sort(ids)
	return ids
}

func builtinProviders() map[string]Provider {
	return map[string]Provider{
		Buddhist:     offsetISO(543, providerEras[Buddhist]),
		ROC:          offsetISO(-1911, providerEras[ROC]),
		Coptic:       coptic(copticJD, providerEras[Coptic]),
		Ethiopic:     coptic(ethiopicJD, providerEras[Ethiopic]),
		EthiopicAA:   coptic(ethiopicJD-ethiopicAAYears*365-ethiopicAAYears/4, providerEras[EthiopicAA]),
		Indian:       indian(providerEras[Indian]),
		IslamicCivil: islamic(islamicCivilJD, providerEras[IslamicCivil]),
		IslamicTbla:  islamic(islamicTblaJD, providerEras[IslamicTbla]),
		Persian:      persian(providerEras[Persian]),
		Hebrew:       hebrew(providerEras[Hebrew]),
	}
}
