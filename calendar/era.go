package calendar

import (
	"fmt"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/iso"
)

// era maps era years onto the calendar's year numbering. Forward eras
// count up from origin: year = origin + eraYear. Reverse eras count down:
// year = origin - eraYear.
type era struct {
	name    string
	origin  int
	reverse bool
	// start is the first ISO date of eras that begin mid-year.
	start iso.Date
}

// eraTable lists a calendar's eras, newest first.
type eraTable struct {
	eras    []era
	aliases map[string]string
}

func (t *eraTable) lookup(name string) (era, bool) {
	if alias, ok := t.aliases[name]; ok {
		name = alias
	}
	for _, e := range t.eras {
		if e.name == name {
			return e, true
		}
	}
	return era{}, false
}

// yearFor converts an era and era year into a calendar year.
func (t *eraTable) yearFor(name string, eraYear int) (int, error) {
	e, ok := t.lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: invalid era %q", errs.ErrRange, name)
	}
	if e.reverse {
		return e.origin - eraYear, nil
	}
	return e.origin + eraYear, nil
}

// forYear returns the era and era year of a calendar year. The newest
// forward era whose first year precedes year wins, then any reverse era.
// Years before every era fall in the oldest forward era with a
// non-positive era year.
func (t *eraTable) forYear(year int) (string, int) {
	var oldest *era
	for i := range t.eras {
		e := &t.eras[i]
		if e.reverse {
			continue
		}
		if year-e.origin >= 1 {
			return e.name, year - e.origin
		}
		oldest = e
	}
	for _, e := range t.eras {
		if e.reverse {
			return e.name, e.origin - year
		}
	}
	return oldest.name, year - oldest.origin
}

//nolint:gochecknoglobals
var (
	gregoryEras = &eraTable{
		eras: []era{
			{name: "ce", origin: 0},
			{name: "bce", origin: 1, reverse: true},
		},
		aliases: map[string]string{"ad": "ce", "bc": "bce"},
	}

	japaneseEras = &eraTable{
		eras: []era{
			{name: "reiwa", origin: 2018, start: iso.Date{Year: 2019, Month: 5, Day: 1}},
			{name: "heisei", origin: 1988, start: iso.Date{Year: 1989, Month: 1, Day: 8}},
			{name: "showa", origin: 1925, start: iso.Date{Year: 1926, Month: 12, Day: 25}},
			{name: "taisho", origin: 1911, start: iso.Date{Year: 1912, Month: 7, Day: 30}},
			{name: "meiji", origin: 1867, start: iso.Date{Year: 1873, Month: 1, Day: 1}},
			{name: "ce", origin: 0},
			{name: "bce", origin: 1, reverse: true},
		},
		aliases: map[string]string{"ad": "ce", "bc": "bce"},
	}

	// Eras of the provider-backed calendars, by calendar ID.
	providerEras = map[string]*eraTable{
		Buddhist: {eras: []era{{name: "be", origin: 0}}},
		ROC: {
			eras: []era{
				{name: "minguo", origin: 0},
				{name: "beforeroc", origin: 1, reverse: true},
			},
			aliases: map[string]string{"roc": "minguo", "broc": "beforeroc"},
		},
		Coptic: {eras: []era{{name: "am", origin: 0}}},
		Ethiopic: {eras: []era{
			{name: "am", origin: 0},
			{name: "aa", origin: -5500},
		}},
		EthiopicAA: {eras: []era{{name: "aa", origin: 0}}},
		Indian:     {eras: []era{{name: "saka", origin: 0}}},
		IslamicCivil: {eras: []era{
			{name: "ah", origin: 0},
			{name: "bh", origin: 1, reverse: true},
		}},
		IslamicTbla: {eras: []era{
			{name: "ah", origin: 0},
			{name: "bh", origin: 1, reverse: true},
		}},
		Persian: {eras: []era{{name: "ap", origin: 0}}},
		Hebrew:  {eras: []era{{name: "am", origin: 0}}},
	}

	// Leap month metadata by calendar ID. See Calendar.leapMeta.
	leapMetas = map[string]int{
		Hebrew:  -6,
		Chinese: 11,
		Dangi:   11,
	}
)
