package tz

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/theory/temporal/errs"
)

//nolint:gochecknoglobals
var (
	utc = &Named{loc: time.UTC}

	idFolder = cases.Fold()

	// Tokens of IANA names written in capitals.
	upperTokens = []string{
		"chat", "cst6cdt", "eire", "est", "est5edt", "gb", "gmt", "hst",
		"mst", "mst7mdt", "nz", "prc", "pst8pdt", "roc", "rok", "su", "uct",
		"us", "ut", "utc",
	}

	// Tokens of IANA names written in lower case.
	lowerTokens = []string{"au", "de", "es", "of"}

	// Names whose casing the token rules cannot recover, keyed by folded
	// name.
	irregularIDs = map[string]string{
		"america/argentina/comodrivadavia": "America/Argentina/ComodRivadavia",
		"antarctica/dumontdurville":        "Antarctica/DumontDUrville",
		"antarctica/mcmurdo":               "Antarctica/McMurdo",
	}
)

// UTC returns the UTC zone.
func UTC() *Named {
	return utc
}

// Get returns the zone identified by id: an offset such as "+05:30" or an
// IANA name matched case-insensitively. Returns an
// [errs.ErrUnknownTimeZone] error for unknown names.
func Get(id string) (Ops, error) {
	if strings.HasPrefix(id, "+") || strings.HasPrefix(id, "-") {
		off, err := ParseOffset(id)
		if err != nil {
			return nil, err
		}
		return NewFixed(off)
	}

	folded := idFolder.String(id)
	switch folded {
	case "", "local":
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownTimeZone, id)
	case "utc", "z":
		return utc, nil
	}

	for _, name := range candidateNames(id, folded) {
		if loc, err := time.LoadLocation(name); err == nil {
			return &Named{loc: loc}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errs.ErrUnknownTimeZone, id)
}

// MustGet is like [Get] but panics on error.
func MustGet(id string) Ops {
	z, err := Get(id)
	if err != nil {
		panic(err)
	}
	return z
}

func candidateNames(id, folded string) []string {
	names := []string{id}
	if name, ok := irregularIDs[folded]; ok {
		return append(names, name)
	}
	if name := canonicalCase(folded); name != id {
		names = append(names, name)
	}
	return names
}

// canonicalCase restores the conventional capitalization of a folded IANA
// name: each word capitalized except for a few known tokens.
func canonicalCase(folded string) string {
	var b strings.Builder
	for i := 0; i < len(folded); {
		end := strings.IndexAny(folded[i:], "/_-")
		if end < 0 {
			end = len(folded)
		} else {
			end += i
		}
		b.WriteString(caseToken(folded[i:end]))
		if end < len(folded) {
			b.WriteByte(folded[end])
		}
		i = end + 1
	}
	return b.String()
}

func caseToken(tok string) string {
	alpha := strings.TrimRightFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, u := range upperTokens {
		if alpha == u {
			return strings.ToUpper(tok)
		}
	}
	for _, l := range lowerTokens {
		if tok == l {
			return tok
		}
	}
	r := []rune(tok)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}
