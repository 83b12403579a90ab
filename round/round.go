// Package round rounds exact integer quantities to a multiple of an
// increment under one of nine rounding modes.
package round

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/theory/temporal/errs"
	"github.com/theory/temporal/nano"
)

// Mode is a rounding mode.
type Mode uint8

const (
	// Ceil rounds toward positive infinity.
	Ceil Mode = iota

	// Floor rounds toward negative infinity.
	Floor

	// Expand rounds away from zero.
	Expand

	// Trunc rounds toward zero.
	Trunc

	// HalfCeil rounds to the nearest value, ties toward positive infinity.
	HalfCeil

	// HalfFloor rounds to the nearest value, ties toward negative infinity.
	HalfFloor

	// HalfExpand rounds to the nearest value, ties away from zero.
	HalfExpand

	// HalfTrunc rounds to the nearest value, ties toward zero.
	HalfTrunc

	// HalfEven rounds to the nearest value, ties to the even multiple.
	HalfEven
)

//nolint:gochecknoglobals
var modeNames = [...]string{
	Ceil:       "ceil",
	Floor:      "floor",
	Expand:     "expand",
	Trunc:      "trunc",
	HalfCeil:   "halfCeil",
	HalfFloor:  "halfFloor",
	HalfExpand: "halfExpand",
	HalfTrunc:  "halfTrunc",
	HalfEven:   "halfEven",
}

// String returns the option name of the mode, such as "halfExpand".
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "UNKNOWN_ROUNDING_MODE"
}

// Modes returns every rounding mode.
func Modes() []Mode {
	return []Mode{Ceil, Floor, Expand, Trunc, HalfCeil, HalfFloor, HalfExpand, HalfTrunc, HalfEven}
}

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(name, s) {
			return Mode(i), nil
		}
	}
	return HalfExpand, fmt.Errorf("%w: invalid rounding mode %q", errs.ErrRange, s)
}

// Int rounds num to a multiple of inc. inc must be positive.
func Int(num, inc int64, mode Mode) int64 {
	return Nano(nano.New(num), inc, mode).Int64()
}

// Nano rounds n to a multiple of incNano. incNano must be positive.
func Nano(n nano.Nano, incNano int64, mode Mode) nano.Nano {
	q, r := n.DivModFloor(incNano)
	if r == 0 {
		return n
	}
	half := compareHalf(big.NewInt(r), big.NewInt(incNano))
	return q.AddInt(bump(mode, n.Sign() < 0, half, q.ModFloor(2) == 0)).Mul(incNano)
}

// Quotient returns num / den rounded to an integer. den must be positive.
// Used when a duration's progress through a variable-length unit is known
// only as a ratio of nanoseconds.
func Quotient(num, den nano.Nano, mode Mode) nano.Nano {
	q, r := new(big.Int).DivMod(num.Big(), den.Big(), new(big.Int))
	if r.Sign() == 0 {
		return nano.FromBig(q)
	}
	qn := nano.FromBig(q)
	half := compareHalf(r, den.Big())
	return qn.AddInt(bump(mode, num.Sign() < 0, half, qn.ModFloor(2) == 0))
}

// compareHalf compares the fraction r/den with one half.
func compareHalf(r, den *big.Int) int {
	return new(big.Int).Lsh(r, 1).Cmp(den)
}

// bump decides whether a value strictly between floor and floor+1 rounds
// up (1) or down (0). half is the sign of (fraction - 0.5).
func bump(mode Mode, negative bool, half int, floorEven bool) int64 {
	up := false
	switch mode {
	case Ceil:
		up = true
	case Floor:
	case Expand:
		up = !negative
	case Trunc:
		up = negative
	default:
		switch {
		case half > 0:
			up = true
		case half < 0:
		default:
			switch mode {
			case HalfCeil:
				up = true
			case HalfExpand:
				up = !negative
			case HalfTrunc:
				up = negative
			case HalfEven:
				up = !floorEven
			}
		}
	}
	if up {
		return 1
	}
	return 0
}

// CheckIncrement validates a rounding increment for a unit whose natural
// modulus is modulus (60 for minutes, 1000 for milliseconds, 24 for hours).
// The increment must evenly divide the modulus and be smaller than it.
// A modulus of zero means the unit has no upper bound.
func CheckIncrement(inc, modulus int64) error {
	if inc < 1 || inc > 1e9 {
		return fmt.Errorf("%w: rounding increment %d out of range 1-1000000000", errs.ErrRange, inc)
	}
	if modulus == 0 {
		return nil
	}
	if inc >= modulus && !(inc == 1 && modulus == 1) {
		return fmt.Errorf("%w: rounding increment %d must be less than %d", errs.ErrRange, inc, modulus)
	}
	if modulus%inc != 0 {
		return fmt.Errorf("%w: rounding increment %d must evenly divide %d", errs.ErrRange, inc, modulus)
	}
	return nil
}
