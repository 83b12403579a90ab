// Package nano provides an exact, immutable signed nanosecond count used for
// epoch values and day-time duration arithmetic.
//
// Values are backed by [math/big] so that no operation loses precision,
// whatever the magnitude. Epoch values are further bounded to the window
// [Min, Max]: 10^8 days either side of 1970-01-01T00:00:00Z.
package nano

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/theory/temporal/errs"
)

// Unit sizes in nanoseconds.
const (
	NanoInMicro  int64 = 1000
	NanoInMilli        = NanoInMicro * 1000
	NanoInSecond       = NanoInMilli * 1000
	NanoInMinute       = NanoInSecond * 60
	NanoInHour         = NanoInMinute * 60
	NanoInDay          = NanoInHour * 24
)

// MaxDays is the number of days either side of the epoch covered by the
// supported window.
const MaxDays = 100_000_000

//nolint:gochecknoglobals
var (
	// Max is the largest supported epoch nanosecond value, 8.64e21.
	Max = FromDayNano(MaxDays, 0)

	// Min is the smallest supported epoch nanosecond value, -8.64e21.
	Min = Max.Neg()

	// Zero is the zero value, equivalent to Nano{}.
	Zero = Nano{}
)

// Nano is an exact signed nanosecond count. The zero value is 0. Every
// method returns a new value; receivers are never modified.
type Nano struct {
	v *big.Int
}

// New returns a Nano for n.
func New(n int64) Nano {
	return Nano{big.NewInt(n)}
}

// FromBig returns a Nano with the value of b. b is copied.
func FromBig(b *big.Int) Nano {
	if b == nil {
		return Nano{}
	}
	return Nano{new(big.Int).Set(b)}
}

// FromDayNano returns days * NanoInDay + nanos.
func FromDayNano(days, nanos int64) Nano {
	v := big.NewInt(days)
	v.Mul(v, big.NewInt(NanoInDay))
	return Nano{v.Add(v, big.NewInt(nanos))}
}

// Parse parses a base-10 integer string.
func Parse(s string) (Nano, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return Nano{}, fmt.Errorf("%w: cannot parse %q as nanoseconds", errs.ErrType, s)
	}
	return Nano{v}, nil
}

func (n Nano) big() *big.Int {
	if n.v == nil {
		return new(big.Int)
	}
	return n.v
}

// Big returns a copy of the value as a [big.Int].
func (n Nano) Big() *big.Int {
	return new(big.Int).Set(n.big())
}

// Add returns n + o.
func (n Nano) Add(o Nano) Nano {
	return Nano{new(big.Int).Add(n.big(), o.big())}
}

// AddInt returns n + i.
func (n Nano) AddInt(i int64) Nano {
	return Nano{new(big.Int).Add(n.big(), big.NewInt(i))}
}

// Sub returns n - o.
func (n Nano) Sub(o Nano) Nano {
	return Nano{new(big.Int).Sub(n.big(), o.big())}
}

// Mul returns n * i.
func (n Nano) Mul(i int64) Nano {
	return Nano{new(big.Int).Mul(n.big(), big.NewInt(i))}
}

// Neg returns -n.
func (n Nano) Neg() Nano {
	return Nano{new(big.Int).Neg(n.big())}
}

// Abs returns |n|.
func (n Nano) Abs() Nano {
	return Nano{new(big.Int).Abs(n.big())}
}

// Sign returns -1, 0, or 1 according to the sign of n.
func (n Nano) Sign() int {
	return n.big().Sign()
}

// Compare returns -1 if n < o, 0 if n == o, and 1 if n > o.
func (n Nano) Compare(o Nano) int {
	return n.big().Cmp(o.big())
}

// Equal returns true if n and o are the same value.
func (n Nano) Equal(o Nano) bool {
	return n.Compare(o) == 0
}

// DivModFloor divides n by d using floored division: the remainder is zero
// or has the sign of d, and quotient * d + remainder == n. Panics if d is
// zero.
func (n Nano) DivModFloor(d int64) (Nano, int64) {
	q, m := new(big.Int).DivMod(n.big(), big.NewInt(d), new(big.Int))
	// DivMod is Euclidean: m >= 0 always. Shift into d's sign.
	if d < 0 && m.Sign() != 0 {
		q.Sub(q, big.NewInt(1))
		m.Add(m, big.NewInt(d))
	}
	return Nano{q}, m.Int64()
}

// DivFloor returns the floored quotient of n / d.
func (n Nano) DivFloor(d int64) Nano {
	q, _ := n.DivModFloor(d)
	return q
}

// ModFloor returns the floored remainder of n / d.
func (n Nano) ModFloor(d int64) int64 {
	_, r := n.DivModFloor(d)
	return r
}

// DivTrunc divides n by d truncating toward zero, the way Go's integer
// division does. The remainder has the sign of n.
func (n Nano) DivTrunc(d int64) (Nano, int64) {
	q, r := new(big.Int).QuoRem(n.big(), big.NewInt(d), new(big.Int))
	return Nano{q}, r.Int64()
}

// IsInt64 returns true if n can be represented as an int64.
func (n Nano) IsInt64() bool {
	return n.big().IsInt64()
}

// Int64 returns n as an int64. The result is undefined if !n.IsInt64().
func (n Nano) Int64() int64 {
	return n.big().Int64()
}

// Float64 returns the nearest float64 to n.
func (n Nano) Float64() float64 {
	f, _ := new(big.Float).SetInt(n.big()).Float64()
	return f
}

// String returns the base-10 representation of n.
func (n Nano) String() string {
	return n.big().String()
}

// MarshalJSON encodes n as a JSON number with all of its digits.
func (n Nano) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalJSON decodes a JSON number or a string containing an integer.
func (n *Nano) UnmarshalJSON(data []byte) error {
	src := string(data)
	if strings.HasPrefix(src, `"`) {
		if err := json.Unmarshal(data, &src); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrType, err)
		}
	}
	v, err := Parse(src)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// InBounds returns true if n lies within [Min, Max].
func InBounds(n Nano) bool {
	return n.Compare(Min) >= 0 && n.Compare(Max) <= 0
}

// Checked returns n if it lies within [Min, Max] and an [errs.ErrOutOfRange]
// error otherwise.
func Checked(n Nano) (Nano, error) {
	if !InBounds(n) {
		return Nano{}, fmt.Errorf("%w: %v nanoseconds", errs.ErrOutOfRange, n)
	}
	return n, nil
}
