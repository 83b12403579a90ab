package nano

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theory/temporal/errs"
)

func TestUnits(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	a.Equal(int64(1_000), NanoInMicro)
	a.Equal(int64(1_000_000), NanoInMilli)
	a.Equal(int64(1_000_000_000), NanoInSecond)
	a.Equal(int64(60_000_000_000), NanoInMinute)
	a.Equal(int64(3_600_000_000_000), NanoInHour)
	a.Equal(int64(86_400_000_000_000), NanoInDay)
	a.Equal("8640000000000000000000", Max.String())
	a.Equal("-8640000000000000000000", Min.String())
	a.Equal(0, Zero.Sign())
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	var zero Nano
	a.Equal("0", zero.String())
	a.Equal("5", zero.AddInt(5).String())
	a.Equal("12", New(5).Add(New(7)).String())
	a.Equal("-2", New(5).Sub(New(7)).String())
	a.Equal("-35", New(5).Mul(-7).String())
	a.Equal("-5", New(5).Neg().String())
	a.Equal("5", New(-5).Abs().String())
	a.Equal(-1, New(-5).Sign())

	// Beyond int64.
	huge := New(math.MaxInt64).AddInt(1)
	a.False(huge.IsInt64())
	a.Equal("9223372036854775808", huge.String())
	a.Equal("18446744073709551616", huge.Mul(2).String())
	a.True(New(math.MaxInt64).IsInt64())

	// Immutability.
	base := New(10)
	_ = base.Add(New(1))
	_ = base.Neg()
	a.Equal(int64(10), base.Int64())
	b := base.Big()
	b.SetInt64(99)
	a.Equal(int64(10), base.Int64())
}

func TestCompare(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	a.Equal(-1, New(1).Compare(New(2)))
	a.Equal(1, New(2).Compare(New(1)))
	a.Equal(0, New(2).Compare(New(2)))
	a.Equal(0, Nano{}.Compare(New(0)))
	a.True(Max.Equal(FromDayNano(MaxDays, 0)))
	a.Equal(1, Max.Compare(Min))
}

func TestDivModFloor(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		n    int64
		d    int64
		q    int64
		r    int64
	}{
		{"pos_pos", 7, 2, 3, 1},
		{"neg_pos", -7, 2, -4, 1},
		{"pos_neg", 7, -2, -4, -1},
		{"neg_neg", -7, -2, 3, -1},
		{"exact", 6, 3, 2, 0},
		{"neg_exact", -6, 3, -2, 0},
		{"minus_one_day", -1, NanoInDay, -1, NanoInDay - 1},
		{"zero", 0, 5, 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			q, r := New(tc.n).DivModFloor(tc.d)
			a.Equal(tc.q, q.Int64())
			a.Equal(tc.r, r)
			a.Equal(tc.q, New(tc.n).DivFloor(tc.d).Int64())
			a.Equal(tc.r, New(tc.n).ModFloor(tc.d))
		})
	}
}

func TestDivTrunc(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	q, r := New(-7).DivTrunc(2)
	a.Equal(int64(-3), q.Int64())
	a.Equal(int64(-1), r)
	q, r = New(7).DivTrunc(2)
	a.Equal(int64(3), q.Int64())
	a.Equal(int64(1), r)
}

func TestBounds(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	for _, n := range []Nano{Min, Max, Zero, New(-1)} {
		a.True(InBounds(n))
		got, err := Checked(n)
		r.NoError(err)
		a.True(got.Equal(n))
	}

	for _, n := range []Nano{Max.AddInt(1), Min.AddInt(-1)} {
		a.False(InBounds(n))
		_, err := Checked(n)
		r.Error(err)
		r.ErrorIs(err, errs.ErrOutOfRange)
		r.ErrorIs(err, errs.ErrRange)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	n, err := Parse(" -8640000000000000000000 ")
	r.NoError(err)
	a.True(n.Equal(Min))

	_, err = Parse("1.5")
	r.Error(err)
	r.ErrorIs(err, errs.ErrType)
	r.EqualError(err, `type: cannot parse "1.5" as nanoseconds`)
}

func TestJSON(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	data, err := json.Marshal(Max)
	r.NoError(err)
	a.Equal("8640000000000000000000", string(data))

	var n Nano
	r.NoError(json.Unmarshal(data, &n))
	a.True(n.Equal(Max))

	r.NoError(json.Unmarshal([]byte(`"-42"`), &n))
	a.Equal(int64(-42), n.Int64())

	err = json.Unmarshal([]byte(`"nope"`), &n)
	r.ErrorIs(err, errs.ErrType)
}

func TestFloat64(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 8.64e21, Max.Float64(), 1)
	assert.InDelta(t, -1.0, New(-1).Float64(), 0)
}

func TestFromBig(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	src := big.NewInt(42)
	n := FromBig(src)
	src.SetInt64(1)
	a.Equal(int64(42), n.Int64())
	a.Equal(int64(0), FromBig(nil).Int64())
}

func TestProperties(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("floor division reconstitutes the dividend", prop.ForAll(
		func(n int64, d int64) bool {
			if d == 0 {
				return true
			}
			q, r := New(n).DivModFloor(d)
			back := q.Mul(d).AddInt(r)
			if !back.Equal(New(n)) {
				return false
			}
			if d > 0 {
				return r >= 0 && r < d
			}
			return r <= 0 && r > d
		},
		gen.Int64(), gen.Int64Range(-NanoInDay, NanoInDay),
	))

	properties.Property("add and sub are inverse", prop.ForAll(
		func(x, y int64) bool {
			return New(x).Add(New(y)).Sub(New(y)).Equal(New(x))
		},
		gen.Int64(), gen.Int64(),
	))

	properties.Property("add commutes", prop.ForAll(
		func(x, y int64) bool {
			return New(x).Add(New(y)).Equal(New(y).Add(New(x)))
		},
		gen.Int64(), gen.Int64(),
	))

	properties.TestingRun(t)
}
