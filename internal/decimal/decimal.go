package decimal

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/inf.v0"
)

var (
	ErrSyntax         = errors.New("decimal: invalid numeric string")
	ErrNotFinite      = errors.New("decimal: value is NaN or infinite")
	ErrDivisionByZero = errors.New("decimal: division by zero")
	ErrNegativeSqrt   = errors.New("decimal: square root of a negative value")
)

// Decimal is an immutable arbitrary-precision decimal. The zero value is 0.
type Decimal struct {
	d *inf.Dec
}

func wrap(d *inf.Dec) Decimal { return Decimal{d: d} }

func (x Decimal) dec() *inf.Dec {
	if x.d == nil {
		return new(inf.Dec)
	}
	return x.d
}

func Zero() Decimal { return Decimal{} }

func One() Decimal { return FromInt(1) }

// New returns unscaled * 10^-scale.
func New(unscaled int64, scale int32) Decimal {
	return wrap(inf.NewDec(unscaled, inf.Scale(scale)))
}

func FromInt(i int64) Decimal {
	return wrap(inf.NewDec(i, 0))
}

// FromFloat converts f through its shortest decimal string so that 0.1 becomes
// exactly 0.1 rather than the nearest binary fraction.
func FromFloat(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, ErrNotFinite
	}
	return Parse(strconv.FormatFloat(f, 'f', -1, 64))
}

// FromDec copies an inf.Dec.
func FromDec(d *inf.Dec) Decimal {
	if d == nil {
		return Decimal{}
	}
	return wrap(new(inf.Dec).Set(d))
}

// MaxScale bounds the exponent of parsed literals: Parse rejects anything
// that would need more than MaxScale digits either side of the point.
const MaxScale = 10000

// Parse reads a decimal string with an optional sign, fraction and exponent
// ("-1.25", "3e-4"). Parsing is exact; no rounding is applied.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decimal{}, fmt.Errorf("%w: empty string", ErrSyntax)
	}

	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Decimal{}, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		mantissa, exp = s[:i], e
	}

	d, ok := new(inf.Dec).SetString(mantissa)
	if !ok {
		return Decimal{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	scale := int64(d.Scale()) - int64(exp)
	if scale > MaxScale || scale < -MaxScale {
		return Decimal{}, fmt.Errorf("%w: %q is out of range", ErrSyntax, s)
	}
	d.SetScale(inf.Scale(scale))
	return wrap(d), nil
}

func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Dec returns a copy of the underlying inf.Dec.
func (x Decimal) Dec() *inf.Dec {
	return new(inf.Dec).Set(x.dec())
}

func (x Decimal) Add(y Decimal) Decimal {
	z := new(inf.Dec).Add(x.dec(), y.dec())
	return wrap(CurrentContext().round(z))
}

func (x Decimal) Sub(y Decimal) Decimal {
	z := new(inf.Dec).Sub(x.dec(), y.dec())
	return wrap(CurrentContext().round(z))
}

func (x Decimal) Mul(y Decimal) Decimal {
	z := new(inf.Dec).Mul(x.dec(), y.dec())
	return wrap(CurrentContext().round(z))
}

// Quo returns x/y. Exact quotients keep their natural scale (1/1000 = 0.001);
// inexact ones carry the full context precision.
func (x Decimal) Quo(y Decimal) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, ErrDivisionByZero
	}
	c := CurrentContext()
	xd, yd := x.dec(), y.dec()

	if z := new(inf.Dec).QuoExact(xd, yd); z != nil {
		z = reduce(z, int32(xd.Scale()-yd.Scale()))
		return wrap(c.round(z)), nil
	}

	r, _ := c.Rounding.rounder()
	s := inf.Scale(c.Precision) - inf.Scale(adjusted(xd)-adjusted(yd))
	z := new(inf.Dec).QuoRound(xd, yd, s, r)
	return wrap(c.round(z)), nil
}

// QuoInt is shorthand for dividing by a small integer.
func (x Decimal) QuoInt(n int64) (Decimal, error) {
	return x.Quo(FromInt(n))
}

func (x Decimal) Neg() Decimal {
	return wrap(new(inf.Dec).Neg(x.dec()))
}

func (x Decimal) Abs() Decimal {
	return wrap(new(inf.Dec).Abs(x.dec()))
}

// Sqrt returns the square root rounded to the context precision. Perfect
// squares come back without padding zeros (sqrt(0.25) = 0.5).
func (x Decimal) Sqrt() (Decimal, error) {
	switch x.Sign() {
	case -1:
		return Decimal{}, ErrNegativeSqrt
	case 0:
		return Zero(), nil
	}

	c := CurrentContext()
	bits := uint(c.Precision*4 + 64)
	f, _, err := big.ParseFloat(x.String(), 10, bits, big.ToNearestEven)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	root := new(big.Float).SetPrec(bits).Sqrt(f)

	z, err := Parse(root.Text('e', c.Precision+4))
	if err != nil {
		return Decimal{}, err
	}
	zd := c.round(z.dec())

	sq := new(inf.Dec).Mul(zd, zd)
	if sq.Cmp(x.dec()) == 0 {
		xs := x.dec().Scale()
		ideal := int32(xs / 2)
		if xs > 0 && xs%2 != 0 {
			ideal++
		}
		zd = reduce(zd, ideal)
	}
	return wrap(zd), nil
}

// PowInt returns base^exp exactly for exp >= 0 and rounded for exp < 0.
func PowInt(base int64, exp int) (Decimal, error) {
	if exp == 0 {
		return One(), nil
	}
	n := exp
	if n < 0 {
		n = -n
	}
	p := new(big.Int).Exp(big.NewInt(base), big.NewInt(int64(n)), nil)
	d := wrap(inf.NewDecBig(p, 0))
	if exp > 0 {
		return d, nil
	}
	return One().Quo(d)
}

func (x Decimal) Cmp(y Decimal) int {
	return x.dec().Cmp(y.dec())
}

func (x Decimal) Equal(y Decimal) bool {
	return x.Cmp(y) == 0
}

func (x Decimal) Sign() int {
	return x.dec().Sign()
}

func (x Decimal) IsZero() bool {
	return x.Sign() == 0
}

// Scale is the number of digits after the decimal point (negative for
// trailing zeros folded into the exponent).
func (x Decimal) Scale() int32 {
	return int32(x.dec().Scale())
}

// Float64 converts through the string form; precision beyond float64 is lost.
func (x Decimal) Float64() float64 {
	f, _ := strconv.ParseFloat(x.String(), 64)
	return f
}

// Round rounds x to the given number of places using the context rounding mode.
func (x Decimal) Round(places int32) Decimal {
	r, _ := CurrentContext().Rounding.rounder()
	return wrap(new(inf.Dec).Round(x.dec(), inf.Scale(places), r))
}

func (x Decimal) String() string {
	return x.dec().String()
}

func (x Decimal) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Decimal) UnmarshalText(b []byte) error {
	d, err := Parse(string(b))
	if err != nil {
		return err
	}
	*x = d
	return nil
}

// adjusted is the exponent of the leading digit: 0 for 1.5, 2 for 150, -3 for 0.0015.
func adjusted(d *inf.Dec) int {
	return numDigits(d) - int(d.Scale()) - 1
}

// reduce strips trailing zeros while the scale stays at or above minScale.
func reduce(d *inf.Dec, minScale int32) *inf.Dec {
	u := new(big.Int).Set(d.UnscaledBig())
	s := d.Scale()
	if u.Sign() == 0 {
		return inf.NewDec(0, inf.Scale(minScale))
	}
	ten := big.NewInt(10)
	q, r := new(big.Int), new(big.Int)
	for s > inf.Scale(minScale) {
		q.QuoRem(u, ten, r)
		if r.Sign() != 0 {
			break
		}
		u.Set(q)
		s--
	}
	return inf.NewDecBig(u, s)
}
