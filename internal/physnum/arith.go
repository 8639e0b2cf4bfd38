package physnum

import (
	"fmt"
	"math"

	"github.com/san-kum/labcalc/internal/decimal"
	"github.com/san-kum/labcalc/internal/units"
)

// fractional is |e/v|, 0 for a zero value. Propagation works on magnitudes so
// negative values never produce a negative uncertainty.
func fractional(x Number) decimal.Decimal {
	return x.FractionalUncertainty().Abs()
}

// prepare coerces other and converts it into the receiver's unit.
func (n Number) prepare(op string, other any) (Number, error) {
	b, err := n.operand(other)
	if err != nil {
		return Number{}, opErr(op, err)
	}
	b, err = reconcile(n, b)
	if err != nil {
		return Number{}, opErr(op, err)
	}
	return b, nil
}

func sum(x, y Number, unit units.Unit) Number {
	return Number{
		value:       x.value.Add(y.value),
		uncertainty: x.uncertainty.Add(y.uncertainty),
		unit:        unit,
	}
}

func difference(x, y Number, unit units.Unit) Number {
	return Number{
		value:       x.value.Sub(y.value),
		uncertainty: x.uncertainty.Add(y.uncertainty),
		unit:        unit,
	}
}

func product(x, y Number, unit units.Unit) Number {
	v := x.value.Mul(y.value)
	return Number{
		value:       v,
		uncertainty: fractional(x).Add(fractional(y)).Mul(v.Abs()),
		unit:        unit,
	}
}

func quotient(op string, x, y Number, unit units.Unit) (Number, error) {
	if y.value.IsZero() {
		return Number{}, opErr(op, ErrDivisionByZero)
	}
	v, err := x.value.Quo(y.value)
	if err != nil {
		return Number{}, opErr(op, err)
	}
	return Number{
		value:       v,
		uncertainty: fractional(x).Add(fractional(y)).Mul(v.Abs()),
		unit:        unit,
	}, nil
}

// Add returns n + other with absolute uncertainties summed.
func (n Number) Add(other any) (Number, error) {
	b, err := n.prepare("add", other)
	if err != nil {
		return Number{}, err
	}
	return sum(n, b, n.unit), nil
}

// Sub returns n - other; the uncertainties still add.
func (n Number) Sub(other any) (Number, error) {
	b, err := n.prepare("sub", other)
	if err != nil {
		return Number{}, err
	}
	return difference(n, b, n.unit), nil
}

// RSub returns other - n, keeping n's unit.
func (n Number) RSub(other any) (Number, error) {
	b, err := n.prepare("rsub", other)
	if err != nil {
		return Number{}, err
	}
	return difference(b, n, n.unit), nil
}

// Mul returns n * other. The result keeps n's unit.
func (n Number) Mul(other any) (Number, error) {
	b, err := n.prepare("mul", other)
	if err != nil {
		return Number{}, err
	}
	return product(n, b, n.unit), nil
}

// Div returns n / other.
func (n Number) Div(other any) (Number, error) {
	b, err := n.prepare("div", other)
	if err != nil {
		return Number{}, err
	}
	return quotient("div", n, b, n.unit)
}

// RDiv returns other / n, keeping n's unit.
func (n Number) RDiv(other any) (Number, error) {
	b, err := n.prepare("rdiv", other)
	if err != nil {
		return Number{}, err
	}
	return quotient("rdiv", b, n, n.unit)
}

// Inv returns 1/n. The unit of a reciprocal is not tracked, so the result has none.
func (n Number) Inv() (Number, error) {
	if n.value.IsZero() {
		return Number{}, opErr("inv", ErrDivisionByZero)
	}
	v, err := decimal.One().Quo(n.value)
	if err != nil {
		return Number{}, opErr("inv", err)
	}
	return Number{
		value:       v,
		uncertainty: fractional(n).Mul(v.Abs()),
	}, nil
}

// MaxPower bounds the exponent accepted by Pow. Pow multiplies once per
// factor, so the cost is linear in |exp|.
const MaxPower = 1000

// Pow raises n to an integer power by repeated multiplication, so the
// fractional uncertainty accumulates once per factor. n^0 is exactly 1 and a
// negative power inverts the positive result. Integral floats and decimals
// (2.0) count as integers.
func (n Number) Pow(exp any) (Number, error) {
	k, ok := integerExponent(exp)
	if !ok {
		return Number{}, opErr("pow", fmt.Errorf("%w: %v (%T)", ErrUnsupportedPower, exp, exp))
	}
	if k > MaxPower || k < -MaxPower {
		return Number{}, opErr("pow", fmt.Errorf("%w: |%d| exceeds %d", ErrUnsupportedPower, k, MaxPower))
	}
	if k == 0 {
		return Number{value: decimal.One(), unit: n.unit}, nil
	}

	count := k
	if count < 0 {
		count = -count
	}
	result := n
	for i := int64(1); i < count; i++ {
		result = product(result, n, n.unit)
	}

	if k < 0 {
		return result.Inv()
	}
	return result, nil
}

func integerExponent(exp any) (int64, bool) {
	switch v := exp.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return clampUint(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return clampUint(v)
	case float32:
		return integralFloat(float64(v))
	case float64:
		return integralFloat(v)
	case decimal.Decimal:
		if !v.Round(0).Equal(v) {
			return 0, false
		}
		if v.Abs().Cmp(decimal.FromInt(MaxPower)) > 0 {
			return math.MaxInt64, true
		}
		return integralFloat(v.Float64())
	}
	return 0, false
}

// Out-of-range exponents come back as MaxInt64 so Pow's bound check rejects them.
func clampUint(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(v), true
}

func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > MaxPower || f < -MaxPower {
		return math.MaxInt64, true
	}
	return int64(f), true
}

// Package-level forms of the operators for callers holding two Numbers.

func Add(a, b Number) (Number, error) { return a.Add(b) }

func Sub(a, b Number) (Number, error) { return a.Sub(b) }

func Mul(a, b Number) (Number, error) { return a.Mul(b) }

func Div(a, b Number) (Number, error) { return a.Div(b) }
