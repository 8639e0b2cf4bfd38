package physnum

import (
	"fmt"

	"github.com/san-kum/labcalc/internal/decimal"
)

// Func is a single-argument function over decimals.
type Func func(decimal.Decimal) (decimal.Decimal, error)

// Apply evaluates f at the value and at both bounds. The new uncertainty is
// half the spread between f(v+e) and f(v-e). The unit is carried over
// unchanged, which is only right for functions that preserve dimension; x^2
// keeps the linear unit tag.
func (n Number) Apply(f Func) (Number, error) {
	v, err := f(n.value)
	if err != nil {
		return Number{}, opErr("apply", err)
	}
	upper, err := f(n.Upper())
	if err != nil {
		return Number{}, opErr("apply", fmt.Errorf("upper bound: %w", err))
	}
	lower, err := f(n.Lower())
	if err != nil {
		return Number{}, opErr("apply", fmt.Errorf("lower bound: %w", err))
	}

	half, _ := upper.Sub(lower).Abs().QuoInt(2)
	return Number{value: v, uncertainty: half, unit: n.unit}, nil
}

// ApplyFloat is Apply for float64 functions such as math.Sin. Inputs and
// outputs pass through float64, so results carry binary rounding error.
func (n Number) ApplyFloat(f func(float64) float64) (Number, error) {
	return n.Apply(FloatFunc(f))
}

// FloatFunc adapts a float64 function to Func.
func FloatFunc(f func(float64) float64) Func {
	return func(x decimal.Decimal) (decimal.Decimal, error) {
		return decimal.FromFloat(f(x.Float64()))
	}
}
