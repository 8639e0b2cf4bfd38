package physnum

import (
	"fmt"

	"github.com/san-kum/labcalc/internal/decimal"
	"github.com/san-kum/labcalc/internal/units"
)

var hundred = decimal.FromInt(100)

// Number is a measured quantity. Operations never modify their operands;
// ChangeUnit is the only method that mutates the receiver.
type Number struct {
	value       decimal.Decimal
	uncertainty decimal.Decimal
	unit        units.Unit
}

// New builds a Number from numeric arguments. value and uncertainty may be a
// decimal.Decimal, *inf.Dec, any Go integer or float, or a numeric string.
// Floats go through their shortest string form. unit may be the zero Unit.
func New(value, uncertainty any, unit units.Unit) (Number, error) {
	v, err := toDecimal(value)
	if err != nil {
		return Number{}, opErr("new", err)
	}
	e, err := toDecimal(uncertainty)
	if err != nil {
		return Number{}, opErr("new", err)
	}
	if e.Sign() < 0 {
		return Number{}, opErr("new", fmt.Errorf("%w: %s", ErrNegativeUncertainty, e))
	}
	return Number{value: v, uncertainty: e, unit: unit}, nil
}

// Must is New for literals; it panics on error.
func Must(value, uncertainty any, unit units.Unit) Number {
	n, err := New(value, uncertainty, unit)
	if err != nil {
		panic(err)
	}
	return n
}

// Exact builds a Number with zero uncertainty.
func Exact(value any, unit units.Unit) (Number, error) {
	return New(value, 0, unit)
}

func (n Number) Value() decimal.Decimal { return n.value }

func (n Number) Uncertainty() decimal.Decimal { return n.uncertainty }

func (n Number) Unit() units.Unit { return n.unit }

func (n Number) HasUnit() bool { return !n.unit.IsZero() }

// ValueString renders the value, optionally followed by the unit symbol.
func (n Number) ValueString(withUnit bool) string {
	if withUnit {
		return n.value.String() + n.unit.Symbol
	}
	return n.value.String()
}

// UncertaintyString renders the absolute uncertainty, optionally followed by
// the unit symbol.
func (n Number) UncertaintyString(withUnit bool) string {
	if withUnit {
		return n.uncertainty.String() + n.unit.Symbol
	}
	return n.uncertainty.String()
}

// FractionalUncertainty is uncertainty/value, or 0 when the value is 0.
func (n Number) FractionalUncertainty() decimal.Decimal {
	if n.value.IsZero() {
		return decimal.Zero()
	}
	f, _ := n.uncertainty.Quo(n.value)
	return f
}

func (n Number) PercentageUncertainty() decimal.Decimal {
	return n.FractionalUncertainty().Mul(hundred)
}

func (n Number) PercentageString() string {
	return n.PercentageUncertainty().String() + "%"
}

// Upper is the largest value allowed by the uncertainty.
func (n Number) Upper() decimal.Decimal {
	return n.value.Add(n.uncertainty)
}

// Lower is the smallest value allowed by the uncertainty.
func (n Number) Lower() decimal.Decimal {
	return n.value.Sub(n.uncertainty)
}

// Equal reports numeric equality of value and uncertainty and identical units.
func (n Number) Equal(o Number) bool {
	return n.unit == o.unit && n.value.Equal(o.value) && n.uncertainty.Equal(o.uncertainty)
}

func (n Number) String() string {
	return n.Render(FormatPlain, true)
}

// GoString is the debugging form, e.g. Number(0.378, 0.0005, Length (mm)).
func (n Number) GoString() string {
	return fmt.Sprintf("Number(%s, %s, %#v)", n.value, n.uncertainty, n.unit)
}
