package physnum

import (
	"fmt"

	"github.com/san-kum/labcalc/internal/units"
)

func (n Number) needsConversion(u units.Unit) bool {
	if n.unit.IsZero() || u.IsZero() {
		return false
	}
	if !units.SameDimension(n.unit, u) {
		return false
	}
	return n.unit != u
}

// ChangeUnit converts the receiver into u in place. It does nothing when either
// side has no unit, the dimensions differ or the units are already the same.
// Other references to the same Number observe the change.
func (n *Number) ChangeUnit(u units.Unit) {
	if !n.needsConversion(u) {
		return
	}
	n.value = units.Convert(n.value, u, n.unit)
	n.uncertainty = units.Convert(n.uncertainty, u, n.unit)
	n.unit = u
}

// ConvertTo returns a copy expressed in u. The boolean is false, and the
// receiver is returned unchanged, when no conversion was needed or possible.
func (n Number) ConvertTo(u units.Unit) (Number, bool) {
	if !n.needsConversion(u) {
		return n, false
	}
	c := n
	c.ChangeUnit(u)
	return c, true
}

// ToSI converts into the SI unit of the receiver's dimension.
func (n Number) ToSI() (Number, bool) {
	if n.unit.IsZero() {
		return n, false
	}
	si, ok := units.Default.SI(n.unit.Dimension)
	if !ok {
		return n, false
	}
	return n.ConvertTo(si)
}

// WithUnit relabels the number without converting. Use it to attach a unit to
// a unitless result such as the output of Inv.
func (n Number) WithUnit(u units.Unit) Number {
	n.unit = u
	return n
}

// reconcile expresses b in a's unit so the raw values can be combined.
func reconcile(a, b Number) (Number, error) {
	if a.unit.IsZero() || b.unit.IsZero() {
		return b, nil
	}
	if !units.SameDimension(a.unit, b.unit) {
		if CurrentDimensionPolicy() == PolicyLegacy {
			return b, nil
		}
		return Number{}, fmt.Errorf("%w: %s (%s) and %s (%s)",
			ErrDimensionMismatch, a.unit, a.unit.Dimension, b.unit, b.unit.Dimension)
	}
	c, _ := b.ConvertTo(a.unit)
	return c, nil
}
