// Package physnum implements measured quantities: a value, an absolute
// uncertainty and a unit, with arithmetic that propagates the uncertainty and
// converts units.
//
// Propagation rules:
//
//   - [Number.Add], [Number.Sub]: absolute uncertainties add (worst case, not
//     root-sum-square).
//   - [Number.Mul], [Number.Div], [Number.Pow]: fractional uncertainties add and
//     are scaled by the result value.
//   - [Number.Apply]: half the spread between f(v+e) and f(v-e).
//
// The right operand of a binary operation is converted into the left
// operand's unit before combining. Plain numbers (ints, floats, numeric
// strings, decimals) are accepted as operands and take the left operand's unit
// with zero uncertainty.
//
// # Example
//
//	d := physnum.Must("44.48", "0.03", units.Millimetre)
//	r, _ := d.Div(2) // 22.24mm +/- 0.015mm
//
// # Units of products
//
// Products and quotients keep the left operand's unit. Composite units such as
// m^2 or m/s are not derived; [units.CombinedUnits] can track exponents for
// display when a caller needs them.
package physnum
