// Package decimal provides the arbitrary-precision signed decimal used for every
// measured value and uncertainty.
//
// Values are backed by [inf.Dec] and are immutable: every operation returns a
// new [Decimal]. Results of arithmetic are rounded to a process-wide number of
// significant digits held by the active [Context].
//
// # Example
//
//	decimal.SetContext(decimal.Context{Precision: 28, Rounding: decimal.HalfEven})
//	d := decimal.MustParse("0.378")
//	m := d.Mul(decimal.MustParse("0.001")) // 0.000378
//
// # Thread Safety
//
// Decimal values are safe to share. The context should be set once before any
// calculation; changing it mid-computation breaks reproducibility of chained
// results.
package decimal
