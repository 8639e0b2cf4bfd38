// Package aggregate reduces lists of measured quantities to a single Number.
package aggregate

import (
	"errors"
	"fmt"

	"github.com/san-kum/labcalc/internal/decimal"
	"github.com/san-kum/labcalc/internal/physnum"
)

var ErrEmptyAggregate = errors.New("aggregate: empty list")

// Sum adds the numbers left to right starting from the first element, so the
// result is expressed in the first element's unit.
func Sum(nums []physnum.Number) (physnum.Number, error) {
	if len(nums) == 0 {
		return physnum.Number{}, fmt.Errorf("sum: %w", ErrEmptyAggregate)
	}
	total := nums[0]
	for i, n := range nums[1:] {
		var err error
		total, err = total.Add(n)
		if err != nil {
			return physnum.Number{}, fmt.Errorf("sum: element %d: %w", i+1, err)
		}
	}
	return total, nil
}

// Average divides the sum's value by N and its uncertainty by sqrt(N). The
// summed uncertainty is treated as the spread of the readings.
func Average(nums []physnum.Number) (physnum.Number, error) {
	total, err := Sum(nums)
	if err != nil {
		return physnum.Number{}, fmt.Errorf("average: %w", err)
	}
	n := int64(len(nums))
	v, err := total.Value().QuoInt(n)
	if err != nil {
		return physnum.Number{}, fmt.Errorf("average: %w", err)
	}
	e, err := overRootN(total.Uncertainty(), n)
	if err != nil {
		return physnum.Number{}, fmt.Errorf("average: %w", err)
	}
	return physnum.New(v, e, total.Unit())
}

// Mean is the standard error form: the mean value, with the mean reading
// uncertainty divided by sqrt(N). For N readings sharing one uncertainty e the
// result carries e/sqrt(N).
func Mean(nums []physnum.Number) (physnum.Number, error) {
	total, err := Sum(nums)
	if err != nil {
		return physnum.Number{}, fmt.Errorf("mean: %w", err)
	}
	n := int64(len(nums))
	v, err := total.Value().QuoInt(n)
	if err != nil {
		return physnum.Number{}, fmt.Errorf("mean: %w", err)
	}
	reading, err := total.Uncertainty().QuoInt(n)
	if err != nil {
		return physnum.Number{}, fmt.Errorf("mean: %w", err)
	}
	e, err := overRootN(reading, n)
	if err != nil {
		return physnum.Number{}, fmt.Errorf("mean: %w", err)
	}
	return physnum.New(v, e, total.Unit())
}

func overRootN(x decimal.Decimal, n int64) (decimal.Decimal, error) {
	root, err := decimal.FromInt(n).Sqrt()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return x.Quo(root)
}
