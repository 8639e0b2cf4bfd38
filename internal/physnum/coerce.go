package physnum

import (
	"fmt"
	"strconv"

	"github.com/san-kum/labcalc/internal/decimal"
	"gopkg.in/inf.v0"
)

// toDecimal accepts the numeric representations allowed in constructors and
// as arithmetic operands.
func toDecimal(arg any) (decimal.Decimal, error) {
	switch v := arg.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			break
		}
		return *v, nil
	case *inf.Dec:
		if v == nil {
			break
		}
		return decimal.FromDec(v), nil
	case int:
		return decimal.FromInt(int64(v)), nil
	case int8:
		return decimal.FromInt(int64(v)), nil
	case int16:
		return decimal.FromInt(int64(v)), nil
	case int32:
		return decimal.FromInt(int64(v)), nil
	case int64:
		return decimal.FromInt(v), nil
	case uint:
		return parseNumeric(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return decimal.FromInt(int64(v)), nil
	case uint16:
		return decimal.FromInt(int64(v)), nil
	case uint32:
		return decimal.FromInt(int64(v)), nil
	case uint64:
		return parseNumeric(strconv.FormatUint(v, 10))
	case float32:
		if _, err := decimal.FromFloat(float64(v)); err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrType, err)
		}
		return parseNumeric(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		d, err := decimal.FromFloat(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrType, err)
		}
		return d, nil
	case string:
		return parseNumeric(v)
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %T", ErrType, arg)
}

func parseNumeric(s string) (decimal.Decimal, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrType, err)
	}
	return d, nil
}

// operand turns the right-hand side of an arithmetic operation into a Number.
// Plain numerics take the receiver's unit and zero uncertainty.
func (n Number) operand(arg any) (Number, error) {
	switch v := arg.(type) {
	case Number:
		return v, nil
	case *Number:
		if v == nil {
			return Number{}, fmt.Errorf("%w: nil *Number", ErrType)
		}
		return *v, nil
	}
	d, err := toDecimal(arg)
	if err != nil {
		return Number{}, err
	}
	return Number{value: d, unit: n.unit}, nil
}
