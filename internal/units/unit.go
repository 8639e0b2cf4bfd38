package units

import (
	"errors"
	"fmt"

	"github.com/san-kum/labcalc/internal/decimal"
)

var (
	// ErrInvalidUnit indicates an absent or malformed unit where one is required.
	ErrInvalidUnit = errors.New("units: not a valid unit")

	// ErrUnknownUnit indicates a registry lookup for an unregistered symbol.
	ErrUnknownUnit = errors.New("units: unknown unit symbol")
)

// Dimension is the category of physical measurement a unit belongs to. Two
// units are convertible only when their dimensions are equal.
type Dimension string

const (
	Mass   Dimension = "mass"
	Length Dimension = "length"
	Time   Dimension = "time"
)

// DefaultBase is the step size between units of the dimension: 60 for time
// (seconds to minutes), 10 for everything else.
func (d Dimension) DefaultBase() int {
	if d == Time {
		return 60
	}
	return 10
}

func (d Dimension) String() string { return string(d) }

// Unit identifies a concrete scale within a dimension. The scale relative to
// other units of the same dimension is Base^Power. The zero Unit means "no unit".
type Unit struct {
	Symbol    string
	Name      string
	Dimension Dimension
	Base      int
	Power     int
	SI        bool
}

// Option customises a unit built with Define.
type Option func(*Unit)

func WithBase(base int) Option {
	return func(u *Unit) { u.Base = base }
}

func WithPower(power int) Option {
	return func(u *Unit) { u.Power = power }
}

func AsSI() Option {
	return func(u *Unit) { u.SI = true }
}

// Define builds a unit. Power defaults to 1 and Base to the dimension's step size.
func Define(dim Dimension, symbol, name string, opts ...Option) Unit {
	u := Unit{
		Symbol:    symbol,
		Name:      name,
		Dimension: dim,
		Base:      dim.DefaultBase(),
		Power:     1,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// IsZero reports whether u is the absent unit.
func (u Unit) IsZero() bool {
	return u == Unit{}
}

func (u Unit) Validate() error {
	if u.Dimension == "" {
		return fmt.Errorf("%w: missing dimension", ErrInvalidUnit)
	}
	if u.Base < 2 {
		return fmt.Errorf("%w: base %d for %q", ErrInvalidUnit, u.Base, u.Symbol)
	}
	return nil
}

func (u Unit) String() string { return u.Symbol }

// GoString mirrors the descriptive name, e.g. "Length (mm)".
func (u Unit) GoString() string {
	if u.IsZero() {
		return "<no unit>"
	}
	return u.Name
}

// SameDimension reports whether a and b measure the same kind of quantity.
// An absent unit is never the same dimension as anything.
func SameDimension(a, b Unit) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a.Dimension == b.Dimension
}

// ConversionFactor returns the multiplier that converts a value expressed in
// source into target: Base_s^Power_s / Base_t^Power_t. Units of different
// dimensions yield 1; callers check compatibility with SameDimension first.
func ConversionFactor(target, source Unit) decimal.Decimal {
	if !SameDimension(target, source) {
		return decimal.One()
	}
	if target.Base == source.Base && target.Power == source.Power {
		return decimal.One()
	}

	num, err := decimal.PowInt(int64(source.Base), source.Power)
	if err != nil {
		return decimal.One()
	}
	den, err := decimal.PowInt(int64(target.Base), target.Power)
	if err != nil {
		return decimal.One()
	}
	f, err := num.Quo(den)
	if err != nil {
		return decimal.One()
	}
	return f
}

// Convert expresses x, measured in source, in target. It multiplies before
// dividing so that conversions between bases (s and min) round-trip exactly
// whenever the result is representable. x is returned unchanged when the
// units measure different dimensions.
func Convert(x decimal.Decimal, target, source Unit) decimal.Decimal {
	if !SameDimension(target, source) {
		return x
	}
	if target.Base == source.Base && target.Power == source.Power {
		return x
	}
	num, err := decimal.PowInt(int64(source.Base), source.Power)
	if err != nil {
		return x
	}
	den, err := decimal.PowInt(int64(target.Base), target.Power)
	if err != nil {
		return x
	}
	y, err := x.Mul(num).Quo(den)
	if err != nil {
		return x
	}
	return y
}
