package units

import (
	"fmt"
	"strings"
)

// MeasurementUnit is a unit raised to an integer power, e.g. m^2.
type MeasurementUnit struct {
	Unit  Unit
	Power int
}

func NewMeasurementUnit(u Unit, power int) (MeasurementUnit, error) {
	if u.IsZero() {
		return MeasurementUnit{}, ErrInvalidUnit
	}
	return MeasurementUnit{Unit: u, Power: power}, nil
}

// Combinable reports whether u can fold into m by adjusting the power. Only the
// identical unit qualifies; mm and m stay separate entries.
func (m MeasurementUnit) Combinable(u Unit) bool {
	return SameDimension(m.Unit, u) && m.Unit == u
}

func (m MeasurementUnit) String() string {
	return fmt.Sprintf("%s^%d", m.Unit, m.Power)
}

// CombinedUnits accumulates the exponents of units seen across a chain of
// multiplications and divisions. It is bookkeeping only: it never converts
// values and never resolves a derived dimension such as velocity.
type CombinedUnits struct {
	units []MeasurementUnit
}

func NewCombinedUnits(initial ...Unit) (*CombinedUnits, error) {
	c := &CombinedUnits{}
	for _, u := range initial {
		if err := c.Multiply(u); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Multiply records a factor of u.
func (c *CombinedUnits) Multiply(u Unit) error {
	return c.MultiplyMeasurement(MeasurementUnit{Unit: u, Power: 1})
}

// Divide records a divisor of u.
func (c *CombinedUnits) Divide(u Unit) error {
	return c.DivideMeasurement(MeasurementUnit{Unit: u, Power: 1})
}

func (c *CombinedUnits) MultiplyMeasurement(m MeasurementUnit) error {
	if m.Unit.IsZero() {
		return ErrInvalidUnit
	}
	for i := range c.units {
		if c.units[i].Combinable(m.Unit) {
			c.units[i].Power += m.Power
			return nil
		}
	}
	c.units = append(c.units, m)
	return nil
}

func (c *CombinedUnits) DivideMeasurement(m MeasurementUnit) error {
	if m.Unit.IsZero() {
		return ErrInvalidUnit
	}
	p := m.Power
	if p < 0 {
		p = -p
	}
	for i := range c.units {
		if c.units[i].Combinable(m.Unit) {
			c.units[i].Power -= p
			return nil
		}
	}
	c.units = append(c.units, MeasurementUnit{Unit: m.Unit, Power: -p})
	return nil
}

// Units returns a copy of the tracked entries, including cancelled ones.
func (c *CombinedUnits) Units() []MeasurementUnit {
	out := make([]MeasurementUnit, len(c.units))
	copy(out, c.units)
	return out
}

// Power returns the accumulated exponent of u, 0 when untracked.
func (c *CombinedUnits) Power(u Unit) int {
	for _, m := range c.units {
		if m.Combinable(u) {
			return m.Power
		}
	}
	return 0
}

// String lists entries with a non-zero power, e.g. "kg^1m^2".
func (c *CombinedUnits) String() string {
	var sb strings.Builder
	for _, m := range c.units {
		if m.Power != 0 {
			sb.WriteString(m.String())
		}
	}
	return sb.String()
}
