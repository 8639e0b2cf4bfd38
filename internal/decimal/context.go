package decimal

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"gopkg.in/inf.v0"
)

const DefaultPrecision = 28

// Rounding names a rounding mode for results that exceed the precision.
type Rounding string

const (
	HalfEven Rounding = "half_even"
	HalfUp   Rounding = "half_up"
	HalfDown Rounding = "half_down"
	Down     Rounding = "down"
	Up       Rounding = "up"
	Floor    Rounding = "floor"
	Ceil     Rounding = "ceil"
)

func (r Rounding) rounder() (inf.Rounder, bool) {
	switch r {
	case HalfEven, "":
		return inf.RoundHalfEven, true
	case HalfUp:
		return inf.RoundHalfUp, true
	case HalfDown:
		return inf.RoundHalfDown, true
	case Down:
		return inf.RoundDown, true
	case Up:
		return inf.RoundUp, true
	case Floor:
		return inf.RoundFloor, true
	case Ceil:
		return inf.RoundCeil, true
	}
	return nil, false
}

// ParseRounding accepts the config spelling of a rounding mode.
func ParseRounding(s string) (Rounding, error) {
	r := Rounding(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := r.rounder(); !ok {
		return "", fmt.Errorf("decimal: unknown rounding mode %q", s)
	}
	if r == "" {
		r = HalfEven
	}
	return r, nil
}

// Context holds the significant-digit precision and rounding mode applied to
// arithmetic results.
type Context struct {
	Precision int
	Rounding  Rounding
}

func DefaultContext() Context {
	return Context{Precision: DefaultPrecision, Rounding: HalfEven}
}

func (c Context) Validate() error {
	if c.Precision <= 0 {
		return fmt.Errorf("decimal: precision must be positive, got %d", c.Precision)
	}
	if _, ok := c.Rounding.rounder(); !ok {
		return fmt.Errorf("decimal: unknown rounding mode %q", c.Rounding)
	}
	return nil
}

var (
	ctxMu  sync.RWMutex
	active = DefaultContext()
)

// SetContext replaces the process-wide context.
func SetContext(c Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Rounding == "" {
		c.Rounding = HalfEven
	}
	ctxMu.Lock()
	active = c
	ctxMu.Unlock()
	return nil
}

// CurrentContext returns the process-wide context.
func CurrentContext() Context {
	ctxMu.RLock()
	defer ctxMu.RUnlock()
	return active
}

// round trims z to the context precision. The second pass handles a carry
// that adds a leading digit (9.99 -> 10.0).
func (c Context) round(z *inf.Dec) *inf.Dec {
	r, _ := c.Rounding.rounder()
	for i := 0; i < 2; i++ {
		n := numDigits(z)
		if n <= c.Precision {
			return z
		}
		z = new(inf.Dec).Round(z, z.Scale()-inf.Scale(n-c.Precision), r)
	}
	return z
}

func numDigits(z *inf.Dec) int {
	u := new(big.Int).Abs(z.UnscaledBig())
	if u.Sign() == 0 {
		return 1
	}
	return len(u.Text(10))
}
