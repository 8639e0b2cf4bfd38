package units

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps unit symbols to units. It starts with the reference set and
// accepts additional units through Register.
type Registry struct {
	mu    sync.RWMutex
	units map[string]Unit
}

func NewRegistry() *Registry {
	r := &Registry{units: make(map[string]Unit)}
	for _, u := range Reference() {
		r.units[u.Symbol] = u
	}
	return r
}

// Default is the registry used by the worksheet and CLI layers.
var Default = NewRegistry()

func (r *Registry) Register(u Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidUnit)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.units[u.Symbol]; ok && existing != u {
		return fmt.Errorf("units: symbol %q already registered as %s", u.Symbol, existing.Name)
	}
	if u.SI {
		if si, ok := r.si(u.Dimension); ok && si.Symbol != u.Symbol {
			return fmt.Errorf("%w: %s already has SI unit %s", ErrInvalidUnit, u.Dimension, si.Symbol)
		}
	}
	r.units[u.Symbol] = u
	return nil
}

func (r *Registry) Lookup(symbol string) (Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[symbol]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}
	return u, nil
}

// SI returns the SI unit of the given dimension, if one is registered.
// Register keeps it unique.
func (r *Registry) SI(dim Dimension) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.si(dim)
}

func (r *Registry) si(dim Dimension) (Unit, bool) {
	for _, u := range r.units {
		if u.Dimension == dim && u.SI {
			return u, true
		}
	}
	return Unit{}, false
}

// List returns all registered units sorted by dimension then scale.
func (r *Registry) List() []Unit {
	r.mu.RLock()
	out := make([]Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Dimension != out[j].Dimension {
			return out[i].Dimension < out[j].Dimension
		}
		if out[i].Power != out[j].Power {
			return out[i].Power < out[j].Power
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
