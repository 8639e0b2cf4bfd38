package physnum

import (
	"fmt"
	"strings"
	"sync"
)

// DimensionPolicy decides what happens when a binary operation mixes
// dimensions, e.g. a mass multiplied by a length.
type DimensionPolicy int

const (
	// PolicyStrict rejects mixed dimensions with ErrDimensionMismatch.
	PolicyStrict DimensionPolicy = iota

	// PolicyLegacy skips the conversion and combines the raw values, keeping
	// the left operand's unit. Older lab sheets multiply masses by lengths
	// and rely on this.
	PolicyLegacy
)

func (p DimensionPolicy) String() string {
	if p == PolicyLegacy {
		return "legacy"
	}
	return "strict"
}

func ParseDimensionPolicy(s string) (DimensionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PolicyStrict, nil
	case "legacy":
		return PolicyLegacy, nil
	}
	return PolicyStrict, fmt.Errorf("physnum: unknown dimension policy %q", s)
}

var (
	policyMu sync.RWMutex
	policy   = PolicyStrict
)

// SetDimensionPolicy sets the process-wide policy. Call it once at start-up.
func SetDimensionPolicy(p DimensionPolicy) {
	policyMu.Lock()
	policy = p
	policyMu.Unlock()
}

func CurrentDimensionPolicy() DimensionPolicy {
	policyMu.RLock()
	defer policyMu.RUnlock()
	return policy
}
