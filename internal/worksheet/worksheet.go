// Package worksheet evaluates YAML lab worksheets: named measurements followed
// by an ordered list of calculation steps.
package worksheet

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/labcalc/internal/physnum"
	"github.com/san-kum/labcalc/internal/units"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownName = errors.New("worksheet: unknown name")
	ErrUnknownOp   = errors.New("worksheet: unknown operation")
	ErrArguments   = errors.New("worksheet: wrong arguments")
	ErrDuplicate   = errors.New("worksheet: name already bound")
)

// Sheet is a worksheet as written in YAML.
type Sheet struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description"`
	Measurements []Measurement `yaml:"measurements"`
	Steps        []Step        `yaml:"steps"`
}

// Measurement is either a single reading (Value) or a series of readings
// (Values) sharing one uncertainty and unit. Numbers are kept as written so
// 0.378 stays exactly 0.378.
type Measurement struct {
	Name        string   `yaml:"name"`
	Value       string   `yaml:"value,omitempty"`
	Values      []string `yaml:"values,omitempty"`
	Uncertainty string   `yaml:"uncertainty"`
	Unit        string   `yaml:"unit"`
}

// Step binds Name to the result of Op applied to Args. Args are names or
// numeric literals. Unit is the target of convert and change_unit; Func names
// the function for apply.
type Step struct {
	Name string   `yaml:"name"`
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`
	Unit string   `yaml:"unit,omitempty"`
	Func string   `yaml:"func,omitempty"`
}

// StepError reports the failing step by its 1-based position.
type StepError struct {
	Index int
	Name  string
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s = %s): %v", e.Index, e.Name, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sheet, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

func Parse(data []byte) (*Sheet, error) {
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func lookupUnit(symbol string) (units.Unit, error) {
	if symbol == "" {
		return units.Unit{}, nil
	}
	return units.Default.Lookup(symbol)
}

func (m Measurement) numbers() ([]physnum.Number, error) {
	u, err := lookupUnit(m.Unit)
	if err != nil {
		return nil, fmt.Errorf("measurement %s: %w", m.Name, err)
	}
	unc := m.Uncertainty
	if unc == "" {
		unc = "0"
	}

	switch {
	case m.Value != "" && len(m.Values) > 0:
		return nil, fmt.Errorf("measurement %s: %w: both value and values set", m.Name, ErrArguments)
	case m.Value != "":
		n, err := physnum.New(m.Value, unc, u)
		if err != nil {
			return nil, fmt.Errorf("measurement %s: %w", m.Name, err)
		}
		return []physnum.Number{n}, nil
	case len(m.Values) > 0:
		out := make([]physnum.Number, 0, len(m.Values))
		for i, v := range m.Values {
			n, err := physnum.New(v, unc, u)
			if err != nil {
				return nil, fmt.Errorf("measurement %s[%d]: %w", m.Name, i, err)
			}
			out = append(out, n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("measurement %s: %w: no value", m.Name, ErrArguments)
}
