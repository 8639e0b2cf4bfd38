package worksheet

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/labcalc/internal/aggregate"
	"github.com/san-kum/labcalc/internal/decimal"
	"github.com/san-kum/labcalc/internal/logger"
	"github.com/san-kum/labcalc/internal/physnum"
	"github.com/san-kum/labcalc/internal/units"
)

// Result is one named value produced by a step. Units holds the exponents
// accumulated by mul, div, rdiv, inv and pow steps ("m^1s^-1"); arithmetic keeps
// only the left operand's unit, so this is the record of what was combined.
type Result struct {
	Name   string
	Op     string
	Number physnum.Number
	Units  string
}

// Evaluation holds every binding after a run. Results lists step outputs in
// step order.
type Evaluation struct {
	Sheet   string
	Results []Result

	values   map[string]*physnum.Number
	series   map[string][]physnum.Number
	combined map[string]*units.CombinedUnits
}

// Lookup returns the single value bound to name.
func (e *Evaluation) Lookup(name string) (physnum.Number, bool) {
	n, ok := e.values[name]
	if !ok {
		return physnum.Number{}, false
	}
	return *n, true
}

// Series returns the readings of a series measurement.
func (e *Evaluation) Series(name string) ([]physnum.Number, bool) {
	s, ok := e.series[name]
	return s, ok
}

var functions = map[string]physnum.Func{
	"sqrt": func(x decimal.Decimal) (decimal.Decimal, error) { return x.Sqrt() },
	"sin":  physnum.FloatFunc(math.Sin),
	"cos":  physnum.FloatFunc(math.Cos),
	"tan":  physnum.FloatFunc(math.Tan),
	"log":  physnum.FloatFunc(math.Log),
	"exp":  physnum.FloatFunc(math.Exp),
}

type binaryOp func(physnum.Number, any) (physnum.Number, error)

var binaryOps = map[string]binaryOp{
	"add":  physnum.Number.Add,
	"sub":  physnum.Number.Sub,
	"rsub": physnum.Number.RSub,
	"mul":  physnum.Number.Mul,
	"div":  physnum.Number.Div,
	"rdiv": physnum.Number.RDiv,
}

type aggregateOp func([]physnum.Number) (physnum.Number, error)

var aggregateOps = map[string]aggregateOp{
	"sum":     aggregate.Sum,
	"average": aggregate.Average,
	"mean":    aggregate.Mean,
}

// Run evaluates the measurements and then each step in order. It stops at the
// first failing step, or between steps when ctx is done.
func Run(ctx context.Context, sheet *Sheet, log *logger.Logger) (*Evaluation, error) {
	if sheet == nil {
		return nil, fmt.Errorf("%w: nil sheet", ErrArguments)
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("sheet", sheet.Name)

	ev := &Evaluation{
		Sheet:   sheet.Name,
		Results: make([]Result, 0, len(sheet.Steps)),
		values:   make(map[string]*physnum.Number),
		series:   make(map[string][]physnum.Number),
		combined: make(map[string]*units.CombinedUnits),
	}

	for _, m := range sheet.Measurements {
		if ev.bound(m.Name) {
			return nil, fmt.Errorf("measurement %s: %w", m.Name, ErrDuplicate)
		}
		nums, err := m.numbers()
		if err != nil {
			return nil, err
		}
		if len(m.Values) > 0 {
			ev.series[m.Name] = nums
		} else {
			n := nums[0]
			ev.values[m.Name] = &n
		}
		log.Debug("measurement loaded", "name", m.Name, "readings", len(nums))
	}

	for i, step := range sheet.Steps {
		if err := ctx.Err(); err != nil {
			return ev, err
		}

		n, err := ev.eval(step)
		if err != nil {
			log.Error("step failed", "index", i+1, "name", step.Name, "op", step.Op, "error", err)
			return ev, &StepError{Index: i + 1, Name: step.Name, Op: step.Op, Err: err}
		}

		combined := ev.combine(step)
		changeUnit := strings.EqualFold(strings.TrimSpace(step.Op), "change_unit")
		if !changeUnit {
			ev.values[step.Name] = &n
		}
		res := Result{Name: step.Name, Op: step.Op, Number: n}
		if combined != nil {
			ev.combined[step.Name] = combined
			res.Units = combined.String()
		} else {
			delete(ev.combined, step.Name)
		}
		if changeUnit {
			delete(ev.combined, step.Args[0])
		}
		ev.Results = append(ev.Results, res)
		log.Debug("step evaluated", "index", i+1, "name", step.Name, "op", step.Op, "result", n)
	}

	log.Info("worksheet evaluated", "steps", len(sheet.Steps), "measurements", len(sheet.Measurements))
	return ev, nil
}

func (e *Evaluation) bound(name string) bool {
	_, v := e.values[name]
	_, s := e.series[name]
	return v || s
}

func (e *Evaluation) eval(step Step) (physnum.Number, error) {
	if step.Name == "" {
		return physnum.Number{}, fmt.Errorf("%w: step has no name", ErrArguments)
	}
	op := strings.ToLower(strings.TrimSpace(step.Op))

	if f, ok := binaryOps[op]; ok {
		if err := wantArgs(step, 2); err != nil {
			return physnum.Number{}, err
		}
		a, err := e.number(step.Args[0])
		if err != nil {
			return physnum.Number{}, err
		}
		b, err := e.operand(step.Args[1])
		if err != nil {
			return physnum.Number{}, err
		}
		return f(a, b)
	}

	if f, ok := aggregateOps[op]; ok {
		if len(step.Args) == 0 {
			return physnum.Number{}, fmt.Errorf("%w: %s needs at least one argument", ErrArguments, op)
		}
		var list []physnum.Number
		for _, arg := range step.Args {
			if s, ok := e.series[arg]; ok {
				list = append(list, s...)
				continue
			}
			n, err := e.number(arg)
			if err != nil {
				return physnum.Number{}, err
			}
			list = append(list, n)
		}
		return f(list)
	}

	switch op {
	case "inv":
		if err := wantArgs(step, 1); err != nil {
			return physnum.Number{}, err
		}
		a, err := e.number(step.Args[0])
		if err != nil {
			return physnum.Number{}, err
		}
		return a.Inv()

	case "pow":
		if err := wantArgs(step, 2); err != nil {
			return physnum.Number{}, err
		}
		a, err := e.number(step.Args[0])
		if err != nil {
			return physnum.Number{}, err
		}
		k, err := decimal.Parse(step.Args[1])
		if err != nil {
			return physnum.Number{}, fmt.Errorf("%w: exponent %q", physnum.ErrUnsupportedPower, step.Args[1])
		}
		return a.Pow(k)

	case "convert", "change_unit":
		if err := wantArgs(step, 1); err != nil {
			return physnum.Number{}, err
		}
		target, err := lookupUnit(step.Unit)
		if err != nil {
			return physnum.Number{}, err
		}
		if target.IsZero() {
			return physnum.Number{}, fmt.Errorf("%w: %s needs a unit", ErrArguments, op)
		}
		p, ok := e.values[step.Args[0]]
		if !ok {
			return physnum.Number{}, fmt.Errorf("%w: %s", ErrUnknownName, step.Args[0])
		}
		if p.HasUnit() && !units.SameDimension(p.Unit(), target) {
			return physnum.Number{}, fmt.Errorf("%w: cannot express %s in %s", physnum.ErrDimensionMismatch, p.Unit(), target)
		}
		if op == "convert" {
			c, _ := p.ConvertTo(target)
			return c, nil
		}
		// change_unit rebinds both names to the same converted value.
		p.ChangeUnit(target)
		e.values[step.Name] = p
		return *p, nil

	case "apply":
		if err := wantArgs(step, 1); err != nil {
			return physnum.Number{}, err
		}
		f, ok := functions[strings.ToLower(step.Func)]
		if !ok {
			return physnum.Number{}, fmt.Errorf("%w: function %q", ErrUnknownOp, step.Func)
		}
		a, err := e.number(step.Args[0])
		if err != nil {
			return physnum.Number{}, err
		}
		return a.Apply(f)
	}

	return physnum.Number{}, fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
}

// combine tracks the unit exponents of a successful mul, div, rdiv, inv or pow
// step. It returns nil for every other op and when no operand carries a unit.
func (e *Evaluation) combine(step Step) *units.CombinedUnits {
	op := strings.ToLower(strings.TrimSpace(step.Op))
	c := &units.CombinedUnits{}

	switch op {
	case "mul", "div", "rdiv":
		var leftUnit units.Unit
		if n, ok := e.values[step.Args[0]]; ok {
			leftUnit = n.Unit()
		}
		left := e.unitsOf(step.Args[0], units.Unit{})
		right := e.unitsOf(step.Args[1], leftUnit)
		switch op {
		case "mul":
			merge(c, left, 1)
			merge(c, right, 1)
		case "div":
			merge(c, left, 1)
			merge(c, right, -1)
		default:
			merge(c, right, 1)
			merge(c, left, -1)
		}
	case "inv":
		merge(c, e.unitsOf(step.Args[0], units.Unit{}), -1)
	case "pow":
		k, err := decimal.Parse(step.Args[1])
		if err != nil {
			return nil
		}
		merge(c, e.unitsOf(step.Args[0], units.Unit{}), int(k.Float64()))
	default:
		return nil
	}

	if c.String() == "" {
		return nil
	}
	return c
}

// unitsOf returns the recorded exponents for name, or its unit to the first
// power. A unit sharing into's dimension is recorded as into, since the
// arithmetic converts it before combining.
func (e *Evaluation) unitsOf(name string, into units.Unit) []units.MeasurementUnit {
	if c, ok := e.combined[name]; ok {
		return c.Units()
	}
	n, ok := e.values[name]
	if !ok || !n.HasUnit() {
		return nil
	}
	u := n.Unit()
	if units.SameDimension(u, into) {
		u = into
	}
	return []units.MeasurementUnit{{Unit: u, Power: 1}}
}

func merge(c *units.CombinedUnits, ms []units.MeasurementUnit, sign int) {
	for _, m := range ms {
		_ = c.MultiplyMeasurement(units.MeasurementUnit{Unit: m.Unit, Power: m.Power * sign})
	}
}

func wantArgs(step Step, n int) error {
	if len(step.Args) != n {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArguments, step.Op, n, len(step.Args))
	}
	return nil
}

// number resolves a name or a literal to a Number. Literals have no unit.
func (e *Evaluation) number(arg string) (physnum.Number, error) {
	if n, ok := e.values[arg]; ok {
		return *n, nil
	}
	if _, ok := e.series[arg]; ok {
		return physnum.Number{}, fmt.Errorf("%w: %s is a series; reduce it with sum, average or mean", ErrArguments, arg)
	}
	if d, err := decimal.Parse(arg); err == nil {
		return physnum.Exact(d, units.Unit{})
	}
	return physnum.Number{}, fmt.Errorf("%w: %s", ErrUnknownName, arg)
}

// operand is number for the right-hand side, where a literal takes the left
// operand's unit instead.
func (e *Evaluation) operand(arg string) (any, error) {
	if n, ok := e.values[arg]; ok {
		return *n, nil
	}
	if _, ok := e.series[arg]; ok {
		return nil, fmt.Errorf("%w: %s is a series; reduce it with sum, average or mean", ErrArguments, arg)
	}
	if d, err := decimal.Parse(arg); err == nil {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownName, arg)
}
