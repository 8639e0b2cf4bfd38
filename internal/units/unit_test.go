package units

import (
	"errors"
	"testing"

	"github.com/san-kum/labcalc/internal/decimal"
)

func TestSameDimension(t *testing.T) {
	tests := []struct {
		name string
		a, b Unit
		want bool
	}{
		{"mm and m", Millimetre, Metre, true},
		{"g and kg", Gram, Kilogram, true},
		{"s and min", Second, Minute, true},
		{"kg and m", Kilogram, Metre, false},
		{"s and g", Second, Gram, false},
		{"absent left", Unit{}, Metre, false},
		{"both absent", Unit{}, Unit{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDimension(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDimension() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConversionFactor(t *testing.T) {
	tests := []struct {
		name           string
		target, source Unit
		want           string
	}{
		{"mm into m", Metre, Millimetre, "0.001"},
		{"m into mm", Millimetre, Metre, "1000"},
		{"cm into mm", Millimetre, Centimetre, "10"},
		{"km into m", Metre, Kilometre, "1000"},
		{"g into kg", Kilogram, Gram, "0.001"},
		{"min into s", Second, Minute, "60"},
		{"same unit", Metre, Metre, "1"},
		{"mismatched dimensions", Metre, Kilogram, "1"},
		{"absent unit", Metre, Unit{}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversionFactor(tt.target, tt.source).String(); got != tt.want {
				t.Errorf("ConversionFactor() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name           string
		x              string
		target, source Unit
		want           string
	}{
		{"s into min", "150", Minute, Second, "2.5"},
		{"min into s", "2.5", Second, Minute, "150.0"},
		{"mm into m", "0.378", Metre, Millimetre, "0.000378"},
		{"mismatch", "3", Second, Metre, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(decimal.MustParse(tt.x), tt.target, tt.source)
			if got.String() != tt.want {
				t.Errorf("Convert() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDefine(t *testing.T) {
	hour := Define(Time, "h", "Time (h)", WithPower(2))
	if hour.Base != 60 {
		t.Errorf("expected time base 60, got %d", hour.Base)
	}
	if got := ConversionFactor(Second, hour).String(); got != "3600" {
		t.Errorf("h into s = %s, want 3600", got)
	}

	pound := Define("force", "lbf", "Force (lbf)")
	if pound.Power != 1 || pound.Base != 10 {
		t.Errorf("expected defaults power 1 base 10, got power %d base %d", pound.Power, pound.Base)
	}
	if pound.SI {
		t.Error("unit should not be SI unless requested")
	}
}

func TestReference_OneSIPerDimension(t *testing.T) {
	count := map[Dimension]int{}
	for _, u := range Reference() {
		if u.SI {
			count[u.Dimension]++
		}
	}
	for _, dim := range []Dimension{Mass, Length, Time} {
		if count[dim] != 1 {
			t.Errorf("dimension %s has %d SI units, want 1", dim, count[dim])
		}
	}
}

func TestUnitEquality(t *testing.T) {
	other := Define(Length, "m", "Length (m)", WithPower(3), AsSI())
	if other != Metre {
		t.Error("two metre values should compare equal")
	}
	if !(Unit{}).IsZero() || Metre.IsZero() {
		t.Error("IsZero mismatch")
	}
	if Metre.String() != "m" || Metre.GoString() != "Length (m)" {
		t.Errorf("unexpected string forms %q %q", Metre.String(), Metre.GoString())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	u, err := r.Lookup("mm")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if u != Millimetre {
		t.Errorf("expected millimetre, got %#v", u)
	}

	if _, err := r.Lookup("furlong"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}

	hour := Define(Time, "h", "Time (h)", WithPower(2))
	if err := r.Register(hour); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.Register(Define(Mass, "h", "clash")); err == nil {
		t.Error("expected error when re-registering symbol")
	}
	if err := r.Register(Unit{Symbol: "x"}); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("expected ErrInvalidUnit, got %v", err)
	}

	inch := Define(Length, "in", "Length (in)", WithBase(10), WithPower(1), AsSI())
	if err := r.Register(inch); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("second SI length unit: expected ErrInvalidUnit, got %v", err)
	}
	if _, err := r.Lookup("in"); err == nil {
		t.Error("rejected unit should not be registered")
	}
	if err := r.Register(Metre); err != nil {
		t.Errorf("re-registering the SI unit itself failed: %v", err)
	}
	if err := r.Register(Define(Dimension("Current"), "A", "Current (A)", AsSI())); err != nil {
		t.Errorf("SI unit for a new dimension failed: %v", err)
	}

	for i := 0; i < 50; i++ {
		si, ok := r.SI(Length)
		if !ok || si != Metre {
			t.Fatalf("SI(length) = %v, %v", si, ok)
		}
	}

	list := r.List()
	if len(list) != len(Reference())+2 {
		t.Errorf("expected %d units, got %d", len(Reference())+2, len(list))
	}
}

func TestCombinedUnits(t *testing.T) {
	c, err := NewCombinedUnits(Kilogram, Metre, Metre)
	if err != nil {
		t.Fatal(err)
	}
	if c.Power(Metre) != 2 || c.Power(Kilogram) != 1 {
		t.Errorf("unexpected powers: m=%d kg=%d", c.Power(Metre), c.Power(Kilogram))
	}
	if got := c.String(); got != "kg^1m^2" {
		t.Errorf("String() = %q", got)
	}

	if err := c.Divide(Second); err != nil {
		t.Fatal(err)
	}
	if c.Power(Second) != -1 {
		t.Errorf("expected s^-1, got %d", c.Power(Second))
	}

	sq, _ := NewMeasurementUnit(Second, 2)
	if err := c.MultiplyMeasurement(sq); err != nil {
		t.Fatal(err)
	}
	if c.Power(Second) != 1 {
		t.Errorf("expected s^1, got %d", c.Power(Second))
	}

	if err := c.DivideMeasurement(MeasurementUnit{Unit: Kilogram, Power: 1}); err != nil {
		t.Fatal(err)
	}
	if got := c.String(); got != "m^2s^1" {
		t.Errorf("cancelled units should be hidden, got %q", got)
	}
	if len(c.Units()) != 3 {
		t.Errorf("expected 3 tracked entries, got %d", len(c.Units()))
	}

	// mm is not folded into m.
	if err := c.Multiply(Millimetre); err != nil {
		t.Fatal(err)
	}
	if c.Power(Metre) != 2 || c.Power(Millimetre) != 1 {
		t.Error("different units of one dimension should be tracked separately")
	}

	if err := c.Multiply(Unit{}); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("expected ErrInvalidUnit, got %v", err)
	}
	if _, err := NewMeasurementUnit(Unit{}, 1); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("expected ErrInvalidUnit, got %v", err)
	}
}
