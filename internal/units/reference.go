package units

// Reference units. Powers are relative to the smallest unit of each dimension,
// so only differences between them matter.
var (
	Gram     = Define(Mass, "g", "Mass (g)", WithPower(0))
	Kilogram = Define(Mass, "kg", "Mass (kg)", WithPower(3), AsSI())

	Millimetre = Define(Length, "mm", "Length (mm)", WithPower(0))
	Centimetre = Define(Length, "cm", "Length (cm)", WithPower(1))
	Metre      = Define(Length, "m", "Length (m)", WithPower(3), AsSI())
	Kilometre  = Define(Length, "km", "Length (km)", WithPower(6))

	Second = Define(Time, "s", "Time (s)", WithPower(0), AsSI())
	Minute = Define(Time, "min", "Time (min)", WithPower(1))
)

// Reference returns the built-in units in display order.
func Reference() []Unit {
	return []Unit{
		Gram, Kilogram,
		Millimetre, Centimetre, Metre, Kilometre,
		Second, Minute,
	}
}
