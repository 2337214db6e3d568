package domain

import "fmt"

const (
	lbPerKg = 2.2046226218
	cmPerIn = 2.54
)

// ToKilograms converts a weight in "kg" or "lb" to kilograms. An empty unit
// means kilograms.
func ToKilograms(v float64, unit string) (float64, error) {
	switch unit {
	case "", "kg":
		return v, nil
	case "lb":
		return v / lbPerKg, nil
	default:
		return 0, fmt.Errorf("weight unit must be \"kg\" or \"lb\", got %q", unit)
	}
}

// ToCentimeters converts a height in "cm", "m" or "in" to centimetres. An
// empty unit means centimetres.
func ToCentimeters(v float64, unit string) (float64, error) {
	switch unit {
	case "", "cm":
		return v, nil
	case "m":
		return v * 100, nil
	case "in":
		return v * cmPerIn, nil
	default:
		return 0, fmt.Errorf("height unit must be \"cm\", \"m\" or \"in\", got %q", unit)
	}
}
