// Package convert converts values between units of the same family.
//
// Two closed families are supported: temperature (celsius, fahrenheit,
// kelvin) and linear distance (miles, yards, meters). Unit names are matched
// case-insensitively.
package convert

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConversionNotPossible is matched by every error Convert returns.
var ErrConversionNotPossible = errors.New("conversion not possible")

// NotPossibleError reports a unit pair that spans families or names an unknown unit
type NotPossibleError struct {
	From string
	To   string
}

func (e *NotPossibleError) Error() string {
	return fmt.Sprintf("cannot convert from %s to %s", e.From, e.To)
}

// Is makes errors.Is(err, ErrConversionNotPossible) hold
func (e *NotPossibleError) Is(target error) bool {
	return target == ErrConversionNotPossible
}

const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
	Miles      = "miles"
	Yards      = "yards"
	Meters     = "meters"
)

// metersPer holds the size of one unit expressed in meters
var metersPer = map[string]float64{
	Miles:  1609.344,
	Yards:  0.9144,
	Meters: 1.0,
}

var temperatures = map[string]bool{
	Celsius:    true,
	Fahrenheit: true,
	Kelvin:     true,
}

// Units lists every unit name Convert accepts, temperatures first
func Units() []string {
	return []string{Celsius, Fahrenheit, Kelvin, Miles, Yards, Meters}
}

// Convert converts value from one unit to another.
// Converting a unit to itself returns value unchanged.
func Convert(from, to string, value float64) (float64, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	if temperatures[from] && temperatures[to] {
		return convertTemperature(from, to, value), nil
	}

	fromFactor, okFrom := metersPer[from]
	toFactor, okTo := metersPer[to]
	if okFrom && okTo {
		if from == to {
			return value, nil
		}
		return value * (fromFactor / toFactor), nil
	}

	return 0, &NotPossibleError{From: from, To: to}
}

// convertTemperature applies the affine transform for one ordered pair.
// Both units must be known temperatures.
func convertTemperature(from, to string, value float64) float64 {
	if from == to {
		return value
	}

	switch from + ">" + to {
	case Celsius + ">" + Fahrenheit:
		return value*9/5 + 32
	case Celsius + ">" + Kelvin:
		return value + 273.15
	case Fahrenheit + ">" + Celsius:
		return (value - 32) * 5 / 9
	case Fahrenheit + ">" + Kelvin:
		return (value-32)*5/9 + 273.15
	case Kelvin + ">" + Celsius:
		return value - 273.15
	default: // kelvin > fahrenheit
		return (value-273.15)*9/5 + 32
	}
}
