package convert

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestConvert_Temperature(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		value    float64
		expected float64
	}{
		{"celsius", "kelvin", 0, 273.15},
		{"celsius", "kelvin", 100, 373.15},
		{"celsius", "fahrenheit", 100, 212},
		{"celsius", "fahrenheit", -40, -40},
		{"fahrenheit", "celsius", 32, 0},
		{"fahrenheit", "celsius", 77, 25},
		{"fahrenheit", "kelvin", -40, 233.15},
		{"kelvin", "celsius", 273.15, 0},
		{"kelvin", "fahrenheit", 373.15, 212},
		{"kelvin", "fahrenheit", 0, -459.67},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			got, err := Convert(tt.from, tt.to, tt.value)
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if !almostEqual(got, tt.expected, 0.01) {
				t.Errorf("Convert(%q, %q, %v) = %v, want %v", tt.from, tt.to, tt.value, got, tt.expected)
			}
		})
	}
}

func TestConvert_Distance(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		value    float64
		expected float64
	}{
		{"miles", "meters", 1, 1609.344},
		{"meters", "miles", 1609.344, 1},
		{"yards", "meters", 1, 0.9144},
		{"meters", "yards", 1, 1.09361},
		{"miles", "yards", 1, 1760},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			got, err := Convert(tt.from, tt.to, tt.value)
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if !almostEqual(got, tt.expected, 0.0001) {
				t.Errorf("Convert(%q, %q, %v) = %v, want %v", tt.from, tt.to, tt.value, got, tt.expected)
			}
		})
	}
}

func TestConvert_SameUnitIsIdentity(t *testing.T) {
	values := []float64{0, -273.15, 123.456, 1e9}
	for _, unit := range Units() {
		for _, v := range values {
			got, err := Convert(unit, unit, v)
			if err != nil {
				t.Fatalf("Convert(%q, %q) unexpected error: %v", unit, unit, err)
			}
			if got != v {
				t.Errorf("Convert(%q, %q, %v) = %v, want identity", unit, unit, v, got)
			}
		}
	}
}

func TestConvert_CaseInsensitive(t *testing.T) {
	got, err := Convert("Celsius", "FAHRENHEIT", 100)
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if got != 212 {
		t.Errorf("Convert() = %v, want 212", got)
	}
}

func TestConvert_NotPossible(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"temperature to distance", "celsius", "meters"},
		{"distance to temperature", "miles", "kelvin"},
		{"unknown unit", "parsecs", "meters"},
		{"empty units", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []float64{0, 10, -5.5} {
				_, err := Convert(tt.from, tt.to, v)
				if !errors.Is(err, ErrConversionNotPossible) {
					t.Fatalf("Convert(%q, %q, %v) error = %v, want ErrConversionNotPossible", tt.from, tt.to, v, err)
				}

				var npe *NotPossibleError
				if !errors.As(err, &npe) {
					t.Fatalf("error should be *NotPossibleError, got %T", err)
				}
			}
		})
	}
}

func TestNotPossibleError_Message(t *testing.T) {
	_, err := Convert("Celsius", "Meters", 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "cannot convert from celsius to meters" {
		t.Errorf("Error() = %q", err.Error())
	}
}
