package domain

import (
	"errors"
	"math"
	"testing"
)

// TestSpeciesType_KnownConstituents checks the species classification of
// the potential-generating set.
func TestSpeciesType_KnownConstituents(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"M2", 2},
		{"S2", 2},
		{"N2", 2},
		{"K2", 2},
		{"K1", 1},
		{"O1", 1},
		{"P1", 1},
		{"Q1", 1},
		{"Z0", 0},
	}
	for _, tt := range tests {
		got, err := SpeciesType(tt.name)
		if err != nil {
			t.Errorf("SpeciesType(%q): unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SpeciesType(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// TestPotentialAmplitude_KnownConstituents checks the equilibrium
// amplitudes of the major constituents.
func TestPotentialAmplitude_KnownConstituents(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"M2", 0.242334},
		{"S2", 0.112841},
		{"N2", 0.046398},
		{"K2", 0.030704},
		{"K1", 0.141565},
		{"O1", 0.100514},
		{"P1", 0.046843},
		{"Q1", 0.019256},
		{"Z0", 0.0},
	}
	for _, tt := range tests {
		got, err := PotentialAmplitude(tt.name)
		if err != nil {
			t.Errorf("PotentialAmplitude(%q): unexpected error: %v", tt.name, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("PotentialAmplitude(%q) = %g, want %g", tt.name, got, tt.want)
		}
	}
}

// TestOrbitalFrequency_KnownConstituents spot-checks frequencies across
// species, including shallow-water and compound constituents.
func TestOrbitalFrequency_KnownConstituents(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"M2", 0.0001405189025086},
		{"S2", 0.0001454441043329},
		{"K1", 0.0000729211583579},
		{"O1", 0.0000675977441508},
		{"Mm", 0.0000026392030221},
		{"Mf", 0.0000053234146919},
		{"M4", 0.0002810378050173},
		{"M8", 0.0005620756090649},
		{"2N2", 0.0001352404964644},
		{"lambda2", 0.0001428049013108},
		{"2MK3", 0.0002081166466594},
		{"Z0", 0.0},
	}
	for _, tt := range tests {
		got, err := OrbitalFrequency(tt.name)
		if err != nil {
			t.Errorf("OrbitalFrequency(%q): unexpected error: %v", tt.name, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-18 {
			t.Errorf("OrbitalFrequency(%q) = %.16f, want %.16f", tt.name, got, tt.want)
		}
	}
}

// TestOrbitalFrequencyNames returns the full frequency table and every
// name resolves back through OrbitalFrequency.
func TestOrbitalFrequencyNames(t *testing.T) {
	names := OrbitalFrequencyNames()
	if len(names) != 38 {
		t.Errorf("expected 38 constituents, got %d", len(names))
	}
	for _, name := range names {
		if _, err := OrbitalFrequency(name); err != nil {
			t.Errorf("OrbitalFrequency(%q): unexpected error: %v", name, err)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

// TestCatalog_MissingConstituent verifies that lookups for unknown names
// return a MissingConstituentError naming the constituent and the table.
func TestCatalog_MissingConstituent(t *testing.T) {
	if _, err := SpeciesType("XYZ"); err == nil {
		t.Error("SpeciesType(\"XYZ\"): expected error, got nil")
	} else {
		var mce *MissingConstituentError
		if !errors.As(err, &mce) {
			t.Errorf("SpeciesType(\"XYZ\"): expected MissingConstituentError, got %T", err)
		} else if mce.Constituent != "XYZ" || mce.Table != "tidal species type" {
			t.Errorf("unexpected error fields: %+v", mce)
		}
	}

	// Mm has a frequency but no species or amplitude entry.
	if _, err := SpeciesType("Mm"); err == nil {
		t.Error("SpeciesType(\"Mm\"): expected error, got nil")
	}
	if _, err := PotentialAmplitude("Mm"); err == nil {
		t.Error("PotentialAmplitude(\"Mm\"): expected error, got nil")
	}
	if _, err := OrbitalFrequency("XYZ"); err == nil {
		t.Error("OrbitalFrequency(\"XYZ\"): expected error, got nil")
	}
}
