package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

// Reference values computed independently from the Schureman element
// series for a 10-day run starting 2012-10-29 00:00 UTC.
func TestTidefac_ReferenceRun(t *testing.T) {
	start := time.Date(2012, 10, 29, 0, 0, 0, 0, time.UTC)
	duration := 10 * 24 * time.Hour

	tests := []struct {
		constituent string
		nodal       float64
		greenwich   float64
	}{
		{"M2", 1.020708200891, 147.005525248671},
		{"S2", 1.000000000000, 0.000000000000},
		{"N2", 1.020708200891, 9.634328960674},
		{"K2", 0.862890671063, 90.468965835623},
		{"K1", 0.947309394575, 315.536859211901},
		{"O1", 0.913862750495, 187.579237050391},
		{"P1", 1.000000000000, 52.269726080800},
		{"Q1", 0.913862750495, 50.208040762394},
		{"Mm", 1.070875094696, 137.371196287997},
		{"Mf", 0.817365536246, 311.847051147888},
		{"M4", 1.041845231367, 294.011050497342},
		{"MN4", 1.041845231367, 156.639854209323},
		{"MS4", 1.020708200891, 147.005525248671},
		{"2N2", 1.020708200891, 232.263132672684},
		{"S1", 1.000000000000, 180.000000000000},
	}
	for _, tt := range tests {
		tf, err := NewTidefac(start, duration, tt.constituent)
		if err != nil {
			t.Fatalf("NewTidefac(%q): %v", tt.constituent, err)
		}
		nodal, err := tf.NodalFactor()
		if err != nil {
			t.Errorf("NodalFactor(%q): unexpected error: %v", tt.constituent, err)
			continue
		}
		if math.Abs(nodal-tt.nodal) > 1e-6 {
			t.Errorf("NodalFactor(%q) = %.12f, want %.12f", tt.constituent, nodal, tt.nodal)
		}
		greenwich, err := tf.GreenwichFactor()
		if err != nil {
			t.Errorf("GreenwichFactor(%q): unexpected error: %v", tt.constituent, err)
			continue
		}
		if math.Abs(greenwich-tt.greenwich) > 1e-6 {
			t.Errorf("GreenwichFactor(%q) = %.12f, want %.12f", tt.constituent, greenwich, tt.greenwich)
		}
	}
}

// TestTidefac_CorrectionConstituents covers the branches that use the R
// and Q corrections plus long-period factors on other dates.
func TestTidefac_CorrectionConstituents(t *testing.T) {
	tests := []struct {
		constituent string
		start       time.Time
		duration    time.Duration
		nodal       float64
		greenwich   float64
	}{
		// Leap day start, mid-run sampling straddling March.
		{"L2", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), 48 * time.Hour, 0.655678821032, 174.185678672256},
		{"M1", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), 48 * time.Hour, 2.014373268450, 355.659108173215},
		{"Mm", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 120 * time.Hour, 0.903206805218, 294.805132903997},
		{"K2", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 120 * time.Hour, 1.240289879806, 211.414441828606},
	}
	for _, tt := range tests {
		tf, err := NewTidefac(tt.start, tt.duration, tt.constituent)
		if err != nil {
			t.Fatalf("NewTidefac(%q): %v", tt.constituent, err)
		}
		nodal, err := tf.NodalFactor()
		if err != nil {
			t.Errorf("NodalFactor(%q): unexpected error: %v", tt.constituent, err)
			continue
		}
		if math.Abs(nodal-tt.nodal) > 1e-6 {
			t.Errorf("NodalFactor(%q) = %.12f, want %.12f", tt.constituent, nodal, tt.nodal)
		}
		greenwich, err := tf.GreenwichFactor()
		if err != nil {
			t.Errorf("GreenwichFactor(%q): unexpected error: %v", tt.constituent, err)
			continue
		}
		if math.Abs(greenwich-tt.greenwich) > 1e-6 {
			t.Errorf("GreenwichFactor(%q) = %.12f, want %.12f", tt.constituent, greenwich, tt.greenwich)
		}
	}
}

// TestTidefac_GreenwichFactorRange verifies that equilibrium arguments
// always land in [0, 360) across constituents and dates.
func TestTidefac_GreenwichFactorRange(t *testing.T) {
	names := []string{
		"M2", "S2", "N2", "K2", "K1", "O1", "P1", "Q1",
		"Mm", "Mf", "M4", "MN4", "MS4", "2N2", "S1",
		"M6", "MK3", "S4", "Nu2", "S6", "MU2", "OO1", "lambda2",
		"M1", "J1", "Ssa", "Sa", "Msf", "RHO", "T2", "R2", "2Q1",
		"2SM2", "M3", "L2", "2MK3", "M8", "Z0",
	}
	dates := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2012, 10, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2050, 6, 15, 6, 0, 0, 0, time.UTC),
	}
	for _, start := range dates {
		for _, name := range names {
			tf, err := NewTidefac(start, 30*24*time.Hour, name)
			if err != nil {
				t.Fatalf("NewTidefac(%q): %v", name, err)
			}
			greenwich, err := tf.GreenwichFactor()
			if err != nil {
				t.Errorf("GreenwichFactor(%q) at %s: unexpected error: %v", name, start, err)
				continue
			}
			if greenwich < 0 || greenwich >= 360 {
				t.Errorf("GreenwichFactor(%q) at %s = %.6f, want [0, 360)", name, start, greenwich)
			}
			nodal, err := tf.NodalFactor()
			if err != nil {
				t.Errorf("NodalFactor(%q) at %s: unexpected error: %v", name, start, err)
				continue
			}
			if nodal <= 0 || math.IsNaN(nodal) {
				t.Errorf("NodalFactor(%q) at %s = %.6f, want positive", name, start, nodal)
			}
		}
	}
}

// TestTidefac_UnhandledConstituent checks the error type for names with
// no formula branch.
func TestTidefac_UnhandledConstituent(t *testing.T) {
	tf, err := NewTidefac(time.Date(2012, 10, 29, 0, 0, 0, 0, time.UTC), 24*time.Hour, "XYZ")
	if err != nil {
		t.Fatalf("NewTidefac: %v", err)
	}
	if _, err := tf.NodalFactor(); err == nil {
		t.Error("NodalFactor(\"XYZ\"): expected error, got nil")
	} else {
		var uce *UnhandledConstituentError
		if !errors.As(err, &uce) {
			t.Errorf("expected UnhandledConstituentError, got %T", err)
		} else if uce.Constituent != "XYZ" {
			t.Errorf("error names constituent %q, want \"XYZ\"", uce.Constituent)
		}
	}
	if _, err := tf.GreenwichFactor(); err == nil {
		t.Error("GreenwichFactor(\"XYZ\"): expected error, got nil")
	}
}

// TestNewTidefac_UnderscorePrefix verifies that the internal escape for
// digit-leading names is stripped.
func TestNewTidefac_UnderscorePrefix(t *testing.T) {
	start := time.Date(2012, 10, 29, 0, 0, 0, 0, time.UTC)
	tf, err := NewTidefac(start, 24*time.Hour, "_2N2")
	if err != nil {
		t.Fatalf("NewTidefac: %v", err)
	}
	if tf.Constituent() != "2N2" {
		t.Errorf("Constituent() = %q, want \"2N2\"", tf.Constituent())
	}
	escaped, err := tf.NodalFactor()
	if err != nil {
		t.Fatalf("NodalFactor: %v", err)
	}
	plain, err := mustTidefac(t, start, 24*time.Hour, "2N2").NodalFactor()
	if err != nil {
		t.Fatalf("NodalFactor: %v", err)
	}
	if escaped != plain {
		t.Errorf("NodalFactor differs between \"_2N2\" (%.12f) and \"2N2\" (%.12f)", escaped, plain)
	}
}

// TestNewTidefac_FractionalSeconds rejects durations with sub-second
// components.
func TestNewTidefac_FractionalSeconds(t *testing.T) {
	start := time.Date(2012, 10, 29, 0, 0, 0, 0, time.UTC)
	if _, err := NewTidefac(start, 24*time.Hour+500*time.Millisecond, "M2"); err == nil {
		t.Error("expected error for fractional-second duration, got nil")
	}
}

func mustTidefac(t *testing.T, start time.Time, d time.Duration, name string) *Tidefac {
	t.Helper()
	tf, err := NewTidefac(start, d, name)
	if err != nil {
		t.Fatalf("NewTidefac(%q): %v", name, err)
	}
	return tf
}
