// Package domain implements the tidal harmonic factor engine and the
// boundary-forcing configuration model used to generate open-boundary
// forcing files for a coastal hydrodynamic solver.
package domain

import (
	"fmt"
	"sort"
)

// MissingConstituentError reports a catalog lookup for a constituent that
// the queried table does not define. This is a configuration defect, not
// recoverable user input.
type MissingConstituentError struct {
	Constituent string
	Table       string
}

func (e *MissingConstituentError) Error() string {
	return fmt.Sprintf("no entry for constituent %q in %s table", e.Constituent, e.Table)
}

// tidalSpeciesTypes maps constituent name to tidal species number:
// 0 = long period, 1 = diurnal, 2 = semidiurnal.
var tidalSpeciesTypes = map[string]int{
	"M2": 2,
	"S2": 2,
	"N2": 2,
	"K2": 2,
	"K1": 1,
	"O1": 1,
	"P1": 1,
	"Q1": 1,
	"Z0": 0,
}

// tidalPotentialAmplitudes maps constituent name to its equilibrium tidal
// potential amplitude in meters. Z0 generates no potential.
var tidalPotentialAmplitudes = map[string]float64{
	"M2": 0.242334,
	"S2": 0.112841,
	"N2": 0.046398,
	"K2": 0.030704,
	"K1": 0.141565,
	"O1": 0.100514,
	"P1": 0.046843,
	"Q1": 0.019256,
	"Z0": 0.,
}

// orbitalFrequencies maps constituent name to angular frequency in
// radians per second. Covers shallow-water and compound constituents in
// addition to the potential-generating set.
var orbitalFrequencies = map[string]float64{
	"M4":      0.0002810378050173,
	"M6":      0.0004215567080107,
	"MK3":     0.0002134400613513,
	"S4":      0.0002908882086657,
	"MN4":     0.0002783986019952,
	"S6":      0.0004363323129986,
	"M3":      0.0002107783537630,
	"2MK3":    0.0002081166466594,
	"M8":      0.0005620756090649,
	"MS4":     0.0002859630068415,
	"M2":      0.0001405189025086,
	"S2":      0.0001454441043329,
	"N2":      0.0001378796994865,
	"Nu2":     0.0001382329037065,
	"MU2":     0.0001355937006844,
	"2N2":     0.0001352404964644,
	"lambda2": 0.0001428049013108,
	"T2":      0.0001452450073529,
	"R2":      0.0001456432013128,
	"2SM2":    0.0001503693061571,
	"L2":      0.0001431581055307,
	"K2":      0.0001458423172006,
	"K1":      0.0000729211583579,
	"O1":      0.0000675977441508,
	"OO1":     0.0000782445730498,
	"S1":      0.0000727220521664,
	"M1":      0.0000702594512543,
	"J1":      0.0000755603613800,
	"RHO":     0.0000653117453487,
	"Q1":      0.0000649585411287,
	"2Q1":     0.0000623193381066,
	"P1":      0.0000725229459750,
	"Mm":      0.0000026392030221,
	"Ssa":     0.0000003982128677,
	"Sa":      0.0000001991061914,
	"Msf":     0.0000049252018242,
	"Mf":      0.0000053234146919,
	"Z0":      0.0,
}

// SpeciesType returns the tidal species number for a constituent.
func SpeciesType(name string) (int, error) {
	s, ok := tidalSpeciesTypes[name]
	if !ok {
		return 0, &MissingConstituentError{Constituent: name, Table: "tidal species type"}
	}
	return s, nil
}

// PotentialAmplitude returns the equilibrium tidal potential amplitude in
// meters for a constituent.
func PotentialAmplitude(name string) (float64, error) {
	a, ok := tidalPotentialAmplitudes[name]
	if !ok {
		return 0, &MissingConstituentError{Constituent: name, Table: "tidal potential amplitude"}
	}
	return a, nil
}

// OrbitalFrequency returns the angular frequency in radians per second
// for a constituent.
func OrbitalFrequency(name string) (float64, error) {
	f, ok := orbitalFrequencies[name]
	if !ok {
		return 0, &MissingConstituentError{Constituent: name, Table: "orbital frequency"}
	}
	return f, nil
}

// OrbitalFrequencyNames returns every constituent name present in the
// orbital frequency table, sorted.
func OrbitalFrequencyNames() []string {
	names := make([]string, 0, len(orbitalFrequencies))
	for name := range orbitalFrequencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
