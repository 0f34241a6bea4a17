package domain

import (
	"fmt"
	"strings"
)

// MajorConstituents lists the eight constituents conventionally used for
// the tidal potential forcing term applied throughout the domain.
var MajorConstituents = []string{"Q1", "O1", "P1", "K1", "N2", "M2", "S2", "K2"}

// MinorConstituents lists the additional constituents that may be forced
// at open boundaries but are excluded from the potential term.
var MinorConstituents = []string{"Mm", "Mf", "M4", "MN4", "MS4", "2N2", "S1"}

// ConstituentsConfig selects which constituents are enabled for one
// boundary variable. The field set is closed; "2N2" is stored in TwoN2
// because Go identifiers cannot start with a digit, but it always
// round-trips to "2N2" externally.
type ConstituentsConfig struct {
	Q1    bool
	O1    bool
	P1    bool
	K1    bool
	N2    bool
	M2    bool
	S2    bool
	K2    bool
	Mm    bool
	Mf    bool
	M4    bool
	MN4   bool
	MS4   bool
	TwoN2 bool
	S1    bool
}

// constituentFields is the static (name, accessor) table used for generic
// flag iteration. Its order defines constituent insertion order in the
// derived sets and therefore in the output file.
var constituentFields = []struct {
	name string
	get  func(*ConstituentsConfig) bool
	set  func(*ConstituentsConfig, bool)
}{
	{"Q1", func(c *ConstituentsConfig) bool { return c.Q1 }, func(c *ConstituentsConfig, v bool) { c.Q1 = v }},
	{"O1", func(c *ConstituentsConfig) bool { return c.O1 }, func(c *ConstituentsConfig, v bool) { c.O1 = v }},
	{"P1", func(c *ConstituentsConfig) bool { return c.P1 }, func(c *ConstituentsConfig, v bool) { c.P1 = v }},
	{"K1", func(c *ConstituentsConfig) bool { return c.K1 }, func(c *ConstituentsConfig, v bool) { c.K1 = v }},
	{"N2", func(c *ConstituentsConfig) bool { return c.N2 }, func(c *ConstituentsConfig, v bool) { c.N2 = v }},
	{"M2", func(c *ConstituentsConfig) bool { return c.M2 }, func(c *ConstituentsConfig, v bool) { c.M2 = v }},
	{"S2", func(c *ConstituentsConfig) bool { return c.S2 }, func(c *ConstituentsConfig, v bool) { c.S2 = v }},
	{"K2", func(c *ConstituentsConfig) bool { return c.K2 }, func(c *ConstituentsConfig, v bool) { c.K2 = v }},
	{"Mm", func(c *ConstituentsConfig) bool { return c.Mm }, func(c *ConstituentsConfig, v bool) { c.Mm = v }},
	{"Mf", func(c *ConstituentsConfig) bool { return c.Mf }, func(c *ConstituentsConfig, v bool) { c.Mf = v }},
	{"M4", func(c *ConstituentsConfig) bool { return c.M4 }, func(c *ConstituentsConfig, v bool) { c.M4 = v }},
	{"MN4", func(c *ConstituentsConfig) bool { return c.MN4 }, func(c *ConstituentsConfig, v bool) { c.MN4 = v }},
	{"MS4", func(c *ConstituentsConfig) bool { return c.MS4 }, func(c *ConstituentsConfig, v bool) { c.MS4 = v }},
	{"2N2", func(c *ConstituentsConfig) bool { return c.TwoN2 }, func(c *ConstituentsConfig, v bool) { c.TwoN2 = v }},
	{"S1", func(c *ConstituentsConfig) bool { return c.S1 }, func(c *ConstituentsConfig, v bool) { c.S1 = v }},
}

// ConstituentNames returns the external names of every selectable
// constituent, in field order.
func ConstituentNames() []string {
	names := make([]string, len(constituentFields))
	for i, f := range constituentFields {
		names[i] = f.name
	}
	return names
}

// Values returns the flag values in field order.
func (c *ConstituentsConfig) Values() []bool {
	values := make([]bool, len(constituentFields))
	for i, f := range constituentFields {
		values[i] = f.get(c)
	}
	return values
}

// SetByName sets a flag by its external constituent name. A leading
// underscore (the internal escape for digit-leading names) is accepted
// and stripped.
func (c *ConstituentsConfig) SetByName(name string, value bool) error {
	external := strings.TrimPrefix(name, "_")
	for _, f := range constituentFields {
		if f.name == external {
			f.set(c, value)
			return nil
		}
	}
	return fmt.Errorf("no constituent field named %q", name)
}

// AllConstituentsConfig returns a config with every major and minor
// constituent enabled.
func AllConstituentsConfig() ConstituentsConfig {
	var c ConstituentsConfig
	for _, name := range MajorConstituents {
		_ = c.SetByName(name, true)
	}
	for _, name := range MinorConstituents {
		_ = c.SetByName(name, true)
	}
	return c
}

// MajorConstituentsConfig returns a config with only the major
// constituents enabled.
func MajorConstituentsConfig() ConstituentsConfig {
	var c ConstituentsConfig
	for _, name := range MajorConstituents {
		_ = c.SetByName(name, true)
	}
	return c
}

// MinorConstituentsConfig returns a config with only the minor
// constituents enabled.
func MinorConstituentsConfig() ConstituentsConfig {
	var c ConstituentsConfig
	for _, name := range MinorConstituents {
		_ = c.SetByName(name, true)
	}
	return c
}

// ActivePotentialConstituents returns, in field order, the enabled
// constituents that belong to the major list. The potential forcing term
// is conventionally restricted to major constituents even when minor
// ones are forced at the boundary.
func (c *ConstituentsConfig) ActivePotentialConstituents() *OrderedSet {
	apc := NewOrderedSet()
	for _, f := range constituentFields {
		if !f.get(c) {
			continue
		}
		for _, major := range MajorConstituents {
			if f.name == major {
				apc.Add(f.name)
				break
			}
		}
	}
	return apc
}

// ActiveForcingConstituents returns every enabled constituent in field
// order, major or minor.
func (c *ConstituentsConfig) ActiveForcingConstituents() *OrderedSet {
	afc := NewOrderedSet()
	for _, f := range constituentFields {
		if f.get(c) {
			afc.Add(f.name)
		}
	}
	return afc
}
