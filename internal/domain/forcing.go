package domain

import "fmt"

// Node is one mesh boundary node: its 1-based mesh identifier and its
// geographic position. The forcing logic only uses counts and order; the
// coordinates feed external harmonic interpolation.
type Node struct {
	ID  int
	Lon float64
	Lat float64
}

// OpenBoundary is a contiguous run of mesh boundary nodes where external
// forcing is applied, in mesh order.
type OpenBoundary struct {
	Nodes []Node
}

// NumVariables is the number of forced variable kinds per boundary
// segment: elevation, velocity, temperature, salinity, in that order.
const NumVariables = 4

// BoundaryForcingConfig merges per-boundary, per-variable forcing
// configurations over the mesh's open boundary segments. Built once from
// fully resolved configs and immutable thereafter.
type BoundaryForcingConfig struct {
	boundaries  []OpenBoundary
	elevation   map[int]ElevationConfig
	velocity    map[int]VelocityConfig
	temperature map[int]TemperatureConfig
	salinity    map[int]SalinityConfig
}

// NewBoundaryForcingConfig validates and freezes the per-variable
// mappings. Segment indices are 0-based; each must address an existing
// boundary. Temperature and salinity relaxation coefficients must lie in
// [0, 1]. Nil maps are treated as empty.
func NewBoundaryForcingConfig(
	boundaries []OpenBoundary,
	elevation map[int]ElevationConfig,
	velocity map[int]VelocityConfig,
	temperature map[int]TemperatureConfig,
	salinity map[int]SalinityConfig,
) (*BoundaryForcingConfig, error) {
	n := len(boundaries)
	for idx := range elevation {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("elevation config for boundary %d: mesh has %d open boundaries", idx+1, n)
		}
	}
	for idx := range velocity {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("velocity config for boundary %d: mesh has %d open boundaries", idx+1, n)
		}
	}
	for idx, cfg := range temperature {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("temperature config for boundary %d: mesh has %d open boundaries", idx+1, n)
		}
		if r := cfg.relaxation(); r < 0 || r > 1 {
			return nil, fmt.Errorf("temperature relaxation %g for boundary %d: must be in [0, 1]", r, idx+1)
		}
	}
	for idx, cfg := range salinity {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("salinity config for boundary %d: mesh has %d open boundaries", idx+1, n)
		}
		if r := cfg.relaxation(); r < 0 || r > 1 {
			return nil, fmt.Errorf("salinity relaxation %g for boundary %d: must be in [0, 1]", r, idx+1)
		}
	}
	return &BoundaryForcingConfig{
		boundaries:  boundaries,
		elevation:   elevation,
		velocity:    velocity,
		temperature: temperature,
		salinity:    salinity,
	}, nil
}

// NumBoundaries returns the number of open boundary segments.
func (c *BoundaryForcingConfig) NumBoundaries() int {
	return len(c.boundaries)
}

// Boundary returns the segment at 0-based index i.
func (c *BoundaryForcingConfig) Boundary(i int) OpenBoundary {
	return c.boundaries[i]
}

// Elevation returns the elevation config for segment i, if present.
func (c *BoundaryForcingConfig) Elevation(i int) (ElevationConfig, bool) {
	cfg, ok := c.elevation[i]
	return cfg, ok
}

// Velocity returns the velocity config for segment i, if present.
func (c *BoundaryForcingConfig) Velocity(i int) (VelocityConfig, bool) {
	cfg, ok := c.velocity[i]
	return cfg, ok
}

// Temperature returns the temperature config for segment i, if present.
func (c *BoundaryForcingConfig) Temperature(i int) (TemperatureConfig, bool) {
	cfg, ok := c.temperature[i]
	return cfg, ok
}

// Salinity returns the salinity config for segment i, if present.
func (c *BoundaryForcingConfig) Salinity(i int) (SalinityConfig, bool) {
	cfg, ok := c.salinity[i]
	return cfg, ok
}

// IbtypeRow returns the boundary-type codes for segment i in variable
// order (elevation, velocity, temperature, salinity). A variable with no
// config yields 0, distinct from explicit sentinels such as -1.
func (c *BoundaryForcingConfig) IbtypeRow(i int) [NumVariables]int {
	var row [NumVariables]int
	if cfg, ok := c.elevation[i]; ok {
		row[0] = cfg.Ibtype()
	}
	if cfg, ok := c.velocity[i]; ok {
		row[1] = cfg.Ibtype()
	}
	if cfg, ok := c.temperature[i]; ok {
		row[2] = cfg.Ibtype()
	}
	if cfg, ok := c.salinity[i]; ok {
		row[3] = cfg.Ibtype()
	}
	return row
}

// tidalConfigs yields the tidal configurations for segment i in variable
// order. Temperature and salinity are never tidal.
func (c *BoundaryForcingConfig) tidalConfigs(i int) []*TidesConfig {
	var out []*TidesConfig
	if cfg, ok := c.elevation[i]; ok {
		if tc, ok := TidesConfigOf(cfg); ok {
			out = append(out, tc)
		}
	}
	if cfg, ok := c.velocity[i]; ok {
		if tc, ok := TidesConfigOf(cfg); ok {
			out = append(out, tc)
		}
	}
	return out
}

// ActivePotentialConstituents unions the major enabled constituents over
// every segment's elevation and velocity tides, preserving first-seen
// order: segments in mesh order, elevation before velocity, constituents
// in field order.
func (c *BoundaryForcingConfig) ActivePotentialConstituents() *OrderedSet {
	set := NewOrderedSet()
	for i := range c.boundaries {
		for _, tc := range c.tidalConfigs(i) {
			set.AddAll(tc.Constituents.ActivePotentialConstituents().Values())
		}
	}
	return set
}

// ActiveForcingConstituents unions every enabled constituent over every
// segment's elevation and velocity tides, in the same first-seen order.
func (c *BoundaryForcingConfig) ActiveForcingConstituents() *OrderedSet {
	set := NewOrderedSet()
	for i := range c.boundaries {
		for _, tc := range c.tidalConfigs(i) {
			set.AddAll(tc.Constituents.ActiveForcingConstituents().Values())
		}
	}
	return set
}
