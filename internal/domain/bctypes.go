package domain

import (
	"fmt"
	"time"
)

// TidalDatabase selects which harmonic database supplies amplitude and
// phase for space-varying tidal forcing.
type TidalDatabase int

// Supported harmonic databases.
const (
	TPXO TidalDatabase = iota
	HAMTIDE
	FES
)

func (d TidalDatabase) String() string {
	switch d {
	case TPXO:
		return "TPXO"
	case HAMTIDE:
		return "HAMTIDE"
	case FES:
		return "FES"
	}
	return fmt.Sprintf("TidalDatabase(%d)", int(d))
}

// ParseTidalDatabase parses a database name, case-sensitive on the
// canonical uppercase forms.
func ParseTidalDatabase(s string) (TidalDatabase, error) {
	switch s {
	case "TPXO", "tpxo":
		return TPXO, nil
	case "HAMTIDE", "hamtide":
		return HAMTIDE, nil
	case "FES", "fes":
		return FES, nil
	}
	return 0, fmt.Errorf("unknown tidal database %q", s)
}

// TimeSeriesDatabase selects which model supplies space-varying time
// series data.
type TimeSeriesDatabase int

// Supported time-series databases.
const (
	HYCOM TimeSeriesDatabase = iota
)

func (d TimeSeriesDatabase) String() string {
	if d == HYCOM {
		return "HYCOM"
	}
	return fmt.Sprintf("TimeSeriesDatabase(%d)", int(d))
}

// TidesConfig carries the enabled constituents and the harmonic database
// for one tidal boundary variable.
type TidesConfig struct {
	Constituents ConstituentsConfig
	Database     TidalDatabase
}

// TimePoint is one sample of a uniform boundary time series.
type TimePoint struct {
	Time  time.Time
	Value float64
}

// TimeSeries is a time-ordered sequence of samples, uniform along the
// boundary.
type TimeSeries []TimePoint

// SpaceVaryingTimeSeriesConfig selects the source of a time- and
// space-varying boundary condition. The data itself is interpolated by
// an external collaborator; only the selection is carried here.
type SpaceVaryingTimeSeriesConfig struct {
	Database TimeSeriesDatabase
}

// Bctype maps a per-variable boundary configuration to the integer
// boundary-type code the solver reads. Codes are stable, hand-assigned
// integers; do not renumber.
type Bctype interface {
	Ibtype() int
}

// ElevationConfig is a boundary forcing configuration for surface
// elevation.
type ElevationConfig interface {
	Bctype
	isElevationConfig()
}

// ElevationUniformTimeSeries forces elevation with a time history,
// uniform along the boundary.
type ElevationUniformTimeSeries struct {
	Series TimeSeries
}

// ElevationConstant forces a constant elevation.
type ElevationConstant struct {
	Value float64
}

// ElevationTides forces elevation with tidal amplitudes and phases.
type ElevationTides struct {
	Tides TidesConfig
}

// ElevationSpaceVaryingTimeSeries forces elevation with a time- and
// space-varying series.
type ElevationSpaceVaryingTimeSeries struct {
	Series SpaceVaryingTimeSeriesConfig
}

// ElevationTidesAndSpaceVaryingTimeSeries combines tidal forcing with a
// space-varying series.
type ElevationTidesAndSpaceVaryingTimeSeries struct {
	Tides  TidesConfig
	Series SpaceVaryingTimeSeriesConfig
}

// ElevationEqualToZero clamps elevation to zero.
type ElevationEqualToZero struct{}

// Ibtype implements Bctype.
func (ElevationUniformTimeSeries) Ibtype() int              { return 1 }
func (ElevationConstant) Ibtype() int                       { return 2 }
func (ElevationTides) Ibtype() int                          { return 3 }
func (ElevationSpaceVaryingTimeSeries) Ibtype() int         { return 4 }
func (ElevationTidesAndSpaceVaryingTimeSeries) Ibtype() int { return 5 }
func (ElevationEqualToZero) Ibtype() int                    { return -1 }

func (ElevationUniformTimeSeries) isElevationConfig()              {}
func (ElevationConstant) isElevationConfig()                       {}
func (ElevationTides) isElevationConfig()                          {}
func (ElevationSpaceVaryingTimeSeries) isElevationConfig()         {}
func (ElevationTidesAndSpaceVaryingTimeSeries) isElevationConfig() {}
func (ElevationEqualToZero) isElevationConfig()                    {}

// VelocityConfig is a boundary forcing configuration for depth-averaged
// velocity.
type VelocityConfig interface {
	Bctype
	isVelocityConfig()
}

// VelocityUniformTimeSeries forces velocity via a discharge time history.
type VelocityUniformTimeSeries struct {
	Series TimeSeries
}

// VelocityConstant forces velocity via a constant discharge (negative
// for inflow).
type VelocityConstant struct {
	Discharge float64
}

// VelocityTides forces the velocity components with tidal amplitudes and
// phases.
type VelocityTides struct {
	Tides TidesConfig
}

// VelocitySpaceVaryingTimeSeries forces velocity with a time- and
// space-varying series.
type VelocitySpaceVaryingTimeSeries struct {
	Series SpaceVaryingTimeSeriesConfig
}

// VelocityTidesAndSpaceVaryingTimeSeries combines tidal forcing with a
// space-varying series.
type VelocityTidesAndSpaceVaryingTimeSeries struct {
	Tides  TidesConfig
	Series SpaceVaryingTimeSeriesConfig
}

// VelocityFlather applies a Flather radiation condition.
type VelocityFlather struct{}

// Ibtype implements Bctype.
func (VelocityUniformTimeSeries) Ibtype() int              { return 1 }
func (VelocityConstant) Ibtype() int                       { return 2 }
func (VelocityTides) Ibtype() int                          { return 3 }
func (VelocitySpaceVaryingTimeSeries) Ibtype() int         { return 4 }
func (VelocityTidesAndSpaceVaryingTimeSeries) Ibtype() int { return 5 }
func (VelocityFlather) Ibtype() int                        { return -1 }

func (VelocityUniformTimeSeries) isVelocityConfig()              {}
func (VelocityConstant) isVelocityConfig()                       {}
func (VelocityTides) isVelocityConfig()                          {}
func (VelocitySpaceVaryingTimeSeries) isVelocityConfig()         {}
func (VelocityTidesAndSpaceVaryingTimeSeries) isVelocityConfig() {}
func (VelocityFlather) isVelocityConfig()                        {}

// TemperatureConfig is a boundary forcing configuration for temperature.
// Each variant relaxes inflow toward its target with a nudging
// coefficient in [0, 1].
type TemperatureConfig interface {
	Bctype
	isTemperatureConfig()
	relaxation() float64
}

// TemperatureRelaxToUniformTimeSeries relaxes inflow temperature toward
// a time history, uniform along the boundary.
type TemperatureRelaxToUniformTimeSeries struct {
	Series     TimeSeries
	Relaxation float64
}

// TemperatureRelaxToConstant relaxes inflow temperature toward a fixed
// value.
type TemperatureRelaxToConstant struct {
	Value      float64
	Relaxation float64
}

// TemperatureRelaxToInitialConditions relaxes inflow temperature toward
// the initial condition field.
type TemperatureRelaxToInitialConditions struct {
	Relaxation float64
}

// TemperatureRelaxToSpaceVaryingTimeSeries relaxes inflow temperature
// toward a time- and space-varying series.
type TemperatureRelaxToSpaceVaryingTimeSeries struct {
	Series     SpaceVaryingTimeSeriesConfig
	Relaxation float64
}

// Ibtype implements Bctype.
func (TemperatureRelaxToUniformTimeSeries) Ibtype() int      { return 1 }
func (TemperatureRelaxToConstant) Ibtype() int               { return 2 }
func (TemperatureRelaxToInitialConditions) Ibtype() int      { return 3 }
func (TemperatureRelaxToSpaceVaryingTimeSeries) Ibtype() int { return 4 }

func (TemperatureRelaxToUniformTimeSeries) isTemperatureConfig()      {}
func (TemperatureRelaxToConstant) isTemperatureConfig()               {}
func (TemperatureRelaxToInitialConditions) isTemperatureConfig()      {}
func (TemperatureRelaxToSpaceVaryingTimeSeries) isTemperatureConfig() {}

func (c TemperatureRelaxToUniformTimeSeries) relaxation() float64      { return c.Relaxation }
func (c TemperatureRelaxToConstant) relaxation() float64               { return c.Relaxation }
func (c TemperatureRelaxToInitialConditions) relaxation() float64      { return c.Relaxation }
func (c TemperatureRelaxToSpaceVaryingTimeSeries) relaxation() float64 { return c.Relaxation }

// SalinityConfig is a boundary forcing configuration for salinity.
type SalinityConfig interface {
	Bctype
	isSalinityConfig()
	relaxation() float64
}

// SalinityRelaxToUniformTimeSeries relaxes inflow salinity toward a time
// history, uniform along the boundary.
type SalinityRelaxToUniformTimeSeries struct {
	Series     TimeSeries
	Relaxation float64
}

// SalinityRelaxToConstant relaxes inflow salinity toward a fixed value.
type SalinityRelaxToConstant struct {
	Value      float64
	Relaxation float64
}

// SalinityRelaxToInitialConditions relaxes inflow salinity toward the
// initial condition field.
type SalinityRelaxToInitialConditions struct {
	Relaxation float64
}

// SalinityRelaxToSpaceVaryingTimeSeries relaxes inflow salinity toward a
// time- and space-varying series.
type SalinityRelaxToSpaceVaryingTimeSeries struct {
	Series     SpaceVaryingTimeSeriesConfig
	Relaxation float64
}

// Ibtype implements Bctype.
func (SalinityRelaxToUniformTimeSeries) Ibtype() int      { return 1 }
func (SalinityRelaxToConstant) Ibtype() int               { return 2 }
func (SalinityRelaxToInitialConditions) Ibtype() int      { return 3 }
func (SalinityRelaxToSpaceVaryingTimeSeries) Ibtype() int { return 4 }

func (SalinityRelaxToUniformTimeSeries) isSalinityConfig()      {}
func (SalinityRelaxToConstant) isSalinityConfig()               {}
func (SalinityRelaxToInitialConditions) isSalinityConfig()      {}
func (SalinityRelaxToSpaceVaryingTimeSeries) isSalinityConfig() {}

func (c SalinityRelaxToUniformTimeSeries) relaxation() float64      { return c.Relaxation }
func (c SalinityRelaxToConstant) relaxation() float64               { return c.Relaxation }
func (c SalinityRelaxToInitialConditions) relaxation() float64      { return c.Relaxation }
func (c SalinityRelaxToSpaceVaryingTimeSeries) relaxation() float64 { return c.Relaxation }

// TidesConfigOf extracts the tidal configuration carried by a boundary
// config, if any. Only elevation and velocity variants carry tides.
func TidesConfigOf(cfg Bctype) (*TidesConfig, bool) {
	switch c := cfg.(type) {
	case ElevationTides:
		return &c.Tides, true
	case ElevationTidesAndSpaceVaryingTimeSeries:
		return &c.Tides, true
	case VelocityTides:
		return &c.Tides, true
	case VelocityTidesAndSpaceVaryingTimeSeries:
		return &c.Tides, true
	}
	return nil, false
}
