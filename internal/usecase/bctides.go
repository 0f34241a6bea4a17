// Package usecase assembles boundary forcing configurations into the
// bctides file the solver reads at startup.
package usecase

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"go.ngs.io/bctides/internal/domain"
)

// Point is a geographic position along an open boundary.
type Point struct {
	Lon float64
	Lat float64
}

// ElevationConstants holds interpolated elevation amplitude (meters) and
// phase (degrees) for one boundary node.
type ElevationConstants struct {
	Amplitude float64
	Phase     float64
}

// VelocityConstants holds interpolated velocity component amplitudes and
// phases for one boundary node.
type VelocityConstants struct {
	UAmplitude float64
	UPhase     float64
	VAmplitude float64
	VPhase     float64
}

// HarmonicSource supplies per-node harmonic constants for tidal boundary
// bodies. Implementations interpolate from a harmonic database; the core
// never contacts one directly.
type HarmonicSource interface {
	Elevation(db domain.TidalDatabase, constituent string, points []Point) ([]ElevationConstants, error)
	Velocity(db domain.TidalDatabase, constituent string, points []Point) ([]VelocityConstants, error)
}

// ZeroHarmonicSource returns zero amplitude and phase for every node.
// Useful for tests and for producing a file skeleton before harmonic
// data is available.
type ZeroHarmonicSource struct{}

// Elevation implements HarmonicSource.
func (ZeroHarmonicSource) Elevation(_ domain.TidalDatabase, _ string, points []Point) ([]ElevationConstants, error) {
	return make([]ElevationConstants, len(points)), nil
}

// Velocity implements HarmonicSource.
func (ZeroHarmonicSource) Velocity(_ domain.TidalDatabase, _ string, points []Point) ([]VelocityConstants, error) {
	return make([]VelocityConstants, len(points)), nil
}

// Bctides is the fully resolved forcing specification for one run.
// Built once, rendered once; no mutation after construction.
type Bctides struct {
	startDate                 time.Time
	runDuration               time.Duration
	tidalPotentialCutoffDepth float64
	forcing                   *domain.BoundaryForcingConfig
	source                    HarmonicSource
}

// BctidesBuilder accumulates the fields of a Bctides value and validates
// them on Build.
type BctidesBuilder struct {
	startDate   *time.Time
	runDuration *time.Duration
	cutoffDepth *float64
	forcing     *domain.BoundaryForcingConfig
	source      HarmonicSource
}

// NewBctidesBuilder creates an empty builder.
func NewBctidesBuilder() *BctidesBuilder {
	return &BctidesBuilder{}
}

// StartDate sets the simulation start date.
func (b *BctidesBuilder) StartDate(t time.Time) *BctidesBuilder {
	b.startDate = &t
	return b
}

// RunDuration sets the simulation run duration.
func (b *BctidesBuilder) RunDuration(d time.Duration) *BctidesBuilder {
	b.runDuration = &d
	return b
}

// TidalPotentialCutoffDepth sets the depth below which the tidal
// potential term is applied.
func (b *BctidesBuilder) TidalPotentialCutoffDepth(d float64) *BctidesBuilder {
	b.cutoffDepth = &d
	return b
}

// Forcing sets the aggregated boundary forcing configuration.
func (b *BctidesBuilder) Forcing(f *domain.BoundaryForcingConfig) *BctidesBuilder {
	b.forcing = f
	return b
}

// HarmonicSource sets the amplitude/phase source for tidal boundary
// bodies. Defaults to ZeroHarmonicSource.
func (b *BctidesBuilder) HarmonicSource(s HarmonicSource) *BctidesBuilder {
	b.source = s
	return b
}

// Build validates the accumulated fields and returns an immutable
// Bctides value.
func (b *BctidesBuilder) Build() (*Bctides, error) {
	if b.startDate == nil {
		return nil, fmt.Errorf("uninitialized field on BctidesBuilder: start_date")
	}
	if b.runDuration == nil {
		return nil, fmt.Errorf("uninitialized field on BctidesBuilder: run_duration")
	}
	if b.cutoffDepth == nil {
		return nil, fmt.Errorf("uninitialized field on BctidesBuilder: tidal_potential_cutoff_depth")
	}
	if b.forcing == nil {
		return nil, fmt.Errorf("uninitialized field on BctidesBuilder: forcing")
	}
	if *b.cutoffDepth < 0 {
		return nil, fmt.Errorf("tidal_potential_cutoff_depth must be >= 0")
	}
	if *b.runDuration <= 0 {
		return nil, fmt.Errorf("run_duration must be positive")
	}
	if *b.runDuration != b.runDuration.Truncate(time.Second) {
		return nil, fmt.Errorf("run_duration %s is not a whole number of seconds", *b.runDuration)
	}
	source := b.source
	if source == nil {
		source = ZeroHarmonicSource{}
	}
	return &Bctides{
		startDate:                 *b.startDate,
		runDuration:               *b.runDuration,
		tidalPotentialCutoffDepth: *b.cutoffDepth,
		forcing:                   b.forcing,
		source:                    source,
	}, nil
}

// StartDate returns the simulation start date.
func (b *Bctides) StartDate() time.Time { return b.startDate }

// RunDuration returns the simulation run duration.
func (b *Bctides) RunDuration() time.Duration { return b.runDuration }

// Render writes the complete forcing file to w. The file is assembled in
// memory first; on any failure nothing is written, so output is all or
// nothing.
func (b *Bctides) Render(w io.Writer) error {
	var buf bytes.Buffer
	if err := b.renderTo(&buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (b *Bctides) renderTo(buf *bytes.Buffer) error {
	fmt.Fprintf(buf, "%s\n", b.startDate.UTC().Format("2006-01-02 15:04:05 UTC"))

	potential := b.forcing.ActivePotentialConstituents().Values()
	fmt.Fprintf(buf, "%d %.3f\n", len(potential), b.tidalPotentialCutoffDepth)
	for _, name := range potential {
		if err := b.renderPotentialConstituent(buf, name); err != nil {
			return err
		}
	}

	forcing := b.forcing.ActiveForcingConstituents().Values()
	fmt.Fprintf(buf, "%d\n", len(forcing))
	for _, name := range forcing {
		if err := b.renderForcingConstituent(buf, name); err != nil {
			return err
		}
	}

	fmt.Fprintf(buf, "%d\n", b.forcing.NumBoundaries())
	for i := 0; i < b.forcing.NumBoundaries(); i++ {
		if err := b.renderBoundary(buf, i, forcing); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bctides) renderPotentialConstituent(buf *bytes.Buffer, name string) error {
	tf, err := domain.NewTidefac(b.startDate, b.runDuration, name)
	if err != nil {
		return err
	}
	species, err := tf.SpeciesType()
	if err != nil {
		return err
	}
	amplitude, err := tf.PotentialAmplitude()
	if err != nil {
		return err
	}
	frequency, err := tf.OrbitalFrequency()
	if err != nil {
		return err
	}
	nodal, err := tf.NodalFactor()
	if err != nil {
		return err
	}
	greenwich, err := tf.GreenwichFactor()
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "%s\n", tf.Constituent())
	fmt.Fprintf(buf, "%d %.6f %.16f %.5f %.5f\n", species, amplitude, frequency, nodal, greenwich)
	return nil
}

func (b *Bctides) renderForcingConstituent(buf *bytes.Buffer, name string) error {
	tf, err := domain.NewTidefac(b.startDate, b.runDuration, name)
	if err != nil {
		return err
	}
	frequency, err := tf.OrbitalFrequency()
	if err != nil {
		return err
	}
	nodal, err := tf.NodalFactor()
	if err != nil {
		return err
	}
	greenwich, err := tf.GreenwichFactor()
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "%s\n", tf.Constituent())
	fmt.Fprintf(buf, "%.16f %.5f %.5f\n", frequency, nodal, greenwich)
	return nil
}

func (b *Bctides) renderBoundary(buf *bytes.Buffer, i int, forcing []string) error {
	boundary := b.forcing.Boundary(i)
	row := b.forcing.IbtypeRow(i)
	fmt.Fprintf(buf, "%d %d %d %d %d\n", len(boundary.Nodes), row[0], row[1], row[2], row[3])

	points := make([]Point, len(boundary.Nodes))
	for j, node := range boundary.Nodes {
		points[j] = Point{Lon: node.Lon, Lat: node.Lat}
	}

	if cfg, ok := b.forcing.Elevation(i); ok {
		if err := b.renderElevationBody(buf, cfg, points, forcing); err != nil {
			return fmt.Errorf("boundary %d elevation: %w", i+1, err)
		}
	}
	if cfg, ok := b.forcing.Velocity(i); ok {
		if err := b.renderVelocityBody(buf, cfg, points, forcing); err != nil {
			return fmt.Errorf("boundary %d velocity: %w", i+1, err)
		}
	}
	if cfg, ok := b.forcing.Temperature(i); ok {
		renderTracerBody(buf, cfg)
	}
	if cfg, ok := b.forcing.Salinity(i); ok {
		renderTracerBody(buf, cfg)
	}
	return nil
}

func (b *Bctides) renderElevationBody(buf *bytes.Buffer, cfg domain.ElevationConfig, points []Point, forcing []string) error {
	switch c := cfg.(type) {
	case domain.ElevationConstant:
		fmt.Fprintf(buf, "%.6f\n", c.Value)
	case domain.ElevationTides:
		return b.renderElevationHarmonics(buf, c.Tides, points, forcing)
	case domain.ElevationTidesAndSpaceVaryingTimeSeries:
		return b.renderElevationHarmonics(buf, c.Tides, points, forcing)
	}
	// Time-series and sentinel types take their data from companion
	// files; no inline body.
	return nil
}

func (b *Bctides) renderElevationHarmonics(buf *bytes.Buffer, tides domain.TidesConfig, points []Point, forcing []string) error {
	for _, name := range forcing {
		constants, err := b.source.Elevation(tides.Database, name, points)
		if err != nil {
			return err
		}
		if len(constants) != len(points) {
			return fmt.Errorf("harmonic source returned %d rows for %d nodes", len(constants), len(points))
		}
		fmt.Fprintf(buf, "%s\n", name)
		for _, k := range constants {
			fmt.Fprintf(buf, "%.6f %.6f\n", k.Amplitude, k.Phase)
		}
	}
	return nil
}

func (b *Bctides) renderVelocityBody(buf *bytes.Buffer, cfg domain.VelocityConfig, points []Point, forcing []string) error {
	switch c := cfg.(type) {
	case domain.VelocityConstant:
		fmt.Fprintf(buf, "%.6f\n", c.Discharge)
	case domain.VelocityTides:
		return b.renderVelocityHarmonics(buf, c.Tides, points, forcing)
	case domain.VelocityTidesAndSpaceVaryingTimeSeries:
		return b.renderVelocityHarmonics(buf, c.Tides, points, forcing)
	}
	return nil
}

func (b *Bctides) renderVelocityHarmonics(buf *bytes.Buffer, tides domain.TidesConfig, points []Point, forcing []string) error {
	for _, name := range forcing {
		constants, err := b.source.Velocity(tides.Database, name, points)
		if err != nil {
			return err
		}
		if len(constants) != len(points) {
			return fmt.Errorf("harmonic source returned %d rows for %d nodes", len(constants), len(points))
		}
		fmt.Fprintf(buf, "%s\n", name)
		for _, k := range constants {
			fmt.Fprintf(buf, "%.6f %.6f %.6f %.6f\n", k.UAmplitude, k.UPhase, k.VAmplitude, k.VPhase)
		}
	}
	return nil
}

// renderTracerBody emits the inline values for a temperature or salinity
// config: the constant target (if any) followed by the nudging factor.
func renderTracerBody(buf *bytes.Buffer, cfg domain.Bctype) {
	switch c := cfg.(type) {
	case domain.TemperatureRelaxToUniformTimeSeries:
		fmt.Fprintf(buf, "%.6f\n", c.Relaxation)
	case domain.TemperatureRelaxToConstant:
		fmt.Fprintf(buf, "%.6f\n%.6f\n", c.Value, c.Relaxation)
	case domain.TemperatureRelaxToInitialConditions:
		fmt.Fprintf(buf, "%.6f\n", c.Relaxation)
	case domain.TemperatureRelaxToSpaceVaryingTimeSeries:
		fmt.Fprintf(buf, "%.6f\n", c.Relaxation)
	case domain.SalinityRelaxToUniformTimeSeries:
		fmt.Fprintf(buf, "%.6f\n", c.Relaxation)
	case domain.SalinityRelaxToConstant:
		fmt.Fprintf(buf, "%.6f\n%.6f\n", c.Value, c.Relaxation)
	case domain.SalinityRelaxToInitialConditions:
		fmt.Fprintf(buf, "%.6f\n", c.Relaxation)
	case domain.SalinityRelaxToSpaceVaryingTimeSeries:
		fmt.Fprintf(buf, "%.6f\n", c.Relaxation)
	}
}
