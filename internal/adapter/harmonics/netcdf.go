// Package harmonics samples tidal amplitude and phase for boundary nodes
// from local NetCDF harmonic database extracts (HAMTIDE/FES/TPXO style
// regular lat/lon grids).
package harmonics

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/bctides/internal/domain"
	"go.ngs.io/bctides/internal/usecase"
)

// FileConfig defines the expected NetCDF file structure.
type FileConfig struct {
	// File naming patterns; {constituent} is replaced by the lowercase
	// constituent name.
	ElevationPattern string // E.g., "{constituent}.hamtide11a.nc".
	VelocityPattern  string // E.g., "HAMcurrent11a_{constituent}.nc".

	// Variable names in the NetCDF files.
	LatVarName       string
	LonVarName       string
	AmplitudeVarName string
	PhaseVarName     string
	UAmplitudeVar    string
	UPhaseVar        string
	VAmplitudeVar    string
	VPhaseVar        string
}

// DefaultConfig returns the HAMTIDE file layout.
func DefaultConfig() FileConfig {
	return FileConfig{
		ElevationPattern: "{constituent}.hamtide11a.nc",
		VelocityPattern:  "HAMcurrent11a_{constituent}.nc",
		LatVarName:       "LAT",
		LonVarName:       "LON",
		AmplitudeVarName: "AMPL",
		PhaseVarName:     "PHAS",
		UAmplitudeVar:    "UAMP",
		UPhaseVar:        "UPHA",
		VAmplitudeVar:    "VAMP",
		VPhaseVar:        "VPHA",
	}
}

// NetCDFSource implements usecase.HarmonicSource against a directory of
// NetCDF files, one per constituent. Grids are cached after first load.
type NetCDFSource struct {
	dataDir string
	config  FileConfig

	mu    sync.RWMutex
	cache map[string]*grid
}

// grid is a regular lat/lon field of one scalar variable.
type grid struct {
	lon    []float64
	lat    []float64
	values [][]float64 // [lat][lon]
}

// NewNetCDFSource creates a source over dataDir with the default HAMTIDE
// layout.
func NewNetCDFSource(dataDir string) *NetCDFSource {
	return NewNetCDFSourceWithConfig(dataDir, DefaultConfig())
}

// NewNetCDFSourceWithConfig creates a source with an explicit file
// layout.
func NewNetCDFSourceWithConfig(dataDir string, config FileConfig) *NetCDFSource {
	return &NetCDFSource{
		dataDir: dataDir,
		config:  config,
		cache:   make(map[string]*grid),
	}
}

// Elevation implements usecase.HarmonicSource by nearest-neighbor
// sampling of the amplitude and phase grids at each boundary node.
func (s *NetCDFSource) Elevation(_ domain.TidalDatabase, constituent string, points []usecase.Point) ([]usecase.ElevationConstants, error) {
	path := s.path(s.config.ElevationPattern, constituent)
	amp, err := s.loadGrid(path, s.config.AmplitudeVarName)
	if err != nil {
		return nil, fmt.Errorf("elevation amplitude for %s: %w", constituent, err)
	}
	pha, err := s.loadGrid(path, s.config.PhaseVarName)
	if err != nil {
		return nil, fmt.Errorf("elevation phase for %s: %w", constituent, err)
	}
	out := make([]usecase.ElevationConstants, len(points))
	for i, p := range points {
		a, err := amp.sample(p.Lon, p.Lat)
		if err != nil {
			return nil, fmt.Errorf("elevation amplitude for %s at (%.4f, %.4f): %w", constituent, p.Lon, p.Lat, err)
		}
		g, err := pha.sample(p.Lon, p.Lat)
		if err != nil {
			return nil, fmt.Errorf("elevation phase for %s at (%.4f, %.4f): %w", constituent, p.Lon, p.Lat, err)
		}
		out[i] = usecase.ElevationConstants{Amplitude: a, Phase: wrap360(g)}
	}
	return out, nil
}

// Velocity implements usecase.HarmonicSource.
func (s *NetCDFSource) Velocity(_ domain.TidalDatabase, constituent string, points []usecase.Point) ([]usecase.VelocityConstants, error) {
	path := s.path(s.config.VelocityPattern, constituent)
	vars := []string{s.config.UAmplitudeVar, s.config.UPhaseVar, s.config.VAmplitudeVar, s.config.VPhaseVar}
	grids := make([]*grid, len(vars))
	for i, name := range vars {
		g, err := s.loadGrid(path, name)
		if err != nil {
			return nil, fmt.Errorf("velocity %s for %s: %w", name, constituent, err)
		}
		grids[i] = g
	}
	out := make([]usecase.VelocityConstants, len(points))
	for i, p := range points {
		var vals [4]float64
		for k, g := range grids {
			v, err := g.sample(p.Lon, p.Lat)
			if err != nil {
				return nil, fmt.Errorf("velocity %s for %s at (%.4f, %.4f): %w", vars[k], constituent, p.Lon, p.Lat, err)
			}
			vals[k] = v
		}
		out[i] = usecase.VelocityConstants{
			UAmplitude: vals[0],
			UPhase:     wrap360(vals[1]),
			VAmplitude: vals[2],
			VPhase:     wrap360(vals[3]),
		}
	}
	return out, nil
}

func (s *NetCDFSource) path(pattern, constituent string) string {
	name := strings.ReplaceAll(pattern, "{constituent}", strings.ToLower(constituent))
	return filepath.Join(s.dataDir, name)
}

// loadGrid reads one variable plus its lat/lon axes, using the cache
// when possible.
func (s *NetCDFSource) loadGrid(path, varName string) (*grid, error) {
	key := path + "#" + varName
	s.mu.RLock()
	if g, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return g, nil
	}
	s.mu.RUnlock()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("harmonic file not found: %w", err)
	}

	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	lat, err := readAxis(nc, s.config.LatVarName)
	if err != nil {
		return nil, err
	}
	lon, err := readAxis(nc, s.config.LonVarName)
	if err != nil {
		return nil, err
	}

	v, err := nc.Var(varName)
	if err != nil {
		return nil, fmt.Errorf("variable %q not found: %w", varName, err)
	}
	values, err := read2D(v, len(lat), len(lon))
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", varName, err)
	}
	if fv, ok := fillValue(v); ok {
		for i := range values {
			for j := range values[i] {
				if values[i][j] == fv {
					values[i][j] = math.NaN()
				}
			}
		}
	}

	g := &grid{lon: lon, lat: lat, values: values}
	s.mu.Lock()
	s.cache[key] = g
	s.mu.Unlock()
	return g, nil
}

// sample returns the value at the grid point nearest to (lon, lat).
// Longitudes are wrapped into the grid's 0-360 convention. A fill-value
// hit (dry cell) is an error rather than a silent zero.
func (g *grid) sample(lon, lat float64) (float64, error) {
	lon = math.Mod(lon, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	i := nearestIndex(g.lat, lat)
	j := nearestIndex(g.lon, lon)
	v := g.values[i][j]
	if math.IsNaN(v) {
		return 0, fmt.Errorf("no data at nearest grid point (%.4f, %.4f)", g.lon[j], g.lat[i])
	}
	return v, nil
}

func nearestIndex(axis []float64, x float64) int {
	best := 0
	bestDist := math.Abs(axis[0] - x)
	for i := 1; i < len(axis); i++ {
		if d := math.Abs(axis[i] - x); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func wrap360(deg float64) float64 {
	m := math.Mod(deg, 360.0)
	if m < 0 {
		m += 360.0
	}
	return m
}

// readAxis reads a 1D coordinate variable as float64.
func readAxis(nc netcdf.Dataset, name string) ([]float64, error) {
	v, err := nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("axis variable %q not found: %w", name, err)
	}
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("axis %q: failed to get dimensions: %w", name, err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("axis %q: expected 1D variable, got %dD", name, len(dims))
	}
	length, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	return readFloats(v, int(length))
}

// read2D reads a 2D variable as [lat][lon] float64, transposing if the
// file stores it [lon][lat].
func read2D(v netcdf.Var, nLat, nLon int) ([][]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("expected 2D data, got %dD", len(dims))
	}
	dim0, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	dim1, err := dims[1].Len()
	if err != nil {
		return nil, err
	}

	transpose := false
	switch {
	case dim0 == uint64(nLat) && dim1 == uint64(nLon):
	case dim0 == uint64(nLon) && dim1 == uint64(nLat):
		transpose = true
	default:
		return nil, fmt.Errorf("dimension mismatch: data is [%d, %d], expected [%d, %d] or [%d, %d]",
			dim0, dim1, nLat, nLon, nLon, nLat)
	}

	flat, err := readFloats(v, int(dim0*dim1))
	if err != nil {
		return nil, err
	}

	values := make([][]float64, nLat)
	for i := 0; i < nLat; i++ {
		values[i] = make([]float64, nLon)
		for j := 0; j < nLon; j++ {
			if transpose {
				values[i][j] = flat[j*nLat+i]
			} else {
				values[i][j] = flat[i*nLon+j]
			}
		}
	}
	return values, nil
}

// readFloats reads a variable of known total length as float64,
// converting from float/int storage types.
func readFloats(v netcdf.Var, total int) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, err
	}
	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, total)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, total)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT:
		tmp := make([]int32, total)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported NetCDF variable type %v", t)
	}
}

// fillValue returns the variable's fill or missing value attribute.
func fillValue(v netcdf.Var) (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		a := v.Attr(name)
		if a == (netcdf.Attr{}) {
			continue
		}
		if n, err := a.Len(); err == nil && n > 0 {
			buf64 := make([]float64, 1)
			if err := a.ReadFloat64s(buf64); err == nil {
				return buf64[0], true
			}
			buf32 := make([]float32, 1)
			if err := a.ReadFloat32s(buf32); err == nil {
				return float64(buf32[0]), true
			}
		}
	}
	return 0, false
}
