package harmonics

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/bctides/internal/domain"
	"go.ngs.io/bctides/internal/usecase"
)

// helper to create a minimal HAMTIDE-layout elevation file (2x2) with
// optional fill value on the amplitude variable.
func createElevationNC(t *testing.T, path string, amp, phase [][]float64, fill *float64) {
	t.Helper()
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create nc: %v", err)
	}
	defer f.Close()

	latDim, _ := f.AddDim("lat", 2)
	lonDim, _ := f.AddDim("lon", 2)
	vlat, _ := f.AddVar("LAT", netcdf.DOUBLE, []netcdf.Dim{latDim})
	vlon, _ := f.AddVar("LON", netcdf.DOUBLE, []netcdf.Dim{lonDim})
	vamp, _ := f.AddVar("AMPL", netcdf.DOUBLE, []netcdf.Dim{latDim, lonDim})
	vpha, _ := f.AddVar("PHAS", netcdf.DOUBLE, []netcdf.Dim{latDim, lonDim})
	if fill != nil {
		if err := vamp.Attr("_FillValue").WriteFloat64s([]float64{*fill}); err != nil {
			t.Fatalf("write fill value: %v", err)
		}
	}
	if err := f.EndDef(); err != nil {
		t.Fatalf("enddef: %v", err)
	}

	if err := vlat.WriteFloat64s([]float64{35.0, 36.0}); err != nil {
		t.Fatalf("write lat: %v", err)
	}
	if err := vlon.WriteFloat64s([]float64{285.0, 286.0}); err != nil {
		t.Fatalf("write lon: %v", err)
	}
	aFlat := []float64{amp[0][0], amp[0][1], amp[1][0], amp[1][1]}
	pFlat := []float64{phase[0][0], phase[0][1], phase[1][0], phase[1][1]}
	if err := vamp.WriteFloat64s(aFlat); err != nil {
		t.Fatalf("write amp: %v", err)
	}
	if err := vpha.WriteFloat64s(pFlat); err != nil {
		t.Fatalf("write pha: %v", err)
	}
}

// TestElevation_NearestNeighbor samples at node positions near grid
// points, with longitudes given in the -180..180 convention.
func TestElevation_NearestNeighbor(t *testing.T) {
	dir := t.TempDir()
	createElevationNC(t, filepath.Join(dir, "m2.hamtide11a.nc"),
		[][]float64{{0.5, 0.6}, {0.7, 0.8}},
		[][]float64{{10.0, 20.0}, {30.0, 40.0}},
		nil)

	src := NewNetCDFSource(dir)
	points := []usecase.Point{
		{Lon: -75.1, Lat: 35.1}, // nearest (285, 35) after wrapping
		{Lon: -74.2, Lat: 35.9}, // nearest (286, 36)
	}
	got, err := src.Elevation(domain.HAMTIDE, "M2", points)
	if err != nil {
		t.Fatalf("Elevation: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if math.Abs(got[0].Amplitude-0.5) > 1e-12 || math.Abs(got[0].Phase-10.0) > 1e-12 {
		t.Errorf("point 0 = %+v, want amplitude 0.5 phase 10", got[0])
	}
	if math.Abs(got[1].Amplitude-0.8) > 1e-12 || math.Abs(got[1].Phase-40.0) > 1e-12 {
		t.Errorf("point 1 = %+v, want amplitude 0.8 phase 40", got[1])
	}
}

// TestElevation_FillValue: sampling a dry cell is an error, not a zero.
func TestElevation_FillValue(t *testing.T) {
	dir := t.TempDir()
	fill := -9999.0
	createElevationNC(t, filepath.Join(dir, "m2.hamtide11a.nc"),
		[][]float64{{fill, 0.6}, {0.7, 0.8}},
		[][]float64{{10.0, 20.0}, {30.0, 40.0}},
		&fill)

	src := NewNetCDFSource(dir)
	if _, err := src.Elevation(domain.HAMTIDE, "M2", []usecase.Point{{Lon: 285.0, Lat: 35.0}}); err == nil {
		t.Error("expected error for dry cell, got nil")
	}
	// Wet cells still work.
	got, err := src.Elevation(domain.HAMTIDE, "M2", []usecase.Point{{Lon: 286.0, Lat: 36.0}})
	if err != nil {
		t.Fatalf("Elevation: %v", err)
	}
	if math.Abs(got[0].Amplitude-0.8) > 1e-12 {
		t.Errorf("amplitude = %g, want 0.8", got[0].Amplitude)
	}
}

func TestElevation_MissingFile(t *testing.T) {
	src := NewNetCDFSource(t.TempDir())
	if _, err := src.Elevation(domain.HAMTIDE, "M2", []usecase.Point{{Lon: 285.0, Lat: 35.0}}); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestNearestIndex(t *testing.T) {
	axis := []float64{0.0, 1.0, 2.0, 3.0}
	tests := []struct {
		x    float64
		want int
	}{
		{-5.0, 0},
		{0.4, 0},
		{0.6, 1},
		{2.9, 3},
		{10.0, 3},
	}
	for _, tt := range tests {
		if got := nearestIndex(axis, tt.x); got != tt.want {
			t.Errorf("nearestIndex(%g) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestWrap360(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-75.0, 285.0},
		{0.0, 0.0},
		{360.0, 0.0},
		{725.0, 5.0},
		{-360.0, 0.0},
	}
	for _, tt := range tests {
		if got := wrap360(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("wrap360(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
