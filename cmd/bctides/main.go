// Command bctides generates tidal boundary forcing files for hydrodynamic
// model runs from a gr3 mesh and a run window.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go.ngs.io/bctides/internal/adapter/harmonics"
	"go.ngs.io/bctides/internal/adapter/mesh"
	"go.ngs.io/bctides/internal/domain"
	"go.ngs.io/bctides/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "bctides [flags] hgrid_file start_date",
	Short: "Generate tidal boundary forcing input files.",
	Long: `Generate a boundary forcing file from a gr3 horizontal mesh, a run start
date (RFC3339, e.g. 2012-10-29T00:00:00Z) and per-boundary forcing
specifications.

Boundary specifications take the form ID=KIND[:ARGS], where ID is the
1-based open boundary index from the mesh. Examples:

  --elevation 1=tides --elevation 2=constant:0.5
  --velocity 1=flather
  --temperature 1=initial:0.9 --salinity 1=constant:33.0,0.9`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
		if err := run(cmd, args); err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().Float64("run-days", 30, "run duration in days")
	rootCmd.Flags().Float64("cutoff-depth", 50, "depth threshold for applying tidal potential, in meters")
	rootCmd.Flags().String("constituents", "major", "constituents to enable: major, minor, all, or a comma-separated list")
	rootCmd.Flags().String("database", "hamtide", "harmonic database for space-varying tides: tpxo, hamtide or fes")
	rootCmd.Flags().StringArray("elevation", nil, "elevation boundary spec ID=KIND[:ARGS]; kinds: tides, constant:VAL, space, tides+space, zero")
	rootCmd.Flags().StringArray("velocity", nil, "velocity boundary spec ID=KIND[:ARGS]; kinds: tides, constant:DISCHARGE, space, tides+space, flather")
	rootCmd.Flags().StringArray("temperature", nil, "temperature boundary spec ID=KIND[:ARGS]; kinds: constant:VAL,RELAX, initial:RELAX, space:RELAX")
	rootCmd.Flags().StringArray("salinity", nil, "salinity boundary spec ID=KIND[:ARGS]; kinds: constant:VAL,RELAX, initial:RELAX, space:RELAX")
	rootCmd.Flags().String("harmonics-dir", "", "directory of NetCDF harmonic files; amplitudes and phases are zero when unset")
	rootCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	hgridPath := args[0]
	startDate, err := time.Parse(time.RFC3339, args[1])
	if err != nil {
		return fmt.Errorf("invalid start date %q (expected RFC3339): %w", args[1], err)
	}

	runDays, _ := cmd.Flags().GetFloat64("run-days")
	if runDays <= 0 {
		return fmt.Errorf("run-days must be positive, got %g", runDays)
	}
	cutoffDepth, _ := cmd.Flags().GetFloat64("cutoff-depth")

	constituents, err := parseConstituents(mustString(cmd, "constituents"))
	if err != nil {
		return err
	}
	database, err := domain.ParseTidalDatabase(mustString(cmd, "database"))
	if err != nil {
		return err
	}
	tides := domain.TidesConfig{Constituents: constituents, Database: database}

	log.Debugf("reading mesh from %s", hgridPath)
	m, err := mesh.ReadFile(hgridPath)
	if err != nil {
		return err
	}
	boundaries := m.OpenBoundaries()
	log.Infof("mesh %q: %d open boundaries", m.Name(), len(boundaries))

	elevation, err := parseElevationSpecs(mustStringArray(cmd, "elevation"), tides)
	if err != nil {
		return err
	}
	velocity, err := parseVelocitySpecs(mustStringArray(cmd, "velocity"), tides)
	if err != nil {
		return err
	}
	temperature, err := parseTemperatureSpecs(mustStringArray(cmd, "temperature"))
	if err != nil {
		return err
	}
	salinity, err := parseSalinitySpecs(mustStringArray(cmd, "salinity"))
	if err != nil {
		return err
	}

	forcing, err := domain.NewBoundaryForcingConfig(boundaries, elevation, velocity, temperature, salinity)
	if err != nil {
		return err
	}

	builder := usecase.NewBctidesBuilder().
		StartDate(startDate).
		RunDuration(time.Duration(runDays * 24 * float64(time.Hour))).
		TidalPotentialCutoffDepth(cutoffDepth).
		Forcing(forcing)

	if dir := mustString(cmd, "harmonics-dir"); dir != "" {
		log.Debugf("using NetCDF harmonics from %s", dir)
		builder = builder.HarmonicSource(harmonics.NewNetCDFSource(dir))
	}

	bctides, err := builder.Build()
	if err != nil {
		return err
	}

	output := mustString(cmd, "output")
	if output == "" {
		return bctides.Render(os.Stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := bctides.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Infof("wrote %s", output)
	return nil
}

func mustString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return v
}

func mustStringArray(cmd *cobra.Command, flag string) []string {
	v, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return v
}

// parseConstituents maps a preset name or comma-separated list to a
// constituent selection.
func parseConstituents(s string) (domain.ConstituentsConfig, error) {
	switch strings.ToLower(s) {
	case "major":
		return domain.MajorConstituentsConfig(), nil
	case "minor":
		return domain.MinorConstituentsConfig(), nil
	case "all":
		return domain.AllConstituentsConfig(), nil
	}
	var cfg domain.ConstituentsConfig
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := cfg.SetByName(name, true); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// splitSpec parses "ID=KIND[:ARGS]" into its 0-based boundary index,
// kind and argument string.
func splitSpec(spec string) (int, string, string, error) {
	eq := strings.IndexByte(spec, '=')
	if eq < 0 {
		return 0, "", "", fmt.Errorf("malformed boundary spec %q: expected ID=KIND[:ARGS]", spec)
	}
	id, err := strconv.Atoi(spec[:eq])
	if err != nil || id < 1 {
		return 0, "", "", fmt.Errorf("malformed boundary spec %q: invalid boundary id %q", spec, spec[:eq])
	}
	kind, arg := spec[eq+1:], ""
	if colon := strings.IndexByte(kind, ':'); colon >= 0 {
		kind, arg = kind[:colon], kind[colon+1:]
	}
	return id - 1, strings.ToLower(kind), arg, nil
}

func parseElevationSpecs(specs []string, tides domain.TidesConfig) (map[int]domain.ElevationConfig, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[int]domain.ElevationConfig, len(specs))
	for _, spec := range specs {
		idx, kind, arg, err := splitSpec(spec)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "tides":
			out[idx] = domain.ElevationTides{Tides: tides}
		case "constant":
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("elevation spec %q: invalid constant value %q", spec, arg)
			}
			out[idx] = domain.ElevationConstant{Value: v}
		case "space":
			out[idx] = domain.ElevationSpaceVaryingTimeSeries{
				Series: domain.SpaceVaryingTimeSeriesConfig{Database: domain.HYCOM},
			}
		case "tides+space":
			out[idx] = domain.ElevationTidesAndSpaceVaryingTimeSeries{
				Tides:  tides,
				Series: domain.SpaceVaryingTimeSeriesConfig{Database: domain.HYCOM},
			}
		case "zero":
			out[idx] = domain.ElevationEqualToZero{}
		default:
			return nil, fmt.Errorf("elevation spec %q: unknown kind %q", spec, kind)
		}
	}
	return out, nil
}

func parseVelocitySpecs(specs []string, tides domain.TidesConfig) (map[int]domain.VelocityConfig, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[int]domain.VelocityConfig, len(specs))
	for _, spec := range specs {
		idx, kind, arg, err := splitSpec(spec)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "tides":
			out[idx] = domain.VelocityTides{Tides: tides}
		case "constant":
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("velocity spec %q: invalid discharge %q", spec, arg)
			}
			out[idx] = domain.VelocityConstant{Discharge: v}
		case "space":
			out[idx] = domain.VelocitySpaceVaryingTimeSeries{
				Series: domain.SpaceVaryingTimeSeriesConfig{Database: domain.HYCOM},
			}
		case "tides+space":
			out[idx] = domain.VelocityTidesAndSpaceVaryingTimeSeries{
				Tides:  tides,
				Series: domain.SpaceVaryingTimeSeriesConfig{Database: domain.HYCOM},
			}
		case "flather":
			out[idx] = domain.VelocityFlather{}
		default:
			return nil, fmt.Errorf("velocity spec %q: unknown kind %q", spec, kind)
		}
	}
	return out, nil
}

func parseTemperatureSpecs(specs []string) (map[int]domain.TemperatureConfig, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[int]domain.TemperatureConfig, len(specs))
	for _, spec := range specs {
		idx, kind, arg, err := splitSpec(spec)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "constant":
			value, relax, err := parseValueRelax(arg)
			if err != nil {
				return nil, fmt.Errorf("temperature spec %q: %w", spec, err)
			}
			out[idx] = domain.TemperatureRelaxToConstant{Value: value, Relaxation: relax}
		case "initial":
			relax, err := parseRelax(arg)
			if err != nil {
				return nil, fmt.Errorf("temperature spec %q: %w", spec, err)
			}
			out[idx] = domain.TemperatureRelaxToInitialConditions{Relaxation: relax}
		case "space":
			relax, err := parseRelax(arg)
			if err != nil {
				return nil, fmt.Errorf("temperature spec %q: %w", spec, err)
			}
			out[idx] = domain.TemperatureRelaxToSpaceVaryingTimeSeries{
				Series:     domain.SpaceVaryingTimeSeriesConfig{Database: domain.HYCOM},
				Relaxation: relax,
			}
		default:
			return nil, fmt.Errorf("temperature spec %q: unknown kind %q", spec, kind)
		}
	}
	return out, nil
}

func parseSalinitySpecs(specs []string) (map[int]domain.SalinityConfig, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[int]domain.SalinityConfig, len(specs))
	for _, spec := range specs {
		idx, kind, arg, err := splitSpec(spec)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "constant":
			value, relax, err := parseValueRelax(arg)
			if err != nil {
				return nil, fmt.Errorf("salinity spec %q: %w", spec, err)
			}
			out[idx] = domain.SalinityRelaxToConstant{Value: value, Relaxation: relax}
		case "initial":
			relax, err := parseRelax(arg)
			if err != nil {
				return nil, fmt.Errorf("salinity spec %q: %w", spec, err)
			}
			out[idx] = domain.SalinityRelaxToInitialConditions{Relaxation: relax}
		case "space":
			relax, err := parseRelax(arg)
			if err != nil {
				return nil, fmt.Errorf("salinity spec %q: %w", spec, err)
			}
			out[idx] = domain.SalinityRelaxToSpaceVaryingTimeSeries{
				Series:     domain.SpaceVaryingTimeSeriesConfig{Database: domain.HYCOM},
				Relaxation: relax,
			}
		default:
			return nil, fmt.Errorf("salinity spec %q: unknown kind %q", spec, kind)
		}
	}
	return out, nil
}

// parseValueRelax parses "VALUE,RELAX".
func parseValueRelax(arg string) (float64, float64, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected VALUE,RELAX, got %q", arg)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q", parts[0])
	}
	relax, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid relaxation %q", parts[1])
	}
	return value, relax, nil
}

func parseRelax(arg string) (float64, error) {
	relax, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid relaxation %q", arg)
	}
	return relax, nil
}
