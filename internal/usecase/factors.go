package usecase

import (
	"fmt"
	"time"

	"go.ngs.io/bctides/internal/domain"
)

// FactorRequest asks for nodal factors and equilibrium arguments over a
// model run window.
type FactorRequest struct {
	Constituents []string
	StartDate    time.Time
	RunDuration  time.Duration
}

// ConstituentFactors is the full set of per-constituent values a forcing
// file needs.
type ConstituentFactors struct {
	Name               string  `json:"name"`
	SpeciesType        int     `json:"species_type"`
	PotentialAmplitude float64 `json:"potential_amplitude"`
	OrbitalFrequency   float64 `json:"orbital_frequency"`
	NodalFactor        float64 `json:"nodal_factor"`
	GreenwichFactor    float64 `json:"greenwich_factor"`
}

// FactorResponse is the result of a factor request.
type FactorResponse struct {
	StartDate    string               `json:"start_date"`
	RunDuration  string               `json:"run_duration"`
	Constituents []ConstituentFactors `json:"constituents"`
}

// FactorUseCase computes tidal factors for arbitrary constituent lists.
type FactorUseCase struct{}

// NewFactorUseCase creates a factor use case.
func NewFactorUseCase() *FactorUseCase {
	return &FactorUseCase{}
}

// Execute evaluates the request, one constituent at a time.
func (uc *FactorUseCase) Execute(req FactorRequest) (*FactorResponse, error) {
	if len(req.Constituents) == 0 {
		return nil, fmt.Errorf("at least one constituent is required")
	}
	resp := &FactorResponse{
		StartDate:    req.StartDate.UTC().Format(time.RFC3339),
		RunDuration:  req.RunDuration.String(),
		Constituents: make([]ConstituentFactors, 0, len(req.Constituents)),
	}
	for _, name := range req.Constituents {
		tf, err := domain.NewTidefac(req.StartDate, req.RunDuration, name)
		if err != nil {
			return nil, err
		}
		species, err := tf.SpeciesType()
		if err != nil {
			return nil, err
		}
		amp, err := tf.PotentialAmplitude()
		if err != nil {
			return nil, err
		}
		freq, err := tf.OrbitalFrequency()
		if err != nil {
			return nil, err
		}
		nodal, err := tf.NodalFactor()
		if err != nil {
			return nil, err
		}
		greenwich, err := tf.GreenwichFactor()
		if err != nil {
			return nil, err
		}
		resp.Constituents = append(resp.Constituents, ConstituentFactors{
			Name:               tf.Constituent(),
			SpeciesType:        species,
			PotentialAmplitude: amp,
			OrbitalFrequency:   freq,
			NodalFactor:        nodal,
			GreenwichFactor:    greenwich,
		})
	}
	return resp, nil
}

// ListConstituents returns every constituent with a known orbital
// frequency, with species and amplitude where tabulated.
func (uc *FactorUseCase) ListConstituents() []ConstituentFactors {
	names := domain.OrbitalFrequencyNames()
	out := make([]ConstituentFactors, 0, len(names))
	for _, name := range names {
		freq, _ := domain.OrbitalFrequency(name)
		cf := ConstituentFactors{Name: name, OrbitalFrequency: freq}
		if species, err := domain.SpeciesType(name); err == nil {
			cf.SpeciesType = species
		}
		if amp, err := domain.PotentialAmplitude(name); err == nil {
			cf.PotentialAmplitude = amp
		}
		out = append(out, cf)
	}
	return out
}
