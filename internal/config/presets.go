package config

import (
	"sort"

	"github.com/san-kum/sixdof/internal/orbit"
)

var Presets = map[string]map[string]*Scenario{
	"orbiter": {
		"leo": {
			Model: "orbiter", Integrator: "rk4", Dt: 1, Duration: 5400,
			Orbit: &orbit.Elements{Semi: 6778137, Ecc: 0.001, Incl: 51.6},
		},
		"gto": {
			Model: "orbiter", Integrator: "rk4", Dt: 5, Duration: 38000,
			Orbit: &orbit.Elements{Semi: 24396000, Ecc: 0.7306, Incl: 27, ArgPeri: 178},
		},
		"molniya": {
			Model: "orbiter", Integrator: "rk4", Dt: 5, Duration: 43080,
			Orbit: &orbit.Elements{Semi: 26600000, Ecc: 0.74, Incl: 63.4, ArgPeri: 270},
		},
		"noisy": {
			Model: "orbiter", Integrator: "modified_euler", Dt: 0.5, Duration: 3000,
			Orbit:       &orbit.Elements{Semi: 6878137, Incl: 97.4},
			Disturbance: DisturbanceConfig{Sigma: 1e-4, Bcor: 0.01},
		},
	},
	"ballistic": {
		"sounding": {
			Model: "ballistic", Integrator: "rk4", Dt: 0.1, Duration: 600,
			Launch:  LaunchConfig{Lon: -75.47, Lat: 37.94, Speed: 1500, Heading: 90, FlightPath: 85},
			Vehicle: VehicleConfig{Mass: DefaultMass, RefArea: DefaultRefArea},
		},
		"artillery": {
			Model: "ballistic", Integrator: "rk4", Dt: 0.05, Duration: 200,
			Launch:  LaunchConfig{Lon: 10, Lat: 45, Alt: 200, Speed: 800, Heading: 45, FlightPath: 45},
			Vehicle: VehicleConfig{Mass: 43, RefArea: 0.0189},
		},
		"reentry": {
			Model: "ballistic", Integrator: "modified_euler", Dt: 0.05, Duration: 900,
			Launch:  LaunchConfig{Alt: 120000, Speed: 7500, Heading: 90, FlightPath: -2},
			Vehicle: VehicleConfig{Mass: 500, RefArea: 1.2},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Scenario {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	sc, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	cp := *sc
	if sc.Orbit != nil {
		el := *sc.Orbit
		cp.Orbit = &el
	}
	if cp.Vehicle.Mass == 0 {
		cp.Vehicle = VehicleConfig{Mass: DefaultMass, RefArea: DefaultRefArea}
	}
	if cp.Disturbance.Bcor == 0 {
		cp.Disturbance.Bcor = DefaultBcor
	}
	cp.Seed = 1
	return &cp
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListModels() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
