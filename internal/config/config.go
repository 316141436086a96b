package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sixdof/internal/models"
	"github.com/san-kum/sixdof/internal/orbit"
	"github.com/san-kum/sixdof/internal/sim"
)

const (
	DefaultDt       = 1.0
	DefaultDuration = 5400.0
	DefaultMass     = 100.0
	DefaultRefArea  = 0.1
	DefaultBcor     = 0.01
)

var ErrInvalidScenario = errors.New("config: invalid scenario")

// Scenario describes one propagation run. The initial state comes from
// Orbit when set, otherwise from Launch.
type Scenario struct {
	Model       string            `yaml:"model"`
	Integrator  string            `yaml:"integrator"`
	Dt          float64           `yaml:"dt"`
	Duration    float64           `yaml:"duration"`
	Seed        int64             `yaml:"seed"`
	Launch      LaunchConfig      `yaml:"launch"`
	Orbit       *orbit.Elements   `yaml:"orbit,omitempty"`
	Vehicle     VehicleConfig     `yaml:"vehicle"`
	Disturbance DisturbanceConfig `yaml:"disturbance"`
}

// LaunchConfig is a geodetic position with an Earth-relative velocity.
// Angles in degrees, altitude in m, speed in m/s.
type LaunchConfig struct {
	Lon        float64 `yaml:"lon"`
	Lat        float64 `yaml:"lat"`
	Alt        float64 `yaml:"alt"`
	Speed      float64 `yaml:"speed"`
	Heading    float64 `yaml:"heading"`
	FlightPath float64 `yaml:"flight_path"`
}

type VehicleConfig struct {
	Mass    float64 `yaml:"mass"`
	RefArea float64 `yaml:"ref_area"`
	Deck    string  `yaml:"deck,omitempty"`
}

// DisturbanceConfig sets the Markov acceleration noise. Sigma of zero
// disables it.
type DisturbanceConfig struct {
	Sigma float64 `yaml:"sigma"`
	Bcor  float64 `yaml:"bcor"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Model:      "orbiter",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Seed:       1,
		Orbit: &orbit.Elements{
			Semi: 6778137,
			Incl: 51.6,
		},
		Vehicle: VehicleConfig{
			Mass:    DefaultMass,
			RefArea: DefaultRefArea,
		},
		Disturbance: DisturbanceConfig{Bcor: DefaultBcor},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	sc.Orbit = nil
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Validate() error {
	switch {
	case s.Dt <= 0:
		return fmt.Errorf("%w: dt %g", ErrInvalidScenario, s.Dt)
	case s.Duration <= 0:
		return fmt.Errorf("%w: duration %g", ErrInvalidScenario, s.Duration)
	case s.Vehicle.Mass <= 0:
		return fmt.Errorf("%w: mass %g", ErrInvalidScenario, s.Vehicle.Mass)
	case s.Disturbance.Sigma < 0:
		return fmt.Errorf("%w: sigma %g", ErrInvalidScenario, s.Disturbance.Sigma)
	case s.Disturbance.Sigma > 0 && s.Disturbance.Bcor <= 0:
		return fmt.Errorf("%w: bcor %g", ErrInvalidScenario, s.Disturbance.Bcor)
	}
	return nil
}

// InitState returns the inertial state at time zero.
func (s *Scenario) InitState() sim.State {
	if s.Orbit != nil {
		st, _ := orbit.InOrb(*s.Orbit)
		return models.FromOrbit(st)
	}
	l := s.Launch
	return models.Launch(l.Lon, l.Lat, l.Alt, l.Speed, l.Heading, l.FlightPath)
}

// SimConfig returns the driver settings for the scenario.
func (s *Scenario) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = s.Dt
	cfg.Duration = s.Duration
	cfg.Seed = s.Seed
	return cfg
}

// Set assigns one numeric field by its yaml path, e.g. "launch.speed" or
// "orbit.ecc". Setting an orbit field on a launch scenario starts from
// zero elements.
func (s *Scenario) Set(path string, v float64) error {
	fields := map[string]*float64{
		"dt":                 &s.Dt,
		"duration":           &s.Duration,
		"launch.lon":         &s.Launch.Lon,
		"launch.lat":         &s.Launch.Lat,
		"launch.alt":         &s.Launch.Alt,
		"launch.speed":       &s.Launch.Speed,
		"launch.heading":     &s.Launch.Heading,
		"launch.flight_path": &s.Launch.FlightPath,
		"vehicle.mass":       &s.Vehicle.Mass,
		"vehicle.ref_area":   &s.Vehicle.RefArea,
		"disturbance.sigma":  &s.Disturbance.Sigma,
		"disturbance.bcor":   &s.Disturbance.Bcor,
	}
	if f, ok := fields[path]; ok {
		*f = v
		return nil
	}

	orbitFields := map[string]func(el *orbit.Elements){
		"orbit.semi":      func(el *orbit.Elements) { el.Semi = v },
		"orbit.ecc":       func(el *orbit.Elements) { el.Ecc = v },
		"orbit.incl":      func(el *orbit.Elements) { el.Incl = v },
		"orbit.lon_anode": func(el *orbit.Elements) { el.LonAnode = v },
		"orbit.arg_peri":  func(el *orbit.Elements) { el.ArgPeri = v },
		"orbit.true_anom": func(el *orbit.Elements) { el.TrueAnom = v },
	}
	if set, ok := orbitFields[path]; ok {
		if s.Orbit == nil {
			s.Orbit = &orbit.Elements{}
		}
		set(s.Orbit)
		return nil
	}
	return fmt.Errorf("%w: unknown field %q", ErrInvalidScenario, path)
}
