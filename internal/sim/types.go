package sim

import "math"

// State is a flat state vector. Inertial point-mass models lay it out as
// position (m) followed by velocity (m/s).
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := s.Clone()
	for i := range result {
		if i < len(other) {
			result[i] += other[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := s.Clone()
	for i := range result {
		if i < len(other) {
			result[i] -= other[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

type Control []float64

type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// EnergyComputer is implemented by dynamics with a conserved quantity the
// simulator can track.
type EnergyComputer interface {
	Energy(x State) float64
}

// Terminator is implemented by dynamics with a natural end, such as
// ground impact. The simulator stops after the first state for which Done
// reports true.
type Terminator interface {
	Done(x State, t float64) bool
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

// NoControl returns an empty control vector.
type NoControl struct{}

func (NoControl) Compute(State, float64) Control { return nil }

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(x State, u Control, t float64)

func (f ObserverFunc) OnStep(x State, u Control, t float64) { f(x, u, t) }

type Config struct {
	Dt            float64 `json:"dt" yaml:"dt"`
	Duration      float64 `json:"duration" yaml:"duration"`
	Seed          int64   `json:"seed" yaml:"seed"`
	ValidateState bool    `json:"validate_state" yaml:"validate_state"`
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0,
		Duration:      5400,
		Seed:          1,
		ValidateState: true,
	}
}

type Result struct {
	States      []State
	Controls    []Control
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Terminated  bool
}

// Final returns the last recorded state.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
