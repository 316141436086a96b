package sim

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

// New returns a Simulator. A nil controller applies no control.
func New(dyn Dynamics, integrator Integrator, controller Controller) *Simulator {
	if controller == nil {
		controller = NoControl{}
	}
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 for cfg.Duration seconds. On cancellation or an
// invalid state it returns the partial result together with the error.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		States:   make([]State, 0, steps+1),
		Controls: make([]Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		u := s.controller.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		newX := s.integrator.Step(s.dyn, x, u, t, dt)
		if cfg.ValidateState && !newX.IsValid() {
			runErr = &StepError{Step: i, Time: t, State: x.Clone(), Err: ErrInvalidState}
			break
		}

		x = newX
		t = float64(i+1) * dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)

		if term, ok := s.dyn.(Terminator); ok && term.Done(x, t) {
			result.Terminated = true
			break
		}
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(s.computeEnergy(x)-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if n := s.dyn.StateDim(); n > 0 && len(x0) != n {
		return fmt.Errorf("%w: state has %d components, dynamics expect %d", ErrDimensionMismatch, len(x0), n)
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if ec, ok := s.dyn.(EnergyComputer); ok {
		return ec.Energy(x)
	}
	return 0
}

// RunWithCallback steps until the duration elapses, the context is done
// or callback returns false. It keeps no history.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, Control, float64) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	x := x0.Clone()
	steps := int(math.Round(cfg.Duration / cfg.Dt))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		u := s.controller.Compute(x, t)
		if !callback(x, u, t) {
			return nil
		}

		next := s.integrator.Step(s.dyn, x, u, t, cfg.Dt)
		if cfg.ValidateState && !next.IsValid() {
			return &StepError{Step: i, Time: t, State: x, Err: ErrInvalidState}
		}
		x = next
	}
	callback(x, nil, float64(steps)*cfg.Dt)
	return nil
}
