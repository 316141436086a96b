// Package experiment assembles a runnable simulation from a scenario.
package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/sim"
)

type Experiment struct {
	sc        *config.Scenario
	reg       *Registry
	log       zerolog.Logger
	simulator *sim.Simulator
}

func New(sc *config.Scenario, reg *Registry, log zerolog.Logger) (*Experiment, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	e := &Experiment{sc: sc, reg: reg, log: log}
	s, err := e.build(sc.Seed)
	if err != nil {
		return nil, err
	}
	e.simulator = s
	return e, nil
}

func (e *Experiment) build(seed int64) (*sim.Simulator, error) {
	dyn, err := e.reg.GetModel(e.sc)
	if err != nil {
		return nil, err
	}
	integ, err := e.reg.GetIntegrator(e.sc.Integrator)
	if err != nil {
		return nil, err
	}
	ctrl := e.reg.GetController(e.sc, seed)

	s := sim.New(dyn, integ, ctrl)
	for _, m := range e.reg.DefaultMetrics(dyn, ctrl != nil) {
		s.AddMetric(m)
	}
	return s, nil
}

func (e *Experiment) Scenario() *config.Scenario { return e.sc }

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	e.log.Info().
		Str("model", e.sc.Model).
		Str("integrator", e.sc.Integrator).
		Float64("dt", e.sc.Dt).
		Float64("duration", e.sc.Duration).
		Int64("seed", e.sc.Seed).
		Msg("starting run")

	result, err := e.simulator.Run(ctx, e.sc.InitState(), e.sc.SimConfig())
	if err != nil {
		e.log.Error().Err(err).Msg("run failed")
		return result, err
	}

	e.log.Info().
		Int("steps", result.StepsTaken).
		Bool("terminated", result.Terminated).
		Msg("run complete")
	return result, nil
}

// Ensemble runs n members with consecutive seeds starting at the
// scenario's seed, each with its own simulator.
func (e *Experiment) Ensemble(ctx context.Context, n, workers int) ([]*sim.Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("ensemble size %d", n)
	}
	ens := sim.NewEnsemble(e.build, n, e.sc.Seed, workers)
	e.log.Info().Int("members", n).Int("workers", workers).Msg("starting ensemble")
	return ens.Run(ctx, e.sc.InitState(), e.sc.SimConfig())
}
