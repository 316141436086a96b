// Package sim drives fixed-step simulations of vehicle dynamics.
//
// A [Dynamics] supplies the state derivative dX/dt = f(X, u, t), an
// [Integrator] advances the state by one step and a [Simulator] runs the
// loop, feeding [Metric] and [Observer] hooks each step.
//
//	orb := models.NewOrbiter(models.OrbiterParams{})
//	s := sim.New(orb, integrators.NewModifiedEuler(), nil)
//	res, err := s.Run(ctx, x0, sim.Config{Dt: 1, Duration: 5400})
//
// A Simulator is not safe for concurrent use. [Ensemble] builds one
// Simulator per run from a factory so each run owns its models and random
// streams.
package sim
