package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/integrators"
	"github.com/san-kum/sixdof/internal/metrics"
	"github.com/san-kum/sixdof/internal/models"
	"github.com/san-kum/sixdof/internal/sim"
	"github.com/san-kum/sixdof/internal/table"
)

// ModelFactory builds dynamics configured from a scenario.
type ModelFactory func(sc *config.Scenario) (sim.Dynamics, error)

type Registry struct {
	models      map[string]ModelFactory
	integrators map[string]func() sim.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]ModelFactory),
		integrators: make(map[string]func() sim.Integrator),
	}

	r.models["orbiter"] = func(sc *config.Scenario) (sim.Dynamics, error) {
		return models.NewOrbiter(), nil
	}
	r.models["ballistic"] = func(sc *config.Scenario) (sim.Dynamics, error) {
		b := models.NewBallistic()
		if sc.Vehicle.Mass > 0 {
			b.Mass = sc.Vehicle.Mass
		}
		if sc.Vehicle.RefArea > 0 {
			b.RefArea = sc.Vehicle.RefArea
		}
		if sc.Vehicle.Deck != "" {
			deck, err := table.LoadDeck(sc.Vehicle.Deck)
			if err != nil {
				return nil, err
			}
			if _, err := deck.Get(models.DragTable); err != nil {
				return nil, fmt.Errorf("deck %s: %w", sc.Vehicle.Deck, err)
			}
			b.Deck = deck
		}
		return b, nil
	}

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }
	r.integrators["verlet"] = func() sim.Integrator { return integrators.NewVerlet() }
	r.integrators["modified_euler"] = func() sim.Integrator { return integrators.NewModifiedEuler() }

	return r
}

// RegisterModel adds or replaces a model.
func (r *Registry) RegisterModel(name string, fn ModelFactory) {
	r.models[name] = fn
}

func (r *Registry) GetModel(sc *config.Scenario) (sim.Dynamics, error) {
	fn, ok := r.models[sc.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", sc.Model)
	}
	return fn(sc)
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// GetController returns the scenario's disturbance, or nil when it has
// none. seed selects the random stream.
func (r *Registry) GetController(sc *config.Scenario, seed int64) sim.Controller {
	d := sc.Disturbance
	if d.Sigma <= 0 {
		return nil
	}
	return models.NewDisturbance(seed, d.Sigma, d.Bcor, sc.Dt)
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the metrics that apply to dyn.
func (r *Registry) DefaultMetrics(dyn sim.Dynamics, controlled bool) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewMaxAltitude(),
		metrics.NewGroundRange(),
	}
	if e := metrics.NewEnergyDrift(dyn); e != nil {
		ms = append(ms, e)
	}
	if src, ok := dyn.(metrics.AirDataSource); ok {
		ms = append(ms, metrics.NewMaxDynamicPressure(src))
	}
	if controlled {
		ms = append(ms, metrics.NewControlEffort())
	}
	return ms
}
