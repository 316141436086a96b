// Package optim searches scenario parameters for the best value of a run
// metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/experiment"
)

var ErrNoResult = errors.New("optim: no grid point produced the metric")

// GridSearch evaluates every combination of the given values of
// scenario fields (see config.Scenario.Set).
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Maximize selects the largest metric instead of the smallest.
	Maximize bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return vals
}

// Search runs a copy of base at each grid point and returns the best
// point and its metric value. Grid points whose run fails are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Scenario,
	reg *experiment.Registry,
	build func(sc *config.Scenario, reg *experiment.Registry) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	if g.Maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, reg, build, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoResult
	}
	return bestParams, best, nil
}

func (g *GridSearch) better(val, best float64) bool {
	if g.Maximize {
		return val > best
	}
	return val < best
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Scenario,
	reg *experiment.Registry,
	build func(*config.Scenario, *experiment.Registry) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		sc := *base
		if base.Orbit != nil {
			el := *base.Orbit
			sc.Orbit = &el
		}
		for k, v := range current {
			if err := sc.Set(k, v); err != nil {
				return err
			}
		}

		exp, err := build(&sc, reg)
		if err != nil {
			return nil
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil
		}

		val, ok := result.Metrics[metricName]
		if ok && g.better(val, *best) {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, reg, build, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
