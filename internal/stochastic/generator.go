// Package stochastic generates the random perturbations used by sensor and
// environment models: uniform, Gaussian, exponential, Rayleigh and
// first-order Markov (time-correlated) noise.
//
// Every draw goes through a [Generator], which owns its own PRNG stream and
// the Box-Muller pair cache. Runs that must replay deterministically, or run
// in parallel, each get their own Generator.
package stochastic

import (
	"errors"
	"math"
	"math/rand"
)

// ErrZeroDensity is returned by Exponential for a zero density parameter.
var ErrZeroDensity = errors.New("stochastic: exponential density is zero")

// Generator is a seeded random stream. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand

	// second deviate of the last Box-Muller pair
	cached    float64
	hasCached bool
}

// New returns a generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Reseed restarts the stream and drops any cached Gaussian deviate.
func (g *Generator) Reseed(seed int64) {
	g.rng.Seed(seed)
	g.hasCached = false
}

// Unituni returns a uniform deviate in [0,1).
func (g *Generator) Unituni() float64 {
	return g.rng.Float64()
}

// open returns a uniform deviate in (0,1], safe for logarithms.
func (g *Generator) open() float64 {
	return 1 - g.rng.Float64()
}

// Uniform returns a uniform deviate in [min,max).
func (g *Generator) Uniform(min, max float64) float64 {
	return min + (max-min)*g.Unituni()
}

// Gauss returns a normal deviate with the given mean and standard deviation
// using the polar Box-Muller method. Each accepted pair of uniforms yields two
// independent deviates; the second is cached and returned, rescaled by the
// caller's mean and sigma, on the next call.
func (g *Generator) Gauss(mean, sigma float64) float64 {
	if g.hasCached {
		g.hasCached = false
		return g.cached*sigma + mean
	}

	var v1, v2, rsq float64
	for {
		v1 = 2*g.Unituni() - 1
		v2 = 2*g.Unituni() - 1
		rsq = v1*v1 + v2*v2
		if rsq < 1 && rsq != 0 {
			break
		}
	}
	fac := math.Sqrt(-2 * math.Log(rsq) / rsq)
	g.cached = v1 * fac
	g.hasCached = true
	return v2*fac*sigma + mean
}

// Exponential returns a deviate of the exponential distribution with the
// given density (rate) by inverse-CDF sampling.
func (g *Generator) Exponential(density float64) (float64, error) {
	if density == 0 {
		return 0, ErrZeroDensity
	}
	return -math.Log(g.open()) / density, nil
}

// Rayleigh returns a deviate of the Rayleigh distribution whose pdf peaks at
// mode. The mean is mode*sqrt(pi/2).
func (g *Generator) Rayleigh(mode float64) float64 {
	return math.Sqrt(-2*math.Log(g.open())) * mode
}
