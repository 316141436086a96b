package stochastic

import "math"

// Markov advances a first-order Gauss-Markov process by one integration
// step and returns the new value and the state to pass to the next call.
//
// At time == 0 the sequence restarts: the raw Gaussian sample is returned
// and stored. Otherwise, with a non-zero correlation coefficient bcor (1/s),
// the sample is blended with saved by exp(-bcor*intstep). With bcor == 0 the
// sample is white and saved is carried through unchanged.
func (g *Generator) Markov(sigma, bcor, time, intstep, saved float64) (value, next float64) {
	value = g.Gauss(0, sigma)
	if time == 0 {
		return value, value
	}
	if bcor == 0 {
		return value, saved
	}
	dum := math.Exp(-bcor * intstep)
	value = value*math.Sqrt(1-dum*dum) + saved*dum
	return value, value
}

// MarkovChannel keeps the state of one correlated noise channel.
type MarkovChannel struct {
	Sigma float64 // standard deviation
	Bcor  float64 // correlation coefficient, 1/s
	saved float64
}

// Next draws the channel's value at time t for step dt.
func (c *MarkovChannel) Next(g *Generator, t, dt float64) float64 {
	var v float64
	v, c.saved = g.Markov(c.Sigma, c.Bcor, t, dt, c.saved)
	return v
}

// Saved returns the value carried to the next step.
func (c *MarkovChannel) Saved() float64 { return c.saved }
