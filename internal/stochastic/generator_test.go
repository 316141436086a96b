package stochastic

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"
)

func draw(n int, fn func() float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = fn()
	}
	return out
}

var _ = Describe("Generator", func() {
	const samples = 50000
	var g *Generator

	BeforeEach(func() {
		g = New(42)
	})

	It("replays the same stream for the same seed", func() {
		other := New(42)
		for i := 0; i < 10; i++ {
			Expect(g.Gauss(1, 2)).To(Equal(other.Gauss(1, 2)))
		}
	})

	It("restarts cleanly on Reseed", func() {
		first := draw(5, func() float64 { return g.Gauss(0, 1) })
		g.Reseed(42)
		second := draw(5, func() float64 { return g.Gauss(0, 1) })
		Expect(second).To(Equal(first))
	})

	It("keeps uniform draws inside the interval", func() {
		for i := 0; i < 1000; i++ {
			v := g.Uniform(-3, 5)
			Expect(v).To(BeNumerically(">=", -3))
			Expect(v).To(BeNumerically("<", 5))
		}
	})

	It("produces normal deviates with the requested moments", func() {
		xs := draw(samples, func() float64 { return g.Gauss(10, 3) })
		mean, std := stat.MeanStdDev(xs, nil)
		Expect(mean).To(BeNumerically("~", 10, 0.1))
		Expect(std).To(BeNumerically("~", 3, 0.1))
	})

	It("uses the cached deviate on the second call", func() {
		fresh := New(7)
		a := fresh.Gauss(0, 1)
		Expect(fresh.hasCached).To(BeTrue())
		b := fresh.Gauss(0, 1)
		Expect(fresh.hasCached).To(BeFalse())
		Expect(a).NotTo(Equal(b))
	})

	It("samples the exponential distribution", func() {
		xs := draw(samples, func() float64 {
			v, err := g.Exponential(4)
			Expect(err).NotTo(HaveOccurred())
			return v
		})
		Expect(stat.Mean(xs, nil)).To(BeNumerically("~", 0.25, 0.01))
	})

	It("rejects a zero exponential density", func() {
		_, err := g.Exponential(0)
		Expect(err).To(MatchError(ErrZeroDensity))
	})

	It("samples the Rayleigh distribution", func() {
		xs := draw(samples, func() float64 { return g.Rayleigh(2) })
		Expect(stat.Mean(xs, nil)).To(BeNumerically("~", 2*math.Sqrt(math.Pi/2), 0.03))
		for _, x := range xs[:100] {
			Expect(x).To(BeNumerically(">=", 0))
		}
	})
})

var _ = Describe("Markov", func() {
	It("returns an unblended sample at time zero", func() {
		g := New(99)
		ref := New(99)

		v, saved := g.Markov(1, 0.5, 0, 0.1, 123)
		Expect(v).To(Equal(ref.Gauss(0, 1)))
		Expect(saved).To(Equal(v))

		v, saved = g.Markov(3, 0.5, 0, 0.1, saved)
		Expect(v).To(Equal(ref.Gauss(0, 3)))
		Expect(saved).To(Equal(v))
	})

	It("blends with the previous value after time zero", func() {
		g := New(5)
		ref := New(5)

		_, saved := g.Markov(2, 1, 0, 0.1, 0)
		ref.Gauss(0, 2)

		v, next := g.Markov(2, 1, 0.1, 0.1, saved)
		dum := math.Exp(-0.1)
		want := ref.Gauss(0, 2)*math.Sqrt(1-dum*dum) + saved*dum
		Expect(v).To(BeNumerically("~", want, 1e-12))
		Expect(next).To(Equal(v))
	})

	It("carries the saved value through when uncorrelated", func() {
		g := New(5)
		_, saved := g.Markov(1, 0, 0.2, 0.1, 7)
		Expect(saved).To(Equal(7.0))
	})

	It("holds the stationary standard deviation", func() {
		g := New(11)
		ch := &MarkovChannel{Sigma: 1.5, Bcor: 0.2}
		xs := make([]float64, 0, 40000)
		for i := 0; i < cap(xs); i++ {
			xs = append(xs, ch.Next(g, float64(i)*0.05, 0.05))
		}
		_, std := stat.MeanStdDev(xs, nil)
		Expect(std).To(BeNumerically("~", 1.5, 0.25))
		Expect(ch.Saved()).To(Equal(xs[len(xs)-1]))
	})
})
