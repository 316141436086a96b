package table

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const deckYAML = `
tables:
  - name: cd
    axes: [[0, 0.8, 1.2, 3]]
    data: [0.3, 0.35, 0.6, 0.4]
  - name: cl
    axes: [[0, 1], [0, 10]]
    data: [0, 1, 2, 3]
`

// plane3 returns a 3-axis table sampling f = x1 + 10*x2 + 100*x3.
func plane3() *Table {
	axes := [][]float64{{0, 1, 2}, {0, 1}, {0, 2, 4}}
	var data []float64
	for _, x1 := range axes[0] {
		for _, x2 := range axes[1] {
			for _, x3 := range axes[2] {
				data = append(data, x1+10*x2+100*x3)
			}
		}
	}
	return &Table{Name: "plane", Axes: axes, Data: data}
}

var _ = Describe("FindIndex", func() {
	axis := []float64{1, 3, 5}

	DescribeTable("locates the sample at or below the value",
		func(value float64, want int) {
			Expect(FindIndex(len(axis)-1, value, axis)).To(Equal(want))
		},
		Entry("below range", 0.0, 0),
		Entry("first sample", 1.0, 0),
		Entry("between samples", 2.0, 0),
		Entry("exact interior sample", 3.0, 1),
		Entry("upper interval", 4.9, 1),
		Entry("last sample", 5.0, 2),
		Entry("above range", 5.5, 2),
	)

	It("searches long axes", func() {
		long := make([]float64, 100)
		for i := range long {
			long[i] = float64(i) * 0.5
		}
		Expect(FindIndex(99, 20.25, long)).To(Equal(40))
		Expect(FindIndex(99, 20.5, long)).To(Equal(41))
	})
})

var _ = Describe("Table", func() {
	Describe("LookUp1", func() {
		t := &Table{Name: "lin", Axes: [][]float64{{0, 10}}, Data: []float64{0, 100}}

		It("interpolates inside the axis", func() {
			Expect(t.LookUp1(2.5)).To(BeNumerically("~", 25, 1e-12))
		})
		It("holds the last value above the axis", func() {
			Expect(t.LookUp1(20)).To(Equal(100.0))
		})
		It("extrapolates the first slope below the axis", func() {
			Expect(t.LookUp1(-5)).To(BeNumerically("~", -50, 1e-12))
		})
	})

	Describe("LookUp2", func() {
		t := &Table{Name: "cl", Axes: [][]float64{{0, 1}, {0, 10}}, Data: []float64{0, 1, 2, 3}}

		It("interpolates bilinearly", func() {
			Expect(t.LookUp2(0.5, 5)).To(BeNumerically("~", 1.5, 1e-12))
			Expect(t.LookUp2(1, 0)).To(BeNumerically("~", 2, 1e-12))
		})
		It("holds each axis independently above range", func() {
			Expect(t.LookUp2(5, 5)).To(BeNumerically("~", 2.5, 1e-12))
			Expect(t.LookUp2(0.5, 50)).To(BeNumerically("~", 2, 1e-12))
		})
	})

	Describe("LookUp3", func() {
		t := plane3()

		It("reproduces a linear function inside the grid", func() {
			Expect(t.LookUp3(0.5, 0.25, 3)).To(BeNumerically("~", 0.5+2.5+300, 1e-9))
			Expect(t.LookUp3(1.7, 0.9, 0.4)).To(BeNumerically("~", 1.7+9+40, 1e-9))
		})
		It("hits the samples exactly", func() {
			Expect(t.LookUp3(2, 1, 4)).To(BeNumerically("~", 2+10+400, 1e-12))
		})
		It("clamps above and extrapolates below", func() {
			Expect(t.LookUp3(9, 9, 9)).To(BeNumerically("~", 2+10+400, 1e-12))
			Expect(t.LookUp3(-1, 0, 0)).To(BeNumerically("~", -1, 1e-12))
		})
	})

	It("dispatches on argument count", func() {
		t := plane3()
		v, err := t.LookUp(1, 1, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeNumerically("~", 211, 1e-12))

		_, err = t.LookUp(1)
		Expect(err).To(MatchError(ErrArgumentCount))
	})

	DescribeTable("Validate",
		func(t Table, want error) {
			err := t.Validate()
			if want == nil {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(err).To(MatchError(want))
		},
		Entry("valid", Table{Name: "ok", Axes: [][]float64{{0, 1}}, Data: []float64{1, 2}}, nil),
		Entry("no axes", Table{Name: "none"}, ErrNoAxes),
		Entry("four axes", Table{Name: "four", Axes: [][]float64{{0}, {0}, {0}, {0}}, Data: []float64{1}}, ErrNoAxes),
		Entry("descending", Table{Name: "desc", Axes: [][]float64{{1, 0}}, Data: []float64{1, 2}}, ErrAxisOrder),
		Entry("repeated sample", Table{Name: "rep", Axes: [][]float64{{0, 0, 1}}, Data: []float64{1, 2, 3}}, ErrAxisOrder),
		Entry("short data", Table{Name: "short", Axes: [][]float64{{0, 1}, {0, 1}}, Data: []float64{1, 2, 3}}, ErrDataLength),
	)
})

var _ = Describe("Deck", func() {
	var deck *Deck

	BeforeEach(func() {
		var err error
		deck, err = DecodeDeck(strings.NewReader(deckYAML))
		Expect(err).NotTo(HaveOccurred())
	})

	It("lists tables by name", func() {
		Expect(deck.Names()).To(Equal([]string{"cd", "cl"}))
	})

	It("looks up by name", func() {
		v, err := deck.LookUp("cd", 1.0)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeNumerically("~", 0.475, 1e-12))

		v, err = deck.LookUp("cl", 0.5, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("rejects unknown names", func() {
		_, err := deck.LookUp("cm", 1)
		Expect(err).To(MatchError(ErrUnknownTable))
	})

	It("rejects duplicate names", func() {
		t := Table{Name: "a", Axes: [][]float64{{0}}, Data: []float64{1}}
		_, err := NewDeck(t, t)
		Expect(err).To(HaveOccurred())
	})

	It("round trips through YAML", func() {
		var buf bytes.Buffer
		Expect(deck.Save(&buf)).To(Succeed())
		again, err := DecodeDeck(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(again.Names()).To(Equal(deck.Names()))
		Expect(again.LookUp("cd", 2.1)).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("reports invalid decks", func() {
		_, err := DecodeDeck(strings.NewReader("tables:\n  - name: bad\n    axes: [[1, 0]]\n    data: [1, 2]\n"))
		Expect(err).To(MatchError(ErrAxisOrder))
	})
})
