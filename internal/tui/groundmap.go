package tui

import (
	"math"
	"strings"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/geodesy"
)

// groundMap is an equirectangular character map of the ground track.
type groundMap struct {
	w, h  int
	cells [][]rune
}

func newGroundMap(w, h int) *groundMap {
	g := &groundMap{w: w, h: h, cells: make([][]rune, h)}
	for i := range g.cells {
		g.cells[i] = make([]rune, w)
	}
	g.clear()
	return g
}

func (g *groundMap) clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = ' '
		}
	}
	eq := g.h / 2
	for x := range g.cells[eq] {
		g.cells[eq][x] = '·'
	}
	g.cells[eq][g.w/2] = '+'
}

// cell maps lon in [-π, π) and lat in [-π/2, π/2] to a grid position.
func (g *groundMap) cell(p geodesy.Geodetic) (int, int) {
	x := int(math.Floor((p.Lon*earth.DEG + 180) / 360 * float64(g.w)))
	y := int(math.Floor((90 - p.Lat*earth.DEG) / 180 * float64(g.h)))
	return clampInt(x, 0, g.w-1), clampInt(y, 0, g.h-1)
}

func (g *groundMap) plot(trail []geodesy.Geodetic) {
	g.clear()
	for i, p := range trail {
		x, y := g.cell(p)
		c := '.'
		if i == len(trail)-1 {
			c = '@'
		} else if i > len(trail)*3/4 {
			c = 'o'
		}
		g.cells[y][x] = c
	}
}

func (g *groundMap) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		b.WriteString(string(row))
		if i < len(g.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
