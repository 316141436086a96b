// Package table holds named sampled functions of one to three variables
// and interpolates them linearly. Below an axis the end slope is
// extrapolated; above it the last sample is held.
package table

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/san-kum/sixdof/internal/earth"
)

var (
	ErrNoAxes        = errors.New("table: one to three axes required")
	ErrAxisOrder     = errors.New("table: axis values must be strictly ascending")
	ErrDataLength    = errors.New("table: data length does not match axes")
	ErrUnknownTable  = errors.New("table: unknown table")
	ErrArgumentCount = errors.New("table: argument count does not match table dimension")
)

// Table is a sampled function over up to three axes. Data is row-major:
// the last axis varies fastest.
type Table struct {
	Name string      `yaml:"name" json:"name"`
	Axes [][]float64 `yaml:"axes" json:"axes"`
	Data []float64   `yaml:"data" json:"data"`
}

// Dim returns the number of independent variables.
func (t *Table) Dim() int {
	return len(t.Axes)
}

// Validate checks axis ordering and data length.
func (t *Table) Validate() error {
	if len(t.Axes) < 1 || len(t.Axes) > 3 {
		return fmt.Errorf("%w: %q has %d", ErrNoAxes, t.Name, len(t.Axes))
	}
	n := 1
	for i, axis := range t.Axes {
		if len(axis) == 0 || !strictlyAscending(axis) {
			return fmt.Errorf("%w: %q axis %d", ErrAxisOrder, t.Name, i)
		}
		n *= len(axis)
	}
	if len(t.Data) != n {
		return fmt.Errorf("%w: %q has %d values, want %d", ErrDataLength, t.Name, len(t.Data), n)
	}
	return nil
}

func strictlyAscending(axis []float64) bool {
	if !slices.IsSorted(axis) {
		return false
	}
	return len(slices.Compact(slices.Clone(axis))) == len(axis)
}

// FindIndex returns the offset of the sample at or below value in
// axis[:max+1]. Values below the axis map to 0 and values at or above
// axis[max] map to max.
func FindIndex(max int, value float64, axis []float64) int {
	if value >= axis[max] {
		return max
	}
	if value <= axis[0] {
		return 0
	}
	lo, hi := 0, max
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case value < axis[mid]:
			hi = mid - 1
		case value > axis[mid]:
			lo = mid + 1
		default:
			return mid
		}
	}
	return hi
}

// bracket locates value on axis and returns the lower index, the upper
// index and the interpolation fraction. At the top of the axis the upper
// index collapses onto the lower one.
func bracket(axis []float64, value float64) (lo, hi int, frac float64) {
	last := len(axis) - 1
	lo = FindIndex(last, value, axis)
	if lo == last {
		return lo, lo, 0
	}
	hi = lo + 1
	if dx := axis[hi] - axis[lo]; dx > earth.EPS {
		frac = (value - axis[lo]) / dx
	}
	return lo, hi, frac
}

func lerp(frac, y0, y1 float64) float64 {
	return frac*(y1-y0) + y0
}

// LookUp1 interpolates a one-axis table.
func (t *Table) LookUp1(x float64) float64 {
	i0, i1, f := bracket(t.Axes[0], x)
	return lerp(f, t.Data[i0], t.Data[i1])
}

// LookUp2 interpolates a two-axis table bilinearly.
func (t *Table) LookUp2(x1, x2 float64) float64 {
	d2 := len(t.Axes[1])
	i10, i11, f1 := bracket(t.Axes[0], x1)
	i20, i21, f2 := bracket(t.Axes[1], x2)

	y1 := lerp(f1, t.Data[i10*d2+i20], t.Data[i11*d2+i20])
	y2 := lerp(f1, t.Data[i10*d2+i21], t.Data[i11*d2+i21])
	return lerp(f2, y1, y2)
}

// LookUp3 interpolates a three-axis table. Each plane of constant second
// variable is interpolated bilinearly over the first and third variables,
// then the two planes are blended along the second.
func (t *Table) LookUp3(x1, x2, x3 float64) float64 {
	d2, d3 := len(t.Axes[1]), len(t.Axes[2])
	i10, i11, f1 := bracket(t.Axes[0], x1)
	i20, i21, f2 := bracket(t.Axes[1], x2)
	i30, i31, f3 := bracket(t.Axes[2], x3)

	at := func(i, j, k int) float64 {
		return t.Data[i*d2*d3+j*d3+k]
	}
	plane := func(j int) float64 {
		y1 := lerp(f1, at(i10, j, i30), at(i11, j, i30))
		y3 := lerp(f1, at(i10, j, i31), at(i11, j, i31))
		return lerp(f3, y1, y3)
	}
	return lerp(f2, plane(i20), plane(i21))
}

// LookUp dispatches on the number of arguments, which must equal Dim.
func (t *Table) LookUp(args ...float64) (float64, error) {
	if len(args) != t.Dim() {
		return 0, fmt.Errorf("%w: %q takes %d, got %d", ErrArgumentCount, t.Name, t.Dim(), len(args))
	}
	switch len(args) {
	case 1:
		return t.LookUp1(args[0]), nil
	case 2:
		return t.LookUp2(args[0], args[1]), nil
	default:
		return t.LookUp3(args[0], args[1], args[2]), nil
	}
}
