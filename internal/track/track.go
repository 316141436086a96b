// Package track turns a trajectory into a geodetic ground track and
// exports it as simple-features geometry.
package track

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/models"
	"github.com/san-kum/sixdof/internal/sim"
)

// Point is a geodetic sample of a trajectory.
type Point struct {
	Time float64
	geodesy.Geodetic
}

// FromSamples converts inertial states to geodetic points. Earth rotation
// is taken from each sample's time.
func FromSamples(states []sim.State, times []float64) ([]Point, error) {
	if len(states) != len(times) {
		return nil, fmt.Errorf("track: %d states but %d times", len(states), len(times))
	}
	pts := make([]Point, len(states))
	for i, x := range states {
		pts[i] = Point{Time: times[i], Geodetic: models.Geodetic(x, times[i])}
	}
	return pts, nil
}

// LineString returns the track as lon, lat in degrees and altitude in m.
// An empty track gives the empty LineString. A track that never leaves its
// first lon/lat is rejected by geom.
func LineString(pts []Point) (geom.LineString, error) {
	if len(pts) == 0 {
		return geom.LineString{}, nil
	}
	coords := make([]float64, 0, len(pts)*3)
	for _, p := range pts {
		coords = append(coords, p.Lon*earth.DEG, p.Lat*earth.DEG, p.Alt)
	}
	ls, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXYZ))
	if err != nil {
		return geom.LineString{}, fmt.Errorf("track: %w", err)
	}
	return ls, nil
}

func WKT(pts []Point) (string, error) {
	ls, err := LineString(pts)
	if err != nil {
		return "", err
	}
	return ls.AsText(), nil
}

// WebMercator projects the track onto EPSG:3857, in m.
func WebMercator(pts []Point) (geom.LineString, error) {
	if len(pts) == 0 {
		return geom.LineString{}, nil
	}
	f := wgs84.EPSG().Transform(4326, 3857)
	coords := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		x, y, _ := f(p.Lon*earth.DEG, p.Lat*earth.DEG, 0)
		coords = append(coords, x, y)
	}
	ls, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return geom.LineString{}, fmt.Errorf("track: %w", err)
	}
	return ls, nil
}

// GroundLength is the summed great-circle length of the track in km.
func GroundLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		total += geodesy.Distance(a.Lon, a.Lat, b.Lon, b.Lat)
	}
	return total
}
