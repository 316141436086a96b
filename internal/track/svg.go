package track

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/sixdof/internal/earth"
)

// SVG draws the ground track on an equirectangular world frame. The path
// is broken where it crosses the antimeridian.
func SVG(pts []Point, width, height int, strokeColor string) string {
	if len(pts) < 2 {
		return ""
	}
	w, h := float64(width), float64(height)
	project := func(p Point) (float64, float64) {
		lon, lat := p.Lon*earth.DEG, p.Lat*earth.DEG
		return (lon + 180) / 360 * w, (90 - lat) / 180 * h
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#333333" stroke-width="0.5" d="M0,%.1f L%d,%.1f M%.1f,0 L%.1f,%d"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height,
		h/2, width, h/2, w/2, w/2, height,
		strokeColor))

	for i, p := range pts {
		x, y := project(p)
		if i == 0 || math.Abs(p.Lon-pts[i-1].Lon) > math.Pi {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
