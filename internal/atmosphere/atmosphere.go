// Package atmosphere implements the 1976 US Standard Atmosphere in two
// forms: a compact eight-layer model valid to 84.852 km and the NASA
// Marshall tabulation extended to 1000 km.
package atmosphere

import (
	"errors"
	"math"
)

// ErrAltitudeRange is returned with zeroed Conditions for altitudes outside
// the model's table.
var ErrAltitudeRange = errors.New("atmosphere: altitude outside model range")

// Conditions are the ambient air properties at one altitude.
type Conditions struct {
	Rho   float64 `json:"rho"`   // density, kg/m^3
	Press float64 `json:"press"` // static pressure, Pa
	TempK float64 `json:"tempk"` // temperature, K
	Sound float64 `json:"sound"` // speed of sound, m/s
}

const (
	gasConstant = 287.053 // J/(kg K), dry air
	gamma       = 1.4

	rhoSeaLevel   = 1.22500
	pressSeaLevel = 101325.0
	tempSeaLevel  = 288.15

	// Ceiling76 is the highest geometric altitude, in metres, resolved by
	// Atmosphere76.
	Ceiling76 = 84852.0
)

var layers76 = struct {
	h, t, p, grad [8]float64
}{
	h:    [8]float64{0.0, 11.0, 20.0, 32.0, 47.0, 51.0, 71.0, 84.852},
	t:    [8]float64{288.15, 216.65, 216.65, 228.65, 270.65, 270.65, 214.65, 186.946},
	p:    [8]float64{1.0, 2.233611e-1, 5.403295e-2, 8.5666784e-3, 1.0945601e-3, 6.6063531e-4, 3.9046834e-5, 3.68501e-6},
	grad: [8]float64{-6.5, 0.0, 1.0, 2.8, 0.0, -2.8, -2.0, 0.0},
}

// Atmosphere76 returns the air properties at geometric altitude balt in
// metres. At and above Ceiling76 density and pressure are zero and the
// temperature is held at the top of the table.
func Atmosphere76(balt float64) Conditions {
	const (
		rearth = 6369.0    // km
		gmr    = 34.163195 // hydrostatic constant, K/km
	)
	alt := balt / 1000
	if balt >= Ceiling76 {
		return withSound(Conditions{TempK: layers76.t[7]})
	}

	// Geopotential altitude in km.
	h := alt * rearth / (alt + rearth)

	i, j := 0, len(layers76.h)-1
	for j > i+1 {
		k := (i + j) / 2
		if h < layers76.h[k] {
			j = k
		} else {
			i = k
		}
	}

	tgrad := layers76.grad[i]
	tbase := layers76.t[i]
	deltah := h - layers76.h[i]
	tlocal := tbase + tgrad*deltah
	theta := tlocal / layers76.t[0]

	var delta float64
	if tgrad == 0 {
		delta = layers76.p[i] * math.Exp(-gmr*deltah/tbase)
	} else {
		delta = layers76.p[i] * math.Pow(tbase/tlocal, gmr/tgrad)
	}

	return withSound(Conditions{
		Rho:   rhoSeaLevel * delta / theta,
		Press: pressSeaLevel * delta,
		TempK: tempSeaLevel * theta,
	})
}

func withSound(c Conditions) Conditions {
	c.Sound = math.Sqrt(gamma * gasConstant * c.TempK)
	return c
}

// Standard picks Atmosphere76 below its ceiling and US76NASA2002 above it.
// balt is in metres.
func Standard(balt float64) (Conditions, error) {
	if balt < Ceiling76 {
		return Atmosphere76(balt), nil
	}
	return US76NASA2002(balt / 1000)
}
