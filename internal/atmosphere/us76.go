package atmosphere

import (
	"fmt"
	"math"
)

// NASA Marshall 1976 tabulation: geometric altitude (km), molecular-scale
// temperature (K), molecular weight and pressure (mbar).
var (
	us76Alt = [49]float64{
		0., 11.019, 20.063, 32.162, 47.35,
		51.413, 71.802, 86., 91., 94.,
		97., 100., 103., 106., 108.,
		110., 112., 115., 120., 125.,
		130., 135., 140., 145., 150.,
		155., 160., 165., 170., 180.,
		190., 210., 230., 265., 300.,
		350., 400., 450., 500., 550.,
		600., 650., 700., 750., 800.,
		850., 900., 950., 1000.,
	}
	us76Temp = [49]float64{
		288.15, 216.65, 216.65, 228.65, 270.65,
		270.65, 214.65, 186.95, 186.87, 187.74,
		190.40, 195.08, 202.23, 212.89, 223.29,
		240.00, 264.00, 300.00, 360.00, 417.23,
		469.27, 516.59, 559.63, 598.78, 634.39,
		666.80, 696.29, 723.13, 747.57, 790.07,
		825.31, 878.84, 915.78, 955.20, 976.01,
		990.06, 995.83, 998.22, 999.24, 999.67,
		999.85, 999.93, 999.97, 999.99, 999.99,
		1000., 1000., 1000., 1000.,
	}
	us76Weight = [49]float64{
		28.9644, 28.9644, 28.9644, 28.9644, 28.9644,
		28.9644, 28.9644, 28.9522, 28.8890, 28.7830,
		28.6200, 28.3950, 28.1040, 27.7650, 27.5210,
		27.2680, 27.0200, 26.6800, 26.2050, 25.8030,
		25.4360, 25.0870, 24.7490, 24.4220, 24.1030,
		23.7920, 23.4880, 23.1920, 22.9020, 22.3420,
		21.8090, 20.8250, 19.9520, 18.6880, 17.7260,
		16.7350, 15.9840, 15.2470, 14.3300, 13.0920,
		11.5050, 9.7180, 7.9980, 6.5790, 5.5430,
		4.8490, 4.4040, 4.1220, 3.9400,
	}
	us76Press = [49]float64{
		1013.25, 226.32, 54.7487, 8.68014,
		1.10905, 0.66938, 0.039564, 3.7338e-03,
		1.5381e-03, 9.0560e-04, 5.3571e-04, 3.2011e-04,
		1.9742e-04, 1.2454e-04, 9.3188e-05, 7.1042e-05,
		5.5547e-05, 4.0096e-05, 2.5382e-05, 1.7354e-05,
		1.2505e-05, 9.3568e-06, 7.2028e-06, 5.6691e-06,
		4.5422e-06, 3.6930e-06, 3.0395e-06, 2.5278e-06,
		2.1210e-06, 1.5271e-06, 1.1266e-06, 6.4756e-07,
		3.9276e-07, 1.7874e-07, 8.7704e-08, 3.4498e-08,
		1.4518e-08, 6.4468e-09, 3.0236e-09, 1.5137e-09,
		8.2130e-10, 4.8865e-10, 3.1908e-10, 2.2599e-10,
		1.7036e-10, 1.3415e-10, 1.0873e-10, 8.9816e-11,
		7.5138e-11,
	}
	us76LogPress [49]float64
)

func init() {
	for i, p := range us76Press {
		us76LogPress[i] = math.Log(p)
	}
}

const (
	us76Radius  = 6356.766 // km
	us76G0      = 9.80665
	us76Weight0 = 28.9644
	us76Rgas    = 8314.32
)

// US76NASA2002 returns the air properties at geometric altitude z in km,
// valid on [0, 1000]. Outside that range it returns zero Conditions and
// ErrAltitudeRange.
func US76NASA2002(z float64) (Conditions, error) {
	if z < 0 || z > 1000 {
		return Conditions{}, fmt.Errorf("%w: %g km not in [0, 1000]", ErrAltitudeRange, z)
	}

	i, upper := 0, len(us76Alt)-1
	for upper-i > 1 {
		test := (i + upper) >> 1
		if z > us76Alt[test] {
			i = test
		} else {
			upper = test
		}
	}

	var t, p, wm float64
	if i < 7 {
		t, p = us76Lower(i, z)
		wm = us76Weight0
	} else {
		t = us76UpperTemp(i, z)

		j := i
		if i == 47 {
			j = i - 1
		}
		alpa := lagrange3(us76Alt[:], us76LogPress[:], j, z)
		wma := lagrange3(us76Alt[:], us76Weight[:], j, z)
		alpb, wmb := alpa, wma
		if i != 7 && i != 47 {
			alpb = lagrange3(us76Alt[:], us76LogPress[:], j-1, z)
			wmb = lagrange3(us76Alt[:], us76Weight[:], j-1, z)
		}
		p = 100 * math.Exp((alpa+alpb)/2)
		wm = (wma + wmb) / 2
	}

	d := wm * p / (us76Rgas * t)
	return Conditions{
		Rho:   d,
		Press: p,
		TempK: t,
		Sound: math.Sqrt(gamma * p / d),
	}, nil
}

// us76Lower evaluates the lapse-rate layers below 86 km in geopotential
// altitude.
func us76Lower(i int, z float64) (t, p float64) {
	zl := us76Radius * us76Alt[i] / (us76Radius + us76Alt[i])
	zu := us76Radius * us76Alt[i+1] / (us76Radius + us76Alt[i+1])
	ht := us76Radius * z / (us76Radius + z)
	g := (us76Temp[i+1] - us76Temp[i]) / (zu - zl)

	if g != 0 {
		p = us76Press[i] * math.Pow(us76Temp[i]/(us76Temp[i]+g*(ht-zl)), us76G0*us76Weight0/(us76Rgas*g*0.001)) * 100
	} else {
		p = us76Press[i] * math.Exp(-(us76G0*us76Weight0*(ht-zl)*1000)/(us76Rgas*us76Temp[i])) * 100
	}
	return us76Temp[i] + g*(ht-zl), p
}

// us76UpperTemp is the kinetic temperature above 86 km, one analytic
// profile per band.
func us76UpperTemp(i int, z float64) float64 {
	switch {
	case i == 7:
		return us76Temp[8]
	case i < 15:
		r := (z - 91) / 19.9429
		return 263.1905 - 76.3232*math.Sqrt(1-r*r)
	case i < 18:
		return 240 + 12*(z-110)
	default:
		xi := (z - 120) * (us76Radius + 120) / (us76Radius + z)
		return 1000 - 640*math.Exp(-0.01875*xi)
	}
}

// lagrange3 evaluates the quadratic through (xs[j..j+2], ys[j..j+2]) at x.
func lagrange3(xs, ys []float64, j int, x float64) float64 {
	x0, x1, x2 := xs[j], xs[j+1], xs[j+2]
	return ys[j]*(x-x1)*(x-x2)/((x0-x1)*(x0-x2)) +
		ys[j+1]*(x-x0)*(x-x2)/((x1-x0)*(x1-x2)) +
		ys[j+2]*(x-x0)*(x-x1)/((x2-x0)*(x2-x1))
}
