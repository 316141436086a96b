package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/sixdof/internal/atmosphere"
	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/matrix"
	"github.com/san-kum/sixdof/internal/models"
	"github.com/san-kum/sixdof/internal/orbit"
	"github.com/san-kum/sixdof/internal/stochastic"
	"github.com/san-kum/sixdof/internal/table"
	"github.com/san-kum/sixdof/internal/tui"
)

func newAtmosCmd() *cobra.Command {
	var maxKm, stepKm float64
	cmd := &cobra.Command{
		Use:   "atmos [altitude_m]",
		Short: "standard atmosphere at an altitude, or a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				alt, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return err
				}
				c, err := atmosphere.Standard(alt)
				if err != nil {
					return err
				}
				fmt.Println(tui.Panel(fmt.Sprintf("atmosphere at %g m", alt), strings.Join([]string{
					tui.Label("density", fmt.Sprintf("%.6g kg/m^3", c.Rho)),
					tui.Label("pressure", fmt.Sprintf("%.6g Pa", c.Press)),
					tui.Label("temp", fmt.Sprintf("%.3f K", c.TempK)),
					tui.Label("sound", fmt.Sprintf("%.2f m/s", c.Sound)),
				}, "\n")))
				return nil
			}

			if stepKm <= 0 {
				return fmt.Errorf("step must be positive")
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ALT km\tRHO kg/m3\tP Pa\tT K\tA m/s")
			var temps []float64
			for z := 0.0; z <= maxKm; z += stepKm {
				c, err := atmosphere.Standard(z * 1000)
				if err != nil {
					return err
				}
				temps = append(temps, c.TempK)
				fmt.Fprintf(w, "%.1f\t%.4e\t%.4e\t%.2f\t%.1f\n", z, c.Rho, c.Press, c.TempK, c.Sound)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(temps) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(temps, asciigraph.Height(10), asciigraph.Width(80),
					asciigraph.Caption("temperature (K) vs altitude step")))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&maxKm, "max", 120, "profile ceiling, km")
	cmd.Flags().Float64Var(&stepKm, "step", 5, "profile step, km")
	return cmd
}

func newGeoCmd() *cobra.Command {
	var lon, lat, alt, t float64
	cmd := &cobra.Command{
		Use:   "geo",
		Short: "convert a WGS-84 position to inertial and back, with gravity",
		RunE: func(cmd *cobra.Command, args []string) error {
			lonR, latR := lon*earth.RAD, lat*earth.RAD
			sbii := geodesy.InGeo84(lonR, latR, alt, t)
			back, err := geodesy.Geo84In(sbii, t)
			if err != nil {
				return err
			}
			geoc := geodesy.GeocIn(sbii, t)
			g := geodesy.Grav84(sbii, t)

			fmt.Println(tui.Panel("position", strings.Join([]string{
				tui.Label("inertial", formatVec(sbii)),
				tui.Label("geodetic", fmt.Sprintf("%.8f° %.8f° %.3f m", back.Lon*earth.DEG, back.Lat*earth.DEG, back.Alt)),
				tui.Label("geocentric", fmt.Sprintf("%.8f° %.8f° %.3f m", geoc.Lon*earth.DEG, geoc.Lat*earth.DEG, geoc.Alt)),
				tui.Label("gravity", formatVec(g)+" m/s^2 (geographic)"),
				tui.Label("|g|", fmt.Sprintf("%.6f m/s^2", g.Absolute())),
			}, "\n")))
			fmt.Println(tui.Panel("TDI84", formatMat(geodesy.TDI84(lonR, latR, alt, t))))
			return nil
		},
	}
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude, deg")
	cmd.Flags().Float64Var(&lat, "lat", 0, "geodetic latitude, deg")
	cmd.Flags().Float64Var(&alt, "alt", 0, "altitude, m")
	cmd.Flags().Float64VarP(&t, "time", "t", 0, "time since epoch, s")
	return cmd
}

func addElementFlags(cmd *cobra.Command, el *orbit.Elements) {
	cmd.Flags().Float64Var(&el.Semi, "semi", 6778137, "semi-major axis, m")
	cmd.Flags().Float64Var(&el.Ecc, "ecc", 0.001, "eccentricity")
	cmd.Flags().Float64Var(&el.Incl, "incl", 51.6, "inclination, deg")
	cmd.Flags().Float64Var(&el.LonAnode, "node", 0, "longitude of the ascending node, deg")
	cmd.Flags().Float64Var(&el.ArgPeri, "argp", 0, "argument of periapsis, deg")
	cmd.Flags().Float64Var(&el.TrueAnom, "anom", 0, "true anomaly, deg")
}

func elementLines(el orbit.Elements, deg orbit.Degeneracy) []string {
	return []string{
		tui.Label("semi", fmt.Sprintf("%.3f m", el.Semi)),
		tui.Label("ecc", fmt.Sprintf("%.8f", el.Ecc)),
		tui.Label("incl", fmt.Sprintf("%.6f°", el.Incl)),
		tui.Label("node", fmt.Sprintf("%.6f°", el.LonAnode)),
		tui.Label("argp", fmt.Sprintf("%.6f°", el.ArgPeri)),
		tui.Label("anom", fmt.Sprintf("%.6f°", el.TrueAnom)),
		tui.Label("flags", deg.String()),
	}
}

func newOrbitCmd() *cobra.Command {
	var el orbit.Elements
	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "convert orbital elements to an inertial state and back",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, flags := orbit.InOrb(el)
			fmt.Println(tui.Panel("state", strings.Join([]string{
				tui.Label("position", formatVec(st.Pos)),
				tui.Label("velocity", formatVec(st.Vel)),
				tui.Label("energy", fmt.Sprintf("%.6g J/kg", st.Energy())),
				tui.Label("flags", flags.String()),
			}, "\n")))

			back, deg := orbit.OrbIn(st.Pos, st.Vel)
			fmt.Println(tui.Panel("elements", strings.Join(elementLines(back, deg), "\n")))
			return nil
		},
	}
	addElementFlags(cmd, &el)
	return cmd
}

func newKeplerCmd() *cobra.Command {
	var (
		el     orbit.Elements
		tgo    float64
		method string
	)
	cmd := &cobra.Command{
		Use:   "kepler",
		Short: "propagate a two-body orbit over a time interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _ := orbit.InOrb(el)

			var out orbit.State
			var err error
			switch method {
			case "morth":
				out, err = orbit.Kepler(st.Pos, st.Vel, tgo)
			case "universal":
				out, err = orbit.Kepler1(st.Pos, st.Vel, tgo)
			default:
				return fmt.Errorf("unknown method %q", method)
			}
			if err != nil && out.Pos == nil {
				return err
			}
			if err != nil {
				log.Warn().Err(err).Msg("propagation did not converge cleanly")
			}

			final, deg := orbit.OrbIn(out.Pos, out.Vel)
			pos := models.Geodetic(models.FromOrbit(out), tgo)
			lines := []string{
				tui.Label("position", formatVec(out.Pos)),
				tui.Label("velocity", formatVec(out.Vel)),
				tui.Label("geodetic", fmt.Sprintf("%.4f° %.4f° %.1f km", pos.Lon*earth.DEG, pos.Lat*earth.DEG, pos.Alt/1000)),
			}
			fmt.Println(tui.Panel(fmt.Sprintf("after %g s (%s)", tgo, method), strings.Join(lines, "\n")))
			fmt.Println(tui.Panel("elements", strings.Join(elementLines(final, deg), "\n")))
			return nil
		},
	}
	addElementFlags(cmd, &el)
	cmd.Flags().Float64Var(&tgo, "tgo", 600, "propagation time, s")
	cmd.Flags().StringVar(&method, "method", "universal", "morth (elliptic only) or universal")
	return cmd
}

func newLookupCmd() *cobra.Command {
	var deckFile string
	cmd := &cobra.Command{
		Use:   "lookup [table] [args...]",
		Short: "interpolate a table from a deck",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck := models.DefaultDragDeck()
			if deckFile != "" {
				var err error
				deck, err = table.LoadDeck(deckFile)
				if err != nil {
					return err
				}
			}

			if args[0] == "names" {
				for _, name := range deck.Names() {
					t, _ := deck.Get(name)
					fmt.Printf("%s (%dD)\n", name, t.Dim())
				}
				return nil
			}

			vals := make([]float64, len(args)-1)
			for i, a := range args[1:] {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				vals[i] = v
			}
			v, err := deck.LookUp(args[0], vals...)
			if err != nil {
				return err
			}
			fmt.Printf("%.10g\n", v)
			return nil
		},
	}
	cmd.Flags().StringVar(&deckFile, "deck", "", "table deck (yaml); default is the built-in drag deck")
	return cmd
}

func newNoiseCmd() *cobra.Command {
	var (
		kind         string
		n            int
		noiseSeed    int64
		mean, sigma  float64
		bcor, stepDt float64
	)
	cmd := &cobra.Command{
		Use:   "noise",
		Short: "draw samples from a stochastic generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("sample count must be positive")
			}
			g := stochastic.New(noiseSeed)
			ch := stochastic.MarkovChannel{Sigma: sigma, Bcor: bcor}

			xs := make([]float64, n)
			for i := range xs {
				switch kind {
				case "uniform":
					xs[i] = g.Uniform(mean-sigma, mean+sigma)
				case "gauss":
					xs[i] = g.Gauss(mean, sigma)
				case "exponential":
					v, err := g.Exponential(sigma)
					if err != nil {
						return err
					}
					xs[i] = v
				case "rayleigh":
					xs[i] = g.Rayleigh(sigma)
				case "markov":
					xs[i] = ch.Next(g, float64(i)*stepDt, stepDt)
				default:
					return fmt.Errorf("unknown generator %q", kind)
				}
			}

			m, s := stat.MeanStdDev(xs, nil)
			fmt.Println(asciigraph.Plot(xs, asciigraph.Height(10), asciigraph.Width(80),
				asciigraph.Caption(kind+" samples")))
			fmt.Println()
			fmt.Println(tui.Label("mean", fmt.Sprintf("%.6g", m)))
			fmt.Println(tui.Label("std", fmt.Sprintf("%.6g", s)))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "gauss", "uniform, gauss, exponential, rayleigh or markov")
	cmd.Flags().IntVarP(&n, "count", "n", 200, "number of samples")
	cmd.Flags().Int64Var(&noiseSeed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&mean, "mean", 0, "mean (uniform, gauss)")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "spread: half-width, sigma, density or mode")
	cmd.Flags().Float64Var(&bcor, "bcor", 0.1, "markov correlation coefficient, 1/s")
	cmd.Flags().Float64Var(&stepDt, "dt", 1, "markov sample interval, s")
	return cmd
}

func formatVec(v *matrix.Matrix) string {
	return fmt.Sprintf("[%.6g %.6g %.6g]", v.Vec(0), v.Vec(1), v.Vec(2))
}

func formatMat(m *matrix.Matrix) string {
	rows, cols := m.Dims()
	var b strings.Builder
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, _ := m.At(i, j)
			fmt.Fprintf(&b, "%10.6f ", v)
		}
		if i < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
