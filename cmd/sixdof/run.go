package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/experiment"
	"github.com/san-kum/sixdof/internal/sim"
	"github.com/san-kum/sixdof/internal/storage"
	"github.com/san-kum/sixdof/internal/track"
	"github.com/san-kum/sixdof/internal/tui"
)

var (
	preset       string
	scenarioFile string
	dt           float64
	duration     float64
	seed         int64
	integrator   string
	members      int
	workers      int
	exportFormat string
	outFile      string
)

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "preset scenario (see 'presets')")
	cmd.Flags().StringVar(&scenarioFile, "config", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "integration step, s")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration, s")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "euler, rk4, verlet or modified_euler")
}

// loadScenario starts from the preset or scenario file and applies the
// flags the user set explicitly.
func loadScenario(cmd *cobra.Command, model string) (*config.Scenario, error) {
	sc := config.DefaultScenario()
	switch {
	case scenarioFile != "":
		loaded, err := config.Load(scenarioFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		sc = loaded
	case preset != "":
		name := model
		if name == "" {
			name = sc.Model
		}
		sc = config.GetPreset(name, preset)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
	}
	if model != "" {
		sc.Model = model
	}

	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		sc.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}
	if cmd.Flags().Changed("integrator") {
		sc.Integrator = integrator
	}
	return sc, sc.Validate()
}

func modelArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [model]",
		Short: "propagate a scenario and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(cmd)
	cmd.Flags().IntVar(&members, "ensemble", 1, "number of ensemble members with consecutive seeds")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent ensemble members (0 = all)")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, modelArg(args))
	if err != nil {
		return err
	}

	exp, err := experiment.New(sc, experiment.NewRegistry(), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	start := time.Now()
	var (
		results []*sim.Result
		runErr  error
	)
	if members > 1 {
		results, runErr = exp.Ensemble(ctx, members, workers)
	} else {
		var r *sim.Result
		r, runErr = exp.Run(ctx)
		results = []*sim.Result{r}
	}
	if runErr != nil {
		log.Warn().Err(runErr).Msg("run stopped early")
	}
	elapsed := time.Since(start)

	if err = saveResults(ctx, st, sc, results); err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", elapsed)
	return runErr
}

// saveResults stores each non-nil result; member i ran with seed
// sc.Seed+i. Results of an interrupted run are still stored, so the
// cancellation of ctx is ignored.
func saveResults(ctx context.Context, st storage.Store, sc *config.Scenario, results []*sim.Result) error {
	ctx = context.WithoutCancel(ctx)
	for i, result := range results {
		if result == nil {
			continue
		}
		meta := storage.RunMetadata{
			Model:      sc.Model,
			Integrator: sc.Integrator,
			Seed:       sc.Seed + int64(i),
			Dt:         sc.Dt,
			Duration:   sc.Duration,
		}
		runID, err := st.Save(ctx, meta, result)
		if err != nil {
			return err
		}
		printSummary(runID, result)
	}
	return nil
}

func printSummary(runID string, result *sim.Result) {
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d", result.StepsTaken)
	if result.Terminated {
		fmt.Print(" (ground impact)")
	}
	fmt.Println()

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %.6g\n", name, result.Metrics[name])
	}
	fmt.Println()
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tSTEPS")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%.3gs\t%s\t%d\n",
					run.ID,
					run.Model,
					run.Timestamp.Local().Format("2006-01-02 15:04:05"),
					run.Duration,
					run.Dt,
					run.Integrator,
					run.Steps,
				)
			}
			return w.Flush()
		},
	}
}

// loadRun reads a stored run back into a Result.
func loadRun(cmd *cobra.Command, id string) (*storage.RunMetadata, *sim.Result, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(cmd.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	states, times, err := st.LoadSamples(cmd.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	controls, err := st.LoadControls(cmd.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	result := &sim.Result{
		States:     states,
		Controls:   controls,
		Times:      times,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
		Terminated: meta.Terminated,
	}
	return meta, result, nil
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot altitude and speed of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, result, err := loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			if len(result.States) == 0 {
				return fmt.Errorf("no data to plot")
			}

			pts, err := track.FromSamples(result.States, result.Times)
			if err != nil {
				return err
			}
			alt := make([]float64, len(pts))
			speed := make([]float64, len(pts))
			for i, p := range pts {
				alt[i] = p.Alt / 1000
				x := result.States[i]
				speed[i] = math.Sqrt(x[3]*x[3] + x[4]*x[4] + x[5]*x[5])
			}

			fmt.Printf("run: %s\nmodel: %s\nsamples: %d\n\n", meta.ID, meta.Model, len(pts))
			fmt.Println(asciigraph.Plot(alt, asciigraph.Height(10), asciigraph.Width(80),
				asciigraph.Caption("altitude (km) vs sample")))
			fmt.Println()
			fmt.Println(asciigraph.Plot(speed, asciigraph.Height(10), asciigraph.Width(80),
				asciigraph.Caption("inertial speed (m/s) vs sample")))
			fmt.Printf("\nground track length: %.1f km\n", track.GroundLength(pts))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json, wkt, web-mercator wkt or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "json", "json, wkt, mercator or svg")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	return cmd
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	format := strings.ToLower(exportFormat)
	switch format {
	case "json":
		return storage.ExportJSON(out, *meta, result)
	case "wkt", "mercator", "svg":
		pts, err := track.FromSamples(result.States, result.Times)
		if err != nil {
			return err
		}
		var text string
		switch format {
		case "wkt":
			text, err = track.WKT(pts)
		case "mercator":
			ls, merr := track.WebMercator(pts)
			text, err = ls.AsText(), merr
		default:
			text = track.SVG(pts, 1440, 720, "#00ff00")
		}
		if err != nil {
			return fmt.Errorf("export %s: %w", meta.ID, err)
		}
		_, err = fmt.Fprintln(out, text)
		return err
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live [model]",
		Short: "propagate a scenario in the terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(cmd, modelArg(args))
			if err != nil {
				return err
			}
			reg := experiment.NewRegistry()
			dyn, err := reg.GetModel(sc)
			if err != nil {
				return err
			}
			integ, err := reg.GetIntegrator(sc.Integrator)
			if err != nil {
				return err
			}

			m := tui.New(sc, dyn, integ, reg.GetController(sc, sc.Seed))
			final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
				return fm.Err()
			}
			return nil
		},
	}
	addScenarioFlags(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [model]",
		Short: "list preset scenarios",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelNames := config.ListModels()
			if len(args) > 0 {
				modelNames = args
			}
			for _, model := range modelNames {
				presets := config.ListPresets(model)
				if len(presets) == 0 {
					fmt.Printf("no presets for model: %s\n", model)
					continue
				}
				fmt.Printf("presets for %s:\n", model)
				for _, p := range presets {
					sc := config.GetPreset(model, p)
					fmt.Printf("  %-10s %s dt=%gs t=%gs\n", p, sc.Integrator, sc.Dt, sc.Duration)
				}
			}
			return nil
		},
	}
}
