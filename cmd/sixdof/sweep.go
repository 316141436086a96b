package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/experiment"
	"github.com/san-kum/sixdof/internal/optim"
)

func newSweepCmd() *cobra.Command {
	var (
		params   []string
		metric   string
		maximize bool
	)
	cmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "grid-search scenario fields for the best metric",
		Example: "  sixdof sweep ballistic --preset artillery --param launch.flight_path=20:70:11 " +
			"--metric ground_range_km --max",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScenario(cmd, modelArg(args))
			if err != nil {
				return err
			}
			if len(params) == 0 {
				return fmt.Errorf("at least one --param is required")
			}

			names := make([]string, len(params))
			ranges := make([][]float64, len(params))
			for i, p := range params {
				names[i], ranges[i], err = parseRange(p)
				if err != nil {
					return err
				}
			}

			g := optim.NewGridSearch(names, ranges)
			g.Maximize = maximize
			quiet := log.Level(zerolog.WarnLevel)
			build := func(sc *config.Scenario, reg *experiment.Registry) (*experiment.Experiment, error) {
				return experiment.New(sc, reg, quiet)
			}
			best, val, err := g.Search(cmd.Context(), sc, experiment.NewRegistry(), build, metric)
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(best))
			for k := range best {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s = %g\n", k, best[k])
			}
			fmt.Printf("%s = %.6g\n", metric, val)
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().StringArrayVar(&params, "param", nil, "field=lo:hi:n grid, repeatable")
	cmd.Flags().StringVar(&metric, "metric", "ground_range_km", "metric to optimise")
	cmd.Flags().BoolVar(&maximize, "max", false, "maximise instead of minimise")
	return cmd
}

// parseRange reads "field=lo:hi:n".
func parseRange(s string) (string, []float64, error) {
	name, grid, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("param %q: want field=lo:hi:n", s)
	}
	parts := strings.Split(grid, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("param %q: want field=lo:hi:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, err
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("param %q: bad point count", s)
	}
	return name, optim.Linspace(lo, hi, n), nil
}
