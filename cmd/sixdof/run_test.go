package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/sim"
	"github.com/san-kum/sixdof/internal/storage"
)

func TestSaveResultsAfterCancel(t *testing.T) {
	st, err := storage.OpenSQLite("", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := config.DefaultScenario()
	partial := &sim.Result{
		States:     []sim.State{{6778137, 0, 0, 0, 7668.5, 0}, {6778132.7, 7668.5, 0, -8.68, 7668.49, 0}},
		Controls:   []sim.Control{{0, 0, 0}},
		Times:      []float64{0, 1},
		StepsTaken: 1,
	}
	if err := saveResults(ctx, st, sc, []*sim.Result{partial, nil}); err != nil {
		t.Fatalf("saving after cancellation: %v", err)
	}

	runs, err := st.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].Steps != 1 || runs[0].Seed != sc.Seed {
		t.Errorf("unexpected metadata %+v", runs[0])
	}
}
