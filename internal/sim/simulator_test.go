package sim

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

type decay struct{}

func (decay) Derivative(x State, u Control, time float64) State { return State{-x[0]} }
func (decay) StateDim() int                                     { return 1 }
func (decay) ControlDim() int                                   { return 0 }
func (decay) Energy(x State) float64                            { return x[0] * x[0] }

type blowup struct{ at float64 }

func (b blowup) Derivative(x State, u Control, time float64) State {
	if time >= b.at {
		return State{math.NaN()}
	}
	return State{1}
}
func (blowup) StateDim() int   { return 1 }
func (blowup) ControlDim() int { return 0 }

type euler struct{}

func (euler) Step(dyn Dynamics, x State, u Control, time float64, dt float64) State {
	return x.Add(dyn.Derivative(x, u, time).Scale(dt))
}

type meanMetric struct {
	count int
	sum   float64
}

func (m *meanMetric) Name() string { return "mean" }
func (m *meanMetric) Observe(x State, u Control, time float64) {
	m.count++
	m.sum += x[0]
}
func (m *meanMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *meanMetric) Reset() { *m = meanMetric{} }

func TestSimulatorRun(t *testing.T) {
	s := New(decay{}, euler{}, nil)

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 || len(result.Times) != 11 {
		t.Fatalf("expected 11 samples, got %d states and %d times", len(result.States), len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if math.Abs(result.Times[10]-1.0) > 1e-12 {
		t.Errorf("final time drifted: %v", result.Times[10])
	}

	want := math.Pow(0.9, 10)
	if got := result.Final()[0]; math.Abs(got-want) > 1e-12 {
		t.Errorf("final state = %.6f, want %.6f", got, want)
	}
	if result.EnergyDrift <= 0 {
		t.Error("expected energy drift for a decaying system")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(decay{}, euler{}, nil)

	tests := []struct {
		name string
		x0   State
		cfg  Config
		want error
	}{
		{"zero dt", State{1}, Config{Dt: 0, Duration: 1.0}, ErrInvalidConfig},
		{"negative dt", State{1}, Config{Dt: -0.1, Duration: 1.0}, ErrInvalidConfig},
		{"zero duration", State{1}, Config{Dt: 0.1, Duration: 0}, ErrInvalidConfig},
		{"wrong state length", State{1, 2}, Config{Dt: 0.1, Duration: 1}, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.x0, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorMetricsAndObservers(t *testing.T) {
	s := New(decay{}, euler{}, nil)
	metric := &meanMetric{}
	s.AddMetric(metric)

	var seen int
	s.AddObserver(ObserverFunc(func(x State, u Control, t float64) { seen++ }))

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if seen != 10 {
		t.Errorf("observer saw %d steps, want 10", seen)
	}
	if v, ok := result.Metrics["mean"]; !ok || v <= 0 || v >= 1 {
		t.Errorf("unexpected mean metric %v (present=%v)", v, ok)
	}

	// metrics reset between runs
	again, _ := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if again.Metrics["mean"] != result.Metrics["mean"] {
		t.Errorf("metric not reset: %v vs %v", again.Metrics["mean"], result.Metrics["mean"])
	}
}

func TestSimulatorInvalidState(t *testing.T) {
	s := New(blowup{at: 0.5}, euler{}, nil)

	result, err := s.Run(context.Background(), State{0}, Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %T", err)
	}
	if stepErr.Step != 5 {
		t.Errorf("failure at step %d, want 5", stepErr.Step)
	}
	if result == nil || result.StepsTaken != 5 || !result.Final().IsValid() {
		t.Errorf("partial result not kept: %+v", result)
	}
}

func TestSimulatorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(decay{}, euler{}, nil)
	result, err := s.Run(ctx, State{1}, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("cancelled run took %d steps", result.StepsTaken)
	}
}

func TestRunWithCallback(t *testing.T) {
	s := New(decay{}, euler{}, nil)

	var calls int
	err := s.RunWithCallback(context.Background(), State{1}, Config{Dt: 0.1, Duration: 1.0}, func(x State, u Control, t float64) bool {
		calls++
		return t < 0.45
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 6 {
		t.Errorf("callback called %d times, want 6", calls)
	}
}

func TestEnsembleSeeds(t *testing.T) {
	var built atomic.Int32
	seeds := make([]int64, 4)

	factory := func(seed int64) (*Simulator, error) {
		seeds[built.Add(1)-1] = seed
		return New(decay{}, euler{}, nil), nil
	}

	results, err := NewEnsemble(factory, 4, 100, 2).Run(context.Background(), State{1}, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}

	var sum int64
	for _, s := range seeds {
		sum += s
	}
	if sum != 100+101+102+103 {
		t.Errorf("unexpected seeds %v", seeds)
	}
	for i, r := range results {
		if r == nil || r.StepsTaken != 10 {
			t.Errorf("member %d incomplete", i)
		}
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	boom := errors.New("boom")
	factory := func(seed int64) (*Simulator, error) {
		if seed == 1 {
			return nil, boom
		}
		return New(decay{}, euler{}, nil), nil
	}

	results, err := NewEnsemble(factory, 3, 0, 0).Run(context.Background(), State{1}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected factory error, got %v", err)
	}
	if results[0] == nil || results[2] == nil || results[1] != nil {
		t.Errorf("unexpected results %v", results)
	}
}

type fall struct{}

func (fall) Derivative(x State, u Control, time float64) State { return State{x[1], -10} }
func (fall) StateDim() int                                     { return 2 }
func (fall) ControlDim() int                                   { return 0 }
func (fall) Done(x State, time float64) bool                   { return x[0] <= 0 }

func TestSimulatorTerminator(t *testing.T) {
	s := New(fall{}, euler{}, nil)
	result, err := s.Run(context.Background(), State{100, 0}, Config{Dt: 0.1, Duration: 100})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !result.Terminated {
		t.Fatal("expected the run to terminate on impact")
	}
	if result.Final()[0] > 0 {
		t.Errorf("stopped above ground: %v", result.Final())
	}
	if result.StepsTaken >= 1000 {
		t.Errorf("ran the full duration: %d steps", result.StepsTaken)
	}
}
