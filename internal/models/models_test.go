package models

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/integrators"
	"github.com/san-kum/sixdof/internal/orbit"
	"github.com/san-kum/sixdof/internal/sim"
)

func leoState() sim.State {
	s, _ := orbit.InOrb(orbit.Elements{Semi: 6.9e6, Ecc: 0.01, Incl: 51.6, LonAnode: 20, ArgPeri: 30, TrueAnom: 40})
	return FromOrbit(s)
}

func TestOrbitStateRoundTrip(t *testing.T) {
	x := leoState()
	back := FromOrbit(ToOrbit(x))
	for i := range x {
		if back[i] != x[i] {
			t.Fatalf("component %d: %v != %v", i, back[i], x[i])
		}
	}
}

func TestOrbiterDimensions(t *testing.T) {
	o := NewOrbiter()
	if o.StateDim() != 6 || o.ControlDim() != 3 {
		t.Errorf("unexpected dims %d/%d", o.StateDim(), o.ControlDim())
	}
}

func TestOrbiterGravity(t *testing.T) {
	o := NewOrbiter()
	r := 7.0e6
	dx := o.Derivative(sim.State{r, 0, 0, 0, 7500, 0}, nil, 0)

	if dx[1] != 7500 {
		t.Errorf("position rate should be the velocity, got %v", dx[:3])
	}
	g := math.Sqrt(dx[3]*dx[3] + dx[4]*dx[4] + dx[5]*dx[5])
	want := earth.GM / (r * r)
	if math.Abs(g-want)/want > 5e-3 {
		t.Errorf("gravity %.4f, want about %.4f", g, want)
	}
	if dx[3] >= 0 || math.Abs(dx[4]) > 1e-9 || math.Abs(dx[5]) > 1e-9 {
		t.Errorf("equatorial gravity should point to the centre: %v", dx[3:])
	}

	thrust := o.Derivative(sim.State{r, 0, 0, 0, 7500, 0}, sim.Control{0, 1, 0}, 0)
	if math.Abs(thrust[4]-dx[4]-1) > 1e-12 {
		t.Errorf("control acceleration not applied: %v", thrust[4]-dx[4])
	}
}

func TestOrbiterTracksKepler(t *testing.T) {
	x0 := leoState()
	s := sim.New(NewOrbiter(), integrators.NewRK4(), nil)
	res, err := s.Run(context.Background(), x0, sim.Config{Dt: 5, Duration: 600, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sbii, vbii := PosVel(x0)
	want, err := orbit.Kepler(sbii, vbii, 600)
	if err != nil {
		t.Fatalf("kepler failed: %v", err)
	}
	got, _ := PosVel(res.Final())
	diff := math.Sqrt(math.Pow(got.Vec(0)-want.Pos.Vec(0), 2) + math.Pow(got.Vec(1)-want.Pos.Vec(1), 2) + math.Pow(got.Vec(2)-want.Pos.Vec(2), 2))
	// the only difference is the C20 perturbation
	if diff > 10e3 {
		t.Errorf("orbiter departs from two-body motion by %.0f m", diff)
	}
	if res.Terminated {
		t.Error("orbit should not reach the ground")
	}
}

func TestLaunchAtRest(t *testing.T) {
	x := Launch(10, 45, 1000, 0, 0, 0)
	sbii, vbii := PosVel(x)

	vrel, err := geodesy.EarthRelativeVelocity(sbii, vbii)
	if err != nil {
		t.Fatal(err)
	}
	if vrel.Absolute() > 1e-6 {
		t.Errorf("vehicle at rest moves %.3g m/s wrt the Earth", vrel.Absolute())
	}

	pos := Geodetic(x, 0)
	if math.Abs(pos.Lon*earth.DEG-10) > 1e-6 || math.Abs(pos.Lat*earth.DEG-45) > 1e-5 || math.Abs(pos.Alt-1000) > 0.1 {
		t.Errorf("launch point not recovered: %+v", pos)
	}
}

func TestLaunchHeading(t *testing.T) {
	x := Launch(0, 0, 0, 100, 90, 30)
	sbii, vbii := PosVel(x)
	gv, err := geodesy.Geo84VelIn(sbii, vbii, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(gv.Speed-100) > 1e-4 || math.Abs(gv.Heading-90) > 1e-4 || math.Abs(gv.FlightPath-30) > 1e-4 {
		t.Errorf("unexpected ground velocity %+v", gv)
	}
}

func TestBallisticDragOpposesMotion(t *testing.T) {
	b := NewBallistic()
	x := Launch(0, 0, 1000, 300, 90, 0)

	withDrag := b.Derivative(x, nil, 0)
	sbii, vbii := PosVel(x)
	g := geodesy.Grav84Inertial(sbii, 0)
	vair, _ := geodesy.EarthRelativeVelocity(sbii, vbii)

	var dot float64
	for i := 0; i < 3; i++ {
		dot += (withDrag[3+i] - g.Vec(i)) * vair.Vec(i)
	}
	if dot >= 0 {
		t.Errorf("drag does not oppose the air-relative velocity: %v", dot)
	}

	_, ad := b.AirData(x, 0)
	if ad.Mach < 0.85 || ad.Mach > 0.95 {
		t.Errorf("unexpected Mach %v at 300 m/s near sea level", ad.Mach)
	}
}

func TestBallisticAppliesControl(t *testing.T) {
	b := NewBallistic()
	if b.ControlDim() != 3 {
		t.Fatalf("expected 3 control inputs, got %d", b.ControlDim())
	}
	x := Launch(0, 0, 1000, 300, 90, 10)
	u := sim.Control{0.5, -1, 2}

	free := b.Derivative(x, nil, 0)
	pushed := b.Derivative(x, u, 0)
	for i := 0; i < 3; i++ {
		if pushed[i] != free[i] {
			t.Errorf("control changed velocity component %d", i)
		}
		if got := pushed[3+i] - free[3+i]; math.Abs(got-u[i]) > 1e-9 {
			t.Errorf("axis %d: control adds %v, want %v", i, got, u[i])
		}
	}
}

func TestBallisticNoDragInVacuum(t *testing.T) {
	b := NewBallistic()
	x := Launch(0, 0, 2e6, 300, 90, 0)
	dx := b.Derivative(x, nil, 0)

	sbii, _ := PosVel(x)
	g := geodesy.Grav84Inertial(sbii, 0)
	for i := 0; i < 3; i++ {
		if dx[3+i] != g.Vec(i) {
			t.Fatalf("expected gravity only above the atmosphere, axis %d: %v vs %v", i, dx[3+i], g.Vec(i))
		}
	}
}

func TestBallisticFlightImpacts(t *testing.T) {
	b := NewBallistic()
	x0 := Launch(0, 0, 0, 800, 90, 45)

	s := sim.New(b, integrators.NewModifiedEuler(), nil)
	res, err := s.Run(context.Background(), x0, sim.Config{Dt: 0.1, Duration: 600, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !res.Terminated {
		t.Fatal("projectile never landed")
	}

	start := Geodetic(x0, 0)
	end := Geodetic(res.Final(), res.Times[len(res.Times)-1])
	rng := geodesy.Distance(start.Lon, start.Lat, end.Lon, end.Lat)
	vacuum := 800.0 * 800.0 / earth.AGrav / 1000
	if rng <= 0 || rng >= vacuum {
		t.Errorf("range %.1f km should be positive and below the vacuum range %.1f km", rng, vacuum)
	}
}

func TestDisturbance(t *testing.T) {
	d := NewDisturbance(7, 0.01, 0.1, 1)
	u0 := d.Compute(nil, 0)
	if len(u0) != 3 {
		t.Fatalf("expected 3 axes, got %d", len(u0))
	}
	again := d.Compute(nil, 0)
	for i := range u0 {
		if again[i] != u0[i] {
			t.Fatalf("repeat call changed axis %d", i)
		}
	}

	e := NewDisturbance(11, 0.01, 0.1, 1)
	f := NewDisturbance(11, 0.01, 0.1, 1)
	for step := 0; step < 5; step++ {
		a := e.Compute(nil, float64(step))
		b := f.Compute(nil, float64(step))
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("same seed diverged at step %d", step)
			}
		}
	}
}
