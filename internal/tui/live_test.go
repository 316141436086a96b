package tui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/integrators"
	"github.com/san-kum/sixdof/internal/models"
	"github.com/san-kum/sixdof/internal/sim"
)

func leoViewer(t *testing.T) Model {
	t.Helper()
	sc := config.GetPreset("orbiter", "leo")
	sc.Duration = 10
	return New(sc, models.NewOrbiter(), integrators.NewRK4(), nil)
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickAdvances(t *testing.T) {
	m := leoViewer(t)
	m = send(m, tickMsg(time.Now()))
	if m.Time() != 1 {
		t.Errorf("expected t=1 after one tick, got %f", m.Time())
	}

	m = send(m, key("+"))
	m = send(m, tickMsg(time.Now()))
	if m.Time() != 3 {
		t.Errorf("expected t=3 at double speed, got %f", m.Time())
	}
}

func TestPauseAndRestart(t *testing.T) {
	m := leoViewer(t)
	m = send(m, key(" "))
	m = send(m, tickMsg(time.Now()))
	if m.Time() != 0 {
		t.Errorf("paused viewer should not advance, got t=%f", m.Time())
	}

	m = send(m, key("p"))
	m = send(m, tickMsg(time.Now()))
	m = send(m, key("r"))
	if m.Time() != 0 || len(m.trail) != 1 {
		t.Errorf("restart should clear the run, got t=%f trail=%d", m.Time(), len(m.trail))
	}
}

func TestRunsToDuration(t *testing.T) {
	m := leoViewer(t)
	for i := 0; i < 20; i++ {
		m = send(m, tickMsg(time.Now()))
	}
	if !m.Done() {
		t.Fatal("expected viewer to finish")
	}
	if m.Time() != 10 {
		t.Errorf("expected to stop at 10 s, got %f", m.Time())
	}
	if !strings.Contains(m.View(), "finished") {
		t.Error("view should show finished status")
	}
}

func TestQuit(t *testing.T) {
	m := leoViewer(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

type blowUp struct{ *models.Orbiter }

func (blowUp) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	return sim.State{0, 0, 0, 0, 0, math.Inf(1)}
}

func TestInvalidStateStops(t *testing.T) {
	sc := config.GetPreset("orbiter", "leo")
	m := New(sc, blowUp{models.NewOrbiter()}, integrators.NewEuler(), nil)
	m = send(m, tickMsg(time.Now()))

	if !m.Done() || !errors.Is(m.Err(), sim.ErrInvalidState) {
		t.Errorf("expected invalid state error, got %v", m.Err())
	}
}

func TestViewShowsState(t *testing.T) {
	m := leoViewer(t)
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = send(m, tickMsg(time.Now()))
	m = send(m, tickMsg(time.Now()))

	view := m.View()
	for _, want := range []string{"orbiter", "ground track", "altitude km", "lat", "speed", "a "} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	b := New(config.GetPreset("ballistic", "sounding"), models.NewBallistic(), integrators.NewRK4(), nil)
	if !strings.Contains(b.View(), "mach") {
		t.Error("ballistic view should show mach")
	}
}

func TestGroundMapCell(t *testing.T) {
	g := newGroundMap(36, 18)
	tests := []struct {
		lon, lat float64
		x, y     int
	}{
		{0, 0, 18, 9},
		{-180, 90, 0, 0},
		{179.9, -90, 35, 17},
		{91, 46, 27, 4},
	}
	for _, tt := range tests {
		x, y := g.cell(geodesy.Geodetic{Lon: tt.lon * earth.RAD, Lat: tt.lat * earth.RAD})
		if x != tt.x || y != tt.y {
			t.Errorf("(%g, %g): expected (%d, %d), got (%d, %d)", tt.lon, tt.lat, tt.x, tt.y, x, y)
		}
	}

	g.plot([]geodesy.Geodetic{{}, {Lon: 90 * earth.RAD, Lat: 45 * earth.RAD}})
	if !strings.Contains(g.String(), "@") {
		t.Error("latest point should be marked")
	}
}
