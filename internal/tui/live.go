// Package tui is the terminal viewer that propagates a scenario step by
// step and draws its ground track, altitude history and flight state.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sixdof/internal/atmosphere"
	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/earth"
	"github.com/san-kum/sixdof/internal/geodesy"
	"github.com/san-kum/sixdof/internal/models"
	"github.com/san-kum/sixdof/internal/orbit"
	"github.com/san-kum/sixdof/internal/sim"
)

const (
	maxTrail   = 400
	maxHistory = 120
	maxSpeed   = 512
)

type airData interface {
	AirData(x sim.State, t float64) (atmosphere.Conditions, atmosphere.AirData)
}

type elementSource interface {
	Elements(x sim.State) (orbit.Elements, orbit.Degeneracy)
}

// Model is the bubbletea model of a live propagation.
type Model struct {
	sc    *config.Scenario
	dyn   sim.Dynamics
	integ sim.Integrator
	ctrl  sim.Controller

	x       sim.State
	t       float64
	paused  bool
	done    bool
	err     error
	speed   int
	trail   []geodesy.Geodetic
	history []float64

	width, height int
}

// New returns a viewer for sc. ctrl may be nil.
func New(sc *config.Scenario, dyn sim.Dynamics, integ sim.Integrator, ctrl sim.Controller) Model {
	if ctrl == nil {
		ctrl = sim.NoControl{}
	}
	m := Model{sc: sc, dyn: dyn, integ: integ, ctrl: ctrl, width: 80, height: 24}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.x = m.sc.InitState()
	m.t = 0
	m.paused = false
	m.done = false
	m.err = nil
	m.speed = 1
	m.trail = make([]geodesy.Geodetic, 0, maxTrail)
	m.history = make([]float64, 0, maxHistory)
	m.record()
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "r":
			m.reset()
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		if !m.paused && !m.done {
			for i := 0; i < m.speed && !m.done; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

// step advances one integration step and records the sample.
func (m *Model) step() {
	if m.t >= m.sc.Duration {
		m.done = true
		return
	}
	u := m.ctrl.Compute(m.x, m.t)
	next := m.integ.Step(m.dyn, m.x, u, m.t, m.sc.Dt)
	if !next.IsValid() {
		m.err = &sim.StepError{Time: m.t, State: m.x.Clone(), Err: sim.ErrInvalidState}
		m.done = true
		return
	}
	m.x = next
	m.t += m.sc.Dt
	m.record()

	if term, ok := m.dyn.(sim.Terminator); ok && term.Done(m.x, m.t) {
		m.done = true
	}
}

func (m *Model) record() {
	pos := models.Geodetic(m.x, m.t)
	m.trail = append(m.trail, pos)
	if len(m.trail) > maxTrail {
		m.trail = m.trail[1:]
	}
	m.history = append(m.history, pos.Alt/1000)
	if len(m.history) > maxHistory {
		m.history = m.history[1:]
	}
}

func (m Model) View() string {
	var b strings.Builder

	status := green.Render("● running")
	switch {
	case m.err != nil:
		status = magenta.Render("✕ " + m.err.Error())
	case m.done:
		status = dim.Render("■ finished")
	case m.paused:
		status = yellow.Render("○ paused")
	}
	b.WriteString(fmt.Sprintf("\n %s %s  %s  %s\n",
		cyan.Render(m.sc.Model), dim.Render(m.sc.Integrator), status,
		dim.Render(fmt.Sprintf("x%d", m.speed))))
	b.WriteString(" " + m.progressBar(36) + "\n\n")

	mapW := max(m.width-4, 40)
	mapH := max(m.height-22, 9)
	gm := newGroundMap(mapW, mapH)
	gm.plot(m.trail)
	b.WriteString(Panel("ground track", gm.String()) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5), asciigraph.Width(min(mapW-12, maxHistory)),
			asciigraph.Caption("altitude km"))
		b.WriteString(chart + "\n\n")
	}

	b.WriteString(m.flightState() + "\n\n")
	b.WriteString(dimmer.Render(" space pause   +/- speed   r restart   q quit") + "\n")
	return b.String()
}

func (m Model) progressBar(width int) string {
	progress := math.Min(m.t/m.sc.Duration, 1)
	filled := int(progress * float64(width))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", width-filled))
	return fmt.Sprintf("%s %s", bar, dim.Render(fmt.Sprintf("%.0fs/%.0fs", m.t, m.sc.Duration)))
}

func (m Model) flightState() string {
	pos := m.trail[len(m.trail)-1]
	lines := []string{
		Label("lon", fmt.Sprintf("%9.4f°", pos.Lon*earth.DEG)),
		Label("lat", fmt.Sprintf("%9.4f°", pos.Lat*earth.DEG)),
		Label("alt", fmt.Sprintf("%9.3f km", pos.Alt/1000)),
	}

	sbii, vbii := models.PosVel(m.x)
	if v, err := geodesy.Geo84VelIn(sbii, vbii, m.t); err == nil {
		lines = append(lines,
			Label("speed", fmt.Sprintf("%9.1f m/s", v.Speed)),
			Label("heading", fmt.Sprintf("%9.2f°", v.Heading)),
			Label("fpa", fmt.Sprintf("%9.2f°", v.FlightPath)))
	}

	if src, ok := m.dyn.(airData); ok {
		_, ad := src.AirData(m.x, m.t)
		lines = append(lines,
			Label("mach", fmt.Sprintf("%9.3f", ad.Mach)),
			Label("q", fmt.Sprintf("%9.1f Pa", ad.Dynamic)))
	}
	if src, ok := m.dyn.(elementSource); ok {
		el, deg := src.Elements(m.x)
		lines = append(lines,
			Label("a", fmt.Sprintf("%9.1f km", el.Semi/1000)),
			Label("e", fmt.Sprintf("%9.5f", el.Ecc)),
			Label("i", fmt.Sprintf("%9.3f°", el.Incl)))
		if deg != 0 {
			lines = append(lines, Label("flags", deg.String()))
		}
	}
	return Panel("state", strings.Join(lines, "\n"))
}

// Time returns the current simulation time.
func (m Model) Time() float64 { return m.t }

// Done reports whether the run reached its end or stopped on an error.
func (m Model) Done() bool { return m.done }

func (m Model) Err() error { return m.err }
