// Package tui renders a live terminal view of a running world.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pointmass/internal/viz"
	"github.com/san-kum/pointmass/internal/world"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	canvasWidth  = 70
	canvasHeight = 20
	trailLen     = 400
)

// Builder recreates the world so the view can restart a run.
type Builder func() (*world.World, error)

type trailPoint struct {
	x, y float64
}

type Model struct {
	scenario string
	build    Builder
	dt       float64
	duration float64

	world  *world.World
	trails [][]trailPoint
	paused bool
	done   bool
	err    error
}

func NewModel(scenario string, build Builder, dt, duration float64) (*Model, error) {
	w, err := build()
	if err != nil {
		return nil, err
	}

	m := &Model{
		scenario: scenario,
		build:    build,
		dt:       dt,
		duration: duration,
		world:    w,
	}
	m.resetTrails()
	return m, nil
}

func (m *Model) resetTrails() {
	m.trails = make([][]trailPoint, len(m.world.Tracked()))
	for i := range m.trails {
		m.trails[i] = make([]trailPoint, 0, trailLen)
	}
}

func (m *Model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			w, err := m.build()
			if err != nil {
				m.err = err
				m.done = true
				return m, nil
			}
			m.world = w
			m.resetTrails()
			m.paused = false
			m.done = false
			m.err = nil
		}
		return m, nil

	case tickMsg:
		if !m.paused && !m.done {
			if err := m.world.Step(m.dt); err != nil {
				m.err = err
				m.done = true
			} else {
				m.record()
				if m.world.Time() >= m.duration {
					m.done = true
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) record() {
	for i, p := range m.world.Tracked() {
		pos := p.Position()
		m.trails[i] = append(m.trails[i], trailPoint{x: pos.X, y: pos.Y})
		if len(m.trails[i]) > trailLen {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString("  " + cyan.Render(m.scenario))
	b.WriteString(dim.Render(fmt.Sprintf("  t=%.2fs / %.0fs", m.world.Time(), m.duration)))
	switch {
	case m.err != nil:
		b.WriteString("  " + yellow.Render(fmt.Sprintf("error: %v", m.err)))
	case m.done:
		b.WriteString("  " + green.Render("done"))
	case m.paused:
		b.WriteString("  " + yellow.Render("paused"))
	default:
		b.WriteString("  " + green.Render("running"))
	}
	b.WriteString("\n")

	b.WriteString("  " + dim.Render(strings.Repeat("─", canvasWidth)) + "\n")
	b.WriteString(indent(m.drawTrails(), "  "))
	b.WriteString("  " + dim.Render(strings.Repeat("─", canvasWidth)) + "\n")

	for i, p := range m.world.Tracked() {
		pos, vel := p.Position(), p.Velocity()
		b.WriteString("  " + white.Render(fmt.Sprintf("p%d", i)))
		b.WriteString(dim.Render(fmt.Sprintf("  x=%.2f y=%.2f  |v|=%.2f", pos.X, pos.Y, vel.Magnitude())))
		b.WriteString("\n")
	}

	b.WriteString("  " + dim.Render("space pause · r restart · q quit") + "\n")
	return b.String()
}

// drawTrails plots every trail on one shared-bounds canvas so relative
// positions between particles stay honest.
func (m *Model) drawTrails() string {
	minX, maxX, minY, maxY := 0.0, 1.0, 0.0, 1.0
	primed := false
	for _, trail := range m.trails {
		for _, pt := range trail {
			if !primed {
				minX, maxX, minY, maxY = pt.x, pt.x, pt.y, pt.y
				primed = true
				continue
			}
			if pt.x < minX {
				minX = pt.x
			}
			if pt.x > maxX {
				maxX = pt.x
			}
			if pt.y < minY {
				minY = pt.y
			}
			if pt.y > maxY {
				maxY = pt.y
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := viz.NewCanvas(canvasWidth, canvasHeight)
	subW := canvasWidth * 2
	subH := canvasHeight * 4

	for _, trail := range m.trails {
		for _, pt := range trail {
			px := int((pt.x - minX) / rangeX * float64(subW-1))
			py := subH - 1 - int((pt.y-minY)/rangeY*float64(subH-1))
			canvas.Set(px, py)
		}
	}

	return canvas.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(prefix + line + "\n")
	}
	return b.String()
}

// Run blocks until the user quits the live view.
func Run(scenario string, build Builder, dt, duration float64) error {
	m, err := NewModel(scenario, build, dt, duration)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m).Run()
	return err
}
