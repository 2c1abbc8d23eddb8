package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/longsim/internal/sim"
	"github.com/san-kum/longsim/internal/vehicle"
)

const (
	graphWidth      = 70
	graphHeight     = 8
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the vehicle against a profile at a fixed frame rate and
// plots the recent velocity and position history.
type Model struct {
	veh     *vehicle.Model
	profile sim.Profile
	name    string

	t        float64
	in       sim.Inputs
	running  bool
	velHist  []float64
	posHist  []float64
	perFrame int
}

func NewModel(veh *vehicle.Model, profile sim.Profile, name string) Model {
	dt := veh.Params.Dt
	perFrame := int(1.0 / (30 * dt))
	if perFrame < 1 {
		perFrame = 1
	}

	return Model{
		veh:      veh,
		profile:  profile,
		name:     name,
		running:  true,
		velHist:  make([]float64, 0, historyCapacity),
		posHist:  make([]float64, 0, historyCapacity),
		perFrame: perFrame,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.perFrame; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.in = m.profile.Inputs(m.t, m.veh.X)
	m.veh.Step(m.in.Throttle, m.in.Grade)
	m.t += m.veh.Params.Dt

	m.velHist = append(m.velHist, m.veh.V)
	if len(m.velHist) > historyCapacity {
		m.velHist = m.velHist[1:]
	}
	m.posHist = append(m.posHist, m.veh.X)
	if len(m.posHist) > historyCapacity {
		m.posHist = m.posHist[1:]
	}
}

func (m *Model) reset() {
	m.veh.Reset()
	m.t = 0
	m.in = sim.Inputs{}
	m.velHist = m.velHist[:0]
	m.posHist = m.posHist[:0]
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(fmt.Sprintf("longsim live — %s", m.name)))
	s.WriteString("\n")

	if len(m.velHist) > 1 {
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.velHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("velocity (m/s)"),
		)))
		s.WriteString("\n")
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.posHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("position (m)"),
		)))
		s.WriteString("\n")
	}

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var stats strings.Builder
	row := func(label string, format string, args ...any) {
		stats.WriteString(labelStyle.Render(label))
		stats.WriteString(valueStyle.Render(fmt.Sprintf(format, args...)))
		stats.WriteString("\n")
	}
	row("status", "%s", status)
	row("time", "%.2f s", m.t)
	row("position", "%.2f m", m.veh.X)
	row("velocity", "%.3f m/s", m.veh.V)
	row("accel", "%.3f m/s²", m.veh.A)
	row("engine speed", "%.1f rad/s", m.veh.We)
	row("throttle", "%.3f", m.in.Throttle)
	row("grade", "%.4f rad", m.in.Grade)
	s.WriteString(statsStyle.Render(stats.String()))

	s.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	s.WriteString("\n")

	return s.String()
}

// Run starts the live view and blocks until the user quits.
func Run(veh *vehicle.Model, profile sim.Profile, name string) error {
	p := tea.NewProgram(NewModel(veh, profile, name))
	_, err := p.Run()
	return err
}
