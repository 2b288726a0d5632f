package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/gravity"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 2000
	driftCapacity   = 300
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

// Live is a Bubble Tea model that propagates a system in real time,
// drawing the orbit trails and the running energy drift.
type Live struct {
	model   *gravity.Model
	stepper dynamo.Stepper
	scheme  string
	name    string

	state   dynamo.State
	initial dynamo.State
	t, dt   float64

	stepsPerFrame int
	running       bool
	err           error

	history []dynamo.State
	energy0 float64
	drift   []float64
}

func NewLive(name, scheme string, model *gravity.Model, stepper dynamo.Stepper, x0 dynamo.State, dt float64) Live {
	stepsPerFrame := int(1.0 / (30.0 * dt))
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return Live{
		model:         model,
		stepper:       stepper,
		scheme:        scheme,
		name:          name,
		state:         x0.Clone(),
		initial:       x0.Clone(),
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		history:       []dynamo.State{x0.Clone()},
		energy0:       model.Energy(x0),
		drift:         []float64{0},
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Live) Init() tea.Cmd {
	return tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.err = nil
			m.running = true
			m.history = []dynamo.State{m.initial.Clone()}
			m.drift = []float64{0}
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Live) advance() {
	for i := 0; i < m.stepsPerFrame; i++ {
		next, err := m.stepper.Step(m.model, m.state, m.t, m.dt)
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.state = next
		m.t += m.dt
	}

	m.history = append(m.history, m.state.Clone())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	e := m.model.Energy(m.state)
	d := e - m.energy0
	if m.energy0 != 0 {
		d /= m.energy0
	}
	m.drift = append(m.drift, d)
	if len(m.drift) > driftCapacity {
		m.drift = m.drift[1:]
	}
}

func (m Live) View() string {
	canvas := PanelStyle.Render(OrbitPlot(m.history, m.model.N(), canvasWidth, canvasHeight))

	status := StatusRunning.Render("running")
	if m.err != nil {
		status = WarnStyle.Render(m.err.Error())
	} else if !m.running {
		status = StatusPaused.Render("paused")
	}

	stats := TitleStyle.Render(m.name) + "\n\n" +
		MetricRow("scheme", m.scheme) + "\n" +
		MetricRow("t", fmt.Sprintf("%.3f", m.t)) + "\n" +
		MetricRow("dt", fmt.Sprintf("%g", m.dt)) + "\n" +
		MetricRow("bodies", fmt.Sprintf("%d", m.model.N())) + "\n" +
		MetricRow("energy", fmt.Sprintf("%.6g", m.model.Energy(m.state))) + "\n" +
		MetricRow("drift", fmt.Sprintf("%.3e", m.drift[len(m.drift)-1])) + "\n\n" +
		status

	chart := EnergyChart(m.drift, 36, 5)
	if chart != "" {
		stats += "\n\n" + chart
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, PanelStyle.Render(stats))
	return body + "\n" + HelpStyle.Render("space pause · r reset · q quit")
}
