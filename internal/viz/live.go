// Package viz provides a terminal live view of the oscillator using
// the Bubble Tea framework: the trajectory is advanced on a fixed tick
// and plotted as an ascii graph, with keys to pause, reset, and adjust
// the physical parameters.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kselvik/springsim/internal/config"
	"github.com/kselvik/springsim/internal/oscillator"
	"github.com/kselvik/springsim/internal/solver"
)

const (
	graphWidth      = 80
	graphHeight     = 14
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model holds the simulation driver and visualization buffers.
type Model struct {
	cfg       *config.Config
	osc       *oscillator.Oscillator
	driver    *solver.Driver
	frame     int
	dt        float64
	history   []float64
	running   bool
	err       error
	paramKeys []string
	selected  int
}

func NewModel(cfg *config.Config) (Model, error) {
	osc, err := oscillator.New(cfg.Params())
	if err != nil {
		return Model{}, err
	}
	driver, err := solver.NewDriver(osc, cfg.SolverConfig(), 0, cfg.InitialState())
	if err != nil {
		return Model{}, err
	}

	keys := make([]string, 0, 4)
	for k := range osc.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		cfg:       cfg,
		osc:       osc,
		driver:    driver,
		dt:        1.0 / float64(cfg.FPS),
		history:   make([]float64, 0, historyCapacity),
		running:   true,
		paramKeys: keys,
	}, nil
}

// Run starts the live view and blocks until quit or a fatal
// integration error.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	out, err := p.Run()
	if err != nil {
		return err
	}
	if final, ok := out.(Model); ok && final.err != nil {
		return final.err
	}
	return nil
}

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.FPS)
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			m.frame++
			y, err := m.driver.Advance(float64(m.frame) * m.dt)
			if err != nil {
				m.err = err
				m.running = false
			} else {
				m.history = append(m.history, y[0])
				if len(m.history) > historyCapacity {
					m.history = m.history[1:]
				}
			}
		}
		return m, tickCmd(m.cfg.FPS)
	}
	return m, nil
}

func (m *Model) reset() {
	driver, err := solver.NewDriver(m.osc, m.cfg.SolverConfig(), 0, m.cfg.InitialState())
	if err != nil {
		m.err = err
		return
	}
	m.driver = driver
	m.frame = 0
	m.history = m.history[:0]
	m.err = nil
	m.running = true
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	v := m.osc.GetParams()[key]
	if v == 0 {
		v = 1e-6
	}
	// Out-of-bounds values are rejected by SetParam and the old value
	// stays in effect.
	_ = m.osc.SetParam(key, v*factor)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("springsim :: live"))
	b.WriteString("\n")

	if len(m.history) >= 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("position"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	y := m.driver.State()
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("time", fmt.Sprintf("%.2f s", m.driver.Time()))
	row("position", fmt.Sprintf("%.4f", y[0]))
	row("velocity", fmt.Sprintf("%.4f", y[1]))
	row("energy", fmt.Sprintf("%.4f", m.osc.Energy(y)))
	row("steady state", fmt.Sprintf("%.4f", m.osc.SteadyState()[0]))
	b.WriteString("\n")

	params := m.osc.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.3f", k, params[k])
		if i == m.selected {
			b.WriteString(activeStyle.Render("> " + line))
		} else {
			b.WriteString(valueStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(fmt.Sprintf("integration failed: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · tab select param · ↑/↓ adjust · q quit"))
	b.WriteString("\n")
	return b.String()
}
