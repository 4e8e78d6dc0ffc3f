package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user-none/tockus/synth"
)

const (
	monitorRefresh = time.Second / 30
	gatePulse      = 60 * time.Millisecond
	pitchStep      = 0.01
	shapeStep      = 0.05
)

// Voice is the control surface the monitor drives and observes.
type Voice interface {
	SetParameters(pitch, sel, shape float64, gate bool)
	Algorithm() synth.Algorithm
	Frequency() float64
	Envelope() float64
	Active() bool
}

// DACStats reports the running converter estimates.
type DACStats interface {
	CurrentTHD() float64
	CurrentSNR() float64
}

// MonitorConfig wires a Monitor to a running renderer.
type MonitorConfig struct {
	Voice      Voice
	Stats      DACStats
	SampleRate int
	// SetDAC enables or disables the converter stage. May be nil.
	SetDAC     func(bool)
	DACEnabled bool
	Pitch      float64
	Shape      float64
	Algorithm  synth.Algorithm
}

// Monitor is the Bubbletea model for interactive play. Keys change the
// controls; a 30 Hz tick samples the engine's telemetry for display.
type Monitor struct {
	cfg MonitorConfig

	pitch     float64
	shape     float64
	algorithm synth.Algorithm
	gate      bool
	pulseID   int
	dacOn     bool
	hits      int

	// telemetry snapshot
	playing   synth.Algorithm
	frequency float64
	envelope  float64
	active    bool
	thd       float64
	snr       float64

	width int
}

// NewMonitor creates a monitor with the initial controls from cfg.
func NewMonitor(cfg MonitorConfig) Monitor {
	m := Monitor{
		cfg:       cfg,
		pitch:     clampUnit(cfg.Pitch),
		shape:     clampUnit(cfg.Shape),
		algorithm: cfg.Algorithm,
		dacOn:     cfg.DACEnabled && cfg.SetDAC != nil,
	}
	m.push()
	m.sample()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(monitorRefresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the telemetry tick.
func (m Monitor) Init() tea.Cmd {
	return tick()
}

// Update handles key presses, gate releases and ticks.
func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case gateOffMsg:
		if msg.id == m.pulseID && m.gate {
			m.gate = false
			m.push()
		}
		return m, nil

	case tickMsg:
		m.sample()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Monitor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeySpace, tea.KeyEnter:
		return m.strike()
	case tea.KeyLeft:
		// The pitch converter inverts, so a lower control value plays
		// higher.
		m.pitch = clampUnit(m.pitch + pitchStep)
	case tea.KeyRight:
		m.pitch = clampUnit(m.pitch - pitchStep)
	case tea.KeyUp:
		m.shape = clampUnit(m.shape + shapeStep)
	case tea.KeyDown:
		m.shape = clampUnit(m.shape - shapeStep)
	case tea.KeyRunes:
		switch key := msg.String(); key {
		case "q":
			return m, tea.Quit
		case " ":
			return m.strike()
		case "d":
			if m.cfg.SetDAC != nil {
				m.dacOn = !m.dacOn
				m.cfg.SetDAC(m.dacOn)
			}
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8":
			m.algorithm = synth.Algorithm(key[0] - '1')
		default:
			return m, nil
		}
	default:
		return m, nil
	}
	m.push()
	return m, nil
}

// strike raises the gate and schedules its release, producing one
// rising and one falling edge.
func (m Monitor) strike() (tea.Model, tea.Cmd) {
	m.pulseID++
	m.hits++
	if m.gate {
		// Drop the gate first so the press is a fresh rising edge.
		m.gate = false
		m.push()
	}
	m.gate = true
	m.push()

	id := m.pulseID
	return m, tea.Tick(gatePulse, func(time.Time) tea.Msg {
		return gateOffMsg{id: id}
	})
}

// push sends the current controls to the engine.
func (m Monitor) push() {
	if m.cfg.Voice == nil {
		return
	}
	m.cfg.Voice.SetParameters(m.pitch, synth.AlgorithmSelect(m.algorithm), m.shape, m.gate)
}

// sample copies telemetry for the next View.
func (m *Monitor) sample() {
	if v := m.cfg.Voice; v != nil {
		m.playing = v.Algorithm()
		m.frequency = v.Frequency()
		m.envelope = v.Envelope()
		m.active = v.Active()
	}
	if s := m.cfg.Stats; s != nil {
		m.thd = s.CurrentTHD()
		m.snr = s.CurrentSNR()
	}
}

// View renders the monitor.
func (m Monitor) View() string {
	return renderMonitorView(m)
}

func clampUnit(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
