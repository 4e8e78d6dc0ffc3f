package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user-none/tockus/synth"
)

const meterWidth = 32

var (
	accentColor = lipgloss.Color("#E8A33D")
	mutedColor  = lipgloss.Color("#888888")
	activeColor = lipgloss.Color("#00AA00")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(11)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(accentColor).
			Padding(0, 1)

	voiceStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	meterStyle = lipgloss.NewStyle().
			Foreground(activeColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// renderMonitorView renders the full monitor screen.
func renderMonitorView(m Monitor) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderVoices(m))
	b.WriteString("\n\n")
	b.WriteString(renderControls(m))
	b.WriteString("\n")
	b.WriteString(renderTelemetry(m))
	b.WriteString(renderHelp())

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func renderHeader(m Monitor) string {
	title := titleStyle.Render("Tockus - percussive voice")
	subtitle := subtitleStyle.Render(fmt.Sprintf("%d Hz mono, %d hits", m.cfg.SampleRate, m.hits))
	return title + "\n" + subtitle
}

// renderVoices lists the eight voices with the selection highlighted.
func renderVoices(m Monitor) string {
	cells := make([]string, 0, synth.NumAlgorithms)
	for a := synth.Algorithm(0); a < synth.NumAlgorithms; a++ {
		label := fmt.Sprintf("%d %s", a+1, a)
		if a == m.algorithm {
			cells = append(cells, selectedStyle.Render(label))
		} else {
			cells = append(cells, voiceStyle.Render(label))
		}
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, cells[:4]...)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cells[4:]...)
	return top + "\n" + bottom
}

func renderControls(m Monitor) string {
	var b strings.Builder
	row(&b, "Pitch", fmt.Sprintf("%.2f", m.pitch))
	row(&b, "Shape", meter(m.shape)+fmt.Sprintf(" %.2f", m.shape))
	gate := "low"
	if m.gate {
		gate = "HIGH"
	}
	row(&b, "Gate", gate)
	return b.String()
}

func renderTelemetry(m Monitor) string {
	var b strings.Builder

	state := "idle"
	if m.active {
		state = "sounding " + m.playing.String()
	}
	row(&b, "Voice", state)
	row(&b, "Frequency", fmt.Sprintf("%.1f Hz", m.frequency))
	row(&b, "Envelope", meter(m.envelope)+fmt.Sprintf(" %.3f", m.envelope))

	switch {
	case m.cfg.SetDAC == nil:
		row(&b, "DAC", "unavailable")
	case !m.dacOn:
		row(&b, "DAC", "bypassed")
	default:
		row(&b, "DAC", fmt.Sprintf("THD %.4f%%  SNR %.1f dB", m.thd*100, m.snr))
	}
	return b.String()
}

func renderHelp() string {
	return helpStyle.Render("space/enter strike  1-8 voice  ←/→ pitch  ↑/↓ shape  d dac  q quit")
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

// meter draws v in [0, 1] as a fixed-width bar.
func meter(v float64) string {
	filled := int(clampUnit(v)*meterWidth + 0.5)
	return meterStyle.Render(strings.Repeat("█", filled)) +
		subtitleStyle.Render(strings.Repeat("░", meterWidth-filled))
}
