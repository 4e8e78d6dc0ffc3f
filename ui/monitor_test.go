package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user-none/tockus/synth"
)

type paramCall struct {
	pitch, sel, shape float64
	gate              bool
}

type fakeVoice struct {
	calls []paramCall
}

func (f *fakeVoice) SetParameters(pitch, sel, shape float64, gate bool) {
	f.calls = append(f.calls, paramCall{pitch, sel, shape, gate})
}

func (f *fakeVoice) Algorithm() synth.Algorithm { return synth.AlgoModal }
func (f *fakeVoice) Frequency() float64         { return 523.4 }
func (f *fakeVoice) Envelope() float64          { return 0.5 }
func (f *fakeVoice) Active() bool               { return true }

func (f *fakeVoice) last() paramCall {
	return f.calls[len(f.calls)-1]
}

type fakeStats struct{}

func (fakeStats) CurrentTHD() float64 { return 0.0008 }
func (fakeStats) CurrentSNR() float64 { return 91 }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestMonitor() (Monitor, *fakeVoice, *bool) {
	v := &fakeVoice{}
	dac := new(bool)
	m := NewMonitor(MonitorConfig{
		Voice:      v,
		Stats:      fakeStats{},
		SampleRate: 44100,
		SetDAC:     func(on bool) { *dac = on },
		Pitch:      0.5,
		Shape:      0.5,
	})
	return m, v, dac
}

func TestMonitor_PushesInitialControls(t *testing.T) {
	_, v, _ := newTestMonitor()
	if len(v.calls) != 1 {
		t.Fatalf("SetParameters calls: got %d, want 1", len(v.calls))
	}
	want := paramCall{0.5, 0, 0.5, false}
	if v.last() != want {
		t.Errorf("got %+v, want %+v", v.last(), want)
	}
}

func TestMonitor_SelectVoice(t *testing.T) {
	m, v, _ := newTestMonitor()
	for k := 1; k <= synth.NumAlgorithms; k++ {
		model, _ := m.Update(runes(string(rune('0' + k))))
		m = model.(Monitor)
		want := synth.AlgorithmSelect(synth.Algorithm(k - 1))
		if got := v.last().sel; got != want {
			t.Errorf("key %d: select got %v, want %v", k, got, want)
		}
	}
}

func TestMonitor_StrikePulsesGate(t *testing.T) {
	m, v, _ := newTestMonitor()

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = model.(Monitor)
	if cmd == nil {
		t.Fatal("strike returned no release command")
	}
	if !v.last().gate {
		t.Fatal("strike did not raise the gate")
	}

	model, _ = m.Update(gateOffMsg{id: m.pulseID})
	m = model.(Monitor)
	if v.last().gate {
		t.Error("release did not lower the gate")
	}
}

func TestMonitor_StaleReleaseIgnored(t *testing.T) {
	m, v, _ := newTestMonitor()

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Monitor)
	first := m.pulseID
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Monitor)

	n := len(v.calls)
	model, _ = m.Update(gateOffMsg{id: first})
	m = model.(Monitor)
	if len(v.calls) != n || !v.last().gate {
		t.Error("stale release lowered the gate")
	}
}

func TestMonitor_RestrikeIsFreshEdge(t *testing.T) {
	m, v, _ := newTestMonitor()
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = model.(Monitor)
	n := len(v.calls)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	got := v.calls[n:]
	if len(got) != 2 || got[0].gate || !got[1].gate {
		t.Errorf("restrike calls: got %+v, want low then high", got)
	}
}

func TestMonitor_PitchAndShapeKeys(t *testing.T) {
	tests := []struct {
		name      string
		key       tea.KeyMsg
		wantPitch float64
		wantShape float64
	}{
		{"left lowers frequency", tea.KeyMsg{Type: tea.KeyLeft}, 0.5 + pitchStep, 0.5},
		{"right raises frequency", tea.KeyMsg{Type: tea.KeyRight}, 0.5 - pitchStep, 0.5},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, 0.5, 0.5 + shapeStep},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, 0.5, 0.5 - shapeStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, v, _ := newTestMonitor()
			m.Update(tt.key)
			got := v.last()
			if got.pitch != tt.wantPitch || got.shape != tt.wantShape {
				t.Errorf("got pitch %v shape %v, want %v %v", got.pitch, got.shape, tt.wantPitch, tt.wantShape)
			}
		})
	}
}

func TestMonitor_ShapeClamped(t *testing.T) {
	m, v, _ := newTestMonitor()
	for i := 0; i < 40; i++ {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = model.(Monitor)
	}
	if got := v.last().shape; got != 1 {
		t.Errorf("shape: got %v, want 1", got)
	}
}

func TestMonitor_ToggleDAC(t *testing.T) {
	m, _, dac := newTestMonitor()
	model, _ := m.Update(runes("d"))
	m = model.(Monitor)
	if !*dac {
		t.Error("first toggle did not enable the DAC")
	}
	m.Update(runes("d"))
	if *dac {
		t.Error("second toggle did not disable the DAC")
	}
}

func TestMonitor_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m, _, _ := newTestMonitor()
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%v: no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: command did not quit", key)
		}
	}
}

func TestMonitor_TickSamplesTelemetry(t *testing.T) {
	m, _, _ := newTestMonitor()
	model, _ := m.Update(runes("d"))
	m = model.(Monitor)

	model, cmd := m.Update(tickMsg{})
	m = model.(Monitor)
	if cmd == nil {
		t.Error("tick did not reschedule")
	}

	view := m.View()
	for _, want := range []string{"Modal", "523.4 Hz", "SNR 91.0 dB"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
