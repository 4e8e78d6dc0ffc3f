package synth

import (
	"math"
	"testing"
)

func newTestState(rate, freq, shape float64) *voiceState {
	vs := &voiceState{
		rate:      rate,
		shape:     shape,
		frequency: freq,
		amplitude: 1,
	}
	vs.noise.reset()
	return vs
}

func TestKarplus_WindowPeaksDecay(t *testing.T) {
	for _, shape := range []float64{0, 0.5, 1} {
		vs := newTestState(44100, 400, shape)
		var v karplusVoice
		v.line.reset()
		v.trigger(vs)

		length := v.line.length
		if want := int(karplusLengthScale * vs.rate / 400); length != want {
			t.Fatalf("shape %v: length got %d, want %d", shape, length, want)
		}

		prev := math.Inf(1)
		for pass := 0; pass < 30; pass++ {
			var peak float64
			for i := 0; i < length; i++ {
				peak = math.Max(peak, math.Abs(v.generate(vs, 0)))
			}
			if peak >= prev {
				t.Fatalf("shape %v pass %d: peak %v not below %v", shape, pass, peak, prev)
			}
			prev = peak
		}
	}
}

func TestKarplus_RetuneKeepsLengthOutOfRange(t *testing.T) {
	vs := newTestState(44100, 80, 0)
	var v karplusVoice
	v.line.reset()
	v.trigger(vs)

	// 0.8*44100/80 does not fit the buffer.
	if v.line.length != delayLineSize {
		t.Errorf("length: got %d, want %d", v.line.length, delayLineSize)
	}

	vs.frequency = 441
	v.retune(vs)
	if v.line.length != 80 {
		t.Errorf("length after retune: got %d, want 80", v.line.length)
	}

	vs.frequency = 100
	v.retune(vs)
	if v.line.length != 80 {
		t.Errorf("length after out of range retune: got %d, want 80", v.line.length)
	}
}

func TestKarplus_TriggerRestoresFullLength(t *testing.T) {
	vs := newTestState(44100, 441, 0.5)
	var v karplusVoice
	v.line.reset()
	v.trigger(vs)
	if v.line.length != 80 {
		t.Fatalf("high note length: got %d, want 80", v.line.length)
	}

	vs.frequency = 80
	vs.noise.reset()
	v.trigger(vs)
	if v.line.length != delayLineSize {
		t.Errorf("low note length: got %d, want %d", v.line.length, delayLineSize)
	}
}

func TestKarplus_Damping(t *testing.T) {
	vs := newTestState(44100, 400, 1)
	var v karplusVoice
	v.line.reset()
	v.trigger(vs)
	if math.Abs(v.line.damping-0.795) > 1e-12 {
		t.Errorf("damping: got %v, want 0.795", v.line.damping)
	}
}

func TestModal_RetuneRatios(t *testing.T) {
	vs := newTestState(44100, 500, 0.5)
	var v modalVoice
	v.trigger(vs)

	want := []float64{500, 800, 1150, 1550}
	for i, m := range v.modes {
		if math.Abs(m.frequency-want[i]) > 1e-9 {
			t.Errorf("mode %d: got %v, want %v", i, m.frequency, want[i])
		}
		if wantDecay := 6 * modalDecays[i]; m.decay != wantDecay {
			t.Errorf("mode %d decay: got %v, want %v", i, m.decay, wantDecay)
		}
	}

	vs.frequency = 1000
	v.retune(vs)
	if math.Abs(v.modes[3].frequency-3100) > 1e-9 {
		t.Errorf("mode 3 after retune: got %v, want 3100", v.modes[3].frequency)
	}
}

func TestBass_ImpulseExcites(t *testing.T) {
	vs := newTestState(44100, 50, 0.5)
	var v bassVoice
	v.trigger(vs)
	if got := v.generate(vs, 0); got == 0 {
		t.Errorf("first sample: got 0, want nonzero")
	}
}

func TestVoices_Finite(t *testing.T) {
	voices := map[string]voice{
		"bass":    &bassVoice{},
		"snare":   &snareVoice{},
		"hihat":   &hihatVoice{},
		"modal":   &modalVoice{},
		"zap":     &zapVoice{},
		"clap":    &clapVoice{},
		"cowbell": &cowbellVoice{},
	}
	for name, v := range voices {
		t.Run(name, func(t *testing.T) {
			for _, rate := range []float64{8000, 44100, 96000} {
				vs := newTestState(rate, 200, 1)
				vs.decayRate = 5
				v.trigger(vs)
				for i := 0; i < int(rate); i++ {
					tm := float64(i) / rate
					vs.amplitude = math.Exp(-vs.decayRate * tm)
					s := v.generate(vs, tm)
					if math.IsNaN(s) || math.IsInf(s, 0) {
						t.Fatalf("rate %v sample %d: not finite: %v", rate, i, s)
					}
				}
			}
		})
	}
}

func TestSoftSaturate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{-0.8, -0.8},
		{0.8, 0.8},
	}
	for _, tt := range tests {
		if got := softSaturate(tt.in); got != tt.want {
			t.Errorf("softSaturate(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, x := range []float64{0.81, 1, 2, 100} {
		got := softSaturate(x)
		if got <= saturationKnee || got > 1 {
			t.Errorf("softSaturate(%v) = %v, want in (0.8, 1]", x, got)
		}
		if neg := softSaturate(-x); neg != -got {
			t.Errorf("softSaturate(%v) = %v, want %v", -x, neg, -got)
		}
	}
}
