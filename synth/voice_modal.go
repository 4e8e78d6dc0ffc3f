package synth

import "math"

const numModes = 4

var (
	modalRatios     = [numModes]float64{1.0, 1.6, 2.3, 3.1}
	modalAmplitudes = [numModes]float64{1.0, 0.7, 0.5, 0.3}
	modalDecays     = [numModes]float64{1.0, 1.3, 1.8, 2.5}
)

// mode is one damped sinusoidal resonance.
type mode struct {
	frequency float64
	amplitude float64
	decay     float64
	phase     float64
}

// modalVoice sums four inharmonic modes, each with its own decay.
type modalVoice struct {
	modes [numModes]mode
}

func (v *modalVoice) trigger(vs *voiceState) {
	base := 2 + 8*vs.shape
	for i := range v.modes {
		v.modes[i] = mode{
			amplitude: modalAmplitudes[i],
			decay:     base * modalDecays[i],
		}
	}
	v.retune(vs)
}

func (v *modalVoice) retune(vs *voiceState) {
	for i := range v.modes {
		v.modes[i].frequency = vs.frequency * modalRatios[i]
	}
}

func (v *modalVoice) generate(vs *voiceState, t float64) float64 {
	var out float64
	for i := range v.modes {
		m := &v.modes[i]
		out += math.Sin(m.phase) * m.amplitude * math.Exp(-m.decay*t)
		m.phase += twoPi * m.frequency / vs.rate
		if m.phase >= twoPi {
			m.phase -= twoPi
		}
	}
	return out * vs.amplitude * 0.25
}
