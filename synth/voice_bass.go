package synth

import "math"

const bassImpulseLength = 0.002

// bassVoice excites a self-oscillating lowpass with a short impulse.
// The cutoff sweeps down from four times the pitch-enveloped frequency.
type bassVoice struct {
	filter biquad
}

func (v *bassVoice) trigger(vs *voiceState) {
	v.filter.reset()
}

func (v *bassVoice) retune(vs *voiceState) {}

func (v *bassVoice) generate(vs *voiceState, t float64) float64 {
	fe := vs.frequency * (1 + 2*math.Exp(-5*t))

	var excite float64
	if t < bassImpulseLength {
		excite = 1 - t/bassImpulseLength
	}

	cutoff := fe + 3*fe*math.Exp(-8*t)
	v.filter.setResonantLowpass(vs.rate, cutoff, 8+12*vs.shape)
	return v.filter.process(excite) * vs.amplitude * 0.8
}
