package synth

import "math"

const zapBurstLength = 0.05

// zapVoice is a sawtooth with a steep downward pitch sweep, a short
// noise click and an optional octave sine.
type zapVoice struct{}

func (v *zapVoice) trigger(vs *voiceState) {}

func (v *zapVoice) retune(vs *voiceState) {}

func (v *zapVoice) generate(vs *voiceState, t float64) float64 {
	sweep := 8 + 12*vs.shape
	fz := vs.frequency * (1 + sweep*math.Exp(-20*t))

	_, frac := math.Modf(fz * t)
	out := (2*frac - 1) * vs.amplitude * 0.5

	if t < zapBurstLength {
		out += vs.noise.next() * (1 - t/zapBurstLength) * 0.3
	}
	if vs.shape > 0.1 {
		out += math.Sin(twoPi*2*fz*t) * vs.amplitude * 0.4 * vs.shape
	}
	return out * 0.7
}
