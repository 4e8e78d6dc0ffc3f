package synth

import "math"

const (
	clapPulses       = 4
	clapPulseSpacing = 0.03
	clapPulseWidth   = 0.01
	clapCenter       = 1000.0
	clapQ            = 3.0
)

// clapVoice is bandpassed noise gated by a train of four short bursts
// followed by a longer reverberant tail.
type clapVoice struct {
	filter biquad
}

func (v *clapVoice) trigger(vs *voiceState) {
	v.filter.reset()
}

func (v *clapVoice) retune(vs *voiceState) {}

func (v *clapVoice) generate(vs *voiceState, t float64) float64 {
	v.filter.setBandpass(vs.rate, clapCenter, clapQ)
	n := v.filter.process(vs.noise.next() * 1.2)

	var pulse float64
	for i := 0; i < clapPulses; i++ {
		dt := t - float64(i)*clapPulseSpacing
		if dt >= 0 && dt <= clapPulseWidth {
			pulse += math.Exp(-50 * dt)
		}
	}
	tail := math.Exp(-vs.decayRate * (0.5 + 1.5*vs.shape) * t)

	return (pulse + 0.3*tail) * n * 1.8
}
