package synth

import "math"

// snareVoice mixes a pitch-swept sine body with bandpassed noise. The
// body decays half again as fast as the noise.
type snareVoice struct {
	filter biquad
}

func (v *snareVoice) trigger(vs *voiceState) {
	v.filter.reset()
}

func (v *snareVoice) retune(vs *voiceState) {}

func (v *snareVoice) generate(vs *voiceState, t float64) float64 {
	toneFreq := vs.frequency * (1 + 2*math.Exp(-25*t))
	tone := math.Sin(twoPi*toneFreq*t) * math.Exp(-1.5*vs.decayRate*t)

	v.filter.setBandpass(vs.rate, 800+1200*vs.shape, 2)
	rattle := v.filter.process(vs.noise.next()) * vs.amplitude

	return (0.6*tone + 0.4*rattle) * 0.7
}
