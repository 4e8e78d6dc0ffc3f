package synth

// Inharmonic square partials of the metallic layer, as multiples of the
// voice frequency, and their weights.
var (
	hihatRatios  = [4]float64{2.1, 3.3, 4.7, 6.1}
	hihatWeights = [4]float64{1, 0.8, 0.6, 0.4}
)

const (
	hihatCenter = 10000.0
	hihatQ      = 3.0
)

type hihatVoice struct {
	filter biquad
}

func (v *hihatVoice) trigger(vs *voiceState) {
	v.filter.reset()
}

func (v *hihatVoice) retune(vs *voiceState) {}

func (v *hihatVoice) generate(vs *voiceState, t float64) float64 {
	var metal float64
	for i, r := range hihatRatios {
		metal += square(twoPi*vs.frequency*r*t) * hihatWeights[i]
	}
	raw := metal*0.25 + vs.noise.next()*0.8

	v.filter.setBandpass(vs.rate, hihatCenter, hihatQ)
	return v.filter.process(raw) * vs.amplitude * 1.5
}
