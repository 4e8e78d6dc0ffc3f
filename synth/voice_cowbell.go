package synth

// The four fixed pulse oscillators of the classic analog cowbell.
var cowbellFreqs = [4]float64{555, 835, 1370, 1940}

type cowbellVoice struct {
	phases [4]float64
	filter biquad
}

func (v *cowbellVoice) trigger(vs *voiceState) {
	v.phases = [4]float64{}
	v.filter.reset()
}

func (v *cowbellVoice) retune(vs *voiceState) {}

func (v *cowbellVoice) generate(vs *voiceState, t float64) float64 {
	var out float64
	for i := range v.phases {
		v.phases[i] += twoPi * cowbellFreqs[i] / vs.rate
		if v.phases[i] >= twoPi {
			v.phases[i] -= twoPi
		}
		out += square(v.phases[i]) / float64(i+1)
	}
	out *= 0.25 * vs.amplitude

	v.filter.setBandpass(vs.rate, 2000+3000*vs.shape, 4)
	return v.filter.process(out) * 0.8
}
