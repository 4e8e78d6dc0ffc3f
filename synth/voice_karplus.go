package synth

const (
	karplusSeedLevel   = 0.5
	karplusLengthScale = 0.8
)

// karplusVoice is a plucked string: a noise burst recirculating through
// a damped averaging delay line.
type karplusVoice struct {
	line delayLine
}

// trigger restores the full loop before retuning, so a pitch too low
// for the buffer never inherits the previous hit's length.
func (v *karplusVoice) trigger(vs *voiceState) {
	v.line.length = delayLineSize
	v.line.damping = 0.995 - 0.2*vs.shape
	v.line.seed(&vs.noise, karplusSeedLevel)
	v.retune(vs)
}

// retune sets the loop length from the live frequency. Lengths that do
// not fit the buffer leave the previous length in place.
func (v *karplusVoice) retune(vs *voiceState) {
	if vs.frequency <= 0 {
		return
	}
	v.line.setLength(int(karplusLengthScale * vs.rate / vs.frequency))
}

func (v *karplusVoice) generate(vs *voiceState, t float64) float64 {
	return v.line.step() * vs.amplitude
}
