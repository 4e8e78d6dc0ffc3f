package synth

import "math"

const (
	smoothingAlpha = 0.7
	masterGain     = 2.0
	saturationKnee = 0.8
	saturationSpan = 0.2
)

// outputStage smooths the raw voice output, applies per-voice and
// master gain, then soft-saturates so the result stays within ±1.
type outputStage struct {
	smooth onePole
}

func (o *outputStage) reset() {
	o.smooth = onePole{alpha: smoothingAlpha}
}

func (o *outputStage) process(x, gain float64) float64 {
	return softSaturate(o.smooth.process(x) * gain * masterGain)
}

// softSaturate is linear inside ±saturationKnee and bends towards ±1
// with a tanh curve beyond it.
func softSaturate(x float64) float64 {
	switch {
	case x > saturationKnee:
		return saturationKnee + saturationSpan*math.Tanh(5*(x-saturationKnee))
	case x < -saturationKnee:
		return -(saturationKnee + saturationSpan*math.Tanh(5*(-x-saturationKnee)))
	}
	return x
}
