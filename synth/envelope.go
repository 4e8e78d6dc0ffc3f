package synth

import "math"

const (
	// envelopeFloor is the amplitude below which a hit ends.
	envelopeFloor = 0.001

	// retuneInterval is the number of rendered samples between live
	// frequency updates while a hit is sounding.
	retuneInterval = 4
)

// startHit latches the selected voice and restarts the envelope.
func (e *Engine) startHit() {
	p := &e.params
	e.playing = p.Algorithm
	e.vs.frequency = p.Frequency
	e.vs.shape = p.Shape
	e.vs.decayRate = e.playing.decayRate(p.Shape)
	e.vs.amplitude = 1
	e.vs.noise.reset()
	e.elapsed = 0
	e.active = true
	e.voices[e.playing].trigger(&e.vs)
}

// advanceEnvelope sets the amplitude for the current sample and returns
// the time since the trigger in seconds.
func (e *Engine) advanceEnvelope() float64 {
	t := float64(e.elapsed) / e.vs.rate
	e.vs.amplitude = math.Exp(-e.vs.decayRate * t)
	return t
}

// retune moves the sounding voice onto the current pitch control. The
// scaling table of the latched voice is used so the live frequency
// stays inside that voice's range.
func (e *Engine) retune() {
	e.vs.frequency = e.playing.scaleFrequency(e.params.BaseFrequency)
	e.voices[e.playing].retune(&e.vs)
}
