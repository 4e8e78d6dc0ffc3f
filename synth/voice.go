package synth

import "math"

const twoPi = 2 * math.Pi

// voiceState is the shared per-engine state every voice reads from.
// Only the engine writes it, and only on the render goroutine.
type voiceState struct {
	rate      float64
	shape     float64
	frequency float64 // live, re-pitched while active
	amplitude float64 // exp(-decayRate*t)
	decayRate float64
	noise     noise
}

// voice is one percussive synthesis algorithm. Implementations keep
// their own scratch state and are reset on every trigger.
type voice interface {
	// trigger resets scratch state at the start of a hit.
	trigger(vs *voiceState)
	// retune follows a change of vs.frequency while the voice sounds.
	retune(vs *voiceState)
	// generate returns the next raw sample, t seconds after the trigger.
	generate(vs *voiceState, t float64) float64
}

// square is a bipolar square wave derived from the sign of a sine.
func square(phase float64) float64 {
	if math.Sin(phase) > 0 {
		return 1
	}
	return -1
}
