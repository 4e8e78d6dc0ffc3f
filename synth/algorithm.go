package synth

// Algorithm selects one of the eight percussive voices.
type Algorithm uint8

const (
	AlgoBass Algorithm = iota
	AlgoSnare
	AlgoHiHat
	AlgoKarplus
	AlgoModal
	AlgoZap
	AlgoClap
	AlgoCowbell
)

// NumAlgorithms is the number of selectable voices.
const NumAlgorithms = 8

var algorithmNames = [NumAlgorithms]string{
	"Bass",
	"Snare",
	"Hi-Hat",
	"Karplus-Strong",
	"Modal",
	"Zap",
	"Clap",
	"Cowbell",
}

func (a Algorithm) String() string {
	if int(a) >= NumAlgorithms {
		return "Unknown"
	}
	return algorithmNames[a]
}

// algorithmTuning holds the fixed per-voice tuning.
//
// The decay rate in Hz at trigger time is decayBase + decaySpan*shape.
type algorithmTuning struct {
	freqScale float64
	freqMin   float64
	freqMax   float64
	decayBase float64
	decaySpan float64
	gain      float64
}

var algorithmTunings = [NumAlgorithms]algorithmTuning{
	AlgoBass:    {freqScale: 1.0 / 4, freqMin: 20, freqMax: 150, decayBase: 1.5, decaySpan: 3.5, gain: 1.0},
	AlgoSnare:   {freqScale: 1.0 / 2, freqMin: 100, freqMax: 400, decayBase: 4, decaySpan: 20, gain: 0.4},
	AlgoHiHat:   {freqScale: 1, freqMin: 200, freqMax: 2000, decayBase: 10, decaySpan: 80, gain: 0.8},
	AlgoKarplus: {freqScale: 1.0 / 2, freqMin: 80, freqMax: 800, decayBase: 3, decaySpan: 5, gain: 0.5},
	AlgoModal:   {freqScale: 4, freqMin: 240, freqMax: 2400, decayBase: 4, decaySpan: 6, gain: 0.3},
	AlgoZap:     {freqScale: 1 / 2.8, freqMin: 50, freqMax: 500, decayBase: 8, decaySpan: 12, gain: 0.3},
	AlgoClap:    {freqScale: 1, freqMin: 150, freqMax: 1500, decayBase: 6, decaySpan: 30, gain: 0.7},
	AlgoCowbell: {freqScale: 4, freqMin: 2000, freqMax: 8000, decayBase: 4, decaySpan: 6, gain: 0.8},
}

func (a Algorithm) tuning() *algorithmTuning {
	if int(a) >= NumAlgorithms {
		a = AlgoBass
	}
	return &algorithmTunings[a]
}

// FrequencyRange reports the clamp range applied to the mapped pitch.
func (a Algorithm) FrequencyRange() (lo, hi float64) {
	s := a.tuning()
	return s.freqMin, s.freqMax
}

// DecayRange reports the decay rate in Hz at shape 0 and shape 1.
func (a Algorithm) DecayRange() (lo, hi float64) {
	s := a.tuning()
	return s.decayBase, s.decayBase + s.decaySpan
}

// Gain reports the voice's output stage gain before the master gain.
func (a Algorithm) Gain() float64 {
	return a.tuning().gain
}

// decayRate returns the envelope decay rate for the given shape.
func (a Algorithm) decayRate(shape float64) float64 {
	s := a.tuning()
	return s.decayBase + s.decaySpan*shape
}

// scaleFrequency applies the per-voice multiplier and clamp to a base
// pitch frequency.
func (a Algorithm) scaleFrequency(f float64) float64 {
	s := a.tuning()
	return clampFloat(f*s.freqScale, s.freqMin, s.freqMax)
}
