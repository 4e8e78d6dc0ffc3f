package synth

// Linear congruential generator constants. Every noise source in the
// engine draws from one of these generators so a render is reproducible
// from a trigger onwards.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	noiseSeed     = 1
)

// noise is a 32-bit LCG producing samples in [-1, 1).
type noise struct {
	state uint32
}

// reset reseeds the generator. Called on every trigger.
func (n *noise) reset() {
	n.state = noiseSeed
}

// next advances the generator and returns the 15 bits above bit 16
// mapped to [-1, 1).
func (n *noise) next() float64 {
	n.state = n.state*lcgMultiplier + lcgIncrement
	return float64((n.state>>16)&0x7FFF)/32768.0 - 1.0
}
