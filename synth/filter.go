package synth

import "math"

// Resonant lowpass design limits.
const (
	lowpassMinCutoff = 20.0
	lowpassMaxCutoff = 8000.0
	lowpassMinQ      = 0.5
	lowpassMaxQ      = 20.0
)

// nyquistGuard keeps bandpass centers below the Nyquist limit at low
// sample rates.
const nyquistGuard = 0.45

type biquadKind uint8

const (
	biquadNone biquadKind = iota
	biquadBandpass
	biquadLowpass
)

// biquad is a direct form I second-order section. Feedforward taps are
// a0..a2, feedback taps b1 and b2, with the leading denominator term
// normalized to 1. Coefficients are only recomputed when the design
// parameters change.
type biquad struct {
	a0, a1, a2 float64
	b1, b2     float64

	x1, x2 float64
	y1, y2 float64

	// last design, used to skip redundant coefficient updates
	kind       biquadKind
	designRate float64
	designFreq float64
	designQ    float64
}

func (f *biquad) designed(kind biquadKind, rate, freq, q float64) bool {
	if f.kind == kind && f.designRate == rate && f.designFreq == freq && f.designQ == q {
		return true
	}
	f.kind = kind
	f.designRate = rate
	f.designFreq = freq
	f.designQ = q
	return false
}

// setBandpass designs a constant 0 dB peak gain bandpass.
func (f *biquad) setBandpass(rate, center, q float64) {
	if center > rate*nyquistGuard {
		center = rate * nyquistGuard
	}
	if f.designed(biquadBandpass, rate, center, q) {
		return
	}
	w := 2 * math.Pi * center / rate
	alpha := math.Sin(w) / (2 * q)
	norm := 1 / (1 + alpha)

	f.a0 = alpha * norm
	f.a1 = 0
	f.a2 = -alpha * norm
	f.b1 = -2 * math.Cos(w) * norm
	f.b2 = (1 - alpha) * norm
}

// setResonantLowpass designs a lowpass that self-oscillates at high Q.
// Cutoff and Q are clamped to the usable range first.
func (f *biquad) setResonantLowpass(rate, cutoff, q float64) {
	cutoff = clampFloat(cutoff, lowpassMinCutoff, lowpassMaxCutoff)
	q = clampFloat(q, lowpassMinQ, lowpassMaxQ)
	if cutoff > rate*nyquistGuard {
		cutoff = rate * nyquistGuard
	}
	if f.designed(biquadLowpass, rate, cutoff, q) {
		return
	}
	w := 2 * math.Pi * cutoff / rate
	cosw := math.Cos(w)
	alpha := math.Sin(w) / (2 * q)
	norm := 1 / (1 + alpha)

	f.a0 = (1 - cosw) / 2 * norm
	f.a1 = (1 - cosw) * norm
	f.a2 = f.a0
	f.b1 = -2 * cosw * norm
	f.b2 = (1 - alpha) * norm
}

func (f *biquad) process(x float64) float64 {
	y := f.a0*x + f.a1*f.x1 + f.a2*f.x2 - f.b1*f.y1 - f.b2*f.y2
	f.x2 = f.x1
	f.x1 = x
	f.y2 = f.y1
	f.y1 = y
	return y
}

// reset clears the filter memory and forgets the last design.
func (f *biquad) reset() {
	*f = biquad{}
}

// onePole is a first-order smoother: y = a*x + (1-a)*y[n-1].
type onePole struct {
	alpha float64
	prev  float64
}

func (p *onePole) process(x float64) float64 {
	p.prev = p.alpha*x + (1-p.alpha)*p.prev
	return p.prev
}

// clampFloat clamps v to [lo, hi]. NaN maps to lo.
func clampFloat(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
