package synth

import "math"

// Calibrated ADC code ranges of the hardware controls. Callers that
// read raw converter codes normalize them with NormalizeADC.
const (
	PitchADCMin  = 0
	PitchADCMax  = 4095
	SelectADCMin = 8
	SelectADCMax = 2000
	ShapeADCMin  = 8
	ShapeADCMax  = 2000
)

// Pitch CV front end: an inverting 12-bit converter over 3.3 V centred
// at 1.65 V with 0.33 V per octave.
const (
	adcFullScale   = 4095
	adcReference   = 3.3
	cvCenterVolts  = 1.65
	voltsPerOctave = 0.33
	maxCVOctaves   = 5
	referencePitch = 440.0
	pitchOctaveLow = 4

	// The tuning knob sits at its detent; it contributes no offset.
	knobOctaves = (cvCenterVolts - cvCenterVolts) / cvCenterVolts

	selectEpsilon = 1e-9
)

// Parameters is the result of mapping one set of normalized controls.
type Parameters struct {
	// BaseFrequency is the pitch before the per-voice scaling table.
	BaseFrequency float64
	// Frequency is BaseFrequency scaled and clamped for Algorithm.
	Frequency float64
	Algorithm Algorithm
	Shape     float64
	Gate      bool
}

// MapParameters converts normalized controls into voice parameters.
// Inputs outside [0, 1] are clamped and NaN is treated as 0. The
// mapping is pure; edge detection on gate is done by the Engine.
func MapParameters(pitch, sel, shape float64, gate bool) Parameters {
	pitch = clampFloat(pitch, 0, 1)
	sel = clampFloat(sel, 0, 1)
	shape = clampFloat(shape, 0, 1)

	base := pitchToFrequency(pitch)
	algo := selectToAlgorithm(sel)
	return Parameters{
		BaseFrequency: base,
		Frequency:     algo.scaleFrequency(base),
		Algorithm:     algo,
		Shape:         shape,
		Gate:          gate,
	}
}

// pitchToFrequency models the 1V/oct converter path.
func pitchToFrequency(pitch float64) float64 {
	code := uint16(pitch * adcFullScale)
	volts := float64(adcFullScale-int(code)) / adcFullScale * adcReference
	cvOctaves := clampFloat((volts-cvCenterVolts)/voltsPerOctave, 0, maxCVOctaves)
	return referencePitch * math.Pow(2, cvOctaves+knobOctaves-pitchOctaveLow)
}

func selectToAlgorithm(sel float64) Algorithm {
	idx := int(math.Floor(sel*(NumAlgorithms-1) + selectEpsilon))
	if idx < 0 {
		idx = 0
	}
	if idx > NumAlgorithms-1 {
		idx = NumAlgorithms - 1
	}
	return Algorithm(idx)
}

// NormalizeADC maps a raw converter code onto [0, 1] using a
// calibrated min/max range.
func NormalizeADC(code, lo, hi int) float64 {
	if hi <= lo {
		return 0
	}
	return clampFloat(float64(code-lo)/float64(hi-lo), 0, 1)
}

// AlgorithmSelect returns the normalized select value that maps to a.
// Front ends use it to choose a voice directly.
func AlgorithmSelect(a Algorithm) float64 {
	if int(a) >= NumAlgorithms {
		a = NumAlgorithms - 1
	}
	return float64(a) / (NumAlgorithms - 1)
}
