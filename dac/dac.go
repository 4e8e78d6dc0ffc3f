// Package dac simulates the analog imperfections of a 16-bit R-2R audio
// DAC: a gentle high-frequency rolloff, truncating quantization with
// correlated error, low-order harmonic distortion and signal-dependent
// thermal and 1/f noise. Running THD and SNR estimates are kept from the
// difference between the input and output streams.
package dac

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
)

// Defaults for the modelled part.
const (
	DefaultSampleRate = 44100
	DefaultTHD        = 0.0008
	DefaultSNR        = 91.0
	DefaultMaxOutput  = 2.5
	DefaultSeed       = 1
)

const (
	responseCutoffHz = 20000.0

	fullScale       = 32767.0
	quantNoiseDecay = 0.95
	quantNoiseMix   = 0.1

	distortionThreshold = 0.01

	oneFDecay  = 0.999
	thermalMix = 0.8
	oneFMix    = 0.2

	nominalOutput = 2.5

	statsDecay    = 0.999
	statsInterval = 1024
	statsFloor    = 1e-4
	maxSNR        = 120.0
)

// Config describes a DAC instance.
type Config struct {
	SampleRate int
	// THD is the target total harmonic distortion as a ratio.
	THD float64
	// SNR is the target signal-to-noise ratio in dB.
	SNR float64
	// MaxOutput is the full-scale output voltage.
	MaxOutput float64
	// Seed initializes the noise source.
	Seed uint64
}

// DefaultConfig returns the datasheet defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		THD:        DefaultTHD,
		SNR:        DefaultSNR,
		MaxOutput:  DefaultMaxOutput,
		Seed:       DefaultSeed,
	}
}

// DAC processes one mono stream. ProcessSample and the setters must be
// called from the same goroutine. CurrentTHD and CurrentSNR may be read
// from any goroutine.
type DAC struct {
	sampleRate int
	lpfAlpha   float64
	thd        float64
	snr        float64
	snrLinear  float64
	maxOutput  float64

	rng *rand.Rand

	lpfPrev    float64
	quantNoise float64
	oneF       float64

	inputMS      float64
	outputMS     float64
	distortionMS float64
	statsCounter int

	currentTHD atomic.Uint64 // float64 bits
	currentSNR atomic.Uint64 // float64 bits
}

// New creates a DAC from cfg. Non-positive sample rates fall back to
// DefaultSampleRate.
func New(cfg Config) *DAC {
	d := &DAC{
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	d.SetSampleRate(cfg.SampleRate)
	d.SetTHD(cfg.THD)
	d.SetSNR(cfg.SNR)
	d.SetMaxOutput(cfg.MaxOutput)
	return d
}

// SetSampleRate redesigns the frequency response for a new rate.
func (d *DAC) SetSampleRate(rate int) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	d.sampleRate = rate
	// alpha = dt / (RC + dt) where RC = 1/(2*pi*fc).
	d.lpfAlpha = 1.0 / (float64(rate)/(2*math.Pi*responseCutoffHz) + 1)
}

// SampleRate returns the configured rate.
func (d *DAC) SampleRate() int {
	return d.sampleRate
}

// SetTHD sets the target distortion ratio, clamped to [0, 1].
func (d *DAC) SetTHD(thd float64) {
	d.thd = clamp(thd, 0, 1)
}

// SetSNR sets the target signal-to-noise ratio in dB, clamped to
// [0, 120].
func (d *DAC) SetSNR(snr float64) {
	d.snr = clamp(snr, 0, maxSNR)
	d.snrLinear = math.Pow(10, d.snr/20)
}

// SetMaxOutput sets the full-scale output voltage. Non-positive values
// fall back to DefaultMaxOutput.
func (d *DAC) SetMaxOutput(volts float64) {
	if !(volts > 0) {
		volts = DefaultMaxOutput
	}
	d.maxOutput = volts
}

// ProcessSample runs x through the DAC model and returns the analog
// output, scaled so DefaultMaxOutput maps full scale to ±1.
func (d *DAC) ProcessSample(x float64) float64 {
	if x != x {
		x = 0
	}
	s := d.frequencyResponse(x)
	s = d.quantize(s)
	s = d.distort(s)
	s = d.addNoise(s)
	s *= d.maxOutput / nominalOutput

	d.updateStats(x, s)
	return s
}

// Process runs every sample of buf through the model in place.
func (d *DAC) Process(buf []float32) {
	for i, v := range buf {
		buf[i] = float32(d.ProcessSample(float64(v)))
	}
}

func (d *DAC) frequencyResponse(x float64) float64 {
	d.lpfPrev = d.lpfAlpha*x + (1-d.lpfAlpha)*d.lpfPrev
	return d.lpfPrev
}

// quantize truncates to a 16-bit code. The error feeds a slowly
// decaying accumulator that is mixed back in, as the ladder's
// mismatch makes the error correlated between samples.
func (d *DAC) quantize(s float64) float64 {
	s = clamp(s, -1, 1)
	code := int16(s * fullScale)
	q := float64(code) / fullScale

	d.quantNoise = quantNoiseDecay*d.quantNoise + (1-quantNoiseDecay)*(q-s)
	return q + quantNoiseMix*d.quantNoise
}

func (d *DAC) distort(s float64) float64 {
	if math.Abs(s) <= distortionThreshold {
		return s
	}
	second := 0.5 * s * s * d.thd * 2
	third := s * s * s * d.thd * 0.5
	higher := math.Sin(4*math.Pi*s) * d.thd * 0.1
	return s + second + third + higher
}

// addNoise adds white noise scaled to the target SNR relative to the
// instantaneous level, plus a slow 1/f component derived from it.
func (d *DAC) addNoise(s float64) float64 {
	level := math.Abs(s) / d.snrLinear
	n := (2*d.rng.Float64() - 1) * level
	d.oneF = oneFDecay*d.oneF + (1-oneFDecay)*n
	return s + thermalMix*n + oneFMix*d.oneF
}

func (d *DAC) updateStats(in, out float64) {
	diff := out - in
	d.inputMS = statsDecay*d.inputMS + (1-statsDecay)*in*in
	d.outputMS = statsDecay*d.outputMS + (1-statsDecay)*out*out
	d.distortionMS = statsDecay*d.distortionMS + (1-statsDecay)*diff*diff

	d.statsCounter++
	if d.statsCounter < statsInterval {
		return
	}
	d.statsCounter = 0

	var thd float64
	if d.inputMS > statsFloor {
		thd = math.Sqrt(d.distortionMS / d.inputMS)
	}

	var snr float64
	switch {
	case d.outputMS <= statsFloor:
		snr = 0
	case d.distortionMS == 0:
		snr = maxSNR
	default:
		snr = 20 * math.Log10(math.Sqrt(d.outputMS)/math.Sqrt(d.distortionMS))
	}

	d.currentTHD.Store(math.Float64bits(clamp(thd, 0, 1)))
	d.currentSNR.Store(math.Float64bits(clamp(snr, 0, maxSNR)))
}

// CurrentTHD returns the latest distortion estimate in [0, 1].
func (d *DAC) CurrentTHD() float64 {
	return math.Float64frombits(d.currentTHD.Load())
}

// CurrentSNR returns the latest signal-to-noise estimate in dB.
func (d *DAC) CurrentSNR() float64 {
	return math.Float64frombits(d.currentSNR.Load())
}

// clamp clamps v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
