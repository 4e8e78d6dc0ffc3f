// Package synth implements the percussive voice engine: control mapping,
// trigger and envelope handling, eight voice algorithms and the output
// stage. The engine renders one mono sample per call and never blocks
// or allocates on the render path.
package synth

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// ErrInvalidSampleRate is returned by Initialize for non-positive rates.
var ErrInvalidSampleRate = errors.New("synth: invalid sample rate")

// controls holds the latest control-rate snapshot. Writers hold mu and
// bump seq; the render goroutine only takes mu when seq has moved.
type controls struct {
	mu      sync.Mutex
	seq     atomic.Uint64
	params  Parameters
	gate    bool
	trigger bool
	silence bool
}

// telemetry is published by the render goroutine once per sample.
type telemetry struct {
	algorithm atomic.Uint32
	frequency atomic.Uint64 // float64 bits
	envelope  atomic.Uint64 // float64 bits
	active    atomic.Bool
}

// Engine is a monophonic percussive voice.
//
// SetParameters, Trigger, Silence and the telemetry getters may be
// called from any goroutine. GenerateSample and Render must only be
// called from a single render goroutine. Initialize must not run
// concurrently with rendering.
type Engine struct {
	ctl  controls
	seen uint64
	tel  telemetry

	rate    int
	params  Parameters
	playing Algorithm
	active  bool
	elapsed uint64 // samples since trigger
	counter uint64 // samples rendered since Initialize

	vs     voiceState
	out    outputStage
	voices [NumAlgorithms]voice

	bass    bassVoice
	snare   snareVoice
	hihat   hihatVoice
	karplus karplusVoice
	modal   modalVoice
	zap     zapVoice
	clap    clapVoice
	cowbell cowbellVoice
}

// NewEngine returns an idle, uninitialized engine. It renders silence
// until Initialize is called.
func NewEngine() *Engine {
	e := &Engine{}
	e.voices = [NumAlgorithms]voice{
		AlgoBass:    &e.bass,
		AlgoSnare:   &e.snare,
		AlgoHiHat:   &e.hihat,
		AlgoKarplus: &e.karplus,
		AlgoModal:   &e.modal,
		AlgoZap:     &e.zap,
		AlgoClap:    &e.clap,
		AlgoCowbell: &e.cowbell,
	}
	e.params = MapParameters(0, 0, 0, false)
	e.ctl.params = e.params
	e.vs.frequency = e.params.Frequency
	e.vs.noise.reset()
	e.resetVoices()
	e.out.reset()
	e.publish()
	return e
}

// resetVoices clears the scratch state of every voice.
func (e *Engine) resetVoices() {
	e.bass = bassVoice{}
	e.snare = snareVoice{}
	e.hihat = hihatVoice{}
	e.karplus = karplusVoice{}
	e.karplus.line.reset()
	e.modal = modalVoice{}
	e.zap = zapVoice{}
	e.clap = clapVoice{}
	e.cowbell = cowbellVoice{}
}

// Initialize sets the sample rate and returns the engine to idle.
// Filter coefficients are redesigned for the new rate on next use.
// Triggers latched before the call are dropped; the stored gate level
// is kept, so a held gate needs a new rising edge to strike.
func (e *Engine) Initialize(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	c := &e.ctl
	c.mu.Lock()
	c.trigger = false
	c.silence = false
	c.mu.Unlock()

	e.rate = sampleRate
	e.vs.rate = float64(sampleRate)
	e.active = false
	e.vs.amplitude = 0
	e.elapsed = 0
	e.counter = 0
	e.out.reset()
	e.resetVoices()
	e.publish()
	return nil
}

// SampleRate returns the rate passed to the last successful Initialize,
// or 0.
func (e *Engine) SampleRate() int {
	return e.rate
}

// SetParameters updates the controls. All inputs are normalized to
// [0, 1]; out-of-range values are clamped. A false to true transition
// of gate latches a trigger for the next rendered sample. Repeated
// rising edges before that sample collapse into one trigger.
func (e *Engine) SetParameters(pitch, sel, shape float64, gate bool) {
	p := MapParameters(pitch, sel, shape, gate)

	c := &e.ctl
	c.mu.Lock()
	if gate && !c.gate {
		c.trigger = true
	}
	c.gate = gate
	c.params = p
	c.seq.Add(1)
	c.mu.Unlock()
}

// Trigger starts a hit on the next rendered sample regardless of gate.
func (e *Engine) Trigger() {
	c := &e.ctl
	c.mu.Lock()
	c.trigger = true
	c.seq.Add(1)
	c.mu.Unlock()
}

// Silence forces the gate low and cuts any sounding hit. The next
// rendered sample is exactly zero.
func (e *Engine) Silence() {
	c := &e.ctl
	c.mu.Lock()
	c.gate = false
	c.params.Gate = false
	c.trigger = false
	c.silence = true
	c.seq.Add(1)
	c.mu.Unlock()
}

// syncControls copies the control snapshot when it has changed.
func (e *Engine) syncControls() {
	c := &e.ctl
	if c.seq.Load() == e.seen {
		return
	}

	c.mu.Lock()
	e.seen = c.seq.Load()
	e.params = c.params
	trigger := c.trigger
	silence := c.silence
	c.trigger = false
	c.silence = false
	c.mu.Unlock()

	if silence {
		e.active = false
		e.vs.amplitude = 0
	}
	e.vs.shape = e.params.Shape
	if !e.active {
		e.vs.frequency = e.params.Frequency
	}
	if trigger {
		e.startHit()
	}
}

// GenerateSample renders the next mono sample in [-1, 1]. Idle and
// uninitialized engines return exactly 0.
func (e *Engine) GenerateSample() float64 {
	if e.rate == 0 {
		return 0
	}
	e.syncControls()

	var out float64
	if e.active {
		if e.counter%retuneInterval == 0 {
			e.retune()
		}
		t := e.advanceEnvelope()
		raw := e.voices[e.playing].generate(&e.vs, t)
		e.elapsed++
		out = e.out.process(raw, e.playing.Gain())
		if e.vs.amplitude < envelopeFloor {
			e.active = false
		}
	}
	e.counter++
	e.publish()
	return out
}

// Render fills buf with consecutive samples.
func (e *Engine) Render(buf []float32) {
	for i := range buf {
		buf[i] = float32(e.GenerateSample())
	}
}

func (e *Engine) publish() {
	algo := e.params.Algorithm
	if e.active {
		algo = e.playing
	}
	e.tel.algorithm.Store(uint32(algo))
	e.tel.frequency.Store(math.Float64bits(e.vs.frequency))
	if e.active {
		e.tel.envelope.Store(math.Float64bits(e.vs.amplitude))
	} else {
		e.tel.envelope.Store(0)
	}
	e.tel.active.Store(e.active)
}

// Algorithm returns the sounding voice, or the selected voice when idle.
func (e *Engine) Algorithm() Algorithm {
	return Algorithm(e.tel.algorithm.Load())
}

// Frequency returns the live voice frequency in Hz.
func (e *Engine) Frequency() float64 {
	return math.Float64frombits(e.tel.frequency.Load())
}

// Envelope returns the current envelope amplitude, 0 when idle.
func (e *Engine) Envelope() float64 {
	return math.Float64frombits(e.tel.envelope.Load())
}

// Active reports whether a hit is sounding.
func (e *Engine) Active() bool {
	return e.tel.active.Load()
}
