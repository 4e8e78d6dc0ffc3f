// Package cli provides the command-line runner for the voice engine.
// It owns the render goroutine, the optional DAC stage and the audio
// device, and drives them with audio-driven timing.
package cli

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user-none/tockus/dac"
	"github.com/user-none/tockus/synth"
	"github.com/user-none/tockus/ui"
)

// Pacing thresholds as queued audio duration.
const (
	adtMinBuffer = 20 * time.Millisecond
	adtMaxBuffer = 60 * time.Millisecond
)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	SampleRate int
	// BlockSize is the number of samples rendered per iteration.
	BlockSize int
	Volume    float64
	// Audio opens the default output device. Without it the runner
	// renders in real time to nowhere.
	Audio bool
	// DAC routes the engine through the converter model.
	DAC       bool
	DACConfig dac.Config
}

// DefaultRunnerConfig returns a 44.1 kHz configuration with audio and
// the DAC stage enabled.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		SampleRate: dac.DefaultSampleRate,
		BlockSize:  256,
		Volume:     1.0,
		Audio:      true,
		DAC:        true,
		DACConfig:  dac.DefaultConfig(),
	}
}

// Runner renders the engine on a dedicated goroutine. Control-rate
// callers drive the engine through Engine(); sample rate changes go
// through SetSampleRate.
type Runner struct {
	cfg    RunnerConfig
	engine *synth.Engine
	dac    *dac.DAC
	useDAC atomic.Bool

	playerMu sync.Mutex
	player   *ui.AudioPlayer

	control  *ui.RenderControl
	block    []float32
	rendered atomic.Uint64
}

// NewRunner creates a runner. Audio initialization failure is
// non-fatal; the runner renders silently instead.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultRunnerConfig().BlockSize
	}

	engine := synth.NewEngine()
	if err := engine.Initialize(cfg.SampleRate); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	cfg.DACConfig.SampleRate = cfg.SampleRate

	r := &Runner{
		cfg:     cfg,
		engine:  engine,
		dac:     dac.New(cfg.DACConfig),
		control: ui.NewRenderControl(),
		block:   make([]float32, cfg.BlockSize),
	}
	r.useDAC.Store(cfg.DAC)

	if cfg.Audio {
		r.openAudio(cfg.SampleRate)
	}
	return r, nil
}

func (r *Runner) openAudio(rate int) {
	player, err := ui.NewAudioPlayer(rate, r.cfg.Volume)
	if err != nil {
		log.Printf("Warning: audio initialization failed: %v", err)
	}
	r.playerMu.Lock()
	r.player = player
	r.playerMu.Unlock()
}

// Engine returns the engine for control-rate updates and telemetry.
func (r *Runner) Engine() *synth.Engine {
	return r.engine
}

// DAC returns the converter stage for its statistics.
func (r *Runner) DAC() *dac.DAC {
	return r.dac
}

// SetDACEnabled switches the converter stage in or out.
func (r *Runner) SetDACEnabled(on bool) {
	r.useDAC.Store(on)
}

// DACEnabled reports whether the converter stage is in use.
func (r *Runner) DACEnabled() bool {
	return r.useDAC.Load()
}

// HasAudio reports whether an output device is open.
func (r *Runner) HasAudio() bool {
	r.playerMu.Lock()
	defer r.playerMu.Unlock()
	return r.player != nil
}

// Rendered returns the number of samples rendered so far.
func (r *Runner) Rendered() uint64 {
	return r.rendered.Load()
}

// SampleRate returns the current rendering rate.
func (r *Runner) SampleRate() int {
	return r.engine.SampleRate()
}

// SetSampleRate pauses rendering, reinitializes the engine and DAC at
// rate and resumes. It may be called whether or not Run is active. The audio device is reopened at the new rate when
// possible.
func (r *Runner) SetSampleRate(rate int) error {
	return r.control.WithPaused(func() error {
		if err := r.engine.Initialize(rate); err != nil {
			return fmt.Errorf("runner: %w", err)
		}
		r.dac.SetSampleRate(rate)
		r.cfg.SampleRate = rate

		if r.cfg.Audio {
			r.playerMu.Lock()
			old := r.player
			r.player = nil
			r.playerMu.Unlock()
			if old != nil {
				old.Close()
			}
			r.openAudio(rate)
		}
		return nil
	})
}

// Run renders until ctx is cancelled or Close is called.
func (r *Runner) Run(ctx context.Context) error {
	r.control.Attach()
	defer r.control.Detach()

	lastBlock := time.Now()

	for {
		if !r.control.CheckPause() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		r.renderBlock()

		r.playerMu.Lock()
		player := r.player
		r.playerMu.Unlock()
		if player != nil {
			player.QueueSamples(r.block)
		}

		// A rate change while paused alters the block duration.
		blockTime := time.Duration(float64(time.Second) * float64(len(r.block)) / float64(r.SampleRate()))

		// ADT sleep
		elapsed := time.Since(lastBlock)
		sleepTime := blockTime - elapsed

		if player != nil {
			level := time.Duration(player.BufferLevel()) * time.Second / time.Duration(r.SampleRate())
			if level < adtMinBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 0.9)
			} else if level > adtMaxBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 1.1)
			}
		}

		if sleepTime > time.Millisecond {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(sleepTime):
			}
		}

		lastBlock = time.Now()
	}
}

// renderBlock fills r.block from the engine, through the DAC when
// enabled.
func (r *Runner) renderBlock() {
	r.engine.Render(r.block)
	if r.useDAC.Load() {
		r.dac.Process(r.block)
	}
	r.rendered.Add(uint64(len(r.block)))
}

// Serve runs the render loop alongside a front end. When the front end
// returns, rendering stops; the first error from either is returned.
func (r *Runner) Serve(ctx context.Context, front func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	g.Go(func() error {
		return r.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return front(ctx)
	})
	return g.Wait()
}

// Close stops rendering and releases the audio device.
func (r *Runner) Close() {
	r.control.Stop()

	r.playerMu.Lock()
	defer r.playerMu.Unlock()
	if r.player != nil {
		r.player.Close()
		r.player = nil
	}
}
