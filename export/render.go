package export

import (
	"fmt"
	"time"

	"github.com/user-none/tockus/dac"
	"github.com/user-none/tockus/synth"
)

// HitConfig describes one offline hit.
type HitConfig struct {
	SampleRate int
	Algorithm  synth.Algorithm
	Pitch      float64
	Shape      float64
	// Duration is the total length rendered, including the tail.
	Duration time.Duration
	// Gate is how long the gate is held high. The hit itself is not
	// shortened by a release; it only ends when the envelope has decayed.
	Gate time.Duration
	// DAC routes the output through the converter model.
	DAC       bool
	DACConfig dac.Config
}

// DefaultHitConfig returns a one second Bass hit at 44.1 kHz.
func DefaultHitConfig() HitConfig {
	return HitConfig{
		SampleRate: dac.DefaultSampleRate,
		Algorithm:  synth.AlgoBass,
		Pitch:      0.5,
		Shape:      0.5,
		Duration:   time.Second,
		Gate:       10 * time.Millisecond,
		DACConfig:  dac.DefaultConfig(),
	}
}

// RenderHit triggers one hit and renders cfg.Duration of audio.
func RenderHit(cfg HitConfig) ([]float32, error) {
	e := synth.NewEngine()
	if err := e.Initialize(cfg.SampleRate); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	total := samplesFor(cfg.Duration, cfg.SampleRate)
	if total == 0 {
		return nil, ErrNoSamples
	}
	gate := min(samplesFor(cfg.Gate, cfg.SampleRate), total)

	sel := synth.AlgorithmSelect(cfg.Algorithm)
	out := make([]float32, total)

	e.SetParameters(cfg.Pitch, sel, cfg.Shape, true)
	e.Render(out[:gate])
	e.SetParameters(cfg.Pitch, sel, cfg.Shape, false)
	e.Render(out[gate:])

	if cfg.DAC {
		dc := cfg.DACConfig
		dc.SampleRate = cfg.SampleRate
		dac.New(dc).Process(out)
	}
	return out, nil
}

func samplesFor(d time.Duration, rate int) int {
	if d <= 0 {
		return 0
	}
	return int(int64(d) * int64(rate) / int64(time.Second))
}
