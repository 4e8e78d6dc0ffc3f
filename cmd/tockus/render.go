package main

import (
	"fmt"
	"os"
	"time"

	"github.com/user-none/tockus/cli"
	"github.com/user-none/tockus/dac"
	"github.com/user-none/tockus/export"
)

// RenderCmd renders one hit offline.
type RenderCmd struct {
	Voice    voiceFlags    `embed:""`
	Duration time.Duration `short:"d" default:"1s" help:"Length of the rendered file"`
	Gate     time.Duration `default:"10ms" help:"How long the gate is held high"`
	Output   string        `arg:"" type:"path" help:"Output WAV file"`
}

func (c *RenderCmd) Validate() error {
	if err := c.Voice.validate(); err != nil {
		return err
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", c.Duration)
	}
	return nil
}

func (c *RenderCmd) Run(g *globals) error {
	cfg := export.HitConfig{
		SampleRate: c.Voice.Rate,
		Algorithm:  c.Voice.algorithm(),
		Pitch:      c.Voice.Pitch,
		Shape:      c.Voice.Shape,
		Duration:   c.Duration,
		Gate:       c.Gate,
		DAC:        c.Voice.DAC,
		DACConfig:  dac.DefaultConfig(),
	}
	samples, err := export.RenderHit(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := export.WriteWAV(f, samples, cfg.SampleRate); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	cli.PrintKeyValue(os.Stdout, "Voice", cfg.Algorithm)
	cli.PrintKeyValue(os.Stdout, "Samples", len(samples))
	cli.PrintKeyValue(os.Stdout, "Output", c.Output)
	return nil
}
