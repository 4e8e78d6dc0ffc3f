package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/user-none/tockus/cli"
	"github.com/user-none/tockus/synth"
	"github.com/user-none/tockus/ui"
)

// PlayCmd runs the voice live, with the monitor when attached to a
// terminal and a fixed hit sequence otherwise.
type PlayCmd struct {
	Voice    voiceFlags    `embed:""`
	Volume   float64       `default:"1.0" env:"TOCKUS_VOLUME" help:"Playback volume, 0-1"`
	Block    int           `default:"256" help:"Samples rendered per block"`
	Mute     bool          `help:"Render without opening an audio device"`
	Interval time.Duration `default:"500ms" help:"Time between hits when not attached to a terminal"`
	Length   time.Duration `default:"4s" help:"Run time when not attached to a terminal"`
}

func (c *PlayCmd) Validate() error {
	if err := c.Voice.validate(); err != nil {
		return err
	}
	if c.Block <= 0 {
		return fmt.Errorf("block size must be positive, got %d", c.Block)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	return nil
}

func (c *PlayCmd) Run(g *globals) error {
	cfg := cli.DefaultRunnerConfig()
	cfg.SampleRate = c.Voice.Rate
	cfg.BlockSize = c.Block
	cfg.Volume = c.Volume
	cfg.Audio = !c.Mute
	cfg.DAC = c.Voice.DAC

	r, err := cli.NewRunner(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := r.Serve(g.ctx, c.sequence(r.Engine())); err != nil {
			return err
		}
		cli.PrintKeyValue(os.Stdout, "Samples", r.Rendered())
		return nil
	}

	monitor := ui.NewMonitor(ui.MonitorConfig{
		Voice:      r.Engine(),
		Stats:      r.DAC(),
		SampleRate: r.SampleRate(),
		SetDAC:     r.SetDACEnabled,
		DACEnabled: r.DACEnabled(),
		Pitch:      c.Voice.Pitch,
		Shape:      c.Voice.Shape,
		Algorithm:  c.Voice.algorithm(),
	})
	return r.Serve(g.ctx, func(ctx context.Context) error {
		p := tea.NewProgram(monitor, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
}

// sequence strikes the configured voice every Interval for Length.
func (c *PlayCmd) sequence(e *synth.Engine) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sel := synth.AlgorithmSelect(c.Voice.algorithm())
		log.Printf("Playing %s every %s for %s", c.Voice.algorithm(), c.Interval, c.Length)

		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()
		deadline := time.After(c.Length)

		strike := func() {
			e.SetParameters(c.Voice.Pitch, sel, c.Voice.Shape, true)
			e.SetParameters(c.Voice.Pitch, sel, c.Voice.Shape, false)
		}
		strike()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-deadline:
				e.Silence()
				return nil
			case <-ticker.C:
				strike()
			}
		}
	}
}
