package main

import (
	"fmt"

	"github.com/user-none/tockus/synth"
)

// voiceFlags are the controls shared by every command that renders.
type voiceFlags struct {
	Algorithm int     `short:"a" default:"1" env:"TOCKUS_ALGORITHM" help:"Voice number, 1-8 (see info)"`
	Pitch     float64 `short:"p" default:"0.5" env:"TOCKUS_PITCH" help:"Pitch control, 0-1; lower values play higher"`
	Shape     float64 `short:"s" default:"0.5" env:"TOCKUS_SHAPE" help:"Shape control, 0-1"`
	Rate      int     `short:"r" default:"44100" env:"TOCKUS_RATE" help:"Sample rate in Hz"`
	DAC       bool    `default:"true" negatable:"" env:"TOCKUS_DAC" help:"Route output through the DAC model"`
}

// validate checks ranges kong cannot express in tags.
func (f *voiceFlags) validate() error {
	if f.Algorithm < 1 || f.Algorithm > synth.NumAlgorithms {
		return fmt.Errorf("algorithm must be between 1 and %d, got %d", synth.NumAlgorithms, f.Algorithm)
	}
	if f.Pitch < 0 || f.Pitch > 1 {
		return fmt.Errorf("pitch must be between 0 and 1, got %g", f.Pitch)
	}
	if f.Shape < 0 || f.Shape > 1 {
		return fmt.Errorf("shape must be between 0 and 1, got %g", f.Shape)
	}
	if f.Rate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", f.Rate)
	}
	return nil
}

func (f *voiceFlags) algorithm() synth.Algorithm {
	return synth.Algorithm(f.Algorithm - 1)
}
