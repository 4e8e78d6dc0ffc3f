package main

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/user-none/tockus/synth"
)

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli,
		kong.Name("tockus"),
		kong.Vars{"version": version},
		kong.Exit(func(int) { t.Fatal("parser tried to exit") }),
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	return parser
}

func TestParse_Render(t *testing.T) {
	var c CLI
	parser := newParser(t, &c)
	ctx, err := parser.Parse([]string{"render", "-a", "4", "--pitch", "0.25", "--no-dac", "-d", "250ms", "out.wav"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := ctx.Command(); got != "render <output>" {
		t.Errorf("command: got %q", got)
	}
	if c.Render.Voice.algorithm() != synth.AlgoKarplus {
		t.Errorf("algorithm: got %v, want %v", c.Render.Voice.algorithm(), synth.AlgoKarplus)
	}
	if c.Render.Voice.Pitch != 0.25 || c.Render.Voice.DAC {
		t.Errorf("flags: got %+v", c.Render.Voice)
	}
	if c.Render.Duration != 250*time.Millisecond {
		t.Errorf("duration: got %v", c.Render.Duration)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := [][]string{
		{"render", "-a", "9", "out.wav"},
		{"render", "-a", "0", "out.wav"},
		{"render", "--pitch", "1.5", "out.wav"},
		{"render", "--rate", "0", "out.wav"},
		{"render", "-d", "0s", "out.wav"},
		{"play", "--block", "0"},
	}
	for _, args := range tests {
		var c CLI
		if _, err := newParser(t, &c).Parse(args); err == nil {
			t.Errorf("%v: expected a validation error", args)
		}
	}
}

func TestParse_EnvDefaults(t *testing.T) {
	t.Setenv("TOCKUS_SHAPE", "0.8")
	var c CLI
	if _, err := newParser(t, &c).Parse([]string{"play", "--mute"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Play.Voice.Shape != 0.8 {
		t.Errorf("shape: got %v, want 0.8", c.Play.Voice.Shape)
	}
	if !c.Play.Mute {
		t.Error("mute flag not set")
	}
}
