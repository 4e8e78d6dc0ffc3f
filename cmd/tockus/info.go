package main

import (
	"fmt"
	"os"

	"github.com/user-none/tockus/cli"
	"github.com/user-none/tockus/dac"
)

// InfoCmd prints the voice table and DAC defaults.
type InfoCmd struct{}

func (c *InfoCmd) Run(g *globals) error {
	cli.PrintAlgorithms(os.Stdout)
	fmt.Println()

	cfg := dac.DefaultConfig()
	fmt.Println(cli.TitleStyle.Render("DAC model"))
	cli.PrintKeyValue(os.Stdout, "THD", fmt.Sprintf("%.2f%%", cfg.THD*100))
	cli.PrintKeyValue(os.Stdout, "SNR", fmt.Sprintf("%.0f dB", cfg.SNR))
	cli.PrintKeyValue(os.Stdout, "Full scale", fmt.Sprintf("%.1f V", cfg.MaxOutput))
	return nil
}
