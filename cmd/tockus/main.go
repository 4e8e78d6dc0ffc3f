package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/user-none/tockus/cli"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag     `short:"v" help:"Show version information"`
	Config  kong.ConfigFlag `short:"c" help:"Load flag defaults from a JSON config file"`

	Play   PlayCmd   `cmd:"" default:"withargs" help:"Play the voice interactively (default)"`
	Render RenderCmd `cmd:"" help:"Render one hit to a 16-bit WAV file"`
	Info   InfoCmd   `cmd:"" help:"Show the voice table and DAC defaults"`
}

// versionFlag prints the styled version banner and exits.
type versionFlag bool

func (v versionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(vars["version"])
	app.Exit(0)
	return nil
}

// globals is bound into every command's Run method.
type globals struct {
	ctx context.Context
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("tockus"),
		kong.Description("Percussive voice engine with a 16-bit DAC model"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Configuration(kong.JSON, "/etc/tockus/config.json", "~/.config/tockus/config.json"),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if err := kctx.Run(&globals{ctx: ctx}); err != nil {
		cli.PrintError(err.Error())
		stop()
		os.Exit(1)
	}
}
