package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFA500")).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter returns a kong help printer with Lipgloss styling.
// It covers the selected command's arguments and flags, plus the
// subcommands when no command has been chosen yet.
func StyledHelpPrinter(options kong.HelpOptions) func(options kong.HelpOptions, ctx *kong.Context) error {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		sb.WriteString(helpTitleStyle.Render("Tockus"))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render("Percussive voice engine with a 16-bit DAC model"))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(ctx.Model.Name)
		if node != ctx.Model.Node {
			sb.WriteString(" " + node.Path())
		}
		sb.WriteString(" [flags]")
		cmds := commands(node)
		if len(cmds) > 0 {
			sb.WriteString(" <command>")
		}
		sb.WriteString("\n")

		if len(cmds) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")
			for _, c := range cmds {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(c.name))
				if c.help != "" {
					sb.WriteString("  ")
					sb.WriteString(c.help)
				}
				sb.WriteString("\n")
			}
		}

		if args := getArguments(node); len(args) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range args {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(arg.name))
				if arg.help != "" {
					sb.WriteString("  ")
					sb.WriteString(arg.help)
				}
				sb.WriteString("\n")
			}
		}

		if flags := getFlags(node); len(flags) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Flags:"))
			sb.WriteString("\n")
			for _, flag := range flags {
				sb.WriteString("  ")
				sb.WriteString(helpFlagStyle.Render(flag.flags))
				if flag.help != "" {
					sb.WriteString("  ")
					sb.WriteString(flag.help)
				}
				if flag.defaultVal != "" {
					sb.WriteString(" ")
					sb.WriteString(helpDefaultStyle.Render("(default: " + flag.defaultVal + ")"))
				}
				sb.WriteString("\n")
			}
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

type entry struct {
	name string
	help string
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

func commands(node *kong.Node) []entry {
	var out []entry
	for _, child := range node.Children {
		if child.Hidden || child.Type != kong.CommandNode {
			continue
		}
		out = append(out, entry{name: child.Name, help: child.Help})
	}
	return out
}

func getArguments(node *kong.Node) []entry {
	var args []entry
	for _, arg := range node.Positional {
		args = append(args, entry{name: arg.Summary(), help: arg.Help})
	}
	return args
}

// getFlags lists the node's own flags, then those inherited from its
// parents.
func getFlags(node *kong.Node) []flag {
	flags := []flag{{
		flags: "-h, --help",
		help:  "Show context-sensitive help.",
	}}

	for n := node; n != nil; n = n.Parent {
		for _, f := range n.Flags {
			if f.Name == "help" || f.Hidden {
				continue
			}

			flagStr := fmt.Sprintf("--%s", f.Name)
			if f.Short != 0 {
				flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}
			if !f.IsBool() && f.PlaceHolder != "" {
				flagStr += "=" + strings.ToUpper(f.PlaceHolder)
			}

			flags = append(flags, flag{
				flags:      flagStr,
				help:       f.Help,
				defaultVal: f.Default,
			})
		}
	}
	return flags
}
