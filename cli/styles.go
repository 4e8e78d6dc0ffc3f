package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/user-none/tockus/synth"
)

var (
	primaryColor = lipgloss.Color("#E8A33D")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D03030"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)
)

// PrintVersion prints version information.
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Tockus"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintKeyValue prints one labelled value.
func PrintKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintAlgorithms writes the voice table: frequency clamp, decay range
// and output gain of each algorithm.
func PrintAlgorithms(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("Voices"))
	header := fmt.Sprintf("%-3s %-16s %-18s %-16s %s", "#", "Name", "Frequency (Hz)", "Decay (Hz)", "Gain")
	fmt.Fprintln(w, tableHeaderStyle.Render(header))
	for a := synth.Algorithm(0); a < synth.NumAlgorithms; a++ {
		flo, fhi := a.FrequencyRange()
		dlo, dhi := a.DecayRange()
		fmt.Fprintf(w, "%-3d %-16s %-18s %-16s %.1f\n",
			int(a)+1, a,
			fmt.Sprintf("%g-%g", flo, fhi),
			fmt.Sprintf("%g-%g", dlo, dhi),
			a.Gain())
	}
}
