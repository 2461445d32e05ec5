package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Arbor logo followed by the version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"     _         _", "#34d399"},
		{"    / \\   _ __| |__   ___  _ __", "#10b981"},
		{"   / _ \\ | '__| '_ \\ / _ \\| '__|", "#059669"},
		{"  / ___ \\| |  | |_) | (_) | |", "#047857"},
		{" /_/   \\_\\_|  |_.__/ \\___/|_|", "#065f46"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
