package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  ____             _     _        ____        _   ", "#fbbf24"},
	{" | __ )  __ _ _ __(_)___| |_ __ _| __ )  ___ | |_ ", "#f59e0b"},
	{" |  _ \\ / _` | '__| / __| __/ _` |  _ \\ / _ \\| __|", "#d97706"},
	{" | |_) | (_| | |  | \\__ \\ || (_| | |_) | (_) | |_ ", "#b45309"},
	{" |____/ \\__,_|_|  |_|___/\\__\\__,_|____/ \\___/ \\__|", "#92400e"},
}

// PrintBanner writes the BaristaBot banner in coffee tones.
// Colors degrade to plain text when w is not a terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w)
}
