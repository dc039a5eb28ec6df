package tui

import (
	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the column replies are wrapped at.
const DefaultWordWrap = 80

// NewRenderer returns a function that renders markdown replies using glamour.
// When the terminal renderer cannot be built, text is returned unchanged.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(DefaultWordWrap),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
