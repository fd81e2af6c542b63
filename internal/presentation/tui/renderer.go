package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Terminals get an auto-detected light/dark theme; pipes and files get the
// plain "notty" style so no escape codes leak into logs.
func NewRenderer(tty bool) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if tty {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
