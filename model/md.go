package model

import (
	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/glamour"
)

func renderMarkdown(md string, width int) (string, error) {
	if width < 40 {
		width = 40
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(md)
	if err != nil {
		return "", err
	}

	return out, nil
}

func renderMarkdownToANSI(md string, width int) string {
	if width < 40 {
		width = 40
	}
	out := markdown.Render(md, width-4, 4)
	return string(out)
}

// renderNoteContent renders note content for the read-only preview,
// falling back to the plain ANSI renderer when glamour cannot run.
func renderNoteContent(md string, width int) string {
	if out, err := renderMarkdown(md, width); err == nil {
		return out
	}
	return renderMarkdownToANSI(md, width)
}
