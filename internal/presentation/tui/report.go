package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/charmbracelet/glamour"
)

var _ ports.ResultSink = (*Report)(nil)

// NewMarkdownRenderer returns a function that renders markdown using glamour.
// An empty style detects the terminal background.
func NewMarkdownRenderer(style string, wordWrap int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wordWrap)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// Report prints each traversal result as rendered markdown.
type Report struct {
	mu     sync.Mutex
	w      io.Writer
	render func(string) (string, error)
}

// NewReport creates a result sink. A nil render writes the raw markdown.
func NewReport(w io.Writer, render func(string) (string, error)) *Report {
	return &Report{w: w, render: render}
}

// ResultMarkdown formats a traversal result.
func ResultMarkdown(kind domain.TraversalKind, values []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s traversal\n\n", kind.Title())
	fmt.Fprintf(&b, "**%s**\n\n", domain.FormatResult(values))
	fmt.Fprintf(&b, "%d nodes visited.\n", len(values))
	return b.String()
}

func (r *Report) PublishResult(kind domain.TraversalKind, values []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	md := ResultMarkdown(kind, values)
	if r.render != nil {
		if out, err := r.render(md); err == nil {
			md = out
		}
	}
	fmt.Fprint(r.w, md)
}
