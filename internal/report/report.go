// Package report formats analysis results for non-interactive output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/five82/moodline/internal/sentiment"
)

// Format selects how results are written.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

const defaultWidth = 80

// ParseFormat validates a --format value. An empty value returns "".
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", FormatPlain, FormatMarkdown, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want plain, markdown or json)", value)
	}
}

// Options configures Write.
type Options struct {
	Format Format
	// Width wraps styled markdown; <= 0 uses 80 columns.
	Width int
	// Style is a glamour style name. Empty writes raw markdown.
	Style string
}

// ForTerminal picks defaults for f: styled markdown on a terminal, plain text
// otherwise. An explicit format is kept.
func ForTerminal(f *os.File, format Format) Options {
	tty := IsTerminal(f)
	opts := Options{Format: format, Width: TerminalWidth(f)}
	if opts.Format == "" {
		opts.Format = FormatPlain
		if tty {
			opts.Format = FormatMarkdown
		}
	}
	if tty && opts.Format == FormatMarkdown {
		opts.Style = "dark"
	}
	return opts
}

// Write renders results to w.
func Write(w io.Writer, results []sentiment.Result, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sentiment.PredictResponse{Results: nonNil(results)})
	case FormatMarkdown:
		md := Markdown(results)
		if opts.Style != "" {
			rendered, err := renderMarkdown(md, opts)
			if err != nil {
				return err
			}
			md = rendered
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		_, err := io.WriteString(w, Plain(results))
		return err
	}
}

// Plain lists one result per line as "N. [label] text".
func Plain(results []sentiment.Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, label(r.Sentiment), r.Text)
	}
	return b.String()
}

// Markdown renders results as a headed table.
func Markdown(results []sentiment.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis Results\n\n%s\n\n", EntryCount(len(results)))
	if len(results) == 0 {
		return b.String()
	}
	b.WriteString("| # | Sentiment | Text |\n|---|---|---|\n")
	for i, r := range results {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, escapeCell(label(r.Sentiment)), escapeCell(r.Text))
	}
	return b.String()
}

// EntryCount formats n as "1 Entry" or "N Entries".
func EntryCount(n int) string {
	if n == 1 {
		return "1 Entry"
	}
	return fmt.Sprintf("%d Entries", n)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of f, or 80 when it is not a terminal.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func renderMarkdown(md string, opts Options) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(width),
		glamour.WithTableWrap(true),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func label(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "|", `\|`)
}

func nonNil(results []sentiment.Result) []sentiment.Result {
	if results == nil {
		return []sentiment.Result{}
	}
	return results
}
