package ui

import (
	"fmt"
	"strings"

	"github.com/five82/moodline/internal/report"
	"github.com/five82/moodline/internal/sentiment"
	"github.com/five82/moodline/internal/state"
)

// renderResultsTitle renders the line above the results pane.
func (m Model) renderResultsTitle() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Analysis Results")
	count := styles.MutedText.Render(report.EntryCount(len(m.snapshot.Results)))
	line := title + "  " + count
	if m.snapshot.Status == state.StatusError && len(m.snapshot.Results) > 0 {
		line += "  " + styles.WarningText.Render("(stale)")
	}
	return line
}

// resultsContent builds the viewport body for the current snapshot.
func (m Model) resultsContent(width int) string {
	styles := m.theme.Styles()
	if len(m.snapshot.Results) == 0 {
		if m.snapshot.Loading {
			return styles.FaintText.Render("Waiting for results...")
		}
		return styles.FaintText.Render("Results will appear here after analysis.")
	}

	var b strings.Builder
	for i, r := range m.snapshot.Results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderCard(styles, i+1, r, width))
	}
	return b.String()
}

// renderCard renders one numbered result: a badge line followed by the
// wrapped sentence.
func renderCard(styles Styles, n int, r sentiment.Result, width int) string {
	label := strings.TrimSpace(r.Sentiment)
	if label == "" {
		label = "unknown"
	}
	number := fmt.Sprintf("%2d.", n)
	badge := styles.SentimentStyle(label).Render(strings.ToUpper(label))

	indent := len(number) + 1
	text := wrapText(r.Text, maxInt(width-indent, 10))
	return styles.FaintText.Render(number) + " " + badge + "\n" +
		strings.Repeat(" ", indent) + styles.Text.Render(indentLines(text, indent))
}

func (m *Model) refreshResults() {
	m.results.SetContent(m.resultsContent(m.results.Width))
}
