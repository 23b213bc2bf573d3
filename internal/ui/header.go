package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/moodline/internal/state"
)

// renderHeader renders the title bar: logo, connectivity chip and base URL.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	surface := lipgloss.Color(m.theme.Surface)
	sep := lipgloss.NewStyle().Background(surface).Render("  ")

	logo := styles.Logo.Render("moodline")
	chip := m.statusChip(styles).Background(surface).Render(statusChipText(m.snapshot.Status))

	used := lipgloss.Width(logo) + lipgloss.Width(chip) + 2*lipgloss.Width(sep) + 2
	url := m.baseURL
	if url == "" {
		url = "(not configured)"
	}
	url = truncateText(url, maxInt(m.width-used, 8))

	line := logo + sep + chip + sep + styles.MutedText.Background(surface).Render(url)
	return styles.Header.Width(maxInt(m.width, 1)).Render(line)
}

func (m Model) statusChip(styles Styles) lipgloss.Style {
	switch m.snapshot.Status {
	case state.StatusConnected:
		return styles.SuccessText
	case state.StatusError:
		return styles.DangerText
	default:
		return styles.WarningText
	}
}

// statusChipText returns the chip label for status.
func statusChipText(status state.Status) string {
	return "● " + strings.ToUpper(status.String())
}

// renderBanner renders the persistent warning shown while the service is in
// error. It returns "" otherwise.
func (m Model) renderBanner() string {
	if m.snapshot.Status != state.StatusError {
		return ""
	}
	msg := strings.TrimSpace(m.snapshot.ErrorMessage)
	if msg == "" {
		msg = "Sentiment service unavailable"
	}
	width := maxInt(m.width, 20)
	text := wrapText("⚠ "+msg+"  ·  ctrl+r to retry", width-2)
	return m.theme.Styles().Banner.Width(width).Render(text)
}
