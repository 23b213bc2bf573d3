package sentiment

import "strings"

// SplitConversation turns raw conversation text into the sentence list sent to
// the service: one entry per line, trimmed, blank lines dropped, order and
// duplicates preserved.
func SplitConversation(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
