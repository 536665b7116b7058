package content

import (
	"regexp"
	"strings"
)

// numberPrefix matches a leading "12." or "12)" followed by whitespace.
var numberPrefix = regexp.MustCompile(`^\d+[.)]\s+`)

// numberedItems reports whether every non-blank line of text is numbered,
// and returns the lines with their numbering removed. A single line is
// never a list.
func numberedItems(text string) ([]string, bool) {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return nil, false
	}
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		loc := numberPrefix.FindStringIndex(line)
		if loc == nil {
			return nil, false
		}
		items = append(items, line[loc[1]:])
	}
	return items, true
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
