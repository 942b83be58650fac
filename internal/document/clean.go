package document

import (
	"regexp"
	"strings"
)

var inlineSpaceRe = regexp.MustCompile(`[ \t]+`)

// Clean normalizes extracted text: unified line endings, trimmed lines, blank
// runs collapsed to a single blank line, consecutive duplicate lines dropped
// and inline whitespace runs collapsed to one space.
func Clean(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if prevBlank {
				continue
			}
			prevBlank = true
		} else {
			prevBlank = false
		}
		kept = append(kept, line)
	}
	s = strings.TrimSpace(strings.Join(kept, "\n"))

	lines = strings.Split(s, "\n")
	deduped := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && line == lines[i-1] {
			continue
		}
		deduped = append(deduped, line)
	}

	return inlineSpaceRe.ReplaceAllString(strings.Join(deduped, "\n"), " ")
}
