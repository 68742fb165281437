package extract

import (
	"regexp"
	"strings"
)

var (
	reCRLF     = regexp.MustCompile(`\r\n?`)
	reBoxNoise = regexp.MustCompile(`(?m)^[ \t]*[_\-=]{3,}[ \t]*$`)
)

// normalizeText cleans layout-analyzer text without touching column spacing:
// CRLF becomes LF, non-breaking spaces become spaces, ruled separator lines
// become blank lines and trailing blanks are trimmed from every line.
func normalizeText(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reBoxNoise.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
