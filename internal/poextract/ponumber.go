package poextract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joseph-ayodele/po-reader/constants"
)

// poLookahead is how many lines below a "PO #" header are searched.
const poLookahead = 3

// labeledPONumber finds a value written right after a PO or Order label,
// falling back to bare "PO-1234" style tokens.
func labeledPONumber(d *document) (string, bool) {
	for _, m := range rePOLabeled.FindAllStringSubmatch(d.text, -1) {
		v := strings.TrimLeft(strings.TrimSpace(m[1]), "_-")
		if isPOCandidate(v) {
			return v, true
		}
	}
	for _, m := range rePOBare.FindAllString(d.text, -1) {
		if isPOCandidate(m) {
			return m, true
		}
	}
	return "", false
}

func isPOCandidate(v string) bool {
	if constants.IsOneOf(strings.ToLower(v), constants.POLabelWords) {
		return false
	}
	return utf8.RuneCountInString(v) > 2 && hasDigit(v)
}

// poNumberBelowHeader handles tables where the PO value sits under a
// "PO Number" column header. Tokens that look like identifiers are preferred
// over plain numbers.
func poNumberBelowHeader(d *document) (string, bool) {
	for i, line := range d.lines {
		if !rePOHeader.MatchString(strings.ToLower(strings.TrimSpace(line))) {
			continue
		}

		best, bestPriority := "", -1
		end := min(i+1+poLookahead, len(d.lines))
		for _, next := range d.lines[i+1 : end] {
			for _, tok := range strings.Fields(next) {
				if reDateToken.MatchString(tok) {
					continue
				}
				if constants.IsOneOf(strings.ToLower(tok), constants.POTokenStopwords) {
					continue
				}
				if utf8.RuneCountInString(tok) <= 2 || !hasDigit(tok) {
					continue
				}
				if p := poTokenPriority(tok); p > bestPriority {
					best, bestPriority = tok, p
				}
			}
		}
		if best != "" {
			return best, true
		}
	}
	return "", false
}

func poTokenPriority(tok string) int {
	switch {
	case strings.ContainsAny(tok, "_-"):
		return 2
	case strings.HasPrefix(tok, "PO"), strings.HasPrefix(tok, "po"):
		return 1
	default:
		return 0
	}
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
