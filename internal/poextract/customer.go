package poextract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joseph-ayodele/po-reader/constants"
)

// resolveCustomer sets the customer name from the Ship To region when the
// layout analyzer supplied one, and from the first plausible text line
// otherwise. A region whose first line is a street number leaves the name
// unresolved so it can be taken from the billing address later.
func resolveCustomer(d *document, b *recordBuilder) {
	if lines := shipToRegionLines(d); len(lines) > 0 {
		if !startsWithDigit(lines[0]) {
			b.setString(&b.rec.Customer, lines[0], true)
		}
		return
	}
	b.resolve(&b.rec.Customer, d, firstNameLikeLine)
}

// firstNameLikeLine returns the first non-blank line that is neither a
// document heading nor made of digits and separators only.
func firstNameLikeLine(d *document) (string, bool) {
	for _, line := range d.lines {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if constants.ContainsAny(strings.ToLower(s), constants.NameHeaderKeywords) {
			continue
		}
		if reNumericOnly.MatchString(s) {
			continue
		}
		return s, true
	}
	return "", false
}

// customerFromAddress takes the first line of a resolved billing address
// unless it looks like a street number.
func customerFromAddress(address string) (string, bool) {
	if isUnknown(address) {
		return "", false
	}
	first, _, _ := strings.Cut(address, "\n")
	first = strings.TrimSpace(first)
	if first == "" || startsWithDigit(first) {
		return "", false
	}
	return first, true
}

// shipToRegionLines returns the trimmed, non-blank lines of the Ship To
// region with a leading "Ship To" label line removed.
func shipToRegionLines(d *document) []string {
	lines := nonBlankLines(d.input.ShipToRegion)
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), "ship to") {
		lines = lines[1:]
	}
	return lines
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsDigit(r)
}
