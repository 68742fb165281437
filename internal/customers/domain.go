package customers

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	emailDomainRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@([A-Za-z0-9.-]+\.[A-Za-z]{2,})$`)
	domainSplitRegex = regexp.MustCompile(`[-.]`)
)

// ExtractDomain returns the normalized domain of a well-formed email address.
func ExtractDomain(email string) (string, bool) {
	m := emailDomainRegex.FindStringSubmatch(strings.TrimSpace(email))
	if m == nil {
		return "", false
	}
	return NormalizeDomain(m[1]), true
}

// NormalizeDomain lowercases and trims a domain and drops a leading "www.".
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(d, "www.")
}

// CompanyNameFromDomain guesses a display name from a domain:
// "acme-foods.com" becomes "Acme Foods".
func CompanyNameFromDomain(domain string) string {
	d := NormalizeDomain(domain)
	if i := strings.LastIndex(d, "."); i >= 0 {
		d = d[:i]
	}

	// cases.Caser is stateful, one per call
	title := cases.Title(language.English)
	var words []string
	for _, part := range domainSplitRegex.Split(d, -1) {
		if part == "" {
			continue
		}
		words = append(words, title.String(part))
	}
	return strings.Join(words, " ")
}
