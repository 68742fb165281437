package poextract

import (
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
)

// customerEmail picks the customer's address: the operator's own domain is
// skipped, and finance mailboxes (ap@, billing@, orders@, ...) win over the
// first address in the text.
func (e *Engine) customerEmail(d *document) (string, bool) {
	own := strings.ToLower(strings.TrimSpace(e.cfg.OwnDomain))

	var candidates []string
	for _, m := range reEmail.FindAllString(d.text, -1) {
		if own != "" && strings.Contains(strings.ToLower(m), own) {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		return "", false
	}

	for _, prefix := range constants.FinanceEmailPrefixes {
		for _, c := range candidates {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				return c, true
			}
		}
	}
	return candidates[0], true
}
