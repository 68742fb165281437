package customers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// Directory looks up known customers by mail domain.
type Directory interface {
	SearchByDomain(ctx context.Context, domain string) ([]entity.Customer, error)
}

// Matcher resolves a company name for a customer email, first from the
// directory and then from the domain itself.
type Matcher struct {
	directory Directory
	logger    *slog.Logger
}

// NewMatcher creates a matcher. A nil directory means heuristic-only.
func NewMatcher(directory Directory, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{directory: directory, logger: logger}
}

// CompanyNameForEmail returns "" with a nil error when the address has no
// usable domain.
func (m *Matcher) CompanyNameForEmail(ctx context.Context, email string) (string, error) {
	domain, ok := ExtractDomain(email)
	if !ok {
		m.logger.Debug("customers.match.no_domain", "email", email)
		return "", nil
	}

	if m.directory != nil {
		candidates, err := m.directory.SearchByDomain(ctx, domain)
		if err != nil {
			m.logger.Warn("customers.match.directory_failed", "domain", domain, "err", err)
		} else if name := bestName(candidates); name != "" {
			m.logger.Debug("customers.match.directory", "domain", domain, "customer", name, "candidates", len(candidates))
			return name, nil
		}
	}

	name := CompanyNameFromDomain(domain)
	m.logger.Debug("customers.match.heuristic", "domain", domain, "customer", name)
	return name, nil
}

// bestName walks the candidates in order and returns the first usable name,
// preferring the company name over the display name over the full name.
func bestName(candidates []entity.Customer) string {
	for _, c := range candidates {
		for _, n := range []string{c.CompanyName, c.DisplayName, c.Name} {
			if n = strings.TrimSpace(n); n != "" {
				return n
			}
		}
	}
	return ""
}
