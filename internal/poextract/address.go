package poextract

import (
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
)

const addressWindow = 8

// resolveAddresses fills the billing and delivery addresses, falls back to
// the delivery address for billing when no billing address was found, and
// finally derives the customer name from the billing address if nothing else
// named it.
func resolveAddresses(d *document, b *recordBuilder) {
	b.resolve(&b.rec.CustomerAddress, d,
		billToSameLine,
		billToWindow,
		attnRegionAddress,
		addressBlock("bill to:"),
		addressBlock("bill to"),
	)
	b.resolve(&b.rec.DeliveryAddress, d,
		shipToRegionAddress,
		addressBlock("ship to"),
	)

	b.setString(&b.rec.CustomerAddress, b.rec.DeliveryAddress, !isUnknown(b.rec.DeliveryAddress))

	name, ok := customerFromAddress(b.rec.CustomerAddress)
	b.setString(&b.rec.Customer, name, ok)
}

// billToSameLine reads "Bill To: <value>" written on a single line, cutting
// the value at a following "Ship To" column.
func billToSameLine(d *document) (string, bool) {
	for _, line := range d.lines {
		if !strings.Contains(strings.ToLower(line), "bill to") {
			continue
		}
		m := reBillToSameLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

// billToWindow collects the lines between the Bill To label and the Ship To
// label, or the next few lines when Ship To comes first or is absent.
func billToWindow(d *document) (string, bool) {
	billIdx, shipIdx := -1, -1
	for i, line := range d.lines {
		lower := strings.ToLower(line)
		if billIdx < 0 && strings.Contains(lower, "bill to") {
			billIdx = i
		}
		if shipIdx < 0 && strings.Contains(lower, "ship to") {
			shipIdx = i
		}
	}
	if billIdx < 0 {
		return "", false
	}

	end := min(billIdx+addressWindow, len(d.lines))
	if shipIdx > billIdx {
		end = shipIdx
	}

	var parts []string
	for _, line := range d.lines[billIdx+1 : end] {
		s := strings.TrimSpace(line)
		if constants.ContainsAny(strings.ToLower(s), constants.BillToWindowStopwords) {
			break
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return joinLines(parts)
}

// attnRegionAddress reads the ATTN: region supplied by the layout analyzer.
func attnRegionAddress(d *document) (string, bool) {
	lines := nonBlankLines(d.input.AttnRegion)
	if len(lines) > 0 {
		first := strings.TrimSpace(reAttnLabel.ReplaceAllString(lines[0], ""))
		if first == "" {
			lines = lines[1:]
		} else {
			lines[0] = first
		}
	}
	return collectUntilCountry(lines, constants.AttnRegionStopwords)
}

// shipToRegionAddress reads the Ship To region, skipping the customer-name
// line that opens it.
func shipToRegionAddress(d *document) (string, bool) {
	lines := shipToRegionLines(d)
	if len(lines) > 0 && !startsWithDigit(lines[0]) {
		lines = lines[1:]
	}
	return collectUntilCountry(lines, constants.ShipToRegionStopwords)
}

// addressBlock returns a strategy reading up to the next few lines after the
// first line containing keyword.
func addressBlock(keyword string) strategy[string] {
	return func(d *document) (string, bool) {
		start := -1
		for i, line := range d.lines {
			if strings.Contains(strings.ToLower(line), keyword) {
				start = i
				break
			}
		}
		if start < 0 {
			return "", false
		}

		end := min(start+addressWindow, len(d.lines))
		var parts []string
		for _, line := range d.lines[start+1 : end] {
			if constants.ContainsAny(strings.ToLower(line), constants.AddressBlockStopwords) {
				break
			}
			if s := strings.TrimSpace(line); s != "" {
				parts = append(parts, s)
			}
		}
		return joinLines(parts)
	}
}

// collectUntilCountry accumulates lines until a stopword, including the line
// that names the country.
func collectUntilCountry(lines []string, stopwords []string) (string, bool) {
	var parts []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if constants.ContainsAny(lower, stopwords) {
			break
		}
		parts = append(parts, line)
		if isCountryLine(lower) {
			break
		}
	}
	return joinLines(parts)
}

func isCountryLine(lower string) bool {
	return constants.ContainsAny(lower, constants.CountryTokens) || reUSWord.MatchString(lower)
}

func joinLines(parts []string) (string, bool) {
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
