package poextract

import (
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
)

// scanLabeledDates scans date label lines. The value is taken from the label line
// itself, or from the line below when the label stands alone. The first value
// found for each field wins.
func scanLabeledDates(d *document) (order, delivery string) {
	for i, line := range d.lines {
		lower := strings.ToLower(line)
		if !constants.ContainsAny(lower, constants.DateLabelKeywords) {
			continue
		}
		value := findDate(line)
		if value == "" && i+1 < len(d.lines) {
			value = findDate(d.lines[i+1])
		}
		if value == "" {
			continue
		}
		if constants.ContainsAny(lower, constants.DeliveryLabelKeywords) {
			if delivery == "" {
				delivery = value
			}
		} else if order == "" {
			order = value
		}
	}
	return order, delivery
}

// findDate prefers a spelled-out date ("Mon Jan 2, 2006") over a numeric one.
func findDate(line string) string {
	if m := reFullDate.FindString(line); m != "" {
		return m
	}
	return reNumericDate.FindString(line)
}

type labeledDateSet struct {
	order, delivery string
}

// labeledDates scans the document once and reuses the result for both date
// fields.
func (d *document) labeledDates() labeledDateSet {
	if d.dates == nil {
		order, delivery := scanLabeledDates(d)
		d.dates = &labeledDateSet{order: order, delivery: delivery}
	}
	return *d.dates
}

func labeledOrderDate(d *document) (string, bool) {
	order := d.labeledDates().order
	return order, order != ""
}

func labeledDeliveryDate(d *document) (string, bool) {
	delivery := d.labeledDates().delivery
	return delivery, delivery != ""
}

// distinctDates lists the numeric dates in the text in order of appearance.
func distinctDates(d *document) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range reNumericDate.FindAllString(d.text, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// firstDateInText is the order date of last resort.
func firstDateInText(d *document) (string, bool) {
	dates := distinctDates(d)
	if len(dates) == 0 {
		return "", false
	}
	return dates[0], true
}

// secondDateInText is the delivery date of last resort: the second distinct
// date, or the only one when the text carries a single date.
func secondDateInText(d *document) (string, bool) {
	dates := distinctDates(d)
	switch len(dates) {
	case 0:
		return "", false
	case 1:
		return dates[0], true
	default:
		return dates[1], true
	}
}

// orderedBy reads the value after an "Ordered By:" style label.
func orderedBy(d *document) (string, bool) {
	for _, line := range d.lines {
		if !constants.ContainsAny(strings.ToLower(line), constants.OrderedByKeywords) {
			continue
		}
		parts := reLabelValueSep.Split(line, 2)
		if len(parts) < 2 {
			continue
		}
		if v := strings.TrimSpace(parts[1]); v != "" {
			return v, true
		}
	}
	return "", false
}
