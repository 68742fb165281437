package poextract

import "github.com/joseph-ayodele/po-reader/internal/entity"

// sumOfItems totals the resolved line items.
func sumOfItems(items []entity.LineItem) strategy[float64] {
	return func(*document) (float64, bool) {
		total := 0.0
		for _, it := range items {
			total += it.Price
		}
		return total, len(items) > 0
	}
}

// labeledTotal reads the amount after a "Total" or "Total Amount" label.
func labeledTotal(d *document) (float64, bool) {
	m := reTotalAmount.FindStringSubmatch(d.text)
	if m == nil {
		return 0, false
	}
	v, ok := parseNumber(stripMoney(m[1]))
	return v, ok && v > 0
}
