package poextract

import (
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// fixedLayoutItems reads the "Product Code / Item Name / Qty" layout where
// every row ends in "<qty> EACH ... $<rate> $<price>".
func fixedLayoutItems(d *document) ([]entity.LineItem, bool) {
	start := -1
	for i, line := range d.lines {
		lower := strings.ToLower(line)
		if constants.CountMatches(lower, constants.FixedItemHeaderKeywords) == len(constants.FixedItemHeaderKeywords) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}

	var items []entity.LineItem
	for _, line := range d.lines[start+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(strings.ToLower(line), "total") {
			break
		}
		if item, ok := fixedLayoutRow(line); ok {
			items = append(items, item)
		}
	}
	return items, len(items) > 0
}

func fixedLayoutRow(line string) (entity.LineItem, bool) {
	tail := reFixedRowTail.FindStringSubmatchIndex(line)
	if tail == nil {
		return entity.LineItem{}, false
	}
	rate, _ := parseNumber(stripMoney(line[tail[2]:tail[3]]))
	price, _ := parseNumber(stripMoney(line[tail[4]:tail[5]]))

	head := strings.TrimSpace(line[:tail[0]])
	qtyIdx := reFixedRowQty.FindStringSubmatchIndex(head)
	if qtyIdx == nil {
		return entity.LineItem{}, false
	}
	qty, _ := parseNumber(head[qtyIdx[2]:qtyIdx[3]])

	name := collapseFirstSpace(strings.TrimSpace(head[:qtyIdx[0]]))
	if name == "" {
		return entity.LineItem{}, false
	}
	return entity.LineItem{ProductName: name, Quantity: qty, Rate: rate, Price: price}, true
}

// collapseFirstSpace joins the product code and item name with one space.
func collapseFirstSpace(s string) string {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s
	}
	return s[:i] + " " + strings.TrimLeft(s[i:], " \t")
}
