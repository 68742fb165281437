package poextract

import (
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// itemColumns holds the header positions of each column role, -1 when absent.
type itemColumns struct {
	qty, desc, rate, amount int
}

// mapItemColumns assigns roles by header position. Each cell is checked for
// quantity, description, amount and rate in that order; a later cell claiming
// the same role replaces an earlier one.
func mapItemColumns(header []string) itemColumns {
	cols := itemColumns{qty: -1, desc: -1, rate: -1, amount: -1}
	for i, cell := range header {
		switch {
		case constants.ContainsAny(cell, constants.QuantityColumnKeywords):
			cols.qty = i
		case constants.ContainsAny(cell, constants.DescriptionColumnKeywords):
			cols.desc = i
		case constants.ContainsAny(cell, constants.AmountColumnKeywords):
			cols.amount = i
		case constants.ContainsAny(cell, constants.RateColumnKeywords):
			cols.rate = i
		}
	}
	return cols
}

// tableItems reads line items from every detected table whose header row
// looks like an item table.
func tableItems(d *document) ([]entity.LineItem, bool) {
	var items []entity.LineItem
	for _, table := range d.input.Tables {
		if len(table) < 2 {
			continue
		}
		header := make([]string, len(table[0]))
		for i, cell := range table[0] {
			header[i] = strings.ToLower(strings.TrimSpace(cell))
		}
		if !isItemHeader(header) {
			continue
		}
		cols := mapItemColumns(header)
		if cols.desc < 0 {
			continue
		}
		for _, row := range table[1:] {
			if item, ok := tableRowItem(row, cols); ok {
				items = append(items, item)
			}
		}
	}
	return items, len(items) > 0
}

func isItemHeader(header []string) bool {
	for _, cell := range header {
		if cell != "" && constants.ContainsAny(cell, constants.TableHeaderKeywords) {
			return true
		}
	}
	return false
}

func tableRowItem(row []string, cols itemColumns) (entity.LineItem, bool) {
	if isBlankRow(row) {
		return entity.LineItem{}, false
	}
	item := entity.LineItem{ProductName: cellAt(row, cols.desc)}
	if s := cellAt(row, cols.qty); s != "" {
		item.Quantity = parseQuantityCell(s)
	}
	if s := cellAt(row, cols.rate); s != "" {
		item.Rate = parseMoneyCell(s)
	}
	if s := cellAt(row, cols.amount); s != "" {
		item.Price = parseMoneyCell(s)
	}
	if item.Price == 0 && item.Quantity > 0 && item.Rate > 0 {
		item.Price = item.Quantity * item.Rate
	}

	if item.ProductName == "" {
		return entity.LineItem{}, false
	}
	if item.Quantity <= 0 && item.Rate <= 0 && item.Price <= 0 {
		return entity.LineItem{}, false
	}
	return item, true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
