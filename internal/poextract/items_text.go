package poextract

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// freeTextItems scans plain text for "<description> <qty> <rate> <price>"
// style lines. Scanning starts at the first item header line and stops at a
// short "Total" line. Lines seen before the header are only used when
// nothing was found after it.
func (e *Engine) freeTextItems(d *document) ([]entity.LineItem, bool) {
	var scanned, preHeader []entity.LineItem
	scanning := false

	for _, line := range d.lines {
		lower := strings.ToLower(line)
		if !scanning && constants.ContainsAny(lower, constants.ItemHeaderKeywords) {
			scanning = true
			continue
		}
		if isTotalLine(line, lower) {
			break
		}
		item, ok := e.textLineItem(line)
		if !ok {
			continue
		}
		if scanning {
			scanned = append(scanned, item)
		} else {
			preHeader = append(preHeader, item)
		}
	}

	if len(scanned) > 0 {
		return scanned, true
	}
	return preHeader, len(preHeader) > 0
}

func isTotalLine(line, lower string) bool {
	return strings.Contains(lower, "total") &&
		!strings.Contains(lower, "subtotal") &&
		utf8.RuneCountInString(line) < 40 &&
		reTotalLine.MatchString(lower)
}

// textLineItem splits a line into words and numbers and decides, from how
// many numbers it carries, whether it reads as a line item.
func (e *Engine) textLineItem(line string) (entity.LineItem, bool) {
	if reSlashDate.MatchString(line) {
		return entity.LineItem{}, false
	}

	var words []string
	var nums []float64
	for _, tok := range strings.Fields(stripMoney(line)) {
		if v, ok := parseNumber(tok); ok {
			nums = append(nums, v)
		} else {
			words = append(words, tok)
		}
	}

	desc := strings.Join(words, " ")
	if utf8.RuneCountInString(desc) < 3 {
		return entity.LineItem{}, false
	}
	if constants.ContainsAny(strings.ToLower(desc), constants.ItemContactKeywords) {
		return entity.LineItem{}, false
	}
	for _, n := range nums {
		if n < 0 {
			return entity.LineItem{}, false
		}
	}

	t := e.cfg.Items
	switch {
	case len(nums) >= 3:
		qty, rate, price := nums[len(nums)-3], nums[len(nums)-2], nums[len(nums)-1]
		if qty >= t.MaxQuantity || rate >= t.MaxRate {
			return entity.LineItem{}, false
		}
		calc := qty * rate
		tolerance := math.Max(t.MinPriceTolerance, calc*t.PriceTolerance)
		if math.Abs(calc-price) < tolerance || (price > 0 && price < t.MaxPrice) {
			return entity.LineItem{ProductName: desc, Quantity: qty, Rate: rate, Price: price}, true
		}
	case len(nums) == 2:
		qty, rate := nums[0], nums[1]
		if qty >= t.MaxQuantity || rate >= t.MaxRate {
			return entity.LineItem{}, false
		}
		if price := qty * rate; price < t.MaxPrice {
			return entity.LineItem{ProductName: desc, Quantity: qty, Rate: rate, Price: price}, true
		}
	case len(nums) == 1:
		price := nums[0]
		if hasLetter(desc) &&
			utf8.RuneCountInString(desc) > t.MinBareDescription &&
			price > t.MinBarePrice && price < t.MaxBarePrice &&
			!constants.HasAnyPrefix(strings.ToLower(desc), constants.ItemContinuationPrefixes) {
			return entity.LineItem{ProductName: desc, Quantity: 1, Rate: price, Price: price}, true
		}
	}
	return entity.LineItem{}, false
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
