package poextract

import (
	"math"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
)

// parseNumber parses a plain decimal. NaN and infinities are not numbers here.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseQuantityCell reads "12", "1,200", "4 ea" or "6each"; anything else is 0.
func parseQuantityCell(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	for _, suffix := range constants.QuantityUnitSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	return nonNegative(parseNumber(s))
}

// parseMoneyCell reads "$1,234.50"; anything else is 0.
func parseMoneyCell(s string) float64 {
	return nonNegative(parseNumber(stripMoney(s)))
}

func stripMoney(s string) string {
	return strings.NewReplacer("$", "", ",", "").Replace(s)
}

func nonNegative(v float64, ok bool) float64 {
	if !ok || v < 0 {
		return 0
	}
	return v
}
