package constants

import "strings"

// Unknown is the sentinel stored in every string field the extractor could not resolve.
const Unknown = "Unknown"

// Keyword tables used by the purchase-order field resolvers. All entries are
// lowercase and are matched as substrings of a lowercased line unless noted.
var (
	// NameHeaderKeywords marks lines that can never be the customer name.
	NameHeaderKeywords = []string{"purchase order", "invoice", "bill to", "ship to", "page", "date", "po #"}

	// POLabelWords are rejected when a PO regex captures one of them (exact, lowercase).
	POLabelWords = []string{"po", "order", "number", "no", "no.", "invoice", "date", "attn", "attn:"}

	// POTokenStopwords are skipped when collecting PO candidates below a label line (exact, lowercase).
	POTokenStopwords = []string{"net", "30", "terms", "date", "united", "states"}

	// DateLabelKeywords selects lines that may carry an order or delivery date.
	DateLabelKeywords = []string{"date", "delivery", "ship", "due"}

	// DeliveryLabelKeywords classifies a date label line as a delivery date.
	DeliveryLabelKeywords = []string{"delivery", "ship", "due"}

	// OrderedByKeywords marks the requester line.
	OrderedByKeywords = []string{"ordered by", "buyer", "requester"}

	// BillToWindowStopwords end the block between the Bill To and Ship To labels.
	BillToWindowStopwords = []string{"ship to", "delivery:", "account #", "po #", "po#", "terms:", "ordered by:", "status:", "product code", "item name"}

	// AttnRegionStopwords end the address read from the ATTN: region.
	AttnRegionStopwords = []string{"date:", "po #", "po#", "vendor", "ship to", "delivery:", "account #", "product code", "item name"}

	// ShipToRegionStopwords end the address read from the Ship To region.
	ShipToRegionStopwords = []string{"terms", "net 30", "order qty", "unit cost", "amount", "total", "requested", "r e q u e s t e d", "product code", "item name", "extended cost"}

	// AddressBlockStopwords end a generic "bill to" / "ship to" block.
	AddressBlockStopwords = []string{"ship to:", "bill to:", "item", "qty", "total", "delivery:", "account #", "po #", "po#", "terms:", "ordered by:", "product code", "item name", "extended cost"}

	// CountryTokens terminate an address block, inclusively. The bare "us"
	// token is matched as a whole word separately.
	CountryTokens = []string{"united states", "usa", "u.s.a"}

	// TableHeaderKeywords qualifies a detected table as a line-item table.
	TableHeaderKeywords = []string{"qty", "quantity", "units", "count", "description", "item", "product", "material", "sku", "amount", "price", "rate", "cost", "total"}

	// Column role keywords, checked in this order for each header cell.
	QuantityColumnKeywords    = []string{"qty", "quantity", "units", "count"}
	DescriptionColumnKeywords = []string{"description", "item", "product", "material", "sku", "details"}
	AmountColumnKeywords      = []string{"amount", "total", "ext price", "extended"}
	RateColumnKeywords        = []string{"rate", "price", "unit", "cost"}

	// QuantityUnitSuffixes are stripped from the end of a quantity cell.
	QuantityUnitSuffixes = []string{"each", "ea", "pcs", "pc"}

	// FixedItemHeaderKeywords must all appear on the header line of the
	// "product code / item name / qty" layout.
	FixedItemHeaderKeywords = []string{"product code", "item name", "qty"}

	// ItemHeaderKeywords starts the free-text line-item scan.
	ItemHeaderKeywords = []string{"item", "description", "qty", "quantity", "product", "material", "service", "part", "sku", "details", "unit price", "amount", "price"}

	// ItemContactKeywords disqualifies a free-text item candidate.
	ItemContactKeywords = []string{"page", "phone", "fax", "email", "bill to", "ship to"}

	// ItemContinuationPrefixes disqualifies single-number item lines that
	// look like the tail of a wrapped description.
	ItemContinuationPrefixes = []string{"oz)", "--", "and", "with", "the"}

	// FinanceEmailPrefixes ranks customer addresses, highest priority first.
	FinanceEmailPrefixes = []string{"ap@", "finance@", "accounts@", "billing@", "orders@", "accounting@", "payable@", "accountspayable@", "invoices@"}
)

// ContainsAny reports whether s contains any of the keywords.
func ContainsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// CountMatches returns how many keywords occur in s.
func CountMatches(s string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(s, k) {
			n++
		}
	}
	return n
}

// IsOneOf reports whether s equals one of the values.
func IsOneOf(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}

// HasAnyPrefix reports whether s starts with any of the prefixes.
func HasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
