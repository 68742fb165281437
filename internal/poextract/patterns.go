package poextract

import "regexp"

var (
	// "PO #: 4521-A", "Order Number 88 12", "PO No. X-7"; the value may carry
	// one inner space-separated word but never crosses a line.
	rePOLabeled = regexp.MustCompile(`(?i)(?:PO|Order)[ \t]*(?:#|Number|No\.?)?[ \t]*[:.]?[ \t]*([A-Za-z0-9][A-Za-z0-9_-]*(?:[ \t]+[A-Za-z0-9]+)?)\b`)
	rePOBare    = regexp.MustCompile(`(?i)PO[_-]\d+`)
	rePOHeader  = regexp.MustCompile(`(?:po|purchase order)\s*(?:#|number|no\.)`)

	reFullDate    = regexp.MustCompile(`(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun)\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},\s+\d{4}`)
	reNumericDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	reDateToken   = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)
	reSlashDate   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

	reLabelValueSep = regexp.MustCompile(`[:\t]`)
	reNumericOnly   = regexp.MustCompile(`^[\d\s\-/.]+$`)

	reBillToSameLine = regexp.MustCompile(`(?i)Bill To:\s*(.+?)(?:Ship To|Nutrition|$)`)
	reAttnLabel      = regexp.MustCompile(`(?i)(?:Bill To|ATTN):?`)
	reUSWord         = regexp.MustCompile(`\bus\b`)

	reFixedRowTail = regexp.MustCompile(`\$\s*([\d,]+\.\d{2})\s*\$\s*([\d,]+\.\d{2})$`)
	reFixedRowQty  = regexp.MustCompile(`(?i)(\d+)\s*(EACH.*)$`)
	reTotalLine    = regexp.MustCompile(`^\s*total`)

	reTotalAmount = regexp.MustCompile(`(?i)Total\s*(?:Amount)?\s*[:.]?\s*\$?([\d,]+\.\d{2})`)

	reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)
