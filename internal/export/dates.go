package export

import (
	"strings"
	"time"

	"github.com/joseph-ayodele/po-reader/constants"
)

// dateLayouts are tried in order. Month-first wins when both readings are valid.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1-2-2006",
	"2/1/2006", // day-first, only reached when the month would exceed 12
	"2-1-2006",
	"2006/1/2",
	"1/2/06",
	"1-2-06",
	"2/1/06",
	"Mon Jan 2, 2006",
}

// NormalizeDate converts a date as matched in a purchase order to YYYY-MM-DD.
func NormalizeDate(raw string) (string, bool) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" || s == constants.Unknown {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
