package poextract

import (
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// document is the shared, read-only view every resolver works on.
type document struct {
	input entity.ExtractionInput
	text  string
	lines []string

	dates *labeledDateSet // filled on first use
}

func newDocument(in entity.ExtractionInput) *document {
	return &document{
		input: in,
		text:  in.Text,
		lines: strings.Split(in.Text, "\n"),
	}
}

// strategy is one way of resolving a field; ok=false means "try the next one".
type strategy[T any] func(d *document) (T, bool)

// firstOf runs strategies in order and returns the first resolved value.
func firstOf[T any](d *document, strategies ...strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(d); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// recordBuilder starts from an all-sentinel record. A field is only written
// while it still holds its sentinel, so the first resolved value wins.
type recordBuilder struct {
	rec            entity.ExtractedRecord
	amountResolved bool
}

func newRecordBuilder(sourceFile string) *recordBuilder {
	return &recordBuilder{rec: entity.NewUnknownRecord(sourceFile)}
}

func (b *recordBuilder) setString(dst *string, v string, ok bool) bool {
	if !ok || *dst != constants.Unknown || strings.TrimSpace(v) == "" {
		return false
	}
	*dst = v
	return true
}

// resolve fills dst from the first strategy that succeeds.
func (b *recordBuilder) resolve(dst *string, d *document, strategies ...strategy[string]) bool {
	v, ok := firstOf(d, strategies...)
	return b.setString(dst, v, ok)
}

func (b *recordBuilder) setItems(items []entity.LineItem, ok bool) bool {
	if !ok || len(b.rec.Items) > 0 || len(items) == 0 {
		return false
	}
	b.rec.Items = items
	return true
}

func (b *recordBuilder) setInvoiceAmount(v float64, ok bool) bool {
	if !ok || b.amountResolved || v < 0 {
		return false
	}
	b.rec.InvoiceAmount = v
	b.amountResolved = true
	return true
}

func (b *recordBuilder) build() entity.ExtractedRecord {
	out := b.rec
	out.Items = append([]entity.LineItem{}, b.rec.Items...)
	return out
}

func isUnknown(s string) bool { return s == constants.Unknown }
