package extract

import (
	"context"

	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// LayoutAnalyzer is Stage 1: document -> text, tables and cropped regions.
type LayoutAnalyzer interface {
	Analyze(ctx context.Context, path string) (entity.ExtractionInput, error)
}

// FieldExtractor is Stage 2: layout snapshot -> purchase-order record.
// Extraction never fails; unresolved fields carry their sentinel.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, in entity.ExtractionInput) entity.ExtractedRecord
}
