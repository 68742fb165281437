package extract

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

// SnapshotReader is a LayoutAnalyzer over files already produced by an
// external layout analysis step: a .json snapshot carrying text, tables and
// regions, or a bare .txt file carrying text only.
type SnapshotReader struct {
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewSnapshotReader(logger *slog.Logger) (*SnapshotReader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := CompileSchema(SnapshotJSONSchema())
	if err != nil {
		return nil, common.WrapError(err, "snapshot schema")
	}
	return &SnapshotReader{schema: schema, logger: logger}, nil
}

func (r *SnapshotReader) Analyze(ctx context.Context, path string) (entity.ExtractionInput, error) {
	if err := ctx.Err(); err != nil {
		return entity.ExtractionInput{}, err
	}
	start := time.Now()

	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		return entity.ExtractionInput{}, common.NewAppError("UNSUPPORTED_FORMAT", filepath.Base(path), common.ErrUnsupported)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Error("failed to read snapshot", "path", path, "error", err)
		return entity.ExtractionInput{}, common.WrapError(err, "read snapshot")
	}

	var in entity.ExtractionInput
	switch format {
	case constants.JSON:
		if err := ValidateJSON(r.schema, data); err != nil {
			return entity.ExtractionInput{}, common.NewAppError("INVALID_SNAPSHOT", filepath.Base(path), errors.Join(common.ErrInvalidInput, err))
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return entity.ExtractionInput{}, common.NewAppError("INVALID_SNAPSHOT", filepath.Base(path), errors.Join(common.ErrInvalidInput, err))
		}
	case constants.TXT:
		in.Text = string(data)
	}
	if in.SourceFile == "" {
		in.SourceFile = filepath.Base(path)
	}
	in.Text = normalizeText(in.Text)
	in.ShipToRegion = normalizeText(in.ShipToRegion)
	in.AttnRegion = normalizeText(in.AttnRegion)

	r.logger.Debug("snapshot.read",
		"path", path,
		"format", format,
		"tables", len(in.Tables),
		"text_len", len(in.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return in, nil
}
