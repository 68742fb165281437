package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
)

var (
	extractJobsTable  = extractJobsSchema.Name
	extractJobColumns = extractJobsSchema.columnNames()
)

type ExtractJobRepository interface {
	SaveJob(ctx context.Context, job *entity.ExtractJob) error
	// List returns the most recent jobs first; an empty runID lists every run.
	List(ctx context.Context, runID string, limit int) ([]entity.ExtractJob, error)
}

type extractJobRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewExtractJobRepository(db *DB, logger *slog.Logger) ExtractJobRepository {
	return &extractJobRepo{db: db, logger: logger}
}

func (r *extractJobRepo) SaveJob(ctx context.Context, job *entity.ExtractJob) error {
	var record any
	if job.Record != nil {
		b, err := json.Marshal(job.Record)
		if err != nil {
			return common.WrapError(err, "marshal record")
		}
		record = string(b)
	}
	var finished any
	if job.FinishedAt != nil {
		finished = job.FinishedAt.UnixNano()
	}
	var errMsg any
	if job.ErrorMessage != nil {
		errMsg = *job.ErrorMessage
	}

	query, args := entsql.Dialect(r.db.Dialect()).
		Insert(extractJobsTable).
		Columns(extractJobColumns...).
		Values(job.ID.String(), job.RunID, job.SourcePath, job.Format, job.Status,
			errMsg, job.StartedAt.UnixNano(), finished, record).
		Query()
	if err := r.db.Driver.Exec(ctx, query, args, nil); err != nil {
		r.logger.Error("extract_job save failed", "job_id", job.ID, "err", err)
		return common.DatabaseError("save extract job", err)
	}
	r.logger.Debug("extract_job saved", "job_id", job.ID, "status", job.Status)
	return nil
}

func (r *extractJobRepo) List(ctx context.Context, runID string, limit int) ([]entity.ExtractJob, error) {
	sel := entsql.Dialect(r.db.Dialect()).
		Select(extractJobColumns...).
		From(entsql.Table(extractJobsTable)).
		OrderBy(entsql.Desc("started_at"), "source_path")
	if runID != "" {
		sel.Where(entsql.EQ("run_id", runID))
	}
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &rows); err != nil {
		return nil, common.DatabaseError("query extract jobs", err)
	}
	defer rows.Close()

	var out []entity.ExtractJob
	for rows.Next() {
		var (
			j        entity.ExtractJob
			id       string
			errMsg   sql.NullString
			started  int64
			finished sql.NullInt64
			record   sql.NullString
		)
		if err := rows.Scan(&id, &j.RunID, &j.SourcePath, &j.Format, &j.Status,
			&errMsg, &started, &finished, &record); err != nil {
			return nil, common.DatabaseError("scan extract job", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, common.DatabaseError("scan extract job id", err)
		}
		j.ID = parsed
		j.StartedAt = time.Unix(0, started).UTC()
		if finished.Valid {
			t := time.Unix(0, finished.Int64).UTC()
			j.FinishedAt = &t
		}
		if errMsg.Valid {
			msg := errMsg.String
			j.ErrorMessage = &msg
		}
		if record.Valid {
			var rec entity.ExtractedRecord
			if err := json.Unmarshal([]byte(record.String), &rec); err != nil {
				return nil, common.WrapError(err, "decode extract job record")
			}
			j.Record = &rec
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, common.DatabaseError("iterate extract jobs", err)
	}
	return out, nil
}
