package batch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
	"github.com/joseph-ayodele/po-reader/internal/extract"
)

// JobStore persists finished jobs.
type JobStore interface {
	SaveJob(ctx context.Context, job *entity.ExtractJob) error
}

// Runner extracts purchase orders from many snapshot files concurrently.
type Runner struct {
	analyzer  extract.LayoutAnalyzer
	extractor extract.FieldExtractor
	store     JobStore
	logger    *slog.Logger
	workers   int
	timeout   time.Duration
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithDocumentTimeout bounds the time spent on a single document.
func WithDocumentTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithJobStore records every finished job. A failed save is logged and does
// not fail the document.
func WithJobStore(store JobStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

func NewRunner(analyzer extract.LayoutAnalyzer, extractor extract.FieldExtractor, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		analyzer:  analyzer,
		extractor: extractor,
		logger:    logger,
		workers:   4,
		timeout:   time.Minute,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Stats summarizes a run.
type Stats struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Run processes every path and returns one job per path, in input order.
// A document that cannot be read fails alone; only cancellation of ctx stops
// the run, in which case unstarted jobs stay QUEUED and ctx's error is returned.
func (r *Runner) Run(ctx context.Context, paths []string) ([]entity.ExtractJob, Stats, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	logger := r.logger.With("run_id", runID)

	jobs := make([]entity.ExtractJob, len(paths))
	for i, p := range paths {
		jobs[i] = newJob(p)
		jobs[i].RunID = runID
	}
	logger.Info("batch.start", "documents", len(paths), "workers", r.workers)

	var succeeded, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.process(gctx, &jobs[i])
			r.save(gctx, &jobs[i])
			if jobs[i].Status == string(constants.JobStatusOK) {
				succeeded.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	stats := Stats{
		RunID:     runID,
		Total:     len(paths),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
		Duration:  time.Since(start),
	}
	logger.Info("batch.done",
		"documents", stats.Total,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"duration_ms", stats.Duration.Milliseconds(),
	)
	return jobs, stats, err
}

// RunOne processes a single document outside of a batch.
func (r *Runner) RunOne(ctx context.Context, path string) entity.ExtractJob {
	job := newJob(path)
	r.process(ctx, &job)
	r.save(ctx, &job)
	return job
}

func (r *Runner) save(ctx context.Context, job *entity.ExtractJob) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveJob(ctx, job); err != nil {
		r.logger.Warn("batch.job.save_failed", "job_id", job.ID, "path", job.SourcePath, "error", err)
	}
}

func newJob(path string) entity.ExtractJob {
	return entity.ExtractJob{
		ID:         uuid.New(),
		SourcePath: path,
		Format:     constants.MapExtToFormat(filepath.Ext(path)),
		Status:     string(constants.JobStatusQueued),
	}
}

func (r *Runner) process(ctx context.Context, job *entity.ExtractJob) {
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()
	ctx = common.WithSourceFile(ctx, job.SourcePath)

	job.StartedAt = time.Now().UTC()
	job.Status = string(constants.JobStatusRunning)
	defer func() {
		finished := time.Now().UTC()
		job.FinishedAt = &finished
	}()

	in, err := r.analyzer.Analyze(ctx, job.SourcePath)
	if err != nil {
		msg := err.Error()
		job.Status = string(constants.JobStatusFailed)
		job.ErrorMessage = &msg
		r.logger.Warn("batch.document.failed", "job_id", job.ID, "path", job.SourcePath, "error", err)
		return
	}

	rec := r.extractor.ExtractFields(ctx, in)
	job.Record = &rec
	job.Status = string(constants.JobStatusOK)
	r.logger.Debug("batch.document.ok", "job_id", job.ID, "path", job.SourcePath, "items", len(rec.Items))
}

// Records returns the extracted records of the successful jobs, in order.
func Records(jobs []entity.ExtractJob) []entity.ExtractedRecord {
	out := make([]entity.ExtractedRecord, 0, len(jobs))
	for _, j := range jobs {
		if j.Record != nil {
			out = append(out, *j.Record)
		}
	}
	return out
}
