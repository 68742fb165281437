package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/po-reader/constants"
	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/entity"
	"github.com/joseph-ayodele/po-reader/internal/poextract"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeAnalyzer struct {
	delay   time.Duration
	fail    map[string]bool
	running atomic.Int32
	peak    atomic.Int32
	runIDs  atomic.Int32
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, path string) (entity.ExtractionInput, error) {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if common.RunIDFromContext(ctx) != "" {
		f.runIDs.Add(1)
	}
	time.Sleep(f.delay)
	if f.fail[path] {
		return entity.ExtractionInput{}, fmt.Errorf("read %s: %w", path, common.ErrInvalidInput)
	}
	return entity.ExtractionInput{SourceFile: path, Text: "PO #: " + path + "-77"}, nil
}

func newEngine() *poextract.Engine {
	return poextract.NewEngine(poextract.Config{}, nil, quietLogger)
}

func TestRunner_Run(t *testing.T) {
	analyzer := &fakeAnalyzer{fail: map[string]bool{"b": true}}
	r := NewRunner(analyzer, newEngine(), quietLogger, WithWorkers(3))

	paths := []string{"a", "b", "c", "d"}
	jobs, stats, err := r.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	for i, j := range jobs {
		assert.Equal(t, paths[i], j.SourcePath)
		assert.NotNil(t, j.FinishedAt)
	}
	assert.Equal(t, string(constants.JobStatusFailed), jobs[1].Status)
	require.NotNil(t, jobs[1].ErrorMessage)
	assert.Contains(t, *jobs[1].ErrorMessage, "invalid input")
	assert.Nil(t, jobs[1].Record)

	assert.Equal(t, string(constants.JobStatusOK), jobs[3].Status)
	require.NotNil(t, jobs[3].Record)
	assert.Equal(t, "d-77", jobs[3].Record.PONumber)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)
	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, int32(4), analyzer.runIDs.Load())

	records := Records(jobs)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].SourceFile)
	assert.Equal(t, "c", records[1].SourceFile)
}

func TestRunner_RespectsWorkerLimit(t *testing.T) {
	analyzer := &fakeAnalyzer{delay: 10 * time.Millisecond}
	r := NewRunner(analyzer, newEngine(), quietLogger, WithWorkers(2))

	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("doc-%d", i)
	}
	_, stats, err := r.Run(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Succeeded)
	assert.LessOrEqual(t, analyzer.peak.Load(), int32(2))
}

func TestRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(&fakeAnalyzer{}, newEngine(), quietLogger)
	jobs, stats, err := r.Run(ctx, []string{"a", "b"})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, stats.Succeeded)
	for _, j := range jobs {
		assert.Equal(t, string(constants.JobStatusQueued), j.Status)
	}
}

func TestRunner_RunOne(t *testing.T) {
	r := NewRunner(&fakeAnalyzer{}, newEngine(), quietLogger, WithDocumentTimeout(time.Second))
	job := r.RunOne(context.Background(), "order-5.json")
	assert.Equal(t, string(constants.JobStatusOK), job.Status)
	assert.Equal(t, constants.JSON, job.Format)
	require.NotNil(t, job.Record)
	assert.Equal(t, "order-5", job.Record.PONumber)
}

type memoryStore struct {
	mu   sync.Mutex
	jobs map[string]entity.ExtractJob
	fail bool
}

func (m *memoryStore) SaveJob(_ context.Context, job *entity.ExtractJob) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jobs == nil {
		m.jobs = map[string]entity.ExtractJob{}
	}
	m.jobs[job.SourcePath] = *job
	return nil
}

func TestRunner_WithJobStore(t *testing.T) {
	store := &memoryStore{}
	r := NewRunner(&fakeAnalyzer{fail: map[string]bool{"b": true}}, newEngine(), quietLogger, WithJobStore(store))

	_, stats, err := r.Run(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, store.jobs, 2)
	assert.Equal(t, stats.RunID, store.jobs["a"].RunID)
	assert.Equal(t, string(constants.JobStatusOK), store.jobs["a"].Status)
	assert.Equal(t, string(constants.JobStatusFailed), store.jobs["b"].Status)
	assert.NotNil(t, store.jobs["b"].FinishedAt)

	failing := NewRunner(&fakeAnalyzer{}, newEngine(), quietLogger, WithJobStore(&memoryStore{fail: true}))
	job := failing.RunOne(context.Background(), "order-6.json")
	assert.Equal(t, string(constants.JobStatusOK), job.Status)
}
