package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joseph-ayodele/po-reader/internal/batch"
	"github.com/joseph-ayodele/po-reader/internal/common"
	"github.com/joseph-ayodele/po-reader/internal/customers"
	"github.com/joseph-ayodele/po-reader/internal/export"
	"github.com/joseph-ayodele/po-reader/internal/extract"
	"github.com/joseph-ayodele/po-reader/internal/poextract"
	"github.com/joseph-ayodele/po-reader/internal/repository"
)

var errNoDirectory = errors.New("no customer directory configured: use --inmem, --sqlite, SQLITE_PATH or DB_URL")

// app holds the wired services for one command invocation.
type app struct {
	cfg       *common.Config
	logger    *slog.Logger
	db        *repository.DB // nil when no directory is configured
	customers *customers.Service
	jobs      repository.ExtractJobRepository
	matcher   *customers.Matcher
	engine    *poextract.Engine
	runner    *batch.Runner
	export    *export.Service
}

func newApp(ctx context.Context, requireDB bool) (*app, error) {
	cfg := common.LoadConfig()
	if workers > 0 {
		cfg.Batch.Workers = workers
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if sqlitePath != "" {
		cfg.Database.SQLitePath = sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}
	db, err := openDirectory(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if db == nil && requireDB {
		return nil, errNoDirectory
	}
	a.db = db

	var dir customers.Directory
	opts := []batch.Option{batch.WithWorkers(cfg.Batch.Workers)}
	if db != nil {
		repo := repository.NewCustomerRepository(db, logger)
		a.customers = customers.NewService(repo, logger)
		a.jobs = repository.NewExtractJobRepository(db, logger)
		dir = repo
		opts = append(opts, batch.WithJobStore(a.jobs))
	}
	a.matcher = customers.NewMatcher(dir, logger)

	reader, err := extract.NewSnapshotReader(logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.engine = poextract.NewEngine(poextract.ConfigFromExtraction(cfg.Extraction), a.matcher, logger)
	a.runner = batch.NewRunner(reader, a.engine, logger, opts...)
	a.export = export.NewService(logger)
	return a, nil
}

// openDirectory picks the customer directory backend: in-memory SQLite,
// a SQLite file, Postgres, or none.
func openDirectory(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*repository.DB, error) {
	var (
		db  *repository.DB
		err error
	)
	switch {
	case inmem:
		db, err = repository.OpenSQLite(ctx, repository.InMemory, logger)
	case cfg.Database.SQLitePath != "":
		db, err = repository.OpenSQLite(ctx, cfg.Database.SQLitePath, logger)
	case cfg.Database.DSN != "":
		db, err = repository.Open(ctx, repository.ConfigFromDatabase(cfg.Database), logger)
	default:
		logger.Debug("no customer directory configured, naming customers from email domains only")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
