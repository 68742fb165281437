package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/po-reader/internal/common"
)

// InMemory is the SQLite path that keeps the directory in process memory.
const InMemory = ":memory:"

type Config struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ConfigFromDatabase maps the environment-driven settings onto a pool Config.
func ConfigFromDatabase(c common.DatabaseConfig) Config {
	return Config{
		DSN:              c.DSN,
		MaxConns:         c.MaxConns,
		MinConns:         c.MinConns,
		MaxConnLifetime:  c.MaxConnLifetime,
		MaxConnIdleTime:  c.MaxConnIdleTime,
		DialTimeout:      c.DialTimeout,
		StatementTimeout: c.StatementTimeout,
	}
}

// DB is an open customer directory database: an ent SQL driver over either a
// pgx pool or a SQLite handle.
type DB struct {
	Driver *entsql.Driver
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open creates a pgx pool and wraps it for ent.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "driver", dialect.Postgres)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, common.DatabaseError("parse DSN", err)
	}

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "po-reader"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.StatementTimeout.Milliseconds())
	}

	dialCtx, cancel := common.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, common.DatabaseError("connect", err)
	}

	// Wrap pool as *sql.DB for ent
	db := stdlib.OpenDBFromPool(pool)
	drv := entsql.OpenDB(dialect.Postgres, db)

	logger.Info("successfully connected to database")
	return &DB{Driver: drv, pool: pool, logger: logger}, nil
}

// OpenSQLite opens a SQLite directory at path, or in memory for InMemory.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*DB, error) {
	dsn := path
	if path != InMemory {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	logger.Info("opening sqlite database", "path", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, common.DatabaseError("open sqlite", err)
	}
	if path == InMemory {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, common.DatabaseError("open sqlite", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	return &DB{Driver: drv, logger: logger}, nil
}

// Dialect reports the SQL dialect queries must be built for.
func (d *DB) Dialect() string {
	return d.Driver.Dialect()
}

// Close closes the database connections gracefully
func (d *DB) Close() {
	d.logger.Info("closing database connections")
	if err := d.Driver.Close(); err != nil {
		d.logger.Error("failed to close ent driver", "error", err)
	}
	if d.pool != nil {
		d.pool.Close()
	}
	d.logger.Info("database connections closed")
}

// HealthCheck pings the database to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := common.WithTimeout(ctx, timeout)
	defer cancel()

	d.logger.Debug("pinging database")
	var err error
	if d.pool != nil {
		err = d.pool.Ping(ctx)
	} else {
		err = d.Driver.DB().PingContext(ctx)
	}
	if err != nil {
		return common.DatabaseError("ping", err)
	}
	d.logger.Debug("database ping successful")
	return nil
}

// Migrate creates the directory and job tables if they do not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	for _, t := range tables {
		for _, stmt := range t.createStatements(d.Dialect()) {
			if err := d.Driver.Exec(ctx, stmt, []any{}, nil); err != nil {
				return common.DatabaseError("migrate "+t.Name, err)
			}
		}
	}
	d.logger.Debug("database schema ready", "dialect", d.Dialect())
	return nil
}
