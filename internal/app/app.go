// Package app wires configuration, storage, text correction and the import
// pipeline for the command-line entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/dictionary-importer/internal/adapter/postgres"
	"github.com/heartmarshall/dictionary-importer/internal/adapter/postgres/parsed"
	"github.com/heartmarshall/dictionary-importer/internal/adapter/sqlite"
	"github.com/heartmarshall/dictionary-importer/internal/app/importer"
	"github.com/heartmarshall/dictionary-importer/internal/config"
	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/rewrite"
)

// ErrPhasesFailed is returned by Import when at least one phase failed.
var ErrPhasesFailed = errors.New("one or more import phases failed")

// ErrNoStore is returned for operations that need a sink when none is configured.
var ErrNoStore = errors.New("no sink configured")

// Store is a sink that can also report what it holds.
type Store interface {
	importer.Sink
	CountBySource(ctx context.Context) (map[domain.SourceCode]int, error)
}

// pgStore joins the PostgreSQL repository with its transaction manager.
type pgStore struct {
	*parsed.Repo
	*postgres.TxManager
}

// OpenStore opens the configured sink. It returns a nil Store for
// config.SinkNone. The returned close func is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, func(), error) {
	switch cfg.Sink.Kind {
	case config.SinkPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect to database: %w", err)
		}
		return pgStore{Repo: parsed.New(pool), TxManager: postgres.NewTxManager(pool)}, pool.Close, nil
	case config.SinkSQLite:
		db, err := sqlite.Open(ctx, cfg.Sink.SQLitePath, log)
		if err != nil {
			return nil, func() {}, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.SinkNone:
		return nil, func() {}, nil
	}
	return nil, func() {}, fmt.Errorf("unknown sink kind %q", cfg.Sink.Kind)
}

// App runs import operations against one configuration.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	guard *rewrite.Guard
}

// New creates an App. Text correction is wired in when enabled.
func New(cfg *config.Config, log *slog.Logger) *App {
	a := &App{cfg: cfg, log: log}
	if cfg.Rewrite.Enabled() {
		a.guard = rewrite.NewGuard(rewrite.NewRuleCorrector(), cfg.Rewrite.Timeout, log)
	}
	return a
}

func (a *App) pipeline(store Store) *importer.Pipeline {
	var (
		sink importer.Sink
		rw   importer.Rewriter
	)
	if store != nil {
		sink = store
	}
	if a.guard != nil {
		rw = a.guard
	}
	return importer.NewPipeline(a.log, sink, rw, importer.NewConfig(a.cfg.Import, a.cfg.Rewrite))
}

// Import runs the import phases. An empty phases list falls back to the
// configured phase filter.
func (a *App) Import(ctx context.Context, phases []domain.SourceCode) error {
	if len(phases) == 0 {
		phases = a.cfg.Import.Phases
	}

	a.log.Info("starting import",
		slog.String("version", BuildVersion()),
		slog.String("sink", a.cfg.Sink.Kind),
		slog.Bool("dry_run", a.cfg.Import.DryRun),
		slog.Int("workers", a.cfg.Import.Workers),
		slog.String("rewrite", a.cfg.Rewrite.Mode),
	)

	var store Store
	if !a.cfg.Import.DryRun {
		s, closeStore, err := OpenStore(ctx, a.cfg, a.log)
		if err != nil {
			return err
		}
		defer closeStore()
		store = s
	}

	p := a.pipeline(store)
	if err := p.Run(ctx, phases); err != nil {
		return err
	}
	a.logRewriteStats()

	if p.HasErrors() {
		return ErrPhasesFailed
	}
	return nil
}

// Dump parses one file and writes every record to w as a JSON line.
func (a *App) Dump(ctx context.Context, code domain.SourceCode, in config.SourceInput, w io.Writer) (importer.PhaseResult, error) {
	res, err := a.pipeline(nil).Dump(ctx, code, in, w)
	a.logRewriteStats()
	return res, err
}

// Counts reports stored records per source.
func (a *App) Counts(ctx context.Context) (map[domain.SourceCode]int, error) {
	store, closeStore, err := OpenStore(ctx, a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	if store == nil {
		return nil, ErrNoStore
	}
	return store.CountBySource(ctx)
}

// Migrate applies schema migrations to the configured sink.
func (a *App) Migrate(ctx context.Context) error {
	switch a.cfg.Sink.Kind {
	case config.SinkPostgres:
		return postgres.Migrate(ctx, a.cfg.Database.DSN, a.log)
	case config.SinkSQLite:
		// Opening applies the schema.
		_, closeStore, err := OpenStore(ctx, a.cfg, a.log)
		closeStore()
		return err
	}
	return ErrNoStore
}

func (a *App) logRewriteStats() {
	if a.guard == nil {
		return
	}
	s := a.guard.Stats()
	a.log.Info("rewrite stats",
		slog.Int64("rewrites", s.Rewrites),
		slog.Int64("timeouts", s.Timeouts),
		slog.Int64("failures", s.Failures),
	)
}
