package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"collabcore/internal/config"
	"collabcore/internal/database"
	"collabcore/internal/database/migration"
	"collabcore/internal/engine"
	"collabcore/internal/logging"
	"collabcore/internal/metrics"
	"collabcore/internal/notice"
	"collabcore/internal/otel"
	"collabcore/internal/repository/postgres"
	"collabcore/internal/storage"
	"collabcore/internal/transport"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "console",
		Short:        "Project collaboration core: phases, participations and notifications",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Serve the console API
  console serve

  # Import participants from a local file or a staged object
  console import-csv --project p-42 ./participants.csv
  console import-csv --project p-42 --object staged/7f0c.csv

  # Drop journaled notices older than 30 days
  console notices prune --retention 720h
`),
	}
	cmd.AddCommand(newServeCmd(), newImportCSVCmd(), newNoticesCmd())
	return cmd
}

// newLogger builds the JSON logger used by every component. Timestamps are written
// under "ts" in loc, matching the request logger, and records logged with a request
// context carry its request_id.
func newLogger(w io.Writer, level string, loc *time.Location) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if loc == nil {
		loc = time.UTC
	}
	return slog.New(logging.NewContextHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	})))
}

// runtime holds what every command shares. Optional pieces stay nil when unconfigured.
type runtime struct {
	cfg      *config.AppConfig
	log      *slog.Logger
	db       *sql.DB
	journal  *notice.Journal
	staging  storage.Storage
	feed     *notice.Feed
	registry *prometheus.Registry
	deps     engine.Deps

	shutdownTracing otel.ShutdownFunc
}

func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := newLogger(os.Stdout, cfg.Console.LogLevel, cfg.Console.Location())
	slog.SetDefault(log)

	rt := &runtime{cfg: cfg, log: log, registry: prometheus.NewRegistry()}
	rt.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if rt.shutdownTracing, err = otel.Init(ctx, log); err != nil {
		return nil, err
	}

	ops, err := metrics.NewOperations(rt.registry)
	if err != nil {
		return nil, err
	}

	tr, err := transport.NewHTTP(cfg.Upstream)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Enabled() {
		rt.db, err = database.OpenJournal(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := migration.EnsureMigrated(ctx, rt.db, log, cfg.Database.Host); err != nil {
			rt.Close(ctx)
			return nil, err
		}
		rt.journal = notice.NewJournal(postgres.NewNoticePostgres(rt.db), log.With("component", "journal"))
	}

	if cfg.MinIO.Enabled() {
		rt.staging, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			rt.Close(ctx)
			return nil, err
		}
	}

	rt.feed = notice.NewFeed(cfg.Console.NoticeFeedSize)
	notifiers := notice.Fanout{notice.NewLogger(log), rt.feed}
	if rt.journal != nil {
		notifiers = append(notifiers, rt.journal)
	}

	rt.deps = engine.Deps{
		Transport: tr,
		Notifier:  notifiers,
		Logger:    log,
		Ops:       ops,
	}
	return rt, nil
}

var errStagingDisabled = errors.New("object storage is not configured (MINIO_ENDPOINT)")

func (rt *runtime) Close(ctx context.Context) {
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			rt.log.Warn("journal_close_failed", "error", err)
		}
	}
	if rt.shutdownTracing != nil {
		if err := rt.shutdownTracing(ctx); err != nil {
			rt.log.Warn("tracing_shutdown_failed", "error", err)
		}
	}
}
