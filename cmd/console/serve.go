package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"collabcore/internal/http/handler"
	"collabcore/internal/http/middleware"
	"collabcore/internal/otel"
	"collabcore/internal/workspace"
)

//go:generate swag init --dir ../../ --generalInfo cmd/console/serve.go --output ../../internal/docs --parseInternal --outputTypes go

// @title Collaboration Console API
// @version 1.0
// @description Project workspaces: phases, participations and participant notifications.
// @BasePath /
func newServeCmd() *cobra.Command {
	var (
		bodyLimitMB int
		retention   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the console API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(context.Background())

			sessions := workspace.NewSessions(rt.deps, rt.cfg.Console.ParticipationPageSize)
			defer sessions.CloseAll()

			prom, err := middleware.NewPrometheusMiddleware(rt.registry)
			if err != nil {
				return err
			}

			app := fiber.New(fiber.Config{
				ErrorHandler:          handler.ErrorHandler(),
				BodyLimit:             bodyLimitMB << 20,
				DisableStartupMessage: true,
			})
			app.Use(middleware.RequestID())
			app.Use(middleware.Tracing(!otel.Disabled()))
			app.Use(middleware.Logger(rt.cfg.Console.Location()))
			app.Use(prom.Handler())

			deps := handler.Deps{
				Sessions: sessions,
				Feed:     rt.feed,
				Journal:  rt.journal,
				Staging:  rt.staging,
				Gatherer: rt.registry,
			}
			if rt.db != nil {
				deps.DB = rt.db
			}
			handler.RegisterRoutes(app, deps)

			if rt.journal != nil && retention > 0 {
				go pruneLoop(ctx, rt, retention)
			}

			go func() {
				<-ctx.Done()
				if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
					rt.log.Error("server_shutdown_failed", "error", err)
				}
			}()

			addr := ":" + rt.cfg.Port
			rt.log.Info("server_listening", "addr", addr, "upstream", rt.cfg.Upstream.BaseURL,
				"journal", rt.journal != nil, "staging", rt.staging != nil)
			return app.Listen(addr)
		},
	}
	cmd.Flags().IntVar(&bodyLimitMB, "body-limit-mb", 32, "maximum request body size for uploads")
	cmd.Flags().DurationVar(&retention, "journal-retention", 30*24*time.Hour, "prune journaled notices older than this (0 keeps everything)")
	return cmd
}

// pruneLoop trims the notice journal once an hour until ctx ends.
func pruneLoop(ctx context.Context, rt *runtime, retention time.Duration) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		n, err := rt.journal.Prune(ctx, retention)
		if err != nil {
			rt.log.Warn("journal_prune_failed", "error", err)
		} else if n > 0 {
			rt.log.Info("journal_pruned", "removed", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
