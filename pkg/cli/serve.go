package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gitdbfs/pkg/cli/config"
	controller "github.com/m-mizutani/gitdbfs/pkg/controller/http"
	sentryinfra "github.com/m-mizutani/gitdbfs/pkg/infra/sentry"
	"github.com/m-mizutani/gitdbfs/pkg/utils/async"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		dbfsCfg   config.DBFS
		syncCfg   config.Sync
		sentryCfg config.Sentry
		slackCfg  config.Slack
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, githubCfg.WebhookFlags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, dbfsCfg.Flags()...)
	flags = append(flags, syncCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server receiving push webhooks",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting gitdbfs server",
				slog.String("addr", serverCfg.Addr),
				slog.Bool("async", serverCfg.Async),
				slog.Any("github", githubCfg),
				slog.Any("dbfs", dbfsCfg),
				slog.Any("sync", syncCfg),
			)

			reporter, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer sentryinfra.Flush(2 * time.Second)

			syncUC, err := newSyncUseCase(&githubCfg, &dbfsCfg, &syncCfg, &slackCfg, reporter)
			if err != nil {
				return err
			}

			opts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
				controller.WithRepository(githubCfg.Repository),
				controller.WithJobTimeout(syncCfg.Timeout),
			}

			var dispatcher *async.Dispatcher
			if serverCfg.Async {
				dispatcher = async.NewDispatcher(syncCfg.Timeout, reporter)
				opts = append(opts, controller.WithDispatcher(dispatcher))
			}

			// Create HTTP server with options
			server, err := controller.NewServer(ctx, syncUC, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			if dispatcher != nil {
				logger.Info("Waiting for running sync jobs")
				waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), syncCfg.Timeout)
				defer cancel()
				if err := dispatcher.Wait(waitCtx); err != nil {
					logger.Warn("Sync jobs did not finish before shutdown", slog.Any("error", err))
				}
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
