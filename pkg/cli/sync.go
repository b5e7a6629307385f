package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gitdbfs/pkg/cli/config"
	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
	sentryinfra "github.com/m-mizutani/gitdbfs/pkg/infra/sentry"
)

func cmdSync() *cli.Command {
	var (
		githubCfg config.GitHub
		dbfsCfg   config.DBFS
		syncCfg   config.Sync
		sentryCfg config.Sentry
		slackCfg  config.Slack
		folders   []string
		ref       string
	)

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "folder",
			Aliases:     []string{"f"},
			Usage:       "Version folder to publish (repeatable)",
			Required:    true,
			Destination: &folders,
		},
		&cli.StringFlag{
			Name:        "ref",
			Usage:       "Git ref to read files at (default: target branch)",
			Destination: &ref,
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, dbfsCfg.Flags()...)
	flags = append(flags, syncCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Publish version folders once without a webhook",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			if ref == "" {
				ref = syncCfg.TargetBranch
			}

			reporter, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer sentryinfra.Flush(2 * time.Second)

			syncUC, err := newSyncUseCase(&githubCfg, &dbfsCfg, &syncCfg, &slackCfg, reporter)
			if err != nil {
				return err
			}

			ids := make([]model.VersionFolderID, 0, len(folders))
			for _, f := range folders {
				ids = append(ids, model.VersionFolderID(f))
			}

			logger.Info("Starting manual sync", slog.String("ref", ref), slog.Any("folders", ids))

			ctx, cancel := context.WithTimeout(ctx, syncCfg.Timeout)
			defer cancel()

			result, err := syncUC.SyncFolders(ctx, ref, ids)
			if result != nil {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if encErr := encoder.Encode(result); encErr != nil {
					logger.Error("Failed to encode sync result", slog.Any("error", encErr))
				}
			}
			if err != nil {
				return err
			}

			if result.Outcome == model.OutcomePartial {
				return goerr.New("sync completed with failures",
					goerr.V("job_id", result.ID),
					goerr.V("failed", result.FailedCount()),
				)
			}
			return nil
		},
	}
}
