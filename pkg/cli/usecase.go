package cli

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/cli/config"
	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/usecase"
)

// newSyncUseCase wires the GitHub source, the DBFS target, the reporter and
// the optional Slack notifier
func newSyncUseCase(githubCfg *config.GitHub, dbfsCfg *config.DBFS, syncCfg *config.Sync, slackCfg *config.Slack, reporter interfaces.ErrorReporter) (interfaces.SyncUseCase, error) {
	source, err := githubCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure GitHub client")
	}

	target, err := dbfsCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure DBFS client")
	}

	opts := append(syncCfg.Options(),
		usecase.WithRepository(githubCfg.Repository),
		usecase.WithTargetBasePath(dbfsCfg.BasePath),
		usecase.WithPrune(dbfsCfg.Prune),
	)
	if notifier := slackCfg.Configure(); notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}

	return usecase.NewSync(source, target, reporter, opts...), nil
}
