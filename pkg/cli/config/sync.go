package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/gitdbfs/pkg/usecase"
)

// Sync holds synchronization job configuration
type Sync struct {
	BasePath          string
	TargetBranch      string
	MaxAttempts       int
	UploadConcurrency int
	FolderConcurrency int
	Timeout           time.Duration
	OperationTimeout  time.Duration
}

// Flags returns CLI flags for sync configuration
func (c *Sync) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-path",
			Usage:       "Repository directory holding the version folders",
			Required:    true,
			Destination: &c.BasePath,
			Sources:     cli.EnvVars("GITDBFS_BASE_PATH"),
		},
		&cli.StringFlag{
			Name:        "target-branch",
			Usage:       "Only pushes to this branch are synchronized",
			Value:       usecase.DefaultTargetBranch,
			Destination: &c.TargetBranch,
			Sources:     cli.EnvVars("GITDBFS_TARGET_BRANCH"),
		},
		&cli.IntFlag{
			Name:        "sync-max-attempts",
			Usage:       "Attempts per remote call on transient failures",
			Value:       usecase.DefaultMaxAttempts,
			Destination: &c.MaxAttempts,
			Sources:     cli.EnvVars("GITDBFS_SYNC_MAX_ATTEMPTS"),
		},
		&cli.IntFlag{
			Name:        "sync-upload-concurrency",
			Usage:       "Concurrent file transfers per version folder",
			Value:       usecase.DefaultUploadConcurrency,
			Destination: &c.UploadConcurrency,
			Sources:     cli.EnvVars("GITDBFS_SYNC_UPLOAD_CONCURRENCY"),
		},
		&cli.IntFlag{
			Name:        "sync-folder-concurrency",
			Usage:       "Version folders synchronized concurrently",
			Value:       usecase.DefaultFolderConcurrency,
			Destination: &c.FolderConcurrency,
			Sources:     cli.EnvVars("GITDBFS_SYNC_FOLDER_CONCURRENCY"),
		},
		&cli.DurationFlag{
			Name:        "sync-timeout",
			Usage:       "Deadline of a whole sync job",
			Value:       5 * time.Minute,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("GITDBFS_SYNC_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "sync-operation-timeout",
			Usage:       "Deadline of a single GitHub or DBFS call",
			Value:       usecase.DefaultOperationTimeout,
			Destination: &c.OperationTimeout,
			Sources:     cli.EnvVars("GITDBFS_SYNC_OPERATION_TIMEOUT"),
		},
	}
}

// Options converts the configuration into use case options
func (c *Sync) Options() []usecase.SyncOption {
	return []usecase.SyncOption{
		usecase.WithBasePath(c.BasePath),
		usecase.WithTargetBranch(c.TargetBranch),
		usecase.WithMaxAttempts(c.MaxAttempts),
		usecase.WithUploadConcurrency(c.UploadConcurrency),
		usecase.WithFolderConcurrency(c.FolderConcurrency),
		usecase.WithOperationTimeout(c.OperationTimeout),
	}
}
