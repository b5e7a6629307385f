package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . SyncUseCase

import (
	"context"

	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
)

// SyncUseCase defines the push-to-DBFS synchronization pipeline
type SyncUseCase interface {
	// HandlePush parses a push webhook and re-publishes every touched version folder
	HandlePush(ctx context.Context, event *model.WebhookEvent) (*model.JobResult, error)

	// SyncFolders re-publishes the given version folders as of ref
	SyncFolders(ctx context.Context, ref string, folders []model.VersionFolderID) (*model.JobResult, error)
}
