package interfaces

//go:generate moq -out mocks/infra_mock.go -pkg mocks . SourceRepository TargetStore ErrorReporter JobNotifier

import (
	"context"

	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
)

// SourceRepository reads files from the source git repository
type SourceRepository interface {
	// ListFiles returns every file under dir at ref, relative to dir
	ListFiles(ctx context.Context, dir, ref string) ([]string, error)

	// FetchFile returns the raw content of the file at path and ref
	FetchFile(ctx context.Context, path, ref string) ([]byte, error)
}

// TargetStore writes files to the destination object store
type TargetStore interface {
	// WriteFile replaces the file at path with content, creating parents
	WriteFile(ctx context.Context, path string, content []byte) error

	// ListFiles returns every file under dir, relative to dir
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// Delete removes the file or directory at path
	Delete(ctx context.Context, path string, recursive bool) error
}

// ErrorReporter forwards failures to the telemetry channel
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}

// JobNotifier tells operators about sync jobs that did not fully succeed
type JobNotifier interface {
	NotifyJob(ctx context.Context, job *model.JobResult) error
}
