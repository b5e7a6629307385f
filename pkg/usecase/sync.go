package usecase

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

const (
	DefaultTargetBranch      = "main"
	DefaultMaxAttempts       = 3
	DefaultUploadConcurrency = 4
	DefaultFolderConcurrency = 4
	DefaultOperationTimeout  = time.Minute
)

type syncConfig struct {
	repository        string
	targetBranch      string
	basePath          string
	targetBasePath    string
	prune             bool
	maxAttempts       int
	uploadConcurrency int
	folderConcurrency int
	operationTimeout  time.Duration
	newBackOff        func() backoff.BackOff
	notifier          interfaces.JobNotifier
}

// SyncOption configures the sync use case
type SyncOption func(*syncConfig)

// WithRepository restricts pushes to the given "owner/name" repository
func WithRepository(repository string) SyncOption {
	return func(c *syncConfig) {
		c.repository = repository
	}
}

// WithTargetBranch sets the only branch whose pushes are synchronized
func WithTargetBranch(branch string) SyncOption {
	return func(c *syncConfig) {
		c.targetBranch = branch
	}
}

// WithBasePath sets the repository directory holding the version folders
func WithBasePath(p string) SyncOption {
	return func(c *syncConfig) {
		c.basePath = strings.Trim(p, "/")
	}
}

// WithTargetBasePath sets the DBFS directory version folders are published under
func WithTargetBasePath(p string) SyncOption {
	return func(c *syncConfig) {
		c.targetBasePath = p
	}
}

// WithPrune enables deletion of target files that no longer exist in the source
func WithPrune(enabled bool) SyncOption {
	return func(c *syncConfig) {
		c.prune = enabled
	}
}

// WithMaxAttempts sets how many times a transient failure is tried in total
func WithMaxAttempts(n int) SyncOption {
	return func(c *syncConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithUploadConcurrency bounds concurrent file transfers within a folder
func WithUploadConcurrency(n int) SyncOption {
	return func(c *syncConfig) {
		if n > 0 {
			c.uploadConcurrency = n
		}
	}
}

// WithFolderConcurrency bounds concurrently synchronized folders
func WithFolderConcurrency(n int) SyncOption {
	return func(c *syncConfig) {
		if n > 0 {
			c.folderConcurrency = n
		}
	}
}

// WithOperationTimeout bounds a single remote call
func WithOperationTimeout(d time.Duration) SyncOption {
	return func(c *syncConfig) {
		if d > 0 {
			c.operationTimeout = d
		}
	}
}

// WithBackOff sets the wait policy between retries
func WithBackOff(f func() backoff.BackOff) SyncOption {
	return func(c *syncConfig) {
		c.newBackOff = f
	}
}

// WithNotifier sends a summary of every job that did not fully succeed
func WithNotifier(n interfaces.JobNotifier) SyncOption {
	return func(c *syncConfig) {
		c.notifier = n
	}
}

type syncUseCase struct {
	source   interfaces.SourceRepository
	target   interfaces.TargetStore
	reporter interfaces.ErrorReporter
	cfg      syncConfig
}

// NewSync creates the use case that publishes version folders from source to target
func NewSync(source interfaces.SourceRepository, target interfaces.TargetStore, reporter interfaces.ErrorReporter, opts ...SyncOption) interfaces.SyncUseCase {
	cfg := syncConfig{
		targetBranch:      DefaultTargetBranch,
		maxAttempts:       DefaultMaxAttempts,
		uploadConcurrency: DefaultUploadConcurrency,
		folderConcurrency: DefaultFolderConcurrency,
		operationTimeout:  DefaultOperationTimeout,
		newBackOff:        defaultBackOff,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &syncUseCase{
		source:   source,
		target:   target,
		reporter: reporter,
		cfg:      cfg,
	}
}

func newJobResult() *model.JobResult {
	return &model.JobResult{
		ID:        uuid.NewString(),
		Folders:   []*model.SyncResult{},
		StartedAt: time.Now(),
	}
}

// HandlePush parses a push webhook and re-publishes every version folder the
// push touched on the target branch
func (uc *syncUseCase) HandlePush(ctx context.Context, event *model.WebhookEvent) (*model.JobResult, error) {
	result := newJobResult()
	logger := ctxlog.From(ctx).With("job_id", result.ID, "delivery_id", event.ID)
	ctx = ctxlog.With(ctx, logger)

	push, err := model.ParsePushEvent(event.RawPayload)
	if err != nil {
		result.Outcome = model.OutcomeFailed
		result.FinishedAt = time.Now()
		logger.Warn("Rejected push payload", "error", err)
		return result, goerr.Wrap(err, "failed to parse push event", goerr.V("delivery_id", event.ID))
	}

	result.Repository = push.Repository
	result.Branch = push.Branch
	result.Ref = push.SourceRef()

	if uc.cfg.repository != "" && push.Repository != "" && !strings.EqualFold(push.Repository, uc.cfg.repository) {
		logger.Warn("Ignoring push from unexpected repository",
			"repository", push.Repository,
			"expected", uc.cfg.repository,
		)
		return uc.finish(ctx, result), nil
	}

	folders := MatchVersionFolders(push, uc.cfg.targetBranch, uc.cfg.basePath)
	logger.Info("Matched version folders",
		"repository", push.Repository,
		"ref", push.Ref,
		"commits", len(push.Commits),
		"folders", folders,
	)
	if len(folders) == 0 {
		return uc.finish(ctx, result), nil
	}

	return uc.run(ctx, result, folders)
}

// SyncFolders re-publishes the given version folders as of ref, regardless of
// which paths changed
func (uc *syncUseCase) SyncFolders(ctx context.Context, ref string, folders []model.VersionFolderID) (*model.JobResult, error) {
	result := newJobResult()
	result.Ref = ref
	ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("job_id", result.ID))

	seen := make(map[model.VersionFolderID]struct{})
	var unique []model.VersionFolderID
	for _, f := range folders {
		f = model.VersionFolderID(strings.Trim(string(f), "/"))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		unique = append(unique, f)
	}

	if len(unique) == 0 {
		return uc.finish(ctx, result), nil
	}
	return uc.run(ctx, result, unique)
}

func (uc *syncUseCase) run(ctx context.Context, result *model.JobResult, folders []model.VersionFolderID) (*model.JobResult, error) {
	jobCtx, abort := context.WithCancelCause(ctx)
	defer abort(nil)

	results := make([]*model.SyncResult, len(folders))
	var eg errgroup.Group
	eg.SetLimit(uc.cfg.folderConcurrency)
	for i, folder := range folders {
		eg.Go(func() error {
			results[i] = uc.syncFolder(jobCtx, abort, result.Ref, folder)
			return nil
		})
	}
	_ = eg.Wait()

	result.Folders = results

	if cause := context.Cause(jobCtx); types.KindOf(cause) == types.KindAuth {
		result.Outcome = model.OutcomeFailed
		uc.finish(ctx, result)
		return result, goerr.Wrap(cause, "sync job aborted", goerr.V("job_id", result.ID))
	}

	return uc.finish(ctx, result), nil
}

func (uc *syncUseCase) finish(ctx context.Context, result *model.JobResult) *model.JobResult {
	result.Aggregate()
	result.FinishedAt = time.Now()

	ctxlog.From(ctx).Info("Sync job finished",
		"outcome", result.Outcome,
		"folders", len(result.Folders),
		"uploaded", result.UploadedCount(),
		"failed", result.FailedCount(),
		"duration", result.FinishedAt.Sub(result.StartedAt),
	)

	if uc.cfg.notifier != nil && (result.Outcome == model.OutcomePartial || result.Outcome == model.OutcomeFailed) {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.operationTimeout)
		defer cancel()
		if err := uc.cfg.notifier.NotifyJob(notifyCtx, result); err != nil {
			ctxlog.From(ctx).Warn("Failed to notify job result", "error", err)
			uc.reporter.Report(ctx, err)
		}
	}

	return result
}

// stopped reports whether the job may not start new work, and the kind to
// record for work that is skipped
func stopped(ctx context.Context) (types.ErrorKind, bool) {
	if ctx.Err() == nil {
		return "", false
	}
	if kind := types.KindOf(context.Cause(ctx)); kind == types.KindAuth {
		return kind, true
	}
	return types.KindTimeout, true
}

func (uc *syncUseCase) syncFolder(ctx context.Context, abort context.CancelCauseFunc, ref string, folder model.VersionFolderID) *model.SyncResult {
	logger := ctxlog.From(ctx).With("folder", folder)
	ctx = ctxlog.With(ctx, logger)

	result := &model.SyncResult{
		Folder:   folder,
		Uploaded: []string{},
		Failed:   []model.FileFailure{},
	}
	sourceDir := path.Join(uc.cfg.basePath, string(folder))
	targetDir := path.Join(uc.cfg.targetBasePath, string(folder))

	if kind, ok := stopped(ctx); ok {
		if kind == types.KindTimeout {
			result.Failed = append(result.Failed, model.FileFailure{
				Path:    sourceDir,
				Kind:    kind,
				Message: "job stopped before folder was listed",
			})
		}
		return result
	}

	var listed []string
	err := uc.retry(ctx, "list", func(ctx context.Context) error {
		var err error
		listed, err = uc.source.ListFiles(ctx, sourceDir, ref)
		return err
	})
	if err != nil {
		if aborted(err) {
			return result
		}
		if types.KindOf(err) == types.KindNotFound && uc.cfg.prune {
			uc.pruneFolder(ctx, abort, result, targetDir)
			return result
		}

		err = goerr.Wrap(err, "failed to list version folder", goerr.V("folder", folder), goerr.V("ref", ref))
		result.Failed = append(result.Failed, uc.failure(ctx, abort, sourceDir, err))
		return result
	}
	logger.Info("Listed version folder", "files", len(listed), "ref", ref)

	uploaded := make([]bool, len(listed))
	failures := make([]*model.FileFailure, len(listed))

	var eg errgroup.Group
	eg.SetLimit(uc.cfg.uploadConcurrency)
	for i, rel := range listed {
		eg.Go(func() error {
			if kind, ok := stopped(ctx); ok {
				if kind == types.KindTimeout {
					failures[i] = &model.FileFailure{
						Path:    rel,
						Kind:    kind,
						Message: "job stopped before file was transferred",
					}
				}
				return nil
			}

			if err := uc.syncFile(ctx, ref, sourceDir, targetDir, rel); err != nil {
				if aborted(err) {
					return nil
				}
				err = goerr.Wrap(err, "failed to sync file", goerr.V("folder", folder), goerr.V("path", rel))
				f := uc.failure(ctx, abort, rel, err)
				failures[i] = &f
				return nil
			}
			uploaded[i] = true
			return nil
		})
	}
	_ = eg.Wait()

	for i, rel := range listed {
		switch {
		case uploaded[i]:
			result.Uploaded = append(result.Uploaded, rel)
		case failures[i] != nil:
			result.Failed = append(result.Failed, *failures[i])
		}
	}

	if uc.cfg.prune && result.OK() {
		uc.pruneStale(ctx, abort, result, targetDir, listed)
	}

	logger.Info("Synchronized version folder",
		"uploaded", len(result.Uploaded),
		"failed", len(result.Failed),
		"pruned", len(result.Pruned),
	)
	return result
}

func (uc *syncUseCase) syncFile(ctx context.Context, ref, sourceDir, targetDir, rel string) error {
	file := model.RemoteFile{RelativePath: rel}

	err := uc.retry(ctx, "fetch", func(ctx context.Context) error {
		content, err := uc.source.FetchFile(ctx, path.Join(sourceDir, rel), ref)
		file.Content = content
		return err
	})
	if err != nil {
		return err
	}

	return uc.retry(ctx, "write", func(ctx context.Context) error {
		return uc.target.WriteFile(ctx, path.Join(targetDir, file.RelativePath), file.Content)
	})
}

// failure records err, reports it and aborts the whole job on authentication errors
func (uc *syncUseCase) failure(ctx context.Context, abort context.CancelCauseFunc, p string, err error) model.FileFailure {
	kind := types.KindOf(err)
	ctxlog.From(ctx).Warn("Sync failed", "path", p, "kind", kind, "error", err)
	uc.escalate(ctx, abort, err)

	return model.FileFailure{
		Path:    p,
		Kind:    kind,
		Message: err.Error(),
	}
}

// escalate reports err and aborts the whole job on authentication errors
func (uc *syncUseCase) escalate(ctx context.Context, abort context.CancelCauseFunc, err error) {
	if aborted(err) {
		return
	}
	uc.reporter.Report(ctx, err)
	if types.KindOf(err) == types.KindAuth {
		abort(err)
	}
}

// pruneFolder removes a version folder that no longer exists in the source
func (uc *syncUseCase) pruneFolder(ctx context.Context, abort context.CancelCauseFunc, result *model.SyncResult, targetDir string) {
	err := uc.retry(ctx, "delete", func(ctx context.Context) error {
		return uc.target.Delete(ctx, targetDir, true)
	})
	if err != nil {
		err = goerr.Wrap(err, "failed to prune version folder", goerr.V("path", targetDir))
		ctxlog.From(ctx).Warn("Prune failed", "path", targetDir, "error", err)
		uc.escalate(ctx, abort, err)
		return
	}

	ctxlog.From(ctx).Info("Pruned version folder removed from source", "path", targetDir)
	result.Pruned = append(result.Pruned, targetDir)
}

// pruneStale removes target files the source listing no longer has
func (uc *syncUseCase) pruneStale(ctx context.Context, abort context.CancelCauseFunc, result *model.SyncResult, targetDir string, keep []string) {
	var existing []string
	err := uc.retry(ctx, "list-target", func(ctx context.Context) error {
		var err error
		existing, err = uc.target.ListFiles(ctx, targetDir)
		return err
	})
	if err != nil {
		err = goerr.Wrap(err, "failed to list target folder", goerr.V("path", targetDir))
		ctxlog.From(ctx).Warn("Prune skipped", "path", targetDir, "error", err)
		uc.escalate(ctx, abort, err)
		return
	}

	want := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		want[k] = struct{}{}
	}

	for _, rel := range existing {
		if _, ok := want[rel]; ok {
			continue
		}
		if _, ok := stopped(ctx); ok {
			return
		}

		err := uc.retry(ctx, "delete", func(ctx context.Context) error {
			return uc.target.Delete(ctx, path.Join(targetDir, rel), false)
		})
		if err != nil {
			err = goerr.Wrap(err, "failed to prune file", goerr.V("path", rel))
			ctxlog.From(ctx).Warn("Prune failed", "path", rel, "error", err)
			uc.escalate(ctx, abort, err)
			continue
		}
		result.Pruned = append(result.Pruned, rel)
	}
}
