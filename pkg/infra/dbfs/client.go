package dbfs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/url"
	"path"
	"strings"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/apierr"
	"github.com/databricks/databricks-sdk-go/config"
	"github.com/databricks/databricks-sdk-go/service/files"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

const (
	// DBFS rejects put contents and add-block data above 1 MB
	defaultPutLimit  = 1 << 20
	defaultBlockSize = 1 << 20
)

// dbfsAPI is the subset of the SDK's DBFS service used by the client
type dbfsAPI interface {
	Put(ctx context.Context, request files.Put) error
	Create(ctx context.Context, request files.Create) (*files.CreateResponse, error)
	AddBlock(ctx context.Context, request files.AddBlock) error
	Close(ctx context.Context, request files.Close) error
	Delete(ctx context.Context, request files.Delete) error
	Move(ctx context.Context, request files.Move) error
	Mkdirs(ctx context.Context, request files.MkDirs) error
	ListAll(ctx context.Context, request files.ListDbfsRequest) ([]files.FileInfo, error)
}

type client struct {
	api       dbfsAPI
	putLimit  int
	blockSize int
}

type options struct {
	putLimit            int
	blockSize           int
	retryTimeoutSeconds int
}

// Option configures the DBFS client
type Option func(*options)

// WithPutLimit sets the largest file written with a single put request
func WithPutLimit(n int) Option {
	return func(o *options) {
		o.putLimit = n
	}
}

// WithBlockSize sets the add-block size used for streamed uploads
func WithBlockSize(n int) Option {
	return func(o *options) {
		o.blockSize = n
	}
}

// WithRetryTimeout bounds the SDK's own retries of throttled requests
func WithRetryTimeout(seconds int) Option {
	return func(o *options) {
		o.retryTimeoutSeconds = seconds
	}
}

// NewClient creates a DBFS target store for the workspace at host,
// authenticated with a personal access token
func NewClient(host, token string, opts ...Option) (interfaces.TargetStore, error) {
	o := applyOptions(opts)

	workspaceClient, err := databricks.NewWorkspaceClient(&databricks.Config{
		Host:                host,
		Token:               token,
		Credentials:         config.PatCredentials{},
		RetryTimeoutSeconds: o.retryTimeoutSeconds,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Databricks workspace client", goerr.V("host", host))
	}

	return newClient(workspaceClient.Dbfs, o), nil
}

func applyOptions(opts []Option) *options {
	o := &options{
		putLimit:  defaultPutLimit,
		blockSize: defaultBlockSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newClient(api dbfsAPI, o *options) *client {
	return &client{
		api:       api,
		putLimit:  o.putLimit,
		blockSize: o.blockSize,
	}
}

// NormalizePath converts dbfs:/a/b and a/b/ to /a/b
func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "dbfs:")
	p = path.Clean("/" + p)
	return p
}

// WriteFile replaces the file at p with content. Small files are written with
// one put; larger files are streamed to a staging file and moved into place so
// that p never holds a partially written file.
func (c *client) WriteFile(ctx context.Context, p string, content []byte) error {
	p = NormalizePath(p)

	if err := c.api.Mkdirs(ctx, files.MkDirs{Path: path.Dir(p)}); err != nil {
		return wrapError(err, "failed to create parent directory", goerr.V("path", path.Dir(p)))
	}

	if len(content) <= c.putLimit {
		err := c.api.Put(ctx, files.Put{
			Path:      p,
			Contents:  base64.StdEncoding.EncodeToString(content),
			Overwrite: true,
		})
		if err != nil {
			return wrapError(err, "failed to put file", goerr.V("path", p), goerr.V("size", len(content)))
		}
		return nil
	}

	return c.writeStaged(ctx, p, content)
}

func (c *client) writeStaged(ctx context.Context, p string, content []byte) (err error) {
	logger := ctxlog.From(ctx)
	staging := path.Join(path.Dir(p), fmt.Sprintf(".%s.%s.tmp", path.Base(p), uuid.NewString()))

	created, err := c.api.Create(ctx, files.Create{Path: staging, Overwrite: true})
	if err != nil {
		return wrapError(err, "failed to open upload handle", goerr.V("path", staging))
	}
	handle := created.Handle
	closed := false

	defer func() {
		if err == nil {
			return
		}
		cleanupCtx := context.WithoutCancel(ctx)
		if !closed {
			if closeErr := c.api.Close(cleanupCtx, files.Close{Handle: handle}); closeErr != nil {
				logger.Warn("Failed to close upload handle", "handle", handle, "error", closeErr)
			}
		}
		if delErr := c.api.Delete(cleanupCtx, files.Delete{Path: staging}); delErr != nil {
			logger.Warn("Failed to delete staging file", "path", staging, "error", delErr)
		}
	}()

	for offset := 0; offset < len(content); offset += c.blockSize {
		end := min(offset+c.blockSize, len(content))
		err := c.api.AddBlock(ctx, files.AddBlock{
			Handle: handle,
			Data:   base64.StdEncoding.EncodeToString(content[offset:end]),
		})
		if err != nil {
			return wrapError(err, "failed to add block",
				goerr.V("path", staging),
				goerr.V("offset", offset),
			)
		}
	}

	if err := c.api.Close(ctx, files.Close{Handle: handle}); err != nil {
		return wrapError(err, "failed to close upload handle", goerr.V("path", staging))
	}
	closed = true

	// move refuses to overwrite, so the previous file is parked next to p and
	// restored if the staging file cannot take its place
	backup := path.Join(path.Dir(p), fmt.Sprintf(".%s.%s.bak", path.Base(p), uuid.NewString()))
	hasPrevious := true
	if err := c.api.Move(ctx, files.Move{SourcePath: p, DestinationPath: backup}); err != nil {
		if !isNotFound(err) {
			return wrapError(err, "failed to move previous file aside",
				goerr.V("source", p),
				goerr.V("destination", backup),
			)
		}
		hasPrevious = false
	}

	if err := c.api.Move(ctx, files.Move{SourcePath: staging, DestinationPath: p}); err != nil {
		if hasPrevious {
			restoreCtx := context.WithoutCancel(ctx)
			if restoreErr := c.api.Move(restoreCtx, files.Move{SourcePath: backup, DestinationPath: p}); restoreErr != nil {
				logger.Error("Failed to restore previous file", "path", p, "backup", backup, "error", restoreErr)
			}
		}
		return wrapError(err, "failed to move staging file into place",
			goerr.V("source", staging),
			goerr.V("destination", p),
		)
	}

	if hasPrevious {
		if err := c.api.Delete(ctx, files.Delete{Path: backup}); err != nil && !isNotFound(err) {
			logger.Warn("Failed to delete previous file", "path", backup, "error", err)
		}
	}

	return nil
}

// ListFiles returns every file under dir, relative to dir
func (c *client) ListFiles(ctx context.Context, dir string) ([]string, error) {
	dir = NormalizePath(dir)

	var result []string
	if err := c.walk(ctx, dir, dir, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *client) walk(ctx context.Context, root, dir string, result *[]string) error {
	entries, err := c.api.ListAll(ctx, files.ListDbfsRequest{Path: dir})
	if err != nil {
		return wrapError(err, "failed to list directory", goerr.V("path", dir))
	}

	for _, entry := range entries {
		p := NormalizePath(entry.Path)
		if entry.IsDir {
			if err := c.walk(ctx, root, p, result); err != nil {
				return err
			}
			continue
		}
		if p == root {
			*result = append(*result, path.Base(p))
			continue
		}
		*result = append(*result, strings.TrimPrefix(p, root+"/"))
	}

	return nil
}

// Delete removes p. A missing path is not an error.
func (c *client) Delete(ctx context.Context, p string, recursive bool) error {
	p = NormalizePath(p)
	if p == "/" {
		return goerr.New("refusing to delete DBFS root", goerr.T(types.ErrUpstream))
	}

	if err := c.api.Delete(ctx, files.Delete{Path: p, Recursive: recursive}); err != nil && !isNotFound(err) {
		return wrapError(err, "failed to delete", goerr.V("path", p), goerr.V("recursive", recursive))
	}
	return nil
}

func isNotFound(err error) bool {
	return errorKind(err) == types.KindNotFound
}

func wrapError(err error, msg string, opts ...goerr.Option) error {
	opts = append(opts, types.T(errorKind(err)))

	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) {
		opts = append(opts,
			goerr.V("status", apiErr.StatusCode),
			goerr.V("error_code", apiErr.ErrorCode),
		)
	}

	return goerr.Wrap(err, msg, opts...)
}

func errorKind(err error) types.ErrorKind {
	if errors.Is(err, context.Canceled) {
		return types.KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.KindTransient
	}

	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode {
		case "RESOURCE_DOES_NOT_EXIST":
			return types.KindNotFound
		case "TEMPORARILY_UNAVAILABLE", "REQUEST_LIMIT_EXCEEDED":
			return types.KindTransient
		}
		return types.KindForStatus(apiErr.StatusCode)
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return types.KindTransient
	}

	return types.KindUpstream
}
