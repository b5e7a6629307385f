package github

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
	owner        string
	repo         string
}

type options struct {
	baseURL   string
	transport http.RoundTripper
}

// Option configures the GitHub client
type Option func(*options)

// WithBaseURL sets the REST API base URL, e.g. https://ghe.example.com/api/v3/
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// NewClient creates a source repository client authenticated with a token.
// repository is "owner/name".
func NewClient(repository, token string, opts ...Option) (interfaces.SourceRepository, error) {
	o := applyOptions(opts)

	githubClient := github.NewClient(&http.Client{Transport: o.transport})
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}

	c, err := newClient(githubClient, repository, o)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewAppClient creates a source repository client with GitHub App installation authentication
func NewAppClient(repository string, appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.SourceRepository, error) {
	o := applyOptions(opts)

	itr, err := ghinstallation.New(o.transport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}
	if o.baseURL != "" {
		itr.BaseURL = strings.TrimSuffix(o.baseURL, "/")
	}

	c, err := newClient(github.NewClient(&http.Client{Transport: itr}), repository, o)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func applyOptions(opts []Option) *options {
	o := &options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newClient(githubClient *github.Client, repository string, o *options) (*client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, goerr.New("repository must be in owner/name form", goerr.V("repository", repository))
	}

	if o.baseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", o.baseURL))
		}
		githubClient.BaseURL = baseURL
	}

	return &client{
		githubClient: githubClient,
		owner:        owner,
		repo:         repo,
	}, nil
}

// ListFiles walks dir at ref and returns every file path relative to dir
func (c *client) ListFiles(ctx context.Context, dir, ref string) ([]string, error) {
	dir = strings.Trim(dir, "/")

	var files []string
	if err := c.walk(ctx, dir, dir, ref, &files); err != nil {
		return nil, err
	}

	return files, nil
}

func (c *client) walk(ctx context.Context, root, dir, ref string, files *[]string) error {
	file, entries, resp, err := c.githubClient.Repositories.GetContents(ctx, c.owner, c.repo, dir,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return wrapError(err, resp, "failed to list contents",
			goerr.V("repository", c.owner+"/"+c.repo),
			goerr.V("path", dir),
			goerr.V("ref", ref),
		)
	}

	// dir resolved to a single file
	if file != nil {
		*files = append(*files, relativePath(root, file.GetPath()))
		return nil
	}

	for _, entry := range entries {
		switch entry.GetType() {
		case "file":
			*files = append(*files, relativePath(root, entry.GetPath()))
		case "dir":
			if err := c.walk(ctx, root, entry.GetPath(), ref, files); err != nil {
				return err
			}
		default:
			ctxlog.From(ctx).Debug("Skipping non-file entry",
				"path", entry.GetPath(),
				"type", entry.GetType(),
			)
		}
	}

	return nil
}

// FetchFile returns the decoded content of the file at filePath and ref
func (c *client) FetchFile(ctx context.Context, filePath, ref string) ([]byte, error) {
	filePath = strings.Trim(filePath, "/")

	file, _, resp, err := c.githubClient.Repositories.GetContents(ctx, c.owner, c.repo, filePath,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, wrapError(err, resp, "failed to get file contents",
			goerr.V("repository", c.owner+"/"+c.repo),
			goerr.V("path", filePath),
			goerr.V("ref", ref),
		)
	}
	if file == nil {
		return nil, goerr.New("path is a directory, not a file",
			goerr.T(types.ErrNotFound),
			goerr.V("path", filePath),
			goerr.V("ref", ref),
		)
	}

	// The contents API omits content above 1 MB; read the blob instead
	if file.GetEncoding() == "none" || (file.Content == nil && file.GetSize() > 0) {
		return c.fetchBlob(ctx, file.GetSHA(), filePath)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode file content",
			goerr.T(types.ErrUpstream),
			goerr.V("path", filePath),
			goerr.V("encoding", file.GetEncoding()),
		)
	}

	return []byte(content), nil
}

func (c *client) fetchBlob(ctx context.Context, sha, filePath string) ([]byte, error) {
	data, resp, err := c.githubClient.Git.GetBlobRaw(ctx, c.owner, c.repo, sha)
	if err != nil {
		return nil, wrapError(err, resp, "failed to get blob",
			goerr.V("path", filePath),
			goerr.V("sha", sha),
		)
	}
	return data, nil
}

func relativePath(root, p string) string {
	if p == root {
		return path.Base(p)
	}
	return strings.TrimPrefix(p, root+"/")
}

// wrapError tags a go-github error with its ErrorKind
func wrapError(err error, resp *github.Response, msg string, opts ...goerr.Option) error {
	opts = append(opts, types.T(errorKind(err, resp)))
	if resp != nil && resp.Response != nil {
		opts = append(opts, goerr.V("status", resp.StatusCode))
	}
	return goerr.Wrap(err, msg, opts...)
}

func errorKind(err error, resp *github.Response) types.ErrorKind {
	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return types.KindTransient
	}

	if errors.Is(err, context.Canceled) {
		return types.KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.KindTransient
	}

	if resp != nil && resp.Response != nil {
		return types.KindForStatus(resp.StatusCode)
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return types.KindTransient
	}

	return types.KindUpstream
}
