package model

import (
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

const branchRefPrefix = "refs/heads/"

// PushEvent is the validated subset of a GitHub push webhook payload
type PushEvent struct {
	Ref        string      // Full git ref, e.g. refs/heads/main
	Branch     string      // Ref without refs/heads/, empty for tags
	HeadSHA    string      // Commit the ref points to after the push
	Repository string      // owner/name
	Deleted    bool        // True when the push deleted the ref
	Commits    []CommitRef // Commits in push order, may be empty
}

// CommitRef holds the paths touched by a single commit
type CommitRef struct {
	ID       string
	Added    []string
	Modified []string
	Removed  []string
}

// ParsePushEvent decodes a push webhook body. A push without commits (branch
// deletion, tag push) is valid; a body without ref or commits is not.
func ParsePushEvent(body []byte) (*PushEvent, error) {
	payload, err := github.ParseWebHook("push", body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode push payload", goerr.T(types.ErrMalformedPayload))
	}

	raw, ok := payload.(*github.PushEvent)
	if !ok {
		return nil, goerr.New("unexpected push payload type", goerr.T(types.ErrMalformedPayload))
	}

	if raw.Ref == nil || raw.GetRef() == "" {
		return nil, goerr.New("push payload has no ref", goerr.T(types.ErrMalformedPayload))
	}
	if raw.Commits == nil {
		return nil, goerr.New("push payload has no commits", goerr.T(types.ErrMalformedPayload),
			goerr.V("ref", raw.GetRef()))
	}

	event := &PushEvent{
		Ref:        raw.GetRef(),
		HeadSHA:    raw.GetAfter(),
		Repository: raw.GetRepo().GetFullName(),
		Deleted:    raw.GetDeleted(),
		Commits:    make([]CommitRef, 0, len(raw.Commits)),
	}
	if strings.HasPrefix(event.Ref, branchRefPrefix) {
		event.Branch = strings.TrimPrefix(event.Ref, branchRefPrefix)
	}
	if event.HeadSHA == "" {
		event.HeadSHA = raw.GetHeadCommit().GetID()
	}

	for i, c := range raw.Commits {
		if c == nil {
			return nil, goerr.New("push payload has a null commit", goerr.T(types.ErrMalformedPayload),
				goerr.V("index", i))
		}
		event.Commits = append(event.Commits, CommitRef{
			ID:       c.GetID(),
			Added:    c.Added,
			Modified: c.Modified,
			Removed:  c.Removed,
		})
	}

	return event, nil
}

// ChangedPaths returns every added, modified or removed path across all
// commits, deduplicated in first-seen order.
func (e *PushEvent) ChangedPaths() []string {
	seen := make(map[string]struct{})
	var paths []string

	add := func(list []string) {
		for _, p := range list {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}

	for _, c := range e.Commits {
		add(c.Added)
		add(c.Modified)
		add(c.Removed)
	}

	return paths
}

// SourceRef returns the git reference files should be read at: the head commit
// when known, otherwise the branch.
func (e *PushEvent) SourceRef() string {
	if e.HeadSHA != "" && !e.Deleted {
		return e.HeadSHA
	}
	return e.Branch
}
