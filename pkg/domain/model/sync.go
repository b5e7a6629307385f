package model

import (
	"time"

	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

// VersionFolderID is the path segment right after the base path
type VersionFolderID string

// RemoteFile is a file fetched from the source repository, held only until it
// has been written to the target store
type RemoteFile struct {
	RelativePath string // Path relative to the version folder
	Content      []byte
}

// FileFailure records why a single file (or a whole folder listing) failed
type FileFailure struct {
	Path    string          `json:"path"`
	Kind    types.ErrorKind `json:"kind"`
	Message string          `json:"message,omitempty"`
}

// SyncResult is the outcome of synchronizing one version folder
type SyncResult struct {
	Folder   VersionFolderID `json:"folder"`
	Uploaded []string        `json:"uploaded"`
	Failed   []FileFailure   `json:"failed"`
	Pruned   []string        `json:"pruned,omitempty"`
}

// OK reports whether every file of the folder was uploaded
func (r *SyncResult) OK() bool {
	return len(r.Failed) == 0
}

// JobOutcome is the terminal state of a sync job
type JobOutcome string

const (
	OutcomeAllOK   JobOutcome = "completed_all_ok"
	OutcomePartial JobOutcome = "completed_partial"
	OutcomeNoOp    JobOutcome = "completed_noop"
	OutcomeFailed  JobOutcome = "failed"
)

// JobResult aggregates the per-folder results of one push notification
type JobResult struct {
	ID         string        `json:"job_id"`
	Repository string        `json:"repository,omitempty"`
	Branch     string        `json:"branch,omitempty"`
	Ref        string        `json:"ref,omitempty"`
	Outcome    JobOutcome    `json:"outcome"`
	Folders    []*SyncResult `json:"folders"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Aggregate derives Outcome from the folder results. It does not override a
// failed outcome.
func (r *JobResult) Aggregate() JobOutcome {
	if r.Outcome == OutcomeFailed {
		return r.Outcome
	}

	switch {
	case len(r.Folders) == 0:
		r.Outcome = OutcomeNoOp
	case r.FailedCount() == 0:
		r.Outcome = OutcomeAllOK
	default:
		r.Outcome = OutcomePartial
	}
	return r.Outcome
}

// UploadedCount returns the number of uploaded files across all folders
func (r *JobResult) UploadedCount() int {
	var n int
	for _, f := range r.Folders {
		n += len(f.Uploaded)
	}
	return n
}

// FailedCount returns the number of failed entries across all folders
func (r *JobResult) FailedCount() int {
	var n int
	for _, f := range r.Folders {
		n += len(f.Failed)
	}
	return n
}
