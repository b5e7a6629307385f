package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
	"github.com/m-mizutani/gitdbfs/pkg/usecase"
)

func TestMatchVersionFolders(t *testing.T) {
	push := func(branch string, commits ...model.CommitRef) *model.PushEvent {
		return &model.PushEvent{
			Ref:     "refs/heads/" + branch,
			Branch:  branch,
			Commits: commits,
		}
	}

	tests := []struct {
		name     string
		event    *model.PushEvent
		basePath string
		want     []model.VersionFolderID
	}{
		{
			name:     "single modified file",
			event:    push("main", model.CommitRef{Modified: []string{"releases/v5/app.json"}}),
			basePath: "releases",
			want:     []model.VersionFolderID{"v5"},
		},
		{
			name: "folders across commits are deduplicated in first-seen order",
			event: push("main",
				model.CommitRef{Added: []string{"releases/v3/a.txt", "releases/v2/b.txt"}},
				model.CommitRef{Removed: []string{"releases/v3/c.txt"}, Modified: []string{"releases/v4/d/e.txt"}},
			),
			basePath: "releases",
			want:     []model.VersionFolderID{"v3", "v2", "v4"},
		},
		{
			name:     "base path with surrounding slashes",
			event:    push("main", model.CommitRef{Added: []string{"releases/v1/x"}}),
			basePath: "/releases/",
			want:     []model.VersionFolderID{"v1"},
		},
		{
			name:     "nested base path",
			event:    push("main", model.CommitRef{Added: []string{"deploy/models/2024-01/weights.bin"}}),
			basePath: "deploy/models",
			want:     []model.VersionFolderID{"2024-01"},
		},
		{
			name:     "change to the folder entry itself",
			event:    push("main", model.CommitRef{Modified: []string{"releases/v3"}}),
			basePath: "releases",
			want:     []model.VersionFolderID{"v3"},
		},
		{
			name:     "path equal to base path is ignored",
			event:    push("main", model.CommitRef{Modified: []string{"releases"}}),
			basePath: "releases",
			want:     nil,
		},
		{
			name:     "empty segment after base path is ignored",
			event:    push("main", model.CommitRef{Modified: []string{"releases//v1/a"}}),
			basePath: "releases",
			want:     nil,
		},
		{
			name:     "paths outside base path are ignored",
			event:    push("main", model.CommitRef{Modified: []string{"README.md", "releasesX/v1/a", "docs/releases/v1/a"}}),
			basePath: "releases",
			want:     nil,
		},
		{
			name:     "other branch matches nothing",
			event:    push("feature/x", model.CommitRef{Modified: []string{"releases/v5/app.json"}}),
			basePath: "releases",
			want:     nil,
		},
		{
			name: "tag push matches nothing",
			event: &model.PushEvent{
				Ref:     "refs/tags/v1",
				Commits: []model.CommitRef{{Modified: []string{"releases/v5/app.json"}}},
			},
			basePath: "releases",
			want:     nil,
		},
		{
			name:     "no commits",
			event:    push("main"),
			basePath: "releases",
			want:     nil,
		},
		{
			name:     "nil event",
			event:    nil,
			basePath: "releases",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.MatchVersionFolders(tt.event, "main", tt.basePath)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestMatchVersionFolders_AllPathsUnderBaseAreCovered(t *testing.T) {
	paths := []string{
		"releases/v1/a.txt",
		"releases/v2/b/c.txt",
		"releases/v1/d.txt",
		"other/v9/e.txt",
	}
	event := &model.PushEvent{
		Ref:     "refs/heads/main",
		Branch:  "main",
		Commits: []model.CommitRef{{Added: paths}},
	}

	got := usecase.MatchVersionFolders(event, "main", "releases")
	gt.A(t, got).Length(2)

	matched := map[model.VersionFolderID]bool{}
	for _, id := range got {
		matched[id] = true
	}
	gt.True(t, matched["v1"])
	gt.True(t, matched["v2"])
}
