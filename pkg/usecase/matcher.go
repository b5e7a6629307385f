package usecase

import (
	"strings"

	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
)

// MatchVersionFolders returns the version folders under basePath touched by
// the push, in first-seen order. Pushes to any branch other than targetBranch
// match nothing.
func MatchVersionFolders(event *model.PushEvent, targetBranch, basePath string) []model.VersionFolderID {
	if event == nil || event.Branch == "" || event.Branch != targetBranch {
		return nil
	}

	prefix := strings.Trim(basePath, "/")
	if prefix != "" {
		prefix += "/"
	}

	seen := make(map[model.VersionFolderID]struct{})
	var folders []model.VersionFolderID

	for _, p := range event.ChangedPaths() {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok {
			continue
		}

		segment, _, _ := strings.Cut(rest, "/")
		if segment == "" {
			continue
		}

		id := model.VersionFolderID(segment)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		folders = append(folders, id)
	}

	return folders
}
