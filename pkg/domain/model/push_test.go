package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

func TestParsePushEvent(t *testing.T) {
	t.Run("parses branch, head and commits", func(t *testing.T) {
		body := []byte(`{
			"ref": "refs/heads/main",
			"after": "abc123",
			"repository": {"full_name": "acme/models"},
			"commits": [
				{"id": "c1", "added": ["releases/v5/new.json"], "modified": ["releases/v5/app.json"], "removed": []},
				{"id": "c2", "added": [], "modified": [], "removed": ["releases/v4/old.json"]}
			]
		}`)

		event, err := model.ParsePushEvent(body)
		gt.NoError(t, err)
		gt.V(t, event.Ref).Equal("refs/heads/main")
		gt.V(t, event.Branch).Equal("main")
		gt.V(t, event.HeadSHA).Equal("abc123")
		gt.V(t, event.Repository).Equal("acme/models")
		gt.A(t, event.Commits).Length(2)
		gt.V(t, event.Commits[0].ID).Equal("c1")
		gt.V(t, event.Commits[1].Removed).Equal([]string{"releases/v4/old.json"})
		gt.V(t, event.SourceRef()).Equal("abc123")
	})

	t.Run("zero commits is not an error", func(t *testing.T) {
		body := []byte(`{"ref": "refs/heads/old", "deleted": true, "after": "0000000000000000000000000000000000000000", "commits": []}`)

		event, err := model.ParsePushEvent(body)
		gt.NoError(t, err)
		gt.A(t, event.Commits).Length(0)
		gt.True(t, event.Deleted)
		gt.V(t, event.SourceRef()).Equal("old")
	})

	t.Run("tag ref has no branch", func(t *testing.T) {
		event, err := model.ParsePushEvent([]byte(`{"ref": "refs/tags/v1.0.0", "commits": []}`))
		gt.NoError(t, err)
		gt.V(t, event.Branch).Equal("")
	})

	t.Run("falls back to head_commit id", func(t *testing.T) {
		event, err := model.ParsePushEvent([]byte(`{"ref": "refs/heads/main", "head_commit": {"id": "def456"}, "commits": []}`))
		gt.NoError(t, err)
		gt.V(t, event.HeadSHA).Equal("def456")
	})

	malformed := []struct {
		name string
		body string
	}{
		{name: "not json", body: `not-json`},
		{name: "missing ref", body: `{"commits": []}`},
		{name: "empty ref", body: `{"ref": "", "commits": []}`},
		{name: "missing commits", body: `{"ref": "refs/heads/main"}`},
		{name: "null commits", body: `{"ref": "refs/heads/main", "commits": null}`},
		{name: "ref of wrong type", body: `{"ref": 42, "commits": []}`},
		{name: "commits of wrong type", body: `{"ref": "refs/heads/main", "commits": "many"}`},
		{name: "null commit", body: `{"ref": "refs/heads/main", "commits": [null]}`},
	}
	for _, tt := range malformed {
		t.Run("malformed: "+tt.name, func(t *testing.T) {
			event, err := model.ParsePushEvent([]byte(tt.body))
			gt.Error(t, err)
			gt.V(t, event).Nil()
			gt.True(t, goerr.HasTag(err, types.ErrMalformedPayload))
			gt.V(t, types.KindOf(err)).Equal(types.KindMalformedPayload)
		})
	}
}

func TestPushEvent_ChangedPaths(t *testing.T) {
	event := &model.PushEvent{
		Commits: []model.CommitRef{
			{Added: []string{"a"}, Modified: []string{"b"}, Removed: []string{"c"}},
			{Added: []string{"b"}, Modified: []string{"d"}},
			{Removed: []string{"a", "e"}},
		},
	}

	gt.V(t, event.ChangedPaths()).Equal([]string{"a", "b", "c", "d", "e"})
}
