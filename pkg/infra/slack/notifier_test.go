package slack_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/gitdbfs/pkg/domain/model"
	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
	slackinfra "github.com/m-mizutani/gitdbfs/pkg/infra/slack"
)

type postedMessage struct {
	channel string
	text    string
	blocks  string
}

func newSlackServer(t *testing.T, ok bool) (*httptest.Server, func() []postedMessage) {
	t.Helper()

	var (
		mu       sync.Mutex
		messages []postedMessage
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Path).Equal("/chat.postMessage")
		gt.NoError(t, r.ParseForm())

		mu.Lock()
		messages = append(messages, postedMessage{
			channel: r.Form.Get("channel"),
			text:    r.Form.Get("text"),
			blocks:  r.Form.Get("blocks"),
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"ok": ok, "channel": "C123", "ts": "1700000000.000100"}
		if !ok {
			resp["error"] = "channel_not_found"
		}
		gt.NoError(t, json.NewEncoder(w).Encode(resp))
	}))

	return server, func() []postedMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]postedMessage(nil), messages...)
	}
}

func partialJob() *model.JobResult {
	return &model.JobResult{
		ID:         "job-1",
		Repository: "acme/models",
		Branch:     "main",
		Ref:        "abc123",
		Outcome:    model.OutcomePartial,
		Folders: []*model.SyncResult{
			{
				Folder:   "v5",
				Uploaded: []string{"app.json"},
				Failed: []model.FileFailure{
					{Path: "big.bin", Kind: types.KindTransient},
				},
			},
		},
	}
}

func TestNotifier_NotifyJob(t *testing.T) {
	server, messages := newSlackServer(t, true)
	defer server.Close()

	n := slackinfra.New("xoxb-test", "#dbfs-sync", slack.OptionAPIURL(server.URL+"/"))
	gt.NoError(t, n.NotifyJob(t.Context(), partialJob()))

	got := messages()
	gt.A(t, got).Length(1)
	gt.V(t, got[0].channel).Equal("#dbfs-sync")
	gt.String(t, got[0].text).Contains("completed_partial")
	gt.String(t, got[0].text).Contains("1 uploaded, 1 failed")

	gt.True(t, strings.Contains(got[0].blocks, "v5/big.bin"))
	gt.True(t, strings.Contains(got[0].blocks, string(types.KindTransient)))
}

func TestNotifier_ManyFailures(t *testing.T) {
	server, messages := newSlackServer(t, true)
	defer server.Close()

	job := partialJob()
	for i := 0; i < 15; i++ {
		job.Folders[0].Failed = append(job.Folders[0].Failed, model.FileFailure{Path: "f", Kind: types.KindUpstream})
	}

	n := slackinfra.New("xoxb-test", "#dbfs-sync", slack.OptionAPIURL(server.URL+"/"))
	gt.NoError(t, n.NotifyJob(t.Context(), job))
	gt.True(t, strings.Contains(messages()[0].blocks, "and 6 more"))
}

func TestNotifier_APIError(t *testing.T) {
	server, _ := newSlackServer(t, false)
	defer server.Close()

	n := slackinfra.New("xoxb-test", "#missing", slack.OptionAPIURL(server.URL+"/"))
	err := n.NotifyJob(t.Context(), partialJob())
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("channel_not_found")
}
