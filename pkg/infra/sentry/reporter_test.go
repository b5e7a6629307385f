package sentry_test

import (
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
	sentryinfra "github.com/m-mizutani/gitdbfs/pkg/infra/sentry"
)

func TestReporter_Report(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)

	reporter, err := sentryinfra.New(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
			return nil // drop, nothing leaves the process
		},
	})
	gt.NoError(t, err)

	cause := goerr.New("503 from DBFS", goerr.T(types.ErrTransient))
	reporter.Report(t.Context(), goerr.Wrap(cause, "failed to upload",
		goerr.V("folder", "v5"),
		goerr.V("path", "app.json"),
	))
	reporter.Report(t.Context(), nil)

	mu.Lock()
	defer mu.Unlock()
	gt.A(t, events).Length(1)
	gt.V(t, events[0].Tags["error_kind"]).Equal(string(types.KindTransient))
	gt.V(t, events[0].Contexts["values"]["folder"]).Equal(any("v5"))
	gt.V(t, events[0].Contexts["values"]["path"]).Equal(any("app.json"))
}

func TestNop(t *testing.T) {
	var r sentryinfra.Nop
	r.Report(t.Context(), goerr.New("ignored"))
}
