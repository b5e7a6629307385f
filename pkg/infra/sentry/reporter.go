package sentry

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

type reporter struct{}

// New initializes the Sentry SDK and returns an ErrorReporter backed by it
func New(options sentry.ClientOptions) (interfaces.ErrorReporter, error) {
	if options.Release == "" {
		options.Release = types.Version
	}
	if err := sentry.Init(options); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}
	return &reporter{}, nil
}

// Report sends err to Sentry, tagged with its ErrorKind. goerr values are
// attached as the "values" context.
func (r *reporter) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error_kind", string(types.KindOf(err)))

		var goErr *goerr.Error
		if errors.As(err, &goErr) {
			values := sentry.Context{}
			for k, v := range goErr.Values() {
				values[k] = v
			}
			scope.SetContext("values", values)
		}

		if id := hub.CaptureException(err); id != nil {
			ctxlog.From(ctx).Debug("Reported error to sentry", "event_id", *id)
		}
	})
}

// Flush waits for buffered events to be delivered
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// Nop discards every report
type Nop struct{}

// Report implements interfaces.ErrorReporter
func (Nop) Report(context.Context, error) {}
