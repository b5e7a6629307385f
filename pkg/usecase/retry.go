package usecase

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/domain/types"
)

// errJobAborted marks work given up because another operation aborted the job
var errJobAborted = goerr.NewTag("job_aborted")

func aborted(err error) bool {
	return goerr.HasTag(err, errJobAborted)
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// retry runs op until it succeeds, fails with a kind that is not retryable, or
// maxAttempts is used up. The last error is returned as is so its kind is kept.
//
// Every attempt runs on a context detached from ctx's cancellation and bounded
// by the operation timeout: an attempt in flight when the job deadline passes
// is allowed to finish, but no new attempt is started afterwards.
func (uc *syncUseCase) retry(ctx context.Context, name string, op func(ctx context.Context) error) error {
	b := uc.cfg.newBackOff()
	b.Reset()

	for attempt := 1; ; attempt++ {
		err := uc.attempt(ctx, op)
		if err == nil {
			return nil
		}

		kind := types.KindOf(err)
		if !kind.Retryable() || attempt >= uc.cfg.maxAttempts {
			return err
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return err
		}

		ctxlog.From(ctx).Debug("Retrying after transient error",
			"operation", name,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			if types.KindOf(context.Cause(ctx)) == types.KindAuth {
				return goerr.Wrap(err, "job aborted before retry", goerr.T(errJobAborted),
					goerr.V("operation", name),
					goerr.V("attempt", attempt),
				)
			}
			return goerr.Wrap(err, "job stopped before retry", goerr.T(types.ErrTimeout),
				goerr.V("operation", name),
				goerr.V("attempt", attempt),
			)
		case <-timer.C:
		}
	}
}

func (uc *syncUseCase) attempt(ctx context.Context, op func(ctx context.Context) error) error {
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.operationTimeout)
	defer cancel()
	return op(opCtx)
}
