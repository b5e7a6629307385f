package async

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
)

// Dispatcher runs handlers in the background, detached from the request that
// started them. Each handler gets its own deadline, and Wait lets the caller
// drain in-flight handlers on shutdown.
type Dispatcher struct {
	timeout  time.Duration
	reporter interfaces.ErrorReporter
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A zero timeout means no deadline.
func NewDispatcher(timeout time.Duration, reporter interfaces.ErrorReporter) *Dispatcher {
	return &Dispatcher{
		timeout:  timeout,
		reporter: reporter,
	}
}

// Dispatch executes handler asynchronously with panic recovery
//
// Parameters:
//   - ctx: Original context (values will be preserved, but cancellation won't affect the async handler)
//   - handler: Function to execute asynchronously
//
// Behavior:
//   - Creates a new background context with preserved logger and the dispatcher's deadline
//   - Recovers from panics, logs and reports them
//   - Logs errors returned by handler
func (d *Dispatcher) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx, cancel := d.newBackgroundContext(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(newCtx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
				if d.reporter != nil {
					d.reporter.Report(newCtx, goerr.New("panic in async handler", goerr.V("recover", r)))
				}
			}
		}()

		if err := handler(newCtx); err != nil {
			logger := ctxlog.From(newCtx)
			logger.Error("error in async handler", "error", err)
		}
	}()
}

// Wait blocks until every dispatched handler returned or ctx is done
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "async handlers still running")
	}
}

// newBackgroundContext creates a new background context preserving the
// ctxlog logger
func (d *Dispatcher) newBackgroundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	if d.timeout > 0 {
		return context.WithTimeout(newCtx, d.timeout)
	}
	return context.WithCancel(newCtx)
}
