// Package action wraps a remote call with an execution state that a view can
// render from: idle, executing, succeeded or failed.
//
// An Action is not safe for concurrent use. Begin, Settle and Reset are meant
// to be called from the UI loop; Run only invokes the wrapped function and can
// be called from a command goroutine.
package action

import "context"

// Status is the execution state of an Action.
type Status int

const (
	StatusIdle Status = iota
	StatusExecuting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusExecuting:
		return "executing"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Func is the remote call an Action executes.
type Func[In any] func(ctx context.Context, in In) error

// Result is the outcome of a single execution. A nil Err means success.
type Result struct {
	Err error
}

// Succeeded reports whether the execution completed without error.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Action tracks the execution state of a Func.
type Action[In any] struct {
	fn     Func[In]
	status Status
	last   Result
}

// New creates an idle Action around fn.
func New[In any](fn Func[In]) *Action[In] {
	return &Action[In]{fn: fn}
}

// Status returns the current execution state.
func (a *Action[In]) Status() Status {
	return a.status
}

// IsExecuting reports whether an execution is in flight.
func (a *Action[In]) IsExecuting() bool {
	return a.status == StatusExecuting
}

// HasSucceeded reports whether the last execution succeeded.
func (a *Action[In]) HasSucceeded() bool {
	return a.status == StatusSucceeded
}

// HasErrored reports whether the last execution failed.
func (a *Action[In]) HasErrored() bool {
	return a.status == StatusFailed
}

// LastResult returns the result passed to the latest Settle.
func (a *Action[In]) LastResult() Result {
	return a.last
}

// Begin moves the action into the executing state. It returns false when an
// execution is already in flight, in which case the caller must not Run.
func (a *Action[In]) Begin() bool {
	if a.status == StatusExecuting {
		return false
	}

	a.status = StatusExecuting

	return true
}

// Run invokes the wrapped function. It does not touch the action's state.
func (a *Action[In]) Run(ctx context.Context, in In) Result {
	return Result{Err: a.fn(ctx, in)}
}

// Settle records the outcome of the in-flight execution.
func (a *Action[In]) Settle(res Result) {
	a.last = res
	if res.Succeeded() {
		a.status = StatusSucceeded
		return
	}

	a.status = StatusFailed
}

// Reset returns the action to idle.
func (a *Action[In]) Reset() {
	a.status = StatusIdle
	a.last = Result{}
}
