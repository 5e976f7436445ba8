// Package workflow holds the mark-as-duplicate confirmation flow: the
// precondition guard, the remote mutation and the success/failure sequence.
package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/NamanBalaji/payouts/internal/logger"
	"github.com/NamanBalaji/payouts/pkg/api"
)

const (
	SuccessMessage = "Successfully marked commission as duplicate."
	FailureMessage = "Failed to update commission status."
)

// Marker performs the remote mutation.
type Marker interface {
	MarkCommissionDuplicate(ctx context.Context, workspaceID, commissionID, idempotencyKey string) error
}

// Invalidator drops and refetches cached queries by key prefix.
type Invalidator interface {
	MutatePrefix(ctx context.Context, prefixes ...string) ([]string, error)
}

// Notifier shows a user-visible notification.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Request identifies the commission to mark and the workspace and program
// it belongs to.
type Request struct {
	WorkspaceID  string
	ProgramID    string
	CommissionID string
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// CanDispatch evaluates whether a request may be sent.
// Rule: workspace, program and commission must all be known.
func CanDispatch(req Request) GuardResult {
	switch {
	case req.WorkspaceID == "":
		return GuardResult{Reason: "no workspace selected"}
	case req.ProgramID == "":
		return GuardResult{Reason: "no program selected"}
	case req.CommissionID == "":
		return GuardResult{Reason: "no commission selected"}
	}

	return GuardResult{Allowed: true}
}

// Ready reports whether the request passes CanDispatch.
func (r Request) Ready() bool {
	return CanDispatch(r).Allowed
}

// Prefixes returns the cache prefixes affected by marking a commission in
// the request's program: all commission lists and the program's payouts.
func (r Request) Prefixes() []string {
	return []string{api.CommissionsPrefix(), api.PayoutsPrefix(r.ProgramID)}
}

// Outcome is the result of Confirm.
type Outcome int

const (
	// OutcomeSkipped means the guard failed and nothing was sent.
	OutcomeSkipped Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Workflow wires the mutation to its collaborators.
type Workflow struct {
	marker      Marker
	invalidator Invalidator
	notifier    Notifier
}

func New(marker Marker, invalidator Invalidator, notifier Notifier) *Workflow {
	return &Workflow{
		marker:      marker,
		invalidator: invalidator,
		notifier:    notifier,
	}
}

// Dispatch sends the mutation with a fresh idempotency key. The caller is
// responsible for the guard.
func (w *Workflow) Dispatch(ctx context.Context, req Request) error {
	logger.Infof("Marking commission %s as duplicate (workspace %s)", req.CommissionID, req.WorkspaceID)

	if err := w.marker.MarkCommissionDuplicate(ctx, req.WorkspaceID, req.CommissionID, uuid.NewString()); err != nil {
		logger.Errorf("Failed to mark commission %s as duplicate: %v", req.CommissionID, err)
		return fmt.Errorf("failed to mark commission %s as duplicate: %w", req.CommissionID, err)
	}

	return nil
}

// Invalidate drops and refetches the queries affected by req.
func (w *Workflow) Invalidate(ctx context.Context, req Request) error {
	keys, err := w.invalidator.MutatePrefix(ctx, req.Prefixes()...)
	if err != nil {
		logger.Warnf("Cache invalidation after marking %s incomplete: %v", req.CommissionID, err)
		return err
	}

	logger.Debugf("Invalidated %d cached queries after marking %s", len(keys), req.CommissionID)

	return nil
}

// Confirm runs the whole flow synchronously. When the guard fails nothing
// happens. On success it notifies, invalidates the affected caches and then
// calls closeFn, in that order. On failure it only notifies; closeFn is not
// called so the caller can retry.
func (w *Workflow) Confirm(ctx context.Context, req Request, closeFn func()) Outcome {
	if guard := CanDispatch(req); !guard.Allowed {
		logger.Debugf("Not dispatching mark-duplicate: %s", guard.Reason)
		return OutcomeSkipped
	}

	if err := w.Dispatch(ctx, req); err != nil {
		w.notifier.Error(FailureMessage)
		return OutcomeFailed
	}

	w.notifier.Success(SuccessMessage)
	// A failed refetch leaves the lists stale but the mutation already went
	// through, so the flow still completes.
	_ = w.Invalidate(ctx, req)

	if closeFn != nil {
		closeFn()
	}

	return OutcomeSucceeded
}
