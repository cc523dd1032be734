/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"github.com/suparena/tablectl/datastore"
	"github.com/suparena/tablectl/errors"
)

// Outcome is the terminal state of a workflow invocation.
type Outcome int

const (
	// OutcomeCompleted means the workflow ran to the end.
	OutcomeCompleted Outcome = iota

	// OutcomeCancelled means the user declined a confirmation gate before
	// any mutating call was issued. It is a normal terminal state, not an
	// error.
	OutcomeCancelled

	// OutcomeFailed means a sub-step failed; Err carries the reason and
	// Message states what state the table was left in.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result reports how a workflow invocation ended.
type Result struct {
	Outcome Outcome

	// RunID correlates log lines and partial-failure reports for one
	// invocation.
	RunID string

	// Message is a human-readable summary. For failed destructive
	// workflows it states whether the table was left untouched, wiped, or
	// partially restored.
	Message string

	// Err is the failure reason when Outcome is OutcomeFailed, and
	// errors.ErrUserCancelled when a confirmation gate was declined, so
	// callers can classify the ending without inspecting Outcome.
	Err error

	// ItemCount is the number of items the workflow handled, when that is
	// meaningful for the operation.
	ItemCount int64

	// Table carries the description produced by the status workflow.
	Table *datastore.TableInfo
}

func completed(runID, message string, count int64) Result {
	return Result{Outcome: OutcomeCompleted, RunID: runID, Message: message, ItemCount: count}
}

func cancelled(runID, message string) Result {
	return Result{Outcome: OutcomeCancelled, RunID: runID, Message: message, Err: errors.ErrUserCancelled}
}

func failed(runID, message string, err error) Result {
	return Result{Outcome: OutcomeFailed, RunID: runID, Message: message, Err: err}
}
