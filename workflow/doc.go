/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package workflow sequences the scanner, mutator, and format adapters into
the user-facing table lifecycle operations: status, snapshot, seed,
restore, and wipe.

Each invocation is an independent state machine with no state persisted
across invocations, terminating in Completed, Cancelled, or Failed. Seed
is additive; restore is the wipe-then-load path, with reset adding a
confirmation gate. Destructive workflows validate their input file before
any delete call is issued, so a malformed file always leaves the table
untouched. After a failure the Result message states whether the table was
left untouched, wiped, or partially restored. The store offers no
multi-item transaction to roll back, so the operator decides the next safe
action.

The tool assumes single-writer usage per invocation; no optimistic
concurrency control is attempted against concurrent external writers.
*/
package workflow
