/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package tablectl is a lifecycle tool for schemaless DynamoDB tables.

It moves whole tables between DynamoDB and human-editable files through a
small set of workflows: inspect a table, snapshot it to disk, seed it from a
file, restore it from a snapshot, or wipe it clean.

The repository is organized around two core subsystems:

  - itemmodel + codec: a format-agnostic tagged Value model and the
    bidirectional converter between that model and DynamoDB's typed
    attribute representation.
  - bulk: the synchronization engine performing paginated full-table reads
    and chunked, retry-safe batch writes/deletes within DynamoDB's batch
    limits.

The workflow package composes these, together with the formats package
(JSON item arrays, metadata-wrapped snapshots, CSV), into the user-facing
operations exposed by cmd/tablectl.

Basic usage:

	store, err := ddb.New(ctx, region, tableName)
	if err != nil {
	    log.Fatal(err)
	}
	orch := workflow.New(cfg, store, workflow.NewTerminalConfirmer(os.Stdin, os.Stdout), workflow.OSFileStore{}, logger)
	res := orch.Snapshot(ctx, "backup.json")
	if res.Outcome == workflow.OutcomeFailed {
	    log.Fatal(res.Err)
	}
*/
package tablectl
