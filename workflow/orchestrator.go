/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/tablectl"
	"github.com/suparena/tablectl/bulk"
	"github.com/suparena/tablectl/datastore"
	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/formats"
	"github.com/suparena/tablectl/itemmodel"
)

// Orchestrator runs the lifecycle workflows against one table.
type Orchestrator struct {
	cfg     Config
	store   datastore.TableStore
	scanner *bulk.Scanner
	mutator *bulk.Mutator
	confirm Confirmer
	files   FileStore
	log     *slog.Logger
}

// New builds an Orchestrator from explicit configuration and collaborators.
func New(cfg Config, store datastore.TableStore, confirm Confirmer, files FileStore, log *slog.Logger) *Orchestrator {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var mutatorOpts []bulk.Option
	if cfg.Concurrency > 0 {
		mutatorOpts = append(mutatorOpts, bulk.WithConcurrency(cfg.Concurrency))
	}
	return &Orchestrator{
		cfg:     cfg,
		store:   store,
		scanner: bulk.NewScanner(store, cfg.PageSize),
		mutator: bulk.NewMutator(store, mutatorOpts...),
		confirm: confirm,
		files:   files,
		log:     log,
	}
}

func (o *Orchestrator) begin(op string) (string, *slog.Logger) {
	runID := uuid.NewString()
	log := o.log.With("run_id", runID, "op", op, "table", o.cfg.TableName)
	log.Info("workflow started")
	return runID, log
}

// Status reports the table description. Non-destructive.
func (o *Orchestrator) Status(ctx context.Context) Result {
	runID, log := o.begin("status")

	info, err := o.store.Describe(ctx)
	if err != nil {
		log.Error("describe failed", "error", err)
		return failed(runID, "could not describe the table", err)
	}

	log.Info("table described", "status", info.Status, "approx_items", info.ApproximateItemCount)
	res := completed(runID, fmt.Sprintf("table %s is %s with ~%d items (%d bytes)",
		info.Name, info.Status, info.ApproximateItemCount, info.SizeBytes), info.ApproximateItemCount)
	res.Table = info
	return res
}

// Snapshot reads the whole table and writes a snapshot artifact to path.
// An empty path selects <SnapshotsDir>/<table>-<timestamp>.json. In dry-run
// mode only an exact count is performed; nothing is serialized or written.
func (o *Orchestrator) Snapshot(ctx context.Context, path string) Result {
	runID, log := o.begin("snapshot")

	if o.cfg.DryRun {
		count, _, err := o.scanner.Count(ctx, true)
		if err != nil {
			log.Error("count failed", "error", err)
			return failed(runID, "could not count items", err)
		}
		log.Info("dry run complete", "items", count)
		return completed(runID, fmt.Sprintf("dry run: %d items would be snapshotted; no file written", count), count)
	}

	count, exact, err := o.scanner.Count(ctx, o.cfg.ExactCount)
	if err != nil {
		log.Error("count failed", "error", err)
		return failed(runID, "could not count items", err)
	}

	items, err := bulk.Collect(o.scanner.Scan(ctx))
	if err != nil {
		log.Error("scan failed", "error", err)
		return failed(runID, "could not scan the table", err)
	}

	meta := itemmodel.Metadata{
		TableName:      o.cfg.TableName,
		Timestamp:      strfmt.DateTime(time.Now().UTC()),
		ItemCount:      count,
		ItemCountExact: exact,
		Tool:           tablectl.Tool,
		Version:        tablectl.Version,
	}
	data, err := formats.Serialize(items, formats.FormatSnapshot, &meta)
	if err != nil {
		log.Error("serialize failed", "error", err)
		return failed(runID, "could not serialize the snapshot", err)
	}

	if path == "" {
		name := fmt.Sprintf("%s-%s.json", o.cfg.TableName, time.Now().UTC().Format("20060102T150405Z"))
		path = filepath.Join(o.cfg.SnapshotsDir, name)
	}
	if err := o.files.WriteFile(path, data); err != nil {
		log.Error("write failed", "path", path, "error", err)
		return failed(runID, "could not write the snapshot file", errors.NewResourceError("write snapshot "+path, err))
	}

	log.Info("snapshot written", "path", path, "items", len(items))
	return completed(runID, fmt.Sprintf("snapshot of %d items written to %s", len(items), path), int64(len(items)))
}

// Seed additively writes the items from file into the table. Existing items
// with the same key are overwritten; nothing is deleted, so re-running seed
// with the same file is safe.
func (o *Orchestrator) Seed(ctx context.Context, path string) Result {
	runID, log := o.begin("seed")

	items, _, res := o.parseFile(runID, log, path, true)
	if res != nil {
		return *res
	}

	if err := o.mutator.WriteAll(ctx, items); err != nil {
		log.Error("write failed", "error", err)
		if errors.IsMutation(err) {
			return failed(runID, "seed stopped part-way; the listed items were not written, previously written items remain", err)
		}
		return failed(runID, "seed failed; some items may have been written", err)
	}

	log.Info("seed complete", "items", len(items))
	return completed(runID, fmt.Sprintf("seeded %d items from %s", len(items), path), int64(len(items)))
}

// Wipe deletes every item after a confirmation gate. Declining the gate is
// a normal, non-error outcome.
func (o *Orchestrator) Wipe(ctx context.Context) Result {
	runID, log := o.begin("wipe")

	if !o.cfg.AssumeYes {
		ok, err := o.confirm.Confirm(fmt.Sprintf("Delete ALL items from table %q?", o.cfg.TableName))
		if err != nil {
			return failed(runID, "confirmation failed; the table was not touched", err)
		}
		if !ok {
			log.Info("wipe declined")
			return cancelled(runID, "wipe cancelled; the table was not touched")
		}
	}

	count, res := o.wipeItems(ctx, runID, log, "the table was not modified")
	if res != nil {
		return *res
	}

	log.Info("wipe complete", "items", count)
	return completed(runID, fmt.Sprintf("deleted %d items", count), count)
}

// Restore loads file into the table, wiping existing data first. The file
// is parsed and validated before any delete call is issued, so a malformed
// file leaves the table untouched. With reset true a confirmation gate
// precedes the wipe. A snapshot with zero items is valid: the table ends
// up empty.
func (o *Orchestrator) Restore(ctx context.Context, path string, reset bool) Result {
	runID, log := o.begin("restore")

	// Fail-fast ordering: a parse failure must short-circuit before any
	// destructive call.
	items, _, res := o.parseFile(runID, log, path, false)
	if res != nil {
		return *res
	}

	if reset && !o.cfg.AssumeYes {
		ok, err := o.confirm.Confirm(fmt.Sprintf("Reset table %q to the contents of %s?", o.cfg.TableName, path))
		if err != nil {
			return failed(runID, "confirmation failed; the table was not touched", err)
		}
		if !ok {
			log.Info("reset declined")
			return cancelled(runID, "reset cancelled; the table was not touched")
		}
	}

	wiped, wres := o.wipeItems(ctx, runID, log, "no new data was written")
	if wres != nil {
		return *wres
	}
	log.Info("table wiped", "items", wiped)

	if err := o.mutator.WriteAll(ctx, items); err != nil {
		log.Error("write failed", "error", err)
		if errors.IsMutation(err) {
			return failed(runID, "the table was wiped and only partially restored; the listed items were not written", err)
		}
		return failed(runID, "the table was wiped and the restore write failed; it may be partially restored", err)
	}

	log.Info("restore complete", "items", len(items))
	return completed(runID, fmt.Sprintf("restored %d items from %s", len(items), path), int64(len(items)))
}

// parseFile reads and parses an input file. requireItems enforces the
// at-least-one-item rule for seed. On any failure the returned Result
// states that the table was not touched; parsing always precedes side
// effects.
func (o *Orchestrator) parseFile(runID string, log *slog.Logger, path string, requireItems bool) ([]itemmodel.Item, *itemmodel.Metadata, *Result) {
	data, err := o.files.ReadFile(path)
	if err != nil {
		log.Error("read failed", "path", path, "error", err)
		res := failed(runID, "could not read the input file; the table was not touched",
			errors.NewResourceError("read "+path, err))
		return nil, nil, &res
	}

	format, err := formats.Detect(path, data)
	if err != nil {
		log.Error("detect failed", "path", path, "error", err)
		res := failed(runID, "could not determine the input format; the table was not touched", err)
		return nil, nil, &res
	}

	items, meta, err := formats.Parse(data, format)
	if err != nil {
		log.Error("parse failed", "path", path, "format", format.String(), "error", err)
		res := failed(runID, "the input file is invalid; the table was not touched", err)
		return nil, nil, &res
	}

	if requireItems && len(items) == 0 {
		log.Error("no items in input", "path", path)
		res := failed(runID, "the input file holds no items; the table was not touched",
			fmt.Errorf("%s: %w", path, errors.ErrEmptyInput))
		return nil, nil, &res
	}

	log.Info("input parsed", "path", path, "format", format.String(), "items", len(items))
	return items, meta, nil
}

// wipeItems scans keys and bulk-deletes them. untouchedNote is appended to
// failure messages that occur before any delete ran.
func (o *Orchestrator) wipeItems(ctx context.Context, runID string, log *slog.Logger, untouchedNote string) (int64, *Result) {
	info, err := o.store.Describe(ctx)
	if err != nil {
		log.Error("describe failed", "error", err)
		res := failed(runID, "could not describe the table; "+untouchedNote, err)
		return 0, &res
	}

	keys, err := o.scanner.ScanKeys(ctx)
	if err != nil {
		log.Error("key scan failed", "error", err)
		res := failed(runID, "could not scan keys; "+untouchedNote, err)
		return 0, &res
	}
	if len(keys) == 0 {
		return 0, nil
	}

	// Validate key projections before deleting anything.
	for i, key := range keys {
		if _, err := key.KeyProjection(info.PartitionKey, info.SortKey); err != nil {
			res := failed(runID, "key validation failed; "+untouchedNote, fmt.Errorf("key %d: %w", i, err))
			return 0, &res
		}
	}

	if err := o.mutator.DeleteAll(ctx, keys); err != nil {
		log.Error("delete failed", "error", err)
		if errors.IsMutation(err) {
			res := failed(runID, "the table was only partially wiped; the listed keys were not deleted", err)
			return 0, &res
		}
		res := failed(runID, "the wipe failed; the table may be partially wiped", err)
		return 0, &res
	}
	return int64(len(keys)), nil
}
