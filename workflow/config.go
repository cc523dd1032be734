/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

// Config carries everything an Orchestrator needs for one invocation.
// It is passed in explicitly at construction; the core keeps no
// process-wide mutable defaults.
type Config struct {
	// TableName is the target table.
	TableName string

	// Region is the store region, recorded for reporting.
	Region string

	// SnapshotsDir is where snapshot files land when no explicit path is
	// given. Default "snapshots".
	SnapshotsDir string

	// PageSize caps scan pages; zero selects the scanner default.
	PageSize int32

	// Concurrency bounds chunks in flight during bulk mutations; zero
	// selects the mutator default.
	Concurrency int

	// DryRun makes snapshot perform an exact count only, writing nothing.
	DryRun bool

	// ExactCount makes snapshot count by full scan instead of using the
	// store's cached approximate figure.
	ExactCount bool

	// AssumeYes bypasses the confirmation gates for scripted use. The CLI
	// exposes it only on restore --reset; wipe always prompts there.
	AssumeYes bool
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.SnapshotsDir == "" {
		out.SnapshotsDir = "snapshots"
	}
	return out
}
