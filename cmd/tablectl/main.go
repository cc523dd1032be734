/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package main provides the entry point for tablectl, the table lifecycle
// management tool. It wires the DynamoDB-backed store and the workflow
// orchestrator behind a small set of subcommands.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/suparena/tablectl"
	"github.com/suparena/tablectl/datastore/ddb"
	"github.com/suparena/tablectl/workflow"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	info := tablectl.GetVersionInfo()
	return &cli.App{
		Name:    tablectl.Tool,
		Usage:   "inspect, snapshot, seed, restore and wipe a table",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.GitCommit, info.BuildDate),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			statusCommand(),
			snapshotCommand(),
			seedCommand(),
			restoreCommand(),
			wipeCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "table",
			Aliases: []string{"t"},
			Usage:   "target table name",
			EnvVars: []string{"TABLE_NAME"},
		},
		&cli.StringFlag{
			Name:    "region",
			Aliases: []string{"r"},
			Usage:   "AWS region of the table",
			EnvVars: []string{"AWS_REGION"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{"TABLECTL_CONFIG"},
		},
		&cli.Int64Flag{
			Name:  "page-size",
			Usage: "scan page size (0 selects the default)",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "bulk write/delete chunks in flight (0 selects the default)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "enable debug logging",
		},
	}
}

// fileConfig mirrors the YAML configuration file. Flags and environment
// variables override anything set here.
type fileConfig struct {
	Table        string `yaml:"table"`
	Region       string `yaml:"region"`
	SnapshotsDir string `yaml:"snapshots_dir"`
	PageSize     int32  `yaml:"page_size"`
	Concurrency  int    `yaml:"concurrency"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// resolveConfig merges flags, environment and the YAML file into a
// workflow.Config. Precedence is flag/env over file over defaults.
func resolveConfig(c *cli.Context) (workflow.Config, error) {
	fc, err := loadFileConfig(c.String("config"))
	if err != nil {
		return workflow.Config{}, err
	}

	cfg := workflow.Config{
		TableName:    c.String("table"),
		Region:       c.String("region"),
		SnapshotsDir: c.String("snapshots-dir"),
		PageSize:     int32(c.Int64("page-size")),
		Concurrency:  c.Int("concurrency"),
		DryRun:       c.Bool("dry-run"),
		ExactCount:   c.Bool("exact-count"),
		AssumeYes:    c.Bool("yes"),
	}
	if cfg.TableName == "" {
		cfg.TableName = fc.Table
	}
	if cfg.Region == "" {
		cfg.Region = fc.Region
	}
	if cfg.SnapshotsDir == "" {
		cfg.SnapshotsDir = fc.SnapshotsDir
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = fc.PageSize
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = fc.Concurrency
	}

	if cfg.TableName == "" {
		return workflow.Config{}, fmt.Errorf("a table name is required (--table or TABLE_NAME)")
	}
	if cfg.Region == "" {
		return workflow.Config{}, fmt.Errorf("a region is required (--region or AWS_REGION)")
	}
	return cfg, nil
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newOrchestrator(c *cli.Context) (*workflow.Orchestrator, error) {
	cfg, err := resolveConfig(c)
	if err != nil {
		return nil, err
	}
	store, err := ddb.New(c.Context, cfg.Region, cfg.TableName)
	if err != nil {
		return nil, fmt.Errorf("connect to table %s: %w", cfg.TableName, err)
	}
	confirm := workflow.NewTerminalConfirmer(os.Stdin, os.Stderr)
	return workflow.New(cfg, store, confirm, workflow.OSFileStore{}, newLogger(c)), nil
}

// report prints the workflow result and maps it to an exit code. A
// cancelled run exits zero: declining a gate is not a failure.
func report(res workflow.Result) error {
	if res.Outcome == workflow.OutcomeFailed {
		return cli.Exit(fmt.Sprintf("%s: %v", res.Message, res.Err), 1)
	}
	fmt.Println(res.Message)
	return nil
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "describe the table and its approximate item count",
		Action: func(c *cli.Context) error {
			o, err := newOrchestrator(c)
			if err != nil {
				return err
			}
			res := o.Status(c.Context)
			if res.Table != nil {
				fmt.Printf("table:          %s\n", res.Table.Name)
				fmt.Printf("status:         %s\n", res.Table.Status)
				fmt.Printf("items (approx): %d\n", res.Table.ApproximateItemCount)
				fmt.Printf("size (bytes):   %d\n", res.Table.SizeBytes)
				fmt.Printf("partition key:  %s\n", res.Table.PartitionKey)
				if res.Table.SortKey != "" {
					fmt.Printf("sort key:       %s\n", res.Table.SortKey)
				}
				return nil
			}
			return report(res)
		},
	}
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "scan the table and write a snapshot file",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "snapshots-dir",
				Usage:   "directory for default-named snapshot files",
				EnvVars: []string{"SNAPSHOTS_DIR"},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "count items only, write nothing",
			},
			&cli.BoolFlag{
				Name:  "exact-count",
				Usage: "count by full scan instead of the cached approximate figure",
			},
		},
		Action: func(c *cli.Context) error {
			o, err := newOrchestrator(c)
			if err != nil {
				return err
			}
			return report(o.Snapshot(c.Context, c.Args().First()))
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "additively load items from a file into the table",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("seed takes exactly one input file")
			}
			o, err := newOrchestrator(c)
			if err != nil {
				return err
			}
			return report(o.Seed(c.Context, c.Args().First()))
		},
	}
}

func restoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "wipe the table and load it from a file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "ask for confirmation before wiping",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "skip the reset confirmation prompt",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("restore takes exactly one input file")
			}
			o, err := newOrchestrator(c)
			if err != nil {
				return err
			}
			return report(o.Restore(c.Context, c.Args().First(), c.Bool("reset")))
		},
	}
}

func wipeCommand() *cli.Command {
	return &cli.Command{
		Name:  "wipe",
		Usage: "delete every item from the table",
		Action: func(c *cli.Context) error {
			o, err := newOrchestrator(c)
			if err != nil {
				return err
			}
			return report(o.Wipe(c.Context))
		},
	}
}
