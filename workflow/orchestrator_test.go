/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablectl/datastore"
	"github.com/suparena/tablectl/datastore/mock"
	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/formats"
)

// memFileStore keeps files in memory for workflow tests.
type memFileStore struct {
	files map[string][]byte
}

func newMemFileStore() *memFileStore {
	return &memFileStore{files: make(map[string][]byte)}
}

func (m *memFileStore) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return data, nil
}

func (m *memFileStore) WriteFile(path string, data []byte) error {
	m.files[path] = data
	return nil
}

// recordingConfirmer answers a fixed way and counts how often it is asked.
type recordingConfirmer struct {
	answer bool
	calls  int
}

func (c *recordingConfirmer) Confirm(string) (bool, error) {
	c.calls++
	return c.answer, nil
}

func seedTable(store *mock.TableStore, n int) {
	for i := 0; i < n; i++ {
		store.SeedRaw(datastore.RawItem{
			"pk":   &types.AttributeValueMemberS{Value: fmt.Sprintf("row#%02d", i)},
			"data": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", i)},
		})
	}
}

func newTestOrchestrator(store *mock.TableStore, confirm Confirmer, files FileStore, mutate func(*Config)) *Orchestrator {
	cfg := Config{
		TableName:  "widgets",
		Region:     "us-east-1",
		PageSize:   5,
		ExactCount: true,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	if confirm == nil {
		confirm = StaticConfirmer(true)
	}
	if files == nil {
		files = newMemFileStore()
	}
	return New(cfg, store, confirm, files, nil)
}

func TestStatus(t *testing.T) {
	t.Run("ReportsTableInfo", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 3)

		res := newTestOrchestrator(store, nil, nil, nil).Status(context.Background())
		assert.Equal(t, OutcomeCompleted, res.Outcome)
		require.NotNil(t, res.Table)
		assert.Equal(t, "widgets", res.Table.Name)
		assert.Equal(t, int64(3), res.Table.ApproximateItemCount)
		assert.NotEmpty(t, res.RunID)
	})

	t.Run("DescribeFailure", func(t *testing.T) {
		store := mock.New("widgets", "pk", "").WithDescribeError(fmt.Errorf("no such table"))
		res := newTestOrchestrator(store, nil, nil, nil).Status(context.Background())
		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.Error(t, res.Err)
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("WritesSnapshotFile", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 3)
		files := newMemFileStore()

		res := newTestOrchestrator(store, nil, files, nil).Snapshot(context.Background(), "out.json")
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, int64(3), res.ItemCount)

		data, ok := files.files["out.json"]
		require.True(t, ok)

		items, meta, err := formats.Parse(data, formats.FormatSnapshot)
		require.NoError(t, err)
		assert.Len(t, items, 3)
		require.NotNil(t, meta)
		assert.Equal(t, "widgets", meta.TableName)
		assert.Equal(t, int64(3), meta.ItemCount)
		assert.True(t, meta.ItemCountExact)
	})

	t.Run("DefaultFilenameLandsInSnapshotsDir", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 1)
		files := newMemFileStore()

		res := newTestOrchestrator(store, nil, files, func(c *Config) {
			c.SnapshotsDir = "backups"
		}).Snapshot(context.Background(), "")
		require.Equal(t, OutcomeCompleted, res.Outcome)

		require.Len(t, files.files, 1)
		for path := range files.files {
			assert.Contains(t, path, "backups/widgets-")
			assert.Contains(t, path, ".json")
		}
	})

	t.Run("DryRunWritesNothing", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 4)
		files := newMemFileStore()

		res := newTestOrchestrator(store, nil, files, func(c *Config) {
			c.DryRun = true
		}).Snapshot(context.Background(), "out.json")
		require.Equal(t, OutcomeCompleted, res.Outcome)
		assert.Equal(t, int64(4), res.ItemCount)
		assert.Empty(t, files.files)
	})

	t.Run("ScanFailure", func(t *testing.T) {
		store := mock.New("widgets", "pk", "").WithScanError(fmt.Errorf("throttled"))
		res := newTestOrchestrator(store, nil, nil, nil).Snapshot(context.Background(), "out.json")
		assert.Equal(t, OutcomeFailed, res.Outcome)
	})
}

func TestSeed(t *testing.T) {
	t.Run("AdditiveLoad", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 2)

		files := newMemFileStore()
		files.files["seed.json"] = []byte(`[{"pk":"new#1","data":7},{"pk":"new#2","data":8}]`)

		res := newTestOrchestrator(store, nil, files, nil).Seed(context.Background(), "seed.json")
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, int64(2), res.ItemCount)
		assert.Equal(t, 4, store.Len(), "existing rows survive a seed")
	})

	t.Run("RerunWithSameFileIsStable", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		files := newMemFileStore()
		files.files["seed.json"] = []byte(`[{"pk":"w1","data":1},{"pk":"w2","data":2},{"pk":"w3","data":3}]`)
		o := newTestOrchestrator(store, nil, files, nil)

		res := o.Seed(context.Background(), "seed.json")
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		first := store.Items()

		res = o.Seed(context.Background(), "seed.json")
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)

		// Same keys overwrite in place: nothing duplicated, nothing missing.
		assert.Equal(t, 3, store.Len())
		assert.Equal(t, first, store.Items())
	})

	t.Run("TabularInput", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		files := newMemFileStore()
		files.files["seed.csv"] = []byte("pk,name\nw1,gear\nw2,sprocket\n")

		res := newTestOrchestrator(store, nil, files, nil).Seed(context.Background(), "seed.csv")
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("EmptyInputFails", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		files := newMemFileStore()
		files.files["seed.json"] = []byte(`[]`)

		res := newTestOrchestrator(store, nil, files, nil).Seed(context.Background(), "seed.json")
		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, errors.ErrEmptyInput)
		assert.Empty(t, store.WriteCalls())
	})

	t.Run("MissingFileFails", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		res := newTestOrchestrator(store, nil, nil, nil).Seed(context.Background(), "absent.json")
		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.True(t, errors.IsResource(res.Err))
	})
}

func TestWipe(t *testing.T) {
	t.Run("ConfirmedWipeEmptiesTable", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 12)
		confirm := &recordingConfirmer{answer: true}

		res := newTestOrchestrator(store, confirm, nil, nil).Wipe(context.Background())
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, int64(12), res.ItemCount)
		assert.Equal(t, 0, store.Len())
		assert.Equal(t, 1, confirm.calls)
	})

	t.Run("DeclinedWipeTouchesNothing", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 12)

		res := newTestOrchestrator(store, &recordingConfirmer{answer: false}, nil, nil).Wipe(context.Background())
		assert.Equal(t, OutcomeCancelled, res.Outcome)
		assert.True(t, errors.IsUserCancelled(res.Err), "declined gates are classifiable")
		assert.Equal(t, 12, store.Len())
		assert.Empty(t, store.DeleteCalls())
	})

	t.Run("AssumeYesSkipsThePrompt", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 2)
		confirm := &recordingConfirmer{answer: false}

		res := newTestOrchestrator(store, confirm, nil, func(c *Config) {
			c.AssumeYes = true
		}).Wipe(context.Background())
		require.Equal(t, OutcomeCompleted, res.Outcome)
		assert.Equal(t, 0, confirm.calls)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("CompositeKeyTable", func(t *testing.T) {
		store := mock.New("orders", "pk", "sk")
		for i := 0; i < 6; i++ {
			store.SeedRaw(datastore.RawItem{
				"pk":   &types.AttributeValueMemberS{Value: fmt.Sprintf("order#%d", i/2)},
				"sk":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", i%2)},
				"body": &types.AttributeValueMemberS{Value: "line"},
			})
		}

		res := newTestOrchestrator(store, StaticConfirmer(true), nil, nil).Wipe(context.Background())
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, int64(6), res.ItemCount)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("EmptyTableCompletes", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		res := newTestOrchestrator(store, nil, nil, func(c *Config) {
			c.AssumeYes = true
		}).Wipe(context.Background())
		require.Equal(t, OutcomeCompleted, res.Outcome)
		assert.Equal(t, int64(0), res.ItemCount)
	})
}

func TestRestore(t *testing.T) {
	t.Run("ReplacesTableContents", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 5)

		files := newMemFileStore()
		files.files["snap.json"] = []byte(`{"metadata":{"table_name":"widgets"},"data":[{"pk":"restored#1"},{"pk":"restored#2"}]}`)

		res := newTestOrchestrator(store, nil, files, nil).Restore(context.Background(), "snap.json", false)
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, int64(2), res.ItemCount)
		assert.Equal(t, 2, store.Len(), "pre-existing rows are gone")
	})

	t.Run("EmptySnapshotEmptiesTable", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 5)

		files := newMemFileStore()
		files.files["snap.json"] = []byte(`{"metadata":{},"data":[]}`)

		res := newTestOrchestrator(store, nil, files, nil).Restore(context.Background(), "snap.json", false)
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("MalformedFileLeavesTableUntouched", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 5)

		files := newMemFileStore()
		files.files["snap.json"] = []byte(`{"metadata":{},"data":[{]`)

		res := newTestOrchestrator(store, nil, files, nil).Restore(context.Background(), "snap.json", false)
		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.Contains(t, res.Message, "not touched")
		assert.Equal(t, 5, store.Len())
		assert.Empty(t, store.DeleteCalls(), "parsing precedes every destructive call")
	})

	t.Run("ResetAsksFirst", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		seedTable(store, 5)
		confirm := &recordingConfirmer{answer: false}

		files := newMemFileStore()
		files.files["snap.json"] = []byte(`[{"pk":"r1"}]`)

		res := newTestOrchestrator(store, confirm, files, nil).Restore(context.Background(), "snap.json", true)
		assert.Equal(t, OutcomeCancelled, res.Outcome)
		assert.True(t, errors.IsUserCancelled(res.Err))
		assert.Equal(t, 1, confirm.calls)
		assert.Equal(t, 5, store.Len())
	})

	t.Run("ItemArrayInputAccepted", func(t *testing.T) {
		store := mock.New("widgets", "pk", "")
		files := newMemFileStore()
		files.files["fixture.json"] = []byte(`[{"pk":"a"},{"pk":"b"},{"pk":"c"}]`)

		res := newTestOrchestrator(store, nil, files, nil).Restore(context.Background(), "fixture.json", false)
		require.Equal(t, OutcomeCompleted, res.Outcome, "unexpected failure: %v", res.Err)
		assert.Equal(t, 3, store.Len())
	})
}
