/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.TableStore for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablectl/datastore"
)

// TableStore is a thread-safe in-memory table for tests. Items are keyed by
// the configured partition (and optional sort) key and scanned in sorted key
// order so pagination is deterministic.
type TableStore struct {
	mu sync.Mutex

	name         string
	partitionKey string
	sortKey      string
	status       string
	createdAt    time.Time

	items map[string]datastore.RawItem

	approxCount  *int64 // overrides live count when set
	describeErr  error
	scanErr      error
	writeErr     error
	deleteErr    error
	unprocWrites []int // per-call counts of items to leave unprocessed
	unprocDels   []int

	writeCalls  [][]datastore.RawItem
	deleteCalls [][]datastore.RawItem
	scanCalls   int
}

// New creates a mock table with the given key schema. sortKey may be empty.
func New(name, partitionKey, sortKey string) *TableStore {
	return &TableStore{
		name:         name,
		partitionKey: partitionKey,
		sortKey:      sortKey,
		status:       "ACTIVE",
		createdAt:    time.Now(),
		items:        make(map[string]datastore.RawItem),
	}
}

// WithApproximateCount fixes the count Describe reports, simulating the
// store's stale cached figure.
func (m *TableStore) WithApproximateCount(n int64) *TableStore {
	m.approxCount = &n
	return m
}

// WithDescribeError makes Describe return an error
func (m *TableStore) WithDescribeError(err error) *TableStore {
	m.describeErr = err
	return m
}

// WithScanError makes ScanPage return an error
func (m *TableStore) WithScanError(err error) *TableStore {
	m.scanErr = err
	return m
}

// WithWriteError makes BatchWrite return an error
func (m *TableStore) WithWriteError(err error) *TableStore {
	m.writeErr = err
	return m
}

// WithDeleteError makes BatchDelete return an error
func (m *TableStore) WithDeleteError(err error) *TableStore {
	m.deleteErr = err
	return m
}

// QueueUnprocessedWrites scripts the next BatchWrite calls: call i leaves
// counts[i] of its items uncommitted and reports them unprocessed. Calls
// beyond the script process everything.
func (m *TableStore) QueueUnprocessedWrites(counts ...int) *TableStore {
	m.unprocWrites = append(m.unprocWrites, counts...)
	return m
}

// QueueUnprocessedDeletes scripts the next BatchDelete calls the same way.
func (m *TableStore) QueueUnprocessedDeletes(counts ...int) *TableStore {
	m.unprocDels = append(m.unprocDels, counts...)
	return m
}

// Describe returns the mock table description.
func (m *TableStore) Describe(ctx context.Context) (*datastore.TableInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.describeErr != nil {
		return nil, m.describeErr
	}

	count := int64(len(m.items))
	if m.approxCount != nil {
		count = *m.approxCount
	}
	return &datastore.TableInfo{
		Name:                 m.name,
		Status:               m.status,
		ApproximateItemCount: count,
		SizeBytes:            int64(len(m.items)) * 128,
		CreatedAt:            m.createdAt,
		PartitionKey:         m.partitionKey,
		SortKey:              m.sortKey,
	}, nil
}

// ScanPage reads one page in sorted key order.
func (m *TableStore) ScanPage(ctx context.Context, in *datastore.ScanPageInput) (*datastore.ScanPageOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanCalls++
	if m.scanErr != nil {
		return nil, m.scanErr
	}

	keys := m.sortedKeys()
	start := 0
	if in.StartToken != nil {
		after := m.keyString(in.StartToken)
		for i, k := range keys {
			if k == after {
				start = i + 1
				break
			}
		}
	}

	end := len(keys)
	if in.Limit > 0 && start+int(in.Limit) < end {
		end = start + int(in.Limit)
	}

	out := &datastore.ScanPageOutput{ScannedCount: int32(end - start)}
	if !in.CountOnly {
		for _, k := range keys[start:end] {
			item := m.items[k]
			if in.KeysOnly {
				item = m.projectKey(item)
			}
			out.Items = append(out.Items, item)
		}
	}
	if end < len(keys) {
		out.NextToken = m.projectKey(m.items[keys[end-1]])
	}
	return out, nil
}

// BatchWrite stores items, honoring any scripted unprocessed counts.
func (m *TableStore) BatchWrite(ctx context.Context, items []datastore.RawItem) ([]datastore.RawItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCalls = append(m.writeCalls, items)
	if m.writeErr != nil {
		return nil, m.writeErr
	}

	skip := m.popScript(&m.unprocWrites)
	if skip > len(items) {
		skip = len(items)
	}

	var unprocessed []datastore.RawItem
	for i, item := range items {
		if i >= len(items)-skip {
			unprocessed = append(unprocessed, item)
			continue
		}
		m.items[m.keyString(item)] = item
	}
	return unprocessed, nil
}

// BatchDelete removes keys, honoring any scripted unprocessed counts.
func (m *TableStore) BatchDelete(ctx context.Context, keys []datastore.RawItem) ([]datastore.RawItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCalls = append(m.deleteCalls, keys)
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}

	skip := m.popScript(&m.unprocDels)
	if skip > len(keys) {
		skip = len(keys)
	}

	var unprocessed []datastore.RawItem
	for i, key := range keys {
		if i >= len(keys)-skip {
			unprocessed = append(unprocessed, key)
			continue
		}
		delete(m.items, m.keyString(key))
	}
	return unprocessed, nil
}

// Helper methods for testing

// SeedRaw loads items directly into the table.
func (m *TableStore) SeedRaw(items ...datastore.RawItem) *TableStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.items[m.keyString(item)] = item
	}
	return m
}

// Len returns the number of stored items.
func (m *TableStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Items returns a copy of the stored items in sorted key order.
func (m *TableStore) Items() []datastore.RawItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]datastore.RawItem, 0, len(m.items))
	for _, k := range m.sortedKeys() {
		out = append(out, m.items[k])
	}
	return out
}

// WriteCalls returns the item slices passed to each BatchWrite call.
func (m *TableStore) WriteCalls() [][]datastore.RawItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]datastore.RawItem(nil), m.writeCalls...)
}

// DeleteCalls returns the key slices passed to each BatchDelete call.
func (m *TableStore) DeleteCalls() [][]datastore.RawItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]datastore.RawItem(nil), m.deleteCalls...)
}

func (m *TableStore) popScript(script *[]int) int {
	if len(*script) == 0 {
		return 0
	}
	n := (*script)[0]
	*script = (*script)[1:]
	return n
}

func (m *TableStore) sortedKeys() []string {
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *TableStore) keyString(item datastore.RawItem) string {
	pk := scalarText(item[m.partitionKey])
	if m.sortKey == "" {
		return pk
	}
	return pk + "|" + scalarText(item[m.sortKey])
}

func (m *TableStore) projectKey(item datastore.RawItem) datastore.RawItem {
	key := datastore.RawItem{m.partitionKey: item[m.partitionKey]}
	if m.sortKey != "" {
		key[m.sortKey] = item[m.sortKey]
	}
	return key
}

func scalarText(av types.AttributeValue) string {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	default:
		return fmt.Sprintf("%v", av)
	}
}
