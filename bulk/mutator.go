/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suparena/tablectl/codec"
	"github.com/suparena/tablectl/datastore"
	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/itemmodel"
)

// DynamoDB batch-write ceilings.
const (
	// MaxBatchItems is the per-call request cardinality limit.
	MaxBatchItems = 25

	// MaxBatchBytes is the per-call payload limit.
	MaxBatchBytes = 16 << 20

	// MaxItemBytes is the per-item size limit.
	MaxItemBytes = 400 << 10
)

// Mutator performs chunked bulk writes and deletes.
type Mutator struct {
	store       datastore.TableStore
	concurrency int
	maxAttempts int
	baseBackoff time.Duration
	maxBackoff  time.Duration
}

// Option configures a Mutator.
type Option func(*Mutator)

// WithConcurrency bounds the number of chunks in flight at once.
func WithConcurrency(n int) Option {
	return func(m *Mutator) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithRetry sets the per-chunk retry budget and backoff window.
func WithRetry(maxAttempts int, base, cap time.Duration) Option {
	return func(m *Mutator) {
		if maxAttempts > 0 {
			m.maxAttempts = maxAttempts
		}
		if base > 0 {
			m.baseBackoff = base
		}
		if cap > 0 {
			m.maxBackoff = cap
		}
	}
}

// NewMutator creates a Mutator with bounded concurrency (default 4 chunks
// in flight) and a capped exponential retry policy (5 attempts, 100ms base,
// 5s cap).
func NewMutator(store datastore.TableStore, opts ...Option) *Mutator {
	m := &Mutator{
		store:       store,
		concurrency: 4,
		maxAttempts: 5,
		baseBackoff: 100 * time.Millisecond,
		maxBackoff:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WriteAll writes every item, in store-limit-compliant chunks, retrying
// unprocessed items until they commit or the retry budget runs out.
// Chunk completion order is unspecified; rewriting the same key is safe, so
// WriteAll as a whole is safe to retry wholesale.
func (m *Mutator) WriteAll(ctx context.Context, items []itemmodel.Item) error {
	leftovers, err := m.mutateAll(ctx, items, m.store.BatchWrite)
	if err != nil {
		return err
	}
	if len(leftovers) > 0 {
		unresolved, convErr := rawsToItems(leftovers)
		if convErr != nil {
			return convErr
		}
		return &errors.PartialWriteError{Attempts: m.maxAttempts, Unprocessed: unresolved}
	}
	return nil
}

// DeleteAll deletes every key the same way.
func (m *Mutator) DeleteAll(ctx context.Context, keys []itemmodel.Item) error {
	leftovers, err := m.mutateAll(ctx, keys, m.store.BatchDelete)
	if err != nil {
		return err
	}
	if len(leftovers) > 0 {
		unresolved, convErr := rawsToItems(leftovers)
		if convErr != nil {
			return convErr
		}
		return &errors.PartialDeleteError{Attempts: m.maxAttempts, Unprocessed: unresolved}
	}
	return nil
}

type mutateFunc func(ctx context.Context, items []datastore.RawItem) ([]datastore.RawItem, error)

func (m *Mutator) mutateAll(ctx context.Context, items []itemmodel.Item, call mutateFunc) ([]datastore.RawItem, error) {
	raws := make([]datastore.RawItem, len(items))
	sizes := make([]int, len(items))
	for i, item := range items {
		raw, err := codec.ToAttributeMap(item)
		if err != nil {
			return nil, err
		}
		size := estimateItemSize(raw)
		if size > MaxItemBytes {
			return nil, fmt.Errorf("item %d is ~%d bytes, over the %d-byte item ceiling", i, size, MaxItemBytes)
		}
		raws[i] = raw
		sizes[i] = size
	}

	chunks := makeChunks(raws, sizes)
	if len(chunks) == 0 {
		return nil, nil
	}

	jobs := make(chan []datastore.RawItem)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	var leftovers []datastore.RawItem

	workers := m.concurrency
	if workers > len(chunks) {
		workers = len(chunks)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				remaining, err := m.mutateChunk(ctx, chunk, call)
				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				leftovers = append(leftovers, remaining...)
				mu.Unlock()
			}
		}()
	}

	for _, chunk := range chunks {
		jobs <- chunk
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return leftovers, nil
}

// mutateChunk issues one chunk and retries its unprocessed remainder with
// capped exponential backoff. The remainder after the final attempt is
// returned as data; chunk retries never block other chunks.
func (m *Mutator) mutateChunk(ctx context.Context, chunk []datastore.RawItem, call mutateFunc) ([]datastore.RawItem, error) {
	remaining := chunk
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		unprocessed, err := call(ctx, remaining)
		if err != nil {
			if !datastore.Retryable(err) {
				return nil, err
			}
			// Throttled at the call level: the whole remainder is unprocessed.
		} else {
			remaining = unprocessed
		}

		if len(remaining) == 0 {
			return nil, nil
		}
		if attempt == m.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.backoff(attempt)):
		}
	}
	return remaining, nil
}

func (m *Mutator) backoff(attempt int) time.Duration {
	d := m.baseBackoff << (attempt - 1)
	if d > m.maxBackoff || d <= 0 {
		return m.maxBackoff
	}
	return d
}

// makeChunks partitions raws into batches within both the cardinality and
// byte ceilings.
func makeChunks(raws []datastore.RawItem, sizes []int) [][]datastore.RawItem {
	var chunks [][]datastore.RawItem
	var current []datastore.RawItem
	currentBytes := 0

	for i, raw := range raws {
		if len(current) > 0 && (len(current) == MaxBatchItems || currentBytes+sizes[i] > MaxBatchBytes) {
			chunks = append(chunks, current)
			current = nil
			currentBytes = 0
		}
		current = append(current, raw)
		currentBytes += sizes[i]
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

func rawsToItems(raws []datastore.RawItem) ([]itemmodel.Item, error) {
	items := make([]itemmodel.Item, 0, len(raws))
	for _, raw := range raws {
		item, err := codec.FromAttributeMap(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
