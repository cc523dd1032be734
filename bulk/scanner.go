/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"context"
	"fmt"

	"github.com/suparena/tablectl/codec"
	"github.com/suparena/tablectl/datastore"
	"github.com/suparena/tablectl/itemmodel"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 100

// ScanResult is one element of a scan stream: an Item or a terminal error.
type ScanResult struct {
	Item itemmodel.Item
	Err  error
}

// Scanner performs paginated full-table reads.
type Scanner struct {
	store    datastore.TableStore
	pageSize int32
}

// NewScanner creates a Scanner. pageSize <= 0 selects DefaultPageSize.
func NewScanner(store datastore.TableStore, pageSize int32) *Scanner {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Scanner{store: store, pageSize: pageSize}
}

// Scan streams the whole table as converted Items. The sequence is lazy and
// finite and cannot be restarted once consumed; the channel closes after
// the last page or after the first error, whichever comes first.
func (s *Scanner) Scan(ctx context.Context) <-chan ScanResult {
	results := make(chan ScanResult, s.pageSize)

	go func() {
		defer close(results)

		var token datastore.RawItem
		for {
			page, err := s.store.ScanPage(ctx, &datastore.ScanPageInput{
				StartToken: token,
				Limit:      s.pageSize,
			})
			if err != nil {
				results <- ScanResult{Err: err}
				return
			}

			for _, raw := range page.Items {
				item, err := codec.FromAttributeMap(raw)
				if err != nil {
					results <- ScanResult{Err: err}
					return
				}
				select {
				case <-ctx.Done():
					results <- ScanResult{Err: ctx.Err()}
					return
				case results <- ScanResult{Item: item}:
				}
			}

			if page.NextToken == nil {
				return
			}
			token = page.NextToken
		}
	}()

	return results
}

// Collect drains a scan stream into a slice, stopping at the first error.
func Collect(results <-chan ScanResult) ([]itemmodel.Item, error) {
	var items []itemmodel.Item
	for res := range results {
		if res.Err != nil {
			return nil, res.Err
		}
		items = append(items, res.Item)
	}
	return items, nil
}

// ScanKeys reads only the key attributes of every item, for bulk deletion.
func (s *Scanner) ScanKeys(ctx context.Context) ([]itemmodel.Item, error) {
	var keys []itemmodel.Item
	var token datastore.RawItem
	for {
		page, err := s.store.ScanPage(ctx, &datastore.ScanPageInput{
			StartToken: token,
			Limit:      s.pageSize,
			KeysOnly:   true,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			key, err := codec.FromAttributeMap(raw)
			if err != nil {
				return nil, fmt.Errorf("key projection: %w", err)
			}
			keys = append(keys, key)
		}
		if page.NextToken == nil {
			return keys, nil
		}
		token = page.NextToken
	}
}

// Count estimates the table's item count. When exact is false the store's
// cached approximate count is returned; it is refreshed periodically by the
// store and may be stale. When exact is true a full counting scan runs,
// without materializing items, at proportionally higher cost. The returned
// bool reports which kind of count was produced.
func (s *Scanner) Count(ctx context.Context, exact bool) (int64, bool, error) {
	if !exact {
		info, err := s.store.Describe(ctx)
		if err != nil {
			return 0, false, err
		}
		return info.ApproximateItemCount, false, nil
	}

	var total int64
	var token datastore.RawItem
	for {
		page, err := s.store.ScanPage(ctx, &datastore.ScanPageInput{
			StartToken: token,
			Limit:      s.pageSize,
			CountOnly:  true,
		})
		if err != nil {
			return 0, false, err
		}
		total += int64(page.ScannedCount)
		if page.NextToken == nil {
			return total, true, nil
		}
		token = page.NextToken
	}
}
