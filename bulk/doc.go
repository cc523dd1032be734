/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package bulk is the synchronization engine: paginated full-table reads and
chunked, retry-safe batch mutations against store-imposed limits.

Scanner streams a table as an ordered sequence of itemmodel Items, one
store page at a time, and estimates item counts either from the store's
cached figure or by a full counting scan.

Mutator partitions item sequences into chunks that respect the store's
per-call cardinality and byte ceilings, dispatches chunks across a bounded
worker pool, and retries only what the store reports as unprocessed, with
capped exponential backoff. Retry state is carried as data (attempt counter
plus remaining-item list); when the budget is exhausted the whole operation
fails with the exact unresolved items attached. A partially applied
mutation is never reported as success.
*/
package bulk
