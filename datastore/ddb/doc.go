/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package ddb implements the datastore.TableStore contract against AWS
DynamoDB using the AWS SDK v2.

Pagination tokens are DynamoDB's LastEvaluatedKey maps passed through
opaquely. Batch mutations go through BatchWriteItem; items the service
reports in UnprocessedItems are handed back to the caller as data, never
retried here, so the bulk engine owns the complete retry policy.
*/
package ddb
