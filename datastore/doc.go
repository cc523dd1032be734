/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package datastore defines the store-client collaborator contract the bulk
engine and workflows are written against.

A TableStore exposes the four primitives the tool needs from a key-value
table: describe, paginated scan, batch write, and batch delete, with
pagination tokens and partial-failure reporting surfaced as data. The ddb
subpackage implements it against AWS DynamoDB; the mock subpackage provides
a thread-safe in-memory implementation for tests.
*/
package datastore
