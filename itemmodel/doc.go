/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package itemmodel defines the portable data model shared by every stage of
a tablectl workflow.

Value is a closed tagged union over the shapes DynamoDB can store: null,
boolean, arbitrary-precision decimal number, string, binary, the three set
variants, ordered lists, and maps. Numbers are carried as canonical decimal
text so a round trip through the tool never loses precision. Set variants
are non-empty and duplicate-free; an empty set is not representable and
must be encoded as absence or as an empty List.

Item is an insertion-ordered attribute-name to Value mapping. Order matters
to the tabular format, whose column set is the union of attribute names in
first-seen order.

Snapshot pairs an ordered Item sequence with descriptive metadata captured
at scan time. Metadata is informational only on read; it is never
re-validated against current table state.
*/
package itemmodel
