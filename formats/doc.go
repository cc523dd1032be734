/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package formats parses and serializes the three on-disk shapes tablectl
understands: a plain JSON item array, a metadata-wrapped snapshot, and
tabular CSV.

Detection goes by file extension first (.csv is tabular, .json is the JSON
family) and then by top-level shape within the JSON family: an object with
both "metadata" and "data" keys is a snapshot, a bare array is a plain item
array.

JSON is decoded at the token level with UseNumber so that attribute order
is preserved into Items and numbers stay decimal text. JSON has no native
sets or binary, so parsing never infers a set and serialization erases
them deterministically: sets become arrays, binary becomes base64 text.

CSV carries no types at all. Every cell parses to a String value, an empty
cell to the empty String (not Null). Serialization to CSV fails when an
item holds a nested map, list, or set, since those cannot be flattened
losslessly into a cell.
*/
package formats
