/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package codec converts between the itemmodel Value union and DynamoDB's
tagged AttributeValue encoding.

ToAttribute and FromAttribute are mutual inverses up to set ordering: sets
are unordered, so a round trip preserves membership but not element order.
Numbers cross the boundary as decimal text in both directions and are never
parsed into binary floats.

FromAttribute fails on an attribute tag it does not recognize rather than
dropping the attribute; an unrecognized tag in a scan is a signal that this
tool is out of date, not data to discard.
*/
package codec
