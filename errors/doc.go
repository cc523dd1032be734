/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package errors provides semantic error types for tablectl.

The taxonomy mirrors the workflow failure modes:

	var (
	    ErrUnsupportedValue    = errors.New("unsupported value")
	    ErrUnknownAttributeTag = errors.New("unknown attribute tag")
	    ErrInvalidSyntax       = errors.New("invalid syntax")
	    ErrEmptyInput          = errors.New("empty input")
	    ErrMalformedRow        = errors.New("malformed row")
	    ErrHeterogeneousSchema = errors.New("heterogeneous schema")
	    ErrPartialWrite        = errors.New("partial write failure")
	    ErrPartialDelete       = errors.New("partial delete failure")
	    ErrResource            = errors.New("resource error")
	    ErrUserCancelled       = errors.New("cancelled by user")
	)

Conversion and format errors abort a workflow before any destructive call:
validated input precedes side effects. Mutation errors abort after partial
completion and carry the exact unresolved items so the operator can decide
on remediation; a partially applied bulk mutation is never reported as
success. Resource errors surface the underlying cause verbatim together
with the attempted operation name.

Errors are checked with the standard errors.Is or the Is* helpers:

	if errors.IsFormat(err) {
	    // input file was bad; the table was not touched
	}
*/
package errors
