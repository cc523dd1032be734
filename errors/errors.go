/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"

	"github.com/suparena/tablectl/itemmodel"
)

// Common sentinel errors
var (
	// ErrUnsupportedValue is returned when a value falls outside the closed
	// Value union (defensive; should be unreachable)
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnknownAttributeTag is returned when an attribute encoding carries a
	// tag the converter does not recognize
	ErrUnknownAttributeTag = errors.New("unknown attribute tag")

	// ErrInvalidSyntax is returned when source bytes cannot be parsed
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrEmptyInput is returned when a workflow requires at least one item
	// and the input contains none
	ErrEmptyInput = errors.New("empty input")

	// ErrMalformedRow is returned when a tabular row does not match the header
	ErrMalformedRow = errors.New("malformed row")

	// ErrHeterogeneousSchema is returned when items cannot be flattened to a
	// uniform tabular schema
	ErrHeterogeneousSchema = errors.New("heterogeneous schema")

	// ErrPartialWrite is returned when some items never committed within the
	// retry budget
	ErrPartialWrite = errors.New("partial write failure")

	// ErrPartialDelete is returned when some keys never deleted within the
	// retry budget
	ErrPartialDelete = errors.New("partial delete failure")

	// ErrResource is returned for store or filesystem failures outside the
	// tool's control
	ErrResource = errors.New("resource error")

	// ErrUserCancelled is returned when the user declines a confirmation gate
	ErrUserCancelled = errors.New("cancelled by user")
)

// UnsupportedValueError reports a value the converter cannot encode.
type UnsupportedValueError struct {
	Detail string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported value: %s", e.Detail)
}

func (e *UnsupportedValueError) Is(target error) bool {
	return target == ErrUnsupportedValue
}

// UnknownAttributeTagError reports an attribute encoding the converter does
// not recognize. Raising it instead of skipping keeps data from being
// silently dropped.
type UnknownAttributeTagError struct {
	Tag string
}

func (e *UnknownAttributeTagError) Error() string {
	return fmt.Sprintf("unknown attribute tag %q", e.Tag)
}

func (e *UnknownAttributeTagError) Is(target error) bool {
	return target == ErrUnknownAttributeTag
}

// SyntaxError reports unparseable source bytes.
type SyntaxError struct {
	Format string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid %s syntax: %v", e.Format, e.Err)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidSyntax
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// MalformedRowError reports a tabular row whose field count does not match
// the header.
type MalformedRowError struct {
	Row      int // 1-based, header is row 1
	Expected int
	Got      int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d has %d fields, header defines %d", e.Row, e.Got, e.Expected)
}

func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// HeterogeneousSchemaError reports an attribute that cannot be flattened
// losslessly into a tabular cell.
type HeterogeneousSchemaError struct {
	Attribute string
}

func (e *HeterogeneousSchemaError) Error() string {
	return fmt.Sprintf("attribute %q holds a nested value and cannot be written to a tabular column", e.Attribute)
}

func (e *HeterogeneousSchemaError) Is(target error) bool {
	return target == ErrHeterogeneousSchema
}

// PartialWriteError reports items that never committed. Unprocessed holds
// exactly the items that failed so the caller can decide on remediation.
type PartialWriteError struct {
	Attempts    int
	Unprocessed []itemmodel.Item
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%d items unprocessed after %d attempts", len(e.Unprocessed), e.Attempts)
}

func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}

// PartialDeleteError reports keys that never deleted.
type PartialDeleteError struct {
	Attempts    int
	Unprocessed []itemmodel.Item
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("%d keys unprocessed after %d attempts", len(e.Unprocessed), e.Attempts)
}

func (e *PartialDeleteError) Is(target error) bool {
	return target == ErrPartialDelete
}

// ResourceError wraps a store or filesystem failure with the attempted
// operation name. The underlying cause is surfaced verbatim.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ResourceError) Is(target error) bool {
	return target == ErrResource
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Helper functions for creating errors

// NewUnsupportedValueError creates a new UnsupportedValueError
func NewUnsupportedValueError(detail string) error {
	return &UnsupportedValueError{Detail: detail}
}

// NewUnknownAttributeTagError creates a new UnknownAttributeTagError
func NewUnknownAttributeTagError(tag string) error {
	return &UnknownAttributeTagError{Tag: tag}
}

// NewSyntaxError creates a new SyntaxError
func NewSyntaxError(format string, err error) error {
	return &SyntaxError{Format: format, Err: err}
}

// NewResourceError creates a new ResourceError
func NewResourceError(op string, err error) error {
	return &ResourceError{Op: op, Err: err}
}

// IsConversion checks if an error belongs to the conversion taxonomy
func IsConversion(err error) bool {
	return errors.Is(err, ErrUnsupportedValue) || errors.Is(err, ErrUnknownAttributeTag)
}

// IsFormat checks if an error belongs to the format taxonomy
func IsFormat(err error) bool {
	return errors.Is(err, ErrInvalidSyntax) || errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrMalformedRow) || errors.Is(err, ErrHeterogeneousSchema)
}

// IsMutation checks if an error belongs to the mutation taxonomy
func IsMutation(err error) bool {
	return errors.Is(err, ErrPartialWrite) || errors.Is(err, ErrPartialDelete)
}

// IsResource checks if an error is a resource error
func IsResource(err error) bool {
	return errors.Is(err, ErrResource)
}

// IsUserCancelled checks if an error is a user cancellation
func IsUserCancelled(err error) bool {
	return errors.Is(err, ErrUserCancelled)
}
