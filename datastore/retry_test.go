/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

type retryableFlag bool

func (retryableFlag) Error() string       { return "flagged" }
func (f retryableFlag) IsRetryable() bool { return bool(f) }

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&types.ProvisionedThroughputExceededException{}))
	assert.True(t, Retryable(&types.RequestLimitExceeded{}))
	assert.True(t, Retryable(&types.InternalServerError{}))

	assert.True(t, Retryable(retryableFlag(true)))
	assert.False(t, Retryable(retryableFlag(false)))

	assert.False(t, Retryable(&types.ResourceNotFoundException{}))
	assert.False(t, Retryable(errors.New("access denied")))
}

func TestRetryableUnwrapsSDKErrors(t *testing.T) {
	// The SDK hands callers exceptions wrapped in operation errors, not
	// the bare typed values.
	wrap := func(err error) error {
		return fmt.Errorf("operation error DynamoDB: BatchWriteItem, %w", err)
	}

	assert.True(t, Retryable(wrap(&types.ProvisionedThroughputExceededException{})))
	assert.True(t, Retryable(wrap(&types.RequestLimitExceeded{})))
	assert.True(t, Retryable(wrap(&types.InternalServerError{})))
	assert.True(t, Retryable(wrap(retryableFlag(true))))

	assert.False(t, Retryable(wrap(&types.ConditionalCheckFailedException{})))
	assert.False(t, Retryable(wrap(errors.New("access denied"))))
}
