/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Retryable reports whether a store error is transient and worth retrying.
// SDK exceptions usually arrive wrapped in operation errors, so matching
// goes through errors.As rather than a direct type switch.
func Retryable(err error) bool {
	var (
		throughput *types.ProvisionedThroughputExceededException
		reqLimit   *types.RequestLimitExceeded
		internal   *types.InternalServerError
	)
	if errors.As(err, &throughput) || errors.As(err, &reqLimit) || errors.As(err, &internal) {
		return true
	}

	var awsErr interface{ IsRetryable() bool }
	if errors.As(err, &awsErr) {
		return awsErr.IsRetryable()
	}

	return false
}
