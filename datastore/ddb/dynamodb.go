/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablectl/datastore"
	"github.com/suparena/tablectl/errors"
)

// Store implements datastore.TableStore against a single DynamoDB table.
type Store struct {
	client    *sdk.Client
	tableName string

	mu      sync.Mutex
	keyInfo *keySchema // cached from Describe, needed for keys-only scans
}

type keySchema struct {
	partitionKey string
	sortKey      string
}

// New constructs a Store using the default AWS credential chain.
func New(ctx context.Context, awsRegion, tableName string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return NewFromClient(sdk.NewFromConfig(cfg), tableName), nil
}

// NewWithStaticCredentials constructs a Store using explicit AWS credentials.
func NewWithStaticCredentials(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, tableName string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return NewFromClient(sdk.NewFromConfig(cfg), tableName), nil
}

// NewFromClient wraps an existing DynamoDB client.
func NewFromClient(client *sdk.Client, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// Describe returns table status, key schema, and cached size figures.
func (s *Store) Describe(ctx context.Context) (*datastore.TableInfo, error) {
	out, err := s.client.DescribeTable(ctx, &sdk.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})
	if err != nil {
		return nil, mapSDKError("describe table "+s.tableName, err)
	}

	info := &datastore.TableInfo{
		Name:   s.tableName,
		Status: string(out.Table.TableStatus),
	}
	if out.Table.ItemCount != nil {
		info.ApproximateItemCount = *out.Table.ItemCount
	}
	if out.Table.TableSizeBytes != nil {
		info.SizeBytes = *out.Table.TableSizeBytes
	}
	if out.Table.CreationDateTime != nil {
		info.CreatedAt = *out.Table.CreationDateTime
	}
	for _, elem := range out.Table.KeySchema {
		switch elem.KeyType {
		case types.KeyTypeHash:
			info.PartitionKey = aws.ToString(elem.AttributeName)
		case types.KeyTypeRange:
			info.SortKey = aws.ToString(elem.AttributeName)
		}
	}

	s.mu.Lock()
	s.keyInfo = &keySchema{partitionKey: info.PartitionKey, sortKey: info.SortKey}
	s.mu.Unlock()

	return info, nil
}

// ScanPage reads one page of the table, passing pagination tokens through as
// LastEvaluatedKey maps.
func (s *Store) ScanPage(ctx context.Context, in *datastore.ScanPageInput) (*datastore.ScanPageOutput, error) {
	input := &sdk.ScanInput{
		TableName: aws.String(s.tableName),
	}
	if in.StartToken != nil {
		input.ExclusiveStartKey = in.StartToken
	}
	if in.Limit > 0 {
		input.Limit = aws.Int32(in.Limit)
	}
	if in.CountOnly {
		input.Select = types.SelectCount
	} else if in.KeysOnly {
		keys, err := s.keyAttributeNames(ctx)
		if err != nil {
			return nil, err
		}
		names := make(map[string]string, len(keys))
		expr := ""
		for i, k := range keys {
			placeholder := fmt.Sprintf("#k%d", i)
			names[placeholder] = k
			if i > 0 {
				expr += ", "
			}
			expr += placeholder
		}
		input.ProjectionExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, mapSDKError("scan "+s.tableName, err)
	}

	page := &datastore.ScanPageOutput{
		Items:        out.Items,
		ScannedCount: out.Count,
	}
	if len(out.LastEvaluatedKey) > 0 {
		page.NextToken = out.LastEvaluatedKey
	}
	return page, nil
}

// BatchWrite puts up to one store batch of items, surfacing unprocessed
// items as data.
func (s *Store) BatchWrite(ctx context.Context, items []datastore.RawItem) ([]datastore.RawItem, error) {
	writeReqs := make([]types.WriteRequest, len(items))
	for i, item := range items {
		writeReqs[i] = types.WriteRequest{PutRequest: &types.PutRequest{Item: item}}
	}

	out, err := s.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{s.tableName: writeReqs},
	})
	if err != nil {
		return nil, err
	}

	var unprocessed []datastore.RawItem
	for _, wr := range out.UnprocessedItems[s.tableName] {
		if wr.PutRequest != nil {
			unprocessed = append(unprocessed, wr.PutRequest.Item)
		}
	}
	return unprocessed, nil
}

// BatchDelete deletes up to one store batch of keys, surfacing unprocessed
// keys as data.
func (s *Store) BatchDelete(ctx context.Context, keys []datastore.RawItem) ([]datastore.RawItem, error) {
	writeReqs := make([]types.WriteRequest, len(keys))
	for i, key := range keys {
		writeReqs[i] = types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: key}}
	}

	out, err := s.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{s.tableName: writeReqs},
	})
	if err != nil {
		return nil, err
	}

	var unprocessed []datastore.RawItem
	for _, wr := range out.UnprocessedItems[s.tableName] {
		if wr.DeleteRequest != nil {
			unprocessed = append(unprocessed, wr.DeleteRequest.Key)
		}
	}
	return unprocessed, nil
}

func (s *Store) keyAttributeNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	cached := s.keyInfo
	s.mu.Unlock()

	if cached == nil {
		if _, err := s.Describe(ctx); err != nil {
			return nil, err
		}
		s.mu.Lock()
		cached = s.keyInfo
		s.mu.Unlock()
	}

	if cached.sortKey == "" {
		return []string{cached.partitionKey}, nil
	}
	return []string{cached.partitionKey, cached.sortKey}, nil
}

func mapSDKError(op string, err error) error {
	var notFound *types.ResourceNotFoundException
	if stderrors.As(err, &notFound) {
		return errors.NewResourceError(op, fmt.Errorf("table not found: %w", err))
	}
	return errors.NewResourceError(op, err)
}
