package dyndb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/book-service/envloader"
)

const (
	batchWriteLimit = 25
	// Tentativas de reenvio dos UnprocessedItems de um BatchWriteItem.
	batchWriteRetries = 3
)

// Espera entre reenvios; variável para os testes.
var batchRetryDelay = 50 * time.Millisecond

type dynamoStore[T any] struct {
	client DynamoDBClient
	cfg    TableConfig[T]
}

// New cria um store reutilizável
func New[T any](client DynamoDBClient, cfg TableConfig[T]) Store[T] {
	if cfg.TableName == "" {
		_ = envloader.Load(&cfg)
	}

	return &dynamoStore[T]{
		client: client,
		cfg:    cfg,
	}
}

func (s *dynamoStore[T]) key(hashKey, sortKey any) (map[string]types.AttributeValue, error) {
	hk, err := attributevalue.Marshal(hashKey)
	if err != nil {
		return nil, fmt.Errorf("dynamostore: marshal %s failed: %w", s.cfg.HashKey, err)
	}
	key := map[string]types.AttributeValue{s.cfg.HashKey: hk}

	if s.cfg.SortKey != "" && sortKey != nil {
		sk, err := attributevalue.Marshal(sortKey)
		if err != nil {
			return nil, fmt.Errorf("dynamostore: marshal %s failed: %w", s.cfg.SortKey, err)
		}
		key[s.cfg.SortKey] = sk
	}
	return key, nil
}

func (s *dynamoStore[T]) writeOptions(opts []WriteOption) *writeOptions {
	o := &writeOptions{hashKey: s.cfg.HashKey, sortKey: s.cfg.SortKey}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Get item por chave primária
func (s *dynamoStore[T]) Get(ctx context.Context, hashKey, sortKey any) (*T, error) {
	key, err := s.key(hashKey, sortKey)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.cfg.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamostore: get failed: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
	}
	return &item, nil
}

// Exists verifica a presença do item sem trazer os atributos
func (s *dynamoStore[T]) Exists(ctx context.Context, hashKey, sortKey any) (bool, error) {
	key, err := s.key(hashKey, sortKey)
	if err != nil {
		return false, err
	}

	expr, err := expression.NewBuilder().
		WithProjection(expression.NamesList(expression.Name(s.cfg.HashKey))).
		Build()
	if err != nil {
		return false, fmt.Errorf("dynamostore: exists expression failed: %w", err)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(s.cfg.TableName),
		Key:                      key,
		ConsistentRead:           aws.Bool(true),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return false, fmt.Errorf("dynamostore: exists failed: %w", err)
	}
	return out.Item != nil, nil
}

// Put item (upsert, ou create quando combinado com IfAbsent)
func (s *dynamoStore[T]) Put(ctx context.Context, item T, opts ...WriteOption) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynamostore: marshal failed: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.TableName),
		Item:      av,
	}
	if o := s.writeOptions(opts); o.condition != nil {
		expr, err := expression.NewBuilder().WithCondition(*o.condition).Build()
		if err != nil {
			return fmt.Errorf("dynamostore: put expression failed: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return writeError("put", err)
	}
	return nil
}

// Update aplica uma update expression sobre o item
func (s *dynamoStore[T]) Update(ctx context.Context, hashKey, sortKey any, update expression.UpdateBuilder, opts ...WriteOption) error {
	key, err := s.key(hashKey, sortKey)
	if err != nil {
		return err
	}

	builder := expression.NewBuilder().WithUpdate(update)
	if o := s.writeOptions(opts); o.condition != nil {
		builder = builder.WithCondition(*o.condition)
	}
	expr, err := builder.Build()
	if err != nil {
		return fmt.Errorf("dynamostore: update expression failed: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.cfg.TableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return writeError("update", err)
	}
	return nil
}

// Delete item
func (s *dynamoStore[T]) Delete(ctx context.Context, hashKey, sortKey any, opts ...WriteOption) error {
	key, err := s.key(hashKey, sortKey)
	if err != nil {
		return err
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.cfg.TableName),
		Key:       key,
	}
	if o := s.writeOptions(opts); o.condition != nil {
		expr, err := expression.NewBuilder().WithCondition(*o.condition).Build()
		if err != nil {
			return fmt.Errorf("dynamostore: delete expression failed: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	if _, err := s.client.DeleteItem(ctx, input); err != nil {
		return writeError("delete", err)
	}
	return nil
}

// BatchWrite grava os itens em blocos de 25
func (s *dynamoStore[T]) BatchWrite(ctx context.Context, puts []T) error {
	writeRequests := make([]types.WriteRequest, 0, len(puts))

	for _, item := range puts {
		itemMap, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("batchwrite: marshal put item failed: %w", err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: itemMap},
		})
	}

	for i := 0; i < len(writeRequests); i += batchWriteLimit {
		end := min(i+batchWriteLimit, len(writeRequests))
		if err := s.batchWriteChunk(ctx, writeRequests[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *dynamoStore[T]) batchWriteChunk(ctx context.Context, chunk []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{s.cfg.TableName: chunk}

	for attempt := 0; ; attempt++ {
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return fmt.Errorf("batchwrite failed: %w", err)
		}
		if len(out.UnprocessedItems[s.cfg.TableName]) == 0 {
			return nil
		}
		if attempt >= batchWriteRetries {
			return fmt.Errorf("batchwrite failed: %d items unprocessed", len(out.UnprocessedItems[s.cfg.TableName]))
		}

		pending = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(batchRetryDelay * time.Duration(attempt+1)):
		}
	}
}

// writeError traduz a falha de condition expression para ErrConditionFailed
func writeError(op string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("dynamostore: %s failed: %w", op, ErrConditionFailed)
	}
	return fmt.Errorf("dynamostore: %s failed: %w", op, err)
}
