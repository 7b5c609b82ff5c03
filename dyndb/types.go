package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var (
	// ErrNotFound é o erro padrão quando o item não existe
	ErrNotFound = errors.New("dyndb: item not found")
	// ErrConditionFailed indica que a condition expression da escrita foi rejeitada
	ErrConditionFailed = errors.New("dyndb: condition check failed")
)

// DynamoDBClient interface para abstrair o cliente DynamoDB
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store é a interface principal (genérica)
type Store[T any] interface {
	Get(ctx context.Context, hashKey, sortKey any) (*T, error)
	// Exists faz uma leitura consistente projetando apenas a chave.
	Exists(ctx context.Context, hashKey, sortKey any) (bool, error)
	Put(ctx context.Context, item T, opts ...WriteOption) error
	Update(ctx context.Context, hashKey, sortKey any, update expression.UpdateBuilder, opts ...WriteOption) error
	Delete(ctx context.Context, hashKey, sortKey any, opts ...WriteOption) error

	BatchWrite(ctx context.Context, puts []T) error

	Scan() *QueryBuilder[T]
}

// TableConfig configura a tabela
type TableConfig[T any] struct {
	TableName string `env:"DYNAMODB_TABLE_NAME"`
	HashKey   string `env:"DYNAMODB_HASH_KEY"`
	SortKey   string `env:"DYNAMODB_SORT_KEY"` // opcional
}

// WriteOption altera uma escrita (Put, Update ou Delete)
type WriteOption func(*writeOptions)

type writeOptions struct {
	hashKey   string
	sortKey   string
	condition *expression.ConditionBuilder
}

func (o *writeOptions) and(cond expression.ConditionBuilder) {
	if o.condition == nil {
		o.condition = &cond
		return
	}
	tmp := o.condition.And(cond)
	o.condition = &tmp
}

// IfAbsent exige que nenhuma parte da chave primária exista
func IfAbsent() WriteOption {
	return func(o *writeOptions) {
		cond := expression.AttributeNotExists(expression.Name(o.hashKey))
		if o.sortKey != "" {
			cond = cond.And(expression.AttributeNotExists(expression.Name(o.sortKey)))
		}
		o.and(cond)
	}
}

// IfPresent exige que a chave primária já exista
func IfPresent() WriteOption {
	return func(o *writeOptions) {
		cond := expression.AttributeExists(expression.Name(o.hashKey))
		if o.sortKey != "" {
			cond = cond.And(expression.AttributeExists(expression.Name(o.sortKey)))
		}
		o.and(cond)
	}
}

// QueryBuilder é o builder fluente de Scan
type QueryBuilder[T any] struct {
	store      *dynamoStore[T]
	filterCond *expression.ConditionBuilder
	limit      *int32
}
