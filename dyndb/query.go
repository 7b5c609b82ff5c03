// dyndb/query.go
package dyndb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// Scan inicia um builder de Scan sobre a tabela inteira
func (s *dynamoStore[T]) Scan() *QueryBuilder[T] {
	return &QueryBuilder[T]{store: s}
}

// === MÉTODOS FLUENTES ===

// FilterBeginsWith restringe o resultado aos itens cujo atributo começa com prefix
func (qb *QueryBuilder[T]) FilterBeginsWith(field, prefix string) *QueryBuilder[T] {
	cond := expression.BeginsWith(expression.Name(field), prefix)
	if qb.filterCond == nil {
		qb.filterCond = &cond
	} else {
		tmp := qb.filterCond.And(cond)
		qb.filterCond = &tmp
	}
	return qb
}

// Limit define o tamanho de página pedido ao DynamoDB
func (qb *QueryBuilder[T]) Limit(n int32) *QueryBuilder[T] {
	if n > 0 {
		qb.limit = &n
	}
	return qb
}

// === EXECUÇÃO ===

// All segue o LastEvaluatedKey até esgotar a tabela. Nunca devolve nil.
func (qb *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	all := make([]T, 0)
	var startKey map[string]types.AttributeValue
	var pages int

	for {
		items, count, lastKey, err := qb.page(ctx, startKey)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		pages++

		log.Ctx(ctx).Debug().
			Str("table", qb.store.cfg.TableName).
			Int("page", pages).
			Int32("scanned_count", count).
			Int("items", len(items)).
			Msg("dynamodb scan page")

		if len(lastKey) == 0 {
			break
		}
		startKey = lastKey
	}

	return all, nil
}

func (qb *QueryBuilder[T]) page(ctx context.Context, startKey map[string]types.AttributeValue) ([]T, int32, map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName:         aws.String(qb.store.cfg.TableName),
		Limit:             qb.limit,
		ExclusiveStartKey: startKey,
	}

	if qb.filterCond != nil {
		expr, err := expression.NewBuilder().WithFilter(*qb.filterCond).Build()
		if err != nil {
			return nil, 0, nil, fmt.Errorf("dynamostore: scan expression failed: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	out, err := qb.store.client.Scan(ctx, input)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("dynamostore: scan failed: %w", err)
	}

	items := make([]T, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, 0, nil, fmt.Errorf("dynamostore: unmarshal failed: %w", err)
	}
	return items, out.ScannedCount, out.LastEvaluatedKey, nil
}
