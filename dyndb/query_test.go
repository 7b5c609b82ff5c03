// dyndb/query_test.go
package dyndb_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func itemAV(id, title string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"main_pk": &types.AttributeValueMemberS{Value: id},
		"main_sk": &types.AttributeValueMemberS{Value: id},
		"title":   &types.AttributeValueMemberS{Value: title},
	}
}

func keyAV(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"main_pk": &types.AttributeValueMemberS{Value: id},
		"main_sk": &types.AttributeValueMemberS{Value: id},
	}
}

func TestScanAll_FollowsLastEvaluatedKey(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	store := newTestStore(client)

	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{itemAV("book|1", "a"), itemAV("book|2", "b")},
		ScannedCount:     2,
		LastEvaluatedKey: keyAV("book|2"),
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil && in.ExclusiveStartKey["main_pk"].(*types.AttributeValueMemberS).Value == "book|2"
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{},
		ScannedCount:     0,
		LastEvaluatedKey: keyAV("book|3"),
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil && in.ExclusiveStartKey["main_pk"].(*types.AttributeValueMemberS).Value == "book|3"
	})).Return(&dynamodb.ScanOutput{
		Items:        []map[string]types.AttributeValue{itemAV("book|4", "d")},
		ScannedCount: 1,
	}, nil).Once()

	items, err := store.Scan().Limit(2).All(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Title)
	assert.Equal(t, "d", items[2].Title)
	client.AssertNumberOfCalls(t, "Scan", 3)
}

func TestScanAll_LogsEachPage(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	store := newTestStore(client)

	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{itemAV("book|1", "a")},
		ScannedCount:     4,
		LastEvaluatedKey: keyAV("book|1"),
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.ScanOutput{
		Items:        []map[string]types.AttributeValue{itemAV("book|2", "b")},
		ScannedCount: 2,
	}, nil).Once()

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())

	_, err := store.Scan().All(ctx)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "dynamodb scan page", first["message"])
	assert.EqualValues(t, 1, first["page"])
	assert.EqualValues(t, 4, first["scanned_count"])
	assert.EqualValues(t, 2, second["page"])
	assert.EqualValues(t, 2, second["scanned_count"])
	assert.Equal(t, "test-table", second["table"])
}

func TestScanAll_Error(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	store := newTestStore(client)
	client.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("denied"))

	items, err := store.Scan().All(context.Background())

	assert.Nil(t, items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamostore: scan failed")
}

func TestScan_FilterAndLimit(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	store := newTestStore(client)

	var captured *dynamodb.ScanInput
	client.On("Scan", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.ScanInput) }).
		Return(&dynamodb.ScanOutput{}, nil)

	_, err := store.Scan().FilterBeginsWith("main_pk", "book|").Limit(10).All(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(10), aws.ToInt32(captured.Limit))
	assert.Contains(t, aws.ToString(captured.FilterExpression), "begins_with")
	assert.Contains(t, nameValues(captured.ExpressionAttributeNames), "main_pk")
}
