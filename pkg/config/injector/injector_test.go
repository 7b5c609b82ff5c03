package injector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/raywall/book-service/pkg/config/injector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSSM struct {
	mock.Mock
}

func (m *mockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ssm.GetParameterOutput), args.Error(1)
}

type mockSecrets struct {
	mock.Mock
}

func (m *mockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsmanager.GetSecretValueOutput), args.Error(1)
}

type TestConfig struct {
	Table   string
	Origin  string
	Plain   string
	Nested  *NestedConfig
	Origins []string
	hidden  string
}

type NestedConfig struct {
	Host string
}

func TestInjector_Inject(t *testing.T) {
	ssmClient := &mockSSM{}
	secretsClient := &mockSecrets{}

	ssmClient.On("GetParameter", mock.Anything, mock.MatchedBy(func(in *ssm.GetParameterInput) bool {
		return aws.ToString(in.Name) == "/book-service/table" && aws.ToBool(in.WithDecryption)
	})).Return(&ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{Value: aws.String("books-prod")},
	}, nil).Once()

	secretsClient.On("GetSecretValue", mock.Anything, mock.MatchedBy(func(in *secretsmanager.GetSecretValueInput) bool {
		return aws.ToString(in.SecretId) == "book/datadog"
	})).Return(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"host":"dd-agent:8125","port":8125}`),
	}, nil).Once()

	target := &TestConfig{
		Table:   "ssm:/book-service/table",
		Origin:  "https://books.example.com",
		Plain:   "ssm:/book-service/table",
		Nested:  &NestedConfig{Host: "secretsmanager:book/datadog#host"},
		Origins: []string{"*", "secretsmanager:book/datadog#host"},
		hidden:  "ssm:/never",
	}

	require.True(t, injector.HasReferences(target))

	err := injector.New(ssmClient, secretsClient).Inject(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, "books-prod", target.Table)
	assert.Equal(t, "books-prod", target.Plain)
	assert.Equal(t, "https://books.example.com", target.Origin)
	assert.Equal(t, "dd-agent:8125", target.Nested.Host)
	assert.Equal(t, []string{"*", "dd-agent:8125"}, target.Origins)
	assert.Equal(t, "ssm:/never", target.hidden)
	assert.False(t, injector.HasReferences(target))

	// cada referência é buscada uma única vez
	ssmClient.AssertNumberOfCalls(t, "GetParameter", 1)
	secretsClient.AssertNumberOfCalls(t, "GetSecretValue", 1)
}

func TestInjector_Resolve(t *testing.T) {
	t.Run("plain value", func(t *testing.T) {
		val, err := injector.New(nil, nil).Resolve(context.Background(), "books")
		require.NoError(t, err)
		assert.Equal(t, "books", val)
	})

	t.Run("whole secret string", func(t *testing.T) {
		secretsClient := &mockSecrets{}
		secretsClient.On("GetSecretValue", mock.Anything, mock.Anything).
			Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("s3cr3t")}, nil)

		val, err := injector.New(nil, secretsClient).Resolve(context.Background(), "secretsmanager:book/token")
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", val)
	})

	t.Run("missing json key", func(t *testing.T) {
		secretsClient := &mockSecrets{}
		secretsClient.On("GetSecretValue", mock.Anything, mock.Anything).
			Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String(`{"a":"b"}`)}, nil)

		_, err := injector.New(nil, secretsClient).Resolve(context.Background(), "secretsmanager:book/x#c")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"c"`)
	})

	t.Run("ssm error", func(t *testing.T) {
		ssmClient := &mockSSM{}
		ssmClient.On("GetParameter", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied"))

		_, err := injector.New(ssmClient, nil).Resolve(context.Background(), "ssm:/x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AccessDenied")
	})

	t.Run("no client configured", func(t *testing.T) {
		_, err := injector.New(nil, nil).Resolve(context.Background(), "ssm:/x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sem cliente SSM")
	})
}

func TestInjector_InvalidTarget(t *testing.T) {
	err := injector.New(nil, nil).Inject(context.Background(), TestConfig{})
	assert.Error(t, err)
}
