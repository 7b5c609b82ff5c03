package config

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var (
	awsCfg  aws.Config
	awsOnce sync.Once
	awsErr  error
)

// LoadAWSConfig carrega a configuração da AWS (env vars, profile, IAM role) de forma lazy-singleton.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	awsOnce.Do(func() {
		opts := []func(*awsconfig.LoadOptions) error{}
		if region != "" {
			opts = append(opts, awsconfig.WithRegion(region))
		}
		awsCfg, awsErr = awsconfig.LoadDefaultConfig(ctx, opts...)
	})
	return awsCfg, awsErr
}

// NewDynamoDBClient cria o cliente da tabela, respeitando DYNAMODB_ENDPOINT (DynamoDB Local)
func NewDynamoDBClient(ctx context.Context, table TableConf) (*dynamodb.Client, error) {
	cfg, err := LoadAWSConfig(ctx, table.Region)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if table.Endpoint != "" {
			o.BaseEndpoint = aws.String(table.Endpoint)
		}
	}), nil
}

// NewS3Client é usado pelo seed para ler fixtures em s3://bucket/key
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

func newReferenceClients(ctx context.Context, region string) (*ssm.Client, *secretsmanager.Client, error) {
	cfg, err := LoadAWSConfig(ctx, region)
	if err != nil {
		return nil, nil, err
	}
	return ssm.NewFromConfig(cfg), secretsmanager.NewFromConfig(cfg), nil
}
