package app

import (
	"context"
	"fmt"

	"github.com/raywall/book-service/dyndb"
	"github.com/raywall/book-service/pkg/config"
	"github.com/raywall/book-service/pkg/storage"
	"github.com/raywall/book-service/pkg/storage/dynamo"
	"github.com/raywall/book-service/pkg/storage/memory"
)

// Driver é o que os binários precisam do storage: o CRUD e a carga em lote.
type Driver interface {
	storage.BookDriver
	storage.BookSeeder
}

// DynamoClientFactory cria o cliente DynamoDB; substituível nos testes.
var DynamoClientFactory = func(ctx context.Context, table config.TableConf) (dyndb.DynamoDBClient, error) {
	return config.NewDynamoDBClient(ctx, table)
}

// NewDriver escolhe o driver por BOOK_STORAGE.
func NewDriver(ctx context.Context, cfg *config.Config) (Driver, error) {
	switch cfg.Service.Storage {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageDynamoDB:
		client, err := DynamoClientFactory(ctx, cfg.Table)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar cliente DynamoDB: %w", err)
		}
		return dynamo.New(client, cfg.Table.Name, dynamo.WithPageSize(cfg.Table.ScanPageSize)), nil
	default:
		return nil, fmt.Errorf("storage desconhecido: %s", cfg.Service.Storage)
	}
}
