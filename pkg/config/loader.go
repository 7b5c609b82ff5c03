package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/raywall/book-service/envloader"
	"github.com/raywall/book-service/pkg/config/injector"
)

// DotEnvFile é carregado quando existe; variáveis já definidas prevalecem.
var DotEnvFile = ".env"

// Resolver cria o injector de referências; substituível nos testes.
var Resolver = func(ctx context.Context, region string) (*injector.Injector, error) {
	ssmClient, secretsClient, err := newReferenceClients(ctx, region)
	if err != nil {
		return nil, err
	}
	return injector.New(ssmClient, secretsClient), nil
}

// Load lê .env, variáveis de ambiente e referências SSM/Secrets Manager e valida o resultado
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("erro ao ler %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}
	if err := envloader.Load(cfg); err != nil {
		return nil, err
	}

	if injector.HasReferences(cfg) {
		inj, err := Resolver(ctx, cfg.Table.Region)
		if err != nil {
			return nil, fmt.Errorf("erro ao iniciar clientes AWS: %w", err)
		}
		if err := inj.Inject(ctx, cfg); err != nil {
			return nil, fmt.Errorf("erro ao resolver referências: %w", err)
		}
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
