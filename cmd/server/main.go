package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/book-service/pkg/app"
	"github.com/raywall/book-service/pkg/config"
	"github.com/raywall/book-service/pkg/logger"
	"github.com/raywall/book-service/pkg/metrics"
	"github.com/raywall/book-service/pkg/observability"
	"github.com/raywall/book-service/pkg/responder"
	"github.com/raywall/book-service/pkg/transport"
	"github.com/rs/zerolog/log"
)

var (
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("FATAL: falha na inicialização")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context) error {
	// 1. Configuração (.env, env vars, referências SSM/Secrets Manager)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// 2. Logger e métricas
	logger.Configure(cfg.Logging, cfg.Service.Name)

	provider, err := observability.SetupMetrics(cfg.Metrics, "service:"+cfg.Service.Name)
	if err != nil {
		return err
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}
	mp := metrics.NewProcessor(nil, provider)

	// 3. Storage e composição
	driver, err := app.NewDriver(ctx, cfg)
	if err != nil {
		return err
	}
	a := app.New(driver, responder.NewResponseBuilder(cfg.Service.AllowedOrigin))

	log.Info().
		Str("runtime", cfg.Service.Runtime).
		Str("storage", cfg.Service.Storage).
		Msg("book service starting")

	// 4. Seleciona Runtime Strategy
	switch cfg.Service.Runtime {
	case config.RuntimeLocal:
		return serverStarter(ctx, transport.NewHTTPServer(a, cfg, mp))
	case config.RuntimeLambda:
		handler := transport.NewLambdaHandler(a, mp, cfg.Service.Timeout)
		lambdaStarter(handler.Handle)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Service.Runtime)
	}
}
