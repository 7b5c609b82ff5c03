package main

import (
	"context"
	"strings"

	"github.com/raywall/book-service/pkg/app"
	"github.com/raywall/book-service/pkg/config"
	"github.com/raywall/book-service/pkg/logger"
	"github.com/raywall/book-service/pkg/seed"
	"github.com/spf13/cobra"
)

// Injetáveis nos testes
var (
	loadConfig = config.Load
	newDriver  = app.NewDriver
	newS3      = func(ctx context.Context, region string) (seed.S3Client, error) {
		return config.NewS3Client(ctx, region)
	}
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "booktool",
		Short: "Ferramentas administrativas do book-service",
		Long: `booktool opera sobre a mesma configuração do serviço (.env, variáveis de
ambiente e referências ssm:/secretsmanager:) para carregar fixtures, listar
livros e validar o ambiente antes de um deploy.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Habilita logs de debug")

	root.AddCommand(
		newSeedCmd(&verbose),
		newListCmd(&verbose),
		newCheckConfigCmd(),
	)
	return root
}

// bootstrap carrega a configuração e prepara o logger no stderr do comando.
func bootstrap(cmd *cobra.Command, verbose bool) (*config.Config, error) {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logging
	logCfg.Format = "console"
	if verbose {
		logCfg.Level = "debug"
	}
	l := logger.ConfigureWriter(logCfg, cfg.Service.Name, cmd.ErrOrStderr())
	cmd.SetContext(l.WithContext(cmd.Context()))
	return cfg, nil
}

func isS3(source string) bool {
	return strings.HasPrefix(source, "s3://")
}
