package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/book-service/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure inicializa o logger global a partir das variáveis LOG_*.
func Configure(cfg config.LoggingConf, service string) zerolog.Logger {
	return ConfigureWriter(cfg, service, os.Stdout)
}

// ConfigureWriter é o Configure com destino explícito.
func ConfigureWriter(cfg config.LoggingConf, service string, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.DurationFieldUnit = time.Millisecond

	// JSON para produção (CloudWatch), Console para desenvolvimento local
	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if service != "" {
		ctx = ctx.Str("service", service)
	}
	logger := ctx.Logger()

	// log.Ctx cai no DefaultContextLogger quando o contexto não carrega logger
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	return logger
}
