package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// Runtimes
const (
	RuntimeLambda = "lambda"
	RuntimeLocal  = "local"
)

// Config é a raiz da configuração do serviço, carregada do ambiente.
type Config struct {
	Service ServiceDetails
	Table   TableConf
	HTTP    HTTPConf
	Logging LoggingConf
	Metrics MetricsConf
}

// ServiceDetails contém os metadados e configurações de runtime do serviço.
type ServiceDetails struct {
	Name          string        `env:"SERVICE_NAME" envDefault:"book-service" validate:"required,hostname_rfc1123"`
	Runtime       string        `env:"RUNTIME" envDefault:"lambda" validate:"required,oneof=local lambda"`
	Storage       string        `env:"BOOK_STORAGE" envDefault:"dynamodb" validate:"required,oneof=dynamodb memory"`
	Timeout       time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"*" validate:"required"`
}

// TableConf descreve a tabela single-table dos livros.
type TableConf struct {
	Name         string `env:"BOOK_TABLE"`
	Region       string `env:"AWS_REGION"`
	Endpoint     string `env:"DYNAMODB_ENDPOINT" validate:"omitempty,url"`
	ScanPageSize int32  `env:"DYNAMODB_SCAN_PAGE_SIZE" validate:"gte=0,lte=1000"`
}

// HTTPConf só é usado com RUNTIME=local.
type HTTPConf struct {
	Port           int     `env:"PORT" envDefault:"8080" validate:"gte=0,lte=65535"`
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" validate:"gte=0"` // 0 desliga o rate limit
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20" validate:"gte=0"`
}

type LoggingConf struct {
	Enabled bool   `env:"LOG_ENABLED" envDefault:"true"`
	Level   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf
}

type DatadogConf struct {
	Enabled   bool   `env:"DD_ENABLED"`
	Addr      string `env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Port      int    `env:"DD_DOGSTATSD_PORT" envDefault:"8125" validate:"omitempty,min=1,max=65535"`
	Namespace string `env:"DD_NAMESPACE" envDefault:"book_service."`
}

// Address devolve o endereço do agente para o statsd.
// Um host sem porta recebe DD_DOGSTATSD_PORT; sockets unix:// passam intactos.
func (d DatadogConf) Address() string {
	if d.Addr == "" || strings.Contains(d.Addr, "://") {
		return d.Addr
	}
	if _, _, err := net.SplitHostPort(d.Addr); err == nil {
		return d.Addr
	}
	return net.JoinHostPort(strings.Trim(d.Addr, "[]"), strconv.Itoa(d.Port))
}

// IsLocal indica se o serviço roda como servidor HTTP local.
func (s ServiceDetails) IsLocal() bool {
	return s.Runtime == RuntimeLocal
}
