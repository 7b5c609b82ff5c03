package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/metrics"
	"github.com/rs/zerolog/log"
)

// Dispatcher resolve a route key do evento para o controller correspondente.
type Dispatcher interface {
	Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)
	Operation(routeKey string) string
}

// LambdaHandler adapta eventos do API Gateway HTTP API (v2) para o Dispatcher
type LambdaHandler struct {
	app     Dispatcher
	metrics *metrics.Processor
	timeout time.Duration
}

// NewLambdaHandler cria uma nova instância do adaptador.
// Processor nil desliga métricas; timeout <= 0 mantém o deadline do runtime.
func NewLambdaHandler(app Dispatcher, mp *metrics.Processor, timeout time.Duration) *LambdaHandler {
	return &LambdaHandler{app: app, metrics: mp, timeout: timeout}
}

// Handle processa a requisição Lambda
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	start := time.Now()

	// O HTTP API entrega os headers em minúsculas
	corrID := req.Headers[HeaderCorrelationID]
	if corrID == "" {
		corrID = uuid.NewString()
	}

	logger := log.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	response, err := h.app.Handle(ctx, req)
	if err != nil {
		logger.Error().Err(err).Str("route", req.RouteKey).Msg("dispatcher returned an error")
		response = events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":{"code":"InternalServerError","description":"internal server error"}}`,
		}
		err = nil
	}

	latency := time.Since(start)
	logger.Info().
		Str("method", req.RequestContext.HTTP.Method).
		Str("route", req.RouteKey).
		Str("path", req.RawPath).
		Int("status", response.StatusCode).
		Int64("latency_ms", latency.Milliseconds()).
		Msg("lambda request completed")

	h.observe(ctx, req.RouteKey, response.StatusCode, latency)

	if response.Headers == nil {
		response.Headers = make(map[string]string)
	}
	response.Headers[HeaderCorrelationID] = corrID

	return response, err
}

func (h *LambdaHandler) observe(ctx context.Context, routeKey string, status int, latency time.Duration) {
	observe(ctx, h.metrics, routeKey, h.app.Operation(routeKey), status, latency)
}

// observe envia as métricas de requisição e, para rotas conhecidas, a da operação.
// Falhas no envio só geram log.
func observe(ctx context.Context, mp *metrics.Processor, route, operation string, status int, latency time.Duration) {
	if mp == nil {
		return
	}
	if err := mp.ObserveRequest(route, status, latency); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to record request metrics")
	}
	if operation == "" {
		return
	}
	if err := mp.ObserveOperation(operation, OutcomeCode(status)); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to record operation metric")
	}
}

// OutcomeCode reduz o status ao código de erro do serviço ("ok" para 2xx/3xx).
func OutcomeCode(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return "ok"
	case status == http.StatusBadRequest:
		return string(book.CodeBadRequest)
	case status == http.StatusNotFound:
		return string(book.CodeNotFound)
	default:
		return string(book.CodeInternalServerError)
	}
}
