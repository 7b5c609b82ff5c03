package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/raywall/book-service/pkg/app"
	"github.com/raywall/book-service/pkg/config"
	"github.com/raywall/book-service/pkg/controller"
	"github.com/raywall/book-service/pkg/metrics"
	"github.com/rs/zerolog/log"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
)

type contextKey string

const ContextKeyCorrID contextKey = "correlation_id"

// Limite do payload síncrono de uma Lambda.
const maxBodyBytes = 6 << 20

const shutdownTimeout = 10 * time.Second

// CorrelationID devolve o id de correlação da requisição ("" fora de uma requisição).
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyCorrID).(string)
	return id
}

// NewHTTPServer monta o servidor local: as mesmas rotas do API Gateway sobre gorilla/mux,
// com preflight CORS, rate limit opcional e o middleware de observabilidade.
func NewHTTPServer(a *app.App, cfg *config.Config, mp *metrics.Processor) *http.Server {
	router := mux.NewRouter()

	for _, route := range a.Routes() {
		router.Handle(route.Path, routeHandler(a, route.Key(), cfg.Service.Timeout)).
			Methods(route.Method)
	}
	router.PathPrefix("/").
		Methods(http.MethodOptions).
		Handler(PreflightHandler(a.Responder().AllowedOrigin()))

	fallback := fallbackHandler(a, cfg.Service.Timeout)
	router.NotFoundHandler = fallback
	router.MethodNotAllowedHandler = fallback

	var handler http.Handler = router
	handler = RateLimitMiddleware(handler, a.Responder(), cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	handler = ObservabilityMiddleware(handler, RouteResolver(router, a), mp)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// StartHTTPServer serve até ctx ser cancelado e então drena as conexões abertas.
func StartHTTPServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Servidor HTTP ouvindo em %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("Encerrando servidor HTTP")
		return srv.Shutdown(shutdownCtx)
	}
}

func routeHandler(a *app.App, routeKey string, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dispatch(w, r, a, routeKey, timeout)
	}
}

// fallbackHandler entrega ao App a route key da requisição; como ela não está
// registrada, a resposta é o 404 padrão do serviço.
func fallbackHandler(a *app.App, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dispatch(w, r, a, r.Method+" "+r.URL.Path, timeout)
	}
}

func dispatch(w http.ResponseWriter, r *http.Request, a *app.App, routeKey string, timeout time.Duration) {
	ctx := r.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	event, err := NewEvent(r.WithContext(ctx), routeKey, mux.Vars(r))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to read request body")
		WriteResponse(w, a.Responder().BadRequest(controller.MsgInvalidBody))
		return
	}

	resp, err := a.Handle(ctx, event)
	if err != nil {
		resp = a.Responder().InternalServerError(err)
	}
	WriteResponse(w, resp)
}

// NewEvent converte a requisição HTTP no evento que o API Gateway HTTP API entregaria.
// Headers repetidos são unidos por vírgula e os nomes vão para minúsculas.
func NewEvent(r *http.Request, routeKey string, pathParams map[string]string) (events.APIGatewayV2HTTPRequest, error) {
	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			return events.APIGatewayV2HTTPRequest{}, err
		}
		if len(data) > maxBodyBytes {
			return events.APIGatewayV2HTTPRequest{}, fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
		}
		body = data
	}

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		headers[strings.ToLower(k)] = strings.Join(v, ",")
	}

	var query map[string]string
	if values := r.URL.Query(); len(values) > 0 {
		query = make(map[string]string, len(values))
		for k, v := range values {
			query[k] = strings.Join(v, ",")
		}
	}

	if len(pathParams) == 0 {
		pathParams = nil
	}

	sourceIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		sourceIP = r.RemoteAddr
	}

	event := events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              routeKey,
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: query,
		PathParameters:        pathParams,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RouteKey:  routeKey,
			RequestID: CorrelationID(r.Context()),
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  sourceIP,
				UserAgent: r.UserAgent(),
			},
		},
	}

	if utf8.Valid(body) {
		event.Body = string(body)
	} else {
		event.Body = base64.StdEncoding.EncodeToString(body)
		event.IsBase64Encoded = true
	}
	return event, nil
}

// WriteResponse escreve a resposta do API Gateway no ResponseWriter.
func WriteResponse(w http.ResponseWriter, resp events.APIGatewayV2HTTPResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	for _, c := range resp.Cookies {
		w.Header().Add("Set-Cookie", c)
	}

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err == nil {
			body = decoded
		}
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

// RouteResolver identifica a route key e a operação de uma requisição sem executá-la.
// Requisições sem rota recebem a label "unmatched".
func RouteResolver(router *mux.Router, a *app.App) func(*http.Request) (string, string) {
	return func(r *http.Request) (string, string) {
		var match mux.RouteMatch
		if !router.Match(r, &match) || match.MatchErr != nil || match.Route == nil {
			return "unmatched", ""
		}
		tpl, err := match.Route.GetPathTemplate()
		if err != nil {
			return "unmatched", ""
		}
		key := r.Method + " " + tpl
		return key, a.Operation(key)
	}
}

// --- MIDDLEWARE DE OBSERVABILIDADE ---
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	duration := time.Since(rw.startTime)
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", duration.Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// ObservabilityMiddleware propaga o correlation id, loga uma linha por requisição
// e envia as métricas de requisição. resolve e mp podem ser nil.
func ObservabilityMiddleware(next http.Handler, resolve func(*http.Request) (string, string), mp *metrics.Processor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		corrID := r.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
			r.Header.Set(HeaderCorrelationID, corrID)
		}
		w.Header().Set(HeaderCorrelationID, corrID)

		logger := log.With().Str("correlation_id", corrID).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

		route, operation := "unmatched", ""
		if resolve != nil {
			route, operation = resolve(r)
		}

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			startTime:      start,
		}

		next.ServeHTTP(wrapper, r.WithContext(ctx))

		latency := time.Since(start)
		logger.Info().
			Str("method", r.Method).
			Str("route", route).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int64("latency_ms", latency.Milliseconds()).
			Msg("request completed")

		observe(ctx, mp, route, operation, wrapper.statusCode, latency)
	})
}
