package transport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/book-service/pkg/app"
	"github.com/raywall/book-service/pkg/metrics"
	"github.com/raywall/book-service/pkg/responder"
	"github.com/raywall/book-service/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMetric struct {
	name  string
	value float64
	tags  []string
}

type recordingProvider struct {
	mu      sync.Mutex
	metrics []recordedMetric
}

func (p *recordingProvider) record(name string, value float64, tags []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.metrics = append(p.metrics, recordedMetric{name: name, value: value, tags: tags})
	return nil
}

func (p *recordingProvider) Count(name string, value float64, tags []string) error {
	return p.record(name, value, tags)
}

func (p *recordingProvider) Gauge(name string, value float64, tags []string) error {
	return p.record(name, value, tags)
}

func (p *recordingProvider) Histogram(name string, value float64, tags []string) error {
	return p.record(name, value, tags)
}

func (p *recordingProvider) named(name string) []recordedMetric {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []recordedMetric
	for _, m := range p.metrics {
		if m.name == name {
			out = append(out, m)
		}
	}
	return out
}

type stubDispatcher struct {
	resp   events.APIGatewayV2HTTPResponse
	err    error
	gotCtx context.Context
	gotReq events.APIGatewayV2HTTPRequest
}

func (d *stubDispatcher) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	d.gotCtx = ctx
	d.gotReq = req
	return d.resp, d.err
}

func (d *stubDispatcher) Operation(routeKey string) string {
	if routeKey == "GET /books" {
		return "list"
	}
	return ""
}

func TestLambdaHandler_Books(t *testing.T) {
	provider := &recordingProvider{}
	a := app.New(memory.New(), responder.NewResponseBuilder("*"))
	handler := NewLambdaHandler(a, metrics.NewProcessor(nil, provider), time.Second)

	resp, err := handler.Handle(context.Background(), events.APIGatewayV2HTTPRequest{
		RouteKey: "POST /books",
		Body:     `{"book_title":"lambda1"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.NotEmpty(t, resp.Headers[HeaderCorrelationID])

	resp, err = handler.Handle(context.Background(), events.APIGatewayV2HTTPRequest{RouteKey: "GET /books"})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Body, `"book_title":"lambda1"`)

	require.Len(t, provider.named("request.count"), 2)
	require.Len(t, provider.named("request.latency_ms"), 2)
	ops := provider.named("book.operation")
	require.Len(t, ops, 2)
	assert.Equal(t, []string{"code:ok", "operation:create"}, ops[0].tags)
	assert.Equal(t, []string{"code:ok", "operation:list"}, ops[1].tags)
}

func TestLambdaHandler_CorrelationID(t *testing.T) {
	d := &stubDispatcher{resp: events.APIGatewayV2HTTPResponse{StatusCode: 200}}
	handler := NewLambdaHandler(d, nil, 0)

	resp, err := handler.Handle(context.Background(), events.APIGatewayV2HTTPRequest{
		RouteKey: "GET /books",
		Headers:  map[string]string{HeaderCorrelationID: "abc-123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Headers[HeaderCorrelationID])
	assert.Equal(t, "abc-123", CorrelationID(d.gotCtx))
}

func TestLambdaHandler_Timeout(t *testing.T) {
	d := &stubDispatcher{resp: events.APIGatewayV2HTTPResponse{StatusCode: 200}}
	handler := NewLambdaHandler(d, nil, 50*time.Millisecond)

	_, err := handler.Handle(context.Background(), events.APIGatewayV2HTTPRequest{RouteKey: "GET /books"})
	require.NoError(t, err)

	deadline, ok := d.gotCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), deadline, time.Second)
}

func TestLambdaHandler_DispatcherError(t *testing.T) {
	provider := &recordingProvider{}
	d := &stubDispatcher{err: errors.New("boom")}
	handler := NewLambdaHandler(d, metrics.NewProcessor(nil, provider), 0)

	resp, err := handler.Handle(context.Background(), events.APIGatewayV2HTTPRequest{RouteKey: "GET /books"})
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"InternalServerError","description":"internal server error"}}`, resp.Body)

	ops := provider.named("book.operation")
	require.Len(t, ops, 1)
	assert.Equal(t, []string{"code:InternalServerError", "operation:list"}, ops[0].tags)
}

func TestLambdaHandler_UnknownRouteSkipsOperationMetric(t *testing.T) {
	provider := &recordingProvider{}
	a := app.New(memory.New(), responder.NewResponseBuilder("*"))
	handler := NewLambdaHandler(a, metrics.NewProcessor(nil, provider), 0)

	resp, err := handler.Handle(context.Background(), events.APIGatewayV2HTTPRequest{RouteKey: "PUT /books"})
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Len(t, provider.named("request.count"), 1)
	assert.Empty(t, provider.named("book.operation"))
}

func TestOutcomeCode(t *testing.T) {
	tests := map[int]string{
		200: "ok",
		204: "ok",
		400: "BadRequest",
		404: "NotFound",
		500: "InternalServerError",
	}
	for status, want := range tests {
		assert.Equal(t, want, OutcomeCode(status), "status %d", status)
	}
}
