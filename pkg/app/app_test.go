package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	jsoniter "github.com/json-iterator/go"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/app"
	"github.com/raywall/book-service/pkg/responder"
	"github.com/raywall/book-service/pkg/storage"
	"github.com/raywall/book-service/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, a *app.App, routeKey, id, body string) events.APIGatewayV2HTTPResponse {
	t.Helper()
	req := events.APIGatewayV2HTTPRequest{RouteKey: routeKey, Body: body}
	if id != "" {
		req.PathParameters = map[string]string{"book_id": id}
	}
	resp, err := a.Handle(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func TestApp_FullLifecycle(t *testing.T) {
	a := app.New(memory.New(), responder.NewResponseBuilder("*"))

	resp := call(t, a, "GET /books", "", "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"books":[],"book_total":0}`, resp.Body)

	resp = call(t, a, "POST /books", "", `{"book_title":"mybook1"}`)
	require.Equal(t, 204, resp.StatusCode)

	resp = call(t, a, "GET /books", "", "")
	var list struct {
		Books []struct {
			BookID    string `json:"book_id"`
			BookTitle string `json:"book_title"`
		} `json:"books"`
		BookTotal int `json:"book_total"`
	}
	require.NoError(t, jsoniter.UnmarshalFromString(resp.Body, &list))
	require.Equal(t, 1, list.BookTotal)
	id := list.Books[0].BookID
	assert.Equal(t, "mybook1", list.Books[0].BookTitle)

	resp = call(t, a, "PATCH /books/{book_id}", id, `{"book_title":"renamed"}`)
	assert.Equal(t, 204, resp.StatusCode)

	resp = call(t, a, "GET /books/{book_id}", id, "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Body, `"book_title":"renamed"`)

	resp = call(t, a, "DELETE /books/{book_id}", id, "")
	assert.Equal(t, 204, resp.StatusCode)

	resp = call(t, a, "GET /books/{book_id}", id, "")
	assert.Equal(t, 404, resp.StatusCode)
	assert.Contains(t, resp.Body, "The book does not exist: "+id)
}

func TestApp_Scenarios(t *testing.T) {
	a := app.New(memory.New(), responder.NewResponseBuilder("*"))

	resp := call(t, a, "POST /books", "", `{"book_title":""}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"BadRequest","description":"Please specify a valid request body!"}}`, resp.Body)

	resp = call(t, a, "GET /books/{book_id}", "book@1", "")
	assert.Equal(t, 400, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"BadRequest","description":"Please specify a valid book id!"}}`, resp.Body)

	resp = call(t, a, "DELETE /books/{book_id}", "unknown-id", "")
	assert.Equal(t, 404, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"NotFound","description":"The book does not exist: unknown-id"}}`, resp.Body)
}

func TestApp_UnknownRoute(t *testing.T) {
	a := app.New(memory.New(), responder.NewResponseBuilder("*"))

	resp := call(t, a, "PUT /books", "", "")
	assert.Equal(t, 404, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"NotFound","description":"Route not found: PUT /books"}}`, resp.Body)
}

func TestApp_Routes(t *testing.T) {
	a := app.New(memory.New(), responder.NewResponseBuilder("*"))

	var keys []string
	for _, r := range a.Routes() {
		keys = append(keys, r.Key())
	}
	assert.ElementsMatch(t, []string{
		"GET /books", "POST /books", "GET /books/{book_id}", "PATCH /books/{book_id}", "DELETE /books/{book_id}",
	}, keys)
}

func TestApp_Operation(t *testing.T) {
	a := app.New(memory.New(), responder.NewResponseBuilder("*"))

	assert.Equal(t, "list", a.Operation("GET /books"))
	assert.Equal(t, "create", a.Operation("POST /books"))
	assert.Equal(t, "delete", a.Operation("DELETE /books/{book_id}"))
	assert.Empty(t, a.Operation("PUT /books"))
}

func TestApp_ListThreeBooks(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	driver := &storage.MockDriver{FindBooksFn: func(context.Context) ([]book.BasicBookWithDate, error) {
		return []book.BasicBookWithDate{
			{BookID: "z", BookTitle: "zeta", CreatedAt: ts, UpdatedAt: ts},
			{BookID: "a", BookTitle: "alpha", CreatedAt: ts, UpdatedAt: ts},
			{BookID: "m", BookTitle: "mu", CreatedAt: ts, UpdatedAt: ts},
		}, nil
	}}
	a := app.New(driver, responder.NewResponseBuilder("*"))

	resp := call(t, a, "GET /books", "", "")
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		BookTotal int                      `json:"book_total"`
		Books     []book.BasicBookWithDate `json:"books"`
	}
	require.NoError(t, jsoniter.UnmarshalFromString(resp.Body, &body))
	assert.Equal(t, 3, body.BookTotal)
	require.Len(t, body.Books, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{body.Books[0].BookID, body.Books[1].BookID, body.Books[2].BookID})
	assert.Equal(t, "alpha", body.Books[1].BookTitle)
	assert.True(t, ts.Equal(body.Books[2].CreatedAt))
}
