package responder

import (
	"errors"
	"math"
	"testing"

	"github.com/raywall/book-service/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseBuilder_OK(t *testing.T) {
	rb := NewResponseBuilder("https://books.example.com")

	resp := rb.OK(map[string]any{"book": map[string]string{"book_id": "abc"}})

	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"book":{"book_id":"abc"}}`, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "https://books.example.com", resp.Headers["Access-Control-Allow-Origin"])
}

func TestResponseBuilder_NoContent(t *testing.T) {
	resp := NewResponseBuilder("").NoContent()

	assert.Equal(t, 204, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.NotContains(t, resp.Headers, "Content-Type")
}

func TestResponseBuilder_Errors(t *testing.T) {
	rb := NewResponseBuilder("*")

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"bad request", book.NewBadRequest("Please specify a valid book id!"), 400,
			`{"error":{"code":"BadRequest","description":"Please specify a valid book id!"}}`},
		{"not found", book.NewNotFound("The book does not exist: abc"), 404,
			`{"error":{"code":"NotFound","description":"The book does not exist: abc"}}`},
		{"internal", book.NewInternalServerError(errors.New("timeout")), 500,
			`{"error":{"code":"InternalServerError","description":"timeout"}}`},
		{"untagged", errors.New("raw failure"), 500,
			`{"error":{"code":"InternalServerError","description":"raw failure"}}`},
		{"nil", nil, 500,
			`{"error":{"code":"InternalServerError","description":"unknown error"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := rb.Error(tt.err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, resp.Body)
		})
	}
}

func TestResponseBuilder_Helpers(t *testing.T) {
	rb := NewResponseBuilder("*")

	assert.Equal(t, 400, rb.BadRequest("x").StatusCode)
	assert.Equal(t, 404, rb.NotFound("x").StatusCode)
	assert.Equal(t, 500, rb.InternalServerError(errors.New("x")).StatusCode)
	assert.Equal(t, 500, StatusOf("Teapot"))
}

func TestResponseBuilder_MarshalFailure(t *testing.T) {
	resp := NewResponseBuilder("*").OK(math.Inf(1))

	require.Equal(t, 500, resp.StatusCode)
	assert.Contains(t, resp.Body, `"code":"InternalServerError"`)
	assert.True(t, json.Valid([]byte(resp.Body)))
}
