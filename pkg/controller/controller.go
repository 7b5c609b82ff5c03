// Package controller traduz eventos do API Gateway (HTTP API v2) em chamadas
// aos casos de uso e os resultados em respostas.
//
// A validação de forma acontece aqui, na ordem documentada em cada controller;
// a primeira falha responde 400 e o caso de uso não é chamado.
package controller

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	jsoniter "github.com/json-iterator/go"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/usecase"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler é a assinatura comum a todos os controllers. O erro é sempre nil:
// toda saída, inclusive falhas, é uma resposta.
type Handler func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// PathBookID é o nome do parâmetro de rota com o id do livro.
const PathBookID = "book_id"

// Mensagens de validação de forma.
const (
	MsgMissingBody    = "Please specify a request body!"
	MsgInvalidBody    = "Please specify a valid request body!"
	MsgInvalidTitle   = "Please specify a valid book title!"
	MsgInvalidID      = "Please specify a valid book id!"
	MsgMissingPathArg = "Please specify a path parameter!"
)

// Contratos mínimos dos casos de uso consumidos pelos controllers.
type (
	BookCreator interface {
		CreateBook(ctx context.Context, in book.BookTitle) (book.BasicBookWithDate, error)
	}
	BookUpdater interface {
		UpdateBook(ctx context.Context, in book.BasicBook) error
	}
	BookDeleter interface {
		DeleteBook(ctx context.Context, bookID string) error
	}
	BookDetailer interface {
		DetailBook(ctx context.Context, bookID string) (book.BasicBookWithDate, error)
	}
	BookLister interface {
		ListBooks(ctx context.Context) (usecase.ListBooksResult, error)
	}
)

// DetailResponse é o corpo do GET /books/{book_id}.
type DetailResponse struct {
	Book book.BasicBookWithDate `json:"book"`
}

var validate = book.NewValidator()

// titlePayload distingue book_title ausente de book_title vazio.
type titlePayload struct {
	BookTitle *string `json:"book_title"`
}

// readBody devolve o corpo decodificado; o erro já é a mensagem de 400.
func readBody(req events.APIGatewayV2HTTPRequest) ([]byte, *book.Error) {
	if req.Body == "" {
		return nil, book.NewBadRequest(MsgMissingBody)
	}
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	data, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, book.NewBadRequest(MsgInvalidBody)
	}
	if len(data) == 0 {
		return nil, book.NewBadRequest(MsgMissingBody)
	}
	return data, nil
}

// parseTitle lê {"book_title": "..."}; JSON inválido ou título ausente/vazio
// respondem MsgInvalidBody.
func parseTitle(data []byte) (string, *book.Error) {
	var p titlePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", book.NewBadRequest(MsgInvalidBody)
	}
	if p.BookTitle == nil || *p.BookTitle == "" {
		return "", book.NewBadRequest(MsgInvalidBody)
	}
	return *p.BookTitle, nil
}
