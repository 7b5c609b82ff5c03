// Package app é a raiz de composição: liga driver, casos de uso, controllers
// e a tabela de rotas.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/book-service/pkg/controller"
	"github.com/raywall/book-service/pkg/responder"
	"github.com/raywall/book-service/pkg/storage"
	"github.com/raywall/book-service/pkg/usecase"
)

// Route associa método e caminho (no formato do API Gateway) a um controller.
type Route struct {
	Method    string
	Path      string
	Operation string
	Handler   controller.Handler
}

// Key é a route key do API Gateway HTTP API ("GET /books/{book_id}").
func (r Route) Key() string {
	return r.Method + " " + r.Path
}

// App despacha eventos pela route key.
type App struct {
	routes    []Route
	byKey     map[string]Route
	responder *responder.ResponseBuilder
}

// New monta o grafo de dependências explicitamente.
func New(driver storage.BookDriver, rb *responder.ResponseBuilder) *App {
	create := controller.NewCreateBookController(usecase.NewCreateBookUseCase(driver), rb)
	update := controller.NewUpdateBookController(usecase.NewUpdateBookUseCase(driver), rb)
	remove := controller.NewDeleteBookController(usecase.NewDeleteBookUseCase(driver), rb)
	detail := controller.NewDetailBookController(usecase.NewDetailBookUseCase(driver), rb)
	list := controller.NewListBooksController(usecase.NewListBooksUseCase(driver), rb)

	routes := []Route{
		{Method: http.MethodGet, Path: "/books", Operation: "list", Handler: list.Handle},
		{Method: http.MethodPost, Path: "/books", Operation: "create", Handler: create.Handle},
		{Method: http.MethodGet, Path: "/books/{book_id}", Operation: "detail", Handler: detail.Handle},
		{Method: http.MethodPatch, Path: "/books/{book_id}", Operation: "update", Handler: update.Handle},
		{Method: http.MethodDelete, Path: "/books/{book_id}", Operation: "delete", Handler: remove.Handle},
	}

	a := &App{
		routes:    routes,
		byKey:     make(map[string]Route, len(routes)),
		responder: rb,
	}
	for _, r := range routes {
		a.byKey[r.Key()] = r
	}
	return a
}

// Routes devolve a tabela de rotas (usada pelo servidor local).
func (a *App) Routes() []Route {
	return a.routes
}

// Responder expõe o builder compartilhado (CORS e respostas de erro do transporte).
func (a *App) Responder() *responder.ResponseBuilder {
	return a.responder
}

// Operation devolve o nome da operação da route key ("" se desconhecida).
func (a *App) Operation(routeKey string) string {
	return a.byKey[routeKey].Operation
}

// Handle é o handler Lambda do serviço. Route key desconhecida responde 404.
func (a *App) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	r, ok := a.byKey[req.RouteKey]
	if !ok {
		return a.responder.NotFound(fmt.Sprintf("Route not found: %s", req.RouteKey)), nil
	}
	return r.Handler(ctx, req)
}
