package controller

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/book-service/pkg/responder"
)

type ListBooksController struct {
	useCase   BookLister
	responder *responder.ResponseBuilder
}

func NewListBooksController(uc BookLister, rb *responder.ResponseBuilder) *ListBooksController {
	return &ListBooksController{useCase: uc, responder: rb}
}

func (c *ListBooksController) Handle(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	res, err := c.useCase.ListBooks(ctx)
	if err != nil {
		return c.responder.Error(err), nil
	}
	return c.responder.OK(res), nil
}
