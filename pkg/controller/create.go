package controller

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/responder"
)

type CreateBookController struct {
	useCase   BookCreator
	responder *responder.ResponseBuilder
}

func NewCreateBookController(uc BookCreator, rb *responder.ResponseBuilder) *CreateBookController {
	return &CreateBookController{useCase: uc, responder: rb}
}

// Handle valida, em ordem: corpo presente, JSON com book_title, título válido.
func (c *CreateBookController) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	data, berr := readBody(req)
	if berr != nil {
		return c.responder.Error(berr), nil
	}

	title, berr := parseTitle(data)
	if berr != nil {
		return c.responder.Error(berr), nil
	}

	in := book.BookTitle{BookTitle: title}
	if err := validate.Struct(in); err != nil {
		return c.responder.BadRequest(MsgInvalidTitle), nil
	}

	if _, err := c.useCase.CreateBook(ctx, in); err != nil {
		return c.responder.Error(err), nil
	}
	return c.responder.NoContent(), nil
}
