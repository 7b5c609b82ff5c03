package controller

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/responder"
)

type DeleteBookController struct {
	useCase   BookDeleter
	responder *responder.ResponseBuilder
}

func NewDeleteBookController(uc BookDeleter, rb *responder.ResponseBuilder) *DeleteBookController {
	return &DeleteBookController{useCase: uc, responder: rb}
}

func (c *DeleteBookController) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	bookID := req.PathParameters[PathBookID]
	if bookID == "" {
		return c.responder.BadRequest(MsgInvalidBody), nil
	}
	if !book.IsValidBookID(bookID) {
		return c.responder.BadRequest(MsgInvalidID), nil
	}

	if err := c.useCase.DeleteBook(ctx, bookID); err != nil {
		return c.responder.Error(err), nil
	}
	return c.responder.NoContent(), nil
}
