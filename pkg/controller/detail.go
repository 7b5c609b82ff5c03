package controller

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/responder"
)

type DetailBookController struct {
	useCase   BookDetailer
	responder *responder.ResponseBuilder
}

func NewDetailBookController(uc BookDetailer, rb *responder.ResponseBuilder) *DetailBookController {
	return &DetailBookController{useCase: uc, responder: rb}
}

func (c *DetailBookController) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	bookID := req.PathParameters[PathBookID]
	if bookID == "" {
		return c.responder.BadRequest(MsgMissingPathArg), nil
	}
	if !book.IsValidBookID(bookID) {
		return c.responder.BadRequest(MsgInvalidID), nil
	}

	b, err := c.useCase.DetailBook(ctx, bookID)
	if err != nil {
		return c.responder.Error(err), nil
	}
	return c.responder.OK(DetailResponse{Book: b}), nil
}
