package controller

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/responder"
)

type UpdateBookController struct {
	useCase   BookUpdater
	responder *responder.ResponseBuilder
}

func NewUpdateBookController(uc BookUpdater, rb *responder.ResponseBuilder) *UpdateBookController {
	return &UpdateBookController{useCase: uc, responder: rb}
}

// Handle valida, em ordem: corpo presente, JSON com book_title e book_id na rota,
// id válido, título válido.
func (c *UpdateBookController) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	data, berr := readBody(req)
	if berr != nil {
		return c.responder.Error(berr), nil
	}

	title, berr := parseTitle(data)
	if berr != nil {
		return c.responder.Error(berr), nil
	}

	bookID := req.PathParameters[PathBookID]
	if bookID == "" {
		return c.responder.BadRequest(MsgInvalidBody), nil
	}

	in := book.BasicBook{BookID: bookID, BookTitle: title}
	if err := validate.Struct(in); err != nil {
		if book.FirstInvalidField(err) == PathBookID {
			return c.responder.BadRequest(MsgInvalidID), nil
		}
		return c.responder.BadRequest(MsgInvalidTitle), nil
	}

	if err := c.useCase.UpdateBook(ctx, in); err != nil {
		return c.responder.Error(err), nil
	}
	return c.responder.NoContent(), nil
}
