// Package usecase orchestrates book operations on top of a storage.BookDriver.
//
// Every use case maps storage failures to book.InternalServerError carrying the
// driver's message, and checks existence before touching an addressed book.
package usecase

import (
	"context"
	"fmt"

	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
	"github.com/rs/zerolog/log"
)

// ensureExists applies the existence check shared by update, delete and detail.
func ensureExists(ctx context.Context, driver storage.BookDriver, bookID string) error {
	exists, err := driver.BookExists(ctx, bookID)
	if err != nil {
		return book.NewInternalServerError(err)
	}
	if !exists {
		return notFound(bookID)
	}
	return nil
}

func notFound(bookID string) *book.Error {
	return book.NewNotFound(fmt.Sprintf("The book does not exist: %s", bookID))
}

// logOutcome writes one line per use case execution.
func logOutcome(ctx context.Context, operation, bookID string, err error) {
	logger := log.Ctx(ctx)
	if err == nil {
		logger.Debug().Str("operation", operation).Str("book_id", bookID).Msg("book operation succeeded")
		return
	}

	e := book.AsError(err)
	event := logger.Warn()
	if e.Code == book.CodeInternalServerError {
		event = logger.Error()
	}
	event.Str("operation", operation).
		Str("book_id", bookID).
		Str("code", string(e.Code)).
		Str("description", e.Description).
		Msg("book operation failed")
}
