package usecase

import (
	"context"

	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
)

type CreateBookUseCase struct {
	driver storage.BookDriver
}

func NewCreateBookUseCase(driver storage.BookDriver) *CreateBookUseCase {
	return &CreateBookUseCase{driver: driver}
}

// CreateBook persists a new book. The input is assumed shape-valid.
func (uc *CreateBookUseCase) CreateBook(ctx context.Context, in book.BookTitle) (book.BasicBookWithDate, error) {
	created, err := uc.driver.CreateBook(ctx, in)
	if err != nil {
		err = book.NewInternalServerError(err)
	}
	logOutcome(ctx, "create", created.BookID, err)
	return created, err
}
