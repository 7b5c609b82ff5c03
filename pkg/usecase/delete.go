package usecase

import (
	"context"

	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
)

type DeleteBookUseCase struct {
	driver storage.BookDriver
}

func NewDeleteBookUseCase(driver storage.BookDriver) *DeleteBookUseCase {
	return &DeleteBookUseCase{driver: driver}
}

func (uc *DeleteBookUseCase) DeleteBook(ctx context.Context, bookID string) (err error) {
	defer func() { logOutcome(ctx, "delete", bookID, err) }()

	if err := ensureExists(ctx, uc.driver, bookID); err != nil {
		return err
	}
	if err := uc.driver.DeleteBook(ctx, bookID); err != nil {
		return book.NewInternalServerError(err)
	}
	return nil
}
