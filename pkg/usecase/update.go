package usecase

import (
	"context"

	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
)

type UpdateBookUseCase struct {
	driver storage.BookDriver
}

func NewUpdateBookUseCase(driver storage.BookDriver) *UpdateBookUseCase {
	return &UpdateBookUseCase{driver: driver}
}

// UpdateBook replaces the title of an existing book and refreshes updated_at.
func (uc *UpdateBookUseCase) UpdateBook(ctx context.Context, in book.BasicBook) (err error) {
	defer func() { logOutcome(ctx, "update", in.BookID, err) }()

	if err := ensureExists(ctx, uc.driver, in.BookID); err != nil {
		return err
	}
	if err := uc.driver.UpdateBook(ctx, in); err != nil {
		return book.NewInternalServerError(err)
	}
	return nil
}
