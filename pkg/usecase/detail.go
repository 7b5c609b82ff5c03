package usecase

import (
	"context"
	"errors"

	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
)

type DetailBookUseCase struct {
	driver storage.BookDriver
}

func NewDetailBookUseCase(driver storage.BookDriver) *DetailBookUseCase {
	return &DetailBookUseCase{driver: driver}
}

func (uc *DetailBookUseCase) DetailBook(ctx context.Context, bookID string) (out book.BasicBookWithDate, err error) {
	defer func() { logOutcome(ctx, "detail", bookID, err) }()

	if err := ensureExists(ctx, uc.driver, bookID); err != nil {
		return book.BasicBookWithDate{}, err
	}

	out, err = uc.driver.GetBook(ctx, bookID)
	switch {
	case errors.Is(err, storage.ErrBookNotFound):
		// deleted between the existence check and the read
		return book.BasicBookWithDate{}, notFound(bookID)
	case err != nil:
		return book.BasicBookWithDate{}, book.NewInternalServerError(err)
	}
	return out, nil
}
