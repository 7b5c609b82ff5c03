package usecase

import (
	"context"

	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
)

// ListBooksResult is the list payload. Books is never nil.
type ListBooksResult struct {
	BookTotal int                      `json:"book_total"`
	Books     []book.BasicBookWithDate `json:"books"`
}

type ListBooksUseCase struct {
	driver storage.BookDriver
}

func NewListBooksUseCase(driver storage.BookDriver) *ListBooksUseCase {
	return &ListBooksUseCase{driver: driver}
}

// ListBooks returns every book in driver order.
func (uc *ListBooksUseCase) ListBooks(ctx context.Context) (ListBooksResult, error) {
	books, err := uc.driver.FindBooks(ctx)
	if err != nil {
		err = book.NewInternalServerError(err)
		logOutcome(ctx, "list", "", err)
		return ListBooksResult{}, err
	}

	if books == nil {
		books = []book.BasicBookWithDate{}
	}
	logOutcome(ctx, "list", "", nil)
	return ListBooksResult{BookTotal: len(books), Books: books}, nil
}
