package storage

import (
	"context"

	"github.com/raywall/book-service/book"
)

// MockDriver é um BookDriver de testes baseado em campos de função.
//
// Sem função definida, cada método se comporta como uma tabela vazia.
type MockDriver struct {
	FindBooksFn  func(ctx context.Context) ([]book.BasicBookWithDate, error)
	BookExistsFn func(ctx context.Context, bookID string) (bool, error)
	CreateBookFn func(ctx context.Context, in book.BookTitle) (book.BasicBookWithDate, error)
	UpdateBookFn func(ctx context.Context, in book.BasicBook) error
	DeleteBookFn func(ctx context.Context, bookID string) error
	GetBookFn    func(ctx context.Context, bookID string) (book.BasicBookWithDate, error)
}

func (m *MockDriver) FindBooks(ctx context.Context) ([]book.BasicBookWithDate, error) {
	if m.FindBooksFn != nil {
		return m.FindBooksFn(ctx)
	}
	return []book.BasicBookWithDate{}, nil
}

func (m *MockDriver) BookExists(ctx context.Context, bookID string) (bool, error) {
	if m.BookExistsFn != nil {
		return m.BookExistsFn(ctx, bookID)
	}
	return false, nil
}

func (m *MockDriver) CreateBook(ctx context.Context, in book.BookTitle) (book.BasicBookWithDate, error) {
	if m.CreateBookFn != nil {
		return m.CreateBookFn(ctx, in)
	}
	return book.BasicBookWithDate{BookTitle: in.BookTitle}, nil
}

func (m *MockDriver) UpdateBook(ctx context.Context, in book.BasicBook) error {
	if m.UpdateBookFn != nil {
		return m.UpdateBookFn(ctx, in)
	}
	return nil
}

func (m *MockDriver) DeleteBook(ctx context.Context, bookID string) error {
	if m.DeleteBookFn != nil {
		return m.DeleteBookFn(ctx, bookID)
	}
	return nil
}

func (m *MockDriver) GetBook(ctx context.Context, bookID string) (book.BasicBookWithDate, error) {
	if m.GetBookFn != nil {
		return m.GetBookFn(ctx, bookID)
	}
	return book.BasicBookWithDate{}, ErrBookNotFound
}
