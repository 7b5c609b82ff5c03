package storage

import (
	"context"
	"errors"

	"github.com/raywall/book-service/book"
)

var (
	// ErrBookNotFound é devolvido quando o livro não existe.
	ErrBookNotFound = errors.New("storage: book not found")
	// ErrBookExists é devolvido quando o id gerado já está em uso.
	ErrBookExists = errors.New("storage: book already exists")
)

// BookDriver é o contrato de persistência usado pelos casos de uso.
type BookDriver interface {
	FindBooks(ctx context.Context) ([]book.BasicBookWithDate, error)
	// BookExists deve ser uma leitura consistente.
	BookExists(ctx context.Context, bookID string) (bool, error)
	// CreateBook gera o id e grava created_at == updated_at.
	CreateBook(ctx context.Context, in book.BookTitle) (book.BasicBookWithDate, error)
	// UpdateBook troca o título e renova updated_at.
	UpdateBook(ctx context.Context, in book.BasicBook) error
	DeleteBook(ctx context.Context, bookID string) error
	GetBook(ctx context.Context, bookID string) (book.BasicBookWithDate, error)
}

// BookSeeder grava vários livros de uma vez (booktool seed).
type BookSeeder interface {
	CreateBooks(ctx context.Context, titles []book.BookTitle) ([]book.BasicBookWithDate, error)
}
