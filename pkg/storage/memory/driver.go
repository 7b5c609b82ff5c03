// Package memory implementa storage.BookDriver em memória, usado com
// BOOK_STORAGE=memory e nos testes dos casos de uso.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
)

// Driver guarda os livros num map e preserva a ordem de inserção.
type Driver struct {
	mu    sync.RWMutex
	books map[string]book.BasicBookWithDate
	order []string
	now   func() time.Time
	newID func() string
}

// Option configura o Driver.
type Option func(*Driver)

// WithClock troca o relógio usado em created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// WithIDGenerator troca o gerador de book_id.
func WithIDGenerator(newID func() string) Option {
	return func(d *Driver) { d.newID = newID }
}

func New(opts ...Option) *Driver {
	d := &Driver{
		books: make(map[string]book.BasicBookWithDate),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var (
	_ storage.BookDriver = (*Driver)(nil)
	_ storage.BookSeeder = (*Driver)(nil)
)

func (d *Driver) FindBooks(ctx context.Context) ([]book.BasicBookWithDate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]book.BasicBookWithDate, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.books[id])
	}
	return out, nil
}

func (d *Driver) BookExists(ctx context.Context, bookID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.books[bookID]
	return ok, nil
}

func (d *Driver) CreateBook(ctx context.Context, in book.BookTitle) (book.BasicBookWithDate, error) {
	if err := ctx.Err(); err != nil {
		return book.BasicBookWithDate{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.insert(in.BookTitle)
}

func (d *Driver) CreateBooks(ctx context.Context, titles []book.BookTitle) ([]book.BasicBookWithDate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	created := make([]book.BasicBookWithDate, 0, len(titles))
	for _, t := range titles {
		b, err := d.insert(t.BookTitle)
		if err != nil {
			return nil, err
		}
		created = append(created, b)
	}
	return created, nil
}

// insert exige d.mu travado para escrita.
func (d *Driver) insert(title string) (book.BasicBookWithDate, error) {
	id := d.newID()
	if _, exists := d.books[id]; exists {
		return book.BasicBookWithDate{}, storage.ErrBookExists
	}

	now := d.now()
	b := book.BasicBookWithDate{
		BookID:    id,
		BookTitle: title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.books[id] = b
	d.order = append(d.order, id)
	return b, nil
}

func (d *Driver) UpdateBook(ctx context.Context, in book.BasicBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.books[in.BookID]
	if !ok {
		return storage.ErrBookNotFound
	}

	// updated_at nunca retrocede, mesmo com relógio fora de ordem
	now := d.now()
	if now.Before(b.UpdatedAt) {
		now = b.UpdatedAt
	}
	b.BookTitle = in.BookTitle
	b.UpdatedAt = now
	d.books[in.BookID] = b
	return nil
}

func (d *Driver) DeleteBook(ctx context.Context, bookID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.books[bookID]; !ok {
		return storage.ErrBookNotFound
	}
	delete(d.books, bookID)
	for i, id := range d.order {
		if id == bookID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

func (d *Driver) GetBook(ctx context.Context, bookID string) (book.BasicBookWithDate, error) {
	if err := ctx.Err(); err != nil {
		return book.BasicBookWithDate{}, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, ok := d.books[bookID]
	if !ok {
		return book.BasicBookWithDate{}, storage.ErrBookNotFound
	}
	return b, nil
}
