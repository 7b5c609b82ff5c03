// Package dynamo implementa storage.BookDriver sobre uma tabela single-table
// do DynamoDB, com chave composta main_pk = main_sk = "book|<id>".
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/google/uuid"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/dyndb"
	"github.com/raywall/book-service/pkg/storage"
	"github.com/rs/zerolog/log"
)

// Driver grava livros como book.BasicBookDocument.
type Driver struct {
	store    dyndb.Store[book.BasicBookDocument]
	pageSize int32
	now      func() time.Time
	newID    func() string
}

// Option configura o Driver.
type Option func(*Driver)

// WithPageSize define o Limit de cada página do Scan (0 usa o padrão do DynamoDB).
func WithPageSize(n int32) Option {
	return func(d *Driver) { d.pageSize = n }
}

// WithClock troca o relógio usado em created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// WithIDGenerator troca o gerador de book_id.
func WithIDGenerator(newID func() string) Option {
	return func(d *Driver) { d.newID = newID }
}

// New cria o driver sobre a tabela tableName.
func New(client dyndb.DynamoDBClient, tableName string, opts ...Option) *Driver {
	d := &Driver{
		store: dyndb.New(client, dyndb.TableConfig[book.BasicBookDocument]{
			TableName: tableName,
			HashKey:   book.AttrMainPK,
			SortKey:   book.AttrMainSK,
		}),
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
	docs, err := d.store.Scan().
		FilterBeginsWith(book.AttrMainPK, book.KeyPrefix).
		Limit(d.pageSize).
		All(ctx)
	if err != nil {
		return nil, err
	}

	books := make([]book.BasicBookWithDate, 0, len(docs))
	for _, doc := range docs {
		books = append(books, doc.Book())
	}
	return books, nil
}

func (d *Driver) BookExists(ctx context.Context, bookID string) (bool, error) {
	key := book.ToBookKey(bookID)
	return d.store.Exists(ctx, key, key)
}

func (d *Driver) CreateBook(ctx context.Context, in book.BookTitle) (book.BasicBookWithDate, error) {
	now := d.now()
	created := book.BasicBookWithDate{
		BookID:    d.newID(),
		BookTitle: in.BookTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := d.store.Put(ctx, book.NewDocument(created), dyndb.IfAbsent()); err != nil {
		return book.BasicBookWithDate{}, err
	}

	log.Ctx(ctx).Debug().Str("book_id", created.BookID).Msg("book stored")
	return created, nil
}

func (d *Driver) UpdateBook(ctx context.Context, in book.BasicBook) error {
	key := book.ToBookKey(in.BookID)
	upd := expression.
		Set(expression.Name("book_title"), expression.Value(in.BookTitle)).
		Set(expression.Name("updated_at"), expression.Value(d.now()))

	return d.store.Update(ctx, key, key, upd, dyndb.IfPresent())
}

func (d *Driver) DeleteBook(ctx context.Context, bookID string) error {
	key := book.ToBookKey(bookID)
	return d.store.Delete(ctx, key, key, dyndb.IfPresent())
}

func (d *Driver) GetBook(ctx context.Context, bookID string) (book.BasicBookWithDate, error) {
	key := book.ToBookKey(bookID)
	doc, err := d.store.Get(ctx, key, key)
	if errors.Is(err, dyndb.ErrNotFound) {
		return book.BasicBookWithDate{}, storage.ErrBookNotFound
	}
	if err != nil {
		return book.BasicBookWithDate{}, err
	}
	return doc.Book(), nil
}

// CreateBooks grava os títulos em lotes de 25 via BatchWriteItem.
// Ao contrário de CreateBook, o BatchWrite não aceita condition expression.
func (d *Driver) CreateBooks(ctx context.Context, titles []book.BookTitle) ([]book.BasicBookWithDate, error) {
	now := d.now()
	created := make([]book.BasicBookWithDate, 0, len(titles))
	docs := make([]book.BasicBookDocument, 0, len(titles))

	for _, t := range titles {
		b := book.BasicBookWithDate{
			BookID:    d.newID(),
			BookTitle: t.BookTitle,
			CreatedAt: now,
			UpdatedAt: now,
		}
		created = append(created, b)
		docs = append(docs, book.NewDocument(b))
	}

	if err := d.store.BatchWrite(ctx, docs); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return created, nil
}
