package book

import "time"

// KeyPrefix prefixes both parts of a book's composite key.
const KeyPrefix = "book|"

// Composite key attribute names.
const (
	AttrMainPK = "main_pk"
	AttrMainSK = "main_sk"
)

// BookTitle is the create payload.
type BookTitle struct {
	BookTitle string `json:"book_title" dynamodbav:"book_title" yaml:"book_title" validate:"book_title"`
}

// BasicBook is identity plus mutable content.
type BasicBook struct {
	BookID    string `json:"book_id" dynamodbav:"book_id" validate:"book_id"`
	BookTitle string `json:"book_title" dynamodbav:"book_title" validate:"book_title"`
}

// BasicBookWithDate is the read model returned to clients.
type BasicBookWithDate struct {
	BookID    string    `json:"book_id" dynamodbav:"book_id"`
	BookTitle string    `json:"book_title" dynamodbav:"book_title"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Key is the single-table composite key.
type Key struct {
	MainPK string `dynamodbav:"main_pk"`
	MainSK string `dynamodbav:"main_sk"`
}

// BasicBookDocument is the stored item. It never leaves the storage layer.
type BasicBookDocument struct {
	Key
	BasicBookWithDate
}

// ToBookKey returns the partition/sort key value for a book id.
func ToBookKey(bookID string) string {
	return KeyPrefix + bookID
}

// KeyOf builds the composite key for a book id.
func KeyOf(bookID string) Key {
	k := ToBookKey(bookID)
	return Key{MainPK: k, MainSK: k}
}

// NewDocument wraps an entity with its composite key.
func NewDocument(b BasicBookWithDate) BasicBookDocument {
	return BasicBookDocument{
		Key:               KeyOf(b.BookID),
		BasicBookWithDate: b,
	}
}

// Book strips the storage key from a document.
func (d BasicBookDocument) Book() BasicBookWithDate {
	return d.BasicBookWithDate
}
