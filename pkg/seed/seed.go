// Package seed carrega fixtures de livros (YAML ou JSON) de um arquivo local ou
// de s3://bucket/key e as grava pelo storage.BookSeeder.
//
// Formatos aceitos, escolhidos pela extensão da fonte (.json, .yaml, .yml):
//
//	books:
//	  - book_title: dune
//	  - book_title: emma
//
// ou a lista sem a chave "books".
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/storage"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmptyFixture indica uma fonte sem nenhum título.
var ErrEmptyFixture = errors.New("seed: fixture has no books")

// S3Client interface para Mock
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fixture é o documento de seed.
type Fixture struct {
	Books []book.BookTitle `json:"books" yaml:"books"`
}

// Loader lê e valida fixtures.
type Loader struct {
	s3       S3Client
	validate *validator.Validate
}

// NewLoader cria o loader. s3Client pode ser nil quando só arquivos locais são usados.
func NewLoader(s3Client S3Client) *Loader {
	return &Loader{
		s3:       s3Client,
		validate: book.NewValidator(),
	}
}

// Load lê a fonte e devolve os títulos validados, na ordem do documento.
func (l *Loader) Load(ctx context.Context, source string) ([]book.BookTitle, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "s3://") {
		data, err = l.loadFromS3(ctx, source)
	} else {
		data, err = os.ReadFile(strings.TrimPrefix(source, "file://"))
	}
	if err != nil {
		return nil, fmt.Errorf("seed: falha leitura (%s): %w", source, err)
	}

	titles, err := Decode(data, formatOf(source))
	if err != nil {
		return nil, fmt.Errorf("seed: falha parse (%s): %w", source, err)
	}
	if len(titles) == 0 {
		return nil, ErrEmptyFixture
	}

	for i, t := range titles {
		if err := l.validate.Struct(t); err != nil {
			return nil, fmt.Errorf("seed: books[%d]: invalid book_title %q", i, t.BookTitle)
		}
	}
	return titles, nil
}

func (l *Loader) loadFromS3(ctx context.Context, source string) ([]byte, error) {
	if l.s3 == nil {
		return nil, errors.New("s3 client not configured")
	}
	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 source, expected s3://bucket/key")
	}

	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao baixar do S3: %w", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func formatOf(source string) string {
	switch strings.ToLower(path.Ext(source)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// Decode interpreta o documento no formato informado ("json" ou "yaml").
func Decode(data []byte, format string) ([]book.BookTitle, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	unmarshal := yaml.Unmarshal
	if format == "json" {
		unmarshal = json.Unmarshal
	}

	// Lista na raiz
	var titles []book.BookTitle
	if err := unmarshal(data, &titles); err == nil {
		return titles, nil
	}

	var f Fixture
	if err := unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Books, nil
}

// Apply grava os títulos em lote e devolve os livros criados.
func Apply(ctx context.Context, seeder storage.BookSeeder, titles []book.BookTitle) ([]book.BasicBookWithDate, error) {
	created, err := seeder.CreateBooks(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("seed: falha na gravação: %w", err)
	}
	log.Ctx(ctx).Info().Int("books", len(created)).Msg("seed applied")
	return created, nil
}
