// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package book

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxTitleLength is the maximum number of characters of a book title.
const MaxTitleLength = 20

var (
	alphaNumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	// Permissive: accepts UUIDs but also any hyphenated alphanumeric token.
	bookIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// IsValidBookID reports whether id is a non-empty run of letters, digits and hyphens.
func IsValidBookID(id string) bool {
	return bookIDPattern.MatchString(id)
}

// IsValidBookTitle reports whether title is alphanumeric and at most MaxTitleLength long.
func IsValidBookTitle(title string) bool {
	return alphaNumeric.MatchString(title) && utf8.RuneCountInString(title) <= MaxTitleLength
}

// NewValidator returns a validator with the "book_id" and "book_title" tags registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("book_id", func(fl validator.FieldLevel) bool {
		return IsValidBookID(fl.Field().String())
	})
	_ = v.RegisterValidation("book_title", func(fl validator.FieldLevel) bool {
		return IsValidBookTitle(fl.Field().String())
	})
	return v
}

// FirstInvalidField returns the JSON name of the first field rejected by a
// validator built with NewValidator, or "" when err is not a validation error.
func FirstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ""
	}
	return verrs[0].Field()
}

func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
