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

/*
Package book holds the domain of the book service: the entity shapes exchanged
between transport, use cases and storage, the identifier/title predicates and
the tagged error taxonomy used to choose an HTTP status.

The storage document keeps the entity under a single-table composite key where
both parts are "book|<book_id>":

	doc := book.NewDocument(book.BasicBookWithDate{...})
	doc.MainPK == book.ToBookKey(doc.BookID) // true

Validation can be done with the plain predicates or through validator/v10:

	v := book.NewValidator()
	err := v.Struct(book.BasicBook{BookID: "abc-1", BookTitle: "mybook1"})
*/
package book
