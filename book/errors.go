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
	"fmt"
)

// ErrorCode is the fixed enumeration exposed in error bodies.
type ErrorCode string

const (
	CodeBadRequest          ErrorCode = "BadRequest"
	CodeNotFound            ErrorCode = "NotFound"
	CodeInternalServerError ErrorCode = "InternalServerError"
)

// Error is the tagged error returned by use cases and controllers.
type Error struct {
	Code        ErrorCode `json:"code"`
	Description string    `json:"description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// NewBadRequest builds a BadRequest error.
func NewBadRequest(description string) *Error {
	return &Error{Code: CodeBadRequest, Description: description}
}

// NewNotFound builds a NotFound error.
func NewNotFound(description string) *Error {
	return &Error{Code: CodeNotFound, Description: description}
}

// NewInternalServerError builds an InternalServerError carrying the cause's message.
func NewInternalServerError(cause error) *Error {
	desc := "unknown error"
	if cause != nil {
		desc = cause.Error()
	}
	return &Error{Code: CodeInternalServerError, Description: desc}
}

// AsError converts any error into an *Error. Untagged errors become
// InternalServerError; nil stays nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternalServerError(err)
}

// CodeOf returns the code of err, InternalServerError for untagged errors and
// "" for nil.
func CodeOf(err error) ErrorCode {
	if e := AsError(err); e != nil {
		return e.Code
	}
	return ""
}
