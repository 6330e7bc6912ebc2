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
package api

import (
	"errors"
	"net/http"
)

// ErrUnhandled indica que nenhuma rota registrada atende à requisição.
var ErrUnhandled = errors.New("api: nenhum handler para a requisição")

// Code identifica a categoria de um erro devolvido pelos handlers.
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeInvalidJSON    Code = "INVALID_JSON"
	CodeUserNotFound   Code = "USER_NOT_FOUND"
	CodeEventNotFound  Code = "EVENT_NOT_FOUND"
	CodeDuplicateEmail Code = "DUPLICATE_EMAIL"
	CodeTimeConflict   Code = "TIME_CONFLICT"
	CodeInternal       Code = "INTERNAL_ERROR"
	CodeUnhandled      Code = "UNHANDLED_REQUEST"
)

// Error é o envelope {error, code} usado em todas as respostas de erro.
// Status não é serializado: ele vira o status HTTP da resposta.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    Code   `json:"code"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// NewError cria um erro de API com status explícito.
func NewError(status int, code Code, msg string) *Error {
	return &Error{Status: status, Code: code, Message: msg}
}

func Validation(msg string) *Error {
	return NewError(http.StatusBadRequest, CodeValidation, msg)
}

func InvalidJSON() *Error {
	return NewError(http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON payload")
}

func UserNotFound() *Error {
	return NewError(http.StatusNotFound, CodeUserNotFound, "User not found")
}

func EventNotFound() *Error {
	return NewError(http.StatusNotFound, CodeEventNotFound, "Event not found")
}

func DuplicateEmail() *Error {
	return NewError(http.StatusConflict, CodeDuplicateEmail, "Email already exists")
}

func TimeConflict() *Error {
	return NewError(http.StatusConflict, CodeTimeConflict, "Time conflict detected")
}

func Internal(msg string) *Error {
	return NewError(http.StatusInternalServerError, CodeInternal, msg)
}
