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
	"net/http"
	"time"
)

// Result é a saída de um handler, ainda sem latência aplicada.
type Result struct {
	Status int
	// Body é serializado como JSON. nil significa resposta sem corpo.
	Body   interface{}
	Header map[string]string
	// Delay é a latência simulada antes da resposta ser entregue.
	Delay time.Duration
	// NetworkFailure simula uma falha de transporte: não há status HTTP.
	NetworkFailure bool
}

// JSON monta um resultado com corpo JSON.
func JSON(status int, body interface{}, delay time.Duration) Result {
	return Result{Status: status, Body: body, Delay: delay}
}

// OK é um atalho para JSON(200, ...).
func OK(body interface{}, delay time.Duration) Result {
	return JSON(http.StatusOK, body, delay)
}

// Fail converte um *Error em resultado com o status correspondente.
func Fail(err *Error, delay time.Duration) Result {
	return Result{Status: err.Status, Body: err, Delay: delay}
}

// NetworkError simula uma queda de rede.
func NetworkError(delay time.Duration) Result {
	return Result{NetworkFailure: true, Delay: delay}
}
