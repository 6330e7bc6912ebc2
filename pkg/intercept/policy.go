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
package intercept

import (
	"errors"
	"fmt"
)

// Policy define o destino das requisições que nenhuma rota atende.
type Policy string

const (
	// PolicyBypass repassa para a rede real sem aviso.
	PolicyBypass Policy = "bypass"
	// PolicyWarn repassa, mas registra um aviso.
	PolicyWarn Policy = "warn"
	// PolicyError falha a requisição.
	PolicyError Policy = "error"
)

// ErrUnhandledRequest é devolvido na política "error".
var ErrUnhandledRequest = errors.New("intercept: requisição não tratada pelo mock")

// ParsePolicy converte o valor da configuração. Vazio equivale a warn.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicyWarn, nil
	case PolicyBypass, PolicyWarn, PolicyError:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("política de requisição não tratada inválida: %q", s)
	}
}

// Forwards indica se a política deixa a requisição seguir para a rede.
func (p Policy) Forwards() bool {
	return p != PolicyError
}
