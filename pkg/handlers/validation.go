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
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/fast-mock-toolkit/pkg/api"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// mensagens usam o nome do campo no JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check valida a struct e converte falhas em VALIDATION_ERROR.
func (h *Handlers) check(v interface{}) *api.Error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return api.Validation(err.Error())
	}
	return api.Validation(describe(verrs))
}

// describe monta uma mensagem legível. Campos obrigatórios ausentes são
// agrupados em uma frase só.
func describe(verrs validator.ValidationErrors) string {
	var required, others []string
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			required = append(required, e.Field())
		case "oneof":
			others = append(others, fmt.Sprintf("%s must be one of [%s]", e.Field(), strings.ReplaceAll(e.Param(), " ", ", ")))
		case "datetime":
			others = append(others, fmt.Sprintf("%s must match the format %s", e.Field(), humanLayout(e.Param())))
		case "min":
			others = append(others, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
		default:
			others = append(others, fmt.Sprintf("%s failed on '%s'", e.Field(), e.Tag()))
		}
	}

	var parts []string
	if len(required) > 0 {
		parts = append(parts, joinRequired(required))
	}
	parts = append(parts, others...)
	return strings.Join(parts, "; ")
}

func joinRequired(fields []string) string {
	switch len(fields) {
	case 1:
		return capitalize(fields[0]) + " is required"
	case 2:
		return capitalize(fields[0]) + " and " + fields[1] + " are required"
	default:
		head := strings.Join(fields[:len(fields)-1], ", ")
		return capitalize(head) + ", and " + fields[len(fields)-1] + " are required"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func humanLayout(layout string) string {
	switch layout {
	case "2006-01-02":
		return "YYYY-MM-DD"
	case "15:04":
		return "HH:MM"
	}
	return layout
}

// decodeObject garante que o corpo é um objeto JSON.
func decodeObject(req *api.Request) (map[string]json.RawMessage, *api.Error) {
	var obj map[string]json.RawMessage
	if err := req.DecodeJSON(&obj); err != nil || obj == nil {
		return nil, api.InvalidJSON()
	}
	return obj, nil
}
