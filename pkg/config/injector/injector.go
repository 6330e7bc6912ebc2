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
package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/raywall/fast-mock-toolkit/pkg/cloud"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.API_KEY}, ${ssm./mock/upstream}, ${secret.redis_pass}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// Injector resolve valores da configuração a partir do ambiente, do SSM
// Parameter Store e do Secrets Manager. Os clientes AWS são criados sob
// demanda quando não informados.
type Injector struct {
	SSM     cloud.SSMGetter
	Secrets cloud.SecretsGetter
}

func New() *Injector {
	return &Injector{}
}

func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for k := 0; k < t.NumField(); k++ {
			field := t.Field(k)
			value := v.Field(k)
			if !field.IsExported() {
				continue
			}

			// 1. Tags env:"..." têm precedência sobre o YAML
			if err := processStructTag(field, value); err != nil {
				return err
			}

			// 2. Strings com interpolação "${...}"
			if value.Kind() == reflect.String && value.CanSet() {
				newValue, err := i.interpolateString(ctx, value.String())
				if err != nil {
					return err
				}
				value.SetString(newValue)
				continue
			}

			// 3. Recursão
			if err := i.injectRecursive(ctx, value); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String {
			return nil
		}
		return i.injectMap(ctx, v)

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			elem := v.Index(j)
			if elem.Kind() == reflect.String && elem.CanSet() {
				newValue, err := i.interpolateString(ctx, elem.String())
				if err != nil {
					return err
				}
				elem.SetString(newValue)
				continue
			}
			if err := i.injectRecursive(ctx, elem); err != nil {
				return err
			}
		}
	}
	return nil
}

func processStructTag(field reflect.StructField, value reflect.Value) error {
	if !value.CanSet() {
		return nil
	}
	tag := field.Tag.Get("env")
	if tag == "" {
		return nil
	}
	val, exists := os.LookupEnv(tag)
	if !exists {
		return nil
	}
	if err := setField(value, val); err != nil {
		return fmt.Errorf("variável %s inválida para o campo %s: %w", tag, field.Name, err)
	}
	return nil
}

// interpolateString realiza a substituição baseada em Regex
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		content := match[2 : len(match)-1] // env.VAR_NAME
		parts := strings.SplitN(content, ".", 2)
		if len(parts) != 2 {
			return match
		}

		val, resolveErr := i.fetchValue(ctx, parts[0], parts[1])
		if resolveErr != nil {
			err = resolveErr
			return match
		}
		return val
	})

	return result, err
}

// injectMap interpola os valores string de mapas. Mapas map[string]string
// (headers, overrides de latência) são os casos comuns.
func (i *Injector) injectMap(ctx context.Context, v reflect.Value) error {
	updates := make(map[string]reflect.Value)

	iter := v.MapRange()
	for iter.Next() {
		elem := iter.Value()
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() {
			continue
		}

		switch elem.Kind() {
		case reflect.String:
			newVal, err := i.interpolateString(ctx, elem.String())
			if err != nil {
				return err
			}
			nv := reflect.ValueOf(newVal)
			if !nv.Type().AssignableTo(v.Type().Elem()) {
				nv = nv.Convert(v.Type().Elem())
			}
			updates[iter.Key().String()] = nv
		case reflect.Map:
			if elem.Type().Key().Kind() == reflect.String {
				if err := i.injectMap(ctx, elem); err != nil {
					return err
				}
			}
		}
	}

	for k, val := range updates {
		v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), val)
	}
	return nil
}

// fetchValue centraliza a busca de dados
func (i *Injector) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		// variável ausente vira string vazia
		return os.Getenv(key), nil

	case "ssm":
		if i.SSM == nil {
			client, err := cloud.NewSSM(ctx)
			if err != nil {
				return "", err
			}
			i.SSM = client
		}
		return cloud.GetParameter(ctx, i.SSM, key)

	case "secret":
		if i.Secrets == nil {
			client, err := cloud.NewSecrets(ctx)
			if err != nil {
				return "", err
			}
			i.Secrets = client
		}
		return cloud.GetSecret(ctx, i.Secrets, key)
	}

	return "", fmt.Errorf("origem de valor desconhecida: %s", sourceType)
}

func setField(field reflect.Value, val string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64, reflect.Int32:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	}
	return nil
}
