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
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/raywall/fast-mock-toolkit/pkg/fixtures"
	"github.com/raywall/fast-mock-toolkit/pkg/graphql"
)

// APIError representa qualquer resposta fora da faixa 2xx.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client consome os endpoints do mock (ou da API real, que tem o mesmo contrato).
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New cria um cliente. httpClient nulo usa http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

type UserInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type EventFilter struct {
	Search    string
	StartDate string
	EndDate   string
}

type DeleteUserResult struct {
	Message       string `json:"message"`
	DeletedUserID int    `json:"deletedUserId"`
}

type DeleteEventResult struct {
	Message      string         `json:"message"`
	DeletedEvent fixtures.Event `json:"deletedEvent"`
}

type SlowResult struct {
	Message string `json:"message"`
	Delay   int64  `json:"delay"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]fixtures.User, error) {
	var out []fixtures.User
	return out, c.do(ctx, http.MethodGet, "/api/users", nil, nil, &out)
}

// SearchUsers devolve lista vazia (nunca nil) quando não há resultado.
func (c *Client) SearchUsers(ctx context.Context, q string) ([]fixtures.User, error) {
	var out struct {
		Users []fixtures.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/search", url.Values{"q": {q}}, nil, &out); err != nil {
		return nil, err
	}
	if out.Users == nil {
		out.Users = []fixtures.User{}
	}
	return out.Users, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*fixtures.User, error) {
	var out fixtures.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*fixtures.User, error) {
	var out fixtures.User
	if err := c.do(ctx, http.MethodPost, "/api/users", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, in UserInput) (*fixtures.User, error) {
	var out fixtures.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+strconv.Itoa(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) (*DeleteUserResult, error) {
	var out DeleteUserResult
	if err := c.do(ctx, http.MethodDelete, "/api/users/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPosts pede uma página; page <= 0 omite o parâmetro.
func (c *Client) ListPosts(ctx context.Context, page int) ([]fixtures.Post, error) {
	var q url.Values
	if page > 0 {
		q = url.Values{"page": {strconv.Itoa(page)}}
	}
	var out []fixtures.Post
	return out, c.do(ctx, http.MethodGet, "/api/posts", q, nil, &out)
}

func (c *Client) SearchPosts(ctx context.Context, q string) ([]fixtures.Post, error) {
	var out []fixtures.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/search", url.Values{"q": {q}}, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []fixtures.Post{}
	}
	return out, nil
}

func (c *Client) ListEvents(ctx context.Context, f EventFilter) ([]fixtures.Event, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	var out []fixtures.Event
	return out, c.do(ctx, http.MethodGet, "/api/events", q, nil, &out)
}

func (c *Client) GetEvent(ctx context.Context, id string) (*fixtures.Event, error) {
	var out fixtures.Event
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEvent envia o evento como está; id e timestamps são gerados pelo servidor.
func (c *Client) CreateEvent(ctx context.Context, ev fixtures.Event) (*fixtures.Event, error) {
	var out fixtures.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", nil, ev, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEvent aceita um patch parcial (qualquer valor serializável em objeto JSON).
func (c *Client) UpdateEvent(ctx context.Context, id string, patch interface{}) (*fixtures.Event, error) {
	var out fixtures.Event
	if err := c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) (*DeleteEventResult, error) {
	var out DeleteEventResult
	if err := c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListHolidays filtra por ano e mês ("" devolve o ano inteiro).
func (c *Client) ListHolidays(ctx context.Context, year, month string) ([]fixtures.Holiday, error) {
	q := url.Values{}
	if year != "" {
		q.Set("year", year)
	}
	if month != "" {
		q.Set("month", month)
	}
	var out []fixtures.Holiday
	return out, c.do(ctx, http.MethodGet, "/api/holidays", q, nil, &out)
}

// ServerError sempre termina em *APIError com status 500.
func (c *Client) ServerError(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/server-error", nil, nil, nil)
}

// NetworkError sempre termina em erro de transporte.
func (c *Client) NetworkError(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/network-error", nil, nil, nil)
}

func (c *Client) Slow(ctx context.Context) (*SlowResult, error) {
	var out SlowResult
	if err := c.do(ctx, http.MethodGet, "/api/slow", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GraphQL envia uma consulta para path (vazio usa a rota padrão).
func (c *Client) GraphQL(ctx context.Context, path string, req graphql.Request) (*GraphQLResponse, error) {
	if path == "" {
		path = "/api/graphql"
	}
	var out GraphQLResponse
	if err := c.do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset restaura a semente do mock pela rota administrativa.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/__mock/reset", nil, nil, nil)
}

// Raw executa a requisição sem interpretar o corpo, usado pelo painel de testes.
func (c *Client) Raw(ctx context.Context, method, path string, body interface{}) (*http.Response, []byte, error) {
	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return nil, nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao ler resposta: %w", err)
	}
	return resp, data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body interface{}) (*http.Request, error) {
	target := c.BaseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("falha ao serializar corpo: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, q, body)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("falha ao ler resposta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("resposta inválida de %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response, data []byte) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Error
		return apiErr
	}
	apiErr.Message = http.StatusText(resp.StatusCode)
	return apiErr
}
