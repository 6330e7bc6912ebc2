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
package responder

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Envelope é a resposta sintetizada, pronta para qualquer adaptador.
type Envelope struct {
	Status     int
	StatusText string
	Header     http.Header
	Body       []byte
	Delay      time.Duration
}

// HTTPResponse converte o envelope em *http.Response para uso em um
// RoundTripper.
func (e *Envelope) HTTPResponse(req *http.Request) *http.Response {
	return &http.Response{
		Status:        strconv.Itoa(e.Status) + " " + e.StatusText,
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}

// WriteTo escreve o envelope em um http.ResponseWriter.
func (e *Envelope) WriteTo(w http.ResponseWriter) error {
	for k, vs := range e.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(e.Status)
	if len(e.Body) == 0 {
		return nil
	}
	_, err := w.Write(e.Body)
	return err
}
