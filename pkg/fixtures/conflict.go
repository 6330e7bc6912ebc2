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
package fixtures

import (
	"strconv"
	"strings"
)

// ParseClock converte "HH:MM" em minutos desde a meia-noite.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// Conflicts informa se dois eventos disputam o mesmo horário: mesma data de
// início e intervalos [início, fim) sobrepostos. Horários ilegíveis nunca
// conflitam.
func Conflicts(a, b Event) bool {
	if a.StartDate != b.StartDate {
		return false
	}
	aStart, ok1 := ParseClock(a.StartTime)
	aEnd, ok2 := ParseClock(a.EndTime)
	bStart, ok3 := ParseClock(b.StartTime)
	bEnd, ok4 := ParseClock(b.EndTime)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return aStart < bEnd && aEnd > bStart
}

// FindConflict procura, entre os eventos existentes, o primeiro que conflita
// com o candidato. O próprio candidato (mesmo id) é ignorado.
func FindConflict(candidate Event, existing []Event) (Event, bool) {
	for _, ev := range existing {
		if ev.ID == candidate.ID {
			continue
		}
		if Conflicts(candidate, ev) {
			return ev, true
		}
	}
	return Event{}, false
}
