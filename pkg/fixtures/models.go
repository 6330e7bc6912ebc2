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

// Profile é o complemento exibido apenas na consulta individual de usuário.
type Profile struct {
	Bio      string `json:"bio" yaml:"bio"`
	Location string `json:"location" yaml:"location"`
	JoinDate string `json:"joinDate" yaml:"joinDate"`
}

type User struct {
	ID        int      `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name" validate:"required"`
	Email     string   `json:"email" yaml:"email" validate:"required"`
	Role      string   `json:"role" yaml:"role" validate:"oneof=admin user"`
	Profile   *Profile `json:"profile,omitempty" yaml:"profile,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Summary devolve o usuário sem o perfil, formato usado em listagens.
func (u User) Summary() User {
	u.Profile = nil
	return u
}

func (u User) clone() User {
	if u.Profile != nil {
		p := *u.Profile
		u.Profile = &p
	}
	return u
}

type Post struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	AuthorID  int    `json:"authorId" yaml:"authorId"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

type Event struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title" validate:"required"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
	StartDate        string   `json:"startDate" yaml:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          string   `json:"endDate" yaml:"endDate" validate:"required,datetime=2006-01-02"`
	StartTime        string   `json:"startTime" yaml:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime          string   `json:"endTime" yaml:"endTime" validate:"omitempty,datetime=15:04"`
	Location         string   `json:"location,omitempty" yaml:"location,omitempty"`
	Priority         string   `json:"priority" yaml:"priority" validate:"oneof=low medium high"`
	Category         string   `json:"category" yaml:"category"`
	NotificationTime int      `json:"notificationTime" yaml:"notificationTime" validate:"min=0"`
	IsAllDay         bool     `json:"isAllDay" yaml:"isAllDay"`
	Color            string   `json:"color,omitempty" yaml:"color,omitempty"`
	Attendees        []string `json:"attendees,omitempty" yaml:"attendees,omitempty"`
	Notes            string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt        string   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt        string   `json:"updatedAt" yaml:"updatedAt"`
}

func (e Event) clone() Event {
	if e.Attendees != nil {
		e.Attendees = append([]string(nil), e.Attendees...)
	}
	return e
}

type Holiday struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	IsHoliday   bool   `json:"isHoliday" yaml:"isHoliday"`
}

// Dataset é o conjunto de sementes carregado na inicialização do store.
type Dataset struct {
	Users []User `json:"users" yaml:"users"`
	Posts []Post `json:"posts" yaml:"posts"`
	// PostPages mapeia o número da página para os ids dos posts que ela contém.
	PostPages map[int][]int `json:"postPages" yaml:"postPages"`
	Events    []Event       `json:"events" yaml:"events"`
	Holidays  []Holiday     `json:"holidays" yaml:"holidays"`
}

// Clone faz uma cópia profunda, para que o store nunca compartilhe
// memória com a semente original.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Users:    make([]User, 0, len(d.Users)),
		Posts:    append([]Post(nil), d.Posts...),
		Events:   make([]Event, 0, len(d.Events)),
		Holidays: append([]Holiday(nil), d.Holidays...),
	}
	for _, u := range d.Users {
		out.Users = append(out.Users, u.clone())
	}
	for _, e := range d.Events {
		out.Events = append(out.Events, e.clone())
	}
	if d.PostPages != nil {
		out.PostPages = make(map[int][]int, len(d.PostPages))
		for page, ids := range d.PostPages {
			out.PostPages[page] = append([]int(nil), ids...)
		}
	}
	return out
}
