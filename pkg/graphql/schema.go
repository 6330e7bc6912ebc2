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
package graphql

import (
	"github.com/graphql-go/graphql"
)

// Tipos do schema. Os nomes dos campos seguem as tags json das entidades,
// o que permite usar o resolver padrão do graphql-go.

var profileType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Profile",
	Fields: graphql.Fields{
		"bio":      &graphql.Field{Type: graphql.String},
		"location": &graphql.Field{Type: graphql.String},
		"joinDate": &graphql.Field{Type: graphql.String},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"role":      &graphql.Field{Type: graphql.String},
		"profile":   &graphql.Field{Type: profileType, Resolve: resolveProfile},
		"createdAt": &graphql.Field{Type: graphql.String},
		"updatedAt": &graphql.Field{Type: graphql.String},
	},
})

var eventType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Event",
	Fields: graphql.Fields{
		"id":               &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description":      &graphql.Field{Type: graphql.String},
		"startDate":        &graphql.Field{Type: graphql.String},
		"endDate":          &graphql.Field{Type: graphql.String},
		"startTime":        &graphql.Field{Type: graphql.String},
		"endTime":          &graphql.Field{Type: graphql.String},
		"location":         &graphql.Field{Type: graphql.String},
		"priority":         &graphql.Field{Type: graphql.String},
		"category":         &graphql.Field{Type: graphql.String},
		"notificationTime": &graphql.Field{Type: graphql.Int},
		"isAllDay":         &graphql.Field{Type: graphql.Boolean},
		"color":            &graphql.Field{Type: graphql.String},
		"attendees":        &graphql.Field{Type: graphql.NewList(graphql.String)},
		"notes":            &graphql.Field{Type: graphql.String},
		"createdAt":        &graphql.Field{Type: graphql.String},
		"updatedAt":        &graphql.Field{Type: graphql.String},
	},
})

var holidayType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Holiday",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.String},
		"date":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"isHoliday":   &graphql.Field{Type: graphql.Boolean},
	},
})

// postType depende do store para resolver o autor, por isso é montado
// junto com o schema.
func newPostType(r *resolver) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":     &graphql.Field{Type: graphql.String},
			"content":   &graphql.Field{Type: graphql.String},
			"authorId":  &graphql.Field{Type: graphql.Int},
			"createdAt": &graphql.Field{Type: graphql.String},
			"author":    &graphql.Field{Type: userType, Resolve: r.postAuthor},
		},
	})
}

func buildSchema(r *resolver) (graphql.Schema, error) {
	postType := newPostType(r)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.users,
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.user,
			},
			"posts": &graphql.Field{
				Type: graphql.NewList(postType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: r.posts,
			},
			"events": &graphql.Field{
				Type: graphql.NewList(eventType),
				Args: graphql.FieldConfigArgument{
					"search":    &graphql.ArgumentConfig{Type: graphql.String},
					"startDate": &graphql.ArgumentConfig{Type: graphql.String},
					"endDate":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.events,
			},
			"holidays": &graphql.Field{
				Type: graphql.NewList(holidayType),
				Args: graphql.FieldConfigArgument{
					"year":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "2024"},
					"month": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.holidays,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
