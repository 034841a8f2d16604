package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SearchField is an attribute the search endpoint can filter on.
type SearchField string

const (
	FieldFirstName SearchField = "firstName"
	FieldLastName  SearchField = "lastName"
	FieldEmail     SearchField = "email"
	FieldUsername  SearchField = "username"
	FieldID        SearchField = "id"
)

// SelectableFields are the fields offered by the list screen, in display order.
var SelectableFields = []SearchField{FieldFirstName, FieldLastName, FieldEmail, FieldUsername}

func (f SearchField) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldEmail:
		return "Email"
	case FieldUsername:
		return "Username"
	case FieldID:
		return "ID"
	default:
		return string(f)
	}
}

// ParseSearchField accepts the wire name or a short alias, case-insensitively.
func ParseSearchField(s string) (SearchField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "firstname", "first", "fn":
		return FieldFirstName, nil
	case "lastname", "last", "ln":
		return FieldLastName, nil
	case "email", "mail":
		return FieldEmail, nil
	case "username", "user", "login":
		return FieldUsername, nil
	default:
		return "", fmt.Errorf("unknown search field %q", s)
	}
}

// SearchQuery encodes as a single-key object: {"<field>": "<value>"}.
type SearchQuery struct {
	Field SearchField
	Value string
}

func (q SearchQuery) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{string(q.Field): q.Value})
}
