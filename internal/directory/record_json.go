package directory

import (
	"bytes"
	"encoding/json"
)

// text is a record field as it appears in JSON. Spreadsheet exports often
// carry numbers or booleans where text is expected, so any JSON value is
// accepted: strings as-is, null as "", other scalars as their JSON literal,
// objects and arrays as compact JSON.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
	case data[0] == '{' || data[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = text(buf.String())
	default:
		*t = text(data)
	}
	return nil
}

type recordJSON struct {
	Organization  text `json:"Organization"`
	Description   text `json:"Description"`
	Address       text `json:"Address"`
	City          text `json:"City"`
	Zip           text `json:"Zip"`
	Phone         text `json:"Phone"`
	Website       text `json:"Website"`
	Categories    text `json:"Categories"`
	Subcategories text `json:"Subcategories"`
	SearchBlock   text `json:"SearchBlock"`
}

// UnmarshalJSON decodes a record object, stringifying non-string field
// values instead of rejecting them. The ID is left untouched.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{
		ID:            r.ID,
		Organization:  string(raw.Organization),
		Description:   string(raw.Description),
		Address:       string(raw.Address),
		City:          string(raw.City),
		Zip:           string(raw.Zip),
		Phone:         string(raw.Phone),
		Website:       string(raw.Website),
		Categories:    string(raw.Categories),
		Subcategories: string(raw.Subcategories),
		SearchBlock:   string(raw.SearchBlock),
	}
	return nil
}
