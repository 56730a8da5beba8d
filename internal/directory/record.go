package directory

import "strings"

// NoNameLabel is shown in place of an empty Organization.
const NoNameLabel = "No name"

// Record is one organization entry in the directory dataset.
//
// Every field is optional. Absent and null JSON values decode to "", and
// numbers or booleans decode to their JSON text.
// Categories and Subcategories are comma-separated label lists that are not
// trimmed upstream.
type Record struct {
	// ID is the record's position in the loaded dataset. Assigned by the Store.
	ID int `json:"-"`

	Organization  string `json:"Organization"`
	Description   string `json:"Description"`
	Address       string `json:"Address"`
	City          string `json:"City"`
	Zip           string `json:"Zip"`
	Phone         string `json:"Phone"`
	Website       string `json:"Website"`
	Categories    string `json:"Categories"`
	Subcategories string `json:"Subcategories"`

	// SearchBlock is a precomputed lowercase blob used for text matching.
	SearchBlock string `json:"SearchBlock"`
}

// DisplayName returns the organization name or NoNameLabel when it is empty.
func (r Record) DisplayName() string {
	if r.Organization == "" {
		return NoNameLabel
	}
	return r.Organization
}

// CategoryLabels returns the trimmed, non-empty category tokens.
func (r Record) CategoryLabels() []string {
	return SplitLabels(r.Categories)
}

// SubcategoryLabels returns the trimmed, non-empty subcategory tokens.
func (r Record) SubcategoryLabels() []string {
	return SplitLabels(r.Subcategories)
}

// SplitLabels splits a comma-separated label list, trimming each token and
// dropping empty ones.
func SplitLabels(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}
