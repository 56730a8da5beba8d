// Package templates holds the HTML components of the directory browser.
// The *_templ.go files are generated from the .templ sources.
package templates

//go:generate templ generate

import (
	"strconv"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/a-h/templ"
)

// Region IDs targeted by HTMX swaps.
const (
	ResultsID       = "results"
	DetailsID       = "details"
	FiltersID       = "filters"
	FiltersRegionID = "filter-region"
)

const defaultTitle = "Resource Directory"

// PageData is everything the full page needs.
type PageData struct {
	Title      string
	Criteria   directory.Criteria
	Vocabulary directory.Vocabulary
	Results    templ.Component
	Detail     templ.Component
}

func (d PageData) title() string {
	if d.Title == "" {
		return defaultTitle
	}
	return d.Title
}

func recordPath(id int) string {
	return "/records/" + strconv.Itoa(id)
}

type detailField struct {
	Label string
	Value string
}

// detailFields lists the labelled rows of the detail view, in display order.
func detailFields(r *directory.Record) []detailField {
	return []detailField{
		{"Address", r.Address},
		{"City", r.City},
		{"Zip", r.Zip},
		{"Phone", r.Phone},
		{"Website", r.Website},
		{"Categories", r.Categories},
		{"Subcategories", r.Subcategories},
	}
}
