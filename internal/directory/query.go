package directory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllSentinel is the category/subcategory value that disables that filter.
const AllSentinel = "all"

// Criteria is the current (text, category, subcategory) filter tuple.
type Criteria struct {
	Text        string `json:"text"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// DefaultCriteria matches every record.
func DefaultCriteria() Criteria {
	return Criteria{Category: AllSentinel, Subcategory: AllSentinel}
}

// Normalize maps empty category and subcategory values to AllSentinel.
// Text is left as entered; trimming happens at match time.
func (c Criteria) Normalize() Criteria {
	if strings.TrimSpace(c.Category) == "" {
		c.Category = AllSentinel
	}
	if strings.TrimSpace(c.Subcategory) == "" {
		c.Subcategory = AllSentinel
	}
	return c
}

// IsDefault reports whether c matches every record.
func (c Criteria) IsDefault() bool {
	c = c.Normalize()
	return strings.TrimSpace(c.Text) == "" && c.Category == AllSentinel && c.Subcategory == AllSentinel
}

// MatchMode selects how category and subcategory criteria are compared.
type MatchMode int

const (
	// MatchSubstring matches when the raw comma list contains the value
	// anywhere. "Art" matches "Arts & Crafts".
	MatchSubstring MatchMode = iota

	// MatchExactToken matches when one trimmed token equals the value.
	MatchExactToken
)

// String returns the mode name.
func (m MatchMode) String() string {
	if m == MatchExactToken {
		return "exact"
	}
	return "substring"
}

// Match reports the outcome of each predicate for one record.
type Match struct {
	Text        bool
	Category    bool
	Subcategory bool
}

// OK reports whether all predicates hold.
func (m Match) OK() bool {
	return m.Text && m.Category && m.Subcategory
}

// Filter returns the records matching c using substring category matching.
// The result preserves input order. The input is not modified.
func Filter(records []Record, c Criteria) []Record {
	return FilterWithMode(records, c, MatchSubstring)
}

// FilterWithMode is Filter with an explicit category match mode.
func FilterWithMode(records []Record, c Criteria, mode MatchMode) []Record {
	q := compile(c, mode)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q.match(r).OK() {
			out = append(out, r)
		}
	}
	return out
}

// Explain evaluates each predicate of c against r.
func Explain(r Record, c Criteria, mode MatchMode) Match {
	return compile(c, mode).match(r)
}

// query is Criteria prepared for repeated evaluation.
type query struct {
	text        string
	category    string
	subcategory string
	mode        MatchMode
}

func compile(c Criteria, mode MatchMode) query {
	c = c.Normalize()
	return query{
		text:        foldQuery(c.Text),
		category:    c.Category,
		subcategory: c.Subcategory,
		mode:        mode,
	}
}

// foldQuery trims and lowercases the free-text query.
// A Caser is stateful, so one is created per call.
func foldQuery(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return cases.Lower(language.Und).String(text)
}

func (q query) match(r Record) Match {
	return Match{
		Text:        q.text == "" || strings.Contains(r.SearchBlock, q.text),
		Category:    q.matchLabel(r.Categories, q.category),
		Subcategory: q.matchLabel(r.Subcategories, q.subcategory),
	}
}

func (q query) matchLabel(field, want string) bool {
	if want == AllSentinel {
		return true
	}
	if field == "" {
		return false
	}
	if q.mode == MatchExactToken {
		for _, label := range SplitLabels(field) {
			if label == strings.TrimSpace(want) {
				return true
			}
		}
		return false
	}
	return strings.Contains(field, want)
}
