package directory

import "slices"

// Vocabulary is the set of distinct category and subcategory labels derived
// from a dataset. Labels keep the order in which they were first seen.
type Vocabulary struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
}

// BuildVocabulary derives the filter vocabulary from records.
func BuildVocabulary(records []Record) Vocabulary {
	cats := newLabelSet()
	subs := newLabelSet()

	for _, r := range records {
		for _, c := range r.CategoryLabels() {
			cats.add(c)
		}
		for _, s := range r.SubcategoryLabels() {
			subs.add(s)
		}
	}

	return Vocabulary{
		Categories:    cats.items,
		Subcategories: subs.items,
	}
}

// HasCategory reports whether label is a known category.
func (v Vocabulary) HasCategory(label string) bool {
	return slices.Contains(v.Categories, label)
}

// HasSubcategory reports whether label is a known subcategory.
func (v Vocabulary) HasSubcategory(label string) bool {
	return slices.Contains(v.Subcategories, label)
}

// labelSet is an insertion-ordered string set.
type labelSet struct {
	seen  map[string]struct{}
	items []string
}

func newLabelSet() *labelSet {
	return &labelSet{seen: make(map[string]struct{}), items: []string{}}
}

func (s *labelSet) add(label string) {
	if _, ok := s.seen[label]; ok {
		return
	}
	s.seen[label] = struct{}{}
	s.items = append(s.items, label)
}
