// Package taxonomy holds the fixed category catalogue used to classify
// transactions. The table is built once at package initialisation and is
// never mutated; changing it means shipping a new version of the table.
package taxonomy

import (
	"github.com/agnivade/levenshtein"
)

// Version identifies the catalogue revision compiled into this binary.
const Version = "2.1.0"

// Subcategory is a stable key plus a presentation label. Stored data only
// references the key, so labels may be renamed freely.
type Subcategory struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Category groups an ordered list of subcategories under a stable key.
type Category struct {
	Key           string        `json:"key"`
	Label         string        `json:"label"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Table is an immutable category lookup table.
type Table struct {
	version    string
	categories []Category
	index      map[string]int
	subIndex   map[string]map[string]string
}

// NewTable builds a lookup table from the given categories. The input is
// copied so later changes to it do not leak into the table.
func NewTable(version string, categories []Category) *Table {
	t := &Table{
		version:    version,
		categories: make([]Category, len(categories)),
		index:      make(map[string]int, len(categories)),
		subIndex:   make(map[string]map[string]string, len(categories)),
	}
	for i, c := range categories {
		subs := make([]Subcategory, len(c.Subcategories))
		copy(subs, c.Subcategories)
		t.categories[i] = Category{Key: c.Key, Label: c.Label, Subcategories: subs}
		t.index[c.Key] = i

		labels := make(map[string]string, len(subs))
		for _, s := range subs {
			labels[s.Key] = s.Label
		}
		t.subIndex[c.Key] = labels
	}
	return t
}

// Version returns the catalogue revision.
func (t *Table) Version() string { return t.version }

// Categories returns a copy of every category with its subcategories, in
// catalogue order.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Key: c.Key, Label: c.Label, Subcategories: t.Subcategories(c.Key)}
	}
	return out
}

// CategoryKeys returns the category keys in catalogue order.
func (t *Table) CategoryKeys() []string {
	keys := make([]string, len(t.categories))
	for i, c := range t.categories {
		keys[i] = c.Key
	}
	return keys
}

// HasCategory reports whether key is a known category.
func (t *Table) HasCategory(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Subcategories returns a copy of the subcategories of a category, or nil
// when the category is unknown.
func (t *Table) Subcategories(category string) []Subcategory {
	i, ok := t.index[category]
	if !ok {
		return nil
	}
	src := t.categories[i].Subcategories
	out := make([]Subcategory, len(src))
	copy(out, src)
	return out
}

// Valid reports whether subcategory belongs to category.
func (t *Table) Valid(category, subcategory string) bool {
	subs, ok := t.subIndex[category]
	if !ok {
		return false
	}
	_, ok = subs[subcategory]
	return ok
}

// CategoryLabel returns the label of a category, or the key itself when it
// is unknown.
func (t *Table) CategoryLabel(key string) string {
	if i, ok := t.index[key]; ok {
		return t.categories[i].Label
	}
	return key
}

// SubcategoryLabel returns the label of a subcategory, or the key itself
// when it is unknown.
func (t *Table) SubcategoryLabel(category, key string) string {
	if label, ok := t.subIndex[category][key]; ok {
		return label
	}
	return key
}

// Suggest returns the subcategory key of category closest to candidate by
// edit distance. It returns "" when the category is unknown.
func (t *Table) Suggest(category, candidate string) string {
	best := ""
	bestDist := -1
	for _, s := range t.Subcategories(category) {
		d := levenshtein.ComputeDistance(candidate, s.Key)
		if bestDist < 0 || d < bestDist {
			best, bestDist = s.Key, d
		}
	}
	return best
}

// SuggestCategory returns the known category key closest to candidate.
func (t *Table) SuggestCategory(candidate string) string {
	best := ""
	bestDist := -1
	for _, c := range t.categories {
		d := levenshtein.ComputeDistance(candidate, c.Key)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c.Key, d
		}
	}
	return best
}
