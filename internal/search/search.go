// Package search flattens the sutta index into searchable records and
// filters them by substring.
package search

import (
	"strings"

	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
)

// Scope restricts a search to one collection. The zero value searches the
// whole forest.
type Scope metadata.CollectionID

// All searches every collection.
const All Scope = ""

// Record pairs a valid document with its precomputed search key.
type Record struct {
	Doc *metadata.Document
	Key string
}

// Flatten collects every valid document under scope, depth-first in source
// order, with its search key.
func Flatten(forest []*metadata.Collection, scope Scope) []Record {
	var out []Record
	collect := func(doc *metadata.Document) bool {
		if doc.Valid() {
			out = append(out, Record{Doc: doc, Key: Key(doc)})
		}
		return true
	}
	if scope == All {
		metadata.Walk(forest, collect)
		return out
	}
	if c, ok := metadata.FindCollection(forest, metadata.CollectionID(scope)); ok {
		metadata.WalkCollection(c, collect)
	}
	return out
}

// Key is the lowercase concatenation of number, English title, Pali title
// and collection code.
func Key(doc *metadata.Document) string {
	code := ""
	if doc.Collection != nil {
		code = string(doc.Collection.ID)
	}
	return strings.ToLower(strings.Join([]string{doc.Number, doc.EnglishTitle, doc.PaliTitle, code}, " "))
}

// Search returns the documents under scope whose key contains query.
// A blank query performs no search and reports ok == false.
func Search(forest []*metadata.Collection, scope Scope, query string) ([]*metadata.Document, bool) {
	if isBlank(query) {
		return nil, false
	}
	return Match(Flatten(forest, scope), query), true
}

// Match filters records by substring, keeping their order.
func Match(records []Record, query string) []*metadata.Document {
	q := strings.ToLower(query)
	out := make([]*metadata.Document, 0)
	for _, r := range records {
		if strings.Contains(r.Key, q) {
			out = append(out, r.Doc)
		}
	}
	return out
}

// Label renders a search result line.
func Label(doc *metadata.Document) string {
	return doc.Label()
}

// ParseScope accepts "dn", "DN", "all" or "" and returns the matching scope.
func ParseScope(s string) (Scope, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return All, true
	}
	id := metadata.CollectionID(strings.ToUpper(s))
	if !id.IsKnown() {
		return All, false
	}
	return Scope(id), true
}

func isBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
