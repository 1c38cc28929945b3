package search

import (
	"sync"

	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
)

// Index memoizes flattened records per scope. The forest never changes
// after load, so records are computed at most once per scope.
type Index struct {
	forest []*metadata.Collection

	mu      sync.Mutex
	byScope map[Scope][]Record
}

// NewIndex wraps a loaded forest.
func NewIndex(forest []*metadata.Collection) *Index {
	return &Index{forest: forest, byScope: make(map[Scope][]Record)}
}

// Records returns the flattened records for scope.
func (ix *Index) Records(scope Scope) []Record {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if recs, ok := ix.byScope[scope]; ok {
		return recs
	}
	recs := Flatten(ix.forest, scope)
	ix.byScope[scope] = recs
	return recs
}

// Search behaves like the package-level Search but reuses cached records.
func (ix *Index) Search(scope Scope, query string) ([]*metadata.Document, bool) {
	if isBlank(query) {
		return nil, false
	}
	return Match(ix.Records(scope), query), true
}
