package metadata

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store loads the index once and serves the cached tree for the rest of the
// process. It is safe for concurrent reads.
type Store struct {
	path string
	root string
	log  *slog.Logger

	once   sync.Once
	forest []*Collection
	err    error
}

// NewStore returns a store reading the index at path. Relative document
// paths are resolved against root, or against the index's directory when
// root is empty.
func NewStore(path, root string) *Store {
	if root == "" && path != "" {
		root = filepath.Dir(path)
	}
	return &Store{path: path, root: root, log: slog.Default()}
}

// Load returns the collection forest. The first call reads and parses the
// index; later calls return the cached result, including a cached failure.
func (s *Store) Load() ([]*Collection, error) {
	s.once.Do(func() {
		s.forest, s.err = s.load()
		if s.err != nil {
			s.log.Error("metadata load failed", "path", s.path, "error", s.err)
			return
		}
		s.log.Info("metadata loaded", "path", s.path, "collections", len(s.forest))
	})
	return s.forest, s.err
}

func (s *Store) load() ([]*Collection, error) {
	if s.path == "" {
		return nil, &DataSourceError{Op: "open", Err: errors.New("no metadata path configured")}
	}
	data, err := readAll(s.path)
	if err != nil {
		return nil, &DataSourceError{Path: s.path, Op: "read", Err: err}
	}
	raw, err := decode(s.path, data)
	if err != nil {
		return nil, &DataSourceError{Path: s.path, Op: "parse", Err: err}
	}
	forest, err := build(raw, s.root)
	if err != nil {
		return nil, &DataSourceError{Path: s.path, Op: "parse", Err: err}
	}
	return forest, nil
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Collection returns the loaded collection with the given code.
func (s *Store) Collection(id CollectionID) (*Collection, bool) {
	forest, err := s.Load()
	if err != nil {
		return nil, false
	}
	return FindCollection(forest, id)
}

// Document looks up a valid document by its number, ignoring case and
// spaces ("DN 1" finds "dn1").
func (s *Store) Document(number string) (*Document, bool) {
	forest, err := s.Load()
	if err != nil {
		return nil, false
	}
	want := normalizeNumber(number)
	if want == "" {
		return nil, false
	}
	var found *Document
	Walk(forest, func(doc *Document) bool {
		if doc.Valid() && normalizeNumber(doc.Number) == want {
			found = doc
			return false
		}
		return true
	})
	return found, found != nil
}

// FindCollection returns the collection with the given code.
func FindCollection(forest []*Collection, id CollectionID) (*Collection, bool) {
	for _, c := range forest {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Walk visits every document depth-first in source order: a collection's
// direct documents, then each division's direct documents followed by its
// subdivisions. Returning false from fn stops the walk.
func Walk(forest []*Collection, fn func(*Document) bool) {
	for _, c := range forest {
		if !walkCollection(c, fn) {
			return
		}
	}
}

func walkCollection(c *Collection, fn func(*Document) bool) bool {
	for _, doc := range c.Documents {
		if !fn(doc) {
			return false
		}
	}
	for _, d := range c.Divisions {
		for _, doc := range d.Documents {
			if !fn(doc) {
				return false
			}
		}
		for _, sub := range d.Subdivisions {
			for _, doc := range sub.Documents {
				if !fn(doc) {
					return false
				}
			}
		}
	}
	return true
}

// WalkCollection is Walk restricted to one collection.
func WalkCollection(c *Collection, fn func(*Document) bool) {
	walkCollection(c, fn)
}

func normalizeNumber(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
