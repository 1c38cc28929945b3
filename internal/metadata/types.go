// Package metadata loads the sutta index and exposes it as a read-only tree
// of collections, divisions, subdivisions and documents.
package metadata

import "fmt"

// Unknown is shown wherever a name or title is missing from the index.
const Unknown = "Unknown"

// errorTitle marks documents the index generator failed to resolve.
const errorTitle = "error"

// CollectionID is the short code of a top-level collection.
type CollectionID string

const (
	DN CollectionID = "DN" // Dīgha Nikāya
	MN CollectionID = "MN" // Majjhima Nikāya
	SN CollectionID = "SN" // Saṃyutta Nikāya
	AN CollectionID = "AN" // Aṅguttara Nikāya
)

// KnownCollections lists the collection codes in canonical order.
var KnownCollections = []CollectionID{DN, MN, SN, AN}

// IsKnown reports whether id is one of the four collection codes.
func (id CollectionID) IsKnown() bool {
	for _, k := range KnownCollections {
		if k == id {
			return true
		}
	}
	return false
}

// Node is anything that can serve as a navigation context: a collection,
// a division or a subdivision.
type Node interface {
	// Label is the display text used in listings.
	Label() string
	// Owner is the collection the node belongs to.
	Owner() *Collection
}

type Collection struct {
	ID        CollectionID
	Divisions []*Division
	Documents []*Document
}

func (c *Collection) Label() string      { return string(c.ID) }
func (c *Collection) Owner() *Collection { return c }

type Division struct {
	EnglishName  string
	PaliName     string
	Subdivisions []*Subdivision
	Documents    []*Document
	Collection   *Collection
}

func (d *Division) Label() string      { return dualLabel(d.EnglishName, d.PaliName) }
func (d *Division) Owner() *Collection { return d.Collection }

type Subdivision struct {
	EnglishName string
	PaliName    string
	Documents   []*Document
	Division    *Division
}

func (s *Subdivision) Label() string { return dualLabel(s.EnglishName, s.PaliName) }

func (s *Subdivision) Owner() *Collection {
	if s.Division == nil {
		return nil
	}
	return s.Division.Collection
}

// Document is a single sutta file.
type Document struct {
	Number       string
	EnglishTitle string
	PaliTitle    string
	Path         string

	Collection *Collection
	Parent     Node
}

// Valid reports whether the document can be listed and opened.
func (d *Document) Valid() bool {
	return d != nil && d.EnglishTitle != errorTitle && d.Path != ""
}

// Label renders "{number}: {english} / {pali} ({collection})".
func (d *Document) Label() string {
	code := Unknown
	if d.Collection != nil {
		code = string(d.Collection.ID)
	}
	return fmt.Sprintf("%s: %s / %s (%s)",
		orUnknown(d.Number), orUnknown(d.EnglishTitle), orUnknown(d.PaliTitle), code)
}

// ValidDocuments filters docs down to the ones that can be opened,
// preserving order.
func ValidDocuments(docs []*Document) []*Document {
	out := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Valid() {
			out = append(out, doc)
		}
	}
	return out
}

func dualLabel(english, pali string) string {
	return orUnknown(english) + " / " + orUnknown(pali)
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
