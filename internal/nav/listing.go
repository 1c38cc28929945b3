package nav

import (
	"fmt"

	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
	"github.com/kondannyobhikkhu/tipitaka/internal/search"
)

// EntryKind distinguishes synthetic entries from real children.
type EntryKind int

const (
	EntryBack EntryKind = iota
	EntrySearch
	EntryCollection
	EntryDivision
	EntrySubdivision
	EntryDocument
)

const (
	backLabel   = "‹ Back"
	searchLabel = "Search…"
)

// Entry is one selectable line of a listing.
type Entry struct {
	Kind  EntryKind
	Label string

	node metadata.Node
	doc  *metadata.Document
}

// Synthetic reports whether the entry is a back or search affordance.
func (e Entry) Synthetic() bool {
	return e.Kind == EntryBack || e.Kind == EntrySearch
}

// Document returns the document behind a document entry.
func (e Entry) Document() *metadata.Document { return e.doc }

// Listing is what the picker shows for the current frame.
type Listing struct {
	Level   Level
	Title   string
	Scope   search.Scope
	Entries []Entry
	// Diagnostic is an advisory message for malformed data, such as a
	// document listing with no valid documents. It never blocks navigation.
	Diagnostic string
}

// Results is the flat result list of an in-context search.
type Results struct {
	Query   string
	Scope   search.Scope
	Entries []Entry
}

// EffectKind tells the host what a selection requires of it.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectDescend
	EffectBack
	EffectPromptSearch
	EffectOpen
)

// Effect is the outcome of Select.
type Effect struct {
	Kind     EffectKind
	Scope    search.Scope
	Document *metadata.Document
}

// Listing builds the entries for the current frame: back (except at the
// root), search, then the real children in source order.
func (s *Session) Listing() Listing {
	f := s.current
	l := Listing{Level: f.Level, Title: "Collections", Scope: search.All}
	if f.Node != nil {
		l.Title = f.Node.Label()
		if owner := f.Node.Owner(); owner != nil {
			l.Scope = search.Scope(owner.ID)
		}
		l.Entries = append(l.Entries, Entry{Kind: EntryBack, Label: backLabel})
	}
	searchText := searchLabel
	if l.Scope != search.All {
		searchText = fmt.Sprintf("Search %s…", l.Scope)
	}
	l.Entries = append(l.Entries, Entry{Kind: EntrySearch, Label: searchText})

	children := childEntries(s.forest, f)
	l.Entries = append(l.Entries, children...)
	if len(children) == 0 {
		l.Diagnostic = emptyDiagnostic(f, l.Title)
	}
	return l
}

func childEntries(forest []*metadata.Collection, f Frame) []Entry {
	var out []Entry
	switch f.Level {
	case AtCollection:
		for _, c := range forest {
			out = append(out, Entry{Kind: EntryCollection, Label: c.Label(), node: c})
		}
	case AtDivision:
		if c, ok := f.Node.(*metadata.Collection); ok {
			for _, d := range c.Divisions {
				out = append(out, Entry{Kind: EntryDivision, Label: d.Label(), node: d})
			}
		}
	case AtSubdivision:
		if d, ok := f.Node.(*metadata.Division); ok {
			for _, sub := range d.Subdivisions {
				out = append(out, Entry{Kind: EntrySubdivision, Label: sub.Label(), node: sub})
			}
		}
	case AtDocument:
		for _, doc := range metadata.ValidDocuments(documentsOf(f.Node)) {
			out = append(out, documentEntry(doc))
		}
	}
	return out
}

func documentsOf(node metadata.Node) []*metadata.Document {
	switch n := node.(type) {
	case *metadata.Collection:
		return n.Documents
	case *metadata.Division:
		return n.Documents
	case *metadata.Subdivision:
		return n.Documents
	}
	return nil
}

func documentEntry(doc *metadata.Document) Entry {
	return Entry{Kind: EntryDocument, Label: search.Label(doc), doc: doc}
}

func emptyDiagnostic(f Frame, title string) string {
	switch f.Level {
	case AtCollection:
		return "index has no collections"
	case AtDocument:
		if n := len(documentsOf(f.Node)); n > 0 {
			return fmt.Sprintf("%s: none of %d documents has a usable path", title, n)
		}
		return fmt.Sprintf("%s: no documents", title)
	default:
		return fmt.Sprintf("%s: no %ss", title, f.Level.String())
	}
}
