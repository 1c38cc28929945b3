// Package nav implements the picker chain used to drill from a collection
// down to a single sutta. Each Session keeps its own history so that "back"
// re-enters the exact parent listing.
package nav

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
	"github.com/kondannyobhikkhu/tipitaka/internal/search"
)

// Level is the depth of the picker chain.
type Level int

const (
	AtCollection Level = iota
	AtDivision
	AtSubdivision
	AtDocument
)

func (l Level) String() string {
	switch l {
	case AtCollection:
		return "collection"
	case AtDivision:
		return "division"
	case AtSubdivision:
		return "subdivision"
	case AtDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Frame is one (level, context) pair. Node is nil at AtCollection.
type Frame struct {
	Level Level
	Node  metadata.Node
}

// Session is one browsing session over a loaded forest.
type Session struct {
	id      string
	forest  []*metadata.Collection
	index   *search.Index
	current Frame
	history []Frame
	log     *slog.Logger
}

// NewSession starts at the collection picker. index may be nil, in which
// case one is built over forest.
func NewSession(forest []*metadata.Collection, index *search.Index) *Session {
	if index == nil {
		index = search.NewIndex(forest)
	}
	id := uuid.NewString()
	return &Session{
		id:      id,
		forest:  forest,
		index:   index,
		current: Frame{Level: AtCollection},
		log:     slog.Default().With("session", id),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Current returns the frame being shown.
func (s *Session) Current() Frame { return s.current }

// Depth is the number of frames that "back" can return to.
func (s *Session) Depth() int { return len(s.history) }

// Select activates entry i of the current listing. Descending pushes the
// current frame; back pops it. Search and document entries leave the
// session untouched and hand the work to the caller via the Effect.
func (s *Session) Select(i int) (Effect, error) {
	listing := s.Listing()
	if i < 0 || i >= len(listing.Entries) {
		return Effect{}, fmt.Errorf("entry %d out of range (%d entries)", i, len(listing.Entries))
	}
	entry := listing.Entries[i]

	switch entry.Kind {
	case EntryBack:
		if !s.Back() {
			return Effect{}, fmt.Errorf("no parent listing at %s level", s.current.Level)
		}
		return Effect{Kind: EffectBack}, nil

	case EntrySearch:
		return Effect{Kind: EffectPromptSearch, Scope: listing.Scope}, nil

	case EntryDocument:
		s.log.Debug("open document", "number", entry.doc.Number, "path", entry.doc.Path)
		return Effect{Kind: EffectOpen, Document: entry.doc}, nil

	default:
		s.history = append(s.history, s.current)
		s.current = enter(entry.node)
		s.log.Debug("descend", "level", s.current.Level.String(), "node", entry.node.Label())
		return Effect{Kind: EffectDescend}, nil
	}
}

// Back re-enters the previous frame without pushing. It reports false when
// already at the root.
func (s *Session) Back() bool {
	if len(s.history) == 0 {
		return false
	}
	last := len(s.history) - 1
	s.current = s.history[last]
	s.history = s.history[:last]
	s.log.Debug("back", "level", s.current.Level.String())
	return true
}

// Search runs the in-context search. It never touches the session history;
// a blank query reports ok == false and nothing is searched.
func (s *Session) Search(scope search.Scope, query string) (Results, bool) {
	docs, ok := s.index.Search(scope, query)
	if !ok {
		return Results{}, false
	}
	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, documentEntry(doc))
	}
	s.log.Debug("search", "scope", string(scope), "query", query, "results", len(entries))
	return Results{Query: query, Scope: scope, Entries: entries}, true
}

// Breadcrumb lists the labels from the root to the current context.
func (s *Session) Breadcrumb() []string {
	crumbs := []string{"Collections"}
	for _, f := range append(append([]Frame(nil), s.history...), s.current) {
		if f.Node != nil {
			crumbs = append(crumbs, f.Node.Label())
		}
	}
	return crumbs
}

// enter picks the frame shown for a child node, collapsing empty
// intermediate levels so the user never sees an empty picker.
func enter(node metadata.Node) Frame {
	switch n := node.(type) {
	case *metadata.Collection:
		if len(n.Divisions) == 0 && len(n.Documents) > 0 {
			return Frame{Level: AtDocument, Node: n}
		}
		return Frame{Level: AtDivision, Node: n}
	case *metadata.Division:
		if len(n.Subdivisions) == 0 && len(n.Documents) > 0 {
			return Frame{Level: AtDocument, Node: n}
		}
		return Frame{Level: AtSubdivision, Node: n}
	default:
		return Frame{Level: AtDocument, Node: node}
	}
}
