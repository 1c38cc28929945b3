package pane

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kondannyobhikkhu/tipitaka/internal/editor"
)

type fakePane struct {
	id     int
	path   string
	lines  int
	cursor int
	closed bool
	broken bool
}

func (p *fakePane) ID() int         { return p.id }
func (p *fakePane) Path() string    { return p.path }
func (p *fakePane) CursorLine() int { return p.cursor }
func (p *fakePane) LineCount() int  { return p.lines }
func (p *fakePane) SetCursorLine(line int) error {
	if p.closed {
		return errors.New("pane closed")
	}
	if p.broken {
		return errors.New("buffer unavailable")
	}
	if line < 1 || line > p.lines {
		return fmt.Errorf("line %d out of range", line)
	}
	p.cursor = line
	return nil
}

type notice struct {
	sev editor.Severity
	msg string
}

type fakeWorkspace struct {
	editor.Hub
	files   map[string]int // path -> line count
	broken  map[string]bool
	panes   []*fakePane
	active  int
	nextID  int
	notices []notice
}

func newFakeWorkspace(files map[string]int, current string, cursor int) *fakeWorkspace {
	ws := &fakeWorkspace{files: files}
	p := ws.newPane(current)
	p.cursor = cursor
	ws.panes = []*fakePane{p}
	return ws
}

func (w *fakeWorkspace) newPane(path string) *fakePane {
	w.nextID++
	return &fakePane{id: w.nextID, path: path, lines: w.files[path], cursor: 1, broken: w.broken[path]}
}

func (w *fakeWorkspace) Notify(sev editor.Severity, msg string) {
	w.notices = append(w.notices, notice{sev, msg})
}

func (w *fakeWorkspace) CurrentPath() string { return w.panes[w.active].path }

func (w *fakeWorkspace) ActivePane() editor.Pane { return w.panes[w.active] }

func (w *fakeWorkspace) Panes() []editor.Pane {
	out := make([]editor.Pane, len(w.panes))
	for i, p := range w.panes {
		out[i] = p
	}
	return out
}

func (w *fakeWorkspace) Only() {
	for i, p := range w.panes {
		if i != w.active {
			p.closed = true
		}
	}
	w.panes = []*fakePane{w.panes[w.active]}
	w.active = 0
}

func (w *fakeWorkspace) Open(path string) error {
	n, ok := w.files[path]
	if !ok {
		return errors.New("no such file")
	}
	p := w.panes[w.active]
	p.path, p.lines, p.cursor = path, n, 1
	return nil
}

func (w *fakeWorkspace) Split(path string) (editor.Pane, error) {
	if _, ok := w.files[path]; !ok {
		return nil, errors.New("no such file")
	}
	p := w.newPane(path)
	w.panes = append(w.panes, p)
	w.active = len(w.panes) - 1
	return p, nil
}

func (w *fakeWorkspace) move(p *fakePane, line int) {
	p.cursor = line
	w.Emit(editor.Event{Kind: editor.CursorMoved, Pane: p})
}

func (w *fakeWorkspace) exists(path string) bool {
	_, ok := w.files[path]
	return ok
}

func opener(ws *fakeWorkspace) *Opener {
	o := NewOpener(DefaultEditions())
	o.Exists = ws.exists
	return o
}

func TestResolveEditions(t *testing.T) {
	eds := DefaultEditions()
	cases := []struct {
		path, code, base, ext string
	}{
		{"/c/dn/dn1_sc_pali", "p1", "/c/dn/dn1", ""},
		{"/c/dn/dn1_sc_engl.txt", "e1", "/c/dn/dn1", ".txt"},
		{"/c/an/an1.1_cst_pali", "p2", "/c/an/an1.1", ""},
		{"/c/an/an1.1_bb_engl.md", "e2", "/c/an/an1.1", ".md"},
	}
	for _, c := range cases {
		id, err := eds.Resolve(c.path)
		if err != nil {
			t.Fatalf("resolve %s: %v", c.path, err)
		}
		if id.Edition.Code != c.code || id.Base != c.base || id.Ext != c.ext {
			t.Fatalf("resolve %s: got %+v", c.path, id)
		}
	}

	id, _ := eds.Resolve("/c/dn/dn1_sc_pali.txt")
	if got, _ := id.Sibling("e2"); got != "/c/dn/dn1_bb_engl.txt" {
		t.Fatalf("unexpected sibling path %q", got)
	}
	if _, err := id.Sibling("x9"); err == nil {
		t.Fatalf("expected unknown edition error")
	}
	if _, err := eds.Resolve("/c/notes.txt"); !errors.Is(err, ErrUnrecognizedEdition) {
		t.Fatalf("expected ErrUnrecognizedEdition, got %v", err)
	}
}

func TestNewEditionsRejectsDuplicates(t *testing.T) {
	if _, err := NewEditions(map[string]string{"p1": "_pali", "p2": "_pali"}); err == nil {
		t.Fatalf("expected duplicate suffix error")
	}
	eds, err := NewEditions(map[string]string{"p1": "_pali", "e1": "_engl"})
	if err != nil {
		t.Fatal(err)
	}
	if got := eds.Codes(); len(got) != 2 || got[0] != "e1" || got[1] != "p1" {
		t.Fatalf("expected sorted codes, got %v", got)
	}
}

func TestParsePair(t *testing.T) {
	l, r, err := ParsePair(" e1, p1 ")
	if err != nil || l != "e1" || r != "p1" {
		t.Fatalf("unexpected parse %q %q %v", l, r, err)
	}
	for _, bad := range []string{"e1", "e1,", "e1,p1,p2"} {
		if _, _, err := ParsePair(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestOpenPairClampsToSiblingLength(t *testing.T) {
	files := map[string]int{"/c/dn1_sc_pali": 120, "/c/dn1_sc_engl": 400}
	ws := newFakeWorkspace(files, "/c/dn1_sc_pali", 90)

	pair, err := opener(ws).OpenPair(ws, "e1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pair.Close()
	if len(ws.panes) != 2 {
		t.Fatalf("expected two panes, got %d", len(ws.panes))
	}
	if pair.Left.Path() != "/c/dn1_sc_engl" || pair.Right.Path() != "/c/dn1_sc_pali" {
		t.Fatalf("unexpected layout %s | %s", pair.Left.Path(), pair.Right.Path())
	}
	if pair.Left.CursorLine() != 90 || pair.Right.CursorLine() != 90 {
		t.Fatalf("expected both panes at min(90, len), got %d and %d",
			pair.Left.CursorLine(), pair.Right.CursorLine())
	}

	ws2 := newFakeWorkspace(map[string]int{"/c/dn1_sc_pali": 400, "/c/dn1_sc_engl": 50}, "/c/dn1_sc_pali", 300)
	pair2, err := opener(ws2).OpenPair(ws2, "p1", "e1")
	if err != nil {
		t.Fatal(err)
	}
	defer pair2.Close()
	if pair2.Right.CursorLine() != 50 {
		t.Fatalf("expected shorter sibling clamped to 50, got %d", pair2.Right.CursorLine())
	}
}

func TestOpenPairWithoutSiblingsLeavesLayout(t *testing.T) {
	ws := newFakeWorkspace(map[string]int{"/c/dn1_sc_engl": 10}, "/c/dn1_sc_engl", 4)
	before := *ws.panes[0]

	pair, err := opener(ws).OpenPair(ws, "p1", "p2")
	if !errors.Is(err, ErrNoSibling) || pair != nil {
		t.Fatalf("expected ErrNoSibling, got %v", err)
	}
	if len(ws.panes) != 1 || *ws.panes[0] != before {
		t.Fatalf("expected layout unchanged")
	}
	if len(ws.notices) != 1 || ws.notices[0].sev != editor.Error {
		t.Fatalf("expected one error notice, got %+v", ws.notices)
	}
	if ws.Len() != 0 {
		t.Fatalf("expected no subscription")
	}
}

func TestOpenPairUnrecognizedEdition(t *testing.T) {
	ws := newFakeWorkspace(map[string]int{"/c/readme.txt": 3}, "/c/readme.txt", 1)
	if _, err := opener(ws).OpenPair(ws, "e1", "p1"); !errors.Is(err, ErrUnrecognizedEdition) {
		t.Fatalf("expected ErrUnrecognizedEdition, got %v", err)
	}
	if len(ws.panes) != 1 || ws.notices[0].sev != editor.Error {
		t.Fatalf("expected unchanged layout and error notice")
	}
}

func TestOpenPairSingleEditionIsInformational(t *testing.T) {
	files := map[string]int{"/c/mn1_sc_engl": 30, "/c/mn1_bb_engl": 80}
	ws := newFakeWorkspace(files, "/c/mn1_bb_engl", 60)

	pair, err := opener(ws).OpenPair(ws, "p1", "e1")
	if err != nil {
		t.Fatalf("expected partial availability to succeed, got %v", err)
	}
	if !pair.Single() || len(ws.panes) != 1 {
		t.Fatalf("expected a single pane")
	}
	if pair.Left.Path() != "/c/mn1_sc_engl" || pair.Left.CursorLine() != 30 {
		t.Fatalf("expected e1 clamped to 30, got %s:%d", pair.Left.Path(), pair.Left.CursorLine())
	}
	if len(ws.notices) != 1 || ws.notices[0].sev != editor.Info {
		t.Fatalf("expected an info notice, got %+v", ws.notices)
	}
}

func TestContinuousMirroringClampsPerPane(t *testing.T) {
	files := map[string]int{"/c/sn1_sc_pali": 20, "/c/sn1_sc_engl": 200}
	ws := newFakeWorkspace(files, "/c/sn1_sc_pali", 1)
	pair, err := opener(ws).OpenPair(ws, "e1", "p1")
	if err != nil {
		t.Fatal(err)
	}
	left := pair.Left.(*fakePane)
	right := pair.Right.(*fakePane)

	ws.move(left, 150)
	if right.cursor != 20 {
		t.Fatalf("expected right clamped to its length 20, got %d", right.cursor)
	}
	if left.cursor != 150 {
		t.Fatalf("expected mirroring not to bounce back, left at %d", left.cursor)
	}

	ws.move(right, 7)
	if left.cursor != 7 {
		t.Fatalf("expected left to follow right to 7, got %d", left.cursor)
	}

	left.cursor = 12
	ws.Emit(editor.Event{Kind: editor.PaneFocused, Pane: left})
	if right.cursor != 12 {
		t.Fatalf("expected focus change to sync, got %d", right.cursor)
	}

	pair.Close()
	ws.move(left, 3)
	if right.cursor != 12 {
		t.Fatalf("expected no sync after Close")
	}
}

func TestMirrorReportsPerPaneFailure(t *testing.T) {
	files := map[string]int{"/c/an1_sc_pali": 50, "/c/an1_sc_engl": 50}
	ws := newFakeWorkspace(files, "/c/an1_sc_pali", 1)
	pair, err := opener(ws).OpenPair(ws, "p1", "e1")
	if err != nil {
		t.Fatal(err)
	}
	defer pair.Close()
	right := pair.Right.(*fakePane)
	right.closed = true

	ws.move(pair.Left.(*fakePane), 9)
	errs := pair.Mirror(pair.Left)
	if len(errs) != 1 {
		t.Fatalf("expected one sync error, got %v", errs)
	}
	var syncErr *PaneSyncError
	if !errors.As(errs[0], &syncErr) || syncErr.PaneID != right.ID() {
		t.Fatalf("expected PaneSyncError for right pane, got %v", errs[0])
	}
	last := ws.notices[len(ws.notices)-1]
	if last.sev != editor.Warn {
		t.Fatalf("expected warning notice, got %+v", last)
	}
}

func TestOpenPairReportsAlignmentFailure(t *testing.T) {
	files := map[string]int{"/c/mn2_sc_pali": 50, "/c/mn2_sc_engl": 50}
	ws := newFakeWorkspace(files, "/c/mn2_sc_pali", 9)
	ws.broken = map[string]bool{"/c/mn2_sc_engl": true}

	pair, err := opener(ws).OpenPair(ws, "p1", "e1")
	if err != nil {
		t.Fatalf("expected the pair to open, got %v", err)
	}
	defer pair.Close()
	if pair.Single() || pair.Left.CursorLine() != 9 {
		t.Fatalf("expected two panes with left at 9")
	}
	if len(ws.notices) != 1 || ws.notices[0].sev != editor.Warn {
		t.Fatalf("expected one warning, got %+v", ws.notices)
	}
	want := (&PaneSyncError{PaneID: pair.Right.ID(), Line: 9, Err: errors.New("buffer unavailable")}).Error()
	if ws.notices[0].msg != want {
		t.Fatalf("expected %q, got %q", want, ws.notices[0].msg)
	}
}

func TestMirrorIgnoresPanesOutsidePair(t *testing.T) {
	files := map[string]int{"/c/dn2_sc_pali": 50, "/c/dn2_sc_engl": 50}
	ws := newFakeWorkspace(files, "/c/dn2_sc_pali", 1)
	pair, err := opener(ws).OpenPair(ws, "p1", "e1")
	if err != nil {
		t.Fatal(err)
	}
	defer pair.Close()
	stranger := &fakePane{id: 99, lines: 100}
	ws.move(stranger, 40)
	if pair.Left.CursorLine() != 1 || pair.Right.CursorLine() != 1 {
		t.Fatalf("expected events from other panes to be ignored")
	}
}
