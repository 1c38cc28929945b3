package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kondannyobhikkhu/tipitaka/internal/editor"
	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
)

const testMetadata = `[
  {
    "collection": "DN",
    "documents": [
      {"number": "dn1", "english_title": "The Prime Net", "pali_title": "Brahmajāla", "path": "dn1_sc_pali"},
      {"number": "dn2", "english_title": "The Fruits of the Ascetic Life", "pali_title": "Sāmaññaphala", "path": "dn2_sc_pali"}
    ]
  },
  {
    "collection": "AN",
    "divisions": [
      {
        "english_name": "The Book of Ones",
        "pali_name": "Ekakanipāta",
        "documents": [
          {"number": "an1.1", "english_title": "Sights", "pali_title": "Rūpādi", "path": "an1.1_sc_pali"}
        ]
      }
    ]
  }
]`

type fixture struct {
	dir   string
	store *metadata.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	write := func(name string, lines int) {
		var b strings.Builder
		for i := 1; i <= lines; i++ {
			fmt.Fprintf(&b, "%s %d\n", name, i)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("dn1_sc_pali", 10)
	write("dn1_sc_engl", 30)
	write("dn2_sc_pali", 5)
	write("an1.1_sc_pali", 3)
	meta := filepath.Join(dir, "metadata.json")
	if err := os.WriteFile(meta, []byte(testMetadata), 0o644); err != nil {
		t.Fatal(err)
	}
	return fixture{dir: dir, store: metadata.NewStore(meta, "")}
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	app := NewApp(opts)
	app.Init()
	updated, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(*App)
}

func send(app *App, msg tea.Msg) (*App, tea.Cmd) {
	updated, cmd := app.Update(msg)
	return updated.(*App), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseDescendAndOpen(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store})

	if app.mode != modeBrowse || app.palette.Len() != 3 {
		t.Fatalf("expected root listing with search and two collections, got %d", app.palette.Len())
	}

	app, _ = send(app, paletteChosenMsg{Index: 1}) // DN
	if got := app.crumbs.Crumbs(); !reflect.DeepEqual(got, []string{"Collections", "DN"}) {
		t.Fatalf("unexpected breadcrumb %v", got)
	}

	app, _ = send(app, paletteChosenMsg{Index: 2}) // dn1
	if app.mode != modeRead {
		t.Fatalf("expected read mode, got %v", app.mode)
	}
	if want := filepath.Join(fx.dir, "dn1_sc_pali"); app.reader.CurrentPath() != want {
		t.Fatalf("expected %s open, got %s", want, app.reader.CurrentPath())
	}
	if app.session.Depth() != 1 {
		t.Fatalf("opening a document must not change history, depth %d", app.session.Depth())
	}
}

func TestCancelLeavesNavigationUntouched(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store})
	app, _ = send(app, paletteChosenMsg{Index: 2}) // AN
	before := app.session.Listing()
	depth := app.session.Depth()

	app, cmd := send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected cancel command")
	}
	app, _ = send(app, cmd())
	if app.mode != modeBrowse {
		t.Fatalf("expected to stay in browse with nothing open")
	}

	app, _ = send(app, keyRunes("/"))
	if app.mode != modePrompt {
		t.Fatalf("expected search prompt")
	}
	app, _ = send(app, keyRunes("sights"))
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.mode != modeBrowse {
		t.Fatalf("expected prompt cancel to return to browse")
	}
	if app.session.Depth() != depth || !reflect.DeepEqual(app.session.Listing(), before) {
		t.Fatalf("cancel changed navigation state")
	}
}

func TestSearchPromptToResults(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store})

	app, _ = send(app, paletteChosenMsg{Index: 0}) // Search…
	if app.mode != modePrompt {
		t.Fatalf("expected prompt from search entry")
	}
	app, _ = send(app, keyRunes("brahma"))
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.mode != modeResults || app.palette.Len() != 1 {
		t.Fatalf("expected one result, got mode %v with %d", app.mode, app.palette.Len())
	}
	if !strings.Contains(app.View(), "dn1: The Prime Net / Brahmajāla (DN)") {
		t.Fatalf("expected result label in view")
	}

	app, cmd := send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected choose command")
	}
	app, _ = send(app, cmd())
	if app.mode != modeRead || filepath.Base(app.reader.CurrentPath()) != "dn1_sc_pali" {
		t.Fatalf("expected dn1 open, got %q", app.reader.CurrentPath())
	}
	if app.session.Depth() != 0 {
		t.Fatalf("search must not touch history")
	}
}

func TestCancelSearchFromReaderReturnsToDocument(t *testing.T) {
	fx := newFixture(t)
	doc := filepath.Join(fx.dir, "dn1_sc_pali")
	app := newTestApp(t, Options{Store: fx.store, Open: doc})

	app, _ = send(app, keyRunes("/"))
	if app.mode != modePrompt {
		t.Fatalf("expected search prompt from the reader")
	}
	app, _ = send(app, keyRunes("sights"))
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.mode != modeResults || app.palette.Len() != 1 {
		t.Fatalf("expected one result, got mode %v with %d", app.mode, app.palette.Len())
	}

	app, cmd := send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected cancel command")
	}
	app, _ = send(app, cmd())
	if app.mode != modeRead {
		t.Fatalf("expected cancel to return to the reader, got %v", app.mode)
	}
	if app.reader.CurrentPath() != doc {
		t.Fatalf("expected %s still open, got %s", doc, app.reader.CurrentPath())
	}
}

func TestBlankSearchReturnsWithoutResults(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store})
	app, _ = send(app, keyRunes("/"))
	app, _ = send(app, keyRunes("   "))
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.mode != modeBrowse {
		t.Fatalf("expected blank query to return to browse, got %v", app.mode)
	}
}

func TestNoMatchesIsInformational(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store})
	app, _ = send(app, keyRunes("/"))
	app, _ = send(app, keyRunes("zzzz"))
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.mode != modeResults || app.palette.Len() != 0 {
		t.Fatalf("expected empty results")
	}
	if n := app.reader.Notice(); n.Severity != editor.Info || !strings.Contains(n.Text, "zzzz") {
		t.Fatalf("unexpected notice %+v", n)
	}

	app, cmd := send(app, tea.KeyMsg{Type: tea.KeyEsc})
	app, _ = send(app, cmd())
	if app.mode != modeBrowse {
		t.Fatalf("expected results cancel to return to browse")
	}
}

func TestPairChooserOpensPair(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store, Open: filepath.Join(fx.dir, "dn1_sc_pali")})
	if app.mode != modeRead {
		t.Fatalf("expected reader for Open")
	}
	_ = app.reader.ActivePane().SetCursorLine(8)

	app, _ = send(app, keyRunes("P"))
	if app.mode != modePairs {
		t.Fatalf("expected pair chooser")
	}
	app, cmd := send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected pair command")
	}
	msg := cmd()
	if chosen, ok := msg.(pairChosenMsg); !ok || chosen.Left != "e1" || chosen.Right != "p1" {
		t.Fatalf("expected default pair e1,p1, got %#v", msg)
	}
	app, _ = send(app, msg)
	if app.pair == nil || app.pair.Single() {
		t.Fatalf("expected two-pane pair")
	}
	if len(app.reader.Panes()) != 2 {
		t.Fatalf("expected two panes, got %d", len(app.reader.Panes()))
	}
	for _, p := range app.reader.Panes() {
		if p.CursorLine() != 8 {
			t.Fatalf("expected pane %s at line 8, got %d", p.Path(), p.CursorLine())
		}
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyCtrlO})
	if app.mode != modeBrowse {
		t.Fatalf("expected ctrl+o to show the navigator")
	}
	app, _ = send(app, paletteChosenMsg{Index: 1})
	app, _ = send(app, paletteChosenMsg{Index: 3}) // dn2
	if app.pair != nil || len(app.reader.Panes()) != 1 {
		t.Fatalf("opening a document should close the pair")
	}
}

func TestOpenPairOption(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{
		Store:     fx.store,
		Open:      filepath.Join(fx.dir, "dn1_sc_pali"),
		OpenPair:  true,
		PairLeft:  "p1",
		PairRight: "e1",
	})
	if app.pair == nil || app.pair.LeftCode != "p1" || app.pair.RightCode != "e1" {
		t.Fatalf("expected p1,e1 pair, got %+v", app.pair)
	}
	if !strings.Contains(app.View(), "dn1") {
		t.Fatalf("expected document name in header")
	}
	app.Close()
}

func TestPairWithoutSiblingsReportsError(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store, Open: filepath.Join(fx.dir, "an1.1_sc_pali")})
	app, _ = send(app, pairChosenMsg{Left: "e1", Right: "e2"})
	if app.pair != nil || len(app.reader.Panes()) != 1 {
		t.Fatalf("expected layout unchanged")
	}
	if app.reader.Notice().Severity != editor.Error {
		t.Fatalf("expected error notice, got %+v", app.reader.Notice())
	}
}

func TestMetadataErrorIsReported(t *testing.T) {
	store := metadata.NewStore(filepath.Join(t.TempDir(), "missing.json"), "")
	app := newTestApp(t, Options{Store: store})

	var dsErr *metadata.DataSourceError
	if !errors.As(app.loadErr, &dsErr) {
		t.Fatalf("expected DataSourceError, got %v", app.loadErr)
	}
	if app.reader.Notice().Severity != editor.Error {
		t.Fatalf("expected error notice")
	}
	if !strings.Contains(app.View(), "Error") {
		t.Fatalf("expected error view")
	}
}

func TestMetadataErrorIsReportedOnce(t *testing.T) {
	fx := newFixture(t)
	store := metadata.NewStore(filepath.Join(t.TempDir(), "missing.json"), "")
	app := newTestApp(t, Options{Store: store, Open: filepath.Join(fx.dir, "dn1_sc_pali")})
	if app.mode != modeRead {
		t.Fatalf("expected the reader to stay usable")
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyCtrlO})
	if app.mode != modeBrowse {
		t.Fatalf("expected the navigator, got %v", app.mode)
	}
	if n := app.reader.Notice(); n.Text != "" {
		t.Fatalf("expected no repeated notice, got %+v", n)
	}
	if !strings.Contains(app.View(), "missing.json") {
		t.Fatalf("expected the stored error in the view")
	}

	app, cmd := send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		app, _ = send(app, cmd())
	}
	if app.mode != modeRead {
		t.Fatalf("expected esc to return to the reader, got %v", app.mode)
	}
}

func TestAppHelpOverlayToggles(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store})

	app, _ = send(app, keyRunes("?"))
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Fatalf("expected help overlay")
	}
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.help.Visible {
		t.Fatalf("expected esc to close help")
	}
}

func TestAppCtrlCQuits(t *testing.T) {
	fx := newFixture(t)
	app := newTestApp(t, Options{Store: fx.store})
	app, _ = send(app, keyRunes("/"))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
