package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kondannyobhikkhu/tipitaka/internal/editor"
	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
	"github.com/kondannyobhikkhu/tipitaka/internal/nav"
	"github.com/kondannyobhikkhu/tipitaka/internal/pane"
	"github.com/kondannyobhikkhu/tipitaka/internal/reader"
	"github.com/kondannyobhikkhu/tipitaka/internal/search"
	pkgtui "github.com/kondannyobhikkhu/tipitaka/pkg/tui"
)

type mode int

const (
	modeBrowse mode = iota
	modePrompt
	modeResults
	modePairs
	modeRead
)

// Options configure the application.
type Options struct {
	Store    *metadata.Store
	Editions pane.Editions
	// PairLeft and PairRight are the edition codes opened by default.
	PairLeft  string
	PairRight string
	Reader    reader.Options

	// Open is shown first when set; with OpenPair the default pair of it
	// is opened instead.
	Open     string
	OpenPair bool
}

type appKeys struct {
	Navigator key.Binding
	Pairs     key.Binding
}

func newAppKeys() appKeys {
	return appKeys{
		Navigator: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "navigator"),
		),
		Pairs: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "open edition pair"),
		),
	}
}

// App is the navigator and reader
type App struct {
	session *nav.Session
	loadErr error
	reader  *reader.Model
	opener  *pane.Opener
	pair    *pane.Pair

	palette *Palette
	prompt  textinput.Model
	pairs   *PairChooser
	crumbs  *Breadcrumb

	mode        mode
	promptFrom  mode
	resultsFrom mode
	searchScope search.Scope
	results     nav.Results

	pairLeft  string
	pairRight string

	width   int
	height  int
	keys    pkgtui.CommonKeys
	appKeys appKeys
	help    pkgtui.HelpOverlay
	log     *slog.Logger
}

// NewApp loads the metadata and builds the application. A metadata
// failure is reported once and leaves only the reader usable.
func NewApp(opts Options) *App {
	editions := opts.Editions
	if len(editions) == 0 {
		editions = pane.DefaultEditions()
	}
	left, right := opts.PairLeft, opts.PairRight
	if left == "" || right == "" {
		left, right = "e1", "p1"
	}

	prompt := textinput.New()
	prompt.CharLimit = 128
	prompt.Placeholder = "number, title or collection"

	a := &App{
		reader:    reader.New(opts.Reader),
		opener:    pane.NewOpener(editions),
		palette:   NewPalette(),
		prompt:    prompt,
		pairs:     NewPairChooser(editions, left, right),
		crumbs:    NewBreadcrumb(),
		pairLeft:  left,
		pairRight: right,
		keys:      pkgtui.NewCommonKeys(),
		appKeys:   newAppKeys(),
		help:      pkgtui.NewHelpOverlay(),
		log:       slog.Default(),
	}

	var forest []*metadata.Collection
	if opts.Store != nil {
		var err error
		forest, err = opts.Store.Load()
		if err != nil {
			a.loadErr = err
			a.reader.Notify(editor.Error, err.Error())
		}
	}
	a.session = nav.NewSession(forest, nil)
	a.log = a.log.With("session", a.session.ID())
	a.refreshListing()

	if opts.Open != "" {
		if opts.OpenPair {
			if err := a.reader.Open(opts.Open); err != nil {
				a.reader.Notify(editor.Error, err.Error())
			} else {
				a.openPair(left, right)
			}
		} else {
			a.openDocument(opts.Open)
		}
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.palette.Focus(), a.reader.WatchCmd())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case paletteChosenMsg:
		return a, a.choose(msg.Index)

	case paletteCanceledMsg:
		a.cancel()
		return a, nil

	case pairChosenMsg:
		return a, a.openPair(msg.Left, msg.Right)

	case pairCanceledMsg:
		a.mode = modeRead
		return a, nil

	case pkgtui.ToggleHelpMsg:
		a.help.Toggle()
		return a, nil
	}

	var cmd tea.Cmd
	a.reader, cmd = a.reader.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Quit) {
		return tea.Quit
	}
	if a.help.Visible {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Back) {
			a.help.Toggle()
		}
		return nil
	}
	a.reader.ClearNotice()

	switch a.mode {
	case modePrompt:
		return a.updatePrompt(msg)

	case modePairs:
		var cmd tea.Cmd
		a.pairs, cmd = a.pairs.Update(msg)
		return cmd

	case modeBrowse, modeResults:
		if key.Matches(msg, a.keys.Help) {
			a.help.Toggle()
			return nil
		}
		if key.Matches(msg, a.keys.Search) && a.palette.Filter() == "" {
			scope := a.session.Listing().Scope
			if a.mode == modeResults {
				scope = a.results.Scope
			}
			return a.startPrompt(scope)
		}
		var cmd tea.Cmd
		a.palette, cmd = a.palette.Update(msg)
		return cmd
	}

	if cmd := pkgtui.HandleCommon(msg, a.keys); cmd != nil {
		return cmd
	}
	switch {
	case key.Matches(msg, a.appKeys.Navigator):
		return a.showBrowse()
	case key.Matches(msg, a.appKeys.Pairs):
		a.mode = modePairs
		return nil
	case key.Matches(msg, a.keys.Search):
		return a.startPrompt(a.session.Listing().Scope)
	}
	var cmd tea.Cmd
	a.reader, cmd = a.reader.Update(msg)
	return cmd
}

// choose acts on a palette selection in the current mode.
func (a *App) choose(index int) tea.Cmd {
	switch a.mode {
	case modeBrowse:
		eff, err := a.session.Select(index)
		if err != nil {
			a.reader.Notify(editor.Error, err.Error())
			return nil
		}
		switch eff.Kind {
		case nav.EffectDescend, nav.EffectBack:
			a.refreshListing()
		case nav.EffectPromptSearch:
			return a.startPrompt(eff.Scope)
		case nav.EffectOpen:
			return a.openDocument(eff.Document.Path)
		}

	case modeResults:
		if index >= 0 && index < len(a.results.Entries) {
			return a.openDocument(a.results.Entries[index].Document().Path)
		}
	}
	return nil
}

// cancel dismisses the palette. Navigation state is left as it was.
func (a *App) cancel() {
	switch a.mode {
	case modeBrowse:
		if !a.reader.Empty() {
			a.mode = modeRead
		}
	case modeResults:
		if a.resultsFrom == modeRead && !a.reader.Empty() {
			a.mode = modeRead
			return
		}
		a.refreshListing()
		a.mode = modeBrowse
	}
}

func (a *App) showBrowse() tea.Cmd {
	if a.loadErr != nil {
		a.mode = modeBrowse
		return nil
	}
	a.refreshListing()
	a.mode = modeBrowse
	return a.palette.Focus()
}

func (a *App) refreshListing() {
	l := a.session.Listing()
	items := make([]PaletteItem, len(l.Entries))
	for i, e := range l.Entries {
		items[i] = PaletteItem{Label: e.Label, Synthetic: e.Synthetic()}
	}
	a.palette.SetItems(l.Title, items, l.Diagnostic)
	a.crumbs.Set(a.session.Breadcrumb())
}

func (a *App) startPrompt(scope search.Scope) tea.Cmd {
	a.promptFrom = a.mode
	a.searchScope = scope
	a.prompt.Reset()
	a.prompt.Prompt = "Search " + scopeName(scope) + ": "
	a.mode = modePrompt
	return a.prompt.Focus()
}

func (a *App) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.prompt.Blur()
		a.mode = a.promptFrom
		return nil

	case "enter":
		a.prompt.Blur()
		results, ok := a.session.Search(a.searchScope, a.prompt.Value())
		if !ok {
			a.mode = a.promptFrom
			return nil
		}
		a.results = results
		if a.promptFrom != modeResults {
			a.resultsFrom = a.promptFrom
		}
		items := make([]PaletteItem, len(results.Entries))
		for i, e := range results.Entries {
			items[i] = PaletteItem{Label: e.Label}
		}
		title := fmt.Sprintf("%d results for %q in %s", len(items), results.Query, scopeName(results.Scope))
		a.palette.SetItems(title, items, "")
		if len(items) == 0 {
			a.reader.Notify(editor.Info, fmt.Sprintf("no documents match %q", results.Query))
		}
		a.mode = modeResults
		return a.palette.Focus()
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return cmd
}

func scopeName(scope search.Scope) string {
	if scope == search.All {
		return "all collections"
	}
	return string(scope)
}

// openDocument shows path alone in the reader.
func (a *App) openDocument(path string) tea.Cmd {
	a.closePair()
	if len(a.reader.Panes()) > 1 {
		a.reader.Only()
	}
	if err := a.reader.Open(path); err != nil {
		a.reader.Notify(editor.Error, err.Error())
		return nil
	}
	a.mode = modeRead
	a.log.Info("document opened", "path", path)
	return a.reader.WatchCmd()
}

// openPair opens the left and right editions of the current document.
// Failures have already been reported through the reader.
func (a *App) openPair(left, right string) tea.Cmd {
	a.closePair()
	a.mode = modeRead
	p, err := a.opener.OpenPair(a.reader, left, right)
	if err != nil {
		a.log.Debug("pair not opened", "left", left, "right", right, "error", err)
		return nil
	}
	a.pair = p
	return a.reader.WatchCmd()
}

func (a *App) closePair() {
	if a.pair != nil {
		a.pair.Close()
		a.pair = nil
	}
}

// Close releases the pair subscription and the file watch.
func (a *App) Close() {
	a.closePair()
	a.reader.StopWatch()
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	body := max(1, height-2)
	a.palette.SetSize(width, body)
	a.pairs.SetSize(width, body)
	a.reader.SetSize(width, body)
	a.crumbs.SetWidth(max(0, width-12))
	a.prompt.Width = max(10, width-30)
}

// View implements tea.Model
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var body string
	switch {
	case a.help.Visible:
		body = a.help.Render(a.keys, a.helpSection(), a.helpExtras(), a.width)
	case a.mode == modeBrowse && a.loadErr != nil:
		body = ErrorView(a.loadErr)
	case a.mode == modeBrowse, a.mode == modeResults:
		body = a.palette.View()
	case a.mode == modePrompt:
		body = pkgtui.TitleStyle.Render("Search") + "\n\n" + pkgtui.PanelStyle.Render(a.prompt.View()) + "\n\n" +
			pkgtui.LabelStyle.Render("enter search  esc cancel")
	case a.mode == modePairs:
		body = a.pairs.View()
	default:
		body = a.reader.View()
	}

	return a.renderHeader() + "\n" +
		pkgtui.EnsureSize(body, a.width, max(1, a.height-2)) + "\n" +
		a.renderFooter()
}

func (a *App) renderHeader() string {
	header := pkgtui.HeaderStyle.Render("tipitaka") + " "
	if a.mode == modeRead || a.mode == modePairs {
		switch {
		case a.pair != nil && !a.pair.Single():
			header += pkgtui.EditionBadge(a.pair.LeftCode) + " " + pkgtui.EditionBadge(a.pair.RightCode) + " " +
				pkgtui.SubtitleStyle.Render(filepath.Base(a.pair.Identity.Base))
		case !a.reader.Empty():
			header += pkgtui.SubtitleStyle.Render(filepath.Base(a.reader.CurrentPath()))
		}
	} else {
		header += a.crumbs.View()
	}
	return pkgtui.PadToWidth(header, a.width)
}

func (a *App) renderFooter() string {
	if n := a.reader.Notice(); n.Text != "" {
		style := pkgtui.NoticeInfo
		switch n.Severity {
		case editor.Warn:
			style = pkgtui.NoticeWarn
		case editor.Error:
			style = pkgtui.NoticeError
		}
		return pkgtui.PadToWidth(style.Render(n.Text), a.width)
	}

	var help string
	switch a.mode {
	case modeBrowse, modeResults:
		help = "enter select  / search  esc cancel  ? help  ctrl+c quit"
	case modePrompt:
		help = "enter search  esc cancel"
	case modePairs:
		help = "enter open  / filter  esc cancel"
	default:
		help = "j/k move  tab switch pane  P pair  ctrl+o navigator  y copy  ? help  ctrl+c quit"
	}
	return pkgtui.FooterStyle.Width(a.width).Render(help)
}

func (a *App) helpSection() string {
	if a.mode == modeRead {
		return "Reader"
	}
	return "Navigator"
}

func (a *App) helpExtras() []pkgtui.HelpBinding {
	if a.mode != modeRead {
		return []pkgtui.HelpBinding{
			{Key: "type", Description: "filter the listing"},
		}
	}
	extras := []pkgtui.HelpBinding{
		pkgtui.HelpBindingFromKey(a.appKeys.Navigator),
		pkgtui.HelpBindingFromKey(a.appKeys.Pairs),
	}
	return append(extras, a.reader.FullHelp()...)
}

// Run starts the TUI application
func Run(opts Options) error {
	app := NewApp(opts)
	defer app.Close()
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ErrorView shows an error state
func ErrorView(err error) string {
	return fmt.Sprintf("%s\n\n%s",
		pkgtui.NoticeError.Render("Error"),
		pkgtui.LabelStyle.Render(err.Error()),
	)
}
