// Package reader is the terminal workspace that displays documents in one
// or more side-by-side panes.
package reader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kondannyobhikkhu/tipitaka/internal/editor"
	pkgtui "github.com/kondannyobhikkhu/tipitaka/pkg/tui"
)

// Options control how documents are loaded.
type Options struct {
	RenderMarkdown bool
	Watch          bool
}

// Notice is the latest status message.
type Notice struct {
	Severity editor.Severity
	Text     string
}

type keyMap struct {
	pkgtui.CommonKeys
	Yank key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		CommonKeys: pkgtui.NewCommonKeys(),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path:line"),
		),
	}
}

// Model holds the open panes. It implements editor.Workspace; cursor and
// focus changes made with the keyboard are published to subscribers, while
// SetCursorLine calls are not.
type Model struct {
	editor.Hub

	opts   Options
	keys   keyMap
	panes  []*Pane
	active int
	nextID int
	width  int
	height int
	layout *pkgtui.SplitLayout
	notice Notice
	log    *slog.Logger

	// copy writes to the system clipboard.
	copy func(string) error

	watched   []string
	stopWatch chan struct{}
}

var _ editor.Workspace = (*Model)(nil)

// New returns an empty workspace.
func New(opts Options) *Model {
	return &Model{
		opts:   opts,
		keys:   newKeyMap(),
		layout: pkgtui.NewSplitLayout(0.5),
		log:    slog.Default(),
		copy:   clipboard.WriteAll,
	}
}

// Notify records msg as the current notice.
func (m *Model) Notify(sev editor.Severity, msg string) {
	m.notice = Notice{Severity: sev, Text: msg}
	switch sev {
	case editor.Error:
		m.log.Error(msg)
	case editor.Warn:
		m.log.Warn(msg)
	default:
		m.log.Debug(msg)
	}
}

// Notice returns the current notice.
func (m *Model) Notice() Notice { return m.notice }

// ClearNotice drops the current notice.
func (m *Model) ClearNotice() { m.notice = Notice{} }

func (m *Model) CurrentPath() string {
	if p := m.activePane(); p != nil {
		return p.path
	}
	return ""
}

func (m *Model) ActivePane() editor.Pane {
	if p := m.activePane(); p != nil {
		return p
	}
	return nil
}

func (m *Model) activePane() *Pane {
	if m.active < 0 || m.active >= len(m.panes) {
		return nil
	}
	return m.panes[m.active]
}

func (m *Model) Panes() []editor.Pane {
	out := make([]editor.Pane, len(m.panes))
	for i, p := range m.panes {
		out[i] = p
	}
	return out
}

// Empty reports whether no document is open.
func (m *Model) Empty() bool { return len(m.panes) == 0 }

func (m *Model) Only() {
	p := m.activePane()
	if p == nil {
		return
	}
	for _, other := range m.panes {
		if other != p {
			other.closed = true
		}
	}
	m.panes = []*Pane{p}
	m.active = 0
	m.relayout()
}

func (m *Model) Open(path string) error {
	p := m.activePane()
	fresh := p == nil
	if fresh {
		p = m.newPane(path)
	}
	src, lines, err := m.load(path, p.textWidth())
	if err != nil {
		return err
	}
	p.path = path
	p.source = src
	p.cursor = 1
	p.setLines(lines)
	if fresh {
		m.panes = append(m.panes, p)
		m.active = 0
		m.relayout()
	}
	m.log.Debug("opened document", "path", path, "pane", p.id, "lines", p.LineCount())
	return nil
}

func (m *Model) Split(path string) (editor.Pane, error) {
	src, lines, err := m.load(path, m.textWidthHint())
	if err != nil {
		return nil, err
	}
	p := m.newPane(path)
	p.source = src
	p.setLines(lines)

	at := m.active + 1
	if len(m.panes) == 0 {
		at = 0
	}
	m.panes = slices.Insert(m.panes, at, p)
	m.active = at
	m.relayout()
	m.log.Debug("split document", "path", path, "pane", p.id, "panes", len(m.panes))
	return p, nil
}

func (m *Model) newPane(path string) *Pane {
	m.nextID++
	return newPane(m.nextID, path)
}

// load reads path and lays it out for width. A markdown rendering failure
// is reported as a warning and the raw text is shown instead.
func (m *Model) load(path string, width int) (string, []string, error) {
	src, err := readSource(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	lines, err := layoutLines(path, src, m.opts.RenderMarkdown, width)
	if err != nil {
		m.Notify(editor.Warn, err.Error())
	}
	return src, lines, nil
}

func (m *Model) textWidthHint() int {
	if p := m.activePane(); p != nil && p.textWidth() > 0 {
		return p.textWidth()
	}
	return 0
}

// SetSize sets the area available to the panes.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.relayout()
}

func (m *Model) relayout() {
	n := len(m.panes)
	if n == 0 || m.width <= 0 || m.height <= 0 {
		return
	}
	m.layout.SetSize(m.width, m.height)
	var clamped []*Pane
	resize := func(p *Pane, width, height int) {
		if m.resizePane(p, width, height) {
			clamped = append(clamped, p)
		}
	}
	switch {
	case n == 1:
		resize(m.panes[0], m.width, m.height)
	case n == 2:
		resize(m.panes[0], m.layout.LeftWidth(), m.layout.LeftHeight())
		resize(m.panes[1], m.layout.RightWidth(), m.layout.RightHeight())
	default:
		w := (m.width - (n - 1)) / n
		for _, p := range m.panes {
			resize(p, w, m.height)
		}
	}
	m.emitClamped(clamped)
}

// resizePane re-renders markdown when the width changed and reports whether
// the cursor had to be clamped to the new line count.
func (m *Model) resizePane(p *Pane, width, height int) bool {
	if !p.resize(width, height) || !m.opts.RenderMarkdown || !isMarkdown(p.path) {
		return false
	}
	lines, err := layoutLines(p.path, p.source, true, p.textWidth())
	if err != nil {
		m.log.Warn("markdown render failed", "path", p.path, "error", err)
	}
	return p.setLines(lines)
}

// emitClamped publishes CursorMoved for a pane whose cursor moved because
// its content shrank, preferring the active pane.
func (m *Model) emitClamped(clamped []*Pane) {
	if len(clamped) == 0 {
		return
	}
	moved := clamped[0]
	if active := m.activePane(); active != nil && slices.Contains(clamped, active) {
		moved = active
	}
	m.Emit(editor.Event{Kind: editor.CursorMoved, Pane: moved})
}

// Update handles keys for the active pane and file change notifications.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileChangedMsg:
		m.reload(msg.path)
		if msg.stop == nil || msg.stop != m.stopWatch {
			return m, nil
		}
		return m, m.startWatch(m.openPaths())
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	p := m.activePane()
	if p == nil {
		return nil
	}
	page := max(1, p.vp.Height)
	switch {
	case key.Matches(msg, m.keys.NavDown):
		m.moveTo(p.cursor + 1)
	case key.Matches(msg, m.keys.NavUp):
		m.moveTo(p.cursor - 1)
	case key.Matches(msg, m.keys.Next):
		m.moveTo(p.cursor + page)
	case key.Matches(msg, m.keys.Prev):
		m.moveTo(p.cursor - page)
	case key.Matches(msg, m.keys.Top):
		m.moveTo(1)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(p.LineCount())
	case key.Matches(msg, m.keys.TabCycle):
		step := 1
		if msg.String() == "shift+tab" {
			step = len(m.panes) - 1
		}
		m.Focus((m.active + step) % len(m.panes))
	case key.Matches(msg, m.keys.Yank):
		m.yank()
	}
	return nil
}

// moveTo moves the active cursor and publishes CursorMoved if it changed.
func (m *Model) moveTo(line int) {
	p := m.activePane()
	if p != nil && p.jump(line) {
		m.Emit(editor.Event{Kind: editor.CursorMoved, Pane: p})
	}
}

// Focus makes pane i active and publishes PaneFocused.
func (m *Model) Focus(i int) {
	if i < 0 || i >= len(m.panes) || i == m.active {
		return
	}
	m.active = i
	m.Emit(editor.Event{Kind: editor.PaneFocused, Pane: m.panes[i]})
}

func (m *Model) yank() {
	p := m.activePane()
	ref := fmt.Sprintf("%s:%d", p.path, p.cursor)
	if err := m.copy(ref); err != nil {
		m.Notify(editor.Warn, fmt.Sprintf("clipboard: %v", err))
		return
	}
	m.Notify(editor.Info, "copied "+ref)
}

// WatchCmd starts watching the open documents when the set of open paths
// changed since the last call. It returns nil when watching is disabled.
func (m *Model) WatchCmd() tea.Cmd {
	if !m.opts.Watch {
		return nil
	}
	paths := m.openPaths()
	if m.stopWatch != nil && slices.Equal(paths, m.watched) {
		return nil
	}
	return m.startWatch(paths)
}

func (m *Model) startWatch(paths []string) tea.Cmd {
	if m.stopWatch != nil {
		close(m.stopWatch)
		m.stopWatch = nil
	}
	m.watched = paths
	if len(paths) == 0 {
		return nil
	}
	stop := make(chan struct{})
	m.stopWatch = stop
	return watchCmd(paths, stop)
}

// StopWatch ends any running watch.
func (m *Model) StopWatch() {
	m.startWatch(nil)
}

func (m *Model) openPaths() []string {
	var paths []string
	for _, p := range m.panes {
		clean := filepath.Clean(p.path)
		if !slices.Contains(paths, clean) {
			paths = append(paths, clean)
		}
	}
	slices.Sort(paths)
	return paths
}

// reload refreshes every pane showing path, keeping each cursor within the
// new length. A clamped cursor is published so paired panes follow.
func (m *Model) reload(path string) {
	reloaded := false
	var clamped []*Pane
	for _, p := range m.panes {
		if filepath.Clean(p.path) != path {
			continue
		}
		src, lines, err := m.load(p.path, p.textWidth())
		if err != nil {
			m.Notify(editor.Warn, fmt.Sprintf("reload: %v", err))
			continue
		}
		p.source = src
		if p.setLines(lines) {
			clamped = append(clamped, p)
		}
		reloaded = true
	}
	if reloaded {
		m.Notify(editor.Info, "reloaded "+filepath.Base(path))
	}
	m.emitClamped(clamped)
}

// FullHelp lists the reader bindings beyond the common ones.
func (m *Model) FullHelp() []pkgtui.HelpBinding {
	return []pkgtui.HelpBinding{
		pkgtui.HelpBindingFromKey(m.keys.Yank),
	}
}

// View renders the panes.
func (m *Model) View() string {
	switch len(m.panes) {
	case 0:
		return pkgtui.LabelStyle.Render("No document open")
	case 1:
		return m.panes[0].View(true)
	case 2:
		return m.layout.Render(m.panes[0].View(m.active == 0), m.panes[1].View(m.active == 1))
	}
	views := make([]string, 0, 2*len(m.panes)-1)
	sep := lipgloss.NewStyle().Foreground(pkgtui.ColorBorder).
		Render(strings.TrimSuffix(strings.Repeat("│\n", m.height), "\n"))
	for i, p := range m.panes {
		if i > 0 {
			views = append(views, sep)
		}
		views = append(views, pkgtui.EnsureSize(p.View(i == m.active), p.width, m.height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}
