package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	pkgtui "github.com/kondannyobhikkhu/tipitaka/pkg/tui"
)

var errPaneClosed = errors.New("pane is closed")

// Pane shows one document. The cursor line is 1-based and always within
// [1, LineCount()].
type Pane struct {
	id     int
	path   string
	source string
	lines  []string
	cursor int
	closed bool

	vp      viewport.Model
	width   int
	height  int
	wrapped [][]string
	rowOf   []int // first display row of each line, plus a final sentinel
}

func newPane(id int, path string) *Pane {
	p := &Pane{id: id, path: path, cursor: 1, lines: []string{""}, vp: viewport.New(0, 0)}
	p.rewrap()
	return p
}

func (p *Pane) ID() int         { return p.id }
func (p *Pane) Path() string    { return p.path }
func (p *Pane) CursorLine() int { return p.cursor }
func (p *Pane) LineCount() int  { return len(p.lines) }

// SetCursorLine moves the cursor without notifying subscribers.
func (p *Pane) SetCursorLine(line int) error {
	if p.closed {
		return errPaneClosed
	}
	if line < 1 || line > len(p.lines) {
		return fmt.Errorf("line %d outside 1..%d", line, len(p.lines))
	}
	p.cursor = line
	p.refresh()
	return nil
}

// jump moves the cursor to line, clamped, and reports whether it moved.
func (p *Pane) jump(line int) bool {
	line = max(1, min(line, len(p.lines)))
	if line == p.cursor {
		return false
	}
	p.cursor = line
	p.refresh()
	return true
}

// setLines replaces the content and reports whether the cursor had to be
// clamped to the new length.
func (p *Pane) setLines(lines []string) bool {
	if len(lines) == 0 {
		lines = []string{""}
	}
	before := p.cursor
	p.lines = lines
	p.cursor = max(1, min(p.cursor, len(lines)))
	p.rewrap()
	return p.cursor != before
}

// resize reports whether the text width changed.
func (p *Pane) resize(width, height int) bool {
	if width == p.width && height == p.height {
		return false
	}
	widthChanged := width != p.width
	p.width, p.height = width, height
	p.vp.Width = width
	p.vp.Height = max(0, height-1)
	p.rewrap()
	return widthChanged
}

func (p *Pane) textWidth() int {
	return p.width - p.gutterWidth()
}

func (p *Pane) gutterWidth() int {
	return len(fmt.Sprint(len(p.lines))) + 1
}

// rewrap recomputes the wrapped rows of every line for the current width.
func (p *Pane) rewrap() {
	textWidth := p.textWidth()
	p.wrapped = make([][]string, len(p.lines))
	p.rowOf = make([]int, len(p.lines)+1)
	rows := 0
	for i, line := range p.lines {
		p.rowOf[i] = rows
		parts := []string{line}
		if textWidth > 0 {
			parts = strings.Split(wrap.String(wordwrap.String(line, textWidth), textWidth), "\n")
		}
		p.wrapped[i] = parts
		rows += len(parts)
	}
	p.rowOf[len(p.lines)] = rows
	p.refresh()
}

// refresh rebuilds the viewport content with the cursor line highlighted.
func (p *Pane) refresh() {
	textWidth := p.textWidth()
	rows := make([]string, 0, p.rowOf[len(p.lines)])
	for i, parts := range p.wrapped {
		for j, text := range parts {
			rows = append(rows, p.renderRow(i, j, text, textWidth))
		}
	}
	p.vp.SetContent(strings.Join(rows, "\n"))
	p.scrollToCursor()
}

func (p *Pane) renderRow(line, part int, text string, textWidth int) string {
	gw := p.gutterWidth()
	gutter := strings.Repeat(" ", gw)
	if part == 0 {
		gutter = fmt.Sprintf("%*d ", gw-1, line+1)
	}
	gutter = pkgtui.LineNumberStyle.Render(gutter)
	if line+1 == p.cursor && textWidth > 0 {
		return gutter + pkgtui.CursorLineStyle.Render(pkgtui.PadToWidth(text, textWidth))
	}
	return gutter + text
}

func (p *Pane) scrollToCursor() {
	if len(p.rowOf) <= p.cursor || p.vp.Height <= 0 {
		return
	}
	top := p.rowOf[p.cursor-1]
	bottom := p.rowOf[p.cursor] - 1
	switch {
	case top < p.vp.YOffset:
		p.vp.SetYOffset(top)
	case bottom >= p.vp.YOffset+p.vp.Height:
		p.vp.SetYOffset(bottom - p.vp.Height + 1)
	}
}

// View renders the title bar and the visible rows.
func (p *Pane) View(focused bool) string {
	titleStyle := pkgtui.PaneUnfocusedStyle
	if focused {
		titleStyle = pkgtui.PaneFocusedStyle
	}
	title := titleStyle.Render(filepath.Base(p.path)) +
		pkgtui.LabelStyle.Render(fmt.Sprintf("  %d/%d", p.cursor, len(p.lines)))
	return pkgtui.PadToWidth(title, p.width) + "\n" + p.vp.View()
}
