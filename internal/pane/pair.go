package pane

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kondannyobhikkhu/tipitaka/internal/editor"
)

// Opener resolves sibling editions and lays them out side by side.
type Opener struct {
	Editions Editions
	// Exists probes a sibling path. Defaults to a regular-file stat.
	Exists func(path string) bool

	log *slog.Logger
}

// NewOpener returns an Opener probing the local filesystem.
func NewOpener(editions Editions) *Opener {
	return &Opener{Editions: editions, Exists: fileExists, log: slog.Default()}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// OpenPair shows the left and right editions of the current document.
// Unrecognized documents and missing siblings are reported through ws and
// leave the layout untouched. When only one edition exists it is shown
// alone with an informational notice. With two panes open, cursor movement
// and focus changes in either pane are mirrored to the other until Close.
func (o *Opener) OpenPair(ws editor.Workspace, leftCode, rightCode string) (*Pair, error) {
	current := ws.CurrentPath()
	id, err := o.Editions.Resolve(current)
	if err != nil {
		ws.Notify(editor.Error, err.Error())
		return nil, err
	}
	leftPath, err := id.Sibling(leftCode)
	if err != nil {
		ws.Notify(editor.Error, err.Error())
		return nil, err
	}
	rightPath, err := id.Sibling(rightCode)
	if err != nil {
		ws.Notify(editor.Error, err.Error())
		return nil, err
	}

	exists := o.Exists
	if exists == nil {
		exists = fileExists
	}
	haveLeft, haveRight := exists(leftPath), exists(rightPath)
	if !haveLeft && !haveRight {
		err := fmt.Errorf("%w: neither %s nor %s exists for %s",
			ErrNoSibling, leftCode, rightCode, filepath.Base(id.Base))
		ws.Notify(editor.Error, err.Error())
		return nil, err
	}

	line := 1
	if active := ws.ActivePane(); active != nil {
		line = active.CursorLine()
	}

	ws.Only()
	pair := &Pair{Identity: id, LeftCode: leftCode, RightCode: rightCode, ws: ws, log: o.logger()}

	firstPath, firstCode := leftPath, leftCode
	if !haveLeft {
		firstPath, firstCode = rightPath, rightCode
	}
	first, err := showInActive(ws, firstPath, current)
	if err != nil {
		ws.Notify(editor.Error, fmt.Sprintf("open %s: %v", firstCode, err))
		return nil, err
	}
	pair.align(first, line)
	pair.Left = first

	if !haveLeft || !haveRight {
		missing := rightCode
		if !haveLeft {
			missing = leftCode
		}
		pair.LeftCode = firstCode
		pair.RightCode = ""
		ws.Notify(editor.Info, fmt.Sprintf("%s edition not found; showing %s only", missing, firstCode))
		pair.log.Info("single edition available", "base", id.Base, "shown", firstCode, "missing", missing)
		return pair, nil
	}

	right, err := ws.Split(rightPath)
	if err != nil {
		ws.Notify(editor.Warn, fmt.Sprintf("open %s: %v", rightCode, err))
		pair.LeftCode = firstCode
		pair.RightCode = ""
		return pair, nil
	}
	pair.align(right, line)
	pair.Right = right

	pair.sub = ws.Subscribe([]editor.EventKind{editor.CursorMoved, editor.PaneFocused}, pair.handle)
	pair.log.Info("pair opened", "base", id.Base, "left", leftCode, "right", rightCode, "line", line)
	return pair, nil
}

func (o *Opener) logger() *slog.Logger {
	if o.log == nil {
		return slog.Default()
	}
	return o.log
}

// showInActive displays path in the active pane unless it is already the
// current document.
func showInActive(ws editor.Workspace, path, current string) (editor.Pane, error) {
	if path != current {
		if err := ws.Open(path); err != nil {
			return nil, err
		}
	}
	active := ws.ActivePane()
	if active == nil {
		return nil, errors.New("no active pane")
	}
	return active, nil
}

// align places a newly shown pane at line, clamped to its length.
func (p *Pair) align(target editor.Pane, line int) {
	if err := target.SetCursorLine(editor.Clamp(line, target.LineCount())); err != nil {
		p.report(&PaneSyncError{PaneID: target.ID(), Line: line, Err: err})
	}
}

func (p *Pair) report(err *PaneSyncError) {
	p.ws.Notify(editor.Warn, err.Error())
	p.log.Warn("pane sync failed", "pane", err.PaneID, "line", err.Line, "error", err.Err)
}

// Pair is an open edition pair. Right is nil when only one edition exists.
type Pair struct {
	Identity  Identity
	Left      editor.Pane
	Right     editor.Pane
	LeftCode  string
	RightCode string

	ws      editor.Workspace
	sub     editor.Subscription
	syncing bool
	log     *slog.Logger
}

// Single reports whether only one edition could be shown.
func (p *Pair) Single() bool { return p.Right == nil }

// Panes returns the panes of the pair.
func (p *Pair) Panes() []editor.Pane {
	if p.Right == nil {
		return []editor.Pane{p.Left}
	}
	return []editor.Pane{p.Left, p.Right}
}

// Contains reports whether pane belongs to the pair.
func (p *Pair) Contains(pane editor.Pane) bool {
	if pane == nil {
		return false
	}
	for _, q := range p.Panes() {
		if q.ID() == pane.ID() {
			return true
		}
	}
	return false
}

// Close stops mirroring.
func (p *Pair) Close() {
	if p.sub != nil {
		p.sub.Close()
		p.sub = nil
	}
}

func (p *Pair) handle(ev editor.Event) {
	if p.syncing || !p.Contains(ev.Pane) {
		return
	}
	p.Mirror(ev.Pane)
}

// Mirror moves every other pane of the pair to the cursor line of from,
// clamped to each pane's own length. Failures are reported per pane and
// returned; they do not stop the remaining panes from syncing.
func (p *Pair) Mirror(from editor.Pane) []error {
	p.syncing = true
	defer func() { p.syncing = false }()

	line := from.CursorLine()
	var errs []error
	for _, target := range p.Panes() {
		if target.ID() == from.ID() {
			continue
		}
		if err := mirrorOne(target, line); err != nil {
			syncErr := &PaneSyncError{PaneID: target.ID(), Line: line, Err: err}
			errs = append(errs, syncErr)
			p.report(syncErr)
		}
	}
	return errs
}

func mirrorOne(target editor.Pane, line int) error {
	want := editor.Clamp(line, target.LineCount())
	if target.CursorLine() == want {
		return nil
	}
	return target.SetCursorLine(want)
}
