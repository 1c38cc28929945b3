// Package editor defines the capabilities the reader needs from the surface
// that displays documents: notifications, panes with a cursor line, and
// movement/focus events delivered through explicit subscriptions.
package editor

// Severity of a notification shown to the user.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier shows a transient message.
type Notifier interface {
	Notify(sev Severity, msg string)
}

// Pane is one visible viewport onto a document. Lines are 1-based.
type Pane interface {
	ID() int
	Path() string
	CursorLine() int
	SetCursorLine(line int) error
	LineCount() int
}

// EventKind identifies what happened in a pane.
type EventKind int

const (
	CursorMoved EventKind = iota
	PaneFocused
)

// Event is delivered to subscribers on the host's event loop.
type Event struct {
	Kind EventKind
	Pane Pane
}

// Subscription is returned by Subscribe; Close removes the handler.
type Subscription interface {
	Close()
}

// Workspace is the layout holding the open panes.
type Workspace interface {
	Notifier

	// CurrentPath is the document shown in the active pane, or "".
	CurrentPath() string
	ActivePane() Pane
	Panes() []Pane

	// Only closes every pane except the active one.
	Only()
	// Open displays path in the active pane.
	Open(path string) error
	// Split opens path in a new pane next to the active one.
	Split(path string) (Pane, error)

	Subscribe(kinds []EventKind, fn func(Event)) Subscription
}

// Clamp limits line to [1, count]. A pane with no lines clamps to 1.
func Clamp(line, count int) int {
	if count < 1 {
		count = 1
	}
	if line > count {
		return count
	}
	if line < 1 {
		return 1
	}
	return line
}
